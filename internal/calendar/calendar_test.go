package calendar_test

import (
	"testing"

	"github.com/temporal-go/tcore/internal/calendar"
	"github.com/temporal-go/tcore/internal/iso"
)

func TestParseRoundTripsName(t *testing.T) {
	for _, id := range []calendar.ID{
		calendar.Iso, calendar.Gregorian, calendar.Buddhist, calendar.Japanese,
		calendar.Roc, calendar.Persian, calendar.Indian, calendar.Hebrew,
		calendar.Chinese, calendar.Dangi, calendar.Coptic, calendar.Ethiopian,
		calendar.EthiopianAmeteAlem, calendar.HijriUmmAlQura,
		calendar.HijriTabularTypeIIFriday, calendar.HijriTabularTypeIIThursday,
	} {
		got, ok := calendar.Parse(id.Name())
		if !ok {
			t.Fatalf("Parse(%q) failed", id.Name())
		}
		if got.Name() != id.Name() {
			t.Errorf("round trip mismatch for %q: got %q", id.Name(), got.Name())
		}
	}
}

func TestIsoFieldsMatchUnderlyingDate(t *testing.T) {
	d := iso.Date{Year: 2025, Month: 3, Day: 3} // a Monday, ISO week 10
	f, err := calendar.FieldsOf(calendar.Iso, d)
	if err != nil {
		t.Fatal(err)
	}
	if f.Year != 2025 || f.Month != 3 || f.Day != 3 {
		t.Errorf("got %+v", f)
	}
	if !f.HasWeekOfYear || f.WeekOfYear != 10 {
		t.Errorf("expected ISO week 10, got %+v", f)
	}
}

func TestJapaneseEraReiwa(t *testing.T) {
	d := iso.Date{Year: 2025, Month: 7, Day: 30}
	f, err := calendar.FieldsOf(calendar.Japanese, d)
	if err != nil {
		t.Fatal(err)
	}
	if f.Era != "reiwa" || f.EraYear != 7 {
		t.Errorf("got era=%q eraYear=%d, want reiwa/7", f.Era, f.EraYear)
	}

	year, eraYear := int64(2025), int64(7)
	reconstructed, err := calendar.DateFromFields(calendar.Japanese, calendar.PartialDate{
		Era:     strPtr("reiwa"),
		EraYear: &eraYear,
		Month:   int64Ptr(7),
		Day:     int64Ptr(30),
	}, iso.Constrain)
	if err != nil {
		t.Fatal(err)
	}
	if iso.CompareDate(reconstructed, d) != 0 {
		t.Errorf("got %v, want %v (year %d)", reconstructed, d, year)
	}
}

func TestBuddhistEraYearOffset(t *testing.T) {
	d := iso.Date{Year: 2025, Month: 1, Day: 1}
	f, err := calendar.FieldsOf(calendar.Buddhist, d)
	if err != nil {
		t.Fatal(err)
	}
	if f.EraYear != 2568 {
		t.Errorf("got eraYear=%d, want 2568", f.EraYear)
	}
}

func TestCopticEpochRoundTrip(t *testing.T) {
	for year := int64(1700); year < 1705; year++ {
		for month := int64(1); month <= 13; month++ {
			d, err := calendar.DateFromFields(calendar.Coptic, calendar.PartialDate{
				Year: &year, Month: &month, Day: int64Ptr(1),
			}, iso.Constrain)
			if err != nil {
				t.Fatalf("year=%d month=%d: %v", year, month, err)
			}
			f, err := calendar.FieldsOf(calendar.Coptic, d)
			if err != nil {
				t.Fatal(err)
			}
			if f.Year != year || f.Month != month || f.Day != 1 {
				t.Errorf("round trip mismatch: got y=%d m=%d d=%d, want y=%d m=%d d=1", f.Year, f.Month, f.Day, year, month)
			}
		}
	}
}

func TestHijriLeapYearHasThirtyDayMonth12(t *testing.T) {
	found := false
	for year := int64(1440); year < 1460; year++ {
		if calendar.HijriTabularTypeIIFriday.Name() == "" {
			t.Fatal("unexpected empty name")
		}
		d, err := calendar.YearMonthFromFields(calendar.HijriTabularTypeIIFriday, calendar.PartialDate{
			Year: &year, Month: int64Ptr(12),
		}, iso.Constrain)
		if err != nil {
			t.Fatal(err)
		}
		f, err := calendar.FieldsOf(calendar.HijriTabularTypeIIFriday, d)
		if err != nil {
			t.Fatal(err)
		}
		if f.InLeapYear && f.DaysInMonth == 30 {
			found = true
		}
	}
	if !found {
		t.Error("expected at least one leap year with a 30-day twelfth month in range")
	}
}

func TestHebrewLeapYearHasThirteenMonths(t *testing.T) {
	f, err := calendar.FieldsOf(calendar.Hebrew, mustDate(calendar.DateFromFields(calendar.Hebrew, calendar.PartialDate{
		Year: int64Ptr(5784), Month: int64Ptr(1), Day: int64Ptr(1),
	}, iso.Constrain)))
	if err != nil {
		t.Fatal(err)
	}
	if f.MonthsInYear != 13 {
		t.Errorf("expected 13 months in leap year 5784, got %d", f.MonthsInYear)
	}
}

func TestPersianYearLengthIs365Or366(t *testing.T) {
	d, err := calendar.DateFromFields(calendar.Persian, calendar.PartialDate{
		Year: int64Ptr(1403), Month: int64Ptr(1), Day: int64Ptr(1),
	}, iso.Constrain)
	if err != nil {
		t.Fatal(err)
	}
	f, err := calendar.FieldsOf(calendar.Persian, d)
	if err != nil {
		t.Fatal(err)
	}
	if f.DaysInYear != 365 && f.DaysInYear != 366 {
		t.Errorf("unexpected DaysInYear %d", f.DaysInYear)
	}
}

func TestDateUntilNonIsoBorrowsAcrossMonth(t *testing.T) {
	a, err := calendar.DateFromFields(calendar.Coptic, calendar.PartialDate{
		Year: int64Ptr(1700), Month: int64Ptr(1), Day: int64Ptr(25),
	}, iso.Constrain)
	if err != nil {
		t.Fatal(err)
	}
	b, err := calendar.DateFromFields(calendar.Coptic, calendar.PartialDate{
		Year: int64Ptr(1700), Month: int64Ptr(2), Day: int64Ptr(5),
	}, iso.Constrain)
	if err != nil {
		t.Fatal(err)
	}
	dur, err := calendar.DateUntil(calendar.Coptic, a, b, iso.Month)
	if err != nil {
		t.Fatal(err)
	}
	if dur.Months != 0 || dur.Days != 10 {
		t.Errorf("got months=%d days=%d, want months=0 days=10", dur.Months, dur.Days)
	}
}

func strPtr(s string) *string   { return &s }
func int64Ptr(v int64) *int64   { return &v }
func mustDate(d iso.Date, err error) iso.Date {
	if err != nil {
		panic(err)
	}
	return d
}
