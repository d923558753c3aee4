package tcore

import (
	"strings"

	"github.com/temporal-go/tcore/internal/calendar"
	"github.com/temporal-go/tcore/internal/durationcore"
	"github.com/temporal-go/tcore/internal/ixdtf"
)

// PlainYearMonth is a calendar year-month with no day component
// (spec.md §4.7), represented as an ISO date pinned to a reference day
// the way Temporal's own reference implementation anchors a YearMonth
// to its first representable day.
type PlainYearMonth struct {
	date PlainDate
}

// NewPlainYearMonth constructs a PlainYearMonth from calendar fields.
func NewPlainYearMonth(cal calendar.ID, pd PartialDate, overflow Overflow) (PlainYearMonth, error) {
	d, err := calendar.YearMonthFromFields(cal, pd.toInternal(), overflow.toISO())
	if err != nil {
		return PlainYearMonth{}, wrapInternal(err)
	}
	return PlainYearMonth{date: PlainDate{date: d, cal: cal}}, nil
}

func (ym PlainYearMonth) Calendar() calendar.ID { return ym.date.cal }

// Fields returns the full calendar field set for the anchor day.
func (ym PlainYearMonth) Fields() (calendar.Fields, error) { return ym.date.Fields() }

// With overlays the given year/month fields.
func (ym PlainYearMonth) With(pd PartialDate, overflow Overflow) (PlainYearMonth, error) {
	f, err := ym.date.Fields()
	if err != nil {
		return PlainYearMonth{}, err
	}
	merged := calendar.PartialDate{Year: i64ptr(f.Year), Month: i64ptr(f.Month)}
	if pd.Year != nil {
		merged.Year = pd.Year
	}
	if pd.Month != nil {
		merged.Month = pd.Month
	}
	if pd.MonthCode != nil {
		merged.Month = nil
		merged.MonthCode = pd.MonthCode
	}
	d, err := calendar.YearMonthFromFields(ym.date.cal, merged, overflow.toISO())
	if err != nil {
		return PlainYearMonth{}, wrapInternal(err)
	}
	return PlainYearMonth{date: PlainDate{date: d, cal: ym.date.cal}}, nil
}

// Add returns ym plus dur's year/month portion.
func (ym PlainYearMonth) Add(dur Duration, overflow Overflow) (PlainYearMonth, error) {
	d, err := ym.date.addDateDuration(durationcore.DateDuration{Years: dur.date.Years, Months: dur.date.Months}, overflow)
	if err != nil {
		return PlainYearMonth{}, err
	}
	return PlainYearMonth{date: d}, nil
}

// Subtract returns ym minus dur's year/month portion.
func (ym PlainYearMonth) Subtract(dur Duration, overflow Overflow) (PlainYearMonth, error) {
	d, err := ym.date.addDateDuration(durationcore.DateDuration{Years: -dur.date.Years, Months: -dur.date.Months}, overflow)
	if err != nil {
		return PlainYearMonth{}, err
	}
	return PlainYearMonth{date: d}, nil
}

// Until returns the duration from ym to other, in whole years/months.
func (ym PlainYearMonth) Until(other PlainYearMonth, settings DifferenceSettings) (Duration, error) {
	if !settings.HasLargestUnit {
		settings.HasLargestUnit = true
		settings.LargestUnit = UnitYear
	}
	return ym.date.Until(other.date, settings)
}

// Since returns the duration from other to ym.
func (ym PlainYearMonth) Since(other PlainYearMonth, settings DifferenceSettings) (Duration, error) {
	dur, err := other.Until(ym, settings)
	if err != nil {
		return Duration{}, err
	}
	return dur.Negated(), nil
}

// Compare orders two PlainYearMonths by their anchor date.
func (ym PlainYearMonth) Compare(other PlainYearMonth) int { return ym.date.Compare(other.date) }

// Equals reports whether ym and other name the same year-month.
func (ym PlainYearMonth) Equals(other PlainYearMonth) bool { return ym.date.Equals(other.date) }

// String renders ym in canonical "YYYY-MM" form (spec.md §4.7): the
// full date string with its trailing "-DD" day component dropped, so
// extended six-digit signed years still format correctly.
func (ym PlainYearMonth) String() string {
	s := ixdtf.FormatDate(ym.date.date)
	return s[:len(s)-3]
}

// ParsePlainYearMonth parses an IXDTF PlainYearMonth production, either
// the bare "YYYY-MM" shorthand or a full date (whose day is discarded,
// the form produced by PlainDate.String when u-ca is non-ISO).
func ParsePlainYearMonth(s string) (PlainYearMonth, error) {
	core, tail := splitAnnotationTail(s)
	if isYearMonthShorthand(core) {
		core += "-01"
	}
	d, cal, err := ixdtf.ParseDate(core + tail)
	if err != nil {
		return PlainYearMonth{}, wrapInternal(err)
	}
	// Re-anchor through the calendar so a full date's own day is dropped.
	f, err := calendar.FieldsOf(cal, d)
	if err != nil {
		return PlainYearMonth{}, wrapInternal(err)
	}
	return NewPlainYearMonth(cal, PartialDate{Year: &f.Year, MonthCode: &f.MonthCode}, Reject)
}

// splitAnnotationTail separates a date string's leading date body from
// its trailing `[...]` annotation brackets, if any.
func splitAnnotationTail(s string) (core, tail string) {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i], s[i:]
	}
	return s, ""
}

// isYearMonthShorthand reports whether core has the bare "YYYY-MM" or
// "±YYYYYY-MM" shape (no day component) rather than a full date.
func isYearMonthShorthand(core string) bool {
	return strings.Count(core, "-") == 1 || (len(core) > 0 && (core[0] == '+' || core[0] == '-') && strings.Count(core[1:], "-") == 1)
}
