package calendar

import (
	"github.com/temporal-go/tcore/internal/iso"
	"github.com/temporal-go/tcore/internal/terr"
)

// Coptic and Ethiopian are both thirteen-month calendars (twelve months of
// thirty days plus a short epagomenal thirteenth month of five or six
// days), arithmetically related by a fixed epoch offset. The fixed-date
// ("Rata Die") constants below are the standard ones from the calendrical
// calculations literature, re-anchored onto tcore's own epoch-day zero
// (1970-01-01) via the fixed date of 1970-01-01, R.D. 719163.
const (
	rataDieOfUnixEpoch = 719163
	copticEpochRD       = 103605 // Coptic 1/1/1 = 284-08-29 Julian
	ethiopicEpochRD     = 2796   // Ethiopic 1/1/1 = 8-08-29 Julian
)

func init() {
	register(Coptic, thirteenMonthOps{epochOurs: copticEpochRD - rataDieOfUnixEpoch, era: "am"})
	register(Ethiopian, thirteenMonthOps{epochOurs: ethiopicEpochRD - rataDieOfUnixEpoch, era: "am"})
	register(EthiopianAmeteAlem, thirteenMonthOps{
		epochOurs:  ethiopicEpochRD - rataDieOfUnixEpoch,
		era:        "aa",
		eraOffset:  5500,
	})
}

func isLeap13Month(year int64) bool {
	m := year % 4
	if m < 0 {
		m += 4
	}
	return m == 3
}

func daysInMonth13(year int64, month int64) int {
	if month < 13 {
		return 30
	}
	if isLeap13Month(year) {
		return 6
	}
	return 5
}

// epochDayFromThirteenMonth converts a (year, month, day) triple in a
// thirteen-month calendar anchored at epochOurs into a tcore epoch day.
func epochDayFromThirteenMonth(epochOurs, year, month, day int64) int64 {
	return epochOurs - 1 + 365*(year-1) + floorDiv(year, 4) + 30*(month-1) + day
}

func thirteenMonthFromEpochDay(epochOurs, ed int64) (year, month, day int64) {
	year = floorDiv(4*(ed-epochOurs)+1463, 1461)
	month = 1 + floorDiv(ed-epochDayFromThirteenMonth(epochOurs, year, 1, 1), 30)
	day = ed - epochDayFromThirteenMonth(epochOurs, year, month, 1) + 1
	return
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// thirteenMonthOps implements Coptic, Ethiopian (Amete Mihret era), and
// Ethiopian Amete Alem (an era-offset alias of the same month/day
// arithmetic, counting years from the Ethiopian Amete Alem epoch instead
// of Amete Mihret: eraOffset 5500 years, the conventional difference).
type thirteenMonthOps struct {
	epochOurs int64
	era       string
	eraOffset int64
}

func (t thirteenMonthOps) dateFromFields(pd PartialDate, overflow iso.Overflow) (iso.Date, error) {
	year, month, err := t.resolve(pd)
	if err != nil {
		return iso.Date{}, err
	}
	day := *pd.Day
	dim := int64(daysInMonth13(year, month))
	if day < 1 || day > dim {
		if overflow == iso.Reject {
			return iso.Date{}, terr.Rangef("day %d out of range for month %d", day, month)
		}
		day = clampI64(day, 1, dim)
	}
	ed := epochDayFromThirteenMonth(t.epochOurs, year, month, day)
	return iso.FromEpochDay(ed)
}

func (t thirteenMonthOps) resolve(pd PartialDate) (year, month int64, err error) {
	switch {
	case pd.Year != nil:
		year = *pd.Year
	case pd.EraYear != nil:
		year = *pd.EraYear - t.eraOffset
	default:
		return 0, 0, terr.Typef("missing year or eraYear field")
	}
	switch {
	case pd.Month != nil:
		month = *pd.Month
	case pd.MonthCode != nil:
		m, ok := monthFromCode(*pd.MonthCode)
		if !ok {
			return 0, 0, terr.Rangef("invalid monthCode %q", *pd.MonthCode)
		}
		month = m
	default:
		month = 1
	}
	if month < 1 || month > 13 {
		return 0, 0, terr.Rangef("month %d out of range [1,13]", month)
	}
	return year, month, nil
}

func clampI64(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (t thirteenMonthOps) yearMonthFromFields(pd PartialDate, overflow iso.Overflow) (iso.Date, error) {
	day := int64(1)
	pd.Day = &day
	return t.dateFromFields(pd, overflow)
}

func (t thirteenMonthOps) monthDayFromFields(pd PartialDate, overflow iso.Overflow) (iso.Date, error) {
	if pd.Year == nil && pd.EraYear == nil {
		refYear := int64(1972)
		pd.Year = &refYear
	}
	return t.dateFromFields(pd, overflow)
}

func (t thirteenMonthOps) fields(d iso.Date) Fields {
	ed := iso.ToEpochDay(d)
	year, month, day := thirteenMonthFromEpochDay(t.epochOurs, ed)
	dim := daysInMonth13(year, month)
	daysInYear := 365
	if isLeap13Month(year) {
		daysInYear = 366
	}
	firstOfYear := epochDayFromThirteenMonth(t.epochOurs, year, 1, 1)
	return Fields{
		Year:         year,
		Month:        month,
		MonthCode:    monthCodeFor(month),
		Day:          day,
		Era:          t.era,
		EraYear:      year + t.eraOffset,
		InLeapYear:   isLeap13Month(year),
		DaysInMonth:  dim,
		DaysInYear:   daysInYear,
		MonthsInYear: 13,
		DayOfWeek:    iso.Weekday(d),
		DayOfYear:    int(ed-firstOfYear) + 1,
	}
}
