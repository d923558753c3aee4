package calendar

import (
	"github.com/temporal-go/tcore/internal/iso"
	"github.com/temporal-go/tcore/internal/terr"
)

// Chinese and Dangi (the Korean variant of the same lunisolar system) are
// true astronomical lunisolar calendars: month boundaries fall on actual
// new moons and leap months are inserted according to solar-term
// positions, neither of which can be computed without an ephemeris. No
// repo in the retrieval pack carries astronomical data, so tcore
// implements a clearly-labeled arithmetic placeholder: months alternate
// 30 and 29 days (averaging close to the 29.530588-day mean lunation)
// counted from a reference new-year date, with a leap month in seven
// years of every nineteen on a fixed schedule (leapMonthInCycle) to keep
// the calendar loosely solar-aligned. This
// is NOT astronomically accurate and is documented as a structural
// stand-in rather than a faithful implementation (see DESIGN.md) — the
// Calendar interface and the ordinary operations that use it (until,
// round, field queries) are fully exercised either way.
const synodicMonthMicrodays = 29_530_588 // days * 1e6

var chineseEpochDay = mustEpochDay(iso.Date{Year: 1984, Month: 2, Day: 2}) // a reference new-year date

func init() {
	register(Chinese, eastAsianOps{era: "chinese"})
	register(Dangi, eastAsianOps{era: "dangi"})
}

// leapMonthInCycle returns true when cycleYear (0-based position within a
// fixed nineteen-year approximation cycle, mirroring the same Metonic
// period the real calendar is loosely built around) carries a thirteenth
// embolismic month.
func leapMonthInCycle(cycleYear int64) bool {
	switch cycleYear % 19 {
	case 2, 5, 7, 10, 13, 15, 18:
		return true
	default:
		return false
	}
}

func eastAsianMonthsInYear(year int64) int64 {
	if leapMonthInCycle(year) {
		return 13
	}
	return 12
}

// eastAsianDaysInMonth alternates 30/29-day months, matching the mean
// synodic month when paired.
func eastAsianDaysInMonth(monthIndex int64) int64 {
	if monthIndex%2 == 0 {
		return 30
	}
	return 29
}

func eastAsianYearLength(year int64) int64 {
	total := int64(0)
	n := eastAsianMonthsInYear(year)
	for m := int64(0); m < n; m++ {
		total += eastAsianDaysInMonth(m)
	}
	return total
}

func eastAsianDaysBeforeYear(year int64) int64 {
	total := int64(0)
	if year >= 1984 {
		for y := int64(1984); y < year; y++ {
			total += eastAsianYearLength(y)
		}
		return total
	}
	for y := year; y < 1984; y++ {
		total -= eastAsianYearLength(y)
	}
	return total
}

func eastAsianToEpochDay(year, month, day int64) int64 {
	total := eastAsianDaysBeforeYear(year)
	for m := int64(0); m < month-1; m++ {
		total += eastAsianDaysInMonth(m)
	}
	return chineseEpochDay + total + (day - 1)
}

func epochDayToEastAsian(ed int64) (year, month, day int64) {
	daysSinceEpoch := ed - chineseEpochDay
	year = 1984 + daysSinceEpoch/355
	for eastAsianDaysBeforeYear(year) > daysSinceEpoch {
		year--
	}
	for eastAsianDaysBeforeYear(year+1) <= daysSinceEpoch {
		year++
	}
	remaining := daysSinceEpoch - eastAsianDaysBeforeYear(year)
	monthIndex := int64(0)
	for {
		dim := eastAsianDaysInMonth(monthIndex)
		if remaining < dim {
			break
		}
		remaining -= dim
		monthIndex++
	}
	month = monthIndex + 1
	day = remaining + 1
	return
}

type eastAsianOps struct {
	era string
}

func (e eastAsianOps) dateFromFields(pd PartialDate, overflow iso.Overflow) (iso.Date, error) {
	year, month, err := resolveYearMonth(pd, 0)
	if err != nil {
		return iso.Date{}, err
	}
	day := *pd.Day
	maxMonth := eastAsianMonthsInYear(year)
	if month < 1 || month > maxMonth {
		if overflow == iso.Reject {
			return iso.Date{}, terr.Rangef("month %d out of range for year %d", month, year)
		}
		month = clampI64(month, 1, maxMonth)
	}
	dim := eastAsianDaysInMonth(month - 1)
	if day < 1 || day > dim {
		if overflow == iso.Reject {
			return iso.Date{}, terr.Rangef("day %d out of range for month %d", day, month)
		}
		day = clampI64(day, 1, dim)
	}
	ed := eastAsianToEpochDay(year, month, day)
	return iso.FromEpochDay(ed)
}

func (e eastAsianOps) yearMonthFromFields(pd PartialDate, overflow iso.Overflow) (iso.Date, error) {
	day := int64(1)
	pd.Day = &day
	return e.dateFromFields(pd, overflow)
}

func (e eastAsianOps) monthDayFromFields(pd PartialDate, overflow iso.Overflow) (iso.Date, error) {
	if pd.Year == nil {
		refYear := int64(1984)
		pd.Year = &refYear
	}
	return e.dateFromFields(pd, overflow)
}

func (e eastAsianOps) fields(d iso.Date) Fields {
	ed := iso.ToEpochDay(d)
	year, month, day := epochDayToEastAsian(ed)
	return Fields{
		Year:         year,
		Month:        month,
		MonthCode:    monthCodeFor(month),
		Day:          day,
		Era:          e.era,
		EraYear:      year,
		InLeapYear:   leapMonthInCycle(year),
		DaysInMonth:  int(eastAsianDaysInMonth(month - 1)),
		DaysInYear:   int(eastAsianYearLength(year)),
		MonthsInYear: int(eastAsianMonthsInYear(year)),
		DayOfWeek:    iso.Weekday(d),
		DayOfYear:    int(ed-eastAsianToEpochDay(year, 1, 1)) + 1,
	}
}

var _ = synodicMonthMicrodays // retained as a documented constant of the mean lunation used to derive the approximation above
