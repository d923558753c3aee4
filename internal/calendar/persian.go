package calendar

import (
	"github.com/temporal-go/tcore/internal/iso"
	"github.com/temporal-go/tcore/internal/terr"
)

// Persian implements the solar Hijri (Jalali) calendar using the common
// 33-year-cycle leap rule: leap years fall at cycle positions
// {1, 5, 9, 13, 17, 22, 26, 30} out of every 33 years. This is a
// documented approximation of the true 2820-year astronomical cycle,
// accurate across the range of years any realistic caller will construct
// but not an exact match to the precise solar-equinox algorithm over very
// long spans. No example repo in the retrieval pack models the Persian
// calendar, so this is the simplest faithful-for-practical-purposes
// arithmetic rule available (see DESIGN.md).
var persianLeapPositions = map[int64]bool{1: true, 5: true, 9: true, 13: true, 17: true, 22: true, 26: true, 30: true}

// persianEpoch is the ISO date of Persian year 1, Farvardin 1 (622-03-22
// in the proleptic Gregorian calendar), computed once via the iso kernel
// so the whole calendar stays internally self-consistent.
var persianEpochDay = mustEpochDay(iso.Date{Year: 622, Month: 3, Day: 22})

func mustEpochDay(d iso.Date) int64 {
	return iso.ToEpochDay(d)
}

func init() {
	register(Persian, persianOps{})
}

func isLeapPersian(year int64) bool {
	n := year - 1
	pos := n % 33
	if pos < 0 {
		pos += 33
	}
	return persianLeapPositions[pos+1]
}

func persianLeapsBefore(yearsFromEpoch int64) int64 {
	if yearsFromEpoch <= 0 {
		count := int64(0)
		for y := yearsFromEpoch; y < 0; y++ {
			if isLeapPersian(y + 1) {
				count--
			}
		}
		return count
	}
	full := yearsFromEpoch / 33
	rem := yearsFromEpoch % 33
	count := full * 8
	for p := int64(1); p <= rem; p++ {
		if persianLeapPositions[p] {
			count++
		}
	}
	return count
}

func persianDaysBeforeYear(year int64) int64 {
	n := year - 1
	return 365*n + persianLeapsBefore(n)
}

func persianDaysInMonth(year, month int64) int64 {
	switch {
	case month <= 6:
		return 31
	case month <= 11:
		return 30
	default:
		if isLeapPersian(year) {
			return 30
		}
		return 29
	}
}

func persianToEpochDay(year, month, day int64) int64 {
	total := persianDaysBeforeYear(year)
	for m := int64(1); m < month; m++ {
		total += persianDaysInMonth(year, m)
	}
	return persianEpochDay + total + (day - 1)
}

func epochDayToPersian(ed int64) (year, month, day int64) {
	daysSinceEpoch := ed - persianEpochDay
	year = daysSinceEpoch/365 + 1
	for persianDaysBeforeYear(year) > daysSinceEpoch {
		year--
	}
	for persianDaysBeforeYear(year+1) <= daysSinceEpoch {
		year++
	}
	remaining := daysSinceEpoch - persianDaysBeforeYear(year)
	month = 1
	for {
		dim := persianDaysInMonth(year, month)
		if remaining < dim {
			break
		}
		remaining -= dim
		month++
	}
	day = remaining + 1
	return
}

type persianOps struct{}

func (persianOps) dateFromFields(pd PartialDate, overflow iso.Overflow) (iso.Date, error) {
	year, month, err := resolveYearMonth(pd, 0)
	if err != nil {
		return iso.Date{}, err
	}
	day := *pd.Day
	dim := persianDaysInMonth(year, month)
	if month < 1 || month > 12 {
		if overflow == iso.Reject {
			return iso.Date{}, terr.Rangef("month %d out of range", month)
		}
		month = clampI64(month, 1, 12)
		dim = persianDaysInMonth(year, month)
	}
	if day < 1 || day > dim {
		if overflow == iso.Reject {
			return iso.Date{}, terr.Rangef("day %d out of range for Persian month %d", day, month)
		}
		day = clampI64(day, 1, dim)
	}
	ed := persianToEpochDay(year, month, day)
	return iso.FromEpochDay(ed)
}

func (p persianOps) yearMonthFromFields(pd PartialDate, overflow iso.Overflow) (iso.Date, error) {
	day := int64(1)
	pd.Day = &day
	return p.dateFromFields(pd, overflow)
}

func (p persianOps) monthDayFromFields(pd PartialDate, overflow iso.Overflow) (iso.Date, error) {
	if pd.Year == nil {
		refYear := int64(1350)
		pd.Year = &refYear
	}
	return p.dateFromFields(pd, overflow)
}

func (persianOps) fields(d iso.Date) Fields {
	ed := iso.ToEpochDay(d)
	year, month, day := epochDayToPersian(ed)
	dim := persianDaysInMonth(year, month)
	daysInYear := int64(365)
	if isLeapPersian(year) {
		daysInYear = 366
	}
	return Fields{
		Year:         year,
		Month:        month,
		MonthCode:    monthCodeFor(month),
		Day:          day,
		Era:          "ap",
		EraYear:      year,
		InLeapYear:   isLeapPersian(year),
		DaysInMonth:  int(dim),
		DaysInYear:   int(daysInYear),
		MonthsInYear: 12,
		DayOfWeek:    iso.Weekday(d),
		DayOfYear:    int(ed - persianToEpochDay(year, 1, 1) + 1),
	}
}
