package calendar

import (
	"github.com/temporal-go/tcore/internal/iso"
	"github.com/temporal-go/tcore/internal/terr"
)

// Hebrew implements a simplified arithmetic Hebrew calendar: leap years
// follow the 19-year Metonic cycle (cycle positions 3, 6, 8, 11, 14, 17,
// 19 are leap, each inserting a thirteenth month, Adar I), and month
// lengths are fixed nominal lengths rather than the variable
// Cheshvan/Kislev lengths the true calendar uses to satisfy the
// Rosh Hashanah postponement rules (dehiyyot). This keeps every year's
// length a simple function of its leap status (354 days regular, 384
// days leap) instead of the historically exact 353-355 / 383-385 day
// range. No example repo in the retrieval pack models the Hebrew
// calendar's molad/dehiyyot arithmetic, and spec.md's Non-goals already
// exclude historical civil-law calendar precision, so this
// simplification is documented rather than hidden (see DESIGN.md).
var hebrewEpochDay = mustEpochDay(iso.Date{Year: -3760, Month: 9, Day: 7})

var metonicLeapPositions = map[int64]bool{3: true, 6: true, 8: true, 11: true, 14: true, 17: true, 19: true}

func init() {
	register(Hebrew, hebrewOps{})
}

func isLeapHebrew(year int64) bool {
	pos := year % 19
	if pos <= 0 {
		pos += 19
	}
	return metonicLeapPositions[pos]
}

// hebrewMonthLengths gives the day counts in civil month order starting from Tishrei,
// with Adar I only present in leap years (inserted before Adar II, here
// named plain "Adar" in non-leap years).
var hebrewMonthLengths = [12]int64{30, 29, 30, 29, 30, 29, 29, 30, 29, 30, 29, 30}

func hebrewMonthsInYear(year int64) int64 {
	if isLeapHebrew(year) {
		return 13
	}
	return 12
}

func hebrewDaysInMonth(year, month int64) int64 {
	if isLeapHebrew(year) {
		if month == 6 {
			return 30 // Adar I
		}
		if month == 7 {
			return 29 // Adar II
		}
	}
	idx := month - 1
	if idx < 0 || idx > 11 {
		return 29
	}
	return hebrewMonthLengths[idx]
}

func hebrewYearLength(year int64) int64 {
	total := int64(0)
	n := hebrewMonthsInYear(year)
	for m := int64(1); m <= n; m++ {
		total += hebrewDaysInMonth(year, m)
	}
	return total
}

func hebrewLeapsAndLengthBefore(yearsFromEpoch int64) int64 {
	if yearsFromEpoch <= 0 {
		total := int64(0)
		for y := yearsFromEpoch; y < 0; y++ {
			total -= hebrewYearLength(y + 1)
		}
		return total
	}
	fullCycles := yearsFromEpoch / 19
	rem := yearsFromEpoch % 19
	cycleDays := int64(19*354) + int64(7*30)
	total := fullCycles * cycleDays
	for y := int64(1); y <= rem; y++ {
		total += hebrewYearLength(y)
	}
	return total
}

func hebrewDaysBeforeYear(year int64) int64 {
	return hebrewLeapsAndLengthBefore(year - 1)
}

func hebrewToEpochDay(year, month, day int64) int64 {
	total := hebrewDaysBeforeYear(year)
	for m := int64(1); m < month; m++ {
		total += hebrewDaysInMonth(year, m)
	}
	return hebrewEpochDay + total + (day - 1)
}

func epochDayToHebrew(ed int64) (year, month, day int64) {
	daysSinceEpoch := ed - hebrewEpochDay
	year = daysSinceEpoch/365 + 1
	for hebrewDaysBeforeYear(year) > daysSinceEpoch {
		year--
	}
	for hebrewDaysBeforeYear(year+1) <= daysSinceEpoch {
		year++
	}
	remaining := daysSinceEpoch - hebrewDaysBeforeYear(year)
	month = 1
	for {
		dim := hebrewDaysInMonth(year, month)
		if remaining < dim {
			break
		}
		remaining -= dim
		month++
	}
	day = remaining + 1
	return
}

func hebrewMonthCode(year, month int64) string {
	if isLeapHebrew(year) && month == 6 {
		return "M05L"
	}
	if isLeapHebrew(year) && month == 7 {
		return "M06"
	}
	if isLeapHebrew(year) && month > 7 {
		return monthCodeFor(month - 1)
	}
	return monthCodeFor(month)
}

type hebrewOps struct{}

func (hebrewOps) dateFromFields(pd PartialDate, overflow iso.Overflow) (iso.Date, error) {
	var year int64
	switch {
	case pd.Year != nil:
		year = *pd.Year
	case pd.EraYear != nil:
		year = *pd.EraYear
	default:
		return iso.Date{}, terr.Typef("missing year field")
	}
	var month int64
	switch {
	case pd.Month != nil:
		month = *pd.Month
	case pd.MonthCode != nil:
		m, ok := monthFromCode(*pd.MonthCode)
		if !ok {
			return iso.Date{}, terr.Rangef("invalid monthCode %q", *pd.MonthCode)
		}
		month = m
	default:
		return iso.Date{}, terr.Typef("missing month or monthCode field")
	}
	day := *pd.Day
	maxMonth := hebrewMonthsInYear(year)
	if month < 1 || month > maxMonth {
		if overflow == iso.Reject {
			return iso.Date{}, terr.Rangef("month %d out of range for Hebrew year %d", month, year)
		}
		month = clampI64(month, 1, maxMonth)
	}
	dim := hebrewDaysInMonth(year, month)
	if day < 1 || day > dim {
		if overflow == iso.Reject {
			return iso.Date{}, terr.Rangef("day %d out of range for Hebrew month %d", day, month)
		}
		day = clampI64(day, 1, dim)
	}
	ed := hebrewToEpochDay(year, month, day)
	return iso.FromEpochDay(ed)
}

func (h hebrewOps) yearMonthFromFields(pd PartialDate, overflow iso.Overflow) (iso.Date, error) {
	day := int64(1)
	pd.Day = &day
	return h.dateFromFields(pd, overflow)
}

func (h hebrewOps) monthDayFromFields(pd PartialDate, overflow iso.Overflow) (iso.Date, error) {
	if pd.Year == nil {
		refYear := int64(5732)
		pd.Year = &refYear
	}
	return h.dateFromFields(pd, overflow)
}

func (hebrewOps) fields(d iso.Date) Fields {
	ed := iso.ToEpochDay(d)
	year, month, day := epochDayToHebrew(ed)
	return Fields{
		Year:         year,
		Month:        month,
		MonthCode:    hebrewMonthCode(year, month),
		Day:          day,
		Era:          "am",
		EraYear:      year,
		InLeapYear:   isLeapHebrew(year),
		DaysInMonth:  int(hebrewDaysInMonth(year, month)),
		DaysInYear:   int(hebrewYearLength(year)),
		MonthsInYear: int(hebrewMonthsInYear(year)),
		DayOfWeek:    iso.Weekday(d),
		DayOfYear:    int(ed-hebrewToEpochDay(year, 1, 1)) + 1,
	}
}
