// Package iso implements the ISO date/time kernel described in spec.md §4.1:
// balancing, constraining, regulating, and epoch-day conversion for the
// proleptic Gregorian calendar, plus signed carry-propagating time-of-day
// arithmetic.
//
// Grounded on go-chrono/chrono's date.go (fromDate/makeDate/makeJDN/
// addDateToDate/isDateInBounds) and time.go (makeTime/fromTime/addTime);
// see DESIGN.md for the full mapping. The epoch here is a plain signed
// day count centered on 1970-01-01, rather than the teacher's Julian Day
// Number, to match spec.md's ±10^8-day window.
package iso

import (
	"fmt"

	"github.com/temporal-go/tcore/internal/terr"
)

// Overflow controls how out-of-range field values are handled when
// regulating a candidate date (spec.md §4.1, §4.2).
type Overflow int

const (
	// Constrain clamps out-of-range fields to the nearest valid value.
	Constrain Overflow = iota
	// Reject fails if any field is out of range.
	Reject
)

// LargestUnit names the largest calendar unit diff_iso_date may produce.
type LargestUnit int

const (
	Year LargestUnit = iota
	Month
	Week
	Day
)

// Bounds of the valid ISO date window (spec.md §3): the inclusive year
// range whose epoch day magnitude stays within ±10^8 days. The window is
// anchored so that day 0 is 1970-01-01.
const (
	MinEpochDay = -100_000_000
	MaxEpochDay = 100_000_000

	MinYear = -271821
	MaxYear = 275760
)

// Date is a constructed, valid ISO calendar date: proleptic Gregorian,
// within the valid ISO window.
type Date struct {
	Year  int32
	Month int8 // 1..12
	Day   int8 // 1..31
}

// Time is a time-of-day with nanosecond resolution. 60-second minutes are
// never stored; leap seconds are collapsed to 59 at parse time only.
type Time struct {
	Hour        int8  // 0..23
	Minute      int8  // 0..59
	Second      int8  // 0..59
	Millisecond int16 // 0..999
	Microsecond int16 // 0..999
	Nanosecond  int16 // 0..999
}

// DateTime is the canonical wall representation: a Date paired with a Time.
type DateTime struct {
	Date Date
	Time Time
}

func isLeapYear(year int32) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

var daysInMonthTable = [12]int8{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the number of days in (year, month), month in 1..12.
func DaysInMonth(year int32, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	if month == 2 && isLeapYear(year) {
		return 29
	}
	return int(daysInMonthTable[month-1])
}

// DaysInYear returns 365 or 366.
func DaysInYear(year int32) int {
	if isLeapYear(year) {
		return 366
	}
	return 365
}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int32) bool { return isLeapYear(year) }

// constrainMonth clamps m into 1..12.
func constrainMonth(m int) int {
	if m < 1 {
		return 1
	}
	if m > 12 {
		return 12
	}
	return m
}

// ConstrainDate clamps month to 1..12 and day to 1..daysInMonth(year,month).
// Field-level constraining never fails; only the year-level window check can.
func ConstrainDate(year int32, month, day int) (Date, error) {
	m := constrainMonth(month)
	dim := DaysInMonth(year, m)
	d := day
	if d < 1 {
		d = 1
	}
	if d > dim {
		d = dim
	}
	return checkWindow(Date{Year: year, Month: int8(m), Day: int8(d)})
}

// RegulateDate applies Overflow to a candidate (year, month, day).
func RegulateDate(year int32, month, day int, overflow Overflow) (Date, error) {
	switch overflow {
	case Constrain:
		return ConstrainDate(year, month, day)
	case Reject:
		if month < 1 || month > 12 {
			return Date{}, terr.Rangef("month %d out of range 1..12", month)
		}
		dim := DaysInMonth(year, month)
		if day < 1 || day > dim {
			return Date{}, terr.Rangef("day %d out of range 1..%d", day, dim)
		}
		return checkWindow(Date{Year: year, Month: int8(month), Day: int8(day)})
	default:
		return Date{}, terr.Assertf("unknown overflow %d", overflow)
	}
}

func checkWindow(d Date) (Date, error) {
	ed := dateToEpochDay(d)
	if ed < MinEpochDay || ed > MaxEpochDay {
		return Date{}, terr.Rangef("date %04d-%02d-%02d outside the valid ISO window", d.Year, d.Month, d.Day)
	}
	if d.Year < MinYear || d.Year > MaxYear {
		return Date{}, terr.Rangef("year %d outside the valid ISO window", d.Year)
	}
	return d, nil
}

// BalanceDate interprets an arbitrary (possibly out-of-range) month and day
// by carrying overflow into the year, then validates the result lies in the
// ISO window.
func BalanceDate(year int32, month, day int) (Date, error) {
	// Carry month into year first, landing month in 1..12.
	y := int64(year)
	m := int64(month) - 1
	y += m / 12
	m = m % 12
	if m < 0 {
		m += 12
		y--
	}
	month = int(m) + 1
	year = int32(y)

	// Now carry day via epoch-day arithmetic: start at day 1 of (year,
	// month) and add (day-1) days.
	base := dateToEpochDay(Date{Year: year, Month: int8(month), Day: 1})
	ed := base + int64(day) - 1
	if ed < MinEpochDay || ed > MaxEpochDay {
		return Date{}, terr.Rangef("date out of the valid ISO window")
	}
	d := epochDayToDate(ed)
	return checkWindow(d)
}

// dateToEpochDay converts a (possibly pre-validated) Date to a signed day
// count from 1970-01-01, using the standard proleptic Gregorian formula.
// civilFromDays / daysFromCivil below (Howard Hinnant's algorithm) are exact
// across the full supported range and invert each other precisely.
func dateToEpochDay(d Date) int64 {
	y := int64(d.Year)
	m := int64(d.Month)
	dd := int64(d.Day)
	if m <= 2 {
		y--
	}
	era := y
	if y < 0 {
		era = y - 399
	}
	era /= 400
	yoe := y - era*400
	var mp int64
	if m > 2 {
		mp = m - 3
	} else {
		mp = m + 9
	}
	doy := (153*mp+2)/5 + dd - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

// epochDayToDate is the exact inverse of dateToEpochDay.
func epochDayToDate(z int64) Date {
	z += 719468
	era := z
	if z < 0 {
		era = z - 146096
	}
	era /= 146097
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d := doy - (153*mp+2)/5 + 1
	var m int64
	if mp < 10 {
		m = mp + 3
	} else {
		m = mp - 9
	}
	if m <= 2 {
		y++
	}
	return Date{Year: int32(y), Month: int8(m), Day: int8(d)}
}

// ToEpochDay exposes dateToEpochDay for a Date already known to be valid.
func ToEpochDay(d Date) int64 { return dateToEpochDay(d) }

// FromEpochDay exposes epochDayToDate, checking the result lies in the
// valid ISO window.
func FromEpochDay(ed int64) (Date, error) {
	if ed < MinEpochDay || ed > MaxEpochDay {
		return Date{}, terr.Rangef("epoch day %d outside the valid ISO window", ed)
	}
	return checkWindow(epochDayToDate(ed))
}

// AddFields is the (years, months, weeks, days) field bag accepted by
// AddDate.
type AddFields struct {
	Years, Months, Weeks, Days int64
}

// AddDate adds years then months (regulating after each addition, per
// spec.md §4.1), then adds (weeks*7 + days) as epoch-day arithmetic.
func AddDate(d Date, f AddFields, overflow Overflow) (Date, error) {
	year := int64(d.Year) + f.Years
	if year < MinYear-1 || year > MaxYear+1 {
		return Date{}, terr.Rangef("year overflow adding years")
	}
	withYears, err := RegulateDate(int32(year), int(d.Month), int(d.Day), overflow)
	if err != nil {
		return Date{}, err
	}

	totalMonths := int64(withYears.Month) - 1 + f.Months
	y2 := int64(withYears.Year) + totalMonths/12
	m2 := totalMonths % 12
	if m2 < 0 {
		m2 += 12
		y2--
	}
	withMonths, err := RegulateDate(int32(y2), int(m2)+1, int(withYears.Day), overflow)
	if err != nil {
		return Date{}, err
	}

	days := f.Weeks*7 + f.Days
	ed := dateToEpochDay(withMonths) + days
	return FromEpochDay(ed)
}

// DateDuration is the four calendar fields produced by DiffDate.
type DateDuration struct {
	Years, Months, Weeks, Days int64
}

// DiffDate produces d such that AddDate(a, d, Constrain) == b, with
// sign(d) matching sign(b-a), balanced up to largestUnit. Borrowing always
// takes from the larger unit first (years before months), per spec.md
// §4.1: for b-a with a.Day > b.Day, the month difference is decremented
// and the day count is the distance from a advanced by the remaining
// years and months (clamped to that month's end) to b, so 2024-01-31 to
// 2024-03-01 is one month (to 02-29) plus one day.
func DiffDate(a, b Date, largestUnit LargestUnit) DateDuration {
	if dateToEpochDay(a) == dateToEpochDay(b) {
		return DateDuration{}
	}

	sign := int64(1)
	if dateToEpochDay(b) < dateToEpochDay(a) {
		sign = -1
		a, b = b, a
	}

	years := int64(b.Year) - int64(a.Year)
	months := int64(b.Month) - int64(a.Month)
	days := int64(b.Day) - int64(a.Day)

	if days < 0 {
		months--
	}
	if months < 0 {
		months += 12
		years--
	}
	// Borrowed days run from a plus the whole years and months (lying
	// between a and b, so always in range) up to b.
	mid, _ := AddDate(a, AddFields{Years: years, Months: months}, Constrain)
	days = dateToEpochDay(b) - dateToEpochDay(mid)

	weeks := int64(0)
	switch largestUnit {
	case Year:
		// keep as-is
	case Month:
		years, months = 0, years*12+months
	case Week:
		years, months = 0, 0
		weeks = days / 7
		days = days % 7
		// Re-fold years/months worth of days isn't meaningful once we've
		// dropped calendar units; recompute purely in days instead.
		totalDays := dateToEpochDay(b) - dateToEpochDay(a)
		weeks = totalDays / 7
		days = totalDays % 7
	case Day:
		totalDays := dateToEpochDay(b) - dateToEpochDay(a)
		years, months, weeks, days = 0, 0, 0, totalDays
	}

	return DateDuration{
		Years:  sign * years,
		Months: sign * months,
		Weeks:  sign * weeks,
		Days:   sign * days,
	}
}

// AddTime accepts signed integer deltas in each time unit and returns the
// day carry (positive or negative) plus the resulting normalized Time.
func AddTime(t Time, hours, minutes, seconds, ms, us, ns int64) (dayCarry int64, out Time) {
	total := timeToNanos(t)
	total += hours * 3_600_000_000_000
	total += minutes * 60_000_000_000
	total += seconds * 1_000_000_000
	total += ms * 1_000_000
	total += us * 1_000
	total += ns

	const perDay = 86_400_000_000_000
	dayCarry = total / perDay
	rem := total % perDay
	if rem < 0 {
		rem += perDay
		dayCarry--
	}
	return dayCarry, nanosToTime(rem)
}

func timeToNanos(t Time) int64 {
	return int64(t.Hour)*3_600_000_000_000 +
		int64(t.Minute)*60_000_000_000 +
		int64(t.Second)*1_000_000_000 +
		int64(t.Millisecond)*1_000_000 +
		int64(t.Microsecond)*1_000 +
		int64(t.Nanosecond)
}

func nanosToTime(ns int64) Time {
	h := ns / 3_600_000_000_000
	ns -= h * 3_600_000_000_000
	m := ns / 60_000_000_000
	ns -= m * 60_000_000_000
	s := ns / 1_000_000_000
	ns -= s * 1_000_000_000
	milli := ns / 1_000_000
	ns -= milli * 1_000_000
	micro := ns / 1_000
	ns -= micro * 1_000
	return Time{
		Hour: int8(h), Minute: int8(m), Second: int8(s),
		Millisecond: int16(milli), Microsecond: int16(micro), Nanosecond: int16(ns),
	}
}

// TimeToNanos exposes timeToNanos for use by callers that need the raw
// sub-day nanosecond offset (e.g. the time-zone and rounding layers).
func TimeToNanos(t Time) int64 { return timeToNanos(t) }

// NanosToTime exposes nanosToTime; ns must be in [0, 86400e9).
func NanosToTime(ns int64) Time { return nanosToTime(ns) }

// Weekday returns ISO weekday, Monday=1..Sunday=7.
func Weekday(d Date) int {
	ed := dateToEpochDay(d)
	// 1970-01-01 was a Thursday (weekday 4).
	wd := (ed+3)%7 + 1
	if wd <= 0 {
		wd += 7
	}
	return int(wd)
}

// DayOfYear returns the 1-based ordinal day within d's year.
func DayOfYear(d Date) int {
	jan1 := dateToEpochDay(Date{Year: d.Year, Month: 1, Day: 1})
	return int(dateToEpochDay(d)-jan1) + 1
}

// ISOWeek returns the ISO 8601 (year, week) for d.
func ISOWeek(d Date) (isoYear, isoWeek int) {
	wd := Weekday(d)
	// Move to the Thursday of this ISO week, whose calendar year is the ISO year.
	thursday, _ := epochDayOffset(d, 4-wd)
	isoYear = int(thursday.Year)
	jan1 := dateToEpochDay(Date{Year: thursday.Year, Month: 1, Day: 1})
	isoWeek = int((dateToEpochDay(thursday)-jan1)/7) + 1
	return
}

func epochDayOffset(d Date, delta int) (Date, error) {
	ed := dateToEpochDay(d) + int64(delta)
	return FromEpochDay(ed)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (t Time) String() string {
	s := fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	ns := int(t.Millisecond)*1_000_000 + int(t.Microsecond)*1_000 + int(t.Nanosecond)
	if ns != 0 {
		s += fmt.Sprintf(".%09d", ns)
	}
	return s
}

// CompareDate returns -1, 0, or 1.
func CompareDate(a, b Date) int {
	ea, eb := dateToEpochDay(a), dateToEpochDay(b)
	switch {
	case ea < eb:
		return -1
	case ea > eb:
		return 1
	default:
		return 0
	}
}

// CompareTime returns -1, 0, or 1.
func CompareTime(a, b Time) int {
	na, nb := timeToNanos(a), timeToNanos(b)
	switch {
	case na < nb:
		return -1
	case na > nb:
		return 1
	default:
		return 0
	}
}
