// Package calendar implements the Calendar abstraction of spec.md §4.2: a
// closed tagged variant over a fixed set of named calendars, each
// translating partial field bags into ISO dates and back, and each able to
// answer field queries (year, month, monthCode, day, era, eraYear,
// inLeapYear, daysInMonth, daysInYear, monthsInYear, dayOfWeek, dayOfYear,
// weekOfYear, yearOfWeek).
//
// Grounded on go-chrono/chrono's consts.go: a closed integer-tagged enum
// (Weekday, Month) dispatching through a fixed lookup table rather than
// an open interface. Per spec.md §9 ("dynamic calendar dispatch... model
// as a tagged variant with an operations vtable indexed by tag"), this
// package generalizes that one-axis lookup table into a per-calendar
// operations struct selected by ID, registered in a fixed array — closed
// polymorphism, never an open plugin interface.
package calendar

import (
	"strings"

	"github.com/temporal-go/tcore/internal/iso"
	"github.com/temporal-go/tcore/internal/terr"
)

// ID names one of the seventeen calendar variants of spec.md §3.
type ID int

const (
	Iso ID = iota
	Gregorian
	Buddhist
	Japanese
	JapaneseExtended
	Roc
	Persian
	Indian
	Hebrew
	Chinese
	Dangi
	Coptic
	Ethiopian
	EthiopianAmeteAlem
	HijriUmmAlQura
	HijriTabularTypeIIFriday
	HijriTabularTypeIIThursday

	numCalendars
)

var names = [numCalendars]string{
	Iso:                        "iso8601",
	Gregorian:                  "gregory",
	Buddhist:                   "buddhist",
	Japanese:                   "japanese",
	JapaneseExtended:           "japanese",
	Roc:                        "roc",
	Persian:                    "persian",
	Indian:                     "indian",
	Hebrew:                     "hebrew",
	Chinese:                    "chinese",
	Dangi:                      "dangi",
	Coptic:                     "coptic",
	Ethiopian:                  "ethiopic",
	EthiopianAmeteAlem:         "ethioaa",
	HijriUmmAlQura:             "islamic-umalqura",
	HijriTabularTypeIIFriday:   "islamic-tbla",
	HijriTabularTypeIIThursday: "islamic-civil",
}

// Name returns the normalized (lowercase, BCP-47 `u-ca`-compatible) name of
// the calendar.
func (id ID) Name() string {
	if id < 0 || id >= numCalendars {
		return ""
	}
	return names[id]
}

// Parse resolves a normalized calendar name (case-insensitively) to its ID.
// JapaneseExtended shares "japanese" with Japanese and is never produced by
// Parse; it exists only as an internal variant for callers that construct
// it directly (see DESIGN.md).
func Parse(name string) (ID, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	for id := ID(0); id < numCalendars; id++ {
		if id == JapaneseExtended {
			continue
		}
		if names[id] == n {
			return id, true
		}
	}
	return 0, false
}

// PartialDate is a field bag where every field is optional, used for
// calendar-driven construction and "with" updates (spec.md §3).
type PartialDate struct {
	Era       *string
	EraYear   *int64
	Year      *int64
	Month     *int64
	MonthCode *string
	Day       *int64
}

// Fields is the result of querying every field a calendar answers for a
// given ISO date.
type Fields struct {
	Year          int64
	Month         int64 // 1-based; a leap month takes the next integer
	MonthCode     string
	Day           int64
	Era           string
	EraYear       int64
	InLeapYear    bool
	DaysInMonth   int
	DaysInYear    int
	MonthsInYear  int
	DayOfWeek     int
	DayOfYear     int
	WeekOfYear    int
	HasWeekOfYear bool
	YearOfWeek    int
	HasYearOfWeek bool
}

// ops is the per-calendar operations vtable.
type ops interface {
	dateFromFields(pd PartialDate, overflow iso.Overflow) (iso.Date, error)
	yearMonthFromFields(pd PartialDate, overflow iso.Overflow) (iso.Date, error)
	monthDayFromFields(pd PartialDate, overflow iso.Overflow) (iso.Date, error)
	fields(d iso.Date) Fields
}

var registry [numCalendars]ops

func register(id ID, o ops) { registry[id] = o }

func lookup(id ID) (ops, error) {
	if id < 0 || id >= numCalendars || registry[id] == nil {
		return nil, terr.Assertf("unknown calendar id %d", id)
	}
	return registry[id], nil
}

// DateFromFields translates a fully-specified PartialDate (naming the date
// by one of the three key combinations in spec.md §4.2) into an IsoDate.
func DateFromFields(id ID, pd PartialDate, overflow iso.Overflow) (iso.Date, error) {
	o, err := lookup(id)
	if err != nil {
		return iso.Date{}, err
	}
	if pd.Day == nil {
		return iso.Date{}, terr.Typef("PlainDate requires a day field")
	}
	return o.dateFromFields(pd, overflow)
}

// YearMonthFromFields translates (year, monthCode|month) into the ISO date
// of the first day of that calendar month.
func YearMonthFromFields(id ID, pd PartialDate, overflow iso.Overflow) (iso.Date, error) {
	o, err := lookup(id)
	if err != nil {
		return iso.Date{}, err
	}
	if pd.Year == nil && pd.EraYear == nil {
		return iso.Date{}, terr.Typef("PlainYearMonth requires a year or (era, eraYear) field")
	}
	return o.yearMonthFromFields(pd, overflow)
}

// MonthDayFromFields translates (monthCode, day) into an ISO date using
// the calendar's reference year for month/day-only values.
func MonthDayFromFields(id ID, pd PartialDate, overflow iso.Overflow) (iso.Date, error) {
	o, err := lookup(id)
	if err != nil {
		return iso.Date{}, err
	}
	if pd.Day == nil {
		return iso.Date{}, terr.Typef("PlainMonthDay requires a day field")
	}
	return o.monthDayFromFields(pd, overflow)
}

// FieldsOf answers every field query for d under calendar id.
func FieldsOf(id ID, d iso.Date) (Fields, error) {
	o, err := lookup(id)
	if err != nil {
		return Fields{}, err
	}
	return o.fields(d), nil
}

// DateUntil computes a calendar-relative DateDuration from a to b per
// spec.md §4.2: for the Iso calendar, this delegates directly to
// iso.DiffDate; for non-ISO calendars, it is computed in the calendar's
// own (year, month, day) space using its own daysInMonth for borrowing.
func DateUntil(id ID, a, b iso.Date, largestUnit iso.LargestUnit) (iso.DateDuration, error) {
	if id == Iso || id == Gregorian {
		return iso.DiffDate(a, b, largestUnit), nil
	}

	fa, err := FieldsOf(id, a)
	if err != nil {
		return iso.DateDuration{}, err
	}
	fb, err := FieldsOf(id, b)
	if err != nil {
		return iso.DateDuration{}, err
	}

	if iso.CompareDate(a, b) == 0 {
		return iso.DateDuration{}, nil
	}

	sign := int64(1)
	if iso.CompareDate(b, a) < 0 {
		sign = -1
		fa, fb = fb, fa
		a, b = b, a
	}

	years := fb.Year - fa.Year
	months := fb.Month - fa.Month
	days := fb.Day - fa.Day

	if days < 0 {
		// Borrow a month's worth of days, using daysInMonth of the month
		// immediately preceding b in the source calendar.
		prev := fb.Month - 1
		prevYear := fb.Year
		if prev < 1 {
			prev = o_monthsInYear(id, a)
			prevYear--
		}
		days += calendarDaysInMonthForYearMonth(id, prevYear, prev)
		months--
	}
	if months < 0 {
		months += o_monthsInYear(id, a)
		years--
	}

	var yy, mm, ww, dd int64
	switch largestUnit {
	case iso.Year:
		yy, mm, dd = years, months, days
	case iso.Month:
		mm, dd = years*12+months, days
	case iso.Week:
		total := iso.ToEpochDay(b) - iso.ToEpochDay(a)
		ww, dd = total/7, total%7
	case iso.Day:
		dd = iso.ToEpochDay(b) - iso.ToEpochDay(a)
	}

	return iso.DateDuration{
		Years:  sign * yy,
		Months: sign * mm,
		Weeks:  sign * ww,
		Days:   sign * dd,
	}, nil
}

func o_monthsInYear(id ID, anchor iso.Date) int64 {
	f, err := FieldsOf(id, anchor)
	if err != nil {
		return 12
	}
	return int64(f.MonthsInYear)
}

// calendarDaysInMonthForYearMonth is a best-effort lookup: it walks
// forward from the 1st of (year, month) in the calendar's own space by
// constructing the date via dateFromFields and reading back DaysInMonth.
func calendarDaysInMonthForYearMonth(id ID, year, month int64) int64 {
	d, err := YearMonthFromFields(id, PartialDate{Year: &year, Month: &month}, iso.Constrain)
	if err != nil {
		return 30
	}
	f, err := FieldsOf(id, d)
	if err != nil {
		return 30
	}
	return int64(f.DaysInMonth)
}

func i64(v int64) *int64 { return &v }
func s(v string) *string { return &v }
