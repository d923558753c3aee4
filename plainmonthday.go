package tcore

import (
	"strings"

	"github.com/temporal-go/tcore/internal/calendar"
	"github.com/temporal-go/tcore/internal/ixdtf"
)

// PlainMonthDay is a calendar month-day with no year component
// (spec.md §4.7), anchored to a reference year the way PlainYearMonth
// anchors to a reference day.
type PlainMonthDay struct {
	date PlainDate
}

// NewPlainMonthDay constructs a PlainMonthDay from calendar fields.
func NewPlainMonthDay(cal calendar.ID, pd PartialDate, overflow Overflow) (PlainMonthDay, error) {
	d, err := calendar.MonthDayFromFields(cal, pd.toInternal(), overflow.toISO())
	if err != nil {
		return PlainMonthDay{}, wrapInternal(err)
	}
	return PlainMonthDay{date: PlainDate{date: d, cal: cal}}, nil
}

func (md PlainMonthDay) Calendar() calendar.ID { return md.date.cal }

// Fields returns the full calendar field set for the anchor date.
func (md PlainMonthDay) Fields() (calendar.Fields, error) { return md.date.Fields() }

// With overlays the given month/day fields.
func (md PlainMonthDay) With(pd PartialDate, overflow Overflow) (PlainMonthDay, error) {
	f, err := md.date.Fields()
	if err != nil {
		return PlainMonthDay{}, err
	}
	merged := calendar.PartialDate{Month: i64ptr(f.Month), Day: i64ptr(f.Day)}
	if pd.Month != nil {
		merged.Month = pd.Month
	}
	if pd.MonthCode != nil {
		merged.Month = nil
		merged.MonthCode = pd.MonthCode
	}
	if pd.Day != nil {
		merged.Day = pd.Day
	}
	d, err := calendar.MonthDayFromFields(md.date.cal, merged, overflow.toISO())
	if err != nil {
		return PlainMonthDay{}, wrapInternal(err)
	}
	return PlainMonthDay{date: PlainDate{date: d, cal: md.date.cal}}, nil
}

// Equals reports whether md and other name the same month-day.
func (md PlainMonthDay) Equals(other PlainMonthDay) bool { return md.date.Equals(other.date) }

// String renders md in canonical "MM-DD" form (spec.md §4.7): the
// full date string with its leading "YYYY-" year component dropped.
func (md PlainMonthDay) String() string {
	s := ixdtf.FormatDate(md.date.date)
	return s[len(s)-5:]
}

// ParsePlainMonthDay parses an IXDTF PlainMonthDay production: the
// "--MM-DD"/"MM-DD" shorthand (anchored to isoOps' 1972 reference year,
// internal/calendar/solar.go's monthDayFromFields convention) or a full
// date (whose year is discarded).
func ParsePlainMonthDay(s string) (PlainMonthDay, error) {
	core, tail := splitAnnotationTail(s)
	core = strings.TrimPrefix(core, "--")
	if strings.Count(core, "-") == 1 {
		core = "1972-" + core
	}
	d, cal, err := ixdtf.ParseDate(core + tail)
	if err != nil {
		return PlainMonthDay{}, wrapInternal(err)
	}
	// Re-anchor through the calendar so a full date's own year is dropped.
	f, err := calendar.FieldsOf(cal, d)
	if err != nil {
		return PlainMonthDay{}, wrapInternal(err)
	}
	return NewPlainMonthDay(cal, PartialDate{MonthCode: &f.MonthCode, Day: &f.Day}, Reject)
}
