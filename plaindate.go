package tcore

import (
	"github.com/temporal-go/tcore/internal/calendar"
	"github.com/temporal-go/tcore/internal/durationcore"
	"github.com/temporal-go/tcore/internal/iso"
	"github.com/temporal-go/tcore/internal/ixdtf"
	"github.com/temporal-go/tcore/internal/round"
)

// PlainDate is a calendar date with no time-of-day or time-zone
// component (spec.md §4.7), grounded on go-chrono/chrono's LocalDate
// but widened from a bare Gregorian JDN to an (iso.Date, calendar.ID)
// pair so it can represent any of the 17 calendars of §4.2.
type PlainDate struct {
	date iso.Date
	cal  calendar.ID
}

// PartialDate mirrors calendar.PartialDate for the public API.
type PartialDate struct {
	Era       *string
	EraYear   *int64
	Year      *int64
	Month     *int64
	MonthCode *string
	Day       *int64
}

func (p PartialDate) toInternal() calendar.PartialDate {
	return calendar.PartialDate{Era: p.Era, EraYear: p.EraYear, Year: p.Year, Month: p.Month, MonthCode: p.MonthCode, Day: p.Day}
}

// NewPlainDate constructs a PlainDate from calendar fields under the
// given calendar and overflow behavior.
func NewPlainDate(cal calendar.ID, pd PartialDate, overflow Overflow) (PlainDate, error) {
	d, err := calendar.DateFromFields(cal, pd.toInternal(), overflow.toISO())
	if err != nil {
		return PlainDate{}, wrapInternal(err)
	}
	return PlainDate{date: d, cal: cal}, nil
}

// NewISOPlainDate constructs an ISO-calendar PlainDate directly from a
// year/month/day, the common case.
func NewISOPlainDate(year int32, month, day int, overflow Overflow) (PlainDate, error) {
	d, err := iso.RegulateDate(year, month, day, overflow.toISO())
	if err != nil {
		return PlainDate{}, wrapInternal(err)
	}
	return PlainDate{date: d, cal: calendar.Iso}, nil
}

// Calendar reports the calendar this date is expressed in.
func (d PlainDate) Calendar() calendar.ID { return d.cal }

// Fields returns the full calendar field set for d.
func (d PlainDate) Fields() (calendar.Fields, error) {
	f, err := calendar.FieldsOf(d.cal, d.date)
	return f, wrapInternal(err)
}

// ISODate returns the underlying proleptic-Gregorian (ISO) date,
// regardless of which calendar d is expressed in.
func (d PlainDate) ISODate() iso.Date { return d.date }

func i64ptr(v int64) *int64 { return &v }

// With returns a copy of d with the given fields overlaid, regulated
// under overflow.
func (d PlainDate) With(pd PartialDate, overflow Overflow) (PlainDate, error) {
	f, err := calendar.FieldsOf(d.cal, d.date)
	if err != nil {
		return PlainDate{}, wrapInternal(err)
	}
	merged := calendar.PartialDate{Year: i64ptr(f.Year), Month: i64ptr(f.Month), Day: i64ptr(f.Day)}
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
	if pd.Day != nil {
		merged.Day = pd.Day
	}
	if pd.Era != nil {
		merged.Era = pd.Era
		merged.EraYear = pd.EraYear
		merged.Year = nil
	}
	out, err := calendar.DateFromFields(d.cal, merged, overflow.toISO())
	if err != nil {
		return PlainDate{}, wrapInternal(err)
	}
	return PlainDate{date: out, cal: d.cal}, nil
}

// Add returns d plus duration's calendar portion (years/months/weeks/
// days); any time-of-day fields on duration are ignored.
func (d PlainDate) Add(dur Duration, overflow Overflow) (PlainDate, error) {
	return d.addDateDuration(dur.date, overflow)
}

// Subtract returns d minus duration's calendar portion.
func (d PlainDate) Subtract(dur Duration, overflow Overflow) (PlainDate, error) {
	return d.addDateDuration(dur.date.Negated(), overflow)
}

// addDateDuration adds a calendar-unit duration to d, borrowing
// calendar.DateFromFields for the year/month step (so non-ISO
// calendars regulate against their own month lengths) and iso.AddDate
// for the trailing week/day step, which is calendar-independent.
func (d PlainDate) addDateDuration(dd durationcore.DateDuration, overflow Overflow) (PlainDate, error) {
	if d.cal == calendar.Iso || d.cal == calendar.Gregorian {
		out, err := iso.AddDate(d.date, iso.AddFields{Years: dd.Years, Months: dd.Months, Weeks: dd.Weeks, Days: dd.Days}, overflow.toISO())
		if err != nil {
			return PlainDate{}, wrapInternal(err)
		}
		return PlainDate{date: out, cal: d.cal}, nil
	}

	f, err := calendar.FieldsOf(d.cal, d.date)
	if err != nil {
		return PlainDate{}, wrapInternal(err)
	}
	year := f.Year + dd.Years
	month := f.Month + dd.Months
	pd := calendar.PartialDate{Year: i64ptr(year), Month: i64ptr(month), Day: i64ptr(f.Day)}
	out, err := calendar.DateFromFields(d.cal, pd, overflow.toISO())
	if err != nil {
		return PlainDate{}, wrapInternal(err)
	}
	if dd.Weeks != 0 || dd.Days != 0 {
		out, err = iso.AddDate(out, iso.AddFields{Days: dd.Weeks*7 + dd.Days}, iso.Constrain)
		if err != nil {
			return PlainDate{}, wrapInternal(err)
		}
	}
	return PlainDate{date: out, cal: d.cal}, nil
}

// Until returns the duration from d to other, expressed in d's
// calendar and folded down to settings.LargestUnit.
func (d PlainDate) Until(other PlainDate, settings DifferenceSettings) (Duration, error) {
	largest := iso.Day
	if settings.HasLargestUnit {
		largest = unitToISOLargest(settings.LargestUnit)
	}
	dd, err := calendar.DateUntil(d.cal, d.date, other.date, largest)
	if err != nil {
		return Duration{}, wrapInternal(err)
	}
	dur := Duration{date: durationcore.DateDuration(dd)}
	if settings.RoundingIncrement > 1 || (settings.SmallestUnit != UnitDay && settings.SmallestUnit != 0) {
		return dur.Round(RoundTo{
			SmallestUnit: settings.SmallestUnit, LargestUnit: settings.LargestUnit,
			HasLargestUnit: settings.HasLargestUnit, RoundingIncrement: orOne(settings.RoundingIncrement),
			RoundingMode: settings.RoundingMode, RelativeTo: &d,
		})
	}
	return dur, nil
}

// Since returns the duration from other to d (the reverse of Until).
func (d PlainDate) Since(other PlainDate, settings DifferenceSettings) (Duration, error) {
	dur, err := other.Until(d, settings)
	if err != nil {
		return Duration{}, err
	}
	return dur.Negated(), nil
}

func orOne(v int64) int64 {
	if v == 0 {
		return 1
	}
	return v
}

func unitToISOLargest(u Unit) iso.LargestUnit {
	switch u {
	case UnitYear:
		return iso.Year
	case UnitMonth:
		return iso.Month
	case UnitWeek:
		return iso.Week
	default:
		return iso.Day
	}
}

// Compare orders two PlainDates by their underlying ISO date,
// irrespective of calendar.
func (d PlainDate) Compare(other PlainDate) int { return iso.CompareDate(d.date, other.date) }

// Equals reports whether d and other name the same ISO date and
// calendar.
func (d PlainDate) Equals(other PlainDate) bool { return d.cal == other.cal && d.Compare(other) == 0 }

// String renders d in canonical IXDTF form, annotating the calendar
// when it is not ISO.
func (d PlainDate) String() string {
	return ixdtf.FormatDateTime(iso.DateTime{Date: d.date}, false, 0, false, "", d.cal,
		ixdtf.FormatOptions{FractionDigits: ixdtf.FractionMinute, CalendarDisplay: ixdtf.DisplayAuto, OffsetDisplay: ixdtf.DisplayNever, TimeZoneDisplay: ixdtf.DisplayNever})
}

// ParsePlainDate parses an IXDTF PlainDate production.
func ParsePlainDate(s string) (PlainDate, error) {
	d, cal, err := ixdtf.ParseDate(s)
	if err != nil {
		return PlainDate{}, wrapInternal(err)
	}
	return PlainDate{date: d, cal: cal}, nil
}

// daysUntilAfterAdding supports Duration.Total: the epoch-day distance
// from d to d plus the given calendar portion of a duration.
func (d PlainDate) daysUntilAfterAdding(dd durationcore.DateDuration) (int64, error) {
	added, err := d.addDateDuration(dd, Constrain)
	if err != nil {
		return 0, err
	}
	return iso.ToEpochDay(added.date) - iso.ToEpochDay(d.date), nil
}

// roundDurationRelative supports Duration.Round for durations whose
// smallest unit is Week or larger, or which carry nonzero calendar
// fields: it wires into internal/round's calendar-aware RoundDuration,
// supplying a BalanceFunc that rebalances years/months/weeks/days
// against d via calendar.DateUntil (spec.md §4.4 rule 3, never raw
// integer division), then lets RoundDuration snap the smallest unit to
// a multiple of RoundingIncrement under RoundingMode.
func (d PlainDate) roundDurationRelative(dur Duration, opts RoundTo) (Duration, error) {
	largest := opts.SmallestUnit
	if opts.HasLargestUnit {
		largest = opts.LargestUnit
	}

	result, err := round.RoundDuration(round.DurationInput{
		Calendar: round.CalendarFields{
			Years: dur.date.Years, Months: dur.date.Months,
			Weeks: dur.date.Weeks, Days: dur.date.Days,
		},
		TimeNanos:    dur.time.Nanoseconds(),
		SmallestUnit: opts.SmallestUnit,
		LargestUnit:  largest,
		Increment:    opts.RoundingIncrement,
		Mode:         opts.RoundingMode,
		HasRelative:  true,
		Balance:      d.balanceCalendarFields,
	})
	if err != nil {
		return Duration{}, wrapInternal(err)
	}

	ntd, err := durationcore.FromNanoseconds(result.TimeNanos)
	if err != nil {
		return Duration{}, wrapInternal(err)
	}
	return Duration{
		date: durationcore.DateDuration{
			Years: result.Calendar.Years, Months: result.Calendar.Months,
			Weeks: result.Calendar.Weeks, Days: result.Calendar.Days,
		},
		time: ntd,
	}, nil
}

// balanceCalendarFields implements round.BalanceFunc against d: it adds
// fields to d as a calendar-unit duration, then re-derives the
// year/month/week/day breakdown of that same span via
// calendar.DateUntil bucketed no higher than largestUnit.
func (d PlainDate) balanceCalendarFields(fields round.CalendarFields, largestUnit round.Unit) (round.CalendarFields, error) {
	dd := durationcore.DateDuration{Years: fields.Years, Months: fields.Months, Weeks: fields.Weeks, Days: fields.Days}
	end, err := d.addDateDuration(dd, Constrain)
	if err != nil {
		return round.CalendarFields{}, err
	}
	newDD, err := calendar.DateUntil(d.cal, d.date, end.date, unitToISOLargest(largestUnit))
	if err != nil {
		return round.CalendarFields{}, err
	}
	return round.CalendarFields{Years: newDD.Years, Months: newDD.Months, Weeks: newDD.Weeks, Days: newDD.Days}, nil
}
