package tcore

import (
	"github.com/temporal-go/tcore/internal/calendar"
	"github.com/temporal-go/tcore/internal/durationcore"
	"github.com/temporal-go/tcore/internal/int128"
	"github.com/temporal-go/tcore/internal/iso"
	"github.com/temporal-go/tcore/internal/ixdtf"
)

// PlainDateTime combines a PlainDate and a PlainTime, grounded on
// go-chrono/chrono's LocalDateTime "combination of a LocalDate and
// LocalTime" (Split/OfLocalDateAndTime), generalized to carry a
// Calendar the way PlainDate does.
type PlainDateTime struct {
	date PlainDate
	time PlainTime
}

// NewPlainDateTime combines a PlainDate and PlainTime.
func NewPlainDateTime(date PlainDate, time PlainTime) PlainDateTime {
	return PlainDateTime{date: date, time: time}
}

// Date and Time split dt back into its two halves.
func (dt PlainDateTime) Date() PlainDate { return dt.date }
func (dt PlainDateTime) Time() PlainTime { return dt.time }

// With overlays the given calendar-date and/or time-of-day fields.
func (dt PlainDateTime) With(pd PartialDate, pt PartialTime, overflow Overflow) (PlainDateTime, error) {
	newDate, err := dt.date.With(pd, overflow)
	if err != nil {
		return PlainDateTime{}, err
	}
	newTime, err := dt.time.With(pt, overflow)
	if err != nil {
		return PlainDateTime{}, err
	}
	return PlainDateTime{date: newDate, time: newTime}, nil
}

// Add returns dt+dur, balancing a time-of-day carry across the date
// portion (spec.md §4.7): dur's sub-day nanoseconds may push the wall
// time past midnight, in which case the date advances by the same
// number of days before dur's calendar portion is applied.
func (dt PlainDateTime) Add(dur Duration, overflow Overflow) (PlainDateTime, error) {
	return dt.addSigned(dur, overflow)
}

// Subtract returns dt-dur.
func (dt PlainDateTime) Subtract(dur Duration, overflow Overflow) (PlainDateTime, error) {
	return dt.addSigned(dur.Negated(), overflow)
}

func (dt PlainDateTime) addSigned(dur Duration, overflow Overflow) (PlainDateTime, error) {
	dayCarry, newISOTime := iso.AddTime(dt.time.t, 0, 0, 0, 0, 0, mustI64(dur.time.Nanoseconds()))
	newDate, err := dt.date.addDateDuration(durationcore.DateDuration{Years: dur.date.Years, Months: dur.date.Months, Weeks: dur.date.Weeks, Days: dur.date.Days + dayCarry}, overflow)
	if err != nil {
		return PlainDateTime{}, err
	}
	return PlainDateTime{date: newDate, time: PlainTime{t: newISOTime}}, nil
}

func mustI64(v int128.Int128) int64 {
	i, _ := v.Int64()
	return i
}

// Until returns the duration from dt to other.
func (dt PlainDateTime) Until(other PlainDateTime, settings DifferenceSettings) (Duration, error) {
	dateDur, err := dt.date.Until(other.date, DifferenceSettings{LargestUnit: settings.LargestUnit, HasLargestUnit: settings.HasLargestUnit})
	if err != nil {
		return Duration{}, err
	}
	timeDeltaNs := iso.TimeToNanos(other.time.t) - iso.TimeToNanos(dt.time.t)
	ntd, err := durationcore.FromNanoseconds(int128.FromInt64(timeDeltaNs))
	if err != nil {
		return Duration{}, wrapInternal(err)
	}
	combined := Duration{date: dateDur.date, time: ntd}
	increment := settings.RoundingIncrement
	if increment == 0 {
		increment = 1
	}
	if settings.SmallestUnit == UnitNanosecond && !settings.HasLargestUnit && increment == 1 && settings.RoundingMode == 0 {
		return combined, nil
	}
	return combined.Round(RoundTo{
		SmallestUnit: settings.SmallestUnit, LargestUnit: settings.LargestUnit,
		HasLargestUnit: settings.HasLargestUnit, RoundingIncrement: increment,
		RoundingMode: settings.RoundingMode, RelativeTo: &dt.date,
	})
}

// Since returns the duration from other to dt.
func (dt PlainDateTime) Since(other PlainDateTime, settings DifferenceSettings) (Duration, error) {
	dur, err := other.Until(dt, settings)
	if err != nil {
		return Duration{}, err
	}
	return dur.Negated(), nil
}

// Round rounds dt's time-of-day component, carrying a day boundary
// crossing into the date.
func (dt PlainDateTime) Round(opts RoundTo) (PlainDateTime, error) {
	rounded, err := dt.time.Round(opts)
	if err != nil {
		return PlainDateTime{}, err
	}
	beforeNs := iso.TimeToNanos(dt.time.t)
	afterNs := iso.TimeToNanos(rounded.t)
	carry := int64(0)
	if afterNs < beforeNs && opts.RoundingMode != ModeFloor && opts.RoundingMode != ModeTrunc {
		carry = 1
	}
	newDate := dt.date
	if carry != 0 {
		var err error
		newDate, err = dt.date.addDateDuration(durationcore.DateDuration{Days: carry}, Constrain)
		if err != nil {
			return PlainDateTime{}, err
		}
	}
	return PlainDateTime{date: newDate, time: rounded}, nil
}

// Compare orders dt and other first by date, then by time.
func (dt PlainDateTime) Compare(other PlainDateTime) int {
	if c := dt.date.Compare(other.date); c != 0 {
		return c
	}
	return dt.time.Compare(other.time)
}

// Equals reports whether dt and other name the same date and time.
func (dt PlainDateTime) Equals(other PlainDateTime) bool {
	return dt.date.Equals(other.date) && dt.time.Equals(other.time)
}

// String renders dt in canonical IXDTF form.
func (dt PlainDateTime) String() string {
	full := iso.DateTime{Date: dt.date.date, Time: dt.time.t}
	return ixdtf.FormatDateTime(full, false, 0, false, "", dt.date.cal,
		ixdtf.FormatOptions{FractionDigits: ixdtf.FractionAuto, CalendarDisplay: ixdtf.DisplayAuto, OffsetDisplay: ixdtf.DisplayNever, TimeZoneDisplay: ixdtf.DisplayNever})
}

// ParsePlainDateTime parses an IXDTF DateTime production without a zone
// or offset.
func ParsePlainDateTime(s string) (PlainDateTime, error) {
	parsed, err := ixdtf.ParseDateTime(s)
	if err != nil {
		return PlainDateTime{}, wrapInternal(err)
	}
	cal := calendar.Iso
	if parsed.HasCalendar {
		cal = parsed.Calendar
	}
	return PlainDateTime{
		date: PlainDate{date: parsed.Date, cal: cal},
		time: PlainTime{t: parsed.Time},
	}, nil
}
