package tcore

import (
	"github.com/temporal-go/tcore/internal/durationcore"
	"github.com/temporal-go/tcore/internal/int128"
	"github.com/temporal-go/tcore/internal/iso"
	"github.com/temporal-go/tcore/internal/ixdtf"
	"github.com/temporal-go/tcore/internal/round"
)

// PlainTime is a time-of-day with no date or time-zone component
// (spec.md §4.7), grounded on go-chrono/chrono's LocalTime but
// restricted to the ISO 24-hour clock: the teacher's "hour up to 99"
// business-hours extension has no Temporal equivalent and is dropped.
type PlainTime struct {
	t iso.Time
}

// PartialTime mirrors PlainTime's fields for With/partial construction.
type PartialTime struct {
	Hour, Minute, Second                *int64
	Millisecond, Microsecond, Nanosecond *int64
}

// NewPlainTime constructs a PlainTime, constraining or rejecting
// out-of-range fields per overflow.
func NewPlainTime(hour, minute, second, ms, us, ns int, overflow Overflow) (PlainTime, error) {
	if overflow == Reject {
		if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 ||
			ms < 0 || ms > 999 || us < 0 || us > 999 || ns < 0 || ns > 999 {
			return PlainTime{}, rangeErrorf("time field out of range")
		}
	}
	_, t := iso.AddTime(iso.Time{}, int64(hour), int64(minute), int64(second), int64(ms), int64(us), int64(ns))
	return PlainTime{t: t}, nil
}

// Hour, Minute, Second, Millisecond, Microsecond, and Nanosecond report
// the corresponding field of t.
func (t PlainTime) Hour() int        { return int(t.t.Hour) }
func (t PlainTime) Minute() int      { return int(t.t.Minute) }
func (t PlainTime) Second() int      { return int(t.t.Second) }
func (t PlainTime) Millisecond() int { return int(t.t.Millisecond) }
func (t PlainTime) Microsecond() int { return int(t.t.Microsecond) }
func (t PlainTime) Nanosecond() int  { return int(t.t.Nanosecond) }

// With returns a copy of t with the given fields overlaid.
func (t PlainTime) With(p PartialTime, overflow Overflow) (PlainTime, error) {
	get := func(v *int64, cur int) int {
		if v == nil {
			return cur
		}
		return int(*v)
	}
	return NewPlainTime(
		get(p.Hour, t.Hour()), get(p.Minute, t.Minute()), get(p.Second, t.Second()),
		get(p.Millisecond, t.Millisecond()), get(p.Microsecond, t.Microsecond()), get(p.Nanosecond, t.Nanosecond()),
		overflow,
	)
}

// Add returns t plus dur's time-of-day portion, wrapping across
// midnight; dayCarry (how many whole days were crossed) is discarded
// here and surfaced by PlainDateTime.Add instead.
func (t PlainTime) Add(dur Duration) PlainTime {
	ns := dur.time.Nanoseconds()
	// Whole days do not move the clock, so reduce modulo one day first;
	// the remainder always fits an int64 even when ns does not.
	_, nsI64, _ := ns.DivModI64(86_400_000_000_000)
	_, out := iso.AddTime(t.t, 0, 0, 0, 0, 0, nsI64)
	return PlainTime{t: out}
}

// Subtract returns t minus dur's time-of-day portion.
func (t PlainTime) Subtract(dur Duration) PlainTime {
	return t.Add(dur.Negated())
}

// Until returns the duration from t to other, folded to settings'
// largest/smallest unit within a single day.
func (t PlainTime) Until(other PlainTime, settings DifferenceSettings) (Duration, error) {
	deltaNs := iso.TimeToNanos(other.t) - iso.TimeToNanos(t.t)
	ntd, err := durationcore.FromNanoseconds(int128.FromInt64(deltaNs))
	if err != nil {
		return Duration{}, wrapInternal(err)
	}
	dur := Duration{time: ntd}
	increment := settings.RoundingIncrement
	if increment == 0 {
		increment = 1
	}
	smallest := settings.SmallestUnit
	if smallest == 0 && !settings.HasLargestUnit {
		smallest = UnitNanosecond
	}
	return dur.Round(RoundTo{SmallestUnit: smallest, LargestUnit: settings.LargestUnit, HasLargestUnit: settings.HasLargestUnit, RoundingIncrement: increment, RoundingMode: settings.RoundingMode})
}

// Since returns the duration from other to t.
func (t PlainTime) Since(other PlainTime, settings DifferenceSettings) (Duration, error) {
	dur, err := other.Until(t, settings)
	if err != nil {
		return Duration{}, err
	}
	return dur.Negated(), nil
}

// Round rounds t to the nearest multiple of opts' increment and unit.
func (t PlainTime) Round(opts RoundTo) (PlainTime, error) {
	if err := round.ValidateIncrement(opts.SmallestUnit, opts.RoundingIncrement); err != nil {
		return PlainTime{}, wrapInternal(err)
	}
	unitNanos, ok := nanosPerUnit(opts.SmallestUnit)
	if !ok || opts.SmallestUnit > UnitDay {
		return PlainTime{}, rangeErrorf("PlainTime.Round requires a unit at or below Day")
	}
	ns := iso.TimeToNanos(t.t)
	rounded, err := round.Int128ToIncrement(int128.FromInt64(ns), unitNanos*opts.RoundingIncrement, opts.RoundingMode)
	if err != nil {
		return PlainTime{}, wrapInternal(err)
	}
	roundedI64, _ := rounded.Int64()
	roundedI64 %= 86_400_000_000_000
	if roundedI64 < 0 {
		roundedI64 += 86_400_000_000_000
	}
	return PlainTime{t: iso.NanosToTime(roundedI64)}, nil
}

// Compare orders two PlainTimes by time-of-day.
func (t PlainTime) Compare(other PlainTime) int { return iso.CompareTime(t.t, other.t) }

// Equals reports whether t and other name the same time-of-day.
func (t PlainTime) Equals(other PlainTime) bool { return t.Compare(other) == 0 }

// String renders t in canonical "HH:MM:SS[.fraction]" form.
func (t PlainTime) String() string {
	return ixdtf.FormatTime(t.t, ixdtf.FractionAuto)
}

// ParsePlainTime parses an IXDTF PlainTime production.
func ParsePlainTime(s string) (PlainTime, error) {
	t, err := ixdtf.ParseTime(s)
	if err != nil {
		return PlainTime{}, wrapInternal(err)
	}
	return PlainTime{t: t}, nil
}
