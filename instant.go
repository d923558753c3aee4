package tcore

import (
	"github.com/temporal-go/tcore/internal/durationcore"
	"github.com/temporal-go/tcore/internal/int128"
	"github.com/temporal-go/tcore/internal/iso"
	"github.com/temporal-go/tcore/internal/ixdtf"
	"github.com/temporal-go/tcore/internal/round"
)

const dayNanoseconds = 86_400_000_000_000

// minEpochNs/maxEpochNs bound Instant to the ±10^8 days ECMAScript
// Temporal itself uses, mirrored from internal/iso's MinEpochDay/
// MaxEpochDay (spec.md §3).
var (
	minEpochNs = mustMulI64(int128.FromInt64(-100_000_000), dayNanoseconds)
	maxEpochNs = mustMulI64(int128.FromInt64(100_000_000), dayNanoseconds)
)

func mustMulI64(v int128.Int128, m int64) int128.Int128 {
	out, ok := v.MulI64(m)
	if !ok {
		panic("instant: bound overflow")
	}
	return out
}

// Instant is an exact point on the timeline: a signed count of
// nanoseconds since the Unix epoch (spec.md §4.7), grounded on
// go-chrono/chrono's ZonedDateTime "secs+nsec since epoch" accumulator
// widened to a full int128 so the whole Temporal range fits.
type Instant struct {
	epochNs int128.Int128
}

// FromEpochNanoseconds constructs an Instant directly.
func FromEpochNanoseconds(ns int128.Int128) (Instant, error) {
	if ns.Cmp(minEpochNs) < 0 || ns.Cmp(maxEpochNs) > 0 {
		return Instant{}, rangeErrorf("epoch nanoseconds out of range")
	}
	return Instant{epochNs: ns}, nil
}

// FromEpochSeconds, FromEpochMilliseconds, and FromEpochMicroseconds
// construct an Instant from a coarser epoch count.
func FromEpochSeconds(s int64) (Instant, error)      { return fromEpochScaled(s, 1_000_000_000) }
func FromEpochMilliseconds(ms int64) (Instant, error) { return fromEpochScaled(ms, 1_000_000) }
func FromEpochMicroseconds(us int64) (Instant, error) { return fromEpochScaled(us, 1_000) }

func fromEpochScaled(v, scale int64) (Instant, error) {
	ns, ok := int128.FromInt64(v).MulI64(scale)
	if !ok {
		return Instant{}, rangeErrorf("epoch value overflows")
	}
	return FromEpochNanoseconds(ns)
}

// EpochNanoseconds returns the underlying signed nanosecond count.
func (i Instant) EpochNanoseconds() int128.Int128 { return i.epochNs }

// Add returns i+dur. dur must have a zero calendar portion (spec.md
// §4.3: Instant arithmetic happens in epoch-nanosecond space only).
func (i Instant) Add(dur Duration) (Instant, error) {
	if !dur.date.IsZero() {
		return Instant{}, rangeErrorf("Instant.Add requires a duration with zero calendar fields")
	}
	sum, ok := i.epochNs.Add(dur.time.Nanoseconds())
	if !ok {
		return Instant{}, rangeErrorf("instant arithmetic overflows")
	}
	return FromEpochNanoseconds(sum)
}

// Subtract returns i-dur.
func (i Instant) Subtract(dur Duration) (Instant, error) {
	return i.Add(dur.Negated())
}

// Until returns the duration from i to other, rounded to settings'
// smallest unit (at most Hour: Instant differences have no calendar
// component, so Day/Week/Month/Year are not meaningful without a zone —
// use ZonedDateTime.Until for those). settings.LargestUnit is not
// consulted; the result is a pure time duration split into hours and
// smaller units.
func (i Instant) Until(other Instant, settings DifferenceSettings) (Duration, error) {
	deltaNs, ok := other.epochNs.Sub(i.epochNs)
	if !ok {
		return Duration{}, rangeErrorf("instant difference overflows")
	}
	ntd, err := durationcore.FromNanoseconds(deltaNs)
	if err != nil {
		return Duration{}, wrapInternal(err)
	}
	dur := Duration{time: ntd}
	increment := settings.RoundingIncrement
	if increment == 0 {
		increment = 1
	}
	smallest := settings.SmallestUnit
	if smallest > UnitHour {
		return Duration{}, rangeErrorf("Instant.Until's smallest unit may not exceed Hour")
	}
	if smallest == UnitNanosecond && increment == 1 && settings.RoundingMode == 0 {
		return dur, nil
	}
	return dur.Round(RoundTo{SmallestUnit: smallest, RoundingIncrement: increment, RoundingMode: settings.RoundingMode})
}

// Since returns the duration from other to i.
func (i Instant) Since(other Instant, settings DifferenceSettings) (Duration, error) {
	dur, err := other.Until(i, settings)
	if err != nil {
		return Duration{}, err
	}
	return dur.Negated(), nil
}

// Round rounds i to the nearest multiple of opts' increment and unit,
// at or below Day.
func (i Instant) Round(opts RoundTo) (Instant, error) {
	if err := round.ValidateIncrement(opts.SmallestUnit, opts.RoundingIncrement); err != nil {
		return Instant{}, wrapInternal(err)
	}
	unitNanos, ok := nanosPerUnit(opts.SmallestUnit)
	if !ok || opts.SmallestUnit > UnitDay {
		return Instant{}, rangeErrorf("Instant.Round requires a unit at or below Day")
	}
	rounded, err := round.Int128ToIncrement(i.epochNs, unitNanos*opts.RoundingIncrement, opts.RoundingMode)
	if err != nil {
		return Instant{}, wrapInternal(err)
	}
	return FromEpochNanoseconds(rounded)
}

// Compare orders two Instants by epoch nanoseconds.
func (i Instant) Compare(other Instant) int { return i.epochNs.Cmp(other.epochNs) }

// Equals reports whether i and other name the same instant.
func (i Instant) Equals(other Instant) bool { return i.Compare(other) == 0 }

// String renders i in canonical UTC IXDTF form ("...Z").
func (i Instant) String() string {
	days, remNs, ok := i.epochNs.DivModI64(dayNanoseconds)
	if !ok {
		return "<instant overflow>"
	}
	if remNs < 0 {
		remNs += dayNanoseconds
		days, _ = days.Sub(int128.FromInt64(1))
	}
	daysI64, _ := days.Int64()
	date, err := iso.FromEpochDay(daysI64)
	if err != nil {
		return "<instant overflow>"
	}
	full := iso.DateTime{Date: date, Time: iso.NanosToTime(remNs)}
	return ixdtf.FormatDateTime(full, true, 0, true, "", 0,
		ixdtf.FormatOptions{FractionDigits: ixdtf.FractionAuto, OffsetDisplay: ixdtf.DisplayAuto, TimeZoneDisplay: ixdtf.DisplayNever, CalendarDisplay: ixdtf.DisplayNever})
}

// ParseInstant parses an IXDTF instant string (a DateTime carrying a
// UTC designator or a numeric offset).
func ParseInstant(s string) (Instant, error) {
	parsed, err := ixdtf.ParseDateTime(s)
	if err != nil {
		return Instant{}, wrapInternal(err)
	}
	if !parsed.HasZ && parsed.OffsetNanoseconds == nil {
		return Instant{}, rangeErrorf("instant string must carry a UTC designator or numeric offset")
	}
	offsetNs := int64(0)
	if parsed.OffsetNanoseconds != nil {
		offsetNs = *parsed.OffsetNanoseconds
	}
	dayNs, ok := int128.FromInt64(iso.ToEpochDay(parsed.Date)).MulI64(dayNanoseconds)
	if !ok {
		return Instant{}, rangeErrorf("instant overflows")
	}
	wallNs, ok := dayNs.Add(int128.FromInt64(iso.TimeToNanos(parsed.Time)))
	if !ok {
		return Instant{}, rangeErrorf("instant overflows")
	}
	epochNs, ok := wallNs.Sub(int128.FromInt64(offsetNs))
	if !ok {
		return Instant{}, rangeErrorf("instant overflows")
	}
	return FromEpochNanoseconds(epochNs)
}
