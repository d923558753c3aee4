package tcore

import (
	"github.com/temporal-go/tcore/internal/durationcore"
	"github.com/temporal-go/tcore/internal/int128"
	"github.com/temporal-go/tcore/internal/ixdtf"
	"github.com/temporal-go/tcore/internal/round"
	"github.com/temporal-go/tcore/internal/terr"
)

// Sign is the uniform sign shared by every nonzero field of a Duration
// (spec.md §4.3 invariant A).
type Sign int

const (
	Negative Sign = -1
	ZeroSign Sign = 0
	Positive Sign = 1
)

// PartialDuration is an unvalidated set of duration fields, each
// optional; FromPartialDuration defaults missing fields to 0.
type PartialDuration struct {
	Years, Months, Weeks, Days                         *int64
	Hours, Minutes, Seconds                             *int64
	Milliseconds, Microseconds, Nanoseconds             *int64
}

// Duration is ten signed integer fields (years..nanoseconds) sharing
// one sign, stored internally as a calendar DateDuration plus a
// NormalizedTimeDuration (spec.md §4.3).
//
// Grounded on go-chrono/chrono/period.go (Period{Years,Months,Weeks,
// Days} held apart from the sub-day Duration) and duration.go (the
// secs+nsec accumulator pattern, here widened to a signed int128).
type Duration struct {
	date durationcore.DateDuration
	time durationcore.NormalizedTimeDuration
}

func (d Duration) Years() int64   { return d.date.Years }
func (d Duration) Months() int64  { return d.date.Months }
func (d Duration) Weeks() int64   { return d.date.Weeks }
func (d Duration) Days() int64    { return d.date.Days }

// Hours, Minutes, Seconds, Milliseconds, Microseconds, and Nanoseconds
// split the normalized sub-day nanosecond count back into its units.
func (d Duration) Hours() int64 { h, _, _, _, _, _ := d.time.ToUnits(); return h }
func (d Duration) Minutes() int64 { _, m, _, _, _, _ := d.time.ToUnits(); return m }
func (d Duration) Seconds() int64 { _, _, s, _, _, _ := d.time.ToUnits(); return s }
func (d Duration) Milliseconds() int64 { _, _, _, ms, _, _ := d.time.ToUnits(); return ms }
func (d Duration) Microseconds() int64 { _, _, _, _, us, _ := d.time.ToUnits(); return us }
func (d Duration) Nanoseconds() int64 { _, _, _, _, _, ns := d.time.ToUnits(); return ns }

// NewDuration validates every field's sign against the others
// (invariant A) and the sub-day magnitude bound (invariant B), per
// spec.md §4.3.
func NewDuration(years, months, weeks, days, hours, minutes, seconds, ms, us, ns int64) (Duration, error) {
	dd := durationcore.DateDuration{Years: years, Months: months, Weeks: weeks, Days: days}
	ntd, err := durationcore.NewNormalizedTimeDuration(hours, minutes, seconds, ms, us, ns)
	if err != nil {
		return Duration{}, wrapInternal(err)
	}
	if err := validateSign(dd, ntd); err != nil {
		return Duration{}, err
	}
	return Duration{date: dd, time: ntd}, nil
}

func validateSign(dd durationcore.DateDuration, ntd durationcore.NormalizedTimeDuration) error {
	dateSign := dd.Sign()
	timeSign := ntd.Sign()
	if dateSign == durationcore.ZeroSign || timeSign == durationcore.ZeroSign {
		return nil
	}
	if dateSign != timeSign {
		return rangeErrorf("duration fields must share one sign")
	}
	return nil
}

// FromPartialDuration defaults every absent field to 0 then validates
// as NewDuration does.
func FromPartialDuration(p PartialDuration) (Duration, error) {
	get := func(v *int64) int64 {
		if v == nil {
			return 0
		}
		return *v
	}
	return NewDuration(
		get(p.Years), get(p.Months), get(p.Weeks), get(p.Days),
		get(p.Hours), get(p.Minutes), get(p.Seconds),
		get(p.Milliseconds), get(p.Microseconds), get(p.Nanoseconds),
	)
}

// Sign reports the common sign of d's nonzero fields, ZeroSign if d is
// entirely zero.
func (d Duration) Sign() Sign {
	if s := d.date.Sign(); s != durationcore.ZeroSign {
		return Sign(s)
	}
	return Sign(d.time.Sign())
}

// IsZero reports whether every field of d is zero.
func (d Duration) IsZero() bool { return d.date.IsZero() && d.time.IsZero() }

// Abs returns |d|: every field's sign is normalized to non-negative.
func (d Duration) Abs() Duration {
	if d.Sign() >= 0 {
		return d
	}
	return d.mustNegate()
}

// Negated returns -d.
func (d Duration) Negated() Duration { return d.mustNegate() }

func (d Duration) mustNegate() Duration {
	negTime, err := d.time.Negated()
	if err != nil {
		// Invariant B's bound always excludes the one magnitude with no
		// positive counterpart, so Negated here cannot fail in practice.
		panic(wrapInternal(err))
	}
	return Duration{date: d.date.Negated(), time: negTime}
}

// Add returns d+other. Per spec.md §4.3, bare Duration.Add is defined
// only when both operands have a zero calendar (date) portion; mixing
// calendar units requires resolving against a relative-to date, which
// callers do through PlainDate.Add/Until instead.
func (d Duration) Add(other Duration) (Duration, error) {
	if !d.date.IsZero() || !other.date.IsZero() {
		return Duration{}, rangeErrorf("Duration.Add requires both operands to have zero calendar fields; use a relative-to type instead")
	}
	sum, err := d.time.Add(other.time)
	if err != nil {
		return Duration{}, wrapInternal(err)
	}
	return Duration{time: sum}, nil
}

// Subtract returns d-other, under the same restriction as Add.
func (d Duration) Subtract(other Duration) (Duration, error) {
	return d.Add(other.Negated())
}

// Compare orders two zero-calendar durations by their total nanosecond
// count; it returns a RangeError if either carries a calendar component,
// since those cannot be compared without a relative-to (use
// PlainDate.Compare of the two endpoints instead).
func (d Duration) Compare(other Duration) (int, error) {
	if !d.date.IsZero() || !other.date.IsZero() {
		return 0, rangeErrorf("Duration.Compare requires both operands to have zero calendar fields")
	}
	return d.time.Nanoseconds().Cmp(other.time.Nanoseconds()), nil
}

// Equals reports whether every field of d equals the corresponding
// field of other.
func (d Duration) Equals(other Duration) bool {
	return d.date == other.date && d.time.Nanoseconds().Cmp(other.time.Nanoseconds()) == 0
}

// rawDuration converts d to the ixdtf package's unvalidated ten-field
// shape, for formatting.
func (d Duration) rawDuration() ixdtf.RawDuration {
	neg := d.Sign() < 0
	abs := d.Abs()
	h, m, s, ms, us, ns := abs.time.ToUnits()
	fractionNanos := ms*1_000_000 + us*1_000 + ns
	unit := ""
	if fractionNanos != 0 {
		unit = "S"
	}
	return ixdtf.RawDuration{
		Negative:      neg,
		Years:         abs.date.Years,
		Months:        abs.date.Months,
		Weeks:         abs.date.Weeks,
		Days:          abs.date.Days,
		Hours:         h,
		Minutes:       m,
		Seconds:       s,
		FractionNanos: fractionNanos,
		FractionUnit:  unit,
	}
}

// String renders d in canonical "PnYnMnWnDTnHnMnS" form.
func (d Duration) String() string {
	out, err := ixdtf.FormatDuration(d.rawDuration())
	if err != nil {
		// rawDuration always produces a well-formed RawDuration; this
		// indicates a library bug, not bad input.
		panic(wrapInternal(err))
	}
	return out
}

// ParseDuration parses an ISO 8601 / IXDTF duration string and
// validates it as NewDuration does.
func ParseDuration(s string) (Duration, error) {
	raw, err := ixdtf.ParseDuration(s)
	if err != nil {
		return Duration{}, wrapInternal(err)
	}
	sign := int64(1)
	if raw.Negative {
		sign = -1
	}
	ms, us, ns := int64(0), int64(0), int64(0)
	switch raw.FractionUnit {
	case "S":
		total := raw.FractionNanos
		ms = total / 1_000_000
		us = (total / 1_000) % 1_000
		ns = total % 1_000
	case "H", "M":
		// A fraction on hours or minutes is legal IXDTF grammar but
		// cannot be represented losslessly in the ten-field model; it
		// must instead have been folded into the smaller units by the
		// caller that produced it. Reject rather than silently drop
		// precision.
		if raw.FractionNanos != 0 {
			return Duration{}, rangeErrorf("fractional %s component is not supported in a ten-field Duration", raw.FractionUnit)
		}
	}
	return NewDuration(
		sign*raw.Years, sign*raw.Months, sign*raw.Weeks, sign*raw.Days,
		sign*raw.Hours, sign*raw.Minutes, sign*raw.Seconds,
		sign*ms, sign*us, sign*ns,
	)
}

// Total returns the finite signed fractional count of unit in d,
// relative to relativeTo (required whenever d carries a nonzero
// calendar field, or unit is Month/Year), per spec.md §4.4 rule 6.
func (d Duration) Total(unit Unit, relativeTo *PlainDate) (Finite, error) {
	unitNanos, ok := nanosPerUnit(unit)
	if !ok {
		// Month and Year have no fixed nanosecond size; total them via
		// the calendar-aware round.Total engine, which balances against
		// relativeTo the same way roundDurationRelative does.
		if relativeTo == nil {
			return 0, rangeErrorf("Duration.Total against %v requires relativeTo to balance through the calendar", unit)
		}
		total, err := round.Total(
			round.CalendarFields{Years: d.date.Years, Months: d.date.Months, Weeks: d.date.Weeks, Days: d.date.Days},
			d.time.Nanoseconds(), unit, relativeTo.balanceCalendarFields, UnitYear,
		)
		if err != nil {
			return 0, wrapInternal(err)
		}
		return NewFinite(total)
	}

	ns, err := d.totalNanoseconds(relativeTo)
	if err != nil {
		return 0, err
	}
	numerator, exact := ns.Int64()
	if !exact {
		// Fall back to a coarser but still exact-enough path: divide in
		// i128 space first, losing only the fractional remainder to
		// float64's own precision, which Finite already accepts. The
		// quotient may itself exceed int64, so it is split at 10^9.
		q, r, ok := ns.DivModI64(unitNanos)
		if !ok {
			return 0, rangeErrorf("duration total overflows")
		}
		qHigh, qLow, _ := q.DivModI64(1_000_000_000)
		qHighI, _ := qHigh.Int64()
		f, err := NewFinite(float64(qHighI)*1e9 + float64(qLow) + float64(r)/float64(unitNanos))
		if err != nil {
			return 0, err
		}
		return f, nil
	}
	f, err := NewFinite(float64(numerator) / float64(unitNanos))
	if err != nil {
		return 0, err
	}
	return f, nil
}

func (d Duration) totalNanoseconds(relativeTo *PlainDate) (int128.Int128, error) {
	if d.date.IsZero() {
		return d.time.Nanoseconds(), nil
	}
	if relativeTo == nil {
		return int128.Int128{}, rangeErrorf("Duration.Total requires relativeTo when the duration has nonzero calendar fields")
	}
	days, err := relativeTo.daysUntilAfterAdding(d.date)
	if err != nil {
		return int128.Int128{}, err
	}
	dayNs, ok := int128.FromInt64(days).MulI64(86_400_000_000_000)
	if !ok {
		return int128.Int128{}, rangeErrorf("duration total overflows")
	}
	sum, ok := dayNs.Add(d.time.Nanoseconds())
	if !ok {
		return int128.Int128{}, rangeErrorf("duration total overflows")
	}
	return sum, nil
}

func nanosPerUnit(u Unit) (int64, bool) {
	switch u {
	case UnitNanosecond:
		return 1, true
	case UnitMicrosecond:
		return 1_000, true
	case UnitMillisecond:
		return 1_000_000, true
	case UnitSecond:
		return 1_000_000_000, true
	case UnitMinute:
		return 60_000_000_000, true
	case UnitHour:
		return 3_600_000_000_000, true
	case UnitDay:
		return 86_400_000_000_000, true
	case UnitWeek:
		return 7 * 86_400_000_000_000, true
	default:
		return 0, false
	}
}

// Round rounds d per spec.md §4.4: units at or below Day reduce to a
// direct i128 increment-round of the normalized nanosecond count;
// units at or above Week, or a duration with nonzero calendar fields,
// require relativeTo to balance through the calendar first.
func (d Duration) Round(opts RoundTo) (Duration, error) {
	if err := round.ValidateIncrement(opts.SmallestUnit, opts.RoundingIncrement); err != nil {
		return Duration{}, wrapInternal(err)
	}

	if opts.SmallestUnit <= UnitDay && d.date.IsZero() {
		unitNanos, _ := nanosPerUnit(opts.SmallestUnit)
		divisor := unitNanos * opts.RoundingIncrement
		rounded, err := round.Int128ToIncrement(d.time.Nanoseconds(), divisor, opts.RoundingMode)
		if err != nil {
			return Duration{}, wrapInternal(err)
		}
		ntd, err := durationcore.FromNanoseconds(rounded)
		if err != nil {
			return Duration{}, wrapInternal(err)
		}
		return Duration{time: ntd}, nil
	}

	if opts.RelativeTo == nil {
		return Duration{}, rangeErrorf("rounding to %v or a calendar-bearing duration requires RelativeTo", opts.SmallestUnit)
	}
	return opts.RelativeTo.roundDurationRelative(d, opts)
}
