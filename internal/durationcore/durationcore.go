// Package durationcore implements the two-part Duration representation
// from spec.md §4.3: a DateDuration (years, months, weeks, days, integral)
// plus a NormalizedTimeDuration (sub-day nanoseconds as a signed 128-bit
// integer).
//
// Grounded on go-chrono/chrono's duration.go (secs+nsec accumulator) and
// period.go (a separate Period{Years,Months,Weeks,Days} from the time
// Duration) — the teacher already keeps the calendar part and the time
// part as two distinct types; this widens the time part to a signed
// int128 nanosecond count so it can represent a negative duration, which
// the teacher's monotonic-elapsed-time Duration never needs to.
package durationcore

import (
	"github.com/temporal-go/tcore/internal/int128"
	"github.com/temporal-go/tcore/internal/terr"
)

// Sign is the uniform sign of a Duration's nonzero fields.
type Sign int

const (
	Negative Sign = -1
	ZeroSign Sign = 0
	Positive Sign = 1
)

// DateDuration is the integral calendar-unit portion of a Duration.
type DateDuration struct {
	Years, Months, Weeks, Days int64
}

// Sign returns the common sign of the nonzero fields, or ZeroSign if
// DateDuration has no nonzero field. The fields are expected (by the
// caller, e.g. tcore's validateSign in NewDuration) to already share one sign.
func (d DateDuration) Sign() Sign {
	for _, v := range []int64{d.Years, d.Months, d.Weeks, d.Days} {
		if v > 0 {
			return Positive
		}
		if v < 0 {
			return Negative
		}
	}
	return ZeroSign
}

// IsZero reports whether every field is zero.
func (d DateDuration) IsZero() bool { return d == DateDuration{} }

// Negated returns -d.
func (d DateDuration) Negated() DateDuration {
	return DateDuration{-d.Years, -d.Months, -d.Weeks, -d.Days}
}

// NormalizedTimeDuration is the sub-day portion of a Duration, stored as a
// single signed nanosecond count.
type NormalizedTimeDuration struct {
	ns int128.Int128
}

// maxTimeDurationNanos is 2^53-1 seconds worth of nanoseconds, the bound
// spec.md §3 Invariant B places on the time portion's magnitude.
var maxTimeDurationNanos = mustMul(int128.FromInt64(1<<53-1), 1_000_000_000)

func mustMul(v int128.Int128, m int64) int128.Int128 {
	out, ok := v.MulI64(m)
	if !ok {
		panic("durationcore: constant overflow")
	}
	return out
}

// NewNormalizedTimeDuration builds a NormalizedTimeDuration from
// (hours, minutes, seconds, ms, us, ns), each possibly large and signed;
// conversion to the single nanosecond accumulator is exact.
func NewNormalizedTimeDuration(hours, minutes, seconds, ms, us, ns int64) (NormalizedTimeDuration, error) {
	total := int128.FromInt64(0)
	for _, term := range []struct {
		v    int64
		unit int64
	}{
		{hours, 3_600_000_000_000},
		{minutes, 60_000_000_000},
		{seconds, 1_000_000_000},
		{ms, 1_000_000},
		{us, 1_000},
		{ns, 1},
	} {
		scaled, ok := int128.FromInt64(term.v).MulI64(term.unit)
		if !ok {
			return NormalizedTimeDuration{}, terr.Rangef("time duration overflow")
		}
		total, ok = total.Add(scaled)
		if !ok {
			return NormalizedTimeDuration{}, terr.Rangef("time duration overflow")
		}
	}
	return checkedNormalized(total)
}

func checkedNormalized(total int128.Int128) (NormalizedTimeDuration, error) {
	abs, ok := total.Abs()
	if !ok {
		return NormalizedTimeDuration{}, terr.Rangef("time duration overflow")
	}
	if abs.Cmp(maxTimeDurationNanos) > 0 {
		return NormalizedTimeDuration{}, terr.Rangef("time duration exceeds 2^53-1 seconds of nanoseconds")
	}
	return NormalizedTimeDuration{ns: total}, nil
}

// FromNanoseconds wraps a raw nanosecond count, validating invariant B.
func FromNanoseconds(ns int128.Int128) (NormalizedTimeDuration, error) {
	return checkedNormalized(ns)
}

// Nanoseconds returns the total signed nanosecond count.
func (n NormalizedTimeDuration) Nanoseconds() int128.Int128 { return n.ns }

// Sign returns the sign of the nanosecond count.
func (n NormalizedTimeDuration) Sign() Sign {
	switch n.ns.Sign() {
	case 1:
		return Positive
	case -1:
		return Negative
	default:
		return ZeroSign
	}
}

// IsZero reports whether n is exactly zero.
func (n NormalizedTimeDuration) IsZero() bool { return n.ns.Sign() == 0 }

// Negated returns -n, failing only if n holds the one value with no
// positive counterpart (which Invariant B's bound always excludes).
func (n NormalizedTimeDuration) Negated() (NormalizedTimeDuration, error) {
	neg, ok := n.ns.Neg()
	if !ok {
		return NormalizedTimeDuration{}, terr.Rangef("cannot negate time duration")
	}
	return NormalizedTimeDuration{ns: neg}, nil
}

// Add returns n+m, failing on overflow or if the result violates Invariant B.
func (n NormalizedTimeDuration) Add(m NormalizedTimeDuration) (NormalizedTimeDuration, error) {
	sum, ok := n.ns.Add(m.ns)
	if !ok {
		return NormalizedTimeDuration{}, terr.Rangef("time duration overflow")
	}
	return checkedNormalized(sum)
}

// AddDays adds days*86400e9 nanoseconds to n, detecting i128 overflow
// explicitly (spec.md §4.3).
func (n NormalizedTimeDuration) AddDays(days int64) (NormalizedTimeDuration, error) {
	delta, ok := int128.FromInt64(days).MulI64(86_400_000_000_000)
	if !ok {
		return NormalizedTimeDuration{}, terr.Rangef("day count overflows time duration")
	}
	sum, ok := n.ns.Add(delta)
	if !ok {
		return NormalizedTimeDuration{}, terr.Rangef("time duration overflow")
	}
	return checkedNormalized(sum)
}

// DivModDay splits n into a whole-day count and an in-day nanosecond
// remainder in [0, 86400e9), Euclidean (always non-negative remainder).
func (n NormalizedTimeDuration) DivModDay() (days int64, remNanos int64) {
	q, r, ok := n.ns.DivModI64(86_400_000_000_000)
	if !ok {
		panic("durationcore: time duration too large to split into days")
	}
	if r < 0 {
		r += 86_400_000_000_000
		q, ok = q.Sub(int128.FromInt64(1))
		if !ok {
			panic("durationcore: day-count underflow")
		}
	}
	qi, exact := q.Int64()
	if !exact {
		panic("durationcore: day count exceeds int64 range")
	}
	return qi, r
}

// ToUnits splits n back into (hours, minutes, seconds, ms, us, ns), the
// inverse of NewNormalizedTimeDuration, with all components sharing the
// sign of n (or zero).
func (n NormalizedTimeDuration) ToUnits() (hours, minutes, seconds, ms, us, ns int64) {
	neg := n.ns.Sign() < 0
	abs, ok := n.ns.Abs()
	if !ok {
		panic("durationcore: cannot take absolute value")
	}

	extract := func(divisor int64) int64 {
		q, r, ok := abs.DivModI64(divisor)
		if !ok {
			panic("durationcore: division overflow")
		}
		qi, exact := q.Int64()
		if !exact {
			panic("durationcore: quotient exceeds int64")
		}
		abs = int128.FromInt64(r)
		return qi
	}

	hours = extract(3_600_000_000_000)
	minutes = extract(60_000_000_000)
	seconds = extract(1_000_000_000)
	ms = extract(1_000_000)
	us = extract(1_000)
	lastQ, exact := abs.Int64()
	if !exact {
		panic("durationcore: remainder exceeds int64")
	}
	ns = lastQ

	if neg {
		hours, minutes, seconds, ms, us, ns = -hours, -minutes, -seconds, -ms, -us, -ns
	}
	return
}
