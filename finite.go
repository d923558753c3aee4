package tcore

import "math"

// Finite wraps a float64 known not to be NaN or infinite, the type
// `Duration.Total` returns (spec.md §4.4 rule 6: "a finite double").
type Finite float64

// NewFinite validates v and rejects NaN/Inf.
func NewFinite(v float64) (Finite, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, rangeErrorf("value must be finite, got %v", v)
	}
	return Finite(v), nil
}

// Float64 returns the underlying value.
func (f Finite) Float64() float64 { return float64(f) }
