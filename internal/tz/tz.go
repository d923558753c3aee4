// Package tz implements the time zone and disambiguation engine of
// spec.md §4.5: a closed TimeZone variant (a constant UTC offset, or an
// IANA identifier resolved through an injected Provider), offset lookup,
// wall-clock-to-instant resolution, and the gap/overlap disambiguation
// table.
//
// Grounded on go-chrono/chrono's zones.go, which already separates "zone
// lookup" (loadZones/ZONEINFO search) from "offset application"
// (OffsetDateTime/LocalDateTime conversions). tcore keeps that same
// separation but replaces the teacher's package-level sync.Once zone
// cache with an explicit Provider parameter threaded through every call,
// per spec.md §5's "no process-wide mutable state at the core level" and
// §6.1's Provider interface — a deliberate deviation from the teacher,
// recorded in DESIGN.md.
package tz

import (
	"strings"

	"github.com/temporal-go/tcore/internal/int128"
	"github.com/temporal-go/tcore/internal/iso"
	"github.com/temporal-go/tcore/internal/terr"
)

const dayNanos = 86_400_000_000_000

// Kind distinguishes the two TimeZone variants of spec.md §4.5.
type Kind int

const (
	OffsetKind Kind = iota
	IANAKind
)

// Zone is the closed TimeZone tagged variant.
type Zone struct {
	kind          Kind
	offsetNanos   int64 // valid when kind == OffsetKind
	identifier    string // valid when kind == IANAKind
}

// FromOffsetNanoseconds builds a fixed-offset Zone. Offsets must fall
// within ±23:59:59.999999999 (spec.md §4.5).
func FromOffsetNanoseconds(ns int64) (Zone, error) {
	const maxOffset = (23*3600 + 59*60 + 59) * 1_000_000_000 + 999_999_999
	if ns < -maxOffset || ns > maxOffset {
		return Zone{}, terr.Rangef("UTC offset %d ns out of range", ns)
	}
	return Zone{kind: OffsetKind, offsetNanos: ns}, nil
}

// FromIANAIdentifier builds a Zone resolved lazily through a Provider.
func FromIANAIdentifier(identifier string) Zone {
	return Zone{kind: IANAKind, identifier: identifier}
}

func (z Zone) IsOffset() bool       { return z.kind == OffsetKind }
func (z Zone) OffsetNanoseconds() (int64, bool) {
	if z.kind != OffsetKind {
		return 0, false
	}
	return z.offsetNanos, true
}
func (z Zone) Identifier() string { return z.identifier }

// Transition is one entry of a Provider's precomputed transition table.
type Transition struct {
	EpochNanoseconds int128.Int128
	OffsetNanoseconds int64
	IsDST            bool
}

// Provider is the external time-zone data source of spec.md §6.1. All
// methods must be synchronous and side-effect-free from the caller's
// point of view; an implementation may cache internally but must remain
// safe for concurrent use.
type Provider interface {
	// NormalizeIdentifier resolves name to its canonical form, reports
	// whether it is a recognized IANA identifier, and names the primary
	// (non-link) zone it refers to.
	NormalizeIdentifier(name string) (normalized string, isIANA bool, primary string, err error)
	// TransitionsFor returns every known transition for zoneID whose
	// epoch nanoseconds fall within [fromNs, toNs]. An empty result
	// signals that the provider's precomputed table does not cover this
	// instant, which the engine MUST treat as "table exhausted" and
	// fall back to the zone's POSIX TZ string.
	TransitionsFor(zoneID string, fromNs, toNs int128.Int128) ([]Transition, error)
	// PosixTZFor returns the POSIX TZ string for zoneID, if any.
	PosixTZFor(zoneID string) (string, bool, error)
}

// Disambiguation selects how getPossibleEpochNanosecondsFor's 0- or
// 2-candidate results are resolved to a single instant (spec.md §4.5).
type Disambiguation int

const (
	Compatible Disambiguation = iota
	Earlier
	Later
	DisambiguationReject
)

// Direction selects which neighboring transition GetTransitionFor looks for.
type Direction int

const (
	Next Direction = iota
	Previous
)

// GetOffsetNanosecondsFor returns the instantaneous UTC offset in effect
// at epochNs for zone.
func GetOffsetNanosecondsFor(zone Zone, epochNs int128.Int128, p Provider) (int64, error) {
	if zone.kind == OffsetKind {
		return zone.offsetNanos, nil
	}
	if p == nil {
		return 0, terr.Typef("IANA zone %q requires a Provider", zone.identifier)
	}
	norm, _, _, err := p.NormalizeIdentifier(zone.identifier)
	if err != nil {
		return 0, err
	}

	window := int64(400) * dayNanos
	for attempt := 0; attempt < 6; attempt++ {
		from, ok1 := epochNs.Sub(int128.FromInt64(window))
		to, ok2 := epochNs.Add(int128.FromInt64(window))
		if !ok1 || !ok2 {
			from, to = epochNs, epochNs
		}
		transitions, err := p.TransitionsFor(norm, from, to)
		if err != nil {
			return 0, err
		}
		if offset, found := latestOffsetAtOrBefore(transitions, epochNs); found {
			return offset, nil
		}
		window *= 4
	}

	// The provider's table is exhausted for this instant: fall back to
	// the zone's POSIX TZ string, per spec.md §4.5.
	posixStr, ok, err := p.PosixTZFor(norm)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, terr.Genericf("zone %q has no transition data or POSIX TZ fallback for this instant", norm)
	}
	rule, err := ParsePosixTZ(posixStr)
	if err != nil {
		return 0, err
	}
	offset, _, err := rule.OffsetForInstant(epochNs)
	return offset, err
}

func latestOffsetAtOrBefore(transitions []Transition, epochNs int128.Int128) (int64, bool) {
	found := false
	var best Transition
	for _, t := range transitions {
		if t.EpochNanoseconds.Cmp(epochNs) <= 0 {
			if !found || t.EpochNanoseconds.Cmp(best.EpochNanoseconds) > 0 {
				best = t
				found = true
			}
		}
	}
	if found {
		return best.OffsetNanoseconds, true
	}
	return 0, false
}

// wallEpochNanoseconds computes the "naive" epoch nanoseconds of dt,
// i.e. as if its fields were interpreted directly against a zero offset.
func wallEpochNanoseconds(dt iso.DateTime) (int128.Int128, error) {
	dayPart, ok := int128.FromInt64(iso.ToEpochDay(dt.Date)).MulI64(dayNanos)
	if !ok {
		return int128.Int128{}, terr.Rangef("wall-clock epoch nanoseconds overflow")
	}
	timePart := iso.TimeToNanos(dt.Time)
	total, ok := dayPart.Add(int128.FromInt64(timePart))
	if !ok {
		return int128.Int128{}, terr.Rangef("wall-clock epoch nanoseconds overflow")
	}
	return total, nil
}

// GetPossibleEpochNanosecondsFor returns every epoch instant whose wall
// projection under zone equals dt: zero for a gap, one in the ordinary
// case, or two across a backward (overlap) transition.
func GetPossibleEpochNanosecondsFor(zone Zone, dt iso.DateTime, p Provider) ([]int128.Int128, error) {
	utcNs, err := wallEpochNanoseconds(dt)
	if err != nil {
		return nil, err
	}
	if zone.kind == OffsetKind {
		candidate, ok := utcNs.Sub(int128.FromInt64(zone.offsetNanos))
		if !ok {
			return nil, terr.Rangef("epoch nanoseconds overflow")
		}
		return []int128.Int128{candidate}, nil
	}

	dayBefore, ok1 := utcNs.Sub(int128.FromInt64(dayNanos))
	dayAfter, ok2 := utcNs.Add(int128.FromInt64(dayNanos))
	if !ok1 || !ok2 {
		return nil, terr.Rangef("epoch nanoseconds overflow")
	}
	offsetBefore, err := GetOffsetNanosecondsFor(zone, dayBefore, p)
	if err != nil {
		return nil, err
	}
	offsetAfter, err := GetOffsetNanosecondsFor(zone, dayAfter, p)
	if err != nil {
		return nil, err
	}

	candidateSet := map[int64]bool{offsetBefore: true, offsetAfter: true}
	var results []int128.Int128
	for offset := range candidateSet {
		candidate, ok := utcNs.Sub(int128.FromInt64(offset))
		if !ok {
			continue
		}
		actual, err := GetOffsetNanosecondsFor(zone, candidate, p)
		if err != nil {
			return nil, err
		}
		if actual == offset {
			results = append(results, candidate)
		}
	}
	sortInt128s(results)
	return results, nil
}

func sortInt128s(xs []int128.Int128) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j].Cmp(xs[j-1]) < 0; j-- {
			xs[j], xs[j-1] = xs[j-1], xs[j]
		}
	}
}

// DisambiguatePossibleEpochNanoseconds resolves the 0/1/2-candidate
// result of GetPossibleEpochNanosecondsFor to a single instant, per the
// table in spec.md §4.5.
func DisambiguatePossibleEpochNanoseconds(zone Zone, dt iso.DateTime, candidates []int128.Int128, d Disambiguation, p Provider) (int128.Int128, error) {
	switch len(candidates) {
	case 1:
		return candidates[0], nil
	case 2:
		switch d {
		case Compatible, Earlier:
			return candidates[0], nil
		case Later:
			return candidates[1], nil
		default:
			return int128.Int128{}, terr.Rangef("ambiguous local time has two valid interpretations")
		}
	}

	if d == DisambiguationReject {
		return int128.Int128{}, terr.Rangef("local time falls in a time zone transition gap")
	}

	utcNs, err := wallEpochNanoseconds(dt)
	if err != nil {
		return int128.Int128{}, err
	}
	dayBefore, ok1 := utcNs.Sub(int128.FromInt64(dayNanos))
	dayAfter, ok2 := utcNs.Add(int128.FromInt64(dayNanos))
	if !ok1 || !ok2 {
		return int128.Int128{}, terr.Rangef("epoch nanoseconds overflow")
	}
	offsetBefore, err := GetOffsetNanosecondsFor(zone, dayBefore, p)
	if err != nil {
		return int128.Int128{}, err
	}
	offsetAfter, err := GetOffsetNanosecondsFor(zone, dayAfter, p)
	if err != nil {
		return int128.Int128{}, err
	}

	var useOffset int64
	if d == Earlier {
		useOffset = offsetAfter
	} else { // Compatible or Later: identical behavior for a gap
		useOffset = offsetBefore
	}
	result, ok := utcNs.Sub(int128.FromInt64(useOffset))
	if !ok {
		return int128.Int128{}, terr.Rangef("epoch nanoseconds overflow")
	}
	return result, nil
}

// GetTransitionFor finds the nearest transition to epochNs in direction
// dir, or reports none found.
func GetTransitionFor(zone Zone, epochNs int128.Int128, dir Direction, p Provider) (int128.Int128, bool, error) {
	if zone.kind == OffsetKind {
		return int128.Int128{}, false, nil
	}
	if p == nil {
		return int128.Int128{}, false, terr.Typef("IANA zone %q requires a Provider", zone.identifier)
	}
	norm, _, _, err := p.NormalizeIdentifier(zone.identifier)
	if err != nil {
		return int128.Int128{}, false, err
	}

	window := int64(400) * dayNanos
	for attempt := 0; attempt < 6; attempt++ {
		from, ok1 := epochNs.Sub(int128.FromInt64(window))
		to, ok2 := epochNs.Add(int128.FromInt64(window))
		if !ok1 || !ok2 {
			from, to = epochNs, epochNs
		}
		transitions, err := p.TransitionsFor(norm, from, to)
		if err != nil {
			return int128.Int128{}, false, err
		}
		if found, ok := nearestTransition(transitions, epochNs, dir); ok {
			return found, true, nil
		}
		window *= 4
	}
	return int128.Int128{}, false, nil
}

func nearestTransition(transitions []Transition, epochNs int128.Int128, dir Direction) (int128.Int128, bool) {
	found := false
	var best int128.Int128
	for _, t := range transitions {
		if dir == Next {
			if t.EpochNanoseconds.Cmp(epochNs) > 0 && (!found || t.EpochNanoseconds.Cmp(best) < 0) {
				best, found = t.EpochNanoseconds, true
			}
		} else {
			if t.EpochNanoseconds.Cmp(epochNs) < 0 && (!found || t.EpochNanoseconds.Cmp(best) > 0) {
				best, found = t.EpochNanoseconds, true
			}
		}
	}
	return best, found
}

// NormalizeZoneName is a convenience used by ixdtf when no Provider is
// available yet but an offset-shaped identifier needs recognizing.
func NormalizeZoneName(name string) string {
	return strings.TrimSpace(name)
}
