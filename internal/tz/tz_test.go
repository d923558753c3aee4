package tz_test

import (
	"testing"

	"github.com/temporal-go/tcore/internal/int128"
	"github.com/temporal-go/tcore/internal/iso"
	"github.com/temporal-go/tcore/internal/tz"
)

// fakeProvider simulates America/New_York's 2024 DST transitions: EST
// (-5h) until 2024-03-10T07:00:00Z, then EDT (-4h) until
// 2024-11-03T06:00:00Z, then EST again.
type fakeProvider struct{}

func nsAt(epochDay int64, secondsOfDay int64) int128.Int128 {
	v, _ := int128.FromInt64(epochDay).MulI64(86_400_000_000_000)
	v, _ = v.Add(int128.FromInt64(secondsOfDay * 1_000_000_000))
	return v
}

var springForward = nsAt(19792, 7*3600)   // 2024-03-10T07:00:00Z
var fallBack = nsAt(20030, 6*3600)        // 2024-11-03T06:00:00Z

func (fakeProvider) NormalizeIdentifier(name string) (string, bool, string, error) {
	return name, true, name, nil
}

func (fakeProvider) TransitionsFor(zoneID string, fromNs, toNs int128.Int128) ([]tz.Transition, error) {
	all := []tz.Transition{
		{EpochNanoseconds: nsAt(19000, 0), OffsetNanoseconds: -5 * 3600 * 1_000_000_000, IsDST: false},
		{EpochNanoseconds: springForward, OffsetNanoseconds: -4 * 3600 * 1_000_000_000, IsDST: true},
		{EpochNanoseconds: fallBack, OffsetNanoseconds: -5 * 3600 * 1_000_000_000, IsDST: false},
	}
	var out []tz.Transition
	for _, t := range all {
		if t.EpochNanoseconds.Cmp(fromNs) >= 0 && t.EpochNanoseconds.Cmp(toNs) <= 0 {
			out = append(out, t)
		}
	}
	return out, nil
}

func (fakeProvider) PosixTZFor(zoneID string) (string, bool, error) {
	return "EST5EDT,M3.2.0,M11.1.0", true, nil
}

func TestOffsetKindIsTrivial(t *testing.T) {
	z, err := tz.FromOffsetNanoseconds(-5 * 3600 * 1_000_000_000)
	if err != nil {
		t.Fatal(err)
	}
	off, err := tz.GetOffsetNanosecondsFor(z, int128.FromInt64(0), nil)
	if err != nil {
		t.Fatal(err)
	}
	if off != -5*3600*1_000_000_000 {
		t.Errorf("got %d", off)
	}
}

func TestOffsetOutOfRangeRejected(t *testing.T) {
	_, err := tz.FromOffsetNanoseconds(25 * 3600 * 1_000_000_000)
	if err == nil {
		t.Fatal("expected range error")
	}
}

func TestGetOffsetNanosecondsForUsesTransitionTable(t *testing.T) {
	z := tz.FromIANAIdentifier("America/New_York")
	before, err := tz.GetOffsetNanosecondsFor(z, nsAt(19700, 0), fakeProvider{})
	if err != nil {
		t.Fatal(err)
	}
	if before != -5*3600*1_000_000_000 {
		t.Errorf("got %d before spring forward, want EST", before)
	}
	after, err := tz.GetOffsetNanosecondsFor(z, nsAt(19800, 0), fakeProvider{})
	if err != nil {
		t.Fatal(err)
	}
	if after != -4*3600*1_000_000_000 {
		t.Errorf("got %d after spring forward, want EDT", after)
	}
}

func TestGetPossibleEpochNanosecondsForGap(t *testing.T) {
	z := tz.FromIANAIdentifier("America/New_York")
	// 2024-03-10T02:30:00 local does not exist (clocks spring forward
	// from 02:00 to 03:00).
	dt := iso.DateTime{Date: iso.Date{Year: 2024, Month: 3, Day: 10}, Time: iso.Time{Hour: 2, Minute: 30}}
	candidates, err := tz.GetPossibleEpochNanosecondsFor(z, dt, fakeProvider{})
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) != 0 {
		t.Errorf("expected a gap (0 candidates), got %d", len(candidates))
	}
}

func TestGetPossibleEpochNanosecondsForOverlap(t *testing.T) {
	z := tz.FromIANAIdentifier("America/New_York")
	// 2024-11-03T01:30:00 local occurs twice (clocks fall back from
	// 02:00 EDT to 01:00 EST).
	dt := iso.DateTime{Date: iso.Date{Year: 2024, Month: 11, Day: 3}, Time: iso.Time{Hour: 1, Minute: 30}}
	candidates, err := tz.GetPossibleEpochNanosecondsFor(z, dt, fakeProvider{})
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected an overlap (2 candidates), got %d", len(candidates))
	}
	if candidates[0].Cmp(candidates[1]) >= 0 {
		t.Error("expected candidates sorted ascending")
	}
}

func TestDisambiguateGapCompatibleVsEarlier(t *testing.T) {
	z := tz.FromIANAIdentifier("America/New_York")
	dt := iso.DateTime{Date: iso.Date{Year: 2024, Month: 3, Day: 10}, Time: iso.Time{Hour: 2, Minute: 30}}
	candidates, err := tz.GetPossibleEpochNanosecondsFor(z, dt, fakeProvider{})
	if err != nil {
		t.Fatal(err)
	}
	compat, err := tz.DisambiguatePossibleEpochNanoseconds(z, dt, candidates, tz.Compatible, fakeProvider{})
	if err != nil {
		t.Fatal(err)
	}
	earlier, err := tz.DisambiguatePossibleEpochNanoseconds(z, dt, candidates, tz.Earlier, fakeProvider{})
	if err != nil {
		t.Fatal(err)
	}
	if compat.Cmp(earlier) <= 0 {
		t.Errorf("expected Compatible's forward-shift to land after Earlier's backward-shift")
	}

	_, err = tz.DisambiguatePossibleEpochNanoseconds(z, dt, candidates, tz.DisambiguationReject, fakeProvider{})
	if err == nil {
		t.Error("expected Reject to fail on a gap")
	}
}

func TestDisambiguateOverlapReject(t *testing.T) {
	z := tz.FromIANAIdentifier("America/New_York")
	dt := iso.DateTime{Date: iso.Date{Year: 2024, Month: 11, Day: 3}, Time: iso.Time{Hour: 1, Minute: 30}}
	candidates, _ := tz.GetPossibleEpochNanosecondsFor(z, dt, fakeProvider{})
	_, err := tz.DisambiguatePossibleEpochNanoseconds(z, dt, candidates, tz.DisambiguationReject, fakeProvider{})
	if err == nil {
		t.Error("expected Reject to fail on an overlap")
	}
}

func TestParsePosixTZUSRule(t *testing.T) {
	rule, err := tz.ParsePosixTZ("EST5EDT,M3.2.0,M11.1.0")
	if err != nil {
		t.Fatal(err)
	}
	winter, isDST, err := rule.OffsetForInstant(nsAt(19700, 0))
	if err != nil {
		t.Fatal(err)
	}
	if isDST || winter != -5*3600*1_000_000_000 {
		t.Errorf("expected winter EST, got offset=%d dst=%v", winter, isDST)
	}
	summer, isDST, err := rule.OffsetForInstant(nsAt(19800, 0))
	if err != nil {
		t.Fatal(err)
	}
	if !isDST || summer != -4*3600*1_000_000_000 {
		t.Errorf("expected summer EDT, got offset=%d dst=%v", summer, isDST)
	}
}

func TestParsePosixTZFixedOffsetNoDST(t *testing.T) {
	rule, err := tz.ParsePosixTZ("UTC0")
	if err != nil {
		t.Fatal(err)
	}
	off, isDST, err := rule.OffsetForInstant(nsAt(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if off != 0 || isDST {
		t.Errorf("expected UTC, got offset=%d dst=%v", off, isDST)
	}
}
