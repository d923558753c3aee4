package main

import (
	"testing"

	"github.com/temporal-go/tcore"
)

func TestNewRootCommandWiresSubcommands(t *testing.T) {
	root := newRootCommand()
	want := map[string]bool{"parse": false, "round": false, "zoneinfo": false}
	for _, c := range root.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestParseOffsetDisambiguation(t *testing.T) {
	cases := map[string]tcore.OffsetDisambiguation{
		"use":    tcore.OffsetUse,
		"prefer": tcore.OffsetPrefer,
		"ignore": tcore.OffsetIgnore,
		"reject": tcore.OffsetReject,
	}
	for s, want := range cases {
		got, err := parseOffsetDisambiguation(s)
		if err != nil {
			t.Fatalf("parseOffsetDisambiguation(%q): %v", s, err)
		}
		if got != want {
			t.Errorf("parseOffsetDisambiguation(%q) = %v, want %v", s, got, want)
		}
	}
	if _, err := parseOffsetDisambiguation("bogus"); err == nil {
		t.Error("expected error for unknown offset-disambiguation mode")
	}
}

func TestResolveZoneFixedOffset(t *testing.T) {
	zone, err := resolveZone("-05:00")
	if err != nil {
		t.Fatalf("resolveZone: %v", err)
	}
	if !zone.IsOffset() {
		t.Fatal("expected a fixed-offset zone")
	}
	off, _ := zone.OffsetNanoseconds()
	if off != -5*3600*1_000_000_000 {
		t.Errorf("offset = %d, want -5h", off)
	}
}

func TestResolveZoneIANAIdentifier(t *testing.T) {
	zone, err := resolveZone("America/New_York")
	if err != nil {
		t.Fatalf("resolveZone: %v", err)
	}
	if zone.IsOffset() {
		t.Fatal("expected an IANA-kind zone")
	}
	if zone.Identifier() != "America/New_York" {
		t.Errorf("identifier = %q", zone.Identifier())
	}
}

func TestUnitAndModeNamesCoverAllOptions(t *testing.T) {
	if len(unitNames) != 10 {
		t.Errorf("unitNames has %d entries, want 10", len(unitNames))
	}
	if len(modeNames) != 9 {
		t.Errorf("modeNames has %d entries, want 9", len(modeNames))
	}
}
