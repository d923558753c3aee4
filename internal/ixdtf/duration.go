package ixdtf

import (
	"strconv"

	"github.com/temporal-go/tcore/internal/terr"
)

// RawDuration is the unvalidated result of parsing an ISO 8601 duration
// string ("PnYnMnWnDTnHnMnS"): one int64 per unit plus a fractional
// remainder (in nanoseconds) attached to whichever unit carried the
// decimal point, since only the duration's last component may be
// fractional. The facade (internal/durationcore, internal/round)
// validates sign-uniformity and magnitude; this package only parses
// the grammar.
type RawDuration struct {
	Negative bool

	Years, Months, Weeks, Days int64

	Hours, Minutes, Seconds int64

	// FractionNanos holds the fractional part of whichever field was
	// written with a decimal point, already scaled to nanoseconds.
	// FractionUnit names which field it belongs to ("H", "M", or "S");
	// empty if no field carried a fraction.
	FractionNanos int64
	FractionUnit  string
}

// ParseDuration parses an ISO 8601 duration per spec.md §4.6: an
// optional leading sign, "P", an optional run of "nY", "nM", "nW", "nD",
// then optionally "T" followed by a run of "nH", "nM", "nS" — the
// final time component may carry a fractional part introduced by "." or
// ","; a fraction on any date component (Y, M, W, D) is rejected. At
// least one component must be present.
func ParseDuration(s string) (RawDuration, error) {
	c := &cursor{s: s}
	var out RawDuration

	if !c.eof() && (c.peek() == '+' || c.peek() == '-') {
		out.Negative = c.advance() == '-'
	}
	if c.eof() || (c.peek() != 'P' && c.peek() != 'p') {
		return RawDuration{}, terr.Syntaxf("duration must start with \"P\" in %q", s)
	}
	c.advance()

	any := false
	for !c.eof() && c.peek() != 'T' && c.peek() != 't' {
		n, frac, unit, err := parseDurationComponent(c)
		if err != nil {
			return RawDuration{}, err
		}
		any = true
		switch unit {
		case 'Y':
			out.Years = n
		case 'M':
			out.Months = n
		case 'W':
			out.Weeks = n
		case 'D':
			out.Days = n
		default:
			return RawDuration{}, terr.Syntaxf("unexpected unit %q in date part of duration %q", string(unit), s)
		}
		if frac != 0 {
			return RawDuration{}, terr.Syntaxf("only the final component of a duration may be fractional, in %q", s)
		}
	}

	if !c.eof() && (c.peek() == 'T' || c.peek() == 't') {
		c.advance()
		sawTimeComponent := false
		for !c.eof() {
			n, frac, unit, err := parseDurationComponent(c)
			if err != nil {
				return RawDuration{}, err
			}
			any = true
			sawTimeComponent = true
			switch unit {
			case 'H':
				out.Hours = n
			case 'M':
				out.Minutes = n
			case 'S':
				out.Seconds = n
			default:
				return RawDuration{}, terr.Syntaxf("unexpected unit %q in time part of duration %q", string(unit), s)
			}
			if frac != 0 {
				out.FractionNanos = frac
				out.FractionUnit = string(unit)
				if !c.eof() {
					return RawDuration{}, terr.Syntaxf("fractional component must be last in duration %q", s)
				}
			}
		}
		if !sawTimeComponent {
			return RawDuration{}, terr.Syntaxf("\"T\" designator with no time components in duration %q", s)
		}
	}

	if !any {
		return RawDuration{}, terr.Syntaxf("duration has no components in %q", s)
	}
	return out, nil
}

// parseDurationComponent reads one "n[.frac]X" component and returns
// the integer value, any fractional nanosecond remainder (scaled from
// whatever precision was written), and the unit letter X.
func parseDurationComponent(c *cursor) (n int64, fracNanos int64, unit byte, err error) {
	start := c.pos
	for !c.eof() && isDigit(c.peek()) {
		c.advance()
	}
	if c.pos == start {
		return 0, 0, 0, terr.Syntaxf("expected a digit at position %d in %q", start, c.s)
	}
	intPart := c.s[start:c.pos]
	n, convErr := strconv.ParseInt(intPart, 10, 64)
	if convErr != nil {
		return 0, 0, 0, terr.Rangef("duration component %q out of range", intPart)
	}

	if !c.eof() && (c.peek() == '.' || c.peek() == ',') {
		c.advance()
		fracStart := c.pos
		for !c.eof() && isDigit(c.peek()) {
			c.advance()
		}
		fracStr := c.s[fracStart:c.pos]
		if fracStr == "" {
			return 0, 0, 0, terr.Syntaxf("empty fractional part at position %d in %q", fracStart, c.s)
		}
		padded := (fracStr + "000000000")[:9]
		fracNanos, _ = strconv.ParseInt(padded, 10, 64)
	}

	if c.eof() {
		return 0, 0, 0, terr.Syntaxf("expected a unit letter at position %d in %q", c.pos, c.s)
	}
	unit = c.advance()
	switch unit {
	case 'y':
		unit = 'Y'
	case 'w':
		unit = 'W'
	case 'd':
		unit = 'D'
	case 'h':
		unit = 'H'
	case 's':
		unit = 'S'
	case 'm':
		// ambiguous between Month and Minute in lowercase input; the
		// caller disambiguates by which half (date vs time) it's in,
		// so 'm'/'M' both pass through unchanged here and the caller's
		// switch treats 'M' uniformly for both halves.
		unit = 'M'
	}
	return n, fracNanos, unit, nil
}
