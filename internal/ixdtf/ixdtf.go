// Package ixdtf implements the RFC 9557 (IXDTF) parser and formatter of
// spec.md §4.6: ISO 8601 extended with `[tz]`/`[u-ca=cal]` bracket
// annotations and critical-flag (`!`) prefixes.
//
// Grounded on bsolomon1124-isoparse's isoparse.go: a hand-written
// position-cursor scanner (no regexp except one optional-fraction
// matcher) with an explicit error type carrying the offending input and
// a message, rather than a parser-combinator or grammar-generator
// approach. This package keeps that cursor-scan architecture and adds
// the `[...]` annotation grammar RFC 9557 layers on top of plain ISO
// 8601, which isoparse does not have — there is no pack file that
// parses annotations, so that part is built directly against spec.md
// §4.6/§6.2's grammar description.
package ixdtf

import (
	"strconv"
	"strings"

	"github.com/temporal-go/tcore/internal/calendar"
	"github.com/temporal-go/tcore/internal/iso"
	"github.com/temporal-go/tcore/internal/terr"
)

// DateTime is the full result of parsing an IXDTF string: every
// production (PlainDate, PlainTime, ..., ZonedDateTime) fills in a
// subset of these fields.
type DateTime struct {
	Date    iso.Date
	HasDate bool

	Time         iso.Time
	HasTime      bool
	FractionDigits int // number of fractional-second digits present (0 if none)

	HasZ              bool
	OffsetNanoseconds *int64 // non-nil for a numeric ±HH:MM[:SS] offset

	TimeZone string // normalized IANA identifier or offset-shaped string, "" if absent
	Calendar calendar.ID
	HasCalendar bool
}

type cursor struct {
	s   string
	pos int
}

func (c *cursor) eof() bool { return c.pos >= len(c.s) }
func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.s[c.pos]
}
func (c *cursor) advance() byte {
	b := c.s[c.pos]
	c.pos++
	return b
}
func (c *cursor) expect(b byte) error {
	if c.eof() || c.s[c.pos] != b {
		return terr.Syntaxf("expected %q at position %d in %q", string(b), c.pos, c.s)
	}
	c.pos++
	return nil
}

// digits consumes exactly n decimal digits and returns their value.
func (c *cursor) digits(n int) (int, error) {
	if c.pos+n > len(c.s) {
		return 0, terr.Syntaxf("unexpected end of input reading %d digits in %q", n, c.s)
	}
	v := 0
	for i := 0; i < n; i++ {
		b := c.s[c.pos+i]
		if b < '0' || b > '9' {
			return 0, terr.Syntaxf("expected digit at position %d in %q", c.pos+i, c.s)
		}
		v = v*10 + int(b-'0')
	}
	c.pos += n
	return v, nil
}

// parseDate parses the date production shared by every target: an
// optional sign and extended (6-digit) year, "YYYY-MM-DD" or "YYYYMMDD".
func parseDate(c *cursor) (iso.Date, error) {
	sign := 1
	yearDigits := 4
	if !c.eof() && (c.peek() == '+' || c.peek() == '-') {
		if c.advance() == '-' {
			sign = -1
		}
		yearDigits = 6
	}
	year, err := c.digits(yearDigits)
	if err != nil {
		return iso.Date{}, err
	}
	extended := false
	if !c.eof() && c.peek() == '-' {
		c.advance()
		extended = true
	}
	month, err := c.digits(2)
	if err != nil {
		return iso.Date{}, err
	}
	if extended {
		if err := c.expect('-'); err != nil {
			return iso.Date{}, err
		}
	}
	day, err := c.digits(2)
	if err != nil {
		return iso.Date{}, err
	}
	return iso.RegulateDate(int32(sign*year), month, day, iso.Reject)
}

// parseTime parses "HH:MM:SS[.fraction]" or "HHMMSS[.fraction]", with
// seconds and fractional seconds optional, and a leap-second value of 60
// collapsed to 59 per spec.md §3.
func parseTime(c *cursor) (iso.Time, int, error) {
	hour, err := c.digits(2)
	if err != nil {
		return iso.Time{}, 0, err
	}
	extended := !c.eof() && c.peek() == ':'
	if extended {
		c.advance()
	}
	minute, err := c.digits(2)
	if err != nil {
		return iso.Time{}, 0, err
	}
	second := 0
	fractionDigits := 0
	var nanos int64
	hasSeconds := false
	if !c.eof() && (c.peek() == ':' || isDigit(c.peek())) {
		if extended {
			if err := c.expect(':'); err != nil {
				return iso.Time{}, 0, err
			}
		}
		second, err = c.digits(2)
		if err != nil {
			return iso.Time{}, 0, err
		}
		hasSeconds = true
		if second == 60 {
			second = 59
		}
	}
	_ = hasSeconds
	if !c.eof() && (c.peek() == '.' || c.peek() == ',') {
		c.advance()
		start := c.pos
		for !c.eof() && isDigit(c.peek()) {
			c.advance()
		}
		fracStr := c.s[start:c.pos]
		fractionDigits = len(fracStr)
		if fractionDigits == 0 {
			return iso.Time{}, 0, terr.Syntaxf("empty fractional second in %q", c.s)
		}
		padded := (fracStr + "000000000")[:9]
		nanos, _ = strconv.ParseInt(padded, 10, 64)
	}
	ms := nanos / 1_000_000
	us := (nanos / 1_000) % 1_000
	ns := nanos % 1_000
	return iso.Time{
		Hour: int8(hour), Minute: int8(minute), Second: int8(second),
		Millisecond: int16(ms), Microsecond: int16(us), Nanosecond: int16(ns),
	}, fractionDigits, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// parseOffset parses "Z"/"z" or "±HH:MM[:SS[.frac]]" / "±HHMM".
// Returns (isZ, offsetNanos, consumed).
func parseOffset(c *cursor) (isZ bool, offsetNanos int64, consumed bool, err error) {
	if c.eof() {
		return false, 0, false, nil
	}
	if c.peek() == 'Z' || c.peek() == 'z' {
		c.advance()
		return true, 0, true, nil
	}
	if c.peek() != '+' && c.peek() != '-' {
		return false, 0, false, nil
	}
	neg := c.advance() == '-'
	hour, err := c.digits(2)
	if err != nil {
		return false, 0, false, err
	}
	extended := !c.eof() && c.peek() == ':'
	if extended {
		c.advance()
	}
	minute, err := c.digits(2)
	if err != nil {
		return false, 0, false, err
	}
	second := 0
	var nanos int64
	if !c.eof() && (c.peek() == ':' || (!extended && isDigit(c.peek()))) {
		if extended {
			if err := c.expect(':'); err != nil {
				return false, 0, false, err
			}
		}
		second, err = c.digits(2)
		if err != nil {
			return false, 0, false, err
		}
	}
	if !c.eof() && (c.peek() == '.' || c.peek() == ',') {
		c.advance()
		start := c.pos
		for !c.eof() && isDigit(c.peek()) {
			c.advance()
		}
		padded := (c.s[start:c.pos] + "000000000")[:9]
		nanos, _ = strconv.ParseInt(padded, 10, 64)
	}
	total := int64(hour)*3_600_000_000_000 + int64(minute)*60_000_000_000 + int64(second)*1_000_000_000 + nanos
	if neg {
		total = -total
	}
	return false, total, true, nil
}

// ParseDateTime parses a full IXDTF production targeting ZonedDateTime /
// Instant / PlainDateTime: date, optional time, optional offset,
// optional `[tz]` annotation, optional further annotations.
func ParseDateTime(s string) (DateTime, error) {
	c := &cursor{s: s}
	var result DateTime

	d, err := parseDate(c)
	if err != nil {
		return DateTime{}, err
	}
	result.Date = d
	result.HasDate = true

	if !c.eof() && (c.peek() == 'T' || c.peek() == 't' || c.peek() == ' ') {
		c.advance()
		t, fracDigits, err := parseTime(c)
		if err != nil {
			return DateTime{}, err
		}
		result.Time = t
		result.HasTime = true
		result.FractionDigits = fracDigits

		isZ, offsetNanos, consumed, err := parseOffset(c)
		if err != nil {
			return DateTime{}, err
		}
		if consumed {
			result.HasZ = isZ
			if !isZ {
				result.OffsetNanoseconds = &offsetNanos
			}
		}
	}

	if err := parseAnnotationsInto(c, &result); err != nil {
		return DateTime{}, err
	}
	if !c.eof() {
		return DateTime{}, terr.Syntaxf("unexpected trailing input %q", c.s[c.pos:])
	}
	if !result.HasCalendar {
		result.Calendar = calendar.Iso
	}
	return result, nil
}

// ParseDate parses a bare PlainDate production (date, optional
// annotations, no time).
func ParseDate(s string) (iso.Date, calendar.ID, error) {
	c := &cursor{s: s}
	d, err := parseDate(c)
	if err != nil {
		return iso.Date{}, 0, err
	}
	var result DateTime
	if err := parseAnnotationsInto(c, &result); err != nil {
		return iso.Date{}, 0, err
	}
	if !c.eof() {
		return iso.Date{}, 0, terr.Syntaxf("unexpected trailing input %q", c.s[c.pos:])
	}
	cal := calendar.Iso
	if result.HasCalendar {
		cal = result.Calendar
	}
	return d, cal, nil
}

// ParseTime parses a bare PlainTime production: "THH:MM:SS[.frac]" (the
// leading 'T' disambiguating it from a date-only string) or a bare
// "HH:MM:SS[.frac]".
func ParseTime(s string) (iso.Time, error) {
	c := &cursor{s: s}
	if !c.eof() && (c.peek() == 'T' || c.peek() == 't') {
		c.advance()
	}
	t, _, err := parseTime(c)
	if err != nil {
		return iso.Time{}, err
	}
	var result DateTime
	if err := parseAnnotationsInto(c, &result); err != nil {
		return iso.Time{}, err
	}
	if !c.eof() {
		return iso.Time{}, terr.Syntaxf("unexpected trailing input %q", c.s[c.pos:])
	}
	return t, nil
}
