package tz

import (
	"strconv"
	"strings"

	"github.com/temporal-go/tcore/internal/int128"
	"github.com/temporal-go/tcore/internal/iso"
	"github.com/temporal-go/tcore/internal/terr"
)

// PosixTZ is a parsed POSIX TZ string (IEEE Std 1003.1 §8.3), used as the
// analytic fallback once a Provider's precomputed transition table is
// exhausted (spec.md §4.5).
type PosixTZ struct {
	stdOffsetNanos int64
	hasDST         bool
	dstOffsetNanos int64
	start, end     posixRule
}

// posixRule names one "Mm.n.d", "Jn", or "n" transition rule with an
// optional transition time (default 02:00:00 local standard time).
type posixRule struct {
	kind       ruleKind
	month      int // 1..12, Mm.n.d only
	week       int // 1..5 (5 = last), Mm.n.d only
	weekday    int // 0 (Sunday) .. 6, Mm.n.d only
	julianDay  int // Jn or n
	timeNanos  int64
}

type ruleKind int

const (
	ruleNone ruleKind = iota
	ruleJulianNoLeap
	ruleJulian
	ruleMonthWeekDay
)

// ParsePosixTZ parses a POSIX TZ string such as "PST8PDT,M3.2.0,M11.1.0/3".
func ParsePosixTZ(s string) (PosixTZ, error) {
	rest := s
	_, rest, err := parsePosixName(rest)
	if err != nil {
		return PosixTZ{}, err
	}
	stdOffset, rest, err := parsePosixOffset(rest, true)
	if err != nil {
		return PosixTZ{}, err
	}
	result := PosixTZ{stdOffsetNanos: stdOffset}

	if rest == "" {
		return result, nil
	}

	_, rest, err = parsePosixName(rest)
	if err != nil {
		return PosixTZ{}, err
	}
	result.hasDST = true

	var dstOffset int64
	if rest != "" && rest[0] != ',' {
		dstOffset, rest, err = parsePosixOffset(rest, false)
		if err != nil {
			return PosixTZ{}, err
		}
	} else {
		dstOffset = stdOffset + 3_600_000_000_000 // default: one hour ahead of standard
	}
	result.dstOffsetNanos = dstOffset

	if rest == "" {
		// No explicit rule: use the US rule (second Sunday in March to
		// first Sunday in November) as a documented default, matching
		// the most common real-world POSIX TZ usage in the pack's
		// reference tzdata.
		result.start = posixRule{kind: ruleMonthWeekDay, month: 3, week: 2, weekday: 0, timeNanos: 2 * 3_600_000_000_000}
		result.end = posixRule{kind: ruleMonthWeekDay, month: 11, week: 1, weekday: 0, timeNanos: 2 * 3_600_000_000_000}
		return result, nil
	}
	if rest[0] != ',' {
		return PosixTZ{}, terr.Syntaxf("expected ',' before transition rules in POSIX TZ %q", s)
	}
	rest = rest[1:]

	startStr, endStr, ok := strings.Cut(rest, ",")
	if !ok {
		return PosixTZ{}, terr.Syntaxf("POSIX TZ %q missing end transition rule", s)
	}
	result.start, err = parsePosixRule(startStr)
	if err != nil {
		return PosixTZ{}, err
	}
	result.end, err = parsePosixRule(endStr)
	if err != nil {
		return PosixTZ{}, err
	}
	return result, nil
}

func parsePosixName(s string) (name, rest string, err error) {
	if s == "" {
		return "", "", terr.Syntaxf("empty POSIX TZ designation")
	}
	i := 0
	if s[0] == '<' {
		end := strings.IndexByte(s, '>')
		if end < 0 {
			return "", "", terr.Syntaxf("unterminated quoted POSIX TZ name in %q", s)
		}
		return s[1:end], s[end+1:], nil
	}
	for i < len(s) && isAlpha(s[i]) {
		i++
	}
	if i == 0 {
		return "", "", terr.Syntaxf("expected a time zone name in %q", s)
	}
	return s[:i], s[i:], nil
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// parsePosixOffset parses "[+|-]hh[:mm[:ss]]". std names default sign
// East-negative (POSIX's own convention is "offset is subtracted from
// local time to get UTC", i.e. positive means west of UTC) — tcore's
// Zone.offsetNanos convention is "added to an instant to get local wall
// time", so the parsed value is negated before being returned.
func parsePosixOffset(s string, required bool) (int64, string, error) {
	i := 0
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	start := i
	for i < len(s) && isDigitByte(s[i]) {
		i++
	}
	if start == i {
		if required {
			return 0, "", terr.Syntaxf("expected an offset in POSIX TZ %q", s)
		}
		return 0, s, nil
	}
	hours, _ := strconv.Atoi(s[start:i])
	nanos := int64(hours) * 3_600_000_000_000
	rest := s[i:]
	for _, scale := range []int64{60_000_000_000, 1_000_000_000} {
		if rest != "" && rest[0] == ':' {
			j := 1
			for j < len(rest) && isDigitByte(rest[j]) {
				j++
			}
			v, _ := strconv.Atoi(rest[1:j])
			nanos += int64(v) * scale
			rest = rest[j:]
		}
	}
	if neg {
		nanos = -nanos
	}
	return -nanos, rest, nil
}

func isDigitByte(b byte) bool { return b >= '0' && b <= '9' }

func parsePosixRule(s string) (posixRule, error) {
	if s == "" {
		return posixRule{}, terr.Syntaxf("empty POSIX TZ transition rule")
	}
	timeNanos := int64(2 * 3_600_000_000_000)
	dateStr := s
	if idx := strings.IndexByte(s, '/'); idx >= 0 {
		dateStr = s[:idx]
		t, err := parsePosixTime(s[idx+1:])
		if err != nil {
			return posixRule{}, err
		}
		timeNanos = t
	}

	switch {
	case len(dateStr) > 0 && dateStr[0] == 'J':
		n, err := strconv.Atoi(dateStr[1:])
		if err != nil || n < 1 || n > 365 {
			return posixRule{}, terr.Syntaxf("invalid Julian (no-leap) day %q", dateStr)
		}
		return posixRule{kind: ruleJulianNoLeap, julianDay: n, timeNanos: timeNanos}, nil
	case len(dateStr) > 0 && dateStr[0] == 'M':
		parts := strings.Split(dateStr[1:], ".")
		if len(parts) != 3 {
			return posixRule{}, terr.Syntaxf("invalid Mm.n.d rule %q", dateStr)
		}
		month, err1 := strconv.Atoi(parts[0])
		week, err2 := strconv.Atoi(parts[1])
		weekday, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil || month < 1 || month > 12 || week < 1 || week > 5 || weekday < 0 || weekday > 6 {
			return posixRule{}, terr.Syntaxf("invalid Mm.n.d rule %q", dateStr)
		}
		return posixRule{kind: ruleMonthWeekDay, month: month, week: week, weekday: weekday, timeNanos: timeNanos}, nil
	default:
		n, err := strconv.Atoi(dateStr)
		if err != nil || n < 0 || n > 365 {
			return posixRule{}, terr.Syntaxf("invalid day-of-year rule %q", dateStr)
		}
		return posixRule{kind: ruleJulian, julianDay: n, timeNanos: timeNanos}, nil
	}
}

func parsePosixTime(s string) (int64, error) {
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	fields := strings.Split(s, ":")
	var h, m, sec int
	var err error
	if len(fields) > 0 && fields[0] != "" {
		h, err = strconv.Atoi(fields[0])
		if err != nil {
			return 0, terr.Syntaxf("invalid transition time %q", s)
		}
	}
	if len(fields) > 1 {
		m, _ = strconv.Atoi(fields[1])
	}
	if len(fields) > 2 {
		sec, _ = strconv.Atoi(fields[2])
	}
	total := int64(h)*3_600_000_000_000 + int64(m)*60_000_000_000 + int64(sec)*1_000_000_000
	if neg {
		total = -total
	}
	return total, nil
}

// epochDayOfRule computes the epoch day on which rule fires in the given
// ISO year, in the calendar's own local-standard-time reckoning.
func epochDayOfRule(rule posixRule, year int32) (int64, error) {
	switch rule.kind {
	case ruleJulianNoLeap:
		jan1, err := iso.RegulateDate(year, 1, 1, iso.Constrain)
		if err != nil {
			return 0, err
		}
		n := rule.julianDay
		if iso.IsLeapYear(year) && n > 59 {
			n++
		}
		return iso.ToEpochDay(jan1) + int64(n) - 1, nil
	case ruleJulian:
		jan1, err := iso.RegulateDate(year, 1, 1, iso.Constrain)
		if err != nil {
			return 0, err
		}
		return iso.ToEpochDay(jan1) + int64(rule.julianDay), nil
	case ruleMonthWeekDay:
		first, err := iso.RegulateDate(year, rule.month, 1, iso.Constrain)
		if err != nil {
			return 0, err
		}
		firstWeekdayPosix := iso.Weekday(first) % 7 // ISO Mon=1..Sun=7 -> Sun=0..Sat=6
		diff := (rule.weekday - firstWeekdayPosix + 7) % 7
		day := 1 + diff
		dim := iso.DaysInMonth(year, rule.month)
		if rule.week == 5 {
			for day+7 <= dim {
				day += 7
			}
		} else {
			day += (rule.week - 1) * 7
			if day > dim {
				return 0, terr.Rangef("Mm.n.d rule selects a day beyond the month")
			}
		}
		return iso.ToEpochDay(first) + int64(day-1), nil
	default:
		return 0, terr.Assertf("unset POSIX TZ rule")
	}
}

// transitionInstant returns the epoch nanoseconds at which rule fires in
// year, given the offset in effect immediately before the transition.
func transitionInstant(rule posixRule, year int32, offsetBeforeNanos int64) (int128.Int128, error) {
	ed, err := epochDayOfRule(rule, year)
	if err != nil {
		return int128.Int128{}, err
	}
	wall, ok := int128.FromInt64(ed).MulI64(dayNanos)
	if !ok {
		return int128.Int128{}, terr.Rangef("transition instant overflow")
	}
	wall, ok = wall.Add(int128.FromInt64(rule.timeNanos))
	if !ok {
		return int128.Int128{}, terr.Rangef("transition instant overflow")
	}
	instant, ok := wall.Sub(int128.FromInt64(offsetBeforeNanos))
	if !ok {
		return int128.Int128{}, terr.Rangef("transition instant overflow")
	}
	return instant, nil
}

// OffsetForInstant computes the offset and DST flag in effect at epochNs
// under this POSIX rule.
func (p PosixTZ) OffsetForInstant(epochNs int128.Int128) (offsetNanos int64, isDST bool, err error) {
	if !p.hasDST {
		return p.stdOffsetNanos, false, nil
	}

	day, _ := divModDayEuclidean(epochNs)
	d, derr := iso.FromEpochDay(day)
	if derr != nil {
		return 0, false, derr
	}
	year := d.Year

	dstStart, err := transitionInstant(p.start, year, p.stdOffsetNanos)
	if err != nil {
		return 0, false, err
	}
	dstEnd, err := transitionInstant(p.end, year, p.dstOffsetNanos)
	if err != nil {
		return 0, false, err
	}

	var inDST bool
	if dstStart.Cmp(dstEnd) <= 0 {
		inDST = epochNs.Cmp(dstStart) >= 0 && epochNs.Cmp(dstEnd) < 0
	} else {
		inDST = epochNs.Cmp(dstStart) >= 0 || epochNs.Cmp(dstEnd) < 0
	}
	if inDST {
		return p.dstOffsetNanos, true, nil
	}
	return p.stdOffsetNanos, false, nil
}

// divModDayEuclidean splits epoch nanoseconds into a (day, remainder)
// pair with a remainder always in [0, dayNanos).
func divModDayEuclidean(ns int128.Int128) (day int64, remNanos int64) {
	q, r, ok := ns.DivModI64(dayNanos)
	if !ok {
		return 0, 0
	}
	qi, exact := q.Int64()
	if !exact {
		return 0, 0
	}
	if r < 0 {
		r += dayNanos
		qi--
	}
	return qi, r
}
