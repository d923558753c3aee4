package tcore

import (
	"strconv"

	"github.com/temporal-go/tcore/internal/calendar"
	"github.com/temporal-go/tcore/internal/durationcore"
	"github.com/temporal-go/tcore/internal/int128"
	"github.com/temporal-go/tcore/internal/iso"
	"github.com/temporal-go/tcore/internal/ixdtf"
	"github.com/temporal-go/tcore/internal/tz"
)

// Zone is the public name for tz's closed TimeZone variant.
type Zone = tz.Zone

// Provider supplies time-zone transition data to every ZonedDateTime
// operation that touches an IANA zone (spec.md §6.1); it is threaded
// through explicitly rather than held by ZonedDateTime itself, per
// spec.md §5's "no ambient state" rule.
type Provider = tz.Provider

// UTCZone is the fixed +00:00 offset zone.
var UTCZone = mustZoneFromOffset(0)

func mustZoneFromOffset(ns int64) Zone {
	z, err := tz.FromOffsetNanoseconds(ns)
	if err != nil {
		panic(err)
	}
	return z
}

// ZoneFromOffsetNanoseconds builds a fixed-offset Zone.
func ZoneFromOffsetNanoseconds(ns int64) (Zone, error) {
	z, err := tz.FromOffsetNanoseconds(ns)
	return z, wrapInternal(err)
}

// ZoneFromIANAIdentifier builds a Zone resolved lazily through a
// Provider.
func ZoneFromIANAIdentifier(identifier string) Zone { return tz.FromIANAIdentifier(identifier) }

// ZonedDateTime is an Instant paired with a TimeZone and Calendar
// (spec.md §4.7), grounded on go-chrono/chrono's ZonedDateTime (an
// epoch accumulator plus a Zone) but widened with the calendar axis
// PlainDate already carries, and with every zone-touching operation
// taking an explicit Provider instead of the teacher's package-level
// Local()/zone cache.
type ZonedDateTime struct {
	epochNs int128.Int128
	zone    Zone
	cal     calendar.ID
}

// NewZonedDateTime pairs an Instant with a zone and calendar directly,
// with no disambiguation needed since an Instant is already exact.
func NewZonedDateTime(instant Instant, zone Zone, cal calendar.ID) ZonedDateTime {
	return ZonedDateTime{epochNs: instant.epochNs, zone: zone, cal: cal}
}

// NewZonedDateTimeFromFields resolves a wall-clock date/time under
// zone into an exact instant, applying disambiguation for a gap/
// overlap and offsetDisambiguation when a numeric offset accompanies
// an IANA zone (spec.md §4.5, §4.6).
func NewZonedDateTimeFromFields(cal calendar.ID, pd PartialDate, pt PartialTime, zone Zone, overflow Overflow,
	disambiguation Disambiguation, p Provider) (ZonedDateTime, error) {
	date, err := NewPlainDate(cal, pd, overflow)
	if err != nil {
		return ZonedDateTime{}, err
	}
	t, err := NewPlainTime(
		orZeroInt(pt.Hour), orZeroInt(pt.Minute), orZeroInt(pt.Second),
		orZeroInt(pt.Millisecond), orZeroInt(pt.Microsecond), orZeroInt(pt.Nanosecond),
		overflow,
	)
	if err != nil {
		return ZonedDateTime{}, err
	}
	dt := iso.DateTime{Date: date.date, Time: t.t}
	candidates, err := tz.GetPossibleEpochNanosecondsFor(zone, dt, p)
	if err != nil {
		return ZonedDateTime{}, wrapInternal(err)
	}
	epochNs, err := tz.DisambiguatePossibleEpochNanoseconds(zone, dt, candidates, disambiguation.toTZ(), p)
	if err != nil {
		return ZonedDateTime{}, wrapInternal(err)
	}
	return ZonedDateTime{epochNs: epochNs, zone: zone, cal: cal}, nil
}

func orZeroInt(v *int64) int {
	if v == nil {
		return 0
	}
	return int(*v)
}

// Instant returns the exact point on the timeline zdt represents.
func (zdt ZonedDateTime) Instant() Instant { return Instant{epochNs: zdt.epochNs} }

// Zone returns zdt's time zone.
func (zdt ZonedDateTime) Zone() Zone { return zdt.zone }

// Calendar returns zdt's calendar.
func (zdt ZonedDateTime) Calendar() calendar.ID { return zdt.cal }

// OffsetNanoseconds returns the UTC offset in effect at zdt's instant.
func (zdt ZonedDateTime) OffsetNanoseconds(p Provider) (int64, error) {
	off, err := tz.GetOffsetNanosecondsFor(zdt.zone, zdt.epochNs, p)
	return off, wrapInternal(err)
}

// ToPlainDateTime projects zdt to the wall-clock date/time in its
// zone and calendar.
func (zdt ZonedDateTime) ToPlainDateTime(p Provider) (PlainDateTime, error) {
	off, err := tz.GetOffsetNanosecondsFor(zdt.zone, zdt.epochNs, p)
	if err != nil {
		return PlainDateTime{}, wrapInternal(err)
	}
	wallNs, ok := zdt.epochNs.Add(int128.FromInt64(off))
	if !ok {
		return PlainDateTime{}, rangeErrorf("zoned date-time wall projection overflows")
	}
	days, remNs, ok := wallNs.DivModI64(dayNanoseconds)
	if !ok {
		return PlainDateTime{}, rangeErrorf("zoned date-time wall projection overflows")
	}
	if remNs < 0 {
		remNs += dayNanoseconds
		days, ok = days.Sub(int128.FromInt64(1))
		if !ok {
			return PlainDateTime{}, rangeErrorf("zoned date-time wall projection overflows")
		}
	}
	daysI64, exact := days.Int64()
	if !exact {
		return PlainDateTime{}, rangeErrorf("zoned date-time day count overflows")
	}
	date, err := iso.FromEpochDay(daysI64)
	if err != nil {
		return PlainDateTime{}, wrapInternal(err)
	}
	return PlainDateTime{date: PlainDate{date: date, cal: zdt.cal}, time: PlainTime{t: iso.NanosToTime(remNs)}}, nil
}

// ToPlainDate projects zdt to its wall-clock calendar date.
func (zdt ZonedDateTime) ToPlainDate(p Provider) (PlainDate, error) {
	dt, err := zdt.ToPlainDateTime(p)
	if err != nil {
		return PlainDate{}, err
	}
	return dt.date, nil
}

// WithCalendar returns a copy of zdt under a different calendar,
// leaving the underlying instant and zone unchanged.
func (zdt ZonedDateTime) WithCalendar(cal calendar.ID) ZonedDateTime {
	return ZonedDateTime{epochNs: zdt.epochNs, zone: zdt.zone, cal: cal}
}

// Add returns zdt+dur: the calendar portion is added in the zone's
// local wall calendar under Compatible disambiguation, then the
// sub-day portion in epoch-nanosecond space (spec.md §4.5).
func (zdt ZonedDateTime) Add(dur Duration, overflow Overflow, p Provider) (ZonedDateTime, error) {
	return zdt.addSigned(dur, overflow, p)
}

// Subtract returns zdt-dur.
func (zdt ZonedDateTime) Subtract(dur Duration, overflow Overflow, p Provider) (ZonedDateTime, error) {
	return zdt.addSigned(dur.Negated(), overflow, p)
}

func (zdt ZonedDateTime) addSigned(dur Duration, overflow Overflow, p Provider) (ZonedDateTime, error) {
	wall, err := zdt.ToPlainDateTime(p)
	if err != nil {
		return ZonedDateTime{}, err
	}
	newDate, err := wall.date.addDateDuration(dur.date, overflow)
	if err != nil {
		return ZonedDateTime{}, err
	}
	candidates, err := tz.GetPossibleEpochNanosecondsFor(zdt.zone, iso.DateTime{Date: newDate.date, Time: wall.time.t}, p)
	if err != nil {
		return ZonedDateTime{}, wrapInternal(err)
	}
	baseNs, err := tz.DisambiguatePossibleEpochNanoseconds(zdt.zone, iso.DateTime{Date: newDate.date, Time: wall.time.t}, candidates, tz.Compatible, p)
	if err != nil {
		return ZonedDateTime{}, wrapInternal(err)
	}
	finalNs, ok := baseNs.Add(dur.time.Nanoseconds())
	if !ok {
		return ZonedDateTime{}, rangeErrorf("zoned date-time arithmetic overflows")
	}
	return ZonedDateTime{epochNs: finalNs, zone: zdt.zone, cal: zdt.cal}, nil
}

// Until returns the duration from zdt to other, in the zone's
// calendar up to settings' largest unit (spec.md §4.5: "differences
// reverse this, producing calendar-unit differences only up to the
// largest requested unit").
func (zdt ZonedDateTime) Until(other ZonedDateTime, settings DifferenceSettings, p Provider) (Duration, error) {
	if settings.HasLargestUnit && settings.LargestUnit > UnitDay {
		wallA, err := zdt.ToPlainDateTime(p)
		if err != nil {
			return Duration{}, err
		}
		wallB, err := other.ToPlainDateTime(p)
		if err != nil {
			return Duration{}, err
		}
		return wallA.Until(wallB, settings)
	}
	deltaNs, ok := other.epochNs.Sub(zdt.epochNs)
	if !ok {
		return Duration{}, rangeErrorf("zoned date-time difference overflows")
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
	if settings.SmallestUnit == UnitNanosecond && increment == 1 && settings.RoundingMode == 0 {
		return dur, nil
	}
	return dur.Round(RoundTo{SmallestUnit: settings.SmallestUnit, RoundingIncrement: increment, RoundingMode: settings.RoundingMode})
}

// Since returns the duration from other to zdt.
func (zdt ZonedDateTime) Since(other ZonedDateTime, settings DifferenceSettings, p Provider) (Duration, error) {
	dur, err := other.Until(zdt, settings, p)
	if err != nil {
		return Duration{}, err
	}
	return dur.Negated(), nil
}

// Round rounds zdt's instant to the nearest multiple of opts' unit
// and increment (at or below Day).
func (zdt ZonedDateTime) Round(opts RoundTo) (ZonedDateTime, error) {
	rounded, err := Instant{epochNs: zdt.epochNs}.Round(opts)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return ZonedDateTime{epochNs: rounded.epochNs, zone: zdt.zone, cal: zdt.cal}, nil
}

// Compare orders two ZonedDateTimes by exact instant.
func (zdt ZonedDateTime) Compare(other ZonedDateTime) int { return zdt.epochNs.Cmp(other.epochNs) }

// Equals reports whether zdt and other name the same instant, zone,
// and calendar.
func (zdt ZonedDateTime) Equals(other ZonedDateTime) bool {
	return zdt.Compare(other) == 0 && zonesEqual(zdt.zone, other.zone) && zdt.cal == other.cal
}

// zonesEqual compares two Zones by identifier, falling back to their
// fixed offset for offset-kind zones: Zone.Identifier() is empty for
// every offset-kind zone regardless of its actual offset, so comparing
// identifiers alone would treat "+01:00" and "+02:00" as equal.
func zonesEqual(a, b Zone) bool {
	if a.IsOffset() || b.IsOffset() {
		if !a.IsOffset() || !b.IsOffset() {
			return false
		}
		aOff, _ := a.OffsetNanoseconds()
		bOff, _ := b.OffsetNanoseconds()
		return aOff == bOff
	}
	return a.Identifier() == b.Identifier()
}

// HoursInDay computes the length, in hours, of the wall-clock day
// zdt falls on (spec.md §4.5): the instant gap between the start of
// that day and the start of the next, both resolved under Compatible
// disambiguation; this may be non-integral across a fractional-hour
// DST transition.
func (zdt ZonedDateTime) HoursInDay(p Provider) (Finite, error) {
	wall, err := zdt.ToPlainDateTime(p)
	if err != nil {
		return 0, err
	}
	startOfDay := iso.DateTime{Date: wall.date.date}
	nextDay, err := iso.AddDate(wall.date.date, iso.AddFields{Days: 1}, iso.Constrain)
	if err != nil {
		return 0, wrapInternal(err)
	}
	startOfNextDay := iso.DateTime{Date: nextDay}

	startNs, err := resolveStartOfDay(zdt.zone, startOfDay, p)
	if err != nil {
		return 0, err
	}
	nextNs, err := resolveStartOfDay(zdt.zone, startOfNextDay, p)
	if err != nil {
		return 0, err
	}
	deltaNs, ok := nextNs.Sub(startNs)
	if !ok {
		return 0, rangeErrorf("hoursInDay overflows")
	}
	deltaI64, exact := deltaNs.Int64()
	if !exact {
		return 0, rangeErrorf("hoursInDay overflows")
	}
	return NewFinite(float64(deltaI64) / float64(3_600_000_000_000))
}

func resolveStartOfDay(zone Zone, dt iso.DateTime, p Provider) (int128.Int128, error) {
	candidates, err := tz.GetPossibleEpochNanosecondsFor(zone, dt, p)
	if err != nil {
		return int128.Int128{}, wrapInternal(err)
	}
	ns, err := tz.DisambiguatePossibleEpochNanoseconds(zone, dt, candidates, tz.Compatible, p)
	return ns, wrapInternal(err)
}

// String renders zdt in canonical IXDTF form: instant + offset +
// [IANA zone] + [u-ca=calendar] (spec.md §4.6).
func (zdt ZonedDateTime) String(p Provider) (string, error) {
	wall, err := zdt.ToPlainDateTime(p)
	if err != nil {
		return "", err
	}
	off, err := zdt.OffsetNanoseconds(p)
	if err != nil {
		return "", err
	}
	full := iso.DateTime{Date: wall.date.date, Time: wall.time.t}
	tzDisplay := ixdtf.DisplayAuto
	identifier := zdt.zone.Identifier()
	if zdt.zone.IsOffset() {
		tzDisplay = ixdtf.DisplayNever
		identifier = ""
	}
	return ixdtf.FormatDateTime(full, true, off, false, identifier, zdt.cal,
		ixdtf.FormatOptions{FractionDigits: ixdtf.FractionAuto, OffsetDisplay: ixdtf.DisplayAuto, TimeZoneDisplay: tzDisplay, CalendarDisplay: ixdtf.DisplayAuto}), nil
}

// ParseZonedDateTime parses an IXDTF string carrying a time-zone
// annotation, resolving it to an exact instant via p. offsetDisambig
// governs how a numeric offset accompanying an IANA zone is reconciled
// with the zone's own computed offset (spec.md §4.6).
func ParseZonedDateTime(s string, overflow Overflow, disambiguation Disambiguation, offsetDisambig OffsetDisambiguation, p Provider) (ZonedDateTime, error) {
	parsed, err := ixdtf.ParseDateTime(s)
	if err != nil {
		return ZonedDateTime{}, wrapInternal(err)
	}
	if parsed.TimeZone == "" {
		return ZonedDateTime{}, rangeErrorf("zoned date-time string must carry a time-zone annotation")
	}
	zone := zoneFromAnnotation(parsed.TimeZone)
	cal := calendar.Iso
	if parsed.HasCalendar {
		cal = parsed.Calendar
	}
	dt := iso.DateTime{Date: parsed.Date, Time: parsed.Time}

	if parsed.OffsetNanoseconds != nil && !zone.IsOffset() {
		switch offsetDisambig {
		case OffsetUse:
			epochNs, ok := dayDeltaToEpoch(dt, *parsed.OffsetNanoseconds)
			if !ok {
				return ZonedDateTime{}, rangeErrorf("zoned date-time offset use overflows")
			}
			return ZonedDateTime{epochNs: epochNs, zone: zone, cal: cal}, nil
		case OffsetIgnore:
			candidates, err := tz.GetPossibleEpochNanosecondsFor(zone, dt, p)
			if err != nil {
				return ZonedDateTime{}, wrapInternal(err)
			}
			epochNs, err := tz.DisambiguatePossibleEpochNanoseconds(zone, dt, candidates, disambiguation.toTZ(), p)
			if err != nil {
				return ZonedDateTime{}, wrapInternal(err)
			}
			return ZonedDateTime{epochNs: epochNs, zone: zone, cal: cal}, nil
		case OffsetPrefer, OffsetReject:
			candidates, err := tz.GetPossibleEpochNanosecondsFor(zone, dt, p)
			if err != nil {
				return ZonedDateTime{}, wrapInternal(err)
			}
			for _, c := range candidates {
				off, err := tz.GetOffsetNanosecondsFor(zone, c, p)
				if err != nil {
					return ZonedDateTime{}, wrapInternal(err)
				}
				if off == *parsed.OffsetNanoseconds {
					return ZonedDateTime{epochNs: c, zone: zone, cal: cal}, nil
				}
			}
			if offsetDisambig == OffsetReject {
				return ZonedDateTime{}, rangeErrorf("zoned date-time offset does not match the named time zone")
			}
			epochNs, err := tz.DisambiguatePossibleEpochNanoseconds(zone, dt, candidates, disambiguation.toTZ(), p)
			if err != nil {
				return ZonedDateTime{}, wrapInternal(err)
			}
			return ZonedDateTime{epochNs: epochNs, zone: zone, cal: cal}, nil
		}
	}

	candidates, err := tz.GetPossibleEpochNanosecondsFor(zone, dt, p)
	if err != nil {
		return ZonedDateTime{}, wrapInternal(err)
	}
	epochNs, err := tz.DisambiguatePossibleEpochNanoseconds(zone, dt, candidates, disambiguation.toTZ(), p)
	if err != nil {
		return ZonedDateTime{}, wrapInternal(err)
	}
	return ZonedDateTime{epochNs: epochNs, zone: zone, cal: cal}, nil
}

// dayDeltaToEpoch converts a wall date/time plus an explicit numeric
// offset directly to epoch nanoseconds, with no zone lookup at all
// (OffsetDisambiguation.Use, spec.md §4.6).
func dayDeltaToEpoch(dt iso.DateTime, offsetNs int64) (int128.Int128, bool) {
	dayNs, ok := int128.FromInt64(iso.ToEpochDay(dt.Date)).MulI64(dayNanoseconds)
	if !ok {
		return int128.Int128{}, false
	}
	wallNs, ok := dayNs.Add(int128.FromInt64(iso.TimeToNanos(dt.Time)))
	if !ok {
		return int128.Int128{}, false
	}
	return wallNs.Sub(int128.FromInt64(offsetNs))
}

func zoneFromAnnotation(raw string) Zone {
	if off, ok := parseFixedOffsetAnnotation(raw); ok {
		z, err := tz.FromOffsetNanoseconds(off)
		if err == nil {
			return z
		}
	}
	return tz.FromIANAIdentifier(raw)
}

// parseFixedOffsetAnnotation recognizes the offset-shaped form of a
// time-zone annotation body, "Z" or "±HH:MM[:SS[.fraction]]", as
// opposed to an IANA identifier such as "America/New_York".
func parseFixedOffsetAnnotation(raw string) (int64, bool) {
	if raw == "Z" || raw == "z" {
		return 0, true
	}
	if len(raw) < 3 || (raw[0] != '+' && raw[0] != '-') {
		return 0, false
	}
	neg := raw[0] == '-'
	parts := raw[1:]
	hh, mm, ss, fracNs := "", "0", "0", int64(0)
	switch {
	case len(parts) >= 5 && parts[2] == ':':
		hh, mm = parts[0:2], parts[3:5]
		rest := parts[5:]
		if len(rest) >= 3 && rest[0] == ':' {
			ss = rest[1:3]
			if len(rest) > 3 && (rest[3] == '.' || rest[3] == ',') {
				f, err := strconv.ParseInt(padRight(rest[4:], 9), 10, 64)
				if err != nil {
					return 0, false
				}
				fracNs = f
			}
		} else if len(rest) != 0 {
			return 0, false
		}
	case len(parts) == 4:
		hh, mm = parts[0:2], parts[2:4]
	default:
		return 0, false
	}
	h, err1 := strconv.ParseInt(hh, 10, 64)
	m, err2 := strconv.ParseInt(mm, 10, 64)
	s, err3 := strconv.ParseInt(ss, 10, 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, false
	}
	total := (h*3600+m*60+s)*1_000_000_000 + fracNs
	if neg {
		total = -total
	}
	return total, true
}

func padRight(s string, n int) string {
	for len(s) < n {
		s += "0"
	}
	if len(s) > n {
		s = s[:n]
	}
	return s
}
