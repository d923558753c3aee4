package tcore

import (
	"github.com/temporal-go/tcore/internal/iso"
	"github.com/temporal-go/tcore/internal/round"
	"github.com/temporal-go/tcore/internal/tz"
)

// Overflow controls how an out-of-range field combination is handled
// when constructing or "with"-ing a value (spec.md §4.1, §4.2).
type Overflow int

const (
	Constrain Overflow = iota
	Reject
)

func (o Overflow) toISO() iso.Overflow {
	if o == Reject {
		return iso.Reject
	}
	return iso.Constrain
}

// Disambiguation resolves a wall-clock time that maps to zero or two
// epoch instants in a time zone (spec.md §4.5).
type Disambiguation int

const (
	Compatible Disambiguation = iota
	Earlier
	Later
	DisambiguationReject
)

func (d Disambiguation) toTZ() tz.Disambiguation {
	switch d {
	case Earlier:
		return tz.Earlier
	case Later:
		return tz.Later
	case DisambiguationReject:
		return tz.DisambiguationReject
	default:
		return tz.Compatible
	}
}

// OffsetDisambiguation resolves a conflict between an explicit numeric
// offset and an IANA time-zone annotation parsed together (spec.md
// §4.6).
type OffsetDisambiguation int

const (
	// OffsetUse trusts the numeric offset and ignores the zone's
	// computed offset entirely.
	OffsetUse OffsetDisambiguation = iota
	// OffsetPrefer uses the numeric offset if it is one of the zone's
	// valid candidates, otherwise falls back to disambiguation.
	OffsetPrefer
	// OffsetIgnore discards the numeric offset and resolves purely from
	// the wall time and zone.
	OffsetIgnore
	// OffsetReject fails unless the numeric offset exactly matches the
	// zone's offset at the resolved instant.
	OffsetReject
)

// Unit names a position in the temporal unit lattice (spec.md §4.4).
type Unit = round.Unit

const (
	UnitNanosecond  = round.Nanosecond
	UnitMicrosecond = round.Microsecond
	UnitMillisecond = round.Millisecond
	UnitSecond      = round.Second
	UnitMinute      = round.Minute
	UnitHour        = round.Hour
	UnitDay         = round.Day
	UnitWeek        = round.Week
	UnitMonth       = round.Month
	UnitYear        = round.Year
)

// RoundingMode is one of the nine modes of spec.md §4.4 rule 5.
type RoundingMode = round.Mode

const (
	ModeCeil       = round.Ceil
	ModeFloor      = round.Floor
	ModeExpand     = round.Expand
	ModeTrunc      = round.Trunc
	ModeHalfCeil   = round.HalfCeil
	ModeHalfFloor  = round.HalfFloor
	ModeHalfExpand = round.HalfExpand
	ModeHalfTrunc  = round.HalfTrunc
	ModeHalfEven   = round.HalfEven
)

// RoundTo configures Duration.Round and the round(options) entry point
// shared by every facade type (spec.md §4.4, §4.7).
type RoundTo struct {
	SmallestUnit      Unit
	LargestUnit       Unit
	HasLargestUnit    bool
	RoundingIncrement int64
	RoundingMode      RoundingMode
	// RelativeTo is required whenever SmallestUnit >= Week or the
	// duration being rounded carries any nonzero calendar field
	// (years, months, weeks or days); a nonzero day count alone is not
	// treated as 24 hours.
	RelativeTo   *PlainDate
	RelativeToZoned *ZonedDateTime
}

// DifferenceSettings configures `until`/`since` across every facade
// type (spec.md §4.7).
type DifferenceSettings struct {
	SmallestUnit      Unit
	LargestUnit       Unit
	HasLargestUnit    bool
	RoundingIncrement int64
	RoundingMode      RoundingMode
}
