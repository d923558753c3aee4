package ixdtf

import (
	"fmt"
	"strings"

	"github.com/temporal-go/tcore/internal/calendar"
	"github.com/temporal-go/tcore/internal/iso"
	"github.com/temporal-go/tcore/internal/terr"
)

// FractionPrecision selects how many fractional-second digits a
// formatted time carries.
type FractionPrecision int

const (
	// FractionAuto emits as many digits as are needed to represent the
	// value exactly, trimming trailing zeros, and omits the decimal
	// point entirely when the value has no sub-second component.
	FractionAuto FractionPrecision = -2
	// FractionMinute omits time-of-day from the output entirely.
	FractionMinute FractionPrecision = -1
	// 0..9 (FractionPrecision(n)) fixes the digit count exactly.
)

// AnnotationDisplay controls whether a formatter emits, suppresses, or
// critical-flags a given bracket annotation.
type AnnotationDisplay int

const (
	DisplayAuto AnnotationDisplay = iota
	DisplayNever
	DisplayCritical
)

// FormatOptions configures FormatDateTime per spec.md §4.6's formatter rules.
type FormatOptions struct {
	FractionDigits FractionPrecision
	TimeZoneDisplay AnnotationDisplay
	CalendarDisplay AnnotationDisplay
	OffsetDisplay   AnnotationDisplay
}

// DefaultFormatOptions is a general-purpose option set: auto-precision
// fractions, time zone and offset shown, calendar shown only when it is
// not "iso8601". The facade types do not use it; each passes its own
// FormatOptions.
var DefaultFormatOptions = FormatOptions{
	FractionDigits:  FractionAuto,
	TimeZoneDisplay: DisplayAuto,
	CalendarDisplay: DisplayAuto,
	OffsetDisplay:   DisplayAuto,
}

// FormatDate renders the date portion alone: "YYYY-MM-DD", sign-extended
// to 6 digits and explicitly signed outside [0000, 9999].
func FormatDate(d iso.Date) string {
	var b strings.Builder
	writeYear(&b, d.Year)
	fmt.Fprintf(&b, "-%02d-%02d", d.Month, d.Day)
	return b.String()
}

func writeYear(b *strings.Builder, year int32) {
	if year < 0 || year > 9999 {
		if year < 0 {
			b.WriteByte('-')
		} else {
			b.WriteByte('+')
		}
		fmt.Fprintf(b, "%06d", abs32(year))
		return
	}
	fmt.Fprintf(b, "%04d", year)
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// FormatTime renders "HH:MM:SS[.fraction]" per the given precision.
func FormatTime(t iso.Time, precision FractionPrecision) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	writeFraction(&b, t, precision)
	return b.String()
}

func writeFraction(b *strings.Builder, t iso.Time, precision FractionPrecision) {
	nanos := int64(t.Millisecond)*1_000_000 + int64(t.Microsecond)*1_000 + int64(t.Nanosecond)
	switch {
	case precision == FractionAuto:
		if nanos == 0 {
			return
		}
		digits := fmt.Sprintf("%09d", nanos)
		digits = strings.TrimRight(digits, "0")
		b.WriteByte('.')
		b.WriteString(digits)
	case precision == FractionMinute:
		return
	default:
		n := int(precision)
		if n <= 0 {
			return
		}
		digits := fmt.Sprintf("%09d", nanos)[:min9(n)]
		b.WriteByte('.')
		b.WriteString(digits)
	}
}

func min9(n int) int {
	if n > 9 {
		return 9
	}
	return n
}

// FormatOffset renders a numeric offset as "Z" (for a zero offset shown
// with UTC designator) or "±HH:MM[:SS[.frac]]".
func FormatOffset(offsetNanos int64, hasZ bool) string {
	if hasZ {
		return "Z"
	}
	sign := byte('+')
	n := offsetNanos
	if n < 0 {
		sign = '-'
		n = -n
	}
	hour := n / 3_600_000_000_000
	n %= 3_600_000_000_000
	minute := n / 60_000_000_000
	n %= 60_000_000_000
	second := n / 1_000_000_000
	n %= 1_000_000_000

	var b strings.Builder
	b.WriteByte(sign)
	fmt.Fprintf(&b, "%02d:%02d", hour, minute)
	if second != 0 || n != 0 {
		fmt.Fprintf(&b, ":%02d", second)
		if n != 0 {
			digits := strings.TrimRight(fmt.Sprintf("%09d", n), "0")
			b.WriteByte('.')
			b.WriteString(digits)
		}
	}
	return b.String()
}

// FormatDateTime assembles a full IXDTF string from its parts, applying
// the display flags in opts to decide which bracket annotations appear.
// timeZoneID is the IANA identifier (empty for an Offset zone); calID is
// the calendar to annotate (ignored, under DisplayAuto, when it is ISO).
func FormatDateTime(dt iso.DateTime, hasOffset bool, offsetNanos int64, hasZ bool, timeZoneID string, calID calendar.ID, opts FormatOptions) string {
	var b strings.Builder
	b.WriteString(FormatDate(dt.Date))
	if opts.FractionDigits != FractionMinute {
		b.WriteByte('T')
		b.WriteString(FormatTime(dt.Time, opts.FractionDigits))
	}

	if hasOffset || hasZ {
		switch opts.OffsetDisplay {
		case DisplayNever:
		default:
			b.WriteString(FormatOffset(offsetNanos, hasZ))
		}
	}

	if timeZoneID != "" && opts.TimeZoneDisplay != DisplayNever {
		critical := opts.TimeZoneDisplay == DisplayCritical
		writeAnnotation(&b, critical, timeZoneID)
	}

	showCalendar := opts.CalendarDisplay == DisplayCritical ||
		(opts.CalendarDisplay == DisplayAuto && calID != calendar.Iso)
	if showCalendar {
		critical := opts.CalendarDisplay == DisplayCritical
		writeAnnotation(&b, critical, "u-ca="+calID.Name())
	}

	return b.String()
}

func writeAnnotation(b *strings.Builder, critical bool, body string) {
	b.WriteByte('[')
	if critical {
		b.WriteByte('!')
	}
	b.WriteString(body)
	b.WriteByte(']')
}

// FormatDuration renders a RawDuration in canonical "PnYnMnWnDTnHnMnS"
// form, omitting zero-valued components except that an entirely-zero
// duration formats as "PT0S".
func FormatDuration(d RawDuration) (string, error) {
	if d.Years == 0 && d.Months == 0 && d.Weeks == 0 && d.Days == 0 &&
		d.Hours == 0 && d.Minutes == 0 && d.Seconds == 0 && d.FractionNanos == 0 {
		return "PT0S", nil
	}

	var b strings.Builder
	if d.Negative {
		b.WriteByte('-')
	}
	b.WriteByte('P')
	writeComponent(&b, d.Years, 'Y')
	writeComponent(&b, d.Months, 'M')
	writeComponent(&b, d.Weeks, 'W')
	writeComponent(&b, d.Days, 'D')

	hasTime := d.Hours != 0 || d.Minutes != 0 || d.Seconds != 0 || d.FractionNanos != 0
	if hasTime {
		b.WriteByte('T')
		writeComponent(&b, d.Hours, 'H')
		writeComponent(&b, d.Minutes, 'M')
		if d.Seconds != 0 || d.FractionNanos != 0 || (d.Years == 0 && d.Months == 0 && d.Weeks == 0 && d.Days == 0 && d.Hours == 0 && d.Minutes == 0) {
			fmt.Fprintf(&b, "%d", d.Seconds)
			if d.FractionNanos != 0 {
				if d.FractionUnit != "" && d.FractionUnit != "S" {
					return "", terr.Assertf("fractional unit %q cannot be rendered alongside nonzero seconds", d.FractionUnit)
				}
				digits := strings.TrimRight(fmt.Sprintf("%09d", d.FractionNanos), "0")
				b.WriteByte('.')
				b.WriteString(digits)
			}
			b.WriteByte('S')
		}
	}
	return b.String(), nil
}

func writeComponent(b *strings.Builder, v int64, unit byte) {
	if v == 0 {
		return
	}
	fmt.Fprintf(b, "%d%c", v, unit)
}
