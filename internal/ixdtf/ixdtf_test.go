package ixdtf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temporal-go/tcore/internal/calendar"
	"github.com/temporal-go/tcore/internal/ixdtf"
)

func TestParseDateTimeBasic(t *testing.T) {
	dt, err := ixdtf.ParseDateTime("2024-03-10T07:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, int32(2024), dt.Date.Year)
	assert.Equal(t, int8(3), dt.Date.Month)
	assert.Equal(t, int8(10), dt.Date.Day)
	assert.Equal(t, int8(7), dt.Time.Hour)
	assert.True(t, dt.HasZ)
	assert.Nil(t, dt.OffsetNanoseconds)
	assert.Equal(t, calendar.Iso, dt.Calendar)
}

func TestParseDateTimeWithOffsetAndZone(t *testing.T) {
	dt, err := ixdtf.ParseDateTime("2024-11-03T01:30:00-05:00[America/New_York]")
	require.NoError(t, err)
	require.NotNil(t, dt.OffsetNanoseconds)
	assert.Equal(t, int64(-5*3600*1_000_000_000), *dt.OffsetNanoseconds)
	assert.Equal(t, "America/New_York", dt.TimeZone)
	assert.False(t, dt.HasZ)
}

func TestParseDateTimeWithCalendarAnnotation(t *testing.T) {
	dt, err := ixdtf.ParseDateTime("2024-11-03T01:30:00-05:00[America/New_York][u-ca=coptic]")
	require.NoError(t, err)
	assert.True(t, dt.HasCalendar)
	assert.Equal(t, calendar.Coptic, dt.Calendar)
}

func TestParseDateTimeUnknownCalendarFails(t *testing.T) {
	_, err := ixdtf.ParseDateTime("2024-11-03T01:30:00-05:00[u-ca=not-a-calendar]")
	assert.Error(t, err)
}

func TestParseDateTimeDuplicateNonCriticalUCAFirstWins(t *testing.T) {
	dt, err := ixdtf.ParseDateTime("2024-01-01T00:00:00Z[u-ca=coptic][u-ca=persian]")
	require.NoError(t, err)
	assert.Equal(t, calendar.Coptic, dt.Calendar)
}

func TestParseDateTimeDuplicateCriticalUCAFails(t *testing.T) {
	_, err := ixdtf.ParseDateTime("2024-01-01T00:00:00Z[!u-ca=coptic][u-ca=persian]")
	assert.Error(t, err)
}

func TestParseDateTimeUnknownCriticalAnnotationFails(t *testing.T) {
	_, err := ixdtf.ParseDateTime("2024-01-01T00:00:00Z[!foo=bar]")
	assert.Error(t, err)
}

func TestParseDateTimeUnknownNonCriticalAnnotationIgnored(t *testing.T) {
	dt, err := ixdtf.ParseDateTime("2024-01-01T00:00:00Z[foo=bar]")
	require.NoError(t, err)
	assert.Equal(t, calendar.Iso, dt.Calendar)
}

func TestParseDateBareAndMonthDay(t *testing.T) {
	d, cal, err := ixdtf.ParseDate("2024-03-10[u-ca=hebrew]")
	require.NoError(t, err)
	assert.Equal(t, calendar.Hebrew, cal)
	assert.Equal(t, int8(10), d.Day)
}

func TestParseTimeBare(t *testing.T) {
	tm, err := ixdtf.ParseTime("T12:34:56.789")
	require.NoError(t, err)
	assert.Equal(t, int8(12), tm.Hour)
	assert.Equal(t, int16(789), tm.Millisecond)
}

func TestParseDurationFull(t *testing.T) {
	d, err := ixdtf.ParseDuration("P1Y2M3W4DT5H6M7.5S")
	require.NoError(t, err)
	assert.Equal(t, int64(1), d.Years)
	assert.Equal(t, int64(2), d.Months)
	assert.Equal(t, int64(3), d.Weeks)
	assert.Equal(t, int64(4), d.Days)
	assert.Equal(t, int64(5), d.Hours)
	assert.Equal(t, int64(6), d.Minutes)
	assert.Equal(t, int64(7), d.Seconds)
	assert.Equal(t, int64(500_000_000), d.FractionNanos)
	assert.Equal(t, "S", d.FractionUnit)
}

func TestParseDurationNegativeSign(t *testing.T) {
	d, err := ixdtf.ParseDuration("-P1D")
	require.NoError(t, err)
	assert.True(t, d.Negative)
	assert.Equal(t, int64(1), d.Days)
}

func TestParseDurationRejectsFractionNotLast(t *testing.T) {
	_, err := ixdtf.ParseDuration("PT1.5H2M")
	assert.Error(t, err)
}

func TestParseDurationRejectsEmpty(t *testing.T) {
	_, err := ixdtf.ParseDuration("P")
	assert.Error(t, err)
}

func TestFormatDurationRoundTripsPlainDays(t *testing.T) {
	d, err := ixdtf.ParseDuration("P4D")
	require.NoError(t, err)
	out, err := ixdtf.FormatDuration(d)
	require.NoError(t, err)
	assert.Equal(t, "P4D", out)
}

func TestFormatDurationZeroIsPT0S(t *testing.T) {
	out, err := ixdtf.FormatDuration(ixdtf.RawDuration{})
	require.NoError(t, err)
	assert.Equal(t, "PT0S", out)
}

func TestFormatOffsetZ(t *testing.T) {
	assert.Equal(t, "Z", ixdtf.FormatOffset(0, true))
}

func TestFormatOffsetNegative(t *testing.T) {
	assert.Equal(t, "-05:00", ixdtf.FormatOffset(-5*3600*1_000_000_000, false))
}
