package tcore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temporal-go/tcore/internal/calendar"

	"github.com/temporal-go/tcore"
)

func mustZonedDateTime(t *testing.T, epochSeconds int64, zone tcore.Zone) tcore.ZonedDateTime {
	t.Helper()
	i, err := tcore.FromEpochSeconds(epochSeconds)
	require.NoError(t, err)
	return tcore.NewZonedDateTime(i, zone, calendar.Iso)
}

func TestZonedDateTimeOffsetNanoseconds(t *testing.T) {
	zone, err := tcore.ZoneFromOffsetNanoseconds(-5 * 3600 * 1_000_000_000)
	require.NoError(t, err)
	zdt := mustZonedDateTime(t, 0, zone)

	off, err := zdt.OffsetNanoseconds(nil)
	require.NoError(t, err)
	assert.Equal(t, int64(-5*3600*1_000_000_000), off)
}

func TestZonedDateTimeToPlainDateTimeAppliesOffset(t *testing.T) {
	zone, err := tcore.ZoneFromOffsetNanoseconds(-5 * 3600 * 1_000_000_000)
	require.NoError(t, err)
	zdt := mustZonedDateTime(t, 0, zone)

	wall, err := zdt.ToPlainDateTime(nil)
	require.NoError(t, err)
	assert.Equal(t, "1969-12-31", wall.Date().String())
	assert.Equal(t, 19, wall.Time().Hour())
}

func TestZonedDateTimeAddAcrossOffset(t *testing.T) {
	zone, err := tcore.ZoneFromOffsetNanoseconds(2 * 3600 * 1_000_000_000)
	require.NoError(t, err)
	zdt := mustZonedDateTime(t, 0, zone)

	dur, err := tcore.NewDuration(0, 0, 0, 1, 0, 0, 0, 0, 0, 0)
	require.NoError(t, err)

	added, err := zdt.Add(dur, tcore.Constrain, nil)
	require.NoError(t, err)
	wall, err := added.ToPlainDateTime(nil)
	require.NoError(t, err)
	assert.Equal(t, "1970-01-02", wall.Date().String())
}

func TestZonedDateTimeCompareAndEquals(t *testing.T) {
	zoneA, err := tcore.ZoneFromOffsetNanoseconds(0)
	require.NoError(t, err)
	zoneB, err := tcore.ZoneFromOffsetNanoseconds(3600 * 1_000_000_000)
	require.NoError(t, err)

	a := mustZonedDateTime(t, 0, zoneA)
	b := mustZonedDateTime(t, 0, zoneB)

	assert.Equal(t, 0, a.Compare(b))
	assert.False(t, a.Equals(b), "same instant under different fixed offsets must not be Equals")

	c := mustZonedDateTime(t, 0, zoneA)
	assert.True(t, a.Equals(c))
}

func TestZonedDateTimeUntilWithinDay(t *testing.T) {
	zone, err := tcore.ZoneFromOffsetNanoseconds(0)
	require.NoError(t, err)
	a := mustZonedDateTime(t, 0, zone)
	b := mustZonedDateTime(t, 3600, zone)

	dur, err := a.Until(b, tcore.DifferenceSettings{SmallestUnit: tcore.UnitHour, RoundingIncrement: 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), dur.Hours())
}

func TestZonedDateTimeStringIncludesOffset(t *testing.T) {
	zone, err := tcore.ZoneFromOffsetNanoseconds(-5 * 3600 * 1_000_000_000)
	require.NoError(t, err)
	zdt := mustZonedDateTime(t, 0, zone)

	s, err := zdt.String(nil)
	require.NoError(t, err)
	assert.Equal(t, "1969-12-31T19:00:00-05:00", s)
}

func TestParseZonedDateTimeWithOffsetAnnotation(t *testing.T) {
	zdt, err := tcore.ParseZonedDateTime("2024-06-15T10:00:00-05:00[-05:00]", tcore.Constrain, tcore.Compatible, tcore.OffsetUse, nil)
	require.NoError(t, err)

	off, err := zdt.OffsetNanoseconds(nil)
	require.NoError(t, err)
	assert.Equal(t, int64(-5*3600*1_000_000_000), off)
}

func TestHoursInDayRegularDay(t *testing.T) {
	zone, err := tcore.ZoneFromOffsetNanoseconds(0)
	require.NoError(t, err)
	zdt := mustZonedDateTime(t, 0, zone)

	hrs, err := zdt.HoursInDay(nil)
	require.NoError(t, err)
	assert.Equal(t, 24.0, hrs.Float64())
}
