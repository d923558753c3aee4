package tcore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temporal-go/tcore"
)

func TestNewISOPlainDateConstrainAndReject(t *testing.T) {
	d, err := tcore.NewISOPlainDate(2024, 2, 30, tcore.Constrain)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", d.String())

	_, err = tcore.NewISOPlainDate(2024, 2, 30, tcore.Reject)
	assert.Error(t, err)
}

func TestPlainDateWithOverlaysFields(t *testing.T) {
	d, err := tcore.NewISOPlainDate(2024, 3, 15, tcore.Constrain)
	require.NoError(t, err)

	withDay, err := d.With(tcore.PartialDate{Day: int64ptr(1)}, tcore.Constrain)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", withDay.String())
}

func TestPlainDateAddSubtractRoundTrip(t *testing.T) {
	d, err := tcore.NewISOPlainDate(2024, 1, 31, tcore.Constrain)
	require.NoError(t, err)

	dur, err := tcore.NewDuration(0, 1, 0, 0, 0, 0, 0, 0, 0, 0)
	require.NoError(t, err)

	added, err := d.Add(dur, tcore.Constrain)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", added.String())

	back, err := added.Subtract(dur, tcore.Constrain)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-29", back.String())
}

func TestPlainDateUntilDay(t *testing.T) {
	a, err := tcore.NewISOPlainDate(2024, 1, 1, tcore.Constrain)
	require.NoError(t, err)
	b, err := tcore.NewISOPlainDate(2024, 3, 1, tcore.Constrain)
	require.NoError(t, err)

	dur, err := a.Until(b, tcore.DifferenceSettings{})
	require.NoError(t, err)
	assert.Equal(t, int64(60), dur.Days())
}

func TestPlainDateUntilLargestMonth(t *testing.T) {
	a, err := tcore.NewISOPlainDate(2024, 1, 31, tcore.Constrain)
	require.NoError(t, err)
	b, err := tcore.NewISOPlainDate(2024, 3, 1, tcore.Constrain)
	require.NoError(t, err)

	dur, err := a.Until(b, tcore.DifferenceSettings{LargestUnit: tcore.UnitMonth, HasLargestUnit: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), dur.Months())
	assert.Equal(t, int64(1), dur.Days())
}

func TestPlainDateSinceIsNegatedUntil(t *testing.T) {
	a, err := tcore.NewISOPlainDate(2024, 1, 1, tcore.Constrain)
	require.NoError(t, err)
	b, err := tcore.NewISOPlainDate(2024, 3, 1, tcore.Constrain)
	require.NoError(t, err)

	fwd, err := a.Until(b, tcore.DifferenceSettings{})
	require.NoError(t, err)
	back, err := a.Since(b, tcore.DifferenceSettings{})
	require.NoError(t, err)
	assert.True(t, back.Equals(fwd.Negated()))
}

func TestPlainDateCompareAndEquals(t *testing.T) {
	a, err := tcore.NewISOPlainDate(2024, 1, 1, tcore.Constrain)
	require.NoError(t, err)
	b, err := tcore.NewISOPlainDate(2024, 1, 2, tcore.Constrain)
	require.NoError(t, err)
	c, err := tcore.NewISOPlainDate(2024, 1, 1, tcore.Constrain)
	require.NoError(t, err)

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.True(t, a.Equals(c))
}

func TestParsePlainDateRoundTrip(t *testing.T) {
	d, err := tcore.ParsePlainDate("2024-06-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-15", d.String())
}

func TestPlainDateRoundRelativeToWeeks(t *testing.T) {
	relativeTo, err := tcore.NewISOPlainDate(2024, 1, 1, tcore.Constrain)
	require.NoError(t, err)
	dur, err := tcore.NewDuration(0, 0, 0, 10, 0, 0, 0, 0, 0, 0)
	require.NoError(t, err)

	// Default RoundingMode is Ceil, and 10 days balances against
	// relativeTo to 1 week + 3 days; a smallest unit of Week must round
	// that remainder away entirely, ceiling up to 2 whole weeks.
	rounded, err := dur.Round(tcore.RoundTo{SmallestUnit: tcore.UnitWeek, RoundingIncrement: 1, RelativeTo: &relativeTo})
	require.NoError(t, err)
	assert.Equal(t, int64(2), rounded.Weeks())
	assert.Equal(t, int64(0), rounded.Days())
}

func int64ptr(v int64) *int64 { return &v }
