package tcore_test

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temporal-go/tcore"
)

func TestNewDurationRejectsMixedSign(t *testing.T) {
	_, err := tcore.NewDuration(1, 0, 0, 0, 0, 0, -1, 0, 0, 0)
	assert.Error(t, err)
}

func TestNewDurationAllowsZeroAlongsideEitherSign(t *testing.T) {
	_, err := tcore.NewDuration(0, 0, 0, 0, -3, 0, 0, 0, 0, 0)
	require.NoError(t, err)
}

func TestDurationSignAndIsZero(t *testing.T) {
	zero, err := tcore.NewDuration(0, 0, 0, 0, 0, 0, 0, 0, 0, 0)
	require.NoError(t, err)
	assert.True(t, zero.IsZero())
	assert.Equal(t, tcore.ZeroSign, zero.Sign())

	pos, err := tcore.NewDuration(1, 2, 0, 0, 0, 0, 0, 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, tcore.Positive, pos.Sign())

	neg, err := tcore.NewDuration(0, 0, 0, 0, 0, 0, -5, 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, tcore.Negative, neg.Sign())
}

func TestDurationAbsAndNegated(t *testing.T) {
	d, err := tcore.NewDuration(0, 0, 0, 0, -1, -30, 0, 0, 0, 0)
	require.NoError(t, err)

	neg := d.Negated()
	assert.Equal(t, tcore.Positive, neg.Sign())

	abs := d.Abs()
	assert.True(t, abs.Equals(neg))
}

func TestDurationAddRequiresZeroCalendarFields(t *testing.T) {
	withDate, err := tcore.NewDuration(1, 0, 0, 0, 0, 0, 0, 0, 0, 0)
	require.NoError(t, err)
	bare, err := tcore.NewDuration(0, 0, 0, 0, 1, 0, 0, 0, 0, 0)
	require.NoError(t, err)

	_, err = withDate.Add(bare)
	assert.Error(t, err)
}

func TestDurationAddSubtractRoundTrip(t *testing.T) {
	a, err := tcore.NewDuration(0, 0, 0, 0, 1, 30, 0, 0, 0, 0)
	require.NoError(t, err)
	b, err := tcore.NewDuration(0, 0, 0, 0, 0, 45, 0, 0, 0, 0)
	require.NoError(t, err)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, int64(2), sum.Hours())
	assert.Equal(t, int64(15), sum.Minutes())

	back, err := sum.Subtract(b)
	require.NoError(t, err)
	assert.True(t, back.Equals(a), "round-trip mismatch:\nback=%s\na=%s", spew.Sdump(back), spew.Sdump(a))
}

func TestDurationCompareZeroCalendarOnly(t *testing.T) {
	a, err := tcore.NewDuration(0, 0, 0, 0, 1, 0, 0, 0, 0, 0)
	require.NoError(t, err)
	b, err := tcore.NewDuration(0, 0, 0, 0, 2, 0, 0, 0, 0, 0)
	require.NoError(t, err)

	cmp, err := a.Compare(b)
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)

	withDate, err := tcore.NewDuration(1, 0, 0, 0, 0, 0, 0, 0, 0, 0)
	require.NoError(t, err)
	_, err = a.Compare(withDate)
	assert.Error(t, err)
}

func TestDurationStringCanonicalForm(t *testing.T) {
	d, err := tcore.NewDuration(1, 2, 0, 3, 4, 5, 6, 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "P1Y2M3DT4H5M6S", d.String())
}

func TestDurationStringNegative(t *testing.T) {
	d, err := tcore.NewDuration(0, 0, 0, 0, 0, 0, -30, 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "-PT30S", d.String())
}

func TestParseDurationRoundTrip(t *testing.T) {
	d, err := tcore.ParseDuration("P1Y2M3DT4H5M6.789S")
	require.NoError(t, err)
	assert.Equal(t, int64(1), d.Years())
	assert.Equal(t, int64(2), d.Months())
	assert.Equal(t, int64(3), d.Days())
	assert.Equal(t, int64(4), d.Hours())
	assert.Equal(t, int64(5), d.Minutes())
	assert.Equal(t, int64(6), d.Seconds())
	assert.Equal(t, int64(789), d.Milliseconds())
}

func TestDurationTotalBareRequiresNoRelativeTo(t *testing.T) {
	d, err := tcore.NewDuration(0, 0, 0, 0, 25, 0, 0, 0, 0, 0)
	require.NoError(t, err)
	total, err := d.Total(tcore.UnitDay, nil)
	require.NoError(t, err)
	assert.InDelta(t, 25.0/24.0, total.Float64(), 1e-9)
}

func TestDurationTotalWithCalendarFieldsRequiresRelativeTo(t *testing.T) {
	d, err := tcore.NewDuration(0, 1, 0, 0, 0, 0, 0, 0, 0, 0)
	require.NoError(t, err)
	_, err = d.Total(tcore.UnitDay, nil)
	assert.Error(t, err)

	relativeTo, err := tcore.NewISOPlainDate(2024, 1, 1, tcore.Constrain)
	require.NoError(t, err)
	total, err := d.Total(tcore.UnitDay, &relativeTo)
	require.NoError(t, err)
	assert.Equal(t, float64(31), total.Float64())
}

func TestDurationTotalMonthRequiresRelativeTo(t *testing.T) {
	d, err := tcore.NewDuration(0, 1, 0, 0, 0, 0, 0, 0, 0, 0)
	require.NoError(t, err)
	_, err = d.Total(tcore.UnitMonth, nil)
	assert.Error(t, err)

	relativeTo, err := tcore.NewISOPlainDate(2024, 1, 1, tcore.Constrain)
	require.NoError(t, err)
	total, err := d.Total(tcore.UnitMonth, &relativeTo)
	require.NoError(t, err)
	assert.Equal(t, float64(1), total.Float64())
}

func TestDurationTotalYearBalancesFractionalMonths(t *testing.T) {
	d, err := tcore.NewDuration(1, 2, 0, 0, 0, 0, 0, 0, 0, 0)
	require.NoError(t, err)
	relativeTo, err := tcore.NewISOPlainDate(2024, 1, 1, tcore.Constrain)
	require.NoError(t, err)

	total, err := d.Total(tcore.UnitYear, &relativeTo)
	require.NoError(t, err)
	assert.InDelta(t, 1.0+2.0/12.0, total.Float64(), 1e-9)
}

func TestDurationRoundBareSubDay(t *testing.T) {
	d, err := tcore.NewDuration(0, 0, 0, 0, 0, 0, 90, 0, 0, 0)
	require.NoError(t, err)
	rounded, err := d.Round(tcore.RoundTo{SmallestUnit: tcore.UnitMinute, RoundingIncrement: 1, RoundingMode: tcore.ModeHalfExpand})
	require.NoError(t, err)
	assert.Equal(t, int64(2), rounded.Minutes())
	assert.Equal(t, int64(0), rounded.Seconds())
}

func TestDurationRoundWeekRequiresRelativeTo(t *testing.T) {
	d, err := tcore.NewDuration(0, 0, 0, 10, 0, 0, 0, 0, 0, 0)
	require.NoError(t, err)
	_, err = d.Round(tcore.RoundTo{SmallestUnit: tcore.UnitWeek, RoundingIncrement: 1})
	assert.Error(t, err)
}
