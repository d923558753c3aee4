package tcore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temporal-go/tcore/internal/calendar"

	"github.com/temporal-go/tcore"
)

func TestNewPlainYearMonthAndString(t *testing.T) {
	ym, err := tcore.NewPlainYearMonth(calendar.Iso, tcore.PartialDate{Year: int64ptr(2024), Month: int64ptr(2)}, tcore.Constrain)
	require.NoError(t, err)
	assert.Equal(t, "2024-02", ym.String())
}

func TestPlainYearMonthStringHandlesExtendedYear(t *testing.T) {
	ym, err := tcore.NewPlainYearMonth(calendar.Iso, tcore.PartialDate{Year: int64ptr(123456), Month: int64ptr(7)}, tcore.Constrain)
	require.NoError(t, err)
	assert.Equal(t, "+123456-07", ym.String())
}

func TestPlainYearMonthWithOverlaysMonth(t *testing.T) {
	ym, err := tcore.NewPlainYearMonth(calendar.Iso, tcore.PartialDate{Year: int64ptr(2024), Month: int64ptr(2)}, tcore.Constrain)
	require.NoError(t, err)

	updated, err := ym.With(tcore.PartialDate{Month: int64ptr(11)}, tcore.Constrain)
	require.NoError(t, err)
	assert.Equal(t, "2024-11", updated.String())
}

func TestPlainYearMonthAddWholeMonths(t *testing.T) {
	ym, err := tcore.NewPlainYearMonth(calendar.Iso, tcore.PartialDate{Year: int64ptr(2024), Month: int64ptr(11)}, tcore.Constrain)
	require.NoError(t, err)

	dur, err := tcore.NewDuration(0, 3, 0, 0, 0, 0, 0, 0, 0, 0)
	require.NoError(t, err)

	added, err := ym.Add(dur, tcore.Constrain)
	require.NoError(t, err)
	assert.Equal(t, "2025-02", added.String())
}

func TestPlainYearMonthCompareAndEquals(t *testing.T) {
	a, err := tcore.NewPlainYearMonth(calendar.Iso, tcore.PartialDate{Year: int64ptr(2024), Month: int64ptr(1)}, tcore.Constrain)
	require.NoError(t, err)
	b, err := tcore.NewPlainYearMonth(calendar.Iso, tcore.PartialDate{Year: int64ptr(2024), Month: int64ptr(2)}, tcore.Constrain)
	require.NoError(t, err)
	c, err := tcore.NewPlainYearMonth(calendar.Iso, tcore.PartialDate{Year: int64ptr(2024), Month: int64ptr(1)}, tcore.Constrain)
	require.NoError(t, err)

	assert.Equal(t, -1, a.Compare(b))
	assert.True(t, a.Equals(c))
}

func TestParsePlainYearMonthRoundTrip(t *testing.T) {
	ym, err := tcore.ParsePlainYearMonth("2024-02")
	require.NoError(t, err)
	assert.Equal(t, "2024-02", ym.String())
}
