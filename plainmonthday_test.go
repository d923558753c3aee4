package tcore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temporal-go/tcore/internal/calendar"

	"github.com/temporal-go/tcore"
)

func TestNewPlainMonthDayAndString(t *testing.T) {
	md, err := tcore.NewPlainMonthDay(calendar.Iso, tcore.PartialDate{Month: int64ptr(2), Day: int64ptr(29)}, tcore.Constrain)
	require.NoError(t, err)
	assert.Equal(t, "02-29", md.String())
}

func TestPlainMonthDayWithOverlaysDay(t *testing.T) {
	md, err := tcore.NewPlainMonthDay(calendar.Iso, tcore.PartialDate{Month: int64ptr(6), Day: int64ptr(1)}, tcore.Constrain)
	require.NoError(t, err)

	updated, err := md.With(tcore.PartialDate{Day: int64ptr(15)}, tcore.Constrain)
	require.NoError(t, err)
	assert.Equal(t, "06-15", updated.String())
}

func TestPlainMonthDayEquals(t *testing.T) {
	a, err := tcore.NewPlainMonthDay(calendar.Iso, tcore.PartialDate{Month: int64ptr(3), Day: int64ptr(10)}, tcore.Constrain)
	require.NoError(t, err)
	b, err := tcore.NewPlainMonthDay(calendar.Iso, tcore.PartialDate{Month: int64ptr(3), Day: int64ptr(10)}, tcore.Constrain)
	require.NoError(t, err)
	c, err := tcore.NewPlainMonthDay(calendar.Iso, tcore.PartialDate{Month: int64ptr(3), Day: int64ptr(11)}, tcore.Constrain)
	require.NoError(t, err)

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestParsePlainMonthDayRoundTrip(t *testing.T) {
	md, err := tcore.ParsePlainMonthDay("--02-29")
	require.NoError(t, err)
	assert.Equal(t, "02-29", md.String())
}
