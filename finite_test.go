package tcore_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temporal-go/tcore"
)

func TestNewFiniteRejectsNaNAndInf(t *testing.T) {
	_, err := tcore.NewFinite(math.NaN())
	assert.Error(t, err)

	_, err = tcore.NewFinite(math.Inf(1))
	assert.Error(t, err)

	_, err = tcore.NewFinite(math.Inf(-1))
	assert.Error(t, err)
}

func TestNewFiniteAcceptsOrdinaryValues(t *testing.T) {
	f, err := tcore.NewFinite(3.5)
	require.NoError(t, err)
	assert.Equal(t, 3.5, f.Float64())
}
