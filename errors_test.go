package tcore_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temporal-go/tcore"
)

func TestRangeErrorKindAndMessage(t *testing.T) {
	_, err := tcore.NewISOPlainDate(2024, 13, 1, tcore.Reject)
	require.Error(t, err)

	var tErr *tcore.Error
	require.True(t, errors.As(err, &tErr))
	assert.Equal(t, tcore.RangeError, tErr.Kind)
	assert.NotEmpty(t, tErr.Error())
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "RangeError", tcore.RangeError.String())
	assert.Equal(t, "TypeError", tcore.TypeError.String())
	assert.Equal(t, "SyntaxError", tcore.SyntaxError.String())
	assert.Equal(t, "AssertError", tcore.AssertError.String())
	assert.Equal(t, "Error", tcore.GenericError.String())
}
