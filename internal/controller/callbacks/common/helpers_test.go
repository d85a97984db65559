package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIDFromCallback(t *testing.T) {
	id, err := ParseIDFromCallback("req_approve:6512bd43")
	require.NoError(t, err)
	assert.Equal(t, "6512bd43", id)

	for _, bad := range []string{"req_approve", "req_approve:", "a:b:c"} {
		_, err := ParseIDFromCallback(bad)
		assert.ErrorIs(t, err, ErrInvalidFormat, bad)
	}
}

func TestParseIntFromCallback(t *testing.T) {
	n, err := ParseIntFromCallback("req_page:2")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = ParseIntFromCallback("req_page:two")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
