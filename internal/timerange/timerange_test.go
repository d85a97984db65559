package timerange

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := map[string]TimeOfDay{
		"00:00": 0,
		"09:00": 540,
		"17:30": 1050,
		"23:59": 1439,
		"9:05":  545,
	}
	for in, want := range cases {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
		assert.True(t, got.Valid())
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "9", "09:00:00", "ab:cd", "24:00", "12:60", "-1:30", "12:-5", ":30", "+1:00"} {
		_, err := Parse(in)
		require.Error(t, err, in)
		assert.True(t, errors.Is(err, ErrParse), in)

		var pe *ParseError
		assert.True(t, errors.As(err, &pe), in)
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, in := range []string{"00:00", "09:00", "17:30", "23:59"} {
		assert.Equal(t, in, MustParse(in).String())
	}
	assert.Equal(t, "09:00-10:30", MustNew("09:00", "10:30").String())
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange(" 09:00-10:30 ")
	require.NoError(t, err)
	assert.Equal(t, Range{Start: 540, End: 630}, r)

	_, err = ParseRange("09:00")
	assert.ErrorIs(t, err, ErrParse)
}

func TestOverlaps(t *testing.T) {
	assert.False(t, Overlaps(MustNew("09:00", "10:00"), MustNew("10:00", "11:00")))
	assert.False(t, Overlaps(MustNew("10:00", "11:00"), MustNew("09:00", "10:00")))
	assert.True(t, Overlaps(MustNew("09:00", "10:30"), MustNew("10:00", "11:00")))
	assert.True(t, Overlaps(MustNew("09:00", "17:00"), MustNew("10:00", "11:00")))
	assert.True(t, Overlaps(MustNew("10:00", "11:00"), MustNew("09:00", "17:00")))
	assert.True(t, Overlaps(MustNew("10:00", "11:00"), MustNew("10:00", "11:00")))
}

func TestContains(t *testing.T) {
	slot := MustNew("09:00", "17:00")
	assert.True(t, Contains(slot, MustNew("09:00", "10:00")))
	assert.True(t, Contains(slot, MustNew("16:00", "17:00")))
	assert.True(t, Contains(slot, slot))
	assert.False(t, Contains(slot, MustNew("07:00", "08:00")))
	assert.False(t, Contains(slot, MustNew("16:30", "17:30")))
}

func TestDuration(t *testing.T) {
	d, err := Duration(MustNew("09:00", "10:30"))
	require.NoError(t, err)
	assert.Equal(t, 90, d)

	_, err = Duration(MustNew("10:00", "10:00"))
	assert.ErrorIs(t, err, ErrEmptyRange)

	_, err = Duration(MustNew("11:00", "10:00"))
	assert.ErrorIs(t, err, ErrEmptyRange)
}

func TestAtAndFromTime(t *testing.T) {
	date := time.Date(2025, 3, 14, 22, 11, 5, 0, time.UTC)
	at := At(date, MustParse("08:45"))
	assert.Equal(t, time.Date(2025, 3, 14, 8, 45, 0, 0, time.UTC), at)
	assert.Equal(t, MustParse("22:11"), FromTime(date))
}
