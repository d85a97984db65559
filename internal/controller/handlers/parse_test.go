package handlers

import (
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_desk/internal/lifecycle"
	"github.com/Freeeeeet/tutor_desk/internal/model"
	"github.com/Freeeeeet/tutor_desk/internal/timerange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAvailability(t *testing.T) {
	slots, err := parseAvailability("Mon 09:00-12:00, 14:00-18:00\n\n  Ср 10:00-11:00  ")
	require.NoError(t, err)

	assert.Equal(t, []model.AvailabilitySlot{
		{Day: time.Monday, Range: timerange.MustNew("09:00", "12:00")},
		{Day: time.Monday, Range: timerange.MustNew("14:00", "18:00")},
		{Day: time.Wednesday, Range: timerange.MustNew("10:00", "11:00")},
	}, slots)
}

func TestParseAvailabilityErrors(t *testing.T) {
	_, err := parseAvailability("   \n")
	assert.ErrorIs(t, err, ErrNoSlots)

	_, err = parseAvailability("Mon 09:00-1200")
	assert.ErrorIs(t, err, timerange.ErrParse)

	_, err = parseAvailability("Funday 09:00-12:00")
	assert.Error(t, err)

	_, err = parseAvailability("Mon")
	assert.Error(t, err)
}

func TestParseDateTime(t *testing.T) {
	date, clock, err := parseDateTime(" 2025-03-20  15:30 ")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-20", date)
	assert.Equal(t, "15:30", clock)

	_, _, err = parseDateTime("2025-03-20")
	assert.ErrorIs(t, err, lifecycle.ErrInvalidDateTime)
}

func TestParseCapacity(t *testing.T) {
	n, err := parseCapacity(" 4 ")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	for _, bad := range []string{"0", "-1", "many", "51"} {
		_, err := parseCapacity(bad)
		assert.ErrorIs(t, err, ErrInvalidCapacity, bad)
	}
}
