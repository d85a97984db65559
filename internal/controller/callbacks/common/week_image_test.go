package common

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_desk/internal/model"
	"github.com/Freeeeeet/tutor_desk/internal/timerange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// среда
var wednesday = time.Date(2025, 3, 12, 14, 30, 0, 0, time.UTC)

func sampleWeek() WeekData {
	return WeekData{
		Availability: &model.Availability{
			Slots: []model.AvailabilitySlot{
				{Day: time.Monday, Range: timerange.MustNew("09:00", "17:00")},
				{Day: time.Friday, Range: timerange.MustNew("12:00", "18:30")},
			},
			Exceptions: []model.AvailabilityException{
				{Date: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), Reason: "holiday"},
			},
		},
		Classes: []model.ClassDefinition{
			{Code: "C01", Subject: "Math", Day: time.Monday, Range: timerange.MustNew("10:00", "11:00"), Status: model.ClassStatusActive},
			{Code: "C02", Subject: "Art", Day: time.Friday, Range: timerange.MustNew("13:00", "14:00"), Status: model.ClassStatusActive},
		},
	}
}

func TestNormalizeToWeekBounds(t *testing.T) {
	week := normalizeToWeekBounds(wednesday)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), week.start)
	assert.Equal(t, time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC), week.end)

	sunday := normalizeToWeekBounds(time.Date(2025, 3, 16, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, week.start, sunday.start)
}

func TestCollectBlocksSkipsExceptionDay(t *testing.T) {
	blocks, offDays := collectBlocks(normalizeToWeekBounds(wednesday), sampleWeek())

	assert.True(t, offDays[4], "friday is a day off")

	var classes, windows int
	for _, b := range blocks {
		assert.NotEqual(t, 4, b.day, "nothing is drawn on the day off")
		if b.class {
			classes++
		} else {
			windows++
		}
	}
	assert.Equal(t, 1, classes)
	assert.Equal(t, 1, windows)
}

func TestCalculateHourRange(t *testing.T) {
	blocks, _ := collectBlocks(normalizeToWeekBounds(wednesday), sampleWeek())
	hours := calculateHourRange(blocks)
	assert.Equal(t, 8, hours.start)
	assert.Equal(t, 18, hours.end)
	assert.Equal(t, 10, hours.total)

	empty := calculateHourRange(nil)
	assert.Equal(t, defaultMinHour-hourPaddingTop, empty.start)

	late := calculateHourRange([]block{{start: timerange.MustParse("22:00"), end: timerange.MustParse("23:59")}})
	assert.Equal(t, 24, late.end)
}

func TestGenerateWeekImage(t *testing.T) {
	data, err := GenerateWeekImage(wednesday, wednesday, sampleWeek())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, imageWidth, img.Bounds().Dx())
	assert.Equal(t, imageHeight, img.Bounds().Dy())

	_, err = GenerateWeekImage(wednesday, wednesday, WeekData{})
	require.NoError(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
