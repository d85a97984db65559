package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_desk/internal/model"
	"github.com/Freeeeeet/tutor_desk/internal/scheduling"
	"github.com/Freeeeeet/tutor_desk/internal/timerange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func tod(s string) *timerange.TimeOfDay {
	t := timerange.MustParse(s)
	return &t
}

func mondayAvailability() *model.Availability {
	return &model.Availability{
		TutorID: "t1",
		Slots: []model.AvailabilitySlot{
			{Day: time.Monday, Range: timerange.MustNew("09:00", "17:00")},
		},
	}
}

func draft(start, end string) ClassDraft {
	return ClassDraft{
		Day:         time.Monday,
		Start:       tod(start),
		End:         tod(end),
		Subject:     "Physics",
		MaxStudents: 4,
	}
}

func TestCreateClassAssignsCodeAndGenerates(t *testing.T) {
	f := newFakeBackend()
	f.availability = mondayAvailability()
	svc := NewScheduleService(f.connector(), zap.NewNop())

	d := draft("10:00", "11:00")
	d.GenerateSessions = true
	res, err := svc.CreateClass(context.Background(), tutor, d)
	require.NoError(t, err)

	assert.Equal(t, "C01", res.Class.Code)
	assert.Equal(t, model.ClassStatusActive, res.Class.Status)
	assert.Equal(t, timerange.MustNew("10:00", "11:00"), res.Class.Range)
	assert.Equal(t, 15, res.GeneratedSessions)
	assert.Equal(t, []string{res.Class.ID}, f.generated)
}

func TestCreateClassRejectsOverlapWithFreshClasses(t *testing.T) {
	f := newFakeBackend()
	f.availability = mondayAvailability()
	svc := NewScheduleService(f.connector(), zap.NewNop())

	_, err := svc.CreateClass(context.Background(), tutor, draft("10:00", "11:00"))
	require.NoError(t, err)

	_, err = svc.CreateClass(context.Background(), tutor, draft("10:30", "11:30"))
	require.Error(t, err)

	var ve *scheduling.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.ErrorIs(t, err, scheduling.ErrOverlap)
	require.NotNil(t, ve.Conflict)
	assert.Equal(t, "C01", ve.Conflict.Code)
	assert.True(t, IsInputError(err))
	assert.Len(t, f.created, 1)
}

func TestCreateClassOutsideWindow(t *testing.T) {
	f := newFakeBackend()
	f.availability = mondayAvailability()
	svc := NewScheduleService(f.connector(), zap.NewNop())

	_, err := svc.CreateClass(context.Background(), tutor, draft("07:00", "08:00"))
	assert.ErrorIs(t, err, scheduling.ErrOutOfWindow)
	assert.Contains(t, err.Error(), "09:00-17:00")
	assert.Empty(t, f.created)
}

func TestCreateClassNoAvailabilityThatDay(t *testing.T) {
	f := newFakeBackend()
	f.availability = mondayAvailability()
	svc := NewScheduleService(f.connector(), zap.NewNop())

	d := draft("10:00", "11:00")
	d.Day = time.Tuesday
	_, err := svc.CreateClass(context.Background(), tutor, d)
	assert.ErrorIs(t, err, scheduling.ErrMissingInput)
}

func TestCreateClassRequiresSubject(t *testing.T) {
	f := newFakeBackend()
	f.availability = mondayAvailability()
	svc := NewScheduleService(f.connector(), zap.NewNop())

	d := draft("10:00", "11:00")
	d.Subject = "  "
	_, err := svc.CreateClass(context.Background(), tutor, d)
	assert.ErrorIs(t, err, ErrMissingSubject)
}

func TestSaveAvailabilitySortsAndValidates(t *testing.T) {
	f := newFakeBackend()
	svc := NewScheduleService(f.connector(), zap.NewNop())

	slots := []model.AvailabilitySlot{
		{Day: time.Wednesday, Range: timerange.MustNew("13:00", "15:00")},
		{Day: time.Monday, Range: timerange.MustNew("09:00", "12:00")},
	}
	require.NoError(t, svc.SaveAvailability(context.Background(), tutor, slots, nil))
	require.NotNil(t, f.savedAv)
	assert.Equal(t, "t1", f.savedAv.TutorID)
	assert.Equal(t, time.Monday, f.savedAv.Slots[0].Day)
	assert.Equal(t, time.Wednesday, slots[0].Day, "input must not be reordered")

	f.savedAv = nil
	bad := []model.AvailabilitySlot{{Day: time.Monday, Range: timerange.MustNew("12:00", "09:00")}}
	err := svc.SaveAvailability(context.Background(), tutor, bad, nil)
	assert.ErrorIs(t, err, timerange.ErrEmptyRange)
	assert.Nil(t, f.savedAv)
}

func TestWeekOverview(t *testing.T) {
	f := newFakeBackend()
	f.availability = mondayAvailability()
	f.classes["c1"] = &model.ClassDefinition{ID: "c1", Code: "C01", TutorID: "t1", Day: time.Monday, Range: timerange.MustNew("10:00", "11:00")}
	f.classes["c2"] = &model.ClassDefinition{ID: "c2", Code: "C01", TutorID: "other"}

	week, err := NewScheduleService(f.connector(), zap.NewNop()).WeekOverview(context.Background(), tutor)
	require.NoError(t, err)
	assert.Len(t, week.Availability.Slots, 1)
	require.Len(t, week.Classes, 1)
	assert.Equal(t, "c1", week.Classes[0].ID)
}

func TestCheckClassTimeDoesNotCreate(t *testing.T) {
	f := newFakeBackend()
	f.availability = mondayAvailability()
	svc := NewScheduleService(f.connector(), zap.NewNop())

	require.NoError(t, svc.CheckClassTime(context.Background(), tutor, draft("10:00", "11:00")))
	assert.ErrorIs(t, svc.CheckClassTime(context.Background(), tutor, draft("16:30", "17:30")), scheduling.ErrOutOfWindow)
	assert.Empty(t, f.created)
}
