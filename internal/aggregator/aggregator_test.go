package aggregator

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_desk/internal/model"
	"github.com/Freeeeeet/tutor_desk/internal/timerange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errBoom = errors.New("boom")

type fakeSessions map[string]*model.Session

func (f fakeSessions) Get(_ context.Context, id string) (*model.Session, error) {
	if s, ok := f[id]; ok {
		return s, nil
	}
	return nil, errBoom
}

type fakeUsers struct {
	names map[string]string
	calls atomic.Int32
}

func (f *fakeUsers) Get(_ context.Context, id string) (*model.User, error) {
	f.calls.Add(1)
	if n, ok := f.names[id]; ok {
		return &model.User{ID: id, DisplayName: n}, nil
	}
	return nil, errBoom
}

type fakeClasses map[string]*model.ClassDefinition

func (f fakeClasses) Get(_ context.Context, id string) (*model.ClassDefinition, error) {
	if c, ok := f[id]; ok {
		return c, nil
	}
	return nil, errBoom
}

var now = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func newAggregator(sessions fakeSessions, users *fakeUsers, classes fakeClasses) *Aggregator {
	return New(sessions, users, classes, zap.NewNop()).WithClock(func() time.Time { return now })
}

func TestBuildJoinsAllSources(t *testing.T) {
	sessions := fakeSessions{
		"s1": {ID: "s1", Subject: "Math", StartTime: now.Add(12 * time.Hour), EndTime: now.Add(13 * time.Hour), ClassID: "c1"},
	}
	users := &fakeUsers{names: map[string]string{"st1": "Ada"}}
	classes := fakeClasses{"c1": {ID: "c1", Code: "C01", Subject: "Math"}}

	views := newAggregator(sessions, users, classes).Build(context.Background(), []model.SessionRequest{
		{ID: "r1", Type: model.RequestTypeCancel, SessionID: "s1", StudentID: "st1", CreatedAt: now},
	})

	require.Len(t, views, 1)
	v := views[0]
	assert.Equal(t, "Ada", v.StudentName)
	assert.Equal(t, "Math", v.Subject)
	require.NotNil(t, v.Session)
	require.NotNil(t, v.Class)
	assert.Equal(t, "C01", v.Class.Code)
	assert.Equal(t, model.UrgencyHigh, v.Urgency)
	assert.Equal(t, now.Add(12*time.Hour), v.OriginalStart)
	assert.Empty(t, v.Anomalies)
}

func TestBuildDegradesToPlaceholders(t *testing.T) {
	views := newAggregator(fakeSessions{}, &fakeUsers{}, fakeClasses{}).Build(context.Background(), []model.SessionRequest{
		{ID: "r1", Type: model.RequestTypeReschedule, SessionID: "missing", StudentID: "ghost", AlternativeSessionID: "gone", ClassID: "c404"},
	})

	require.Len(t, views, 1)
	v := views[0]
	assert.Equal(t, model.UnknownStudent, v.StudentName)
	assert.Equal(t, model.UnknownSubject, v.Subject)
	assert.Nil(t, v.Session)
	assert.Nil(t, v.AlternativeSession)
	assert.True(t, v.AlternativeLoading())
	assert.Equal(t, now, v.Request.CreatedAt)
	assert.Equal(t, now, v.OriginalStart)
	assert.ElementsMatch(t, []string{
		AnomalyAlternative, AnomalyClass, AnomalyCreatedAt, AnomalySession, AnomalySessionStart, AnomalyStudent,
	}, v.Anomalies)
}

func TestBuildUsesNextClassOccurrenceWithoutSession(t *testing.T) {
	classes := fakeClasses{"c1": {ID: "c1", Subject: "Chemistry", Day: time.Friday, Range: timerange.MustNew("10:00", "11:30")}}
	users := &fakeUsers{names: map[string]string{"st1": "Bo"}}

	views := newAggregator(fakeSessions{}, users, classes).Build(context.Background(), []model.SessionRequest{
		{ID: "r1", Type: model.RequestTypeCancel, ClassID: "c1", StudentID: "st1", CreatedAt: now},
	})

	v := views[0]
	// 2025-01-01 среда, ближайшая пятница 3 января
	assert.Equal(t, time.Date(2025, 1, 3, 10, 0, 0, 0, time.UTC), v.OriginalStart)
	assert.Equal(t, time.Date(2025, 1, 3, 11, 30, 0, 0, time.UTC), v.OriginalEnd)
	assert.Equal(t, "Chemistry", v.Subject)
	assert.Equal(t, model.UrgencyMedium, v.Urgency)
}

func TestClassOccurrenceAnchoredToRequestCreation(t *testing.T) {
	classes := fakeClasses{"c1": {ID: "c1", Subject: "Physics", Day: time.Friday, Range: timerange.MustNew("10:00", "11:00")}}
	users := &fakeUsers{names: map[string]string{"st1": "Cy"}}
	// четверг 23:00, до пятничной встречи 11 часов
	created := time.Date(2025, 1, 2, 23, 0, 0, 0, time.UTC)
	req := model.SessionRequest{ID: "r1", Type: model.RequestTypeCancel, ClassID: "c1", StudentID: "st1", CreatedAt: created}

	for _, clock := range []time.Time{created, created.AddDate(0, 0, 6), created.AddDate(0, 1, 0)} {
		agg := New(fakeSessions{}, users, classes, zap.NewNop()).WithClock(func() time.Time { return clock })
		v := agg.BuildOne(context.Background(), req)

		assert.Equal(t, time.Date(2025, 1, 3, 10, 0, 0, 0, time.UTC), v.OriginalStart, clock)
		assert.Equal(t, model.UrgencyHigh, v.Urgency, clock)
	}
}

func TestBuildSortsByUrgencyThenAge(t *testing.T) {
	sessions := fakeSessions{
		"soon":  {ID: "soon", Subject: "A", StartTime: now.Add(5 * time.Hour)},
		"later": {ID: "later", Subject: "B", StartTime: now.Add(10 * 24 * time.Hour)},
	}
	users := &fakeUsers{names: map[string]string{"st": "Same Student"}}

	views := newAggregator(sessions, users, fakeClasses{}).WithConcurrency(2).Build(context.Background(), []model.SessionRequest{
		{ID: "low-old", SessionID: "later", StudentID: "st", CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "high", SessionID: "soon", StudentID: "st", CreatedAt: now},
		{ID: "low-older", SessionID: "later", StudentID: "st", CreatedAt: now.Add(-3 * time.Hour)},
	})

	ids := []string{views[0].Request.ID, views[1].Request.ID, views[2].Request.ID}
	assert.Equal(t, []string{"high", "low-older", "low-old"}, ids)
	assert.LessOrEqual(t, users.calls.Load(), int32(3))
	for _, v := range views {
		assert.Equal(t, "Same Student", v.StudentName)
	}
}

func TestBuildOne(t *testing.T) {
	pref := now.Add(40 * time.Hour)
	v := newAggregator(fakeSessions{}, &fakeUsers{names: map[string]string{"st": "Cy"}}, fakeClasses{}).
		BuildOne(context.Background(), model.SessionRequest{
			ID: "r", Type: model.RequestTypeReschedule, StudentID: "st", PreferredStartTime: &pref, CreatedAt: now,
		})
	assert.Equal(t, pref, v.OriginalStart)
	assert.Equal(t, model.UrgencyMedium, v.Urgency)
}
