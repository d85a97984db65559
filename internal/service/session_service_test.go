package service

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_desk/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUpcomingSkipsPastAndCancelled(t *testing.T) {
	f := newFakeBackend()
	f.sessions["past"] = &model.Session{ID: "past", TutorID: "t1", Status: model.SessionStatusConfirmed,
		StartTime: testNow.Add(-3 * time.Hour), EndTime: testNow.Add(-2 * time.Hour)}
	f.sessions["running"] = &model.Session{ID: "running", TutorID: "t1", Status: model.SessionStatusConfirmed,
		StartTime: testNow.Add(-30 * time.Minute), EndTime: testNow.Add(30 * time.Minute)}
	f.sessions["later"] = &model.Session{ID: "later", TutorID: "t1", Status: model.SessionStatusPending,
		StartTime: testNow.Add(48 * time.Hour), EndTime: testNow.Add(49 * time.Hour)}
	f.sessions["cancelled"] = &model.Session{ID: "cancelled", TutorID: "t1", Status: model.SessionStatusCancelled,
		StartTime: testNow.Add(time.Hour), EndTime: testNow.Add(2 * time.Hour)}
	f.sessions["foreign"] = &model.Session{ID: "foreign", TutorID: "t2", Status: model.SessionStatusConfirmed,
		StartTime: testNow.Add(time.Hour), EndTime: testNow.Add(2 * time.Hour)}

	svc := NewSessionService(f.connector(), zap.NewNop()).WithClock(fixedClock)
	sessions, err := svc.Upcoming(context.Background(), tutor, 0)
	require.NoError(t, err)

	var ids []string
	for _, s := range sessions {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"running", "later"}, ids)
}

func TestCancelSession(t *testing.T) {
	f := newFakeBackend()
	svc := NewSessionService(f.connector(), zap.NewNop())
	require.NoError(t, svc.Cancel(context.Background(), tutor, "s1", "sick"))
	assert.Equal(t, []string{"s1"}, f.cancelled)
}

func TestDashboard(t *testing.T) {
	f := seededBackend()
	f.requests = []model.SessionRequest{
		{ID: "soon", Type: model.RequestTypeCancel, SessionID: "s1", StudentID: "st1", Status: model.RequestStatusPending, CreatedAt: testNow},
		{ID: "later", Type: model.RequestTypeCancel, SessionID: "alt", StudentID: "st1", Status: model.RequestStatusPending, CreatedAt: testNow},
		{ID: "done", Type: model.RequestTypeCancel, SessionID: "s1", StudentID: "st1", Status: model.RequestStatusApproved, CreatedAt: testNow},
	}

	sessions := NewSessionService(f.connector(), zap.NewNop()).WithClock(fixedClock)
	requests := newRequestService(f)
	d, err := NewDashboardService(sessions, requests, zap.NewNop()).Get(context.Background(), tutor)
	require.NoError(t, err)

	assert.Equal(t, 2, d.UpcomingSessions)
	assert.Equal(t, 2, d.PendingRequests)
	assert.Equal(t, 1, d.UrgentRequests)
	require.NotNil(t, d.NextSession)
	assert.Equal(t, "s1", d.NextSession.ID)
}
