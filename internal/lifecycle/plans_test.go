package lifecycle

import (
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_desk/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(t time.Time) *time.Time { return &t }

func sessionAt(start time.Time, minutes int) *model.Session {
	return &model.Session{
		ID:        "s1",
		StartTime: start,
		EndTime:   start.Add(time.Duration(minutes) * time.Minute),
		Status:    model.SessionStatusConfirmed,
	}
}

func TestApprovalPlanCancel(t *testing.T) {
	view := &model.RequestView{Request: model.SessionRequest{
		ID: "r1", Type: model.RequestTypeCancel, SessionID: "s1", Status: model.RequestStatusPending,
	}}

	plan, err := ComputeApprovalPlan(view, ApprovalInput{ResponseMessage: "ok", Date: "garbage", Time: "??"})
	require.NoError(t, err)
	assert.Equal(t, PlanCancel, plan.Kind)
	assert.Nil(t, plan.NewStart)
	assert.Nil(t, plan.NewEnd)
	assert.Equal(t, "ok", plan.ResponseMessage)
	assert.Equal(t, "s1", plan.SessionID)
}

func TestApprovalPlanUsesPreferredStart(t *testing.T) {
	original := time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC)
	preferred := time.Date(2025, 2, 5, 15, 0, 0, 0, time.UTC)
	view := &model.RequestView{
		Request: model.SessionRequest{
			ID: "r2", Type: model.RequestTypeReschedule, SessionID: "s1",
			PreferredStartTime: ptr(preferred), Status: model.RequestStatusPending,
		},
		Session: sessionAt(original, 90),
	}

	plan, err := ComputeApprovalPlan(view, ApprovalInput{})
	require.NoError(t, err)
	assert.Equal(t, PlanReschedule, plan.Kind)
	require.NotNil(t, plan.NewStart)
	assert.Equal(t, preferred, *plan.NewStart)
	assert.Equal(t, preferred.Add(90*time.Minute), *plan.NewEnd)
}

func TestApprovalPlanTutorOverrideWins(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	view := &model.RequestView{
		Request: model.SessionRequest{
			ID: "r3", Type: model.RequestTypeReschedule, SessionID: "s1",
			PreferredStartTime: ptr(time.Date(2025, 2, 5, 15, 0, 0, 0, time.UTC)),
		},
		Session: sessionAt(time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC), 60),
	}

	plan, err := ComputeApprovalPlan(view, ApprovalInput{Date: "2025-02-07", Time: "18:30", Location: loc})
	require.NoError(t, err)
	want := time.Date(2025, 2, 7, 18, 30, 0, 0, loc)
	assert.True(t, want.Equal(*plan.NewStart))
	assert.True(t, want.Add(time.Hour).Equal(*plan.NewEnd))
}

func TestApprovalPlanMissingDateTime(t *testing.T) {
	view := &model.RequestView{
		Request: model.SessionRequest{ID: "r4", Type: model.RequestTypeReschedule, SessionID: "s1"},
		Session: sessionAt(time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC), 60),
	}

	_, err := ComputeApprovalPlan(view, ApprovalInput{})
	assert.ErrorIs(t, err, ErrMissingDateTime)

	// только дата без времени, пары нет
	_, err = ComputeApprovalPlan(view, ApprovalInput{Date: "2025-02-07"})
	assert.ErrorIs(t, err, ErrMissingDateTime)

	_, err = ComputeApprovalPlan(view, ApprovalInput{Date: "07.02.2025", Time: "18:30"})
	assert.ErrorIs(t, err, ErrInvalidDateTime)
}

func TestApprovalPlanDurationFallsBackToPreferredWindow(t *testing.T) {
	preferred := time.Date(2025, 2, 5, 15, 0, 0, 0, time.UTC)
	view := &model.RequestView{
		Request: model.SessionRequest{
			ID: "r5", Type: model.RequestTypeReschedule,
			PreferredStartTime: ptr(preferred),
			PreferredEndTime:   ptr(preferred.Add(45 * time.Minute)),
		},
		Session: &model.Session{ID: "s1"}, // время не заполнено
	}

	plan, err := ComputeApprovalPlan(view, ApprovalInput{})
	require.NoError(t, err)
	assert.Equal(t, preferred.Add(45*time.Minute), *plan.NewEnd)
}

func TestApprovalPlanDefaultDuration(t *testing.T) {
	preferred := time.Date(2025, 2, 5, 15, 0, 0, 0, time.UTC)
	view := &model.RequestView{Request: model.SessionRequest{
		ID: "r6", Type: model.RequestTypeReschedule, PreferredStartTime: ptr(preferred),
	}}

	plan, err := ComputeApprovalPlan(view, ApprovalInput{})
	require.NoError(t, err)
	assert.Equal(t, preferred.Add(DefaultSessionDuration), *plan.NewEnd)
}

func TestApprovalPlanAlternativeSession(t *testing.T) {
	req := model.SessionRequest{
		ID: "r7", Type: model.RequestTypeReschedule, ClassID: "c1", SessionID: "s1",
		StudentID: "st1", AlternativeSessionID: "s2",
	}

	_, err := ComputeApprovalPlan(&model.RequestView{Request: req}, ApprovalInput{})
	assert.ErrorIs(t, err, ErrAlternativeLoading)

	view := &model.RequestView{Request: req, AlternativeSession: &model.Session{ID: "s2"}}
	plan, err := ComputeApprovalPlan(view, ApprovalInput{ResponseMessage: "moved"})
	require.NoError(t, err)
	assert.Equal(t, PlanMoveToAlternative, plan.Kind)
	assert.Equal(t, "s2", plan.AlternativeSessionID)
	assert.Equal(t, "st1", plan.StudentID)
	assert.Nil(t, plan.NewStart)

	body := plan.ApproveBody()
	assert.Equal(t, "s2", body.AlternativeSessionID)
	assert.Equal(t, "moved", body.ResponseMessage)
}

func TestRejectionPlanIsDeterministic(t *testing.T) {
	req := &model.SessionRequest{ID: "r8", Status: model.RequestStatusPending}
	before := *req

	a := ComputeRejectionPlan(req, "  not this week ")
	b := ComputeRejectionPlan(req, "  not this week ")
	assert.Equal(t, a, b)
	assert.Equal(t, "  not this week ", a.ResponseMessage)
	assert.Equal(t, before, *req)
	assert.Equal(t, RejectBody{ResponseMessage: "  not this week "}, a.RejectBody())
}

func TestDeletePlan(t *testing.T) {
	_, err := ComputeDeletePlan(&model.SessionRequest{ID: "r9", Status: model.RequestStatusPending})
	assert.ErrorIs(t, err, ErrNotTerminal)

	plan, err := ComputeDeletePlan(&model.SessionRequest{ID: "r9", Status: model.RequestStatusApproved})
	require.NoError(t, err)
	assert.Equal(t, "r9", plan.RequestID)

	_, err = ComputeDeletePlan(&model.SessionRequest{ID: "r9", Status: model.RequestStatusRejected})
	assert.NoError(t, err)
}
