package handlers

import (
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_desk/internal/lifecycle"
	"github.com/Freeeeeet/tutor_desk/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestNeedsNewTime(t *testing.T) {
	preferred := time.Date(2025, 3, 20, 15, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		req  model.SessionRequest
		want bool
	}{
		{"cancel", model.SessionRequest{Type: model.RequestTypeCancel}, false},
		{"reschedule without time", model.SessionRequest{Type: model.RequestTypeReschedule}, true},
		{"reschedule with preferred time", model.SessionRequest{Type: model.RequestTypeReschedule, PreferredStartTime: &preferred}, false},
		{"class reschedule", model.SessionRequest{Type: model.RequestTypeReschedule, ClassID: "c1", AlternativeSessionID: "s2"}, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, needsNewTime(&c.req), c.name)
	}
}

func TestDescribePlan(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	start := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)

	text := describePlan(&lifecycle.ApprovalPlan{Kind: lifecycle.PlanReschedule, NewStart: &start, NewEnd: &end}, loc)
	assert.Contains(t, text, "20.03.2025 15:00-16:30")
	assert.Contains(t, text, "MSK")

	assert.Contains(t, describePlan(&lifecycle.ApprovalPlan{Kind: lifecycle.PlanCancel}, loc), "отменено")
	assert.Contains(t, describePlan(&lifecycle.ApprovalPlan{Kind: lifecycle.PlanMoveToAlternative}, loc), "переведён")
}
