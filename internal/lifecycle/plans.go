package lifecycle

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/tutor_desk/internal/model"
)

// DefaultSessionDuration длительность переноса, если исходное время неизвестно
const DefaultSessionDuration = time.Hour

// Форматы ввода даты и времени учителем
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var (
	ErrMissingDateTime    = errors.New("new date and time are required for a reschedule")
	ErrInvalidDateTime    = errors.New("invalid date or time")
	ErrAlternativeLoading = errors.New("alternative session is still loading")
)

type PlanKind string

const (
	PlanCancel            PlanKind = "cancel"
	PlanReschedule        PlanKind = "reschedule"
	PlanMoveToAlternative PlanKind = "move_to_alternative"
)

// ApprovalInput то, что учитель ввёл в диалоге одобрения
type ApprovalInput struct {
	ResponseMessage string
	Date            string // YYYY-MM-DD
	Time            string // HH:MM
	Location        *time.Location
}

// ApprovalPlan команда для бэкенда. Сам движок ничего не меняет.
type ApprovalPlan struct {
	RequestID       string
	Kind            PlanKind
	SessionID       string
	ResponseMessage string

	NewStart *time.Time
	NewEnd   *time.Time

	// Для PlanMoveToAlternative
	AlternativeSessionID string
	StudentID            string
}

// ApproveBody тело запроса sessionRequests.approve
type ApproveBody struct {
	ResponseMessage      string     `json:"responseMessage"`
	NewStartTime         *time.Time `json:"newStartTime,omitempty"`
	NewEndTime           *time.Time `json:"newEndTime,omitempty"`
	AlternativeSessionID string     `json:"alternativeSessionId,omitempty"`
}

func (p *ApprovalPlan) ApproveBody() ApproveBody {
	return ApproveBody{
		ResponseMessage:      p.ResponseMessage,
		NewStartTime:         p.NewStart,
		NewEndTime:           p.NewEnd,
		AlternativeSessionID: p.AlternativeSessionID,
	}
}

// ComputeApprovalPlan строит план одобрения по запросу и вводу учителя
func ComputeApprovalPlan(view *model.RequestView, in ApprovalInput) (*ApprovalPlan, error) {
	req := &view.Request
	plan := &ApprovalPlan{
		RequestID:       req.ID,
		SessionID:       req.SessionID,
		ResponseMessage: in.ResponseMessage,
	}

	if req.Type == model.RequestTypeCancel {
		plan.Kind = PlanCancel
		return plan, nil
	}

	if req.IsClassReschedule() {
		if view.AlternativeSession == nil {
			return nil, ErrAlternativeLoading
		}
		plan.Kind = PlanMoveToAlternative
		plan.AlternativeSessionID = req.AlternativeSessionID
		plan.StudentID = req.StudentID
		return plan, nil
	}

	start, err := resolveNewStart(req, in)
	if err != nil {
		return nil, err
	}
	end := start.Add(originalDuration(view))

	plan.Kind = PlanReschedule
	plan.NewStart = &start
	plan.NewEnd = &end
	return plan, nil
}

// resolveNewStart: явные дата+время учителя важнее пожелания студента
func resolveNewStart(req *model.SessionRequest, in ApprovalInput) (time.Time, error) {
	date := strings.TrimSpace(in.Date)
	clock := strings.TrimSpace(in.Time)

	if date != "" && clock != "" {
		loc := in.Location
		if loc == nil {
			loc = time.UTC
		}
		t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+clock, loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q %q", ErrInvalidDateTime, date, clock)
		}
		return t, nil
	}

	if req.PreferredStartTime != nil && !req.PreferredStartTime.IsZero() {
		return *req.PreferredStartTime, nil
	}

	return time.Time{}, ErrMissingDateTime
}

// originalDuration длительность исходного занятия с запасными вариантами
func originalDuration(view *model.RequestView) time.Duration {
	if view.Session != nil {
		if d := view.Session.Duration(); d > 0 {
			return d
		}
	}
	if !view.OriginalStart.IsZero() && view.OriginalEnd.After(view.OriginalStart) {
		return view.OriginalEnd.Sub(view.OriginalStart)
	}
	req := &view.Request
	if req.PreferredStartTime != nil && req.PreferredEndTime != nil && req.PreferredEndTime.After(*req.PreferredStartTime) {
		return req.PreferredEndTime.Sub(*req.PreferredStartTime)
	}
	return DefaultSessionDuration
}

// RejectionPlan отклонение запроса; сообщение передаётся как есть
type RejectionPlan struct {
	RequestID       string
	ResponseMessage string
}

// RejectBody тело запроса sessionRequests.reject
type RejectBody struct {
	ResponseMessage string `json:"responseMessage"`
}

func (p RejectionPlan) RejectBody() RejectBody {
	return RejectBody{ResponseMessage: p.ResponseMessage}
}

// ComputeRejectionPlan всегда успешен и детерминирован
func ComputeRejectionPlan(req *model.SessionRequest, responseMessage string) RejectionPlan {
	return RejectionPlan{RequestID: req.ID, ResponseMessage: responseMessage}
}

// DeletePlan удаление решённого запроса из списка
type DeletePlan struct {
	RequestID string
}

// ComputeDeletePlan удалять можно только одобренные или отклонённые запросы
func ComputeDeletePlan(req *model.SessionRequest) (*DeletePlan, error) {
	if !req.IsTerminal() {
		return nil, ErrNotTerminal
	}
	return &DeletePlan{RequestID: req.ID}, nil
}
