package model

import "time"

type RequestType string

const (
	RequestTypeCancel     RequestType = "cancel"
	RequestTypeReschedule RequestType = "reschedule"
)

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// SessionRequest запрос студента на отмену или перенос занятия
type SessionRequest struct {
	ID                   string        `json:"id"`
	Type                 RequestType   `json:"type"`
	SessionID            string        `json:"session_id,omitempty"`
	ClassID              string        `json:"class_id,omitempty"`
	StudentID            string        `json:"student_id"`
	Reason               string        `json:"reason"`
	PreferredStartTime   *time.Time    `json:"preferred_start_time,omitempty"`
	PreferredEndTime     *time.Time    `json:"preferred_end_time,omitempty"`
	AlternativeSessionID string        `json:"alternative_session_id,omitempty"`
	Status               RequestStatus `json:"status"`
	ResponseMessage      string        `json:"response_message,omitempty"`
	CreatedAt            time.Time     `json:"created_at"`
}

// IsPending запрос ждёт решения учителя
func (r *SessionRequest) IsPending() bool {
	return r.Status == RequestStatusPending
}

// IsTerminal запрос уже одобрен или отклонён
func (r *SessionRequest) IsTerminal() bool {
	return r.Status == RequestStatusApproved || r.Status == RequestStatusRejected
}

// IsClassReschedule перенос внутри класса с выбранным студентом альтернативным занятием
func (r *SessionRequest) IsClassReschedule() bool {
	return r.Type == RequestTypeReschedule && r.ClassID != "" && r.AlternativeSessionID != ""
}
