package model

import "time"

type SessionStatus string

const (
	SessionStatusPending   SessionStatus = "pending"   // Ожидает подтверждения
	SessionStatusConfirmed SessionStatus = "confirmed" // Подтверждено
	SessionStatusCompleted SessionStatus = "completed" // Завершено
	SessionStatusCancelled SessionStatus = "cancelled" // Отменено
)

// Session конкретная встреча учителя со студентами
type Session struct {
	ID         string        `json:"id"`
	TutorID    string        `json:"tutor_id"`
	StudentIDs []string      `json:"student_ids"`
	StartTime  time.Time     `json:"start_time"`
	EndTime    time.Time     `json:"end_time"`
	Subject    string        `json:"subject"`
	Status     SessionStatus `json:"status"`
	ClassID    string        `json:"class_id,omitempty"` // пусто для разовых занятий
}

// Duration длительность занятия; 0, если время неполное или перевёрнуто
func (s *Session) Duration() time.Duration {
	if s.StartTime.IsZero() || s.EndTime.IsZero() || !s.EndTime.After(s.StartTime) {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}

// IsActive занятие ещё состоится
func (s *Session) IsActive() bool {
	return s.Status == SessionStatusPending || s.Status == SessionStatusConfirmed
}
