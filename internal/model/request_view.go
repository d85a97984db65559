package model

import "time"

// Urgency насколько скоро затронутое занятие. Вычисляется, не хранится.
type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
	UrgencyLow    Urgency = "low"
)

// Rank чем меньше, тем срочнее
func (u Urgency) Rank() int {
	switch u {
	case UrgencyHigh:
		return 0
	case UrgencyMedium:
		return 1
	default:
		return 2
	}
}

// Плейсхолдеры для записей, которые не удалось подтянуть
const (
	UnknownStudent = "Unknown Student"
	UnknownSubject = "Unknown Subject"
)

// RequestView денормализованная запись запроса для отображения учителю
type RequestView struct {
	Request     SessionRequest `json:"request"`
	StudentName string         `json:"student_name"`
	Subject     string         `json:"subject"`

	// Исходное занятие; nil, если не удалось загрузить
	Session *Session `json:"session,omitempty"`
	// Альтернативное занятие, выбранное студентом
	AlternativeSession *Session         `json:"alternative_session,omitempty"`
	Class              *ClassDefinition `json:"class,omitempty"`

	OriginalStart time.Time `json:"original_start"`
	OriginalEnd   time.Time `json:"original_end"`
	Urgency       Urgency   `json:"urgency"`

	// Anomalies что пришлось подменить при сборке
	Anomalies []string `json:"anomalies,omitempty"`
}

// AlternativeLoading альтернативное занятие указано, но ещё не загружено
func (v *RequestView) AlternativeLoading() bool {
	return v.Request.AlternativeSessionID != "" && v.AlternativeSession == nil
}
