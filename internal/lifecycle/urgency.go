package lifecycle

import (
	"time"

	"github.com/Freeeeeet/tutor_desk/internal/model"
)

const (
	highUrgencyWindow   = 24 * time.Hour
	mediumUrgencyWindow = 72 * time.Hour
)

// ClassifyUrgency срочность запроса: сколько оставалось до занятия в момент создания запроса
func ClassifyUrgency(createdAt, sessionStart time.Time) model.Urgency {
	until := sessionStart.Sub(createdAt)
	switch {
	case until < highUrgencyWindow:
		return model.UrgencyHigh
	case until < mediumUrgencyWindow:
		return model.UrgencyMedium
	default:
		return model.UrgencyLow
	}
}
