package model

import (
	"time"

	"github.com/Freeeeeet/tutor_desk/internal/timerange"
)

type ClassStatus string

const (
	ClassStatusActive ClassStatus = "active"
	ClassStatusFull   ClassStatus = "full"
	ClassStatusClosed ClassStatus = "closed"
)

// ClassDefinition регулярный еженедельный блок занятий, выделенный из окна доступности
type ClassDefinition struct {
	ID                string          `json:"id"`
	Code              string          `json:"code"` // C01, C02... в рамках учителя
	TutorID           string          `json:"tutor_id"`
	Subject           string          `json:"subject"`
	Day               time.Weekday    `json:"day"`
	Range             timerange.Range `json:"range"`
	MaxStudents       int             `json:"max_students"`
	CurrentEnrollment int             `json:"current_enrollment"`
	IsOnline          bool            `json:"is_online"`
	Location          string          `json:"location"`
	SemesterStart     time.Time       `json:"semester_start"`
	SemesterEnd       time.Time       `json:"semester_end"`
	Status            ClassStatus     `json:"status"`
}

// SeatsLeft сколько мест ещё свободно
func (c *ClassDefinition) SeatsLeft() int {
	left := c.MaxStudents - c.CurrentEnrollment
	if left < 0 {
		return 0
	}
	return left
}
