package backend

import (
	"strings"
	"time"

	"github.com/Freeeeeet/tutor_desk/internal/model"
	"github.com/Freeeeeet/tutor_desk/internal/timerange"
)

// Записи в формате бэкенда. Время приходит строками; неразборчивые значения
// превращаются в нулевое время, а агрегатор помечает такие записи.

type sessionDTO struct {
	ID         string   `json:"id" validate:"required"`
	TutorID    string   `json:"tutorId"`
	StudentIDs []string `json:"studentIds"`
	StartTime  string   `json:"startTime"`
	EndTime    string   `json:"endTime"`
	Subject    string   `json:"subject"`
	Status     string   `json:"status" validate:"omitempty,oneof=pending confirmed completed cancelled"`
	ClassID    string   `json:"classId,omitempty"`
}

func (d *sessionDTO) toModel() model.Session {
	return model.Session{
		ID:         d.ID,
		TutorID:    d.TutorID,
		StudentIDs: d.StudentIDs,
		StartTime:  parseTimestamp(d.StartTime),
		EndTime:    parseTimestamp(d.EndTime),
		Subject:    d.Subject,
		Status:     model.SessionStatus(d.Status),
		ClassID:    d.ClassID,
	}
}

type userDTO struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"name"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

func (d *userDTO) toModel() model.User {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		name = strings.TrimSpace(d.FirstName + " " + d.LastName)
	}
	return model.User{ID: d.ID, DisplayName: name, Role: d.Role}
}

type classDTO struct {
	ID                string `json:"id,omitempty"`
	Code              string `json:"code"`
	TutorID           string `json:"tutorId"`
	Subject           string `json:"subject" validate:"required"`
	DayOfWeek         int    `json:"dayOfWeek" validate:"min=0,max=6"`
	StartTime         string `json:"startTime" validate:"required"`
	EndTime           string `json:"endTime" validate:"required"`
	MaxStudents       int    `json:"maxStudents" validate:"min=0"`
	CurrentEnrollment int    `json:"currentEnrollment" validate:"min=0"`
	IsOnline          bool   `json:"isOnline"`
	Location          string `json:"location"`
	SemesterStart     string `json:"semesterStart,omitempty"`
	SemesterEnd       string `json:"semesterEnd,omitempty"`
	Status            string `json:"status,omitempty" validate:"omitempty,oneof=active full closed"`
}

func (d *classDTO) toModel() (model.ClassDefinition, error) {
	r, err := timerange.New(d.StartTime, d.EndTime)
	if err != nil {
		return model.ClassDefinition{}, err
	}
	return model.ClassDefinition{
		ID:                d.ID,
		Code:              d.Code,
		TutorID:           d.TutorID,
		Subject:           d.Subject,
		Day:               time.Weekday(d.DayOfWeek),
		Range:             r,
		MaxStudents:       d.MaxStudents,
		CurrentEnrollment: d.CurrentEnrollment,
		IsOnline:          d.IsOnline,
		Location:          d.Location,
		SemesterStart:     parseTimestamp(d.SemesterStart),
		SemesterEnd:       parseTimestamp(d.SemesterEnd),
		Status:            model.ClassStatus(d.Status),
	}, nil
}

func classFromModel(c *model.ClassDefinition) classDTO {
	return classDTO{
		ID:                c.ID,
		Code:              c.Code,
		TutorID:           c.TutorID,
		Subject:           c.Subject,
		DayOfWeek:         int(c.Day),
		StartTime:         c.Range.Start.String(),
		EndTime:           c.Range.End.String(),
		MaxStudents:       c.MaxStudents,
		CurrentEnrollment: c.CurrentEnrollment,
		IsOnline:          c.IsOnline,
		Location:          c.Location,
		SemesterStart:     formatDate(c.SemesterStart),
		SemesterEnd:       formatDate(c.SemesterEnd),
		Status:            string(c.Status),
	}
}

type timeSlotDTO struct {
	DayOfWeek int    `json:"dayOfWeek" validate:"min=0,max=6"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

type exceptionDTO struct {
	Date   string `json:"date" validate:"required"`
	Reason string `json:"reason"`
}

type availabilityDTO struct {
	TutorID    string         `json:"tutorId,omitempty"`
	TimeSlots  []timeSlotDTO  `json:"timeSlots" validate:"omitempty,dive"`
	Exceptions []exceptionDTO `json:"exceptions" validate:"omitempty,dive"`
}

func (d *availabilityDTO) toModel() (*model.Availability, error) {
	av := &model.Availability{TutorID: d.TutorID}
	for _, s := range d.TimeSlots {
		r, err := timerange.New(s.StartTime, s.EndTime)
		if err != nil {
			return nil, err
		}
		av.Slots = append(av.Slots, model.AvailabilitySlot{Day: time.Weekday(s.DayOfWeek), Range: r})
	}
	for _, e := range d.Exceptions {
		av.Exceptions = append(av.Exceptions, model.AvailabilityException{Date: parseTimestamp(e.Date), Reason: e.Reason})
	}
	model.SortSlots(av.Slots)
	return av, nil
}

func availabilityFromModel(av *model.Availability) availabilityDTO {
	d := availabilityDTO{
		TutorID:    av.TutorID,
		TimeSlots:  make([]timeSlotDTO, 0, len(av.Slots)),
		Exceptions: make([]exceptionDTO, 0, len(av.Exceptions)),
	}
	for _, s := range av.Slots {
		d.TimeSlots = append(d.TimeSlots, timeSlotDTO{
			DayOfWeek: int(s.Day),
			StartTime: s.Range.Start.String(),
			EndTime:   s.Range.End.String(),
		})
	}
	for _, e := range av.Exceptions {
		d.Exceptions = append(d.Exceptions, exceptionDTO{Date: formatDate(e.Date), Reason: e.Reason})
	}
	return d
}

type sessionRequestDTO struct {
	ID                   string `json:"id" validate:"required"`
	Type                 string `json:"type" validate:"required,oneof=cancel reschedule"`
	SessionID            string `json:"sessionId"`
	ClassID              string `json:"classId"`
	StudentID            string `json:"studentId"`
	Reason               string `json:"reason"`
	PreferredStartTime   string `json:"preferredStartTime"`
	PreferredEndTime     string `json:"preferredEndTime"`
	AlternativeSessionID string `json:"alternativeSessionId"`
	Status               string `json:"status" validate:"required,oneof=pending approved rejected"`
	ResponseMessage      string `json:"responseMessage"`
	CreatedAt            string `json:"createdAt"`
}

func (d *sessionRequestDTO) toModel() model.SessionRequest {
	return model.SessionRequest{
		ID:                   d.ID,
		Type:                 model.RequestType(d.Type),
		SessionID:            d.SessionID,
		ClassID:              d.ClassID,
		StudentID:            d.StudentID,
		Reason:               d.Reason,
		PreferredStartTime:   optionalTimestamp(d.PreferredStartTime),
		PreferredEndTime:     optionalTimestamp(d.PreferredEndTime),
		AlternativeSessionID: d.AlternativeSessionID,
		Status:               model.RequestStatus(d.Status),
		ResponseMessage:      d.ResponseMessage,
		CreatedAt:            parseTimestamp(d.CreatedAt),
	}
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

// parseTimestamp разбирает время бэкенда; нулевое время, если не получилось
func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func optionalTimestamp(s string) *time.Time {
	t := parseTimestamp(s)
	if t.IsZero() {
		return nil
	}
	return &t
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}
