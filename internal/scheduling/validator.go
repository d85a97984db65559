package scheduling

import (
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_desk/internal/model"
	"github.com/Freeeeeet/tutor_desk/internal/timerange"
)

// MinClassMinutes минимальная длительность класса
const MinClassMinutes = 30

var (
	ErrMissingInput  = errors.New("missing input")
	ErrOutOfWindow   = errors.New("outside availability window")
	ErrInvertedRange = errors.New("end time must be after start time")
	ErrTooShort      = errors.New("class is too short")
	ErrOverlap       = errors.New("overlaps existing class")
)

// ValidationError причина, по которой класс создать нельзя.
// Сравнивается через errors.Is с ErrMissingInput, ErrOutOfWindow и т.д.
type ValidationError struct {
	Code    error
	Message string

	// Conflict заполнен только для ErrOverlap
	Conflict *model.ClassDefinition
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Code
}

// ClassTime предлагаемое время класса. Нулевые указатели означают незаполненные поля формы.
type ClassTime struct {
	Day   time.Weekday
	Start *timerange.TimeOfDay
	End   *timerange.TimeOfDay
}

// NewClassTime удобный конструктор для заполненной формы
func NewClassTime(day time.Weekday, r timerange.Range) ClassTime {
	start, end := r.Start, r.End
	return ClassTime{Day: day, Start: &start, End: &end}
}

// ValidateClassTime решает, можно ли создать класс в выбранном окне доступности.
// Проверки идут строго по порядку, возвращается первая сработавшая.
// Функция чистая: актуальный список классов caller обязан получить сам прямо перед вызовом.
func ValidateClassTime(proposed ClassTime, slot *model.AvailabilitySlot, existing []model.ClassDefinition) error {
	if slot == nil {
		return &ValidationError{Code: ErrMissingInput, Message: "select an availability slot first"}
	}
	if proposed.Start == nil || proposed.End == nil {
		return &ValidationError{Code: ErrMissingInput, Message: "both start and end time are required"}
	}

	r := timerange.Range{Start: *proposed.Start, End: *proposed.End}

	if !timerange.Contains(slot.Range, r) {
		return &ValidationError{
			Code:    ErrOutOfWindow,
			Message: fmt.Sprintf("class time must be within the availability slot %s", slot.Range),
		}
	}

	if r.Start >= r.End {
		return &ValidationError{Code: ErrInvertedRange, Message: "end time must be after start time"}
	}

	if minutes, _ := timerange.Duration(r); minutes < MinClassMinutes {
		return &ValidationError{
			Code:    ErrTooShort,
			Message: fmt.Sprintf("class must be at least %d minutes long", MinClassMinutes),
		}
	}

	for i := range existing {
		c := &existing[i]
		if c.Day != proposed.Day {
			continue
		}
		if timerange.Overlaps(r, c.Range) {
			return &ValidationError{
				Code:     ErrOverlap,
				Message:  fmt.Sprintf("time conflicts with class %s (%s)", c.Code, c.Range),
				Conflict: c,
			}
		}
	}

	return nil
}

// ValidateAvailability проверяет окна перед сохранением.
// Уникальность и пересечения окон не проверяются: набор сохраняется как есть.
func ValidateAvailability(slots []model.AvailabilitySlot) error {
	for i, s := range slots {
		if s.Day < time.Sunday || s.Day > time.Saturday {
			return fmt.Errorf("slot %d: invalid weekday %d", i+1, s.Day)
		}
		if !s.Range.Start.Valid() || !s.Range.End.Valid() {
			return fmt.Errorf("slot %d: %w", i+1, timerange.ErrParse)
		}
		if _, err := timerange.Duration(s.Range); err != nil {
			return fmt.Errorf("slot %d: %w", i+1, err)
		}
	}
	return nil
}
