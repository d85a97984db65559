package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/tutor_desk/internal/model"
	"github.com/Freeeeeet/tutor_desk/internal/timerange"
)

// SlotsForDay окна доступности на день недели в порядке начала
func SlotsForDay(av *model.Availability, day time.Weekday) []model.AvailabilitySlot {
	if av == nil {
		return nil
	}
	var out []model.AvailabilitySlot
	for _, s := range av.Slots {
		if s.Day == day {
			out = append(out, s)
		}
	}
	model.SortSlots(out)
	return out
}

// FindSlot первое окно дня, целиком содержащее r; nil, если такого нет
func FindSlot(av *model.Availability, day time.Weekday, r timerange.Range) *model.AvailabilitySlot {
	for _, s := range SlotsForDay(av, day) {
		if timerange.Contains(s.Range, r) {
			slot := s
			return &slot
		}
	}
	return nil
}

// ClassesForDay классы учителя на день недели
func ClassesForDay(classes []model.ClassDefinition, day time.Weekday) []model.ClassDefinition {
	var out []model.ClassDefinition
	for _, c := range classes {
		if c.Day == day {
			out = append(out, c)
		}
	}
	return out
}

const classCodePrefix = "C"

// NextClassCode следующий код класса учителя: C01, C02, ...
// Коды с чужим форматом игнорируются.
func NextClassCode(existing []model.ClassDefinition) string {
	maxN := 0
	for _, c := range existing {
		if !strings.HasPrefix(c.Code, classCodePrefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(c.Code, classCodePrefix))
		if err != nil {
			continue
		}
		if n > maxN {
			maxN = n
		}
	}
	return fmt.Sprintf("%s%02d", classCodePrefix, maxN+1)
}

// NextOccurrence ближайший момент начала еженедельного класса не раньше from.
// Дни недели в нумерации time.Weekday (воскресенье = 0).
func NextOccurrence(day time.Weekday, start timerange.TimeOfDay, from time.Time) time.Time {
	delta := (int(day) - int(from.Weekday()) + 7) % 7
	candidate := timerange.At(from.AddDate(0, 0, delta), start)
	if candidate.Before(from) {
		candidate = candidate.AddDate(0, 0, 7)
	}
	return candidate
}

// Occurrence одна встреча класса в календаре
type Occurrence struct {
	Start time.Time
	End   time.Time
}

// OccurrencesBetween все встречи класса в [from, to] по датам, с учётом исключений
func OccurrencesBetween(c *model.ClassDefinition, from, to time.Time, exceptions []model.AvailabilityException) []Occurrence {
	if c == nil || to.Before(from) {
		return nil
	}

	skip := make(map[string]bool, len(exceptions))
	for _, e := range exceptions {
		skip[e.Date.Format(time.DateOnly)] = true
	}

	var out []Occurrence
	first := NextOccurrence(c.Day, c.Range.Start, startOfDay(from))
	lastDay := startOfDay(to)
	for d := first; !startOfDay(d).After(lastDay); d = d.AddDate(0, 0, 7) {
		if skip[d.Format(time.DateOnly)] {
			continue
		}
		out = append(out, Occurrence{Start: d, End: timerange.At(d, c.Range.End)})
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
