package model

import (
	"sort"
	"time"

	"github.com/Freeeeeet/tutor_desk/internal/timerange"
)

// AvailabilitySlot еженедельное окно, в котором учитель готов вести занятия
type AvailabilitySlot struct {
	Day   time.Weekday    `json:"day"` // 0 = Sunday, 6 = Saturday
	Range timerange.Range `json:"range"`
}

// AvailabilityException разовое исключение из расписания (отпуск, праздник)
type AvailabilityException struct {
	Date   time.Time `json:"date"`
	Reason string    `json:"reason"`
}

// Availability полный набор окон учителя. Сохраняется целиком.
type Availability struct {
	TutorID    string                  `json:"tutor_id"`
	Slots      []AvailabilitySlot      `json:"slots"`
	Exceptions []AvailabilityException `json:"exceptions"`
}

// SortSlots упорядочивает окна по дню недели, затем по началу
func SortSlots(slots []AvailabilitySlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].Day != slots[j].Day {
			return slots[i].Day < slots[j].Day
		}
		return slots[i].Range.Start < slots[j].Range.Start
	})
}
