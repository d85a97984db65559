package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/tutor_desk/internal/lifecycle"
	"github.com/Freeeeeet/tutor_desk/internal/model"
	"github.com/Freeeeeet/tutor_desk/internal/timerange"
)

var (
	ErrNoSlots         = errors.New("no availability lines")
	ErrInvalidCapacity = errors.New("invalid capacity")
)

// parseAvailability разбирает строки вида "Mon 09:00-12:00, 14:00-18:00"
func parseAvailability(text string) ([]model.AvailabilitySlot, error) {
	var slots []model.AvailabilitySlot

	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		dayStr, rest, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("line %d %q: expected \"<day> HH:MM-HH:MM\"", i+1, line)
		}
		day, err := formatting.ParseWeekday(dayStr)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}

		for _, part := range strings.Split(rest, ",") {
			r, err := timerange.ParseRange(part)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			slots = append(slots, model.AvailabilitySlot{Day: day, Range: r})
		}
	}

	if len(slots) == 0 {
		return nil, ErrNoSlots
	}
	return slots, nil
}

// parseDateTime делит "YYYY-MM-DD HH:MM" на дату и время; формат проверяет движок одобрения
func parseDateTime(text string) (string, string, error) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return "", "", fmt.Errorf("%w: %q", lifecycle.ErrInvalidDateTime, text)
	}
	return fields[0], fields[1], nil
}

// parseCapacity вместимость класса 1..MaxClassCapacity
func parseCapacity(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 1 || n > MaxClassCapacity {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCapacity, text)
	}
	return n, nil
}
