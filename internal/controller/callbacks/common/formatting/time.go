package formatting

import (
	"fmt"
	"strings"
	"time"
)

// FormatDateTime форматирует дату и время
func FormatDateTime(t time.Time) string {
	return t.Format("02.01.2006 15:04")
}

// FormatDate форматирует только дату
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatTime форматирует только время
func FormatTime(t time.Time) string {
	return t.Format("15:04")
}

// FormatTimeRange "10.03.2025 18:00-19:30"; если конец в другой день, дата пишется дважды
func FormatTimeRange(start, end time.Time) string {
	if end.IsZero() || !end.After(start) {
		return FormatDateTime(start)
	}
	if start.Year() == end.Year() && start.YearDay() == end.YearDay() {
		return fmt.Sprintf("%s-%s", FormatDateTime(start), FormatTime(end))
	}
	return fmt.Sprintf("%s - %s", FormatDateTime(start), FormatDateTime(end))
}

// FormatDuration форматирует длительность в минутах
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d мин", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d ч", hours)
	}
	return fmt.Sprintf("%d ч %d мин", hours, mins)
}

var weekdayNames = [...]string{
	"Воскресенье",
	"Понедельник",
	"Вторник",
	"Среда",
	"Четверг",
	"Пятница",
	"Суббота",
}

var weekdayShortNames = [...]string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}

// GetWeekdayName возвращает название дня недели на русском
func GetWeekdayName(weekday time.Weekday) string {
	if weekday >= time.Sunday && weekday <= time.Saturday {
		return weekdayNames[weekday]
	}
	return "Неизвестно"
}

// GetWeekdayShortName возвращает краткое название дня недели на русском
func GetWeekdayShortName(weekday time.Weekday) string {
	if weekday >= time.Sunday && weekday <= time.Saturday {
		return weekdayShortNames[weekday]
	}
	return "?"
}

// ParseWeekday понимает "Mon", "monday", "Пн", "понедельник" и номер 0-6 (0 = воскресенье)
func ParseWeekday(s string) (time.Weekday, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if len(key) == 1 && key[0] >= '0' && key[0] <= '6' {
		return time.Weekday(key[0] - '0'), nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		en := strings.ToLower(d.String())
		if key == en || key == en[:3] {
			return d, nil
		}
		if key == strings.ToLower(weekdayNames[d]) || key == strings.ToLower(weekdayShortNames[d]) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}
