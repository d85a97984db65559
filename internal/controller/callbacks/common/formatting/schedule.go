package formatting

import (
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/tutor_desk/internal/model"
	"github.com/Freeeeeet/tutor_desk/internal/timerange"
)

// FormatClassShort "C01 · Пн 10:00-11:00 · Physics (3/4)"
func FormatClassShort(c *model.ClassDefinition) string {
	return fmt.Sprintf("%s · %s %s · %s (%d/%d)",
		Escape(c.Code),
		GetWeekdayShortName(c.Day),
		c.Range,
		Escape(c.Subject),
		c.CurrentEnrollment,
		c.MaxStudents,
	)
}

// FormatClassInfo карточка класса
func FormatClassInfo(c *model.ClassDefinition) string {
	minutes, _ := timerange.Duration(c.Range)

	place := "🌐 Онлайн"
	if !c.IsOnline {
		place = "📍 " + Escape(c.Location)
		if strings.TrimSpace(c.Location) == "" {
			place = "📍 Очно"
		}
	}

	text := fmt.Sprintf(
		"🏫 <b>Класс %s</b> · %s\n\n"+
			"📅 %s, %s (%s)\n"+
			"%s\n"+
			"👥 %d из %d, свободно %d\n"+
			"📊 %s",
		Escape(c.Code),
		Escape(c.Subject),
		GetWeekdayName(c.Day),
		c.Range,
		FormatDuration(minutes),
		place,
		c.CurrentEnrollment,
		c.MaxStudents,
		c.SeatsLeft(),
		GetClassStatusDisplay(c.Status),
	)
	if !c.SemesterStart.IsZero() && !c.SemesterEnd.IsZero() {
		text += fmt.Sprintf("\n🗓 Семестр: %s - %s", FormatDate(c.SemesterStart), FormatDate(c.SemesterEnd))
	}
	return text
}

// FormatAvailability окна по дням недели, начиная с понедельника
func FormatAvailability(av *model.Availability) string {
	if av == nil || len(av.Slots) == 0 {
		return "🕐 Окна доступности не заданы.\n\nЗадать: /setavailability"
	}

	slots := make([]model.AvailabilitySlot, len(av.Slots))
	copy(slots, av.Slots)
	model.SortSlots(slots)

	var sb strings.Builder
	sb.WriteString("🕐 <b>Окна доступности</b>\n")
	for _, d := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday} {
		var ranges []string
		for _, s := range slots {
			if s.Day == d {
				ranges = append(ranges, s.Range.String())
			}
		}
		if len(ranges) > 0 {
			fmt.Fprintf(&sb, "\n%s: %s", GetWeekdayShortName(d), strings.Join(ranges, ", "))
		}
	}

	if len(av.Exceptions) > 0 {
		sb.WriteString("\n\n🚫 Исключения:")
		for _, e := range av.Exceptions {
			line := "\n" + FormatDate(e.Date)
			if e.Reason != "" {
				line += " · " + Escape(e.Reason)
			}
			sb.WriteString(line)
		}
	}
	return sb.String()
}

// FormatSessionShort "10.03.2025 18:00-19:30 · Math ✅"
func FormatSessionShort(s *model.Session, loc *time.Location) string {
	subject := s.Subject
	if subject == "" {
		subject = model.UnknownSubject
	}
	return fmt.Sprintf("%s · %s %s",
		FormatTimeRange(in(s.StartTime, loc), in(s.EndTime, loc)),
		Escape(subject),
		GetSessionStatusDisplay(s.Status).Emoji,
	)
}
