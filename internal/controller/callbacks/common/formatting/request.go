package formatting

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Freeeeeet/tutor_desk/internal/model"
)

// Escape экранирует пользовательский текст для ParseModeHTML
func Escape(s string) string {
	return html.EscapeString(s)
}

func in(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		return t
	}
	return t.In(loc)
}

// FormatRequestShort одна строка для списка: "🔴 🔁 Перенос · Math · Ada"
func FormatRequestShort(v *model.RequestView, index int) string {
	urgency := GetUrgencyDisplay(v.Urgency)
	kind := GetRequestTypeDisplay(v.Request.Type)

	line := fmt.Sprintf("%d. %s %s %s · %s · %s",
		index,
		urgency.Emoji,
		kind.Emoji,
		kind.Text,
		Escape(v.Subject),
		Escape(v.StudentName),
	)
	if !v.Request.IsPending() {
		line += " " + GetRequestStatusDisplay(v.Request.Status).Emoji
	}
	return line
}

// FormatRequestView подробная карточка запроса
func FormatRequestView(v *model.RequestView, loc *time.Location) string {
	req := &v.Request
	urgency := GetUrgencyDisplay(v.Urgency)
	kind := GetRequestTypeDisplay(req.Type)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s <b>%s</b> · %s\n", kind.Emoji, kind.Text, Escape(v.Subject))
	fmt.Fprintf(&sb, "👤 %s\n", Escape(v.StudentName))
	fmt.Fprintf(&sb, "📅 Занятие: %s\n", FormatTimeRange(in(v.OriginalStart, loc), in(v.OriginalEnd, loc)))
	if v.Class != nil {
		fmt.Fprintf(&sb, "🏫 Класс %s (%s, %s)\n",
			Escape(v.Class.Code), GetWeekdayShortName(v.Class.Day), v.Class.Range)
	}

	if req.Type == model.RequestTypeReschedule {
		switch {
		case req.IsClassReschedule() && v.AlternativeLoading():
			sb.WriteString("🔁 Альтернатива: ⏳ загружается...\n")
		case req.IsClassReschedule():
			alt := v.AlternativeSession
			fmt.Fprintf(&sb, "🔁 Альтернатива: %s\n", FormatTimeRange(in(alt.StartTime, loc), in(alt.EndTime, loc)))
		case req.PreferredStartTime != nil:
			end := time.Time{}
			if req.PreferredEndTime != nil {
				end = *req.PreferredEndTime
			}
			fmt.Fprintf(&sb, "🕐 Желаемое время: %s\n", FormatTimeRange(in(*req.PreferredStartTime, loc), in(end, loc)))
		default:
			sb.WriteString("🕐 Желаемое время: не указано\n")
		}
	}

	if reason := strings.TrimSpace(req.Reason); reason != "" {
		fmt.Fprintf(&sb, "💬 «%s»\n", Escape(reason))
	}

	fmt.Fprintf(&sb, "%s %s · создан %s\n", urgency.Emoji, urgency.Text, FormatDateTime(in(req.CreatedAt, loc)))
	fmt.Fprintf(&sb, "📊 Статус: %s", GetRequestStatusDisplay(req.Status))

	if msg := strings.TrimSpace(req.ResponseMessage); msg != "" {
		fmt.Fprintf(&sb, "\n✉️ Ответ: %s", Escape(msg))
	}
	if len(v.Anomalies) > 0 {
		sb.WriteString("\n⚠️ Часть данных недоступна")
	}

	return sb.String()
}

// FormatUrgentDigest сообщение фоновой рассылки о срочных запросах
func FormatUrgentDigest(views []model.RequestView, loc *time.Location) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🔴 <b>%d %s</b> ждут решения, занятия меньше чем через сутки:\n\n",
		len(views), PluralizeRequests(len(views)))

	for i := range views {
		v := &views[i]
		fmt.Fprintf(&sb, "%s\n   📅 %s\n",
			FormatRequestShort(v, i+1),
			FormatDateTime(in(v.OriginalStart, loc)))
	}
	sb.WriteString("\nОткрыть список: /requests")
	return sb.String()
}
