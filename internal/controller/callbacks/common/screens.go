package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/tutor_desk/internal/model"
	"github.com/Freeeeeet/tutor_desk/internal/service"
	"github.com/go-telegram/bot/models"
)

// BuildRequestsScreen список запросов; page с нуля
func BuildRequestsScreen(list *service.RequestList, page int, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder()

	if list == nil || len(list.Views) == 0 {
		kb.AddBackToMainButton()
		return "📭 Запросов от студентов нет", kb.Build()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📨 <b>Запросы студентов</b> (%d)\n\n", list.Total)

	var buttons []models.InlineKeyboardButton
	for i := range list.Views {
		v := &list.Views[i]
		index := page*RequestsPerPage + i + 1
		sb.WriteString(formatting.FormatRequestShort(v, index))
		sb.WriteString("\n   📅 ")
		sb.WriteString(formatting.FormatDateTime(v.OriginalStart.In(loc)))
		sb.WriteString("\n")
		buttons = append(buttons, keyboard.Button(fmt.Sprintf("%d", index), CallbackRequestView+v.Request.ID))
	}

	kb.Grid(RequestsPerPage, buttons...)
	kb.AddPagination(CallbackRequestsPage, page, keyboard.TotalPages(list.Total, RequestsPerPage))
	kb.AddBackToMainButton()

	return sb.String(), kb.Build()
}

// BuildRequestScreen карточка запроса с действиями по статусу
func BuildRequestScreen(v *model.RequestView, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder()
	id := v.Request.ID

	switch {
	case v.Request.IsPending():
		kb.Row(
			keyboard.Button("✅ Одобрить", CallbackRequestApprove+id),
			keyboard.Button("❌ Отклонить", CallbackRequestReject+id),
		)
	case v.Request.IsTerminal():
		kb.Row(keyboard.Button("🗑 Удалить", CallbackRequestDelete+id))
	}
	kb.Row(keyboard.Button("⬅️ К списку", CallbackRequestsPage+"0"))

	return formatting.FormatRequestView(v, loc), kb.Build()
}

// BuildClassesScreen список классов учителя
func BuildClassesScreen(classes []model.ClassDefinition) (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder()

	if len(classes) == 0 {
		kb.Row(keyboard.Button("➕ Создать класс", CallbackNewClassStart))
		kb.AddBackToMainButton()
		return "🏫 У вас пока нет классов", kb.Build()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🏫 <b>Мои классы</b> · %d %s\n\n", len(classes), formatting.PluralizeClasses(len(classes)))
	for i := range classes {
		c := &classes[i]
		sb.WriteString(formatting.FormatClassShort(c))
		sb.WriteString("\n")
		kb.Row(keyboard.Button(c.Code+" · "+c.Subject, CallbackClassView+c.ID))
	}

	kb.Row(keyboard.Button("➕ Создать класс", CallbackNewClassStart))
	kb.AddBackToMainButton()
	return sb.String(), kb.Build()
}

// BuildClassScreen карточка класса
func BuildClassScreen(c *model.ClassDefinition) (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📅 Создать занятия", CallbackClassGenerate+c.ID)).
		Row(keyboard.Button("🗑 Удалить", CallbackClassDelete+c.ID)).
		Row(keyboard.Button("⬅️ К классам", CallbackClassesList))
	return formatting.FormatClassInfo(c), kb.Build()
}

// BuildSessionsScreen ближайшие занятия с кнопками отмены
func BuildSessionsScreen(sessions []model.Session, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder()

	if len(sessions) == 0 {
		kb.AddBackToMainButton()
		return "📭 Ближайших занятий нет", kb.Build()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 <b>Ближайшие занятия</b> · %d %s\n\n", len(sessions), formatting.PluralizeSessions(len(sessions)))
	for i := range sessions {
		s := &sessions[i]
		fmt.Fprintf(&sb, "%d. %s\n", i+1, formatting.FormatSessionShort(s, loc))
		kb.Row(keyboard.Button(
			fmt.Sprintf("❌ Отменить %d", i+1),
			CallbackSessionCancel+s.ID,
		))
	}
	kb.AddBackToMainButton()
	return sb.String(), kb.Build()
}

// BuildDashboardScreen главный экран учителя
func BuildDashboardScreen(identity *model.Identity, d *service.Dashboard, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	name := identity.DisplayName
	if name == "" {
		name = identity.TutorID
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "👋 <b>%s</b>\n\n", formatting.Escape(name))
	fmt.Fprintf(&sb, "📅 Ближайших занятий: %d\n", d.UpcomingSessions)
	fmt.Fprintf(&sb, "📨 Ожидают решения: %d\n", d.PendingRequests)
	if d.UrgentRequests > 0 {
		fmt.Fprintf(&sb, "🔴 Срочных: %d\n", d.UrgentRequests)
	}
	if d.NextSession != nil {
		fmt.Fprintf(&sb, "\n⏭ Следующее: %s", formatting.FormatSessionShort(d.NextSession, loc))
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📨 Запросы", CallbackRequestsPage+"0")).
		Row(keyboard.Button("🏫 Классы", CallbackClassesList))
	return sb.String(), kb.Build()
}
