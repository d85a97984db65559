package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutor_desk/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// UpcomingLimit сколько ближайших занятий показывать в /sessions
const UpcomingLimit = 10

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	identity, err := h.identities.Current(ctx, update.Message.From.ID)
	if err != nil {
		h.sendMessage(ctx, b, update.Message.Chat.ID,
			"👋 Привет!\n\n"+
				"Это кабинет учителя: запросы студентов, занятия и расписание.\n\n"+
				"Чтобы начать, войдите:\n"+
				"/login <tutor_id> [token]")
		return
	}

	name := identity.DisplayName
	if name == "" {
		name = identity.TutorID
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, fmt.Sprintf("👋 С возвращением, %s!\n\n%s", name, common.MainMenuText))
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Справка по командам:\n\n" +
		"/login <tutor_id> [token] - Войти как учитель\n" +
		"/logout - Выйти\n" +
		"/dashboard - Сводка\n" +
		"/requests - Запросы студентов на отмену и перенос\n" +
		"/sessions - Ближайшие занятия\n" +
		"/classes - Мои классы\n" +
		"/newclass - Создать класс в окне доступности\n" +
		"/availability - Посмотреть окна доступности\n" +
		"/setavailability - Задать окна доступности\n" +
		"/week - Картинка расписания на неделю\n" +
		"/cancel - Прервать текущий диалог"

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText)
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	if h.stateManager.GetState(telegramID) == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Нет активных операций для отмены.")
		return
	}

	h.stateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "✅ Операция отменена.\n\nИспользуйте /help для просмотра доступных команд.")
}

// HandleLogin обрабатывает /login <tutor_id> [token]
func (h *Handlers) HandleLogin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	chatID := update.Message.Chat.ID

	args := strings.Fields(update.Message.Text)
	if len(args) < 2 || len(args) > 3 {
		h.sendError(ctx, b, chatID, "❌ Формат: /login <tutor_id> [token]")
		return
	}
	var token string
	if len(args) == 3 {
		token = args[2]
	}

	identity, err := h.identities.SignIn(ctx, update.Message.From.ID, chatID, args[1], token)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "login")
		return
	}

	// токен не должен оставаться в истории чата
	if token != "" {
		b.DeleteMessage(ctx, &bot.DeleteMessageParams{ChatID: chatID, MessageID: update.Message.ID})
	}

	name := identity.DisplayName
	if name == "" {
		name = identity.TutorID
	}
	h.sendMessage(ctx, b, chatID, fmt.Sprintf("✅ Вы вошли как %s\n\n%s", name, common.MainMenuText))
}

// HandleLogout обрабатывает /logout
func (h *Handlers) HandleLogout(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.ClearState(telegramID)

	if err := h.identities.SignOut(ctx, telegramID); err != nil {
		h.replyError(ctx, b, update.Message.Chat.ID, err, "logout")
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, "👋 Вы вышли. Войти снова: /login <tutor_id> [token]")
}

// HandleDashboard обрабатывает /dashboard
func (h *Handlers) HandleDashboard(ctx context.Context, b *bot.Bot, update *models.Update) {
	identity, ok := h.requireTutor(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	d, err := h.dashboard.Get(ctx, identity)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "dashboard")
		return
	}

	text, kb := common.BuildDashboardScreen(identity, d, h.location())
	h.sendHTML(ctx, b, chatID, text, kb)
}

// HandleSessions обрабатывает /sessions
func (h *Handlers) HandleSessions(ctx context.Context, b *bot.Bot, update *models.Update) {
	identity, ok := h.requireTutor(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	sessions, err := h.sessions.Upcoming(ctx, identity, UpcomingLimit)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "list_sessions")
		return
	}

	text, kb := common.BuildSessionsScreen(sessions, h.location())
	h.sendHTML(ctx, b, chatID, text, kb)
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	h.logger.Debug("HandleTextMessage called",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	if currentState == state.StateNone {
		return
	}

	switch currentState {
	case state.StateNewClassTime:
		h.handleNewClassTimeStep(ctx, b, update)
	case state.StateNewClassSubject:
		h.handleNewClassSubjectStep(ctx, b, update)
	case state.StateNewClassCapacity:
		h.handleNewClassCapacityStep(ctx, b, update)
	case state.StateNewClassLocation:
		h.handleNewClassLocationStep(ctx, b, update)
	case state.StateSetAvailability:
		h.handleSetAvailabilityStep(ctx, b, update)
	case state.StateApproveMessage:
		h.handleApproveMessageStep(ctx, b, update)
	case state.StateApproveDateTime:
		h.handleApproveDateTimeStep(ctx, b, update)
	case state.StateRejectMessage:
		h.handleRejectMessageStep(ctx, b, update)
	case state.StateNewClassDay, state.StateNewClassOnline, state.StateNewClassGenerate:
		h.sendMessage(ctx, b, update.Message.Chat.ID, "👆 Выберите вариант кнопкой выше или /cancel")
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
	}
}
