package common

import (
	"context"

	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks/callbacktypes"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// MainMenuText текст главного меню учителя
const MainMenuText = "📋 Главное меню\n\n" +
	"/dashboard - Сводка\n" +
	"/requests - Запросы студентов\n" +
	"/sessions - Ближайшие занятия\n" +
	"/classes - Мои классы\n" +
	"/newclass - Создать класс\n" +
	"/availability - Окна доступности\n" +
	"/week - Расписание на неделю\n" +
	"/help - Справка"

// HandleBackToMain возвращает учителя к главному меню
func HandleBackToMain(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := GetMessageFromCallback(callback)
	if msg == nil {
		AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	h.StateManager.ClearState(callback.From.ID)

	b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
	})

	text := MainMenuText
	if _, err := h.Identities.Current(ctx, callback.From.ID); err != nil {
		text = "👋 Вы не вошли.\n\nВойдите командой /login <tutor_id> [token]"
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   text,
	})

	AnswerCallback(ctx, b, callback.ID, "Возврат в главное меню")
}
