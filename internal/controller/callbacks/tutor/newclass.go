package tutor

import (
	"context"
	"strings"

	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutor_desk/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleNewClassStart запускает диалог создания класса из кнопки
func HandleNewClassStart(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	update := &models.Update{
		Message: &models.Message{
			Chat: models.Chat{ID: msg.Chat.ID},
			From: &callback.From,
		},
	}
	h.HandleNewClass(ctx, b, update)
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// inState true, если учитель всё ещё на нужном шаге диалога
func inState(hc *common.HandlerContext, want state.UserState) bool {
	if !hc.Handler.StateManager.InState(hc.TelegramID, callbacktypes.UserState(want)) {
		hc.AnswerAlert("⏱ Диалог устарел. Начните заново: /newclass")
		return false
	}
	return true
}

// HandleNewClassDay выбор дня недели
func HandleNewClassDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)
	if !inState(hc, state.StateNewClassDay) {
		return
	}

	day, err := common.ParseIntFromCallback(callback.Data)
	if err != nil || day < 0 || day > 6 {
		hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	hc.Answer("")
	h.NewClassDayPick(ctx, b, hc.ChatID, hc.TelegramID, day)
}

// HandleNewClassOnline онлайн или очно
func HandleNewClassOnline(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)
	if !inState(hc, state.StateNewClassOnline) {
		return
	}

	hc.Answer("")
	h.NewClassOnline(ctx, b, hc.ChatID, hc.TelegramID, strings.HasSuffix(callback.Data, ":yes"))
}

// HandleNewClassGenerate создавать ли занятия сразу
func HandleNewClassGenerate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)
	if !inState(hc, state.StateNewClassGenerate) {
		return
	}

	hc.Answer("")
	h.NewClassGenerate(ctx, b, hc.ChatID, hc.TelegramID, strings.HasSuffix(callback.Data, ":yes"))
}
