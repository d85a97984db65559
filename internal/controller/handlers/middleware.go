package handlers

import (
	"context"
	"errors"

	"github.com/Freeeeeet/tutor_desk/internal/backend"
	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutor_desk/internal/lifecycle"
	"github.com/Freeeeeet/tutor_desk/internal/model"
	"github.com/Freeeeeet/tutor_desk/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// requireTutor проверяет, что учитель вошёл
// Возвращает identity и true если OK, nil и false если нет
func (h *Handlers) requireTutor(ctx context.Context, b *bot.Bot, update *models.Update) (*model.Identity, bool) {
	if update.Message == nil || update.Message.From == nil {
		return nil, false
	}
	return h.requireTutorByID(ctx, b, update.Message.Chat.ID, update.Message.From.ID)
}

func (h *Handlers) requireTutorByID(ctx context.Context, b *bot.Bot, chatID, telegramID int64) (*model.Identity, bool) {
	identity, err := h.identities.Current(ctx, telegramID)
	if err != nil {
		h.logger.Warn("Tutor check failed", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return nil, false
	}
	return identity, true
}

// sendError отправляет сообщение об ошибке и логирует если не удалось
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send error message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err),
		)
	}
}

// sendMessage отправляет сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// sendHTML отправляет HTML-сообщение с клавиатурой
func (h *Handlers) sendHTML(ctx context.Context, b *bot.Bot, chatID int64, text string, kb *models.InlineKeyboardMarkup) {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if kb != nil {
		params.ReplyMarkup = kb
	}
	if _, err := b.SendMessage(ctx, params); err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// replyError показывает учителю ошибку операции
func (h *Handlers) replyError(ctx context.Context, b *bot.Bot, chatID int64, err error, operation string) {
	h.logger.Error("Operation failed",
		zap.String("operation", operation),
		zap.Int64("chat_id", chatID),
		zap.Error(err))
	h.sendError(ctx, b, chatID, common.ErrorMessage(err))
}

// RetryHint добавляется к ошибке, после которой диалог остаётся открытым
const RetryHint = "\n\nВведённые данные сохранены. Повторите шаг или отмените: /cancel"

// closesDialog ошибки, после которых повторять шаг бессмысленно:
// учитель не вошёл, запрос исчез или уже решён
func closesDialog(err error) bool {
	return errors.Is(err, service.ErrNotSignedIn) ||
		errors.Is(err, service.ErrUnknownTutor) ||
		errors.Is(err, backend.ErrUnauthorized) ||
		errors.Is(err, service.ErrRequestNotFound) ||
		errors.Is(err, backend.ErrNotFound) ||
		errors.Is(err, lifecycle.ErrNotPending)
}

// stepFailed отвечает на ошибку шага диалога. Ошибки ввода и отказы бэкенда
// оставляют диалог и его данные как есть; закрывает диалог только closesDialog.
func (h *Handlers) stepFailed(ctx context.Context, b *bot.Bot, chatID, telegramID int64, err error, operation string) {
	if service.IsInputError(err) {
		h.sendError(ctx, b, chatID, common.ErrorMessage(err)+"\n\nПопробуйте ещё раз:")
		return
	}
	if closesDialog(err) {
		h.stateManager.ClearState(telegramID)
		h.replyError(ctx, b, chatID, err, operation)
		return
	}

	h.logger.Error("Dialog step failed, keeping dialog",
		zap.String("operation", operation),
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(h.stateManager.GetState(telegramID))),
		zap.Error(err))
	h.sendError(ctx, b, chatID, common.ErrorMessage(err)+RetryHint)
}
