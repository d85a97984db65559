package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/tutor_desk/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleAvailability обрабатывает /availability
func (h *Handlers) HandleAvailability(ctx context.Context, b *bot.Bot, update *models.Update) {
	identity, ok := h.requireTutor(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	av, err := h.schedule.GetAvailability(ctx, identity)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "get_availability")
		return
	}
	h.sendHTML(ctx, b, chatID, formatting.FormatAvailability(av), nil)
}

// HandleSetAvailabilityStart обрабатывает /setavailability
func (h *Handlers) HandleSetAvailabilityStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireTutor(ctx, b, update); !ok {
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.ClearState(telegramID)
	h.stateManager.SetState(telegramID, state.StateSetAvailability)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"🕐 Новые окна доступности\n\n"+
			"Отправьте одним сообщением, по строке на день:\n"+
			"Mon 09:00-12:00, 14:00-18:00\n"+
			"Ср 10:00-16:00\n\n"+
			"Окна заменят текущие целиком, исключения сохранятся.\n"+
			"Для отмены используйте /cancel")
}

func (h *Handlers) handleSetAvailabilityStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID

	slots, err := parseAvailability(update.Message.Text)
	if err != nil {
		msg := "❌ Не удалось разобрать: " + err.Error()
		if errors.Is(err, ErrNoSlots) {
			msg = "❌ Нужна хотя бы одна строка вида: Mon 09:00-17:00"
		}
		h.sendError(ctx, b, chatID, msg+"\n\nПопробуйте ещё раз:")
		return
	}

	identity, ok := h.requireTutorByID(ctx, b, chatID, telegramID)
	if !ok {
		h.stateManager.ClearState(telegramID)
		return
	}

	current, err := h.schedule.GetAvailability(ctx, identity)
	if err != nil {
		h.stepFailed(ctx, b, chatID, telegramID, err, "get_availability")
		return
	}

	if err := h.schedule.SaveAvailability(ctx, identity, slots, current.Exceptions); err != nil {
		h.stepFailed(ctx, b, chatID, telegramID, err, "save_availability")
		return
	}
	h.stateManager.ClearState(telegramID)

	h.logger.Info("Availability updated from bot",
		zap.Int64("telegram_id", telegramID),
		zap.Int("slots", len(slots)))

	saved, err := h.schedule.GetAvailability(ctx, identity)
	if err != nil {
		h.sendMessage(ctx, b, chatID, fmt.Sprintf("✅ Сохранено окон: %d", len(slots)))
		return
	}
	h.sendHTML(ctx, b, chatID, "✅ Сохранено\n\n"+formatting.FormatAvailability(saved), nil)
}
