package common

import (
	"context"

	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks/callbacktypes"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// WithTutor создаёт HandlerContext и проверяет, что учитель вошёл.
// При ошибке сам отвечает пользователю.
func WithTutor(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if err := hc.RequireTutor(); err != nil {
		h.Logger.Warn("Tutor check failed",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	handler(hc)
}

// HandleError логирует ошибку операции и показывает её учителю
func HandleError(hc *HandlerContext, err error, operation string) {
	fields := []zap.Field{
		zap.String("operation", operation),
		zap.Int64("telegram_id", hc.TelegramID),
		zap.Error(err),
	}
	if hc.Identity != nil {
		fields = append(fields, zap.String("tutor_id", hc.Identity.TutorID))
	}
	hc.Handler.Logger.Error("Operation failed", fields...)
	hc.AnswerAlert(ErrorMessage(err))
}

// LogAndAnswer логирует действие и отвечает на callback
func LogAndAnswer(hc *HandlerContext, message string, answer string) {
	fields := []zap.Field{zap.Int64("telegram_id", hc.TelegramID)}
	if hc.Identity != nil {
		fields = append(fields, zap.String("tutor_id", hc.Identity.TutorID))
	}
	hc.Handler.Logger.Info(message, fields...)
	hc.Answer(answer)
}
