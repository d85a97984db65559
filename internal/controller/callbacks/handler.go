package callbacks

import (
	"context"

	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks/callbacktypes"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Handler обертка для callbacktypes.Handler с методами
type Handler struct {
	*callbacktypes.Handler
}

// NewHandler создаёт новый обработчик callbacks с зависимостями
func NewHandler(inner *callbacktypes.Handler) *Handler {
	return &Handler{Handler: inner}
}

// HandleCallbackQuery точка входа для всех нажатий на inline кнопки
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	Route(ctx, b, update.CallbackQuery, h.Handler)
}
