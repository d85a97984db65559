package tutor

import (
	"context"

	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks/common/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// UpcomingLimit сколько ближайших занятий показывать
const UpcomingLimit = 10

const cancelReason = "Cancelled by tutor"

// HandleSessionCancel спрашивает подтверждение отмены занятия
func HandleSessionCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	sessionID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithTutor(ctx, b, callback, h, func(hc *common.HandlerContext) {
		kb := keyboard.NewBuilder()
		for _, row := range keyboard.ConfirmCancelButtons(common.CallbackSessionCancelConfirm+sessionID, common.CallbackBackToMain) {
			kb.Row(row...)
		}
		if err := hc.EditMessage("⚠️ Отменить занятие? Студенты получат уведомление.", kb.Build()); err != nil {
			h.Logger.Error("Failed to show cancel confirmation", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleSessionCancelConfirm отменяет занятие и обновляет список
func HandleSessionCancelConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	sessionID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithTutor(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if err := h.Sessions.Cancel(hc.Ctx, hc.Identity, sessionID, cancelReason); err != nil {
			common.HandleError(hc, err, "cancel_session")
			return
		}

		sessions, err := h.Sessions.Upcoming(hc.Ctx, hc.Identity, UpcomingLimit)
		if err != nil {
			common.HandleError(hc, err, "list_sessions")
			return
		}
		text, kb := common.BuildSessionsScreen(sessions, h.Requests.Location())
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to refresh sessions", zap.Error(err))
		}
		common.LogAndAnswer(hc, "Session cancelled from bot", "✅ Занятие отменено")
	})
}
