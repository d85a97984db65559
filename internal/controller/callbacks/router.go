package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks/tutor"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Debug("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID))

	switch {
	// ===== Common Navigation =====
	case data == common.CallbackBackToMain:
		common.HandleBackToMain(ctx, b, callback, h)
	case data == common.CallbackNoop:
		common.AnswerCallback(ctx, b, callback.ID, "")

	// ===== Requests =====
	// точные совпадения раньше префиксов: req_approve_nomsg начинается с req_approve
	case data == common.CallbackRequestApproveNoMsg:
		tutor.HandleApproveNoMessage(ctx, b, callback, h)
	case data == common.CallbackRequestRejectNoMsg:
		tutor.HandleRejectNoMessage(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CallbackRequestsPage):
		tutor.HandleRequestsPage(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CallbackRequestView):
		tutor.HandleRequestView(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CallbackRequestApprove):
		tutor.HandleRequestApprove(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CallbackRequestReject):
		tutor.HandleRequestReject(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CallbackRequestDelete):
		tutor.HandleRequestDelete(ctx, b, callback, h)

	// ===== Classes =====
	case data == common.CallbackClassesList:
		tutor.HandleClassesList(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CallbackClassView):
		tutor.HandleClassView(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CallbackClassDeleteConfirm):
		tutor.HandleClassDeleteConfirm(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CallbackClassDelete):
		tutor.HandleClassDelete(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CallbackClassGenerate):
		tutor.HandleClassGenerate(ctx, b, callback, h)

	// ===== New class dialog =====
	case data == common.CallbackNewClassStart:
		tutor.HandleNewClassStart(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CallbackNewClassDay):
		tutor.HandleNewClassDay(ctx, b, callback, h)
	case data == common.CallbackNewClassOnlineYes || data == common.CallbackNewClassOnlineNo:
		tutor.HandleNewClassOnline(ctx, b, callback, h)
	case data == common.CallbackNewClassGenerateYes || data == common.CallbackNewClassGenerateNo:
		tutor.HandleNewClassGenerate(ctx, b, callback, h)

	// ===== Sessions =====
	case strings.HasPrefix(data, common.CallbackSessionCancelConfirm):
		tutor.HandleSessionCancelConfirm(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CallbackSessionCancel):
		tutor.HandleSessionCancel(ctx, b, callback, h)

	// ===== Unknown Callback =====
	default:
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Неизвестная команда")
	}
}
