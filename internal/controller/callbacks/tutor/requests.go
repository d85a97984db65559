package tutor

import (
	"context"

	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/tutor_desk/internal/controller/state"
	"github.com/Freeeeeet/tutor_desk/internal/lifecycle"
	"github.com/Freeeeeet/tutor_desk/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleRequestsPage показывает страницу списка запросов
func HandleRequestsPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	page, err := common.ParseIntFromCallback(callback.Data)
	if err != nil || page < 0 {
		h.Logger.Error("Failed to parse page", zap.String("data", callback.Data), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	common.WithTutor(ctx, b, callback, h, func(hc *common.HandlerContext) {
		showRequestsPage(hc, page)
		hc.Answer("")
	})
}

func showRequestsPage(hc *common.HandlerContext, page int) {
	h := hc.Handler
	list, err := h.Requests.List(hc.Ctx, hc.Identity, service.RequestFilter{
		Page:  page + 1,
		Limit: common.RequestsPerPage,
	})
	if err != nil {
		common.HandleError(hc, err, "list_requests")
		return
	}

	text, kb := common.BuildRequestsScreen(list, page, h.Requests.Location())
	if err := hc.EditMessage(text, kb); err != nil {
		h.Logger.Error("Failed to show requests", zap.Error(err))
	}
}

// HandleRequestView открывает карточку запроса
func HandleRequestView(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	requestID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithTutor(ctx, b, callback, h, func(hc *common.HandlerContext) {
		view, err := h.Requests.Find(hc.Ctx, hc.Identity, requestID)
		if err != nil {
			common.HandleError(hc, err, "view_request")
			return
		}

		text, kb := common.BuildRequestScreen(view, h.Requests.Location())
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show request", zap.String("request_id", requestID), zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleRequestApprove начинает диалог одобрения: сначала сообщение студенту
func HandleRequestApprove(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	requestID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithTutor(ctx, b, callback, h, func(hc *common.HandlerContext) {
		view, err := h.Requests.Find(hc.Ctx, hc.Identity, requestID)
		if err != nil {
			common.HandleError(hc, err, "approve_request")
			return
		}
		if !view.Request.IsPending() {
			hc.AnswerAlert(common.ErrorMessage(lifecycle.ErrNotPending))
			return
		}

		hc.ClearState()
		hc.SetData(state.KeyRequestID, requestID)
		hc.SetState(callbacktypes.UserState(state.StateApproveMessage))

		kb := keyboard.NewBuilder().
			Row(keyboard.Button("⏭ Без сообщения", common.CallbackRequestApproveNoMsg)).
			Build()
		if err := hc.SendMessage("✅ Одобрение запроса\n\n✉️ Напишите сообщение студенту или пропустите.\n\nДля отмены: /cancel", kb); err != nil {
			h.Logger.Error("Failed to send approve prompt", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleApproveNoMessage одобрение без сообщения студенту
func HandleApproveNoMessage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)
	if !h.StateManager.InState(hc.TelegramID, callbacktypes.UserState(state.StateApproveMessage)) {
		hc.AnswerAlert("⏱ Диалог устарел. Откройте запрос заново: /requests")
		return
	}

	hc.SetData(state.KeyResponseMessage, "")
	hc.Answer("")
	h.ContinueApproval(ctx, b, hc.ChatID, hc.TelegramID)
}

// HandleRequestReject начинает диалог отклонения
func HandleRequestReject(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	requestID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithTutor(ctx, b, callback, h, func(hc *common.HandlerContext) {
		view, err := h.Requests.Find(hc.Ctx, hc.Identity, requestID)
		if err != nil {
			common.HandleError(hc, err, "reject_request")
			return
		}
		if !view.Request.IsPending() {
			hc.AnswerAlert(common.ErrorMessage(lifecycle.ErrNotPending))
			return
		}

		hc.ClearState()
		hc.SetData(state.KeyRequestID, requestID)
		hc.SetState(callbacktypes.UserState(state.StateRejectMessage))

		kb := keyboard.NewBuilder().
			Row(keyboard.Button("⏭ Без сообщения", common.CallbackRequestRejectNoMsg)).
			Build()
		if err := hc.SendMessage("❌ Отклонение запроса\n\n✉️ Объясните студенту причину или пропустите.\n\nДля отмены: /cancel", kb); err != nil {
			h.Logger.Error("Failed to send reject prompt", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleRejectNoMessage отклонение без сообщения
func HandleRejectNoMessage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)
	if !h.StateManager.InState(hc.TelegramID, callbacktypes.UserState(state.StateRejectMessage)) {
		hc.AnswerAlert("⏱ Диалог устарел. Откройте запрос заново: /requests")
		return
	}

	hc.SetData(state.KeyResponseMessage, "")
	hc.Answer("")
	h.FinishReject(ctx, b, hc.ChatID, hc.TelegramID)
}

// HandleRequestDelete удаляет решённый запрос и возвращает к списку
func HandleRequestDelete(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	requestID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithTutor(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if err := h.Requests.Delete(hc.Ctx, hc.Identity, requestID); err != nil {
			common.HandleError(hc, err, "delete_request")
			return
		}
		showRequestsPage(hc, 0)
		common.LogAndAnswer(hc, "Request removed from list", "🗑 Запрос удалён")
	})
}
