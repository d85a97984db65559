package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/tutor_desk/internal/controller/state"
	"github.com/Freeeeeet/tutor_desk/internal/lifecycle"
	"github.com/Freeeeeet/tutor_desk/internal/model"
	"github.com/Freeeeeet/tutor_desk/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleRequests обрабатывает /requests - первая страница запросов
func (h *Handlers) HandleRequests(ctx context.Context, b *bot.Bot, update *models.Update) {
	identity, ok := h.requireTutor(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	list, err := h.requests.List(ctx, identity, service.RequestFilter{Page: 1, Limit: common.RequestsPerPage})
	if err != nil {
		h.replyError(ctx, b, chatID, err, "list_requests")
		return
	}

	text, kb := common.BuildRequestsScreen(list, 0, h.location())
	h.sendHTML(ctx, b, chatID, text, kb)
}

// handleApproveMessageStep сообщение студенту при одобрении
func (h *Handlers) handleApproveMessageStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	message := strings.TrimSpace(update.Message.Text)

	if utf8.RuneCountInString(message) > ResponseMessageMaxLength {
		h.sendError(ctx, b, update.Message.Chat.ID,
			fmt.Sprintf("❌ Сообщение слишком длинное. Максимум %d символов.\n\nПопробуйте ещё раз:", ResponseMessageMaxLength))
		return
	}

	h.stateManager.SetData(telegramID, state.KeyResponseMessage, message)
	h.ContinueApproval(ctx, b, update.Message.Chat.ID, telegramID)
}

// ContinueApproval решает, нужно ли спросить новое время, и одобряет запрос
func (h *Handlers) ContinueApproval(ctx context.Context, b *bot.Bot, chatID, telegramID int64) {
	identity, ok := h.requireTutorByID(ctx, b, chatID, telegramID)
	if !ok {
		h.stateManager.ClearState(telegramID)
		return
	}

	requestID := h.stateManager.GetString(telegramID, state.KeyRequestID)
	view, err := h.requests.Find(ctx, identity, requestID)
	if err != nil {
		h.stepFailed(ctx, b, chatID, telegramID, err, "approve_request")
		return
	}
	h.stateManager.SetData(telegramID, state.KeyRequestView, view)

	if needsNewTime(&view.Request) {
		h.stateManager.SetState(telegramID, state.StateApproveDateTime)
		h.sendMessage(ctx, b, chatID,
			"📅 Студент не предложил время.\n\n"+
				"Введите новую дату и время занятия в формате YYYY-MM-DD HH:MM\n"+
				"Например: 2025-03-20 15:30\n\n"+
				"Для отмены используйте /cancel")
		return
	}

	h.commitApproval(ctx, b, chatID, telegramID, identity, "", "")
}

// needsNewTime перенос без выбранной альтернативы и без желаемого времени
func needsNewTime(req *model.SessionRequest) bool {
	return req.Type == model.RequestTypeReschedule &&
		!req.IsClassReschedule() &&
		req.PreferredStartTime == nil
}

// handleApproveDateTimeStep ввод нового времени переноса
func (h *Handlers) handleApproveDateTimeStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID

	date, clock, err := parseDateTime(update.Message.Text)
	if err != nil {
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	identity, ok := h.requireTutorByID(ctx, b, chatID, telegramID)
	if !ok {
		h.stateManager.ClearState(telegramID)
		return
	}
	h.commitApproval(ctx, b, chatID, telegramID, identity, date, clock)
}

func (h *Handlers) commitApproval(ctx context.Context, b *bot.Bot, chatID, telegramID int64, identity *model.Identity, date, clock string) {
	requestID := h.stateManager.GetString(telegramID, state.KeyRequestID)
	in := lifecycle.ApprovalInput{
		ResponseMessage: h.stateManager.GetString(telegramID, state.KeyResponseMessage),
		Date:            date,
		Time:            clock,
		Location:        h.location(),
	}

	var (
		plan *lifecycle.ApprovalPlan
		err  error
	)
	if view := h.foundRequest(telegramID, requestID); view != nil {
		plan, err = h.requests.ApproveView(ctx, identity, view, in)
	} else {
		plan, err = h.requests.Approve(ctx, identity, requestID, in)
	}
	if err != nil {
		h.stepFailed(ctx, b, chatID, telegramID, err, "approve_request")
		return
	}

	h.stateManager.ClearState(telegramID)
	h.logger.Info("Request approved from bot",
		zap.Int64("telegram_id", telegramID),
		zap.String("request_id", requestID),
		zap.String("plan", string(plan.Kind)))

	h.sendHTML(ctx, b, chatID, describePlan(plan, h.location())+"\n\nК запросам: /requests", nil)
}

// foundRequest запись, собранная на шаге ContinueApproval, если она про тот же запрос
func (h *Handlers) foundRequest(telegramID int64, requestID string) *model.RequestView {
	v, _ := h.stateManager.GetData(telegramID, state.KeyRequestView)
	view, ok := v.(*model.RequestView)
	if !ok || view == nil || view.Request.ID != requestID {
		return nil
	}
	return view
}

// describePlan текст подтверждения для учителя
func describePlan(plan *lifecycle.ApprovalPlan, loc *time.Location) string {
	switch plan.Kind {
	case lifecycle.PlanCancel:
		return "✅ Запрос одобрен. Занятие отменено."
	case lifecycle.PlanMoveToAlternative:
		return "✅ Запрос одобрен. Студент переведён в выбранное занятие класса."
	case lifecycle.PlanReschedule:
		if plan.NewStart != nil && plan.NewEnd != nil {
			return fmt.Sprintf("✅ Запрос одобрен. Занятие перенесено на %s (%s).",
				formatting.FormatTimeRange(plan.NewStart.In(loc), plan.NewEnd.In(loc)), loc)
		}
		return "✅ Запрос одобрен. Занятие перенесено."
	default:
		return "✅ Запрос одобрен."
	}
}

// handleRejectMessageStep причина отклонения
func (h *Handlers) handleRejectMessageStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	message := strings.TrimSpace(update.Message.Text)

	if utf8.RuneCountInString(message) > ResponseMessageMaxLength {
		h.sendError(ctx, b, update.Message.Chat.ID,
			fmt.Sprintf("❌ Сообщение слишком длинное. Максимум %d символов.\n\nПопробуйте ещё раз:", ResponseMessageMaxLength))
		return
	}

	h.stateManager.SetData(telegramID, state.KeyResponseMessage, message)
	h.FinishReject(ctx, b, update.Message.Chat.ID, telegramID)
}

// FinishReject отклоняет запрос с сохранённым сообщением
func (h *Handlers) FinishReject(ctx context.Context, b *bot.Bot, chatID, telegramID int64) {
	identity, ok := h.requireTutorByID(ctx, b, chatID, telegramID)
	if !ok {
		h.stateManager.ClearState(telegramID)
		return
	}

	requestID := h.stateManager.GetString(telegramID, state.KeyRequestID)
	message := h.stateManager.GetString(telegramID, state.KeyResponseMessage)

	if err := h.requests.Reject(ctx, identity, requestID, message); err != nil {
		h.stepFailed(ctx, b, chatID, telegramID, err, "reject_request")
		return
	}
	h.stateManager.ClearState(telegramID)

	h.logger.Info("Request rejected from bot",
		zap.Int64("telegram_id", telegramID),
		zap.String("request_id", requestID))
	h.sendMessage(ctx, b, chatID, "❌ Запрос отклонён.\n\nК запросам: /requests")
}
