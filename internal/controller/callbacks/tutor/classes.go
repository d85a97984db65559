package tutor

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks/common/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleClassesList возвращает к списку классов
func HandleClassesList(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithTutor(ctx, b, callback, h, func(hc *common.HandlerContext) {
		showClasses(hc)
		hc.Answer("")
	})
}

func showClasses(hc *common.HandlerContext) {
	h := hc.Handler
	classes, err := h.Schedule.ListClasses(hc.Ctx, hc.Identity)
	if err != nil {
		common.HandleError(hc, err, "list_classes")
		return
	}
	text, kb := common.BuildClassesScreen(classes)
	if err := hc.EditMessage(text, kb); err != nil {
		h.Logger.Error("Failed to show classes", zap.Error(err))
	}
}

// HandleClassView карточка класса
func HandleClassView(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	classID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithTutor(ctx, b, callback, h, func(hc *common.HandlerContext) {
		class, err := h.Schedule.GetClass(hc.Ctx, hc.Identity, classID)
		if err != nil {
			common.HandleError(hc, err, "view_class")
			return
		}
		text, kb := common.BuildClassScreen(class)
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show class", zap.String("class_id", classID), zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleClassDelete спрашивает подтверждение удаления
func HandleClassDelete(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	classID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithTutor(ctx, b, callback, h, func(hc *common.HandlerContext) {
		kb := keyboard.NewBuilder()
		for _, row := range keyboard.ConfirmCancelButtons(common.CallbackClassDeleteConfirm+classID, common.CallbackClassView+classID) {
			kb.Row(row...)
		}
		if err := hc.EditMessage("⚠️ Удалить класс? Созданные занятия останутся в расписании.", kb.Build()); err != nil {
			h.Logger.Error("Failed to show delete confirmation", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleClassDeleteConfirm удаляет класс
func HandleClassDeleteConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	classID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithTutor(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if err := h.Schedule.DeleteClass(hc.Ctx, hc.Identity, classID); err != nil {
			common.HandleError(hc, err, "delete_class")
			return
		}
		showClasses(hc)
		common.LogAndAnswer(hc, "Class deleted from bot", "🗑 Класс удалён")
	})
}

// HandleClassGenerate создаёт занятия класса на семестр
func HandleClassGenerate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	classID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithTutor(ctx, b, callback, h, func(hc *common.HandlerContext) {
		n, err := h.Schedule.GenerateSessions(hc.Ctx, hc.Identity, classID)
		if err != nil {
			common.HandleError(hc, err, "generate_sessions")
			return
		}
		hc.AnswerAlert(fmt.Sprintf("📅 Создано %d %s", n, formatting.PluralizeSessions(n)))
	})
}
