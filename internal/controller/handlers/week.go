package handlers

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks/common/formatting"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleWeek обрабатывает /week - картинка текущей недели: окна, классы, исключения
func (h *Handlers) HandleWeek(ctx context.Context, b *bot.Bot, update *models.Update) {
	identity, ok := h.requireTutor(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	overview, err := h.schedule.WeekOverview(ctx, identity)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "week_overview")
		return
	}

	now := h.now().In(h.location())
	imageData, err := common.GenerateWeekImage(now, now, common.WeekData{
		Availability: overview.Availability,
		Classes:      overview.Classes,
	})
	if err != nil {
		h.logger.Error("Failed to generate week image", zap.Error(err))
		h.sendHTML(ctx, b, chatID, formatting.FormatAvailability(overview.Availability), nil)
		return
	}

	caption := fmt.Sprintf("🗓 Неделя с %s · %d %s",
		formatting.FormatDate(now.AddDate(0, 0, -((int(now.Weekday())+6)%7))),
		len(overview.Classes), formatting.PluralizeClasses(len(overview.Classes)))

	_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:    chatID,
		Photo:     &models.InputFileUpload{Filename: "week.png", Data: bytes.NewReader(imageData)},
		Caption:   caption,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		h.logger.Error("Failed to send week image", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
