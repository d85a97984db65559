package common

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// AnswerCallback отвечает на callback query (без alert)
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// AnswerCallbackAlert отвечает на callback query с alert (всплывающее окно)
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// GetMessageFromCallback извлекает сообщение из callback query
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}

// ParseIDFromCallback извлекает строковый ID из callback data
// Например: "req_approve:6512bd43" -> "6512bd43"
func ParseIDFromCallback(data string) (string, error) {
	_, id, ok := strings.Cut(data, ":")
	if !ok || id == "" || strings.Contains(id, ":") {
		return "", ErrInvalidFormat
	}
	return id, nil
}

// ParseIntFromCallback извлекает число из callback data: "req_page:2" -> 2
func ParseIntFromCallback(data string) (int, error) {
	raw, err := ParseIDFromCallback(data)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ErrInvalidFormat
	}
	return n, nil
}
