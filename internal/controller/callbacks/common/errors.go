package common

import (
	"errors"
	"strings"

	"github.com/Freeeeeet/tutor_desk/internal/backend"
	"github.com/Freeeeeet/tutor_desk/internal/lifecycle"
	"github.com/Freeeeeet/tutor_desk/internal/scheduling"
	"github.com/Freeeeeet/tutor_desk/internal/service"
	"github.com/Freeeeeet/tutor_desk/internal/timerange"
)

// Общие ошибки для обработчиков
var (
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки.
// Ответ бэкенда показывается учителю как есть.
func ErrorMessage(err error) string {
	var (
		ve     *scheduling.ValidationError
		apiErr *backend.APIError
	)

	switch {
	case errors.Is(err, service.ErrNotSignedIn):
		return "🔐 Сначала войдите: /login <tutor_id> [token]"
	case errors.Is(err, service.ErrUnknownTutor):
		return "❌ Учитель с таким ID не найден"
	case errors.Is(err, backend.ErrUnauthorized):
		return "🔐 Доступ отклонён. Войдите заново: /login"
	case errors.As(err, &ve):
		return "❌ " + ve.Message
	case errors.Is(err, service.ErrRequestNotFound):
		return "❌ Запрос не найден"
	case errors.Is(err, service.ErrMissingSubject):
		return "❌ Укажите предмет"
	case errors.Is(err, lifecycle.ErrMissingDateTime):
		return "📅 Укажите новую дату и время в формате YYYY-MM-DD HH:MM"
	case errors.Is(err, lifecycle.ErrInvalidDateTime):
		return "❌ Неверная дата или время. Формат: YYYY-MM-DD HH:MM"
	case errors.Is(err, lifecycle.ErrAlternativeLoading):
		return "⏳ Альтернативное занятие ещё загружается. Попробуйте чуть позже."
	case errors.Is(err, lifecycle.ErrNotPending):
		return "ℹ️ По этому запросу уже принято решение"
	case errors.Is(err, lifecycle.ErrNotTerminal):
		return "❌ Удалить можно только одобренный или отклонённый запрос"
	case errors.Is(err, timerange.ErrEmptyRange):
		return "❌ Конец должен быть позже начала"
	case errors.Is(err, timerange.ErrParse):
		return "❌ Неверное время. Формат: HH:MM"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	case errors.As(err, &apiErr):
		msg := strings.TrimSpace(apiErr.Message)
		if msg == "" {
			return "❌ Сервер вернул ошибку"
		}
		return "❌ " + msg
	default:
		return "❌ Произошла ошибка. Попробуйте позже."
	}
}

// IsMessageNotModifiedError telegram отвечает так, если текст и клавиатура не изменились
func IsMessageNotModifiedError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
