package model

import "time"

// Identity вошедший в бота учитель: связка Telegram-аккаунта с учителем на маркетплейсе
type Identity struct {
	ID          int64     `json:"id"`
	TelegramID  int64     `json:"telegram_id"`
	ChatID      int64     `json:"chat_id"`
	TutorID     string    `json:"tutor_id"`
	DisplayName string    `json:"display_name"`
	APIToken    string    `json:"-"`
	SignedInAt  time.Time `json:"signed_in_at"`
}

// User пользователь маркетплейса (студент или учитель)
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}
