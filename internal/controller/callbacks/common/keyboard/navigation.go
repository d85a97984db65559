package keyboard

import (
	"time"

	"github.com/go-telegram/bot/models"
)

// BackToMainButton создаёт кнопку "В главное меню"
func BackToMainButton() models.InlineKeyboardButton {
	return Button("🏠 В главное меню", "back_to_main")
}

// CancelButton создаёт кнопку "Отмена"
func CancelButton(callbackData string) models.InlineKeyboardButton {
	return Button("❌ Отмена", callbackData)
}

// ConfirmButton создаёт кнопку "Подтвердить"
func ConfirmButton(callbackData string) models.InlineKeyboardButton {
	return Button("✅ Подтвердить", callbackData)
}

// YesNoButtons ряд с кнопками Да/Нет
func YesNoButtons(yesCallback, noCallback string) [][]models.InlineKeyboardButton {
	return [][]models.InlineKeyboardButton{
		{
			Button("✅ Да", yesCallback),
			Button("❌ Нет", noCallback),
		},
	}
}

// ConfirmCancelButtons ряд с кнопками Подтвердить/Отмена
func ConfirmCancelButtons(confirmCallback, cancelCallback string) [][]models.InlineKeyboardButton {
	return [][]models.InlineKeyboardButton{
		{
			ConfirmButton(confirmCallback),
			CancelButton(cancelCallback),
		},
	}
}

// WeekdayButtons кнопки дней недели Пн..Вс; callback = prefix + номер time.Weekday
func WeekdayButtons(prefix string, label func(time.Weekday) string) []models.InlineKeyboardButton {
	order := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	buttons := make([]models.InlineKeyboardButton, 0, len(order))
	for _, d := range order {
		buttons = append(buttons, Button(label(d), prefix+string(rune('0'+int(d)))))
	}
	return buttons
}

// AddBackToMainButton добавляет ряд с кнопкой "В главное меню"
func (b *Builder) AddBackToMainButton() *Builder {
	return b.Row(BackToMainButton())
}
