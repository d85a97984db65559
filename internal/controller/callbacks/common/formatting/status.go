package formatting

import "github.com/Freeeeeet/tutor_desk/internal/model"

// StatusDisplay emoji и текст статуса
type StatusDisplay struct {
	Emoji string
	Text  string
}

func (d StatusDisplay) String() string {
	return d.Emoji + " " + d.Text
}

var unknownStatus = StatusDisplay{"❓", "Неизвестно"}

// GetSessionStatusDisplay возвращает emoji и текст для статуса занятия
func GetSessionStatusDisplay(status model.SessionStatus) StatusDisplay {
	displays := map[model.SessionStatus]StatusDisplay{
		model.SessionStatusPending:   {"⏳", "Ожидает подтверждения"},
		model.SessionStatusConfirmed: {"✅", "Подтверждено"},
		model.SessionStatusCompleted: {"✔️", "Проведено"},
		model.SessionStatusCancelled: {"❌", "Отменено"},
	}

	if display, ok := displays[status]; ok {
		return display
	}
	return unknownStatus
}

// GetRequestStatusDisplay возвращает emoji и текст для статуса запроса
func GetRequestStatusDisplay(status model.RequestStatus) StatusDisplay {
	displays := map[model.RequestStatus]StatusDisplay{
		model.RequestStatusPending:  {"⏳", "Ожидает решения"},
		model.RequestStatusApproved: {"✅", "Одобрен"},
		model.RequestStatusRejected: {"🚫", "Отклонён"},
	}

	if display, ok := displays[status]; ok {
		return display
	}
	return unknownStatus
}

// GetRequestTypeDisplay тип запроса
func GetRequestTypeDisplay(t model.RequestType) StatusDisplay {
	switch t {
	case model.RequestTypeCancel:
		return StatusDisplay{"🛑", "Отмена"}
	case model.RequestTypeReschedule:
		return StatusDisplay{"🔁", "Перенос"}
	}
	return unknownStatus
}

// GetUrgencyDisplay срочность запроса
func GetUrgencyDisplay(u model.Urgency) StatusDisplay {
	switch u {
	case model.UrgencyHigh:
		return StatusDisplay{"🔴", "Срочно"}
	case model.UrgencyMedium:
		return StatusDisplay{"🟠", "Скоро"}
	case model.UrgencyLow:
		return StatusDisplay{"🟢", "Не срочно"}
	}
	return unknownStatus
}

// GetClassStatusDisplay статус класса
func GetClassStatusDisplay(status model.ClassStatus) StatusDisplay {
	displays := map[model.ClassStatus]StatusDisplay{
		model.ClassStatusActive: {"🟢", "Набор открыт"},
		model.ClassStatusFull:   {"🟡", "Мест нет"},
		model.ClassStatusClosed: {"⚫️", "Закрыт"},
	}

	if display, ok := displays[status]; ok {
		return display
	}
	return unknownStatus
}
