package state

import "time"

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Создание класса
	StateNewClassDay      UserState = "new_class_day"
	StateNewClassTime     UserState = "new_class_time"
	StateNewClassSubject  UserState = "new_class_subject"
	StateNewClassCapacity UserState = "new_class_capacity"
	StateNewClassOnline   UserState = "new_class_online"
	StateNewClassLocation UserState = "new_class_location"
	StateNewClassGenerate UserState = "new_class_generate"

	// Окна доступности
	StateSetAvailability UserState = "set_availability"

	// Решение по запросу студента
	StateApproveMessage  UserState = "approve_message"
	StateApproveDateTime UserState = "approve_date_time"
	StateRejectMessage   UserState = "reject_message"
)

// Ключи временных данных диалога
const (
	KeyRequestID       = "request_id"
	KeyRequestView     = "request_view"
	KeyResponseMessage = "response_message"
	KeyClassDay        = "class_day"
	KeyClassStart      = "class_start"
	KeyClassEnd        = "class_end"
	KeyClassSubject    = "class_subject"
	KeyClassCapacity   = "class_capacity"
	KeyClassOnline     = "class_online"
	KeyClassLocation   = "class_location"
)

// DefaultTTL через сколько бездействия диалог забывается
const DefaultTTL = 30 * time.Minute

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State     UserState
	Data      map[string]interface{} // Временные данные для текущего диалога
	UpdatedAt time.Time
}
