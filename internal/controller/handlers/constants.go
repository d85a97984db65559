package handlers

// Ограничения ввода в диалогах
const (
	// Предмет класса
	SubjectMaxLength = 100

	// Место проведения
	LocationMaxLength = 200

	// Ответ студенту
	ResponseMessageMaxLength = 1000

	// Вместимость класса
	MaxClassCapacity = 50

	// Семестр по умолчанию для нового класса (в неделях)
	DefaultSemesterWeeks = 16
)

// DateTimeLayout формат, в котором учитель вводит новое время переноса
const DateTimeLayout = "2006-01-02 15:04"
