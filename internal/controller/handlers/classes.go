package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/tutor_desk/internal/controller/state"
	"github.com/Freeeeeet/tutor_desk/internal/scheduling"
	"github.com/Freeeeeet/tutor_desk/internal/service"
	"github.com/Freeeeeet/tutor_desk/internal/timerange"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleClasses обрабатывает /classes
func (h *Handlers) HandleClasses(ctx context.Context, b *bot.Bot, update *models.Update) {
	identity, ok := h.requireTutor(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	classes, err := h.schedule.ListClasses(ctx, identity)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "list_classes")
		return
	}

	text, kb := common.BuildClassesScreen(classes)
	h.sendHTML(ctx, b, chatID, text, kb)
}

// HandleNewClass начинает диалог создания класса
func (h *Handlers) HandleNewClass(ctx context.Context, b *bot.Bot, update *models.Update) {
	identity, ok := h.requireTutor(ctx, b, update)
	if !ok {
		return
	}

	telegramID := update.Message.From.ID
	h.logger.Info("Starting class creation",
		zap.Int64("telegram_id", telegramID),
		zap.String("tutor_id", identity.TutorID))

	h.stateManager.ClearState(telegramID)
	h.stateManager.SetState(telegramID, state.StateNewClassDay)

	kb := keyboard.NewBuilder().
		Grid(4, keyboard.WeekdayButtons(common.CallbackNewClassDay, formatting.GetWeekdayShortName)...).
		Build()
	h.sendHTML(ctx, b, update.Message.Chat.ID,
		"🏫 Создание класса\n\n"+
			"Шаг 1 из 6: Выберите день недели\n\n"+
			"Для отмены используйте /cancel", kb)
}

// NewClassDayPick день выбран кнопкой; показываем окна этого дня
func (h *Handlers) NewClassDayPick(ctx context.Context, b *bot.Bot, chatID, telegramID int64, day int) {
	identity, ok := h.requireTutorByID(ctx, b, chatID, telegramID)
	if !ok {
		h.stateManager.ClearState(telegramID)
		return
	}

	weekday := time.Weekday(day)
	overview, err := h.schedule.WeekOverview(ctx, identity)
	if err != nil {
		h.stateManager.ClearState(telegramID)
		h.replyError(ctx, b, chatID, err, "new_class_day")
		return
	}

	slots := scheduling.SlotsForDay(overview.Availability, weekday)
	if len(slots) == 0 {
		h.sendError(ctx, b, chatID, fmt.Sprintf(
			"❌ На %s нет окон доступности.\n\nВыберите другой день или задайте окна: /setavailability",
			strings.ToLower(formatting.GetWeekdayName(weekday))))
		return
	}

	h.stateManager.SetData(telegramID, state.KeyClassDay, day)
	h.stateManager.SetState(telegramID, state.StateNewClassTime)

	var sb strings.Builder
	fmt.Fprintf(&sb, "✅ День: %s\n\n🕐 Окна:", formatting.GetWeekdayName(weekday))
	for _, s := range slots {
		sb.WriteString(" " + s.Range.String())
	}
	for _, c := range scheduling.ClassesForDay(overview.Classes, weekday) {
		fmt.Fprintf(&sb, "\n🏫 Занято: %s (%s)", c.Range, c.Code)
	}
	sb.WriteString("\n\nШаг 2 из 6: Введите время класса в формате HH:MM-HH:MM\nНапример: 10:00-11:30")
	h.sendMessage(ctx, b, chatID, sb.String())
}

func (h *Handlers) classDraft(telegramID int64) service.ClassDraft {
	data := h.stateManager.GetAllData(telegramID)
	draft := service.ClassDraft{
		Subject:  h.stateManager.GetString(telegramID, state.KeyClassSubject),
		Location: h.stateManager.GetString(telegramID, state.KeyClassLocation),
	}
	if day, ok := data[state.KeyClassDay].(int); ok {
		draft.Day = time.Weekday(day)
	}
	if start, ok := data[state.KeyClassStart].(timerange.TimeOfDay); ok {
		draft.Start = &start
	}
	if end, ok := data[state.KeyClassEnd].(timerange.TimeOfDay); ok {
		draft.End = &end
	}
	if n, ok := data[state.KeyClassCapacity].(int); ok {
		draft.MaxStudents = n
	}
	if online, ok := data[state.KeyClassOnline].(bool); ok {
		draft.IsOnline = online
	}
	return draft
}

// handleNewClassTimeStep ввод времени; проверяется сразу по окнам и классам
func (h *Handlers) handleNewClassTimeStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID

	r, err := timerange.ParseRange(update.Message.Text)
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Неверный формат. Введите время как HH:MM-HH:MM:")
		return
	}

	identity, ok := h.requireTutorByID(ctx, b, chatID, telegramID)
	if !ok {
		h.stateManager.ClearState(telegramID)
		return
	}

	draft := h.classDraft(telegramID)
	draft.Start, draft.End = &r.Start, &r.End
	if err := h.schedule.CheckClassTime(ctx, identity, draft); err != nil {
		if service.IsInputError(err) {
			h.sendError(ctx, b, chatID, common.ErrorMessage(err)+"\n\nВведите другое время:")
			return
		}
		h.stepFailed(ctx, b, chatID, telegramID, err, "check_class_time")
		return
	}

	h.stateManager.SetData(telegramID, state.KeyClassStart, r.Start)
	h.stateManager.SetData(telegramID, state.KeyClassEnd, r.End)
	h.stateManager.SetState(telegramID, state.StateNewClassSubject)

	h.sendMessage(ctx, b, chatID, fmt.Sprintf("✅ Время: %s\n\nШаг 3 из 6: Какой предмет?\n\nНапример: Physics, Математика", r))
}

func (h *Handlers) handleNewClassSubjectStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID
	subject := strings.TrimSpace(update.Message.Text)

	if subject == "" {
		h.sendError(ctx, b, chatID, common.ErrorMessage(service.ErrMissingSubject))
		return
	}
	if utf8.RuneCountInString(subject) > SubjectMaxLength {
		h.sendError(ctx, b, chatID,
			fmt.Sprintf("❌ Название слишком длинное. Максимум %d символов.\n\nПопробуйте ещё раз:", SubjectMaxLength))
		return
	}

	h.stateManager.SetData(telegramID, state.KeyClassSubject, subject)
	h.stateManager.SetState(telegramID, state.StateNewClassCapacity)

	h.sendMessage(ctx, b, chatID, fmt.Sprintf("✅ Предмет: %s\n\nШаг 4 из 6: Сколько студентов максимум? (1-%d)", subject, MaxClassCapacity))
}

func (h *Handlers) handleNewClassCapacityStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID

	n, err := parseCapacity(update.Message.Text)
	if err != nil {
		h.sendError(ctx, b, chatID, fmt.Sprintf("❌ Введите число от 1 до %d:", MaxClassCapacity))
		return
	}

	h.stateManager.SetData(telegramID, state.KeyClassCapacity, n)
	h.stateManager.SetState(telegramID, state.StateNewClassOnline)

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("🌐 Онлайн", common.CallbackNewClassOnlineYes),
			keyboard.Button("📍 Очно", common.CallbackNewClassOnlineNo),
		).
		Build()
	h.sendHTML(ctx, b, chatID, fmt.Sprintf("✅ Мест: %d\n\nШаг 5 из 6: Как проходят занятия?", n), kb)
}

// NewClassOnline онлайн или очно выбрано кнопкой
func (h *Handlers) NewClassOnline(ctx context.Context, b *bot.Bot, chatID, telegramID int64, online bool) {
	h.stateManager.SetData(telegramID, state.KeyClassOnline, online)

	if !online {
		h.stateManager.SetState(telegramID, state.StateNewClassLocation)
		h.sendMessage(ctx, b, chatID, "📍 Где проходят занятия? Укажите адрес или аудиторию:")
		return
	}

	h.askGenerate(ctx, b, chatID, telegramID)
}

func (h *Handlers) handleNewClassLocationStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID
	location := strings.TrimSpace(update.Message.Text)

	if location == "" || utf8.RuneCountInString(location) > LocationMaxLength {
		h.sendError(ctx, b, chatID, fmt.Sprintf("❌ Укажите место, до %d символов:", LocationMaxLength))
		return
	}

	h.stateManager.SetData(telegramID, state.KeyClassLocation, location)
	h.askGenerate(ctx, b, chatID, telegramID)
}

func (h *Handlers) askGenerate(ctx context.Context, b *bot.Bot, chatID, telegramID int64) {
	h.stateManager.SetState(telegramID, state.StateNewClassGenerate)

	kb := keyboard.NewBuilder()
	for _, row := range keyboard.YesNoButtons(common.CallbackNewClassGenerateYes, common.CallbackNewClassGenerateNo) {
		kb.Row(row...)
	}
	h.sendHTML(ctx, b, chatID,
		fmt.Sprintf("Шаг 6 из 6: Создать занятия на семестр (%d недель) сразу?", DefaultSemesterWeeks), kb.Build())
}

// NewClassGenerate последний шаг: создаём класс
func (h *Handlers) NewClassGenerate(ctx context.Context, b *bot.Bot, chatID, telegramID int64, generate bool) {
	identity, ok := h.requireTutorByID(ctx, b, chatID, telegramID)
	if !ok {
		h.stateManager.ClearState(telegramID)
		return
	}

	draft := h.classDraft(telegramID)
	draft.GenerateSessions = generate
	draft.SemesterStart, draft.SemesterEnd = semester(h.now().In(h.location()))

	created, err := h.schedule.CreateClass(ctx, identity, draft)
	if err != nil {
		var ve *scheduling.ValidationError
		if errors.As(err, &ve) {
			// время успело стать занятым; возвращаемся к шагу времени
			h.stateManager.SetState(telegramID, state.StateNewClassTime)
			h.sendError(ctx, b, chatID, common.ErrorMessage(err)+"\n\nВведите другое время HH:MM-HH:MM:")
			return
		}
		h.stepFailed(ctx, b, chatID, telegramID, err, "create_class")
		return
	}
	h.stateManager.ClearState(telegramID)

	text := "✅ Класс создан!\n\n" + formatting.FormatClassInfo(created.Class)
	switch {
	case created.GenerateErr != nil:
		text += "\n\n⚠️ Занятия создать не удалось: " + formatting.Escape(common.ErrorMessage(created.GenerateErr))
	case generate:
		text += fmt.Sprintf("\n\n📅 Создано %d %s", created.GeneratedSessions, formatting.PluralizeSessions(created.GeneratedSessions))
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🏫 Мои классы", common.CallbackClassesList)).
		Build()
	h.sendHTML(ctx, b, chatID, text, kb)
}

// semester с сегодняшнего дня на DefaultSemesterWeeks недель
func semester(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, DefaultSemesterWeeks*7)
}
