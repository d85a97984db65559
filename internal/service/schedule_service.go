package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/tutor_desk/internal/model"
	"github.com/Freeeeeet/tutor_desk/internal/scheduling"
	"github.com/Freeeeeet/tutor_desk/internal/timerange"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ScheduleService доступность и классы учителя
type ScheduleService struct {
	connect Connector
	logger  *zap.Logger
}

func NewScheduleService(connect Connector, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{
		connect: connect,
		logger:  logger,
	}
}

// GetAvailability получает окна доступности учителя
func (s *ScheduleService) GetAvailability(ctx context.Context, identity *model.Identity) (*model.Availability, error) {
	return s.connect(identity).Availability.Get(ctx, identity.TutorID)
}

// SaveAvailability заменяет окна доступности целиком
func (s *ScheduleService) SaveAvailability(ctx context.Context, identity *model.Identity, slots []model.AvailabilitySlot, exceptions []model.AvailabilityException) error {
	if err := scheduling.ValidateAvailability(slots); err != nil {
		return err
	}

	sorted := make([]model.AvailabilitySlot, len(slots))
	copy(sorted, slots)
	model.SortSlots(sorted)

	av := &model.Availability{
		TutorID:    identity.TutorID,
		Slots:      sorted,
		Exceptions: exceptions,
	}

	if err := s.connect(identity).Availability.Set(ctx, av); err != nil {
		s.logger.Error("Failed to save availability",
			zap.String("tutor_id", identity.TutorID),
			zap.Error(err))
		return err
	}

	s.logger.Info("Availability saved",
		zap.String("tutor_id", identity.TutorID),
		zap.Int("slots", len(sorted)),
		zap.Int("exceptions", len(exceptions)),
	)

	return nil
}

// ListClasses все классы учителя
func (s *ScheduleService) ListClasses(ctx context.Context, identity *model.Identity) ([]model.ClassDefinition, error) {
	return s.connect(identity).Classes.List(ctx, identity.TutorID)
}

// ClassDraft то, что учитель заполнил при создании класса
type ClassDraft struct {
	Day              time.Weekday
	Start            *timerange.TimeOfDay
	End              *timerange.TimeOfDay
	Subject          string
	MaxStudents      int
	IsOnline         bool
	Location         string
	SemesterStart    time.Time
	SemesterEnd      time.Time
	GenerateSessions bool
}

// CreatedClass результат создания класса
type CreatedClass struct {
	Class             *model.ClassDefinition
	GeneratedSessions int
	// GenerateErr ошибка генерации занятий; сам класс при этом уже создан
	GenerateErr error
}

// CreateClass проверяет время по свежим данным и создаёт класс.
// Проверка клиентская: две одновременные попытки могут пройти обе, окончательно решает бэкенд.
func (s *ScheduleService) CreateClass(ctx context.Context, identity *model.Identity, draft ClassDraft) (*CreatedClass, error) {
	if strings.TrimSpace(draft.Subject) == "" {
		return nil, ErrMissingSubject
	}

	api := s.connect(identity)

	var (
		av      *model.Availability
		classes []model.ClassDefinition
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		av, err = api.Availability.Get(gctx, identity.TutorID)
		if err != nil {
			return fmt.Errorf("get availability: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		classes, err = api.Classes.List(gctx, identity.TutorID)
		if err != nil {
			return fmt.Errorf("list classes: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slot := selectSlot(av, draft)
	proposed := scheduling.ClassTime{Day: draft.Day, Start: draft.Start, End: draft.End}
	if err := scheduling.ValidateClassTime(proposed, slot, classes); err != nil {
		s.logger.Info("Class time rejected",
			zap.String("tutor_id", identity.TutorID),
			zap.Error(err))
		return nil, err
	}

	maxStudents := draft.MaxStudents
	if maxStudents <= 0 {
		maxStudents = 1
	}

	def := &model.ClassDefinition{
		Code:          scheduling.NextClassCode(classes),
		TutorID:       identity.TutorID,
		Subject:       strings.TrimSpace(draft.Subject),
		Day:           draft.Day,
		Range:         timerange.Range{Start: *draft.Start, End: *draft.End},
		MaxStudents:   maxStudents,
		IsOnline:      draft.IsOnline,
		Location:      strings.TrimSpace(draft.Location),
		SemesterStart: draft.SemesterStart,
		SemesterEnd:   draft.SemesterEnd,
		Status:        model.ClassStatusActive,
	}

	created, err := api.Classes.Create(ctx, def)
	if err != nil {
		s.logger.Error("Failed to create class",
			zap.String("tutor_id", identity.TutorID),
			zap.String("code", def.Code),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Class created",
		zap.String("tutor_id", identity.TutorID),
		zap.String("class_id", created.ID),
		zap.String("code", created.Code),
		zap.String("range", created.Range.String()),
	)

	result := &CreatedClass{Class: created}
	if draft.GenerateSessions && created.ID != "" {
		n, err := api.Classes.GenerateSessions(ctx, created.ID)
		if err != nil {
			s.logger.Warn("Failed to generate sessions",
				zap.String("class_id", created.ID),
				zap.Error(err))
			result.GenerateErr = err
		}
		result.GeneratedSessions = n
	}

	return result, nil
}

// CheckClassTime проверяет время будущего класса без создания; CreateClass проверит ещё раз
func (s *ScheduleService) CheckClassTime(ctx context.Context, identity *model.Identity, draft ClassDraft) error {
	overview, err := s.WeekOverview(ctx, identity)
	if err != nil {
		return err
	}
	proposed := scheduling.ClassTime{Day: draft.Day, Start: draft.Start, End: draft.End}
	return scheduling.ValidateClassTime(proposed, selectSlot(overview.Availability, draft), overview.Classes)
}

// selectSlot окно, в которое попадает черновик; иначе первое окно дня, чтобы назвать его границы в ошибке
func selectSlot(av *model.Availability, draft ClassDraft) *model.AvailabilitySlot {
	if draft.Start != nil && draft.End != nil {
		if slot := scheduling.FindSlot(av, draft.Day, timerange.Range{Start: *draft.Start, End: *draft.End}); slot != nil {
			return slot
		}
	}
	day := scheduling.SlotsForDay(av, draft.Day)
	if len(day) == 0 {
		return nil
	}
	return &day[0]
}

// GetClass один класс учителя
func (s *ScheduleService) GetClass(ctx context.Context, identity *model.Identity, classID string) (*model.ClassDefinition, error) {
	return s.connect(identity).Classes.Get(ctx, classID)
}

// DeleteClass удаляет класс
func (s *ScheduleService) DeleteClass(ctx context.Context, identity *model.Identity, classID string) error {
	if err := s.connect(identity).Classes.Delete(ctx, classID); err != nil {
		return err
	}
	s.logger.Info("Class deleted",
		zap.String("tutor_id", identity.TutorID),
		zap.String("class_id", classID))
	return nil
}

// GenerateSessions создаёт занятия класса на семестр
func (s *ScheduleService) GenerateSessions(ctx context.Context, identity *model.Identity, classID string) (int, error) {
	n, err := s.connect(identity).Classes.GenerateSessions(ctx, classID)
	if err != nil {
		return 0, err
	}
	s.logger.Info("Sessions generated",
		zap.String("class_id", classID),
		zap.Int("count", n))
	return n, nil
}

// WeekOverview доступность и классы для недельной картинки
type WeekOverview struct {
	Availability *model.Availability
	Classes      []model.ClassDefinition
}

func (s *ScheduleService) WeekOverview(ctx context.Context, identity *model.Identity) (*WeekOverview, error) {
	api := s.connect(identity)
	out := &WeekOverview{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		av, err := api.Availability.Get(gctx, identity.TutorID)
		if err != nil {
			return fmt.Errorf("get availability: %w", err)
		}
		out.Availability = av
		return nil
	})
	g.Go(func() error {
		classes, err := api.Classes.List(gctx, identity.TutorID)
		if err != nil {
			return fmt.Errorf("list classes: %w", err)
		}
		out.Classes = classes
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
