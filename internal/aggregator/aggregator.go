package aggregator

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Freeeeeet/tutor_desk/internal/lifecycle"
	"github.com/Freeeeeet/tutor_desk/internal/model"
	"github.com/Freeeeeet/tutor_desk/internal/scheduling"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

type SessionSource interface {
	Get(ctx context.Context, id string) (*model.Session, error)
}

type UserSource interface {
	Get(ctx context.Context, id string) (*model.User, error)
}

type ClassSource interface {
	Get(ctx context.Context, id string) (*model.ClassDefinition, error)
}

// Отметки о подменённых данных в RequestView.Anomalies
const (
	AnomalyCreatedAt    = "created_at_missing"
	AnomalySessionStart = "session_start_missing"
	AnomalyStudent      = "student_unresolved"
	AnomalySession      = "session_unresolved"
	AnomalyAlternative  = "alternative_unresolved"
	AnomalyClass        = "class_unresolved"
)

const defaultMaxConcurrent = 8

// Aggregator собирает денормализованные записи запросов.
// Ошибки отдельных подзапросов не валят сборку: поле получает плейсхолдер, ошибка пишется в лог.
type Aggregator struct {
	sessions SessionSource
	users    UserSource
	classes  ClassSource
	logger   *zap.Logger
	now      func() time.Time
	limit    int
}

func New(sessions SessionSource, users UserSource, classes ClassSource, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		sessions: sessions,
		users:    users,
		classes:  classes,
		logger:   logger,
		now:      time.Now,
		limit:    defaultMaxConcurrent,
	}
}

// WithClock подменяет источник текущего времени
func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	a.now = now
	return a
}

// WithConcurrency ограничивает число одновременно собираемых запросов
func (a *Aggregator) WithConcurrency(n int) *Aggregator {
	if n > 0 {
		a.limit = n
	}
	return a
}

// Build собирает записи для списка запросов. Порядок: сначала срочные, внутри одной срочности старые раньше.
func (a *Aggregator) Build(ctx context.Context, requests []model.SessionRequest) []model.RequestView {
	views := make([]model.RequestView, len(requests))
	names := &nameCache{values: make(map[string]string)}

	var g errgroup.Group
	g.SetLimit(a.limit)
	for i := range requests {
		i := i
		g.Go(func() error {
			views[i] = a.buildOne(ctx, requests[i], names)
			return nil
		})
	}
	_ = g.Wait()

	sort.SliceStable(views, func(i, j int) bool {
		ri, rj := views[i].Urgency.Rank(), views[j].Urgency.Rank()
		if ri != rj {
			return ri < rj
		}
		return views[i].Request.CreatedAt.Before(views[j].Request.CreatedAt)
	})
	return views
}

// BuildOne собирает одну запись
func (a *Aggregator) BuildOne(ctx context.Context, req model.SessionRequest) model.RequestView {
	return a.buildOne(ctx, req, &nameCache{values: make(map[string]string)})
}

func (a *Aggregator) buildOne(ctx context.Context, req model.SessionRequest, names *nameCache) model.RequestView {
	view := model.RequestView{Request: req}
	log := a.logger.With(zap.String("request_id", req.ID))

	var (
		mu          sync.Mutex
		studentName string
	)
	flag := func(anomaly string) {
		mu.Lock()
		view.Anomalies = append(view.Anomalies, anomaly)
		mu.Unlock()
	}

	// Все подзапросы независимы и выполняются параллельно
	var g errgroup.Group
	g.Go(func() error {
		name, err := names.get(ctx, a.users, req.StudentID)
		if err != nil || name == "" {
			log.Warn("Failed to resolve student", zap.String("student_id", req.StudentID), zap.Error(err))
			flag(AnomalyStudent)
			name = model.UnknownStudent
		}
		studentName = name
		return nil
	})
	if req.SessionID != "" {
		g.Go(func() error {
			s, err := a.sessions.Get(ctx, req.SessionID)
			if err != nil {
				log.Warn("Failed to load session", zap.String("session_id", req.SessionID), zap.Error(err))
				flag(AnomalySession)
				return nil
			}
			view.Session = s
			return nil
		})
	}
	if req.AlternativeSessionID != "" {
		g.Go(func() error {
			s, err := a.sessions.Get(ctx, req.AlternativeSessionID)
			if err != nil {
				log.Warn("Failed to load alternative session",
					zap.String("session_id", req.AlternativeSessionID), zap.Error(err))
				flag(AnomalyAlternative)
				return nil
			}
			view.AlternativeSession = s
			return nil
		})
	}
	if req.ClassID != "" {
		g.Go(func() error {
			c, err := a.classes.Get(ctx, req.ClassID)
			if err != nil {
				log.Warn("Failed to load class", zap.String("class_id", req.ClassID), zap.Error(err))
				flag(AnomalyClass)
				return nil
			}
			view.Class = c
			return nil
		})
	}
	_ = g.Wait()

	// Класс можно узнать только из загруженного занятия
	if view.Class == nil && req.ClassID == "" && view.Session != nil && view.Session.ClassID != "" {
		c, err := a.classes.Get(ctx, view.Session.ClassID)
		if err != nil {
			log.Warn("Failed to load class of session", zap.String("class_id", view.Session.ClassID), zap.Error(err))
			view.Anomalies = append(view.Anomalies, AnomalyClass)
		} else {
			view.Class = c
		}
	}

	view.StudentName = studentName
	view.Subject = pickSubject(&view)

	now := a.now()
	if view.Request.CreatedAt.IsZero() {
		log.Warn("Request has no creation time, using now")
		view.Request.CreatedAt = now
		view.Anomalies = append(view.Anomalies, AnomalyCreatedAt)
	}

	view.OriginalStart, view.OriginalEnd = originalTimes(&view)
	if view.OriginalStart.IsZero() {
		log.Warn("Session start unknown, using now")
		view.OriginalStart = now
		view.Anomalies = append(view.Anomalies, AnomalySessionStart)
	}

	view.Urgency = lifecycle.ClassifyUrgency(view.Request.CreatedAt, view.OriginalStart)
	sort.Strings(view.Anomalies)
	return view
}

// originalTimes время исходного занятия: из занятия, иначе встреча класса, ближайшая к моменту
// создания запроса, иначе пожелание студента. От текущего времени не зависит.
func originalTimes(view *model.RequestView) (time.Time, time.Time) {
	if s := view.Session; s != nil && !s.StartTime.IsZero() {
		return s.StartTime, s.EndTime
	}
	if c := view.Class; c != nil {
		start := scheduling.NextOccurrence(c.Day, c.Range.Start, view.Request.CreatedAt)
		end := start.Add(time.Duration(c.Range.End-c.Range.Start) * time.Minute)
		return start, end
	}
	req := &view.Request
	if req.PreferredStartTime != nil {
		var end time.Time
		if req.PreferredEndTime != nil {
			end = *req.PreferredEndTime
		}
		return *req.PreferredStartTime, end
	}
	return time.Time{}, time.Time{}
}

func pickSubject(view *model.RequestView) string {
	switch {
	case view.Session != nil && view.Session.Subject != "":
		return view.Session.Subject
	case view.Class != nil && view.Class.Subject != "":
		return view.Class.Subject
	case view.AlternativeSession != nil && view.AlternativeSession.Subject != "":
		return view.AlternativeSession.Subject
	}
	return model.UnknownSubject
}

// nameCache имена студентов в рамках одной сборки; одинаковые запросы схлопываются
type nameCache struct {
	group  singleflight.Group
	mu     sync.Mutex
	values map[string]string
}

func (c *nameCache) get(ctx context.Context, users UserSource, id string) (string, error) {
	if id == "" {
		return "", nil
	}
	c.mu.Lock()
	if name, ok := c.values[id]; ok {
		c.mu.Unlock()
		return name, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(id, func() (interface{}, error) {
		u, err := users.Get(ctx, id)
		if err != nil {
			return "", err
		}
		c.mu.Lock()
		c.values[id] = u.DisplayName
		c.mu.Unlock()
		return u.DisplayName, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
