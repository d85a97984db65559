package app

import (
	"context"
	"sync"
	"time"

	"github.com/Freeeeeet/tutor_desk/internal/model"
	"go.uber.org/zap"
)

// IdentityLister все вошедшие учителя
type IdentityLister interface {
	All(ctx context.Context) ([]*model.Identity, error)
}

// UrgentRequests срочные ожидающие запросы учителя
type UrgentRequests interface {
	Urgent(ctx context.Context, identity *model.Identity) ([]model.RequestView, error)
}

// DigestLog помнит, какие запросы уже были в рассылке
type DigestLog interface {
	Seen(ctx context.Context, tutorID string, requestIDs []string) (map[string]bool, error)
	Mark(ctx context.Context, tutorID string, requestIDs []string) error
	Prune(ctx context.Context, before time.Time) (int64, error)
}

// Notifier доставляет сводку учителю
type Notifier interface {
	NotifyUrgent(ctx context.Context, identity *model.Identity, views []model.RequestView) error
}

// digestRetention сколько хранить отметки о рассылке
const digestRetention = 14 * 24 * time.Hour

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	identities IdentityLister
	requests   UrgentRequests
	notifier   Notifier
	digestLog  DigestLog
	interval   time.Duration
	logger     *zap.Logger
	now        func() time.Time
	stopChan   chan struct{}
	stopOnce   sync.Once
}

// NewScheduler создаёт новый планировщик; отметки о рассылке по умолчанию в памяти
func NewScheduler(identities IdentityLister, requests UrgentRequests, notifier Notifier, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		identities: identities,
		requests:   requests,
		notifier:   notifier,
		digestLog:  newMemoryDigestLog(time.Now),
		interval:   interval,
		logger:     logger,
		now:        time.Now,
		stopChan:   make(chan struct{}),
	}
}

// WithDigestLog хранит отметки о рассылке во внешнем хранилище
func (s *Scheduler) WithDigestLog(log DigestLog) *Scheduler {
	s.digestLog = log
	return s
}

// Start запускает фоновые задачи. interval <= 0 отключает дайджест.
func (s *Scheduler) Start(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Info("Urgent digest disabled")
		return
	}
	s.logger.Info("Starting background scheduler", zap.Duration("interval", s.interval))

	go s.runDigestTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
}

func (s *Scheduler) runDigestTask(ctx context.Context) {
	// Первый запуск сразу при старте
	s.RunDigest(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.RunDigest(ctx)
		case <-s.stopChan:
			s.logger.Info("Digest task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Digest task cancelled")
			return
		}
	}
}

// RunDigest один проход: каждому учителю уходят только новые срочные запросы
func (s *Scheduler) RunDigest(ctx context.Context) {
	if pruned, err := s.digestLog.Prune(ctx, s.now().Add(-digestRetention)); err != nil {
		s.logger.Warn("Failed to prune digest log", zap.Error(err))
	} else if pruned > 0 {
		s.logger.Debug("Digest log pruned", zap.Int64("rows", pruned))
	}

	identities, err := s.identities.All(ctx)
	if err != nil {
		s.logger.Error("Failed to list identities", zap.Error(err))
		return
	}

	sent := 0
	for _, identity := range identities {
		log := TutorLogger(s.logger, identity)

		views, err := s.requests.Urgent(ctx, identity)
		if err != nil {
			log.Warn("Failed to load urgent requests", zap.Error(err))
			continue
		}

		fresh, err := s.filterFresh(ctx, identity.TutorID, views)
		if err != nil {
			log.Warn("Failed to read digest log", zap.Error(err))
			continue
		}
		if len(fresh) == 0 {
			continue
		}

		if err := s.notifier.NotifyUrgent(ctx, identity, fresh); err != nil {
			log.Warn("Failed to send digest", zap.Error(err))
			continue
		}
		if err := s.digestLog.Mark(ctx, identity.TutorID, requestIDs(fresh)); err != nil {
			log.Warn("Failed to mark digest as sent", zap.Error(err))
		}
		sent++
	}

	s.logger.Info("Urgent digest completed",
		zap.Int("tutors", len(identities)),
		zap.Int("sent", sent))
}

func (s *Scheduler) filterFresh(ctx context.Context, tutorID string, views []model.RequestView) ([]model.RequestView, error) {
	if len(views) == 0 {
		return nil, nil
	}
	seen, err := s.digestLog.Seen(ctx, tutorID, requestIDs(views))
	if err != nil {
		return nil, err
	}

	var fresh []model.RequestView
	for _, v := range views {
		if !seen[v.Request.ID] {
			fresh = append(fresh, v)
		}
	}
	return fresh, nil
}

func requestIDs(views []model.RequestView) []string {
	ids := make([]string, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.Request.ID)
	}
	return ids
}

// memoryDigestLog DigestLog в памяти процесса; теряется при перезапуске
type memoryDigestLog struct {
	mu   sync.Mutex
	now  func() time.Time
	seen map[string]map[string]time.Time
}

func newMemoryDigestLog(now func() time.Time) *memoryDigestLog {
	return &memoryDigestLog{now: now, seen: make(map[string]map[string]time.Time)}
}

func (m *memoryDigestLog) Seen(_ context.Context, tutorID string, requestIDs []string) (map[string]bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]bool, len(requestIDs))
	for _, id := range requestIDs {
		if _, ok := m.seen[tutorID][id]; ok {
			out[id] = true
		}
	}
	return out, nil
}

func (m *memoryDigestLog) Mark(_ context.Context, tutorID string, requestIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	byTutor, ok := m.seen[tutorID]
	if !ok {
		byTutor = make(map[string]time.Time)
		m.seen[tutorID] = byTutor
	}
	now := m.now()
	for _, id := range requestIDs {
		if _, exists := byTutor[id]; !exists {
			byTutor[id] = now
		}
	}
	return nil
}

func (m *memoryDigestLog) Prune(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for tutorID, byTutor := range m.seen {
		for id, at := range byTutor {
			if at.Before(before) {
				delete(byTutor, id)
				n++
			}
		}
		if len(byTutor) == 0 {
			delete(m.seen, tutorID)
		}
	}
	return n, nil
}
