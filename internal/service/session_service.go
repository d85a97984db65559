package service

import (
	"context"
	"sort"
	"time"

	"github.com/Freeeeeet/tutor_desk/internal/backend"
	"github.com/Freeeeeet/tutor_desk/internal/model"
	"go.uber.org/zap"
)

// SessionService занятия учителя
type SessionService struct {
	connect Connector
	logger  *zap.Logger
	now     func() time.Time
}

func NewSessionService(connect Connector, logger *zap.Logger) *SessionService {
	return &SessionService{
		connect: connect,
		logger:  logger,
		now:     time.Now,
	}
}

// WithClock подменяет часы (для тестов)
func (s *SessionService) WithClock(now func() time.Time) *SessionService {
	s.now = now
	return s
}

// Upcoming будущие активные занятия по возрастанию времени начала
func (s *SessionService) Upcoming(ctx context.Context, identity *model.Identity, limit int) ([]model.Session, error) {
	sessions, err := s.connect(identity).Sessions.List(ctx, backend.SessionListParams{
		TutorID: identity.TutorID,
		Limit:   limit,
	})
	if err != nil {
		return nil, err
	}

	now := s.now()
	upcoming := make([]model.Session, 0, len(sessions))
	for _, sess := range sessions {
		if !sess.IsActive() || sess.StartTime.IsZero() {
			continue
		}
		end := sess.EndTime
		if end.IsZero() {
			end = sess.StartTime
		}
		if end.Before(now) {
			continue
		}
		upcoming = append(upcoming, sess)
	}

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].StartTime.Before(upcoming[j].StartTime)
	})
	return upcoming, nil
}

// Cancel отменяет занятие целиком
func (s *SessionService) Cancel(ctx context.Context, identity *model.Identity, sessionID, reason string) error {
	if err := s.connect(identity).Sessions.Cancel(ctx, sessionID, reason); err != nil {
		s.logger.Error("Failed to cancel session",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return err
	}

	s.logger.Info("Session cancelled",
		zap.String("tutor_id", identity.TutorID),
		zap.String("session_id", sessionID))
	return nil
}
