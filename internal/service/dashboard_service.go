package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_desk/internal/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Dashboard сводка для главного экрана учителя
type Dashboard struct {
	UpcomingSessions int
	PendingRequests  int
	UrgentRequests   int
	NextSession      *model.Session
}

// DashboardService собирает сводку из занятий и запросов
type DashboardService struct {
	sessions *SessionService
	requests *RequestService
	logger   *zap.Logger
}

func NewDashboardService(sessions *SessionService, requests *RequestService, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		sessions: sessions,
		requests: requests,
		logger:   logger,
	}
}

// Get загружает занятия и ожидающие запросы параллельно
func (s *DashboardService) Get(ctx context.Context, identity *model.Identity) (*Dashboard, error) {
	var (
		upcoming []model.Session
		pending  *RequestList
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		upcoming, err = s.sessions.Upcoming(gctx, identity, 0)
		if err != nil {
			return fmt.Errorf("upcoming sessions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		pending, err = s.requests.List(gctx, identity, RequestFilter{Status: model.RequestStatusPending, Limit: 50})
		if err != nil {
			return fmt.Errorf("pending requests: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := &Dashboard{UpcomingSessions: len(upcoming)}
	if len(upcoming) > 0 {
		next := upcoming[0]
		d.NextSession = &next
	}
	for _, v := range pending.Views {
		if !v.Request.IsPending() {
			continue
		}
		d.PendingRequests++
		if v.Urgency == model.UrgencyHigh {
			d.UrgentRequests++
		}
	}
	if pending.Total > d.PendingRequests && len(pending.Views) == d.PendingRequests {
		d.PendingRequests = pending.Total
	}

	return d, nil
}
