package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_desk/internal/aggregator"
	"github.com/Freeeeeet/tutor_desk/internal/backend"
	"github.com/Freeeeeet/tutor_desk/internal/lifecycle"
	"github.com/Freeeeeet/tutor_desk/internal/model"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 20
	findPageSize    = 50
)

// RequestFilter фильтр списка запросов
type RequestFilter struct {
	Page   int
	Limit  int
	Type   model.RequestType
	Status model.RequestStatus
}

// RequestList страница собранных запросов
type RequestList struct {
	Views []model.RequestView
	Page  int
	Total int
}

// RequestService запросы студентов на отмену и перенос
type RequestService struct {
	connect  Connector
	logger   *zap.Logger
	location *time.Location
	now      func() time.Time
}

func NewRequestService(connect Connector, location *time.Location, logger *zap.Logger) *RequestService {
	if location == nil {
		location = time.UTC
	}
	return &RequestService{
		connect:  connect,
		logger:   logger,
		location: location,
		now:      time.Now,
	}
}

// WithClock подменяет часы (для тестов)
func (s *RequestService) WithClock(now func() time.Time) *RequestService {
	s.now = now
	return s
}

// Location часовой пояс, в котором учитель вводит дату и время
func (s *RequestService) Location() *time.Location {
	return s.location
}

func (s *RequestService) aggregator(api Backend) *aggregator.Aggregator {
	return aggregator.New(api.Sessions, api.Users, api.Classes, s.logger).WithClock(s.now)
}

// List загружает страницу запросов и дополняет их данными занятий и студентов
func (s *RequestService) List(ctx context.Context, identity *model.Identity, filter RequestFilter) (*RequestList, error) {
	api := s.connect(identity)

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	page, err := api.Requests.List(ctx, backend.RequestListParams{
		Page:   filter.Page,
		Limit:  limit,
		Type:   filter.Type,
		Status: filter.Status,
	})
	if err != nil {
		return nil, err
	}

	views := s.aggregator(api).Build(ctx, page.Requests)

	s.logger.Debug("Requests loaded",
		zap.String("tutor_id", identity.TutorID),
		zap.Int("count", len(views)),
		zap.Int("total", page.Total),
	)

	return &RequestList{
		Views: views,
		Page:  page.Page,
		Total: page.Total,
	}, nil
}

// Find ищет запрос по id, листая страницы списка
func (s *RequestService) Find(ctx context.Context, identity *model.Identity, requestID string) (*model.RequestView, error) {
	api := s.connect(identity)

	// Отдельного GET по id у API нет, поэтому листаем до конца списка
	seen := 0
	for pageNo := 1; ; pageNo++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := api.Requests.List(ctx, backend.RequestListParams{Page: pageNo, Limit: findPageSize})
		if err != nil {
			return nil, err
		}
		for _, req := range page.Requests {
			if req.ID == requestID {
				view := s.aggregator(api).BuildOne(ctx, req)
				return &view, nil
			}
		}
		seen += len(page.Requests)
		if len(page.Requests) < findPageSize || seen >= page.Total {
			return nil, ErrRequestNotFound
		}
	}
}

// Approve одобряет запрос. Бэкенд меняется только после того, как план построен.
func (s *RequestService) Approve(ctx context.Context, identity *model.Identity, requestID string, in lifecycle.ApprovalInput) (*lifecycle.ApprovalPlan, error) {
	view, err := s.Find(ctx, identity, requestID)
	if err != nil {
		return nil, err
	}
	return s.ApproveView(ctx, identity, view, in)
}

// ApproveView как Approve, но по уже собранной записи (например, найденной на предыдущем шаге диалога)
func (s *RequestService) ApproveView(ctx context.Context, identity *model.Identity, view *model.RequestView, in lifecycle.ApprovalInput) (*lifecycle.ApprovalPlan, error) {
	requestID := view.Request.ID
	if err := lifecycle.CheckTransition(view.Request.Status, model.RequestStatusApproved); err != nil {
		return nil, err
	}

	if in.Location == nil {
		in.Location = s.location
	}
	plan, err := lifecycle.ComputeApprovalPlan(view, in)
	if err != nil {
		return nil, err
	}

	if err := s.connect(identity).Requests.Approve(ctx, plan.RequestID, plan.ApproveBody()); err != nil {
		s.logger.Error("Failed to approve request",
			zap.String("request_id", requestID),
			zap.String("plan", string(plan.Kind)),
			zap.Error(err))
		return nil, err
	}

	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.String("plan", string(plan.Kind)),
		zap.String("session_id", plan.SessionID),
	}
	if plan.NewStart != nil {
		fields = append(fields, zap.Time("new_start", *plan.NewStart))
	}
	if plan.AlternativeSessionID != "" {
		fields = append(fields, zap.String("alternative_session_id", plan.AlternativeSessionID))
	}
	s.logger.Info("Request approved", fields...)

	return plan, nil
}

// Reject отклоняет запрос с сообщением учителя
func (s *RequestService) Reject(ctx context.Context, identity *model.Identity, requestID, message string) error {
	view, err := s.Find(ctx, identity, requestID)
	if err != nil {
		return err
	}
	if err := lifecycle.CheckTransition(view.Request.Status, model.RequestStatusRejected); err != nil {
		return err
	}

	plan := lifecycle.ComputeRejectionPlan(&view.Request, message)
	if err := s.connect(identity).Requests.Reject(ctx, plan.RequestID, plan.RejectBody()); err != nil {
		s.logger.Error("Failed to reject request",
			zap.String("request_id", requestID),
			zap.Error(err))
		return err
	}

	s.logger.Info("Request rejected", zap.String("request_id", requestID))
	return nil
}

// Delete убирает решённый запрос из списка
func (s *RequestService) Delete(ctx context.Context, identity *model.Identity, requestID string) error {
	view, err := s.Find(ctx, identity, requestID)
	if err != nil {
		return err
	}

	plan, err := lifecycle.ComputeDeletePlan(&view.Request)
	if err != nil {
		return err
	}

	if err := s.connect(identity).Requests.Delete(ctx, plan.RequestID); err != nil {
		s.logger.Error("Failed to delete request",
			zap.String("request_id", requestID),
			zap.Error(err))
		return err
	}

	s.logger.Info("Request deleted", zap.String("request_id", requestID))
	return nil
}

// Urgent ожидающие запросы с высокой срочностью
func (s *RequestService) Urgent(ctx context.Context, identity *model.Identity) ([]model.RequestView, error) {
	list, err := s.List(ctx, identity, RequestFilter{Status: model.RequestStatusPending, Limit: 50})
	if err != nil {
		return nil, fmt.Errorf("list pending: %w", err)
	}

	var urgent []model.RequestView
	for _, v := range list.Views {
		if v.Request.IsPending() && v.Urgency == model.UrgencyHigh {
			urgent = append(urgent, v)
		}
	}
	return urgent, nil
}
