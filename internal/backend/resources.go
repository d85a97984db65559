package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Freeeeeet/tutor_desk/internal/lifecycle"
	"github.com/Freeeeeet/tutor_desk/internal/model"
	"go.uber.org/zap"
)

// ============ sessions ============

type SessionsAPI struct{ c *Client }

type SessionListParams struct {
	TutorID string
	Limit   int
}

// SessionPatch частичное обновление занятия
type SessionPatch struct {
	StartTime  *time.Time `json:"startTime,omitempty"`
	EndTime    *time.Time `json:"endTime,omitempty"`
	Status     string     `json:"status,omitempty"`
	StudentIDs []string   `json:"studentIds,omitempty"`
}

func (a *SessionsAPI) List(ctx context.Context, p SessionListParams) ([]model.Session, error) {
	q := url.Values{}
	if p.TutorID != "" {
		q.Set("tutorId", p.TutorID)
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}

	var raw []sessionDTO
	if err := a.c.do(ctx, http.MethodGet, "/sessions", q, nil, &raw); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	sessions := make([]model.Session, 0, len(raw))
	for i := range raw {
		if err := a.c.check(&raw[i]); err != nil {
			a.c.logger.Warn("Skipping malformed session", zap.String("session_id", raw[i].ID), zap.Error(err))
			continue
		}
		sessions = append(sessions, raw[i].toModel())
	}
	return sessions, nil
}

func (a *SessionsAPI) Get(ctx context.Context, id string) (*model.Session, error) {
	var raw sessionDTO
	if err := a.c.do(ctx, http.MethodGet, "/sessions/"+url.PathEscape(id), nil, nil, &raw); err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}
	if err := a.c.check(&raw); err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}
	s := raw.toModel()
	return &s, nil
}

func (a *SessionsAPI) Update(ctx context.Context, id string, patch SessionPatch) error {
	if err := a.c.do(ctx, http.MethodPatch, "/sessions/"+url.PathEscape(id), nil, patch, nil); err != nil {
		return fmt.Errorf("update session %s: %w", id, err)
	}
	return nil
}

func (a *SessionsAPI) Cancel(ctx context.Context, id, reason string) error {
	body := map[string]string{"reason": reason}
	if err := a.c.do(ctx, http.MethodPost, "/sessions/"+url.PathEscape(id)+"/cancel", nil, body, nil); err != nil {
		return fmt.Errorf("cancel session %s: %w", id, err)
	}
	return nil
}

// ============ users ============

type UsersAPI struct{ c *Client }

func (a *UsersAPI) Get(ctx context.Context, id string) (*model.User, error) {
	var raw userDTO
	if err := a.c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, nil, &raw); err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	if err := a.c.check(&raw); err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	u := raw.toModel()
	return &u, nil
}

// ============ classes ============

type ClassesAPI struct{ c *Client }

func (a *ClassesAPI) List(ctx context.Context, tutorID string) ([]model.ClassDefinition, error) {
	q := url.Values{}
	q.Set("tutorId", tutorID)

	var raw []classDTO
	if err := a.c.do(ctx, http.MethodGet, "/classes", q, nil, &raw); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}

	classes := make([]model.ClassDefinition, 0, len(raw))
	for i := range raw {
		if err := a.c.check(&raw[i]); err != nil {
			a.c.logger.Warn("Skipping malformed class", zap.String("class_id", raw[i].ID), zap.Error(err))
			continue
		}
		c, err := raw[i].toModel()
		if err != nil {
			a.c.logger.Warn("Skipping class with bad time range", zap.String("class_id", raw[i].ID), zap.Error(err))
			continue
		}
		classes = append(classes, c)
	}
	return classes, nil
}

func (a *ClassesAPI) Get(ctx context.Context, id string) (*model.ClassDefinition, error) {
	var raw classDTO
	if err := a.c.do(ctx, http.MethodGet, "/classes/"+url.PathEscape(id), nil, nil, &raw); err != nil {
		return nil, fmt.Errorf("get class %s: %w", id, err)
	}
	if err := a.c.check(&raw); err != nil {
		return nil, fmt.Errorf("get class %s: %w", id, err)
	}
	c, err := raw.toModel()
	if err != nil {
		return nil, fmt.Errorf("get class %s: %w: %v", id, ErrInvalidPayload, err)
	}
	return &c, nil
}

// Create создаёт класс и возвращает его в том виде, в каком сохранил бэкенд
func (a *ClassesAPI) Create(ctx context.Context, def *model.ClassDefinition) (*model.ClassDefinition, error) {
	body := classFromModel(def)
	if err := a.c.check(&body); err != nil {
		return nil, fmt.Errorf("create class: %w", err)
	}

	var raw classDTO
	if err := a.c.do(ctx, http.MethodPost, "/classes", nil, body, &raw); err != nil {
		return nil, fmt.Errorf("create class: %w", err)
	}
	if raw.ID == "" {
		// бэкенд может не вернуть тело
		created := *def
		return &created, nil
	}
	c, err := raw.toModel()
	if err != nil {
		return nil, fmt.Errorf("create class: %w: %v", ErrInvalidPayload, err)
	}
	return &c, nil
}

func (a *ClassesAPI) Delete(ctx context.Context, id string) error {
	if err := a.c.do(ctx, http.MethodDelete, "/classes/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete class %s: %w", id, err)
	}
	return nil
}

// GenerateSessions просит бэкенд создать занятия класса на весь семестр
func (a *ClassesAPI) GenerateSessions(ctx context.Context, id string) (int, error) {
	var out struct {
		Count    int           `json:"count"`
		Sessions []interface{} `json:"sessions"`
	}
	if err := a.c.do(ctx, http.MethodPost, "/classes/"+url.PathEscape(id)+"/generate-sessions", nil, nil, &out); err != nil {
		return 0, fmt.Errorf("generate sessions for class %s: %w", id, err)
	}
	if out.Count == 0 {
		out.Count = len(out.Sessions)
	}
	return out.Count, nil
}

// ============ availability ============

type AvailabilityAPI struct{ c *Client }

func (a *AvailabilityAPI) Get(ctx context.Context, tutorID string) (*model.Availability, error) {
	var raw availabilityDTO
	if err := a.c.do(ctx, http.MethodGet, "/availability/"+url.PathEscape(tutorID), nil, nil, &raw); err != nil {
		return nil, fmt.Errorf("get availability: %w", err)
	}
	if err := a.c.check(&raw); err != nil {
		return nil, fmt.Errorf("get availability: %w", err)
	}
	av, err := raw.toModel()
	if err != nil {
		return nil, fmt.Errorf("get availability: %w: %v", ErrInvalidPayload, err)
	}
	if av.TutorID == "" {
		av.TutorID = tutorID
	}
	return av, nil
}

// Set заменяет всю доступность учителя
func (a *AvailabilityAPI) Set(ctx context.Context, av *model.Availability) error {
	body := availabilityFromModel(av)
	if err := a.c.do(ctx, http.MethodPut, "/availability", nil, body, nil); err != nil {
		return fmt.Errorf("save availability: %w", err)
	}
	return nil
}

// ============ session requests ============

type SessionRequestsAPI struct{ c *Client }

type RequestListParams struct {
	Page   int
	Limit  int
	Type   model.RequestType
	Status model.RequestStatus
}

// RequestPage страница запросов
type RequestPage struct {
	Requests []model.SessionRequest
	Page     int
	Total    int
}

func (a *SessionRequestsAPI) List(ctx context.Context, p RequestListParams) (*RequestPage, error) {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Type != "" {
		q.Set("type", string(p.Type))
	}
	if p.Status != "" {
		q.Set("status", string(p.Status))
	}

	var raw struct {
		Requests   []sessionRequestDTO `json:"requests"`
		Pagination struct {
			Page  int `json:"page"`
			Total int `json:"total"`
		} `json:"pagination"`
	}
	if err := a.c.do(ctx, http.MethodGet, "/session-requests", q, nil, &raw); err != nil {
		return nil, fmt.Errorf("list session requests: %w", err)
	}

	page := &RequestPage{Page: raw.Pagination.Page, Total: raw.Pagination.Total}
	for i := range raw.Requests {
		if err := a.c.check(&raw.Requests[i]); err != nil {
			a.c.logger.Warn("Skipping malformed session request",
				zap.String("request_id", raw.Requests[i].ID), zap.Error(err))
			continue
		}
		page.Requests = append(page.Requests, raw.Requests[i].toModel())
	}
	if page.Total == 0 {
		page.Total = len(page.Requests)
	}
	return page, nil
}

func (a *SessionRequestsAPI) Approve(ctx context.Context, id string, body lifecycle.ApproveBody) error {
	if err := a.c.do(ctx, http.MethodPost, "/session-requests/"+url.PathEscape(id)+"/approve", nil, body, nil); err != nil {
		return fmt.Errorf("approve request %s: %w", id, err)
	}
	return nil
}

func (a *SessionRequestsAPI) Reject(ctx context.Context, id string, body lifecycle.RejectBody) error {
	if err := a.c.do(ctx, http.MethodPost, "/session-requests/"+url.PathEscape(id)+"/reject", nil, body, nil); err != nil {
		return fmt.Errorf("reject request %s: %w", id, err)
	}
	return nil
}

func (a *SessionRequestsAPI) Delete(ctx context.Context, id string) error {
	if err := a.c.do(ctx, http.MethodDelete, "/session-requests/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete request %s: %w", id, err)
	}
	return nil
}
