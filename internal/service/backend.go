package service

import (
	"context"
	"errors"

	"github.com/Freeeeeet/tutor_desk/internal/backend"
	"github.com/Freeeeeet/tutor_desk/internal/lifecycle"
	"github.com/Freeeeeet/tutor_desk/internal/model"
	"github.com/Freeeeeet/tutor_desk/internal/scheduling"
	"github.com/Freeeeeet/tutor_desk/internal/timerange"
)

var (
	ErrNotSignedIn     = errors.New("tutor is not signed in")
	ErrUnknownTutor    = errors.New("tutor not found on the marketplace")
	ErrRequestNotFound = errors.New("request not found")
	ErrMissingSubject  = errors.New("subject is required")
)

// IsInputError ошибки ввода учителя: диалог сохраняется и можно повторить
func IsInputError(err error) bool {
	var ve *scheduling.ValidationError
	return errors.As(err, &ve) ||
		errors.Is(err, timerange.ErrParse) ||
		errors.Is(err, timerange.ErrEmptyRange) ||
		errors.Is(err, lifecycle.ErrMissingDateTime) ||
		errors.Is(err, lifecycle.ErrInvalidDateTime) ||
		errors.Is(err, lifecycle.ErrAlternativeLoading) ||
		errors.Is(err, ErrMissingSubject)
}

type SessionAPI interface {
	List(ctx context.Context, p backend.SessionListParams) ([]model.Session, error)
	Get(ctx context.Context, id string) (*model.Session, error)
	Update(ctx context.Context, id string, patch backend.SessionPatch) error
	Cancel(ctx context.Context, id, reason string) error
}

type UserAPI interface {
	Get(ctx context.Context, id string) (*model.User, error)
}

type ClassAPI interface {
	List(ctx context.Context, tutorID string) ([]model.ClassDefinition, error)
	Get(ctx context.Context, id string) (*model.ClassDefinition, error)
	Create(ctx context.Context, def *model.ClassDefinition) (*model.ClassDefinition, error)
	Delete(ctx context.Context, id string) error
	GenerateSessions(ctx context.Context, id string) (int, error)
}

type AvailabilityAPI interface {
	Get(ctx context.Context, tutorID string) (*model.Availability, error)
	Set(ctx context.Context, av *model.Availability) error
}

type RequestAPI interface {
	List(ctx context.Context, p backend.RequestListParams) (*backend.RequestPage, error)
	Approve(ctx context.Context, id string, body lifecycle.ApproveBody) error
	Reject(ctx context.Context, id string, body lifecycle.RejectBody) error
	Delete(ctx context.Context, id string) error
}

// Backend API маркетплейса от имени конкретного учителя
type Backend struct {
	Sessions     SessionAPI
	Users        UserAPI
	Classes      ClassAPI
	Availability AvailabilityAPI
	Requests     RequestAPI
}

// Connector выдаёт Backend для вошедшего учителя
type Connector func(identity *model.Identity) Backend

// HTTPConnector Connector поверх HTTP-клиента: токен учителя подставляется в каждый запрос
func HTTPConnector(client *backend.Client) Connector {
	return func(identity *model.Identity) Backend {
		c := client
		if identity != nil && identity.APIToken != "" {
			c = client.WithToken(identity.APIToken)
		}
		return Backend{
			Sessions:     c.Sessions(),
			Users:        c.Users(),
			Classes:      c.Classes(),
			Availability: c.Availability(),
			Requests:     c.SessionRequests(),
		}
	}
}
