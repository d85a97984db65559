package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/tutor_desk/internal/backend"
	"github.com/Freeeeeet/tutor_desk/internal/model"
	"go.uber.org/zap"
)

// IdentityStore хранилище вошедших учителей
type IdentityStore interface {
	Save(ctx context.Context, identity *model.Identity) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.Identity, error)
	ListAll(ctx context.Context) ([]*model.Identity, error)
	Delete(ctx context.Context, telegramID int64) error
}

// IdentityService вход и выход учителя. Заменяет хранение пользователя в браузере.
type IdentityService struct {
	store   IdentityStore
	connect Connector
	logger  *zap.Logger
}

func NewIdentityService(store IdentityStore, connect Connector, logger *zap.Logger) *IdentityService {
	return &IdentityService{
		store:   store,
		connect: connect,
		logger:  logger,
	}
}

// SignIn проверяет учителя на маркетплейсе и запоминает привязку к Telegram
func (s *IdentityService) SignIn(ctx context.Context, telegramID, chatID int64, tutorID, token string) (*model.Identity, error) {
	tutorID = strings.TrimSpace(tutorID)
	if tutorID == "" {
		return nil, fmt.Errorf("tutor id is required")
	}

	identity := &model.Identity{
		TelegramID: telegramID,
		ChatID:     chatID,
		TutorID:    tutorID,
		APIToken:   strings.TrimSpace(token),
	}

	user, err := s.connect(identity).Users.Get(ctx, tutorID)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return nil, ErrUnknownTutor
		}
		return nil, fmt.Errorf("verify tutor: %w", err)
	}

	identity.DisplayName = user.DisplayName

	if err := s.store.Save(ctx, identity); err != nil {
		return nil, fmt.Errorf("save identity: %w", err)
	}

	s.logger.Info("Tutor signed in",
		zap.Int64("telegram_id", telegramID),
		zap.String("tutor_id", tutorID),
	)

	return identity, nil
}

// Current возвращает вошедшего учителя или ErrNotSignedIn
func (s *IdentityService) Current(ctx context.Context, telegramID int64) (*model.Identity, error) {
	identity, err := s.store.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("get identity: %w", err)
	}
	if identity == nil {
		return nil, ErrNotSignedIn
	}
	return identity, nil
}

// SignOut забывает привязку
func (s *IdentityService) SignOut(ctx context.Context, telegramID int64) error {
	if err := s.store.Delete(ctx, telegramID); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	s.logger.Info("Tutor signed out", zap.Int64("telegram_id", telegramID))
	return nil
}

// All все вошедшие учителя
func (s *IdentityService) All(ctx context.Context) ([]*model.Identity, error) {
	return s.store.ListAll(ctx)
}
