package callbacktypes

import (
	"context"

	"github.com/Freeeeeet/tutor_desk/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

// StateManager интерфейс для управления состоянием пользователей
type StateManager interface {
	ClearState(telegramID int64)
	GetState(telegramID int64) UserState
	InState(telegramID int64, states ...UserState) bool
	SetState(telegramID int64, state UserState)
	SetData(telegramID int64, key string, value interface{})
	GetData(telegramID int64, key string) (interface{}, bool)
	GetAllData(telegramID int64) map[string]interface{}
}

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	Identities *service.IdentityService
	Schedule   *service.ScheduleService
	Sessions   *service.SessionService
	Requests   *service.RequestService
	Dashboard  *service.DashboardService

	StateManager StateManager
	Logger       *zap.Logger

	// Функции-хэндлеры из основного контроллера
	HandleNewClass   func(ctx context.Context, b *bot.Bot, update *models.Update)
	ContinueApproval func(ctx context.Context, b *bot.Bot, chatID, telegramID int64)
	FinishReject     func(ctx context.Context, b *bot.Bot, chatID, telegramID int64)
	NewClassDayPick  func(ctx context.Context, b *bot.Bot, chatID, telegramID int64, day int)
	NewClassOnline   func(ctx context.Context, b *bot.Bot, chatID, telegramID int64, online bool)
	NewClassGenerate func(ctx context.Context, b *bot.Bot, chatID, telegramID int64, generate bool)
}
