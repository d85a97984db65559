package handlers

import (
	"time"

	"github.com/Freeeeeet/tutor_desk/internal/controller/state"
	"github.com/Freeeeeet/tutor_desk/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	identities   *service.IdentityService
	schedule     *service.ScheduleService
	sessions     *service.SessionService
	requests     *service.RequestService
	dashboard    *service.DashboardService
	stateManager *state.Manager
	logger       *zap.Logger
	now          func() time.Time
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	identities *service.IdentityService,
	schedule *service.ScheduleService,
	sessions *service.SessionService,
	requests *service.RequestService,
	dashboard *service.DashboardService,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		identities:   identities,
		schedule:     schedule,
		sessions:     sessions,
		requests:     requests,
		dashboard:    dashboard,
		stateManager: stateManager,
		logger:       logger,
		now:          time.Now,
	}
}

// location часовой пояс учителя для ввода и вывода времени
func (h *Handlers) location() *time.Location {
	return h.requests.Location()
}
