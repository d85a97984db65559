package controller

import (
	"context"
	"time"

	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks"
	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/tutor_desk/internal/controller/handlers"
	"github.com/Freeeeeet/tutor_desk/internal/controller/state"
	"github.com/Freeeeeet/tutor_desk/internal/model"
	"github.com/Freeeeeet/tutor_desk/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// stateSweepInterval как часто забываются брошенные диалоги
const stateSweepInterval = 5 * time.Minute

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	stateManager    *state.Manager
	location        *time.Location
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	identities *service.IdentityService,
	schedule *service.ScheduleService,
	sessions *service.SessionService,
	requests *service.RequestService,
	dashboard *service.DashboardService,
	logger *zap.Logger,
) *BotController {
	stateManager := state.NewManager()

	cmdHandlers := handlers.NewHandlers(
		identities,
		schedule,
		sessions,
		requests,
		dashboard,
		stateManager,
		logger,
	)

	callbackHandler := callbacks.NewHandler(&callbacktypes.Handler{
		Identities:       identities,
		Schedule:         schedule,
		Sessions:         sessions,
		Requests:         requests,
		Dashboard:        dashboard,
		StateManager:     state.NewAdapter(stateManager),
		Logger:           logger,
		HandleNewClass:   cmdHandlers.HandleNewClass,
		ContinueApproval: cmdHandlers.ContinueApproval,
		FinishReject:     cmdHandlers.FinishReject,
		NewClassDayPick:  cmdHandlers.NewClassDayPick,
		NewClassOnline:   cmdHandlers.NewClassOnline,
		NewClassGenerate: cmdHandlers.NewClassGenerate,
	})

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		stateManager:    stateManager,
		location:        requests.Location(),
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/login", bot.MatchTypePrefix, c.handlers.HandleLogin)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/logout", bot.MatchTypeExact, c.handlers.HandleLogout)

	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/dashboard", bot.MatchTypeExact, c.handlers.HandleDashboard)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/requests", bot.MatchTypeExact, c.handlers.HandleRequests)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/sessions", bot.MatchTypeExact, c.handlers.HandleSessions)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/classes", bot.MatchTypeExact, c.handlers.HandleClasses)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/newclass", bot.MatchTypeExact, c.handlers.HandleNewClass)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/availability", bot.MatchTypeExact, c.handlers.HandleAvailability)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/setavailability", bot.MatchTypeExact, c.handlers.HandleSetAvailabilityStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/week", bot.MatchTypeExact, c.handlers.HandleWeek)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу"},
		{Command: "dashboard", Description: "📊 Сводка"},
		{Command: "requests", Description: "📨 Запросы студентов"},
		{Command: "sessions", Description: "📅 Ближайшие занятия"},
		{Command: "classes", Description: "🏫 Мои классы"},
		{Command: "newclass", Description: "➕ Создать класс"},
		{Command: "availability", Description: "🕐 Окна доступности"},
		{Command: "setavailability", Description: "✏️ Задать окна доступности"},
		{Command: "week", Description: "🗓 Расписание на неделю"},
		{Command: "login", Description: "🔐 Войти"},
		{Command: "logout", Description: "🚪 Выйти"},
		{Command: "help", Description: "❓ Справка по командам"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// NotifyUrgent отправляет учителю сводку срочных запросов
func (c *BotController) NotifyUrgent(ctx context.Context, identity *model.Identity, views []model.RequestView) error {
	if len(views) == 0 || identity.ChatID == 0 {
		return nil
	}

	_, err := c.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    identity.ChatID,
		Text:      formatting.FormatUrgentDigest(views, c.location),
		ParseMode: models.ParseModeHTML,
	})
	return err
}

// Start запускает бота; блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	go c.sweepStates(ctx)
	c.bot.Start(ctx)
	return nil
}

func (c *BotController) sweepStates(ctx context.Context) {
	ticker := time.NewTicker(stateSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := c.stateManager.Sweep(); n > 0 {
				c.logger.Debug("Expired dialogs removed", zap.Int("count", n))
			}
		}
	}
}
