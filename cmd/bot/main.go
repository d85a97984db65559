package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/tutor_desk/internal/app"
	"github.com/Freeeeeet/tutor_desk/internal/backend"
	"github.com/Freeeeeet/tutor_desk/internal/config"
	"github.com/Freeeeeet/tutor_desk/internal/controller"
	"github.com/Freeeeeet/tutor_desk/internal/repository"
	"github.com/Freeeeeet/tutor_desk/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.IsProduction(), cfg.LogLevel)
	defer logger.Sync()

	logger.Sugar().Infow("Starting tutor desk bot",
		"environment", cfg.Environment,
		"api_base_url", cfg.APIBaseURL,
		"timezone", cfg.Timezone.String(),
		"env_file", cfg.EnvFileLoaded)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}
	logger.Info("Bot stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}
	logger.Info("✅ Database connected")

	if cfg.MigrationsEnabled {
		migrator, err := app.NewMigrator(pool, logger)
		if err != nil {
			return err
		}
		if err := migrator.Run(ctx); err != nil {
			migrator.Close()
			return err
		}
		migrator.Close()
	}

	client := backend.NewClient(cfg.APIBaseURL, backend.DefaultHTTPClient(cfg.APITimeout), logger)
	connect := service.HTTPConnector(client)

	identities := service.NewIdentityService(repository.NewIdentityRepository(pool), connect, logger)
	schedule := service.NewScheduleService(connect, logger)
	sessions := service.NewSessionService(connect, logger)
	requests := service.NewRequestService(connect, cfg.Timezone, logger)
	dashboard := service.NewDashboardService(sessions, requests, logger)

	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		return err
	}

	botController := controller.NewBotController(b, identities, schedule, sessions, requests, dashboard, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		return err
	}

	scheduler := app.NewScheduler(identities, requests, botController, cfg.DigestInterval, logger).
		WithDigestLog(repository.NewDigestRepository(pool))
	scheduler.Start(ctx)
	defer scheduler.Stop()

	return botController.Start(ctx)
}
