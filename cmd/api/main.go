package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/staffing-service/internal/api/http"
	"github.com/spec-kit/staffing-service/internal/api/http/handlers"
	"github.com/spec-kit/staffing-service/internal/auth"
	"github.com/spec-kit/staffing-service/internal/config"
	"github.com/spec-kit/staffing-service/internal/notify"
	"github.com/spec-kit/staffing-service/internal/observability"
	"github.com/spec-kit/staffing-service/internal/persistence"
	"github.com/spec-kit/staffing-service/internal/repository"
	"github.com/spec-kit/staffing-service/internal/service"
	"github.com/spec-kit/staffing-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	correctionRepo := repository.NewCorrectionRepository(pool)
	incidentRepo := repository.NewIncidentRepository(pool)
	invoiceRepo := repository.NewInvoiceRepository(pool)

	names := service.NewNameCache(redis.Client, userRepo)
	mailer := notify.NewMailer(cfg.Mailer, logger)
	dispatcher := notify.NewInMemoryDispatcher()

	notificationService := service.NewNotificationService(dispatcher, mailer, logger, cfg.Notify)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(cfg.Auth, userRepo)
	userService := service.NewUserService(service.UserDependencies{
		UserRepo:   userRepo,
		Names:      names,
		Dispatcher: dispatcher,
		Logger:     logger,
		BcryptCost: cfg.Auth.BcryptCost,
		BaseURL:    cfg.App.PublicBaseURL,
	})
	eventService := service.NewEventService(service.EventDependencies{
		EventRepo: eventRepo,
		UserRepo:  userRepo,
		Names:     names,
		Notifier:  notificationService,
		Logger:    logger,
		BaseURL:   cfg.App.PublicBaseURL,
	})
	correctionService := service.NewCorrectionService(service.CorrectionDependencies{
		CorrectionRepo: correctionRepo,
		IncidentRepo:   incidentRepo,
		EventRepo:      eventRepo,
		UserRepo:       userRepo,
		Dispatcher:     dispatcher,
		Logger:         logger,
	})
	invoiceService := service.NewInvoiceService(invoiceRepo, userRepo)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		Events:         handlers.NewEventsHandler(eventService),
		Corrections:    handlers.NewCorrectionsHandler(correctionService),
		Invoices:       handlers.NewInvoicesHandler(invoiceService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
