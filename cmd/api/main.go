package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/campus-it/lab-support/internal/api/http"
	"github.com/campus-it/lab-support/internal/api/http/handlers"
	"github.com/campus-it/lab-support/internal/auth"
	"github.com/campus-it/lab-support/internal/config"
	"github.com/campus-it/lab-support/internal/events"
	"github.com/campus-it/lab-support/internal/observability"
	"github.com/campus-it/lab-support/internal/persistence"
	"github.com/campus-it/lab-support/internal/repository"
	"github.com/campus-it/lab-support/internal/service"
	"github.com/campus-it/lab-support/internal/worker"
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
	labRepo := repository.NewLabRepository(pool)
	deviceRepo := repository.NewDeviceRepository(pool)
	reportRepo := repository.NewReportRepository(pool)
	requestRepo := repository.NewServiceRequestRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)

	sweepLock := persistence.NewSweepLock(redis, cfg.Maintenance.SweepLockTTL())
	var cooldown service.CooldownStore
	if cfg.Report.CooldownEnabled {
		cooldown = persistence.NewCooldownStore(redis)
	}

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	authService := service.NewAuthService(cfg.Auth, userRepo)
	deviceService := service.NewDeviceService(service.DeviceDependencies{
		DeviceRepo:     deviceRepo,
		LabRepo:        labRepo,
		ReportRepo:     reportRepo,
		IntervalMonths: cfg.Maintenance.IntervalMonths,
	})
	reportService := service.NewReportService(service.ReportDependencies{
		ReportRepo:       reportRepo,
		DeviceRepo:       deviceRepo,
		UserRepo:         userRepo,
		NotificationRepo: notificationRepo,
		Cooldown:         cooldown,
		CooldownTTL:      cfg.Report.Cooldown(),
		Dispatcher:       dispatcher,
	})
	maintenanceService := service.NewMaintenanceService(service.MaintenanceDependencies{
		DeviceRepo:       deviceRepo,
		ReportRepo:       reportRepo,
		UserRepo:         userRepo,
		NotificationRepo: notificationRepo,
		Lock:             sweepLock,
		Dispatcher:       dispatcher,
		Logger:           logger,
		IntervalMonths:   cfg.Maintenance.IntervalMonths,
	})
	requestService := service.NewRequestService(service.RequestDependencies{
		RequestRepo:      requestRepo,
		UserRepo:         userRepo,
		NotificationRepo: notificationRepo,
		Dispatcher:       dispatcher,
	})
	statsService := service.NewStatsService(service.StatsDependencies{
		DeviceRepo:       deviceRepo,
		LabRepo:          labRepo,
		ReportRepo:       reportRepo,
		UserRepo:         userRepo,
		NotificationRepo: notificationRepo,
	})
	notificationService := service.NewNotificationService(notificationRepo, dispatcher, logger, cfg.Notification)

	worker.StartNotificationWorker(notificationService, logger)
	if cfg.Maintenance.RunSweepWorker {
		worker.StartMaintenanceWorker(ctx, maintenanceService, logger, cfg.Maintenance.SweepTick())
	}

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		Faculty:        handlers.NewFacultyHandler(deviceService, reportService, requestService, statsService),
		Technical:      handlers.NewTechnicalHandler(deviceService, reportService, requestService, notificationService),
		Supervisor:     handlers.NewSupervisorHandler(reportService, requestService, maintenanceService, statsService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)
	cancel()

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
