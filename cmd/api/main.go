package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/helpdesk-analytics/internal/api/http"
	"github.com/spec-kit/helpdesk-analytics/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-analytics/internal/auth"
	"github.com/spec-kit/helpdesk-analytics/internal/config"
	"github.com/spec-kit/helpdesk-analytics/internal/events"
	"github.com/spec-kit/helpdesk-analytics/internal/observability"
	"github.com/spec-kit/helpdesk-analytics/internal/persistence"
	"github.com/spec-kit/helpdesk-analytics/internal/repository"
	"github.com/spec-kit/helpdesk-analytics/internal/service"
	"github.com/spec-kit/helpdesk-analytics/internal/worker"
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

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	pool := pg.PoolHandle()
	ticketRepo := repository.NewTicketRepository(pool)
	invoiceRepo := repository.NewInvoiceRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)
	timelineRepo := repository.NewTimelineRepository(pool)
	downloadRepo := repository.NewDownloadRepository(pool)

	dashboardService := service.NewDashboardService(service.DashboardDependencies{
		TicketRepo:   ticketRepo,
		TimelineRepo: timelineRepo,
		Cache:        redis,
		CacheTTL:     cfg.Reports.DashboardCacheTTL(),
		Metrics:      metrics,
		Logger:       logger,
	})
	reportService := service.NewReportService(service.ReportDependencies{
		TicketRepo:     ticketRepo,
		InvoiceRepo:    invoiceRepo,
		CustomerRepo:   customerRepo,
		Dispatcher:     dispatcher,
		Logger:         logger,
		CurrencySymbol: cfg.Reports.CurrencySymbol,
	})
	ledgerService := service.NewLedgerService(downloadRepo, dispatcher, logger)
	worker.StartLedgerWorker(ledgerService)

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewAuthMiddleware(tokenManager)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, cfg.Reports.DefaultTrendCount)
	reportsHandler := handlers.NewReportsHandler(reportService, ledgerService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Dashboard:      dashboardHandler,
		Reports:        reportsHandler,
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()
	logger.Info("server started", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	if err := app.Shutdown(); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
