package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/startailors/tailorshop/internal/app"
	"github.com/startailors/tailorshop/internal/auth"
	"github.com/startailors/tailorshop/internal/dashboard"
	"github.com/startailors/tailorshop/internal/observability"
	"github.com/startailors/tailorshop/internal/orders"
	"github.com/startailors/tailorshop/internal/payments"
	"github.com/startailors/tailorshop/internal/reports"
	"github.com/startailors/tailorshop/internal/tailors"
	"github.com/startailors/tailorshop/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	metrics := observability.NewMetrics()

	backend := app.NewBackend(ctx, cfg, logger, metrics)
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()
	client := backend.Client

	qr := payments.NewGenerator(cfg.QREndpoint, cfg.QRSize)
	dashboardCache := dashboard.NewCache(backend.Redis, cfg.DashboardCacheTTL)
	dashboardService := dashboard.NewService(client, backend.Session, dashboardCache, qr, logger)

	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
	inspector := asynq.NewInspector(redisOpts)
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobClient := jobs.NewClient(redisOpts)
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		Session:          backend.Session,
		Metrics:          metrics,
		AuthHandler:      auth.NewHandler(logger, auth.NewService(client)),
		DashboardHandler: dashboard.NewHandler(logger, dashboardService),
		OrdersHandler:    orders.NewHandler(logger, orders.NewService(client, logger)),
		TailorsHandler:   tailors.NewHandler(logger, tailors.NewService(client, logger)),
		PaymentsHandler:  payments.NewHandler(logger, client, qr, payments.WithInvalidator(dashboardCache)),
		ReportsHandler:   reports.NewHandler(logger, reports.NewService(client, logger)),
		JobHandler:       jobs.NewHandler(inspector, jobClient, logger),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("api_url", cfg.APIURL))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
