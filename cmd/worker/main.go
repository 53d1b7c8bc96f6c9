package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/startailors/tailorshop/internal/app"
	"github.com/startailors/tailorshop/internal/dashboard"
	jobmetrics "github.com/startailors/tailorshop/internal/jobs"
	"github.com/startailors/tailorshop/internal/payments"
	"github.com/startailors/tailorshop/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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

	backend := app.NewBackend(ctx, cfg, logger, nil)
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	dashboardService := dashboard.NewService(
		backend.Client,
		backend.Session,
		dashboard.NewCache(backend.Redis, cfg.DashboardCacheTTL),
		payments.NewGenerator(cfg.QREndpoint, cfg.QRSize),
		logger,
	)
	refreshJob := jobs.NewDashboardRefreshJob(dashboardService, logger, jobmetrics.NewMetrics(nil))

	refreshTask, err := jobs.NewDashboardRefreshTask("scheduled")
	if err != nil {
		logger.Error("build refresh task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskDashboardRefresh, Handler: refreshJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.DashboardRefreshCron, Task: refreshTask, Options: []asynq.Option{asynq.MaxRetry(2)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("starting worker", slog.String("refresh_cron", cfg.DashboardRefreshCron))
	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
