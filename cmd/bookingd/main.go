package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/FuriSherpa/hotel-booking-core/internal/application/services"
	"github.com/FuriSherpa/hotel-booking-core/internal/clock"
	"github.com/FuriSherpa/hotel-booking-core/internal/config"
	"github.com/FuriSherpa/hotel-booking-core/internal/events"
	"github.com/FuriSherpa/hotel-booking-core/internal/infrastructure/gateway"
	"github.com/FuriSherpa/hotel-booking-core/internal/infrastructure/persistence/postgres"
	"github.com/FuriSherpa/hotel-booking-core/internal/interfaces/rest"
	"github.com/FuriSherpa/hotel-booking-core/internal/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting booking service",
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
	)

	ctx := context.Background()
	db, err := postgres.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	store := postgres.NewBookingRepository(db)
	ledger := postgres.NewLedgerRepository(db)

	gatewayClient := gateway.NewClient(cfg.Gateway)
	retryGateway := gateway.NewRetryClient(gatewayClient, cfg.Retry)

	broadcaster := events.NewBroadcaster(logger)
	defer broadcaster.Close()

	service := services.NewBookingService(
		store,
		ledger,
		retryGateway,
		broadcaster,
		clock.System(),
		cfg.Policy.CancellationWindow,
		logger,
	)

	handlers := rest.NewHandlers(service, logger)
	router := rest.NewRouter(handlers, cfg.Server, logger)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	completionWorker := worker.NewCompletionWorker(
		service,
		cfg.Worker.Interval,
		cfg.Worker.BatchSize,
		logger,
	)

	refundWorker := worker.NewRefundWorker(
		service,
		cfg.Worker.Interval,
		cfg.Worker.RefundMaxAttempts,
		cfg.Worker.BatchSize,
		logger,
	)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	go completionWorker.Start(workerCtx)
	go refundWorker.Start(workerCtx)

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	cancelWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
