package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/api-sage/core-banking-service/internal/adapter/http/controller"
	"github.com/api-sage/core-banking-service/internal/adapter/http/middleware"
	"github.com/api-sage/core-banking-service/internal/adapter/http/router"
	"github.com/api-sage/core-banking-service/internal/adapter/notifier"
	"github.com/api-sage/core-banking-service/internal/adapter/repository/postgres"
	"github.com/api-sage/core-banking-service/internal/config"
	"github.com/api-sage/core-banking-service/internal/featuregate"
	"github.com/api-sage/core-banking-service/internal/logger"
	"github.com/api-sage/core-banking-service/internal/metrics"
	"github.com/api-sage/core-banking-service/internal/usecase/services"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger.Init(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := postgres.RunMigrations(ctx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	db, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	accountRepo := postgres.NewAccountRepository(db)
	ledgerRepo := postgres.NewTransactionRepository(db)
	runner := postgres.NewAtomicRunner(db)

	gate := featuregate.New(cfg.TransactionsEnabled)

	var sink notifier.Notifier
	if cfg.SMTPAddr != "" {
		sink = notifier.NewEmailNotifier(cfg.SMTPAddr, cfg.SMTPFrom)
	} else {
		sink = notifier.NewNoopNotifier()
	}

	registry := prometheus.NewRegistry()
	engineMetrics := metrics.New(registry)

	transactionService := services.NewTransactionService(accountRepo, ledgerRepo, runner, gate, sink, engineMetrics)
	reportService := services.NewReportService(accountRepo, ledgerRepo)

	authMiddleware := middleware.ChannelAuth(cfg.ChannelID, cfg.ChannelKey)
	mux := router.New(
		controller.NewTransactionController(transactionService),
		controller.NewReportController(reportService),
		controller.NewAdminController(gate, transactionService),
		authMiddleware,
		registry,
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("core banking server starting", logger.Fields{"addr": cfg.HTTPAddr})
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("http server: %v", err)
	}
}
