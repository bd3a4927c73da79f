package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"fatura/internal/amqp"
	"fatura/internal/config"
	applog "fatura/internal/log"
	"fatura/internal/services"
	"fatura/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Component: applog.ComponentScanner})
	applog.SetDefault(logger)

	logger.Info("Starting due-scanner")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	scanner := services.NewAlertScanner(repo, amqpClient, services.AlertScannerConfig{
		Concurrency: cfg.ScanConcurrency,
	})

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()

	logger.Info("Due-date scanner configured",
		"interval", cfg.ScanInterval,
		"concurrency", cfg.ScanConcurrency,
		"sqlite_db", cfg.SQLiteDBPath)

	ticker := time.NewTicker(cfg.ScanInterval)
	defer ticker.Stop()

	// Run initial scan on startup
	logger.Info("Running initial due-date scan...")
	if count, err := scanner.Scan(ctx, time.Now()); err != nil {
		logger.Error("Initial scan failed", "error", err)
	} else {
		logger.Info("Initial scan complete", "alerts_published", count)
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info("Due-scanner stopped gracefully")
			return
		case <-ticker.C:
			if count, err := scanner.Scan(ctx, time.Now()); err != nil {
				logger.Error("Scheduled scan failed", "error", err)
			} else {
				logger.Info("Scheduled scan complete", "alerts_published", count)
			}
		}
	}
}
