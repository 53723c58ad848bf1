package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"fintrack/internal/amqp"
	"fintrack/internal/backend"
	"fintrack/internal/config"
	"fintrack/internal/export"
	gsheet "fintrack/internal/export/google"
	expmem "fintrack/internal/export/memory"
	applog "fintrack/internal/log"
	"fintrack/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	logger.Info("Starting fintrack-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}

	factory := backend.NewFactory(logger.Logger)
	result, err := factory.CreateStore(context.Background(), backendCfg)
	if err != nil {
		logger.Error("Failed to initialize storage backend", "error", err, "backend", backendCfg.Type.String())
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Storage cleanup failed", "error", err)
			}
		}()
	}

	// Pick the report destination. Without a spreadsheet the worker still
	// drains the queue, summaries just stay in process memory.
	var writer export.ReportWriter
	if cfg.GoogleSpreadsheetID != "" {
		sheetsClient, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		writer = sheetsClient
		logger.Info("Google Sheets export initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		writer = expmem.New()
		logger.Info("Google Sheets disabled - exporting to in-memory writer")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	exportWorker := worker.NewExportWorker(result.Store, writer)

	// On startup, re-export the current month for the configured users so
	// changes made while the worker was down still reach the spreadsheet.
	if len(cfg.ExportUserIDs) > 0 {
		logger.Info("Performing startup export", "users", len(cfg.ExportUserIDs))
		if err := exportWorker.StartupExport(ctx, cfg.ExportUserIDs); err != nil {
			logger.Error("Startup export failed", "error", err)
			// Don't exit - continue with normal operation
		}
	}

	go func() {
		handler := func(msg *amqp.LedgerChangedMessage) error {
			return exportWorker.HandleLedgerChanged(ctx, msg)
		}
		if err := amqpClient.ConsumeLedgerChanged(ctx, handler); err != nil {
			if err != context.Canceled {
				logger.Error("Message consumption failed", "error", err)
			}
			cancel()
		}
	}()

	// Periodic catch-up export for any missed messages
	if len(cfg.ExportUserIDs) > 0 {
		ticker := time.NewTicker(cfg.CatchupInterval)
		defer ticker.Stop()

		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if err := exportWorker.StartupExport(ctx, cfg.ExportUserIDs); err != nil {
						logger.Error("Periodic catch-up export failed", "error", err)
					}
				}
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	logger.Info("Shutting down worker...")
	cancel()

	// Give in-flight exports a moment to finish
	time.Sleep(2 * time.Second)
	logger.Info("Worker shutdown complete")
}
