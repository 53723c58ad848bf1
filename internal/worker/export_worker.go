// Package worker turns ledger change events into exported monthly summaries.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/export"
	"fintrack/internal/storage"
)

// ExportWorker rebuilds a user's monthly summary from storage whenever their
// ledger changes and hands it to the report writer. Events carry only period
// coordinates, so every delivery reads a fresh snapshot and the result is
// safe to process more than once.
type ExportWorker struct {
	store  storage.Store
	writer export.ReportWriter
}

func NewExportWorker(store storage.Store, writer export.ReportWriter) *ExportWorker {
	return &ExportWorker{
		store:  store,
		writer: writer,
	}
}

// HandleLedgerChanged processes a single ledger change event.
func (w *ExportWorker) HandleLedgerChanged(ctx context.Context, msg *amqp.LedgerChangedMessage) error {
	if msg.Month < 1 || msg.Month > 12 {
		return fmt.Errorf("invalid month in message: %d", msg.Month)
	}

	slog.InfoContext(ctx, "Processing ledger change event",
		"user_id", msg.UserID,
		"year", msg.Year,
		"month", msg.Month)

	summary, err := w.buildSummary(ctx, msg.UserID, msg.Year, msg.Month)
	if err != nil {
		return err
	}

	if err := w.writer.WriteMonthlySummary(ctx, msg.UserID, summary); err != nil {
		return fmt.Errorf("write monthly summary: %w", err)
	}

	slog.InfoContext(ctx, "Exported monthly summary",
		"user_id", msg.UserID,
		"year", msg.Year,
		"month", msg.Month,
		"balance_cents", summary.Balance.Cents)
	return nil
}

// ExportPeriod rebuilds and exports one (user, period) on demand. Used by the
// startup catch-up pass and manual replays.
func (w *ExportWorker) ExportPeriod(ctx context.Context, userID int64, year, month int) error {
	summary, err := w.buildSummary(ctx, userID, year, month)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMonthlySummary(ctx, userID, summary); err != nil {
		return fmt.Errorf("write monthly summary: %w", err)
	}
	return nil
}

// StartupExport re-exports the current month for each user at worker startup.
// It recovers summaries for events lost while the worker was down.
func (w *ExportWorker) StartupExport(ctx context.Context, userIDs []int64) error {
	if len(userIDs) == 0 {
		slog.InfoContext(ctx, "No users to catch up on startup")
		return nil
	}

	now := time.Now().UTC()
	year, month := now.Year(), int(now.Month())

	successCount := 0
	errorCount := 0
	for _, userID := range userIDs {
		if err := w.ExportPeriod(ctx, userID, year, month); err != nil {
			slog.ErrorContext(ctx, "Failed to export summary during startup",
				"user_id", userID, "error", err)
			errorCount++
			continue
		}
		successCount++
	}

	slog.InfoContext(ctx, "Startup export completed",
		"total", len(userIDs),
		"exported", successCount,
		"errors", errorCount)

	if errorCount > 0 && successCount == 0 {
		return fmt.Errorf("startup export failed for all %d users", errorCount)
	}
	return nil
}

func (w *ExportWorker) buildSummary(ctx context.Context, userID int64, year, month int) (core.PeriodSummary, error) {
	period := core.ResolvePeriod(year, month)

	transactions, err := w.store.ListTransactions(ctx, userID, storage.TransactionFilter{
		From: period.Start,
		To:   period.End,
	})
	if err != nil {
		return core.PeriodSummary{}, fmt.Errorf("list transactions: %w", err)
	}

	categories, err := w.store.ListCategories(ctx, userID)
	if err != nil {
		return core.PeriodSummary{}, fmt.Errorf("list categories: %w", err)
	}

	return core.Aggregate(transactions, core.NewDirectory(categories), period), nil
}
