// Package memory implements export.ReportWriter in process memory for local
// development and tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"fintrack/internal/core"
	"fintrack/internal/export"
)

type Writer struct {
	mu        sync.Mutex
	summaries map[string]core.PeriodSummary
	err       error
}

var _ export.ReportWriter = (*Writer)(nil)

func New() *Writer {
	return &Writer{summaries: make(map[string]core.PeriodSummary)}
}

// FailWith makes every subsequent write return err. Pass nil to recover.
func (w *Writer) FailWith(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.err = err
}

func (w *Writer) WriteMonthlySummary(_ context.Context, userID int64, summary core.PeriodSummary) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.summaries[key(userID, summary.Period.Start.Year(), int(summary.Period.Start.Month()))] = summary
	return nil
}

// Summary returns the last written summary for (user, year, month).
func (w *Writer) Summary(userID int64, year, month int) (core.PeriodSummary, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	s, ok := w.summaries[key(userID, year, month)]
	return s, ok
}

// Count returns how many distinct (user, period) rows exist.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.summaries)
}

func key(userID int64, year, month int) string {
	return fmt.Sprintf("%d:%04d-%02d", userID, year, month)
}
