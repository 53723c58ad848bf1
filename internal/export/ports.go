// Package export defines the outbound port for publishing monthly ledger
// summaries to external destinations.
package export

import (
	"context"

	"fintrack/internal/core"
)

// ReportWriter receives a user's aggregated month. Implementations must be
// idempotent per (user, period): the worker may deliver the same period more
// than once.
type ReportWriter interface {
	WriteMonthlySummary(ctx context.Context, userID int64, summary core.PeriodSummary) error
}
