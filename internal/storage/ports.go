// Package storage defines the persistence ports of the ledger service.
// Implementations live in the sqlite and memory subpackages.
package storage

import (
	"context"
	"errors"
	"time"

	"fintrack/internal/core"
)

// ErrNotFound is returned when a record does not exist or is owned by a
// different user. Callers cannot distinguish the two cases.
var ErrNotFound = errors.New("record not found")

// TransactionFilter narrows a transaction listing. Zero values mean "no
// constraint". From and To are inclusive.
type TransactionFilter struct {
	Type       core.TransactionType
	CategoryID int64
	From       time.Time
	To         time.Time
}

type (
	TransactionStore interface {
		CreateTransaction(ctx context.Context, t core.Transaction) (int64, error)
		// UpdateTransaction replaces description, amount, type, date,
		// and category of an existing record, scoped to its owner.
		UpdateTransaction(ctx context.Context, t core.Transaction) error
		DeleteTransaction(ctx context.Context, userID, id int64) error
		ListTransactions(ctx context.Context, userID int64, f TransactionFilter) ([]core.Transaction, error)
	}

	CategoryStore interface {
		CreateCategory(ctx context.Context, c core.Category) (int64, error)
		UpdateCategory(ctx context.Context, c core.Category) error
		DeleteCategory(ctx context.Context, userID, id int64) error
		ListCategories(ctx context.Context, userID int64) ([]core.Category, error)
	}

	GoalStore interface {
		CreateGoal(ctx context.Context, g core.Goal) (int64, error)
		// UpdateGoal replaces title, target, type, and deadline. The
		// current progress column is left untouched: for saving and
		// investment goals it is derived per request, for expense
		// goals it is externally tracked.
		UpdateGoal(ctx context.Context, g core.Goal) error
		DeleteGoal(ctx context.Context, userID, id int64) error
		ListGoals(ctx context.Context, userID int64) ([]core.Goal, error)
	}
)

// Store is the full persistence surface consumed by the ledger service.
type Store interface {
	TransactionStore
	CategoryStore
	GoalStore
}
