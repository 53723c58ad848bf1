package memory

import (
	"context"
	"errors"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

func TestTransactionLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	id, err := s.CreateTransaction(ctx, core.Transaction{
		UserID:      1,
		CategoryID:  10,
		Description: "groceries",
		Amount:      core.Money{Cents: 4200},
		Type:        core.Expense,
		Date:        core.NewDate(2025, 5, 12),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	txs, err := s.ListTransactions(ctx, 1, storage.TransactionFilter{})
	if err != nil || len(txs) != 1 {
		t.Fatalf("list: %v, %d entries", err, len(txs))
	}

	updated := txs[0]
	updated.Description = "weekly groceries"
	if err := s.UpdateTransaction(ctx, updated); err != nil {
		t.Fatalf("update: %v", err)
	}

	if err := s.DeleteTransaction(ctx, 1, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteTransaction(ctx, 1, id); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("second delete: got %v, want ErrNotFound", err)
	}
}

func TestOwnerScoping(t *testing.T) {
	s := New()
	ctx := context.Background()

	id, err := s.CreateTransaction(ctx, core.Transaction{
		UserID: 1, CategoryID: 10, Description: "rent",
		Amount: core.Money{Cents: 90000}, Type: core.Expense, Date: core.NewDate(2025, 5, 1),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// another user cannot touch or see it
	if err := s.DeleteTransaction(ctx, 2, id); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("cross-user delete: got %v, want ErrNotFound", err)
	}
	txs, err := s.ListTransactions(ctx, 2, storage.TransactionFilter{})
	if err != nil || len(txs) != 0 {
		t.Fatalf("cross-user list: %v, %d entries", err, len(txs))
	}
}

func TestListTransactionsFilters(t *testing.T) {
	s := New()
	ctx := context.Background()
	add := func(txType core.TransactionType, catID int64, date core.Date) {
		t.Helper()
		_, err := s.CreateTransaction(ctx, core.Transaction{
			UserID: 1, CategoryID: catID, Description: "x",
			Amount: core.Money{Cents: 100}, Type: txType, Date: date,
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	add(core.Income, 1, core.NewDate(2025, 4, 28))
	add(core.Expense, 2, core.NewDate(2025, 5, 3))
	add(core.Expense, 3, core.NewDate(2025, 5, 20))
	add(core.Saving, 4, core.NewDate(2025, 6, 1))

	period := core.ResolvePeriod(2025, 5)
	txs, err := s.ListTransactions(ctx, 1, storage.TransactionFilter{From: period.Start, To: period.End})
	if err != nil || len(txs) != 2 {
		t.Fatalf("range filter: %v, %d entries", err, len(txs))
	}
	if !txs[0].Date.After(txs[1].Date.Time) {
		t.Fatalf("expected date-descending order")
	}

	txs, err = s.ListTransactions(ctx, 1, storage.TransactionFilter{Type: core.Expense, CategoryID: 3})
	if err != nil || len(txs) != 1 || txs[0].CategoryID != 3 {
		t.Fatalf("type+category filter: %v, %+v", err, txs)
	}
}

func TestGoalUpdateKeepsCurrent(t *testing.T) {
	s := New()
	ctx := context.Background()

	id, err := s.CreateGoal(ctx, core.Goal{
		UserID: 1, Title: "Trip", Target: core.Money{Cents: 50000},
		Type: core.GoalExpense, Deadline: core.NewDate(2026, 1, 1),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// simulate externally tracked progress on an expense goal
	s.mu.Lock()
	s.goals[0].Current = core.Money{Cents: 7000}
	s.mu.Unlock()

	if err := s.UpdateGoal(ctx, core.Goal{
		ID: id, UserID: 1, Title: "Big trip", Target: core.Money{Cents: 60000},
		Type: core.GoalExpense, Deadline: core.NewDate(2026, 6, 1),
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	goals, err := s.ListGoals(ctx, 1)
	if err != nil || len(goals) != 1 {
		t.Fatalf("list: %v", err)
	}
	if goals[0].Title != "Big trip" || goals[0].Current.Cents != 7000 {
		t.Fatalf("update touched current: %+v", goals[0])
	}
}

func TestCreateRejectsInvalid(t *testing.T) {
	s := New()
	ctx := context.Background()
	if _, err := s.CreateTransaction(ctx, core.Transaction{}); err == nil {
		t.Fatalf("expected validation error")
	}
	if _, err := s.CreateGoal(ctx, core.Goal{}); err == nil {
		t.Fatalf("expected validation error")
	}
	if _, err := s.CreateCategory(ctx, core.Category{Name: "x", Kind: "bogus"}); err == nil {
		t.Fatalf("expected validation error")
	}
}
