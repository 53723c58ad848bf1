package services

import (
	"context"
	"errors"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/storage"
	"fintrack/internal/storage/memory"
)

type recordingPublisher struct {
	calls []publishedEvent
	err   error
}

type publishedEvent struct {
	userID int64
	year   int
	month  int
}

func (p *recordingPublisher) PublishLedgerChanged(_ context.Context, userID int64, year, month int) error {
	p.calls = append(p.calls, publishedEvent{userID, year, month})
	return p.err
}

func seededService(t *testing.T, publisher EventPublisher) (*LedgerService, map[string]int64) {
	t.Helper()
	store := memory.New()
	ctx := context.Background()
	ids := make(map[string]int64)
	for _, c := range []struct {
		name string
		kind core.CategoryKind
	}{
		{"Salary", core.CategoryKind(core.Income)},
		{"Groceries", core.CategoryKind(core.Expense)},
		{"Emergency fund", core.CategoryKind(core.Saving)},
		{"Stocks", core.CategoryKind(core.Investment)},
	} {
		id, err := store.CreateCategory(ctx, core.Category{
			UserID: 1, Name: c.name, Kind: c.kind, Color: "#123456",
		})
		if err != nil {
			t.Fatalf("seed category %s: %v", c.name, err)
		}
		ids[c.name] = id
	}
	return NewLedgerService(store, publisher), ids
}

func TestMonthlyReport(t *testing.T) {
	svc, ids := seededService(t, nil)
	ctx := context.Background()

	add := func(desc string, cents int64, txType core.TransactionType, catName string, day int) {
		t.Helper()
		_, err := svc.CreateTransaction(ctx, core.Transaction{
			UserID: 1, CategoryID: ids[catName], Description: desc,
			Amount: core.Money{Cents: cents}, Type: txType, Date: core.NewDate(2025, 6, day),
		})
		if err != nil {
			t.Fatalf("create %s: %v", desc, err)
		}
	}
	add("salary", 500000, core.Income, "Salary", 1)
	add("groceries", 80000, core.Expense, "Groceries", 5)
	add("rent", 120000, core.Expense, "Groceries", 2)
	add("emergency", 50000, core.Saving, "Emergency fund", 10)
	add("etf", 30000, core.Investment, "Stocks", 15)

	// out of period, must not count
	add("old rent", 999999, core.Expense, "Groceries", 5)
	txs, _ := svc.ListTransactions(ctx, 1, storage.TransactionFilter{})
	old := txs[0]
	for _, tx := range txs {
		if tx.Description == "old rent" {
			old = tx
		}
	}
	old.Date = core.NewDate(2025, 5, 31)
	if err := svc.UpdateTransaction(ctx, old); err != nil {
		t.Fatalf("move transaction: %v", err)
	}

	goalID, err := svc.CreateGoal(ctx, core.Goal{
		UserID: 1, Title: "Cushion", Target: core.Money{Cents: 40000},
		Type: core.GoalSaving, Deadline: core.NewDate(2026, 1, 1),
	})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}

	report, err := svc.MonthlyReport(ctx, 1, 2025, 6)
	if err != nil {
		t.Fatalf("report: %v", err)
	}

	s := report.Summary
	if s.Income.Cents != 500000 || s.Expense.Cents != 200000 || s.Saving.Cents != 50000 || s.Investment.Cents != 30000 {
		t.Fatalf("totals: %+v", s)
	}
	if s.Balance.Cents != 500000-(200000+50000+30000) {
		t.Fatalf("balance: %d", s.Balance.Cents)
	}

	if len(report.Goals) != 1 || report.Goals[0].ID != goalID {
		t.Fatalf("goals: %+v", report.Goals)
	}
	// saving activity 50000 clamped to target 40000
	if report.Goals[0].Current.Cents != 40000 || !report.Goals[0].Achieved() {
		t.Fatalf("goal progress: %+v", report.Goals[0])
	}

	if len(report.Recent) != 5 {
		t.Fatalf("recent: %d entries", len(report.Recent))
	}
	if report.Recent[0].Description != "etf" {
		t.Fatalf("recent should be newest first, got %q", report.Recent[0].Description)
	}
	for _, rt := range report.Recent {
		if rt.CategoryName == "" || rt.CategoryColor == "" {
			t.Fatalf("recent entry missing category annotation: %+v", rt)
		}
	}
}

func TestMonthlyReportUnknownCategoryAnnotation(t *testing.T) {
	store := memory.New()
	svc := NewLedgerService(store, nil)
	ctx := context.Background()

	if _, err := store.CreateTransaction(ctx, core.Transaction{
		UserID: 1, CategoryID: 404, Description: "mystery",
		Amount: core.Money{Cents: 100}, Type: core.Expense, Date: core.NewDate(2025, 6, 1),
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	report, err := svc.MonthlyReport(ctx, 1, 2025, 6)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if len(report.Recent) != 1 {
		t.Fatalf("recent: %d entries", len(report.Recent))
	}
	if report.Recent[0].CategoryName != core.Uncategorized.Name ||
		report.Recent[0].CategoryColor != core.Uncategorized.Color {
		t.Fatalf("expected placeholder annotation, got %+v", report.Recent[0])
	}
}

func TestWritesPublishChangeEvents(t *testing.T) {
	pub := &recordingPublisher{}
	svc, ids := seededService(t, pub)
	ctx := context.Background()

	id, err := svc.CreateTransaction(ctx, core.Transaction{
		UserID: 1, CategoryID: ids["Groceries"], Description: "bread",
		Amount: core.Money{Cents: 350}, Type: core.Expense, Date: core.NewDate(2025, 7, 4),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.DeleteTransaction(ctx, 1, id); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if len(pub.calls) != 2 {
		t.Fatalf("expected 2 events, got %d", len(pub.calls))
	}
	for _, call := range pub.calls {
		if call.userID != 1 || call.year != 2025 || call.month != 7 {
			t.Fatalf("unexpected event: %+v", call)
		}
	}
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc, ids := seededService(t, pub)

	_, err := svc.CreateTransaction(context.Background(), core.Transaction{
		UserID: 1, CategoryID: ids["Salary"], Description: "salary",
		Amount: core.Money{Cents: 100000}, Type: core.Income, Date: core.NewDate(2025, 7, 1),
	})
	if err != nil {
		t.Fatalf("create should succeed despite publish failure: %v", err)
	}
}

func TestEligibleCategories(t *testing.T) {
	svc, ids := seededService(t, nil)
	ctx := context.Background()

	got, err := svc.EligibleCategories(ctx, 1, core.Saving)
	if err != nil {
		t.Fatalf("eligible: %v", err)
	}
	want := map[int64]bool{ids["Salary"]: true, ids["Emergency fund"]: true}
	if len(got) != len(want) {
		t.Fatalf("eligible for saving: %+v", got)
	}
	for _, c := range got {
		if !want[c.ID] {
			t.Fatalf("unexpected category %+v", c)
		}
	}

	if _, err := svc.EligibleCategories(ctx, 1, "bogus"); !errors.Is(err, core.ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
}

func TestGoalEditKeepsProgress(t *testing.T) {
	svc, _ := seededService(t, nil)
	ctx := context.Background()

	id, err := svc.CreateGoal(ctx, core.Goal{
		UserID: 1, Title: "Trip", Target: core.Money{Cents: 50000},
		Current: core.Money{Cents: 99999}, // must be ignored
		Type:    core.GoalSaving, Deadline: core.NewDate(2026, 1, 1),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	goals, err := svc.ListGoals(ctx, 1)
	if err != nil || len(goals) != 1 {
		t.Fatalf("list: %v", err)
	}
	if goals[0].Current.Cents != 0 {
		t.Fatalf("new goal should start at zero progress, got %d", goals[0].Current.Cents)
	}

	if err := svc.UpdateGoal(ctx, core.Goal{
		ID: id, UserID: 1, Title: "Big trip", Target: core.Money{Cents: 80000},
		Current: core.Money{Cents: 12345}, // must be ignored too
		Type:    core.GoalSaving, Deadline: core.NewDate(2026, 6, 1),
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	goals, _ = svc.ListGoals(ctx, 1)
	if goals[0].Title != "Big trip" || goals[0].Current.Cents != 0 {
		t.Fatalf("edit touched progress: %+v", goals[0])
	}
}

func TestWriteValidationErrors(t *testing.T) {
	svc, _ := seededService(t, nil)
	ctx := context.Background()

	if _, err := svc.CreateTransaction(ctx, core.Transaction{UserID: 1}); err == nil {
		t.Fatal("expected validation error for empty transaction")
	}
	if _, err := svc.CreateGoal(ctx, core.Goal{UserID: 1}); err == nil {
		t.Fatal("expected validation error for empty goal")
	}
	if _, err := svc.CreateCategory(ctx, core.Category{UserID: 1, Name: "x", Kind: "bogus"}); err == nil {
		t.Fatal("expected validation error for bad category kind")
	}
	if err := svc.DeleteGoal(ctx, 1, 42); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
