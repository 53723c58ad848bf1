// Package services orchestrates ledger operations across storage and AMQP.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
	"fintrack/internal/storage"
)

// recentLimit is how many of the period's latest transactions a report carries.
const recentLimit = 5

// EventPublisher notifies downstream consumers that a user's ledger changed.
type EventPublisher interface {
	PublishLedgerChanged(ctx context.Context, userID int64, year, month int) error
}

// ReportTransaction is a transaction annotated with its category for display.
type ReportTransaction struct {
	core.Transaction
	CategoryName  string
	CategoryColor string
}

// MonthlyReport is the full view of a user's ledger for one month.
type MonthlyReport struct {
	Summary core.PeriodSummary
	Goals   []core.Goal
	Recent  []ReportTransaction
}

// LedgerService is the write and report path over a storage.Store. Writes
// publish a ledger change event; publish failures are logged and swallowed
// so a broker outage never fails the request.
type LedgerService struct {
	store     storage.Store
	publisher EventPublisher
	logger    *applog.StructuredLogger
}

func NewLedgerService(store storage.Store, publisher EventPublisher) *LedgerService {
	return &LedgerService{
		store:     store,
		publisher: publisher,
		logger:    applog.NewStructuredLogger(applog.New(applog.Config{Component: applog.ComponentLedger})),
	}
}

// MonthlyReport aggregates a user's ledger for the given month. Transactions,
// categories and goals load concurrently, then fold into a single report.
func (s *LedgerService) MonthlyReport(ctx context.Context, userID int64, year, month int) (*MonthlyReport, error) {
	period := core.ResolvePeriod(year, month)

	var (
		transactions []core.Transaction
		categories   []core.Category
		goals        []core.Goal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		transactions, err = s.store.ListTransactions(gctx, userID, storage.TransactionFilter{
			From: period.Start,
			To:   period.End,
		})
		if err != nil {
			return fmt.Errorf("list transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		categories, err = s.store.ListCategories(gctx, userID)
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		goals, err = s.store.ListGoals(gctx, userID)
		if err != nil {
			return fmt.Errorf("list goals: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dir := core.NewDirectory(categories)
	summary := core.Aggregate(transactions, dir, period)

	recent := transactions
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	annotated := make([]ReportTransaction, 0, len(recent))
	for _, t := range recent {
		cat := dir.Resolve(t.CategoryID)
		annotated = append(annotated, ReportTransaction{
			Transaction:   t,
			CategoryName:  cat.Name,
			CategoryColor: cat.Color,
		})
	}

	return &MonthlyReport{
		Summary: summary,
		Goals:   core.UpdateProgress(goals, summary),
		Recent:  annotated,
	}, nil
}

// CreateTransaction saves a transaction and publishes a change event.
func (s *LedgerService) CreateTransaction(ctx context.Context, t core.Transaction) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	id, err := s.store.CreateTransaction(ctx, t)
	if err != nil {
		return 0, fmt.Errorf("save transaction: %w", err)
	}
	s.logger.LogTransactionCreated(ctx, t.UserID, id, t.Description, t.Amount.Cents)
	s.publishChange(ctx, t.UserID, t.Date)
	return id, nil
}

// UpdateTransaction replaces an owned transaction and publishes a change event.
func (s *LedgerService) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := s.store.UpdateTransaction(ctx, t); err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	s.publishChange(ctx, t.UserID, t.Date)
	return nil
}

// DeleteTransaction removes an owned transaction and publishes a change event
// for the period it belonged to.
func (s *LedgerService) DeleteTransaction(ctx context.Context, userID, id int64) error {
	txs, err := s.store.ListTransactions(ctx, userID, storage.TransactionFilter{})
	if err != nil {
		return fmt.Errorf("load transaction: %w", err)
	}
	var deleted *core.Transaction
	for i := range txs {
		if txs[i].ID == id {
			deleted = &txs[i]
			break
		}
	}
	if err := s.store.DeleteTransaction(ctx, userID, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if deleted != nil {
		s.publishChange(ctx, userID, deleted.Date)
	}
	return nil
}

func (s *LedgerService) ListTransactions(ctx context.Context, userID int64, f storage.TransactionFilter) ([]core.Transaction, error) {
	return s.store.ListTransactions(ctx, userID, f)
}

func (s *LedgerService) CreateCategory(ctx context.Context, c core.Category) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	id, err := s.store.CreateCategory(ctx, c)
	if err != nil {
		return 0, fmt.Errorf("save category: %w", err)
	}
	return id, nil
}

func (s *LedgerService) UpdateCategory(ctx context.Context, c core.Category) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := s.store.UpdateCategory(ctx, c); err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

func (s *LedgerService) DeleteCategory(ctx context.Context, userID, id int64) error {
	if err := s.store.DeleteCategory(ctx, userID, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (s *LedgerService) ListCategories(ctx context.Context, userID int64) ([]core.Category, error) {
	return s.store.ListCategories(ctx, userID)
}

// EligibleCategories lists the user's categories that may classify a
// transaction of the given type.
func (s *LedgerService) EligibleCategories(ctx context.Context, userID int64, t core.TransactionType) ([]core.Category, error) {
	if !t.Valid() {
		return nil, core.ErrInvalidType
	}
	categories, err := s.store.ListCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return core.EligibleCategories(categories, t), nil
}

// CreateGoal saves a goal. Progress always starts at zero regardless of any
// current value on the input.
func (s *LedgerService) CreateGoal(ctx context.Context, g core.Goal) (int64, error) {
	if err := g.Validate(); err != nil {
		return 0, err
	}
	id, err := s.store.CreateGoal(ctx, g)
	if err != nil {
		return 0, fmt.Errorf("save goal: %w", err)
	}
	return id, nil
}

// UpdateGoal edits a goal's definition. Progress is untouched.
func (s *LedgerService) UpdateGoal(ctx context.Context, g core.Goal) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if err := s.store.UpdateGoal(ctx, g); err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	return nil
}

func (s *LedgerService) DeleteGoal(ctx context.Context, userID, id int64) error {
	if err := s.store.DeleteGoal(ctx, userID, id); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return nil
}

func (s *LedgerService) ListGoals(ctx context.Context, userID int64) ([]core.Goal, error) {
	return s.store.ListGoals(ctx, userID)
}

func (s *LedgerService) publishChange(ctx context.Context, userID int64, date core.Date) {
	if s.publisher == nil {
		slog.WarnContext(ctx, "Event publisher not available, skipping ledger change event")
		return
	}
	year, month := date.Year(), int(date.Month())
	if err := s.publisher.PublishLedgerChanged(ctx, userID, year, month); err != nil {
		s.logger.LogError(ctx, "Failed to publish ledger change event", err,
			applog.ComponentAMQP, applog.OpPublish,
			applog.NewFields().WithUser(userID).WithPeriod(year, month))
	}
}
