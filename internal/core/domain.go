package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income     TransactionType = "income"
	Expense    TransactionType = "expense"
	Saving     TransactionType = "saving"
	Investment TransactionType = "investment"
)

const (
	GoalSaving     GoalType = "saving"
	GoalInvestment GoalType = "investment"
	// GoalExpense is a spending-reduction goal. Its progress is tracked
	// externally; the updater never recomputes it.
	GoalExpense GoalType = "expense"
)

type (
	// TransactionType determines the aggregation bucket and the derived
	// sign of a movement. Amounts are always stored as positive magnitudes.
	TransactionType string

	// CategoryKind classifies a category and gates which transaction types
	// may reference it.
	CategoryKind string

	GoalType string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Transaction struct {
		ID          int64
		UserID      int64
		CategoryID  int64
		Description string
		Amount      Money
		Type        TransactionType
		Date        Date
	}

	Category struct {
		ID     int64
		UserID int64
		Name   string
		Kind   CategoryKind
		Color  string
		Icon   string
	}

	Goal struct {
		ID       int64
		UserID   int64
		Title    string
		Target   Money
		Current  Money
		Type     GoalType
		Deadline Date
	}
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidType        = errors.New("invalid transaction type")
	ErrInvalidKind        = errors.New("invalid category kind")
	ErrInvalidGoalType    = errors.New("invalid goal type")
	ErrEmptyDescription   = errors.New("empty description")
	ErrEmptyTitle         = errors.New("empty title")
	ErrEmptyName          = errors.New("empty name")
	ErrZeroDate           = errors.New("date cannot be zero")
	ErrMissingCategory    = errors.New("missing category reference")
	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
)

func (t TransactionType) Valid() bool {
	switch t {
	case Income, Expense, Saving, Investment:
		return true
	default:
		return false
	}
}

func (k CategoryKind) Valid() bool {
	switch k {
	case CategoryKind(Income), CategoryKind(Expense), CategoryKind(Saving), CategoryKind(Investment):
		return true
	default:
		return false
	}
}

func (t GoalType) Valid() bool {
	switch t {
	case GoalSaving, GoalInvestment, GoalExpense:
		return true
	default:
		return false
	}
}

// NewDate creates a Date at day granularity (midnight UTC).
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrZeroDate
	}
	return nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Validate checks a transaction at the ingestion boundary. The aggregator
// assumes records that passed this check and does not re-validate.
func (t Transaction) Validate() error {
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return ErrDescriptionTooLong
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if t.CategoryID == 0 {
		return ErrMissingCategory
	}
	return nil
}

func (c Category) Validate() error {
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyName
	}
	if !c.Kind.Valid() {
		return ErrInvalidKind
	}
	return nil
}

func (g Goal) Validate() error {
	if len(strings.TrimSpace(g.Title)) == 0 {
		return ErrEmptyTitle
	}
	if err := g.Target.Validate(); err != nil {
		return err
	}
	if !g.Type.Valid() {
		return ErrInvalidGoalType
	}
	if err := g.Deadline.Validate(); err != nil {
		return err
	}
	return nil
}

// Achieved reports whether the goal has reached its target. This is a
// query-time predicate, never a stored flag.
func (g Goal) Achieved() bool {
	return g.Current.Cents >= g.Target.Cents
}
