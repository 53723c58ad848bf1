package http

import (
	"fintrack/internal/core"
	"fintrack/internal/services"
)

// Response bodies carry amounts as integer cents and dates as YYYY-MM-DD.
type (
	transactionView struct {
		ID          int64  `json:"id"`
		CategoryID  int64  `json:"category_id"`
		Description string `json:"description"`
		AmountCents int64  `json:"amount_cents"`
		Type        string `json:"type"`
		Date        string `json:"date"`
	}

	categoryView struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Kind  string `json:"kind"`
		Color string `json:"color"`
		Icon  string `json:"icon,omitempty"`
	}

	goalView struct {
		ID           int64  `json:"id"`
		Title        string `json:"title"`
		TargetCents  int64  `json:"target_cents"`
		CurrentCents int64  `json:"current_cents"`
		Type         string `json:"type"`
		Deadline     string `json:"deadline"`
		Achieved     bool   `json:"achieved"`
	}

	categoryAmountView struct {
		CategoryID  int64  `json:"category_id"`
		Name        string `json:"name"`
		Color       string `json:"color"`
		AmountCents int64  `json:"amount_cents"`
	}

	summaryView struct {
		Year            int                  `json:"year"`
		Month           int                  `json:"month"`
		IncomeCents     int64                `json:"income_cents"`
		ExpenseCents    int64                `json:"expense_cents"`
		SavingCents     int64                `json:"saving_cents"`
		InvestmentCents int64                `json:"investment_cents"`
		BalanceCents    int64                `json:"balance_cents"`
		ByCategory      []categoryAmountView `json:"by_category"`
	}

	recentTransactionView struct {
		transactionView
		CategoryName  string `json:"category_name"`
		CategoryColor string `json:"category_color"`
	}

	reportView struct {
		Summary summaryView             `json:"summary"`
		Goals   []goalView              `json:"goals"`
		Recent  []recentTransactionView `json:"recent_transactions"`
	}

	createdView struct {
		ID int64 `json:"id"`
	}
)

func newTransactionView(t core.Transaction) transactionView {
	return transactionView{
		ID:          t.ID,
		CategoryID:  t.CategoryID,
		Description: t.Description,
		AmountCents: t.Amount.Cents,
		Type:        string(t.Type),
		Date:        t.Date.Format(dateLayout),
	}
}

func newCategoryView(c core.Category) categoryView {
	return categoryView{
		ID:    c.ID,
		Name:  c.Name,
		Kind:  string(c.Kind),
		Color: c.Color,
		Icon:  c.Icon,
	}
}

func newGoalView(g core.Goal) goalView {
	return goalView{
		ID:           g.ID,
		Title:        g.Title,
		TargetCents:  g.Target.Cents,
		CurrentCents: g.Current.Cents,
		Type:         string(g.Type),
		Deadline:     g.Deadline.Format(dateLayout),
		Achieved:     g.Achieved(),
	}
}

func newReportView(report *services.MonthlyReport) reportView {
	s := report.Summary
	view := reportView{
		Summary: summaryView{
			Year:            s.Period.Start.Year(),
			Month:           int(s.Period.Start.Month()),
			IncomeCents:     s.Income.Cents,
			ExpenseCents:    s.Expense.Cents,
			SavingCents:     s.Saving.Cents,
			InvestmentCents: s.Investment.Cents,
			BalanceCents:    s.Balance.Cents,
			ByCategory:      make([]categoryAmountView, 0, len(s.ByCategory)),
		},
		Goals:  make([]goalView, 0, len(report.Goals)),
		Recent: make([]recentTransactionView, 0, len(report.Recent)),
	}
	for _, ca := range s.ByCategory {
		view.Summary.ByCategory = append(view.Summary.ByCategory, categoryAmountView{
			CategoryID:  ca.CategoryID,
			Name:        ca.Name,
			Color:       ca.Color,
			AmountCents: ca.Amount.Cents,
		})
	}
	for _, g := range report.Goals {
		view.Goals = append(view.Goals, newGoalView(g))
	}
	for _, rt := range report.Recent {
		view.Recent = append(view.Recent, recentTransactionView{
			transactionView: newTransactionView(rt.Transaction),
			CategoryName:    rt.CategoryName,
			CategoryColor:   rt.CategoryColor,
		})
	}
	return view
}
