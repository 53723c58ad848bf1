package core

type (
	// CategoryAmount is one slice of the expense-by-category breakdown,
	// carrying the category's display metadata forward for charting.
	CategoryAmount struct {
		CategoryID int64
		Name       string
		Color      string
		Amount     Money
	}

	// PeriodSummary is the derived aggregate for one period. It is
	// recomputed on demand and never persisted. The four type totals,
	// the balance, and the breakdown are mutually consistent by
	// construction.
	PeriodSummary struct {
		Period     DateRange
		Income     Money
		Expense    Money
		Saving     Money
		Investment Money
		Balance    Money
		ByCategory []CategoryAmount
	}
)

// Aggregate computes the period summary for a snapshot of transactions.
//
// Callers are expected to pass transactions already filtered to the period;
// records dated outside it are skipped anyway, so over-inclusive input is
// safe. Category references that no longer resolve fall back to the
// Uncategorized placeholder. Amount validation belongs to the ingestion
// boundary: invalid magnitudes are summed as-is, not defended against.
//
// The balance is income minus every use of it: expenses, savings, and
// investments alike. Saving more than you earn yields a negative balance.
func Aggregate(transactions []Transaction, dir Directory, period DateRange) PeriodSummary {
	s := PeriodSummary{Period: period}

	byCategory := make(map[int64]int)
	for _, t := range transactions {
		if !period.Contains(t.Date) {
			continue
		}
		switch t.Type {
		case Income:
			s.Income = s.Income.Add(t.Amount)
		case Expense:
			s.Expense = s.Expense.Add(t.Amount)
			idx, ok := byCategory[t.CategoryID]
			if !ok {
				cat := dir.Resolve(t.CategoryID)
				idx = len(s.ByCategory)
				byCategory[t.CategoryID] = idx
				s.ByCategory = append(s.ByCategory, CategoryAmount{
					CategoryID: t.CategoryID,
					Name:       cat.Name,
					Color:      cat.Color,
				})
			}
			s.ByCategory[idx].Amount = s.ByCategory[idx].Amount.Add(t.Amount)
		case Saving:
			s.Saving = s.Saving.Add(t.Amount)
		case Investment:
			s.Investment = s.Investment.Add(t.Amount)
		}
	}

	s.Balance = Money{Cents: s.Income.Cents - (s.Expense.Cents + s.Saving.Cents + s.Investment.Cents)}
	return s
}
