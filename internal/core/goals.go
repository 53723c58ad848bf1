package core

// UpdateProgress annotates goals with progress derived from the period
// summary and returns a new slice; persisted goal records are never mutated.
//
// Saving and investment goals track the matching period total, clamped to
// the target so displayed progress never exceeds 100%. Because every goal of
// a type derives from the same single period total, goals of the same type
// always show identical progress; there is no per-goal allocation. Expense
// reduction goals keep whatever progress the caller already tracked, since
// no formula is defined for them.
func UpdateProgress(goals []Goal, summary PeriodSummary) []Goal {
	out := make([]Goal, len(goals))
	for i, g := range goals {
		switch g.Type {
		case GoalSaving:
			g.Current = summary.Saving.Min(g.Target)
		case GoalInvestment:
			g.Current = summary.Investment.Min(g.Target)
		}
		out[i] = g
	}
	return out
}
