package core

import "time"

// DateRange is an inclusive aggregation window: [Start, End].
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether d falls inside the range, inclusive on both ends.
func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// ResolvePeriod maps a calendar month (1-indexed) to its concrete date range:
// first day at 00:00:00 through last day at 23:59:59, UTC. Month lengths and
// year rollovers follow calendar arithmetic, not fixed day counts.
func ResolvePeriod(year, month int) DateRange {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return DateRange{Start: start, End: end}
}
