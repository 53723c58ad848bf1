package http

import (
	"log/slog"
	"net/http"
)

// handleMonthlyReport serves the aggregated view of one month. Reports are
// cached per (user, period); writes for the same period invalidate the entry.
func (s *Server) handleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	year, month, err := parseYearMonth(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := reportCacheKey(userID, year, month)
	if report, found := s.reportCache.Get(key); found {
		slog.DebugContext(r.Context(), "Report cache hit",
			"user_id", userID, "year", year, "month", month)
		respondJSON(w, http.StatusOK, newReportView(report))
		return
	}

	report, err := s.ledger.MonthlyReport(r.Context(), userID, year, month)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	s.reportCache.Set(key, report)

	respondJSON(w, http.StatusOK, newReportView(report))
}
