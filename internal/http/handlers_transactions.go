package http

import (
	"net/http"
	"strconv"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter, err := parseTransactionFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	txs, err := s.ledger.ListTransactions(r.Context(), userID, filter)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	views := make([]transactionView, 0, len(txs))
	for _, t := range txs {
		views = append(views, newTransactionView(t))
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req transactionRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	tx, err := req.toTransaction(userID)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id, err := s.ledger.CreateTransaction(r.Context(), tx)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	s.invalidateReport(userID, tx.Date.Year(), int(tx.Date.Month()))
	respondJSON(w, http.StatusCreated, createdView{ID: id})
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req transactionRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	tx, err := req.toTransaction(userID)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	tx.ID = id

	// A date edit can move the record across periods; drop both sides.
	previousPeriods := s.transactionPeriods(r, userID, id)

	if err := s.ledger.UpdateTransaction(r.Context(), tx); err != nil {
		respondServiceError(w, r, err)
		return
	}

	for _, p := range previousPeriods {
		s.invalidateReport(userID, p.year, p.month)
	}
	s.invalidateReport(userID, tx.Date.Year(), int(tx.Date.Month()))
	respondJSON(w, http.StatusOK, newTransactionView(tx))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	periods := s.transactionPeriods(r, userID, id)

	if err := s.ledger.DeleteTransaction(r.Context(), userID, id); err != nil {
		respondServiceError(w, r, err)
		return
	}

	for _, p := range periods {
		s.invalidateReport(userID, p.year, p.month)
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type period struct {
	year  int
	month int
}

// transactionPeriods looks up the periods currently holding the transaction.
// Best effort: a lookup failure just means a cache entry may go stale until
// its TTL expires.
func (s *Server) transactionPeriods(r *http.Request, userID, id int64) []period {
	txs, err := s.ledger.ListTransactions(r.Context(), userID, storage.TransactionFilter{})
	if err != nil {
		return nil
	}
	var out []period
	for _, t := range txs {
		if t.ID == id {
			out = append(out, period{year: t.Date.Year(), month: int(t.Date.Month())})
		}
	}
	return out
}

func parseTransactionFilter(r *http.Request) (storage.TransactionFilter, error) {
	var filter storage.TransactionFilter
	q := r.URL.Query()

	if v := strings.TrimSpace(q.Get("type")); v != "" {
		t := core.TransactionType(v)
		if !t.Valid() {
			return filter, core.ErrInvalidType
		}
		filter.Type = t
	}
	if v := strings.TrimSpace(q.Get("category_id")); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return filter, core.ErrMissingCategory
		}
		filter.CategoryID = id
	}
	if v := strings.TrimSpace(q.Get("from")); v != "" {
		d, err := parseDate(v)
		if err != nil {
			return filter, err
		}
		filter.From = d.Time
	}
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		d, err := parseDate(v)
		if err != nil {
			return filter, err
		}
		filter.To = d.Time
	}
	return filter, nil
}
