package http

import (
	"net/http"
	"strings"

	"fintrack/internal/core"
)

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	categories, err := s.ledger.ListCategories(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, categoryViews(categories))
}

// handleEligibleCategories lists the categories allowed to classify a
// transaction of the type given in the "type" query parameter.
func (s *Server) handleEligibleCategories(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	txType := core.TransactionType(strings.TrimSpace(r.URL.Query().Get("type")))
	categories, err := s.ledger.EligibleCategories(r.Context(), userID, txType)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, categoryViews(categories))
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req categoryRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := s.ledger.CreateCategory(r.Context(), req.toCategory(userID))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	s.invalidateUserReports(userID)
	respondJSON(w, http.StatusCreated, createdView{ID: id})
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
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

	var req categoryRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	category := req.toCategory(userID)
	category.ID = id

	if err := s.ledger.UpdateCategory(r.Context(), category); err != nil {
		respondServiceError(w, r, err)
		return
	}
	s.invalidateUserReports(userID)
	respondJSON(w, http.StatusOK, newCategoryView(category))
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
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

	if err := s.ledger.DeleteCategory(r.Context(), userID, id); err != nil {
		respondServiceError(w, r, err)
		return
	}
	s.invalidateUserReports(userID)
	respondJSON(w, http.StatusNoContent, nil)
}

func categoryViews(categories []core.Category) []categoryView {
	views := make([]categoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, newCategoryView(c))
	}
	return views
}
