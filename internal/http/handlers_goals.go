package http

import (
	"net/http"
)

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	goals, err := s.ledger.ListGoals(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	views := make([]goalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, newGoalView(g))
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUser(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req goalRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	goal, err := req.toGoal(userID)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id, err := s.ledger.CreateGoal(r.Context(), goal)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	s.invalidateUserReports(userID)
	respondJSON(w, http.StatusCreated, createdView{ID: id})
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
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

	var req goalRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	goal, err := req.toGoal(userID)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	goal.ID = id

	if err := s.ledger.UpdateGoal(r.Context(), goal); err != nil {
		respondServiceError(w, r, err)
		return
	}
	s.invalidateUserReports(userID)

	// Re-read so the response carries the preserved progress, not the
	// zero value from the request.
	goals, err := s.ledger.ListGoals(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	for _, g := range goals {
		if g.ID == id {
			respondJSON(w, http.StatusOK, newGoalView(g))
			return
		}
	}
	respondJSON(w, http.StatusOK, newGoalView(goal))
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
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

	if err := s.ledger.DeleteGoal(r.Context(), userID, id); err != nil {
		respondServiceError(w, r, err)
		return
	}
	s.invalidateUserReports(userID)
	respondJSON(w, http.StatusNoContent, nil)
}
