package server

import (
	"net/http"

	"wehire/internal/apperr"
	"wehire/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	var input types.CreateCandidateInput
	if err := decodeJSON(r, &input); err != nil {
		s.writeError(w, r, err)
		return
	}

	candidate, err := s.candidates.CreateCandidate(r.Context(), &input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, candidate)
}

func (s *Service) handleSearchCandidates(w http.ResponseWriter, r *http.Request) {
	var filter types.CandidateFilter
	if err := decoder.Decode(&filter, r.URL.Query()); err != nil {
		s.writeError(w, r, apperr.Wrap(apperr.CodeValidation, "invalid query parameters", err))
		return
	}

	candidates, err := s.candidates.SearchCandidates(r.Context(), flow.Param(r.Context(), "jobID"), &filter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, candidates)
}

func (s *Service) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	candidate, err := s.candidates.GetCandidate(r.Context(), flow.Param(r.Context(), "candidateID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, candidate)
}

func (s *Service) handleUpdateCandidate(w http.ResponseWriter, r *http.Request) {
	var update types.CandidateUpdate
	if err := decodeJSON(r, &update); err != nil {
		s.writeError(w, r, err)
		return
	}

	candidate, err := s.candidates.UpdateCandidate(r.Context(), flow.Param(r.Context(), "candidateID"), &update)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, candidate)
}

func (s *Service) handleDeleteCandidate(w http.ResponseWriter, r *http.Request) {
	candidate, err := s.candidates.DeleteCandidate(r.Context(), flow.Param(r.Context(), "candidateID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, candidate)
}

func (s *Service) handleBulkStatusUpdate(w http.ResponseWriter, r *http.Request) {
	var input types.BulkStatusUpdateInput
	if err := decodeJSON(r, &input); err != nil {
		s.writeError(w, r, err)
		return
	}

	updated, err := s.candidates.BulkUpdateStatus(r.Context(), &input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, updated)
}
