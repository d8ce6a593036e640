package server

import (
	"net/http"

	"wehire/internal/apperr"
	"wehire/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) handleListHiringManagers(w http.ResponseWriter, r *http.Request) {
	managers, err := s.jobs.HiringManagers(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, managers)
}

func (s *Service) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var input types.CreateJobInput
	if err := decodeJSON(r, &input); err != nil {
		s.writeError(w, r, err)
		return
	}

	job, err := s.jobs.CreateJob(r.Context(), &input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, job)
}

func (s *Service) handleListJobs(w http.ResponseWriter, r *http.Request) {
	var filter types.JobFilter
	if err := decoder.Decode(&filter, r.URL.Query()); err != nil {
		s.writeError(w, r, apperr.Wrap(apperr.CodeValidation, "invalid query parameters", err))
		return
	}

	jobs, err := s.jobs.ListJobs(r.Context(), &filter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, jobs)
}

func (s *Service) handleJobsByManager(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.jobs.JobsByManager(r.Context(), flow.Param(r.Context(), "managerID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, jobs)
}

func (s *Service) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.jobs.GetJob(r.Context(), flow.Param(r.Context(), "jobID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, job)
}

func (s *Service) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	var update types.JobUpdate
	if err := decodeJSON(r, &update); err != nil {
		s.writeError(w, r, err)
		return
	}

	job, err := s.jobs.UpdateJob(r.Context(), flow.Param(r.Context(), "jobID"), &update)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, job)
}

func (s *Service) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.jobs.DeleteJob(r.Context(), flow.Param(r.Context(), "jobID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, job)
}
