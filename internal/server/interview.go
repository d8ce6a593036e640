package server

import (
	"net/http"
	"strings"

	"wehire/internal/apperr"
	"wehire/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) handleGetStructure(w http.ResponseWriter, r *http.Request) {
	structure, err := s.interview.StructureForJob(r.Context(), flow.Param(r.Context(), "jobID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, structure)
}

func (s *Service) handleCloneStructure(w http.ResponseWriter, r *http.Request) {
	var input types.CloneStructureInput
	if err := decodeJSON(r, &input); err != nil {
		s.writeError(w, r, err)
		return
	}
	if strings.TrimSpace(input.SourceJobID) == "" {
		s.writeError(w, r, apperr.ValidationField("source_job_id", "source_job_id is required"))
		return
	}

	created, err := s.interview.CloneStructure(r.Context(), input.SourceJobID, flow.Param(r.Context(), "jobID"), input.CloneQuestions)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Service) handleListJobCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	jobID := flow.Param(ctx, "jobID")

	if err := s.jobs.RequireJob(ctx, jobID); err != nil {
		s.writeError(w, r, err)
		return
	}

	categories, err := s.interview.ListCategoriesByJob(ctx, jobID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, categories)
}

func (s *Service) handleGetCategoryView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	jobID := flow.Param(ctx, "jobID")

	if err := s.jobs.RequireJob(ctx, jobID); err != nil {
		s.writeError(w, r, err)
		return
	}

	category, err := s.interview.CategoryView(ctx, jobID, flow.Param(ctx, "categoryID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, category)
}

func (s *Service) handleListJobQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	jobID := flow.Param(ctx, "jobID")

	if err := s.jobs.RequireJob(ctx, jobID); err != nil {
		s.writeError(w, r, err)
		return
	}

	questions, err := s.interview.ListQuestionsByJob(ctx, jobID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, questions)
}

func (s *Service) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var input types.CreateCategoryInput
	if err := decodeJSON(r, &input); err != nil {
		s.writeError(w, r, err)
		return
	}

	category, err := s.interview.CreateCategory(r.Context(), &input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, category)
}

func (s *Service) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := s.interview.GetCategory(r.Context(), flow.Param(r.Context(), "categoryID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, category)
}

func (s *Service) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := flow.Param(r.Context(), "categoryID")

	deleted, err := s.interview.DeleteCategory(r.Context(), categoryID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !deleted {
		s.writeError(w, r, apperr.NotFoundf("interview category %s not found", categoryID))
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *Service) handleListCategoryQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	categoryID := flow.Param(ctx, "categoryID")

	if _, err := s.interview.GetCategory(ctx, categoryID); err != nil {
		s.writeError(w, r, err)
		return
	}

	var jobID *string
	if v := r.URL.Query().Get("job_id"); v != "" {
		jobID = &v
	}

	questions, err := s.interview.ListQuestionsByCategory(ctx, categoryID, jobID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, questions)
}

func (s *Service) handleCreateQuestion(w http.ResponseWriter, r *http.Request) {
	var input types.CreateQuestionInput
	if err := decodeJSON(r, &input); err != nil {
		s.writeError(w, r, err)
		return
	}

	question, err := s.interview.CreateQuestion(r.Context(), &input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, question)
}

func (s *Service) handleGetQuestion(w http.ResponseWriter, r *http.Request) {
	question, err := s.interview.GetQuestion(r.Context(), flow.Param(r.Context(), "questionID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, question)
}

func (s *Service) handleUpdateQuestion(w http.ResponseWriter, r *http.Request) {
	var update types.QuestionUpdate
	if err := decodeJSON(r, &update); err != nil {
		s.writeError(w, r, err)
		return
	}

	question, err := s.interview.UpdateQuestion(r.Context(), flow.Param(r.Context(), "questionID"), &update)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, question)
}

func (s *Service) handleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	question, err := s.interview.DeleteQuestion(r.Context(), flow.Param(r.Context(), "questionID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, question)
}
