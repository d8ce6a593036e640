package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"wehire/internal/auth"
	"wehire/internal/candidates"
	"wehire/internal/interview"
	"wehire/internal/jobs"
	"wehire/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/sirupsen/logrus"
)

var decoder = form.NewDecoder()

type Service struct {
	logger *logrus.Logger
	config *types.Config

	auth       *auth.Service
	jobs       *jobs.Service
	interview  *interview.Service
	candidates *candidates.Service

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	authService *auth.Service,
	jobService *jobs.Service,
	interviewService *interview.Service,
	candidateService *candidates.Service,
) *Service {
	mux := flow.New()

	s := &Service{
		logger:     logger,
		config:     config,
		auth:       authService,
		jobs:       jobService,
		interview:  interviewService,
		candidates: candidateService,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)
	s.server.Handler = s.StripTrailingSlash(mux)

	return s
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the routed handler, mainly for tests.
func (s *Service) Handler() http.Handler {
	return s.server.Handler
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)

	r.HandleFunc("/api/auth/signup", s.handleSignup, http.MethodPost)
	r.HandleFunc("/api/auth/login", s.handleLogin, http.MethodPost)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)

		r.HandleFunc("/api/hiring-managers", s.handleListHiringManagers, http.MethodGet)

		r.HandleFunc("/api/jobs", s.handleListJobs, http.MethodGet)
		r.HandleFunc("/api/jobs/manager/:managerID", s.handleJobsByManager, http.MethodGet)
		r.HandleFunc("/api/jobs/:jobID", s.handleGetJob, http.MethodGet)
		r.HandleFunc("/api/jobs/:jobID/structure", s.handleGetStructure, http.MethodGet)
		r.HandleFunc("/api/jobs/:jobID/categories", s.handleListJobCategories, http.MethodGet)
		r.HandleFunc("/api/jobs/:jobID/categories/:categoryID", s.handleGetCategoryView, http.MethodGet)
		r.HandleFunc("/api/jobs/:jobID/questions", s.handleListJobQuestions, http.MethodGet)

		r.HandleFunc("/api/interview/categories/:categoryID", s.handleGetCategory, http.MethodGet)
		r.HandleFunc("/api/interview/categories/:categoryID/questions", s.handleListCategoryQuestions, http.MethodGet)
		r.HandleFunc("/api/interview/questions/:questionID", s.handleGetQuestion, http.MethodGet)

		r.HandleFunc("/api/candidates/job/:jobID", s.handleSearchCandidates, http.MethodGet)
		r.HandleFunc("/api/candidates/:candidateID", s.handleGetCandidate, http.MethodGet)

		r.Group(func(r *flow.Mux) {
			r.Use(s.RequireRole(types.UserRoleHR, types.UserRoleHiringManager))

			r.HandleFunc("/api/jobs", s.handleCreateJob, http.MethodPost)
			r.HandleFunc("/api/jobs/:jobID", s.handleUpdateJob, http.MethodPut)
			r.HandleFunc("/api/jobs/:jobID/structure/clone", s.handleCloneStructure, http.MethodPost)

			r.HandleFunc("/api/interview/categories", s.handleCreateCategory, http.MethodPost)
			r.HandleFunc("/api/interview/categories/:categoryID", s.handleDeleteCategory, http.MethodDelete)
			r.HandleFunc("/api/interview/questions", s.handleCreateQuestion, http.MethodPost)
			r.HandleFunc("/api/interview/questions/:questionID", s.handleUpdateQuestion, http.MethodPatch)
			r.HandleFunc("/api/interview/questions/:questionID", s.handleDeleteQuestion, http.MethodDelete)

			r.HandleFunc("/api/candidates", s.handleCreateCandidate, http.MethodPost)
			r.HandleFunc("/api/candidates/bulk-status-update", s.handleBulkStatusUpdate, http.MethodPost)
			r.HandleFunc("/api/candidates/:candidateID", s.handleUpdateCandidate, http.MethodPut)
			r.HandleFunc("/api/candidates/:candidateID", s.handleDeleteCandidate, http.MethodDelete)
		})

		r.Group(func(r *flow.Mux) {
			r.Use(s.RequireRole(types.UserRoleHR))

			r.HandleFunc("/api/jobs/:jobID", s.handleDeleteJob, http.MethodDelete)
		})
	})
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
