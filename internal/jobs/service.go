// Package jobs manages job requisitions and hiring-manager assignment. New
// jobs receive the default interview structure in the same transaction.
package jobs

import (
	"context"
	"strings"

	"wehire/internal/apperr"
	"wehire/pkg/types"

	"github.com/sirupsen/logrus"
)

type Repository interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error

	CreateJob(ctx context.Context, job *types.Job) error
	Job(ctx context.Context, jobID string) (*types.Job, error)
	Jobs(ctx context.Context, filter *types.JobFilter) ([]*types.Job, error)
	JobsByManager(ctx context.Context, managerID string) ([]*types.Job, error)
	UpdateJob(ctx context.Context, jobID string, update *types.JobUpdate) (*types.Job, error)
	DeleteJob(ctx context.Context, jobID string) (bool, error)

	User(ctx context.Context, userID string) (*types.User, error)
	UsersByRole(ctx context.Context, role types.UserRole) ([]*types.User, error)
}

// StructureBuilder populates the interview structure of a new job.
type StructureBuilder interface {
	BuildDefaultStructure(ctx context.Context, jobID string) ([]*types.InterviewCategory, error)
}

type Service struct {
	repo      Repository
	structure StructureBuilder
	logger    logrus.FieldLogger
}

func New(repo Repository, structure StructureBuilder, logger logrus.FieldLogger) *Service {
	return &Service{repo: repo, structure: structure, logger: logger}
}

// CreateJob stores the job and builds its default interview structure. If
// either step fails nothing is kept.
func (s *Service) CreateJob(ctx context.Context, input *types.CreateJobInput) (*types.Job, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperr.ValidationField("title", "title is required")
	}

	status := input.Status
	if status == "" {
		status = types.JobStatusDraft
	}
	if !status.Valid() {
		return nil, apperr.ValidationField("status", "status must be one of draft, open, closed, in_review")
	}

	if input.AssignedTo != nil {
		if err := s.requireHiringManager(ctx, *input.AssignedTo); err != nil {
			return nil, err
		}
	}

	job := &types.Job{
		Title:        title,
		Description:  input.Description,
		Requirements: input.Requirements,
		EndDate:      input.EndDate,
		AssignedTo:   input.AssignedTo,
		Status:       status,
		Location:     input.Location,
		Salary:       input.Salary,
		Department:   input.Department,
	}

	err := s.repo.InTx(ctx, func(ctx context.Context) error {
		if err := s.repo.CreateJob(ctx, job); err != nil {
			return err
		}

		_, err := s.structure.BuildDefaultStructure(ctx, job.ID)
		return err
	})
	if err != nil {
		s.logger.WithError(err).Error("failed to create job")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{"job_id": job.ID, "title": job.Title}).Info("job created")

	return job, nil
}

// GetJob returns the job together with its assigned hiring manager.
func (s *Service) GetJob(ctx context.Context, jobID string) (*types.JobDetail, error) {
	job, err := s.repo.Job(ctx, jobID)
	if err != nil {
		return nil, err
	}

	detail := &types.JobDetail{Job: job}
	if job.AssignedTo != nil {
		manager, err := s.repo.User(ctx, *job.AssignedTo)
		if err != nil && !apperr.IsNotFound(err) {
			return nil, err
		}
		detail.AssignedManager = manager
	}

	return detail, nil
}

func (s *Service) ListJobs(ctx context.Context, filter *types.JobFilter) ([]*types.Job, error) {
	if filter != nil && filter.Status != "" && !types.JobStatus(filter.Status).Valid() {
		return nil, apperr.ValidationField("status", "status must be one of draft, open, closed, in_review")
	}

	return s.repo.Jobs(ctx, filter)
}

// JobsByManager lists the jobs assigned to a hiring manager. An unknown user
// or a user with another role is NotFound.
func (s *Service) JobsByManager(ctx context.Context, managerID string) ([]*types.Job, error) {
	manager, err := s.repo.User(ctx, managerID)
	if err != nil {
		return nil, err
	}
	if manager.Role != types.UserRoleHiringManager {
		return nil, apperr.NotFoundf("hiring manager %s not found", managerID)
	}

	return s.repo.JobsByManager(ctx, managerID)
}

func (s *Service) HiringManagers(ctx context.Context) ([]*types.User, error) {
	return s.repo.UsersByRole(ctx, types.UserRoleHiringManager)
}

func (s *Service) UpdateJob(ctx context.Context, jobID string, update *types.JobUpdate) (*types.Job, error) {
	if update.Title != nil && strings.TrimSpace(*update.Title) == "" {
		return nil, apperr.ValidationField("title", "title cannot be empty")
	}
	if update.Status != nil && !update.Status.Valid() {
		return nil, apperr.ValidationField("status", "status must be one of draft, open, closed, in_review")
	}

	if _, err := s.repo.Job(ctx, jobID); err != nil {
		return nil, err
	}

	if update.AssignedTo != nil {
		if err := s.requireHiringManager(ctx, *update.AssignedTo); err != nil {
			return nil, err
		}
	}

	return s.repo.UpdateJob(ctx, jobID, update)
}

// DeleteJob removes the job with its interview structure and candidates and
// returns the removed job.
func (s *Service) DeleteJob(ctx context.Context, jobID string) (*types.Job, error) {
	job, err := s.repo.Job(ctx, jobID)
	if err != nil {
		return nil, err
	}

	deleted, err := s.repo.DeleteJob(ctx, jobID)
	if err != nil {
		s.logger.WithError(err).WithField("job_id", jobID).Error("failed to delete job")
		return nil, err
	}
	if !deleted {
		return nil, apperr.NotFoundf("job %s not found", jobID)
	}

	s.logger.WithField("job_id", jobID).Info("job deleted")

	return job, nil
}

func (s *Service) requireHiringManager(ctx context.Context, userID string) error {
	manager, err := s.repo.User(ctx, userID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return apperr.ValidationField("assigned_to", "invalid hiring manager ID")
		}
		return err
	}
	if manager.Role != types.UserRoleHiringManager {
		return apperr.ValidationField("assigned_to", "invalid hiring manager ID")
	}
	return nil
}

// RequireJob returns NotFound unless the job exists.
func (s *Service) RequireJob(ctx context.Context, jobID string) error {
	_, err := s.repo.Job(ctx, jobID)
	return err
}
