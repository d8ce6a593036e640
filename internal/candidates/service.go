// Package candidates tracks applicants through the hiring pipeline of a job.
package candidates

import (
	"context"
	"strings"

	"wehire/internal/apperr"
	"wehire/internal/utils"
	"wehire/pkg/types"

	"github.com/sirupsen/logrus"
)

type Repository interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error

	JobExists(ctx context.Context, jobID string) (bool, error)

	CreateCandidate(ctx context.Context, candidate *types.Candidate) error
	Candidate(ctx context.Context, candidateID string) (*types.Candidate, error)
	SearchCandidates(ctx context.Context, jobID string, filter *types.CandidateFilter) ([]*types.Candidate, error)
	UpdateCandidate(ctx context.Context, candidateID string, update *types.CandidateUpdate) (*types.Candidate, error)
	DeleteCandidate(ctx context.Context, candidateID string) (*types.Candidate, error)
}

type Service struct {
	repo   Repository
	logger logrus.FieldLogger
}

func New(repo Repository, logger logrus.FieldLogger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) CreateCandidate(ctx context.Context, input *types.CreateCandidateInput) (*types.Candidate, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperr.ValidationField("name", "name is required")
	}
	if !strings.Contains(input.Email, "@") {
		return nil, apperr.ValidationField("email", "a valid email is required")
	}
	if !input.Status.Valid() {
		return nil, invalidStatus()
	}
	if err := validateRating(input.Rating); err != nil {
		return nil, err
	}

	if err := s.requireJob(ctx, input.JobID); err != nil {
		return nil, err
	}

	candidate := &types.Candidate{
		Name:        strings.TrimSpace(input.Name),
		Email:       strings.TrimSpace(input.Email),
		Phone:       input.Phone,
		Education:   input.Education,
		Experience:  input.Experience,
		Status:      input.Status,
		ResumeURL:   utils.TrimmedOrNil(input.ResumeURL),
		CoverLetter: input.CoverLetter,
		Skills:      input.Skills,
		Rating:      input.Rating,
		AvatarURL:   utils.TrimmedOrNil(input.AvatarURL),
		Notes:       utils.TrimmedOrNil(input.Notes),
		JobID:       input.JobID,
	}
	if err := s.repo.CreateCandidate(ctx, candidate); err != nil {
		return nil, err
	}

	return candidate, nil
}

func (s *Service) GetCandidate(ctx context.Context, candidateID string) (*types.Candidate, error) {
	return s.repo.Candidate(ctx, candidateID)
}

// SearchCandidates lists the candidates of an existing job that match filter.
func (s *Service) SearchCandidates(ctx context.Context, jobID string, filter *types.CandidateFilter) ([]*types.Candidate, error) {
	if filter != nil {
		if filter.Status != nil && !types.CandidateStatus(*filter.Status).Valid() {
			return nil, invalidStatus()
		}
		for _, rating := range []*float64{filter.MinRating, filter.MaxRating} {
			if rating != nil {
				if err := validateRating(*rating); err != nil {
					return nil, err
				}
			}
		}
	}

	if err := s.requireJob(ctx, jobID); err != nil {
		return nil, err
	}

	return s.repo.SearchCandidates(ctx, jobID, filter)
}

func (s *Service) UpdateCandidate(ctx context.Context, candidateID string, update *types.CandidateUpdate) (*types.Candidate, error) {
	if update.Status != nil && !update.Status.Valid() {
		return nil, invalidStatus()
	}
	if update.Rating != nil {
		if err := validateRating(*update.Rating); err != nil {
			return nil, err
		}
	}

	return s.repo.UpdateCandidate(ctx, candidateID, update)
}

func (s *Service) DeleteCandidate(ctx context.Context, candidateID string) (*types.Candidate, error) {
	return s.repo.DeleteCandidate(ctx, candidateID)
}

// BulkUpdateStatus moves every listed candidate to status in one transaction.
// Unknown IDs are skipped; the updated candidates are returned.
func (s *Service) BulkUpdateStatus(ctx context.Context, input *types.BulkStatusUpdateInput) ([]*types.Candidate, error) {
	if !input.NewStatus.Valid() {
		return nil, invalidStatus()
	}

	updated := make([]*types.Candidate, 0, len(input.CandidateIDs))
	err := s.repo.InTx(ctx, func(ctx context.Context) error {
		status := input.NewStatus
		for _, candidateID := range input.CandidateIDs {
			candidate, err := s.repo.UpdateCandidate(ctx, candidateID, &types.CandidateUpdate{Status: &status})
			if err != nil {
				if apperr.IsNotFound(err) {
					continue
				}
				return err
			}
			updated = append(updated, candidate)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"requested": len(input.CandidateIDs),
		"updated":   len(updated),
		"status":    input.NewStatus.String(),
	}).Info("candidate statuses updated")

	return updated, nil
}

func (s *Service) requireJob(ctx context.Context, jobID string) error {
	exists, err := s.repo.JobExists(ctx, jobID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFoundf("job %s not found", jobID)
	}
	return nil
}

func invalidStatus() error {
	return apperr.ValidationField("status", "invalid status value, must be 0, 1, 2 or 3")
}

func validateRating(rating float64) error {
	if rating < 0 || rating > 5 {
		return apperr.ValidationField("rating", "rating must be between 0 and 5")
	}
	return nil
}
