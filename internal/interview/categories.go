package interview

import (
	"context"
	"strings"

	"wehire/internal/apperr"
	"wehire/pkg/types"

	"github.com/sirupsen/logrus"
)

func (s *Service) CreateCategory(ctx context.Context, input *types.CreateCategoryInput) (*types.InterviewCategory, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperr.ValidationField("name", "name is required")
	}
	if input.DefaultTime <= 0 {
		return nil, apperr.ValidationField("default_time", "default_time must be a positive number of minutes")
	}

	if err := s.requireJob(ctx, input.JobID); err != nil {
		return nil, err
	}

	category := &types.InterviewCategory{
		Name:        name,
		Description: input.Description,
		DefaultTime: input.DefaultTime,
		JobID:       input.JobID,
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (s *Service) GetCategory(ctx context.Context, categoryID string) (*types.InterviewCategory, error) {
	return s.repo.Category(ctx, categoryID)
}

// DeleteCategory removes the category and all of its questions. It reports
// false when the category does not exist.
func (s *Service) DeleteCategory(ctx context.Context, categoryID string) (bool, error) {
	deleted, err := s.repo.DeleteCategory(ctx, categoryID)
	if err != nil {
		s.logger.WithError(err).WithField("category_id", categoryID).Error("failed to delete interview category")
		return false, err
	}

	if deleted {
		s.logger.WithFields(logrus.Fields{"category_id": categoryID}).Info("interview category deleted")
	}

	return deleted, nil
}
