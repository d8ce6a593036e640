package interview

import (
	"context"
	"strings"

	"wehire/internal/apperr"
	"wehire/pkg/types"
)

// CreateQuestion adds a question to an existing category. The question takes
// the category's job; a JobID naming any other job is rejected.
func (s *Service) CreateQuestion(ctx context.Context, input *types.CreateQuestionInput) (*types.InterviewQuestion, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, apperr.ValidationField("text", "text is required")
	}

	category, err := s.repo.Category(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}

	if input.JobID != "" && input.JobID != category.JobID {
		return nil, apperr.IntegrityViolationf("category %s does not belong to job %s", category.ID, input.JobID)
	}

	status := input.Status
	if status == "" {
		status = types.QuestionStatusActive
	}

	question := &types.InterviewQuestion{
		Text:       input.Text,
		Status:     status,
		MustAsk:    input.MustAsk,
		CategoryID: category.ID,
		JobID:      category.JobID,
	}
	if err := s.repo.CreateQuestion(ctx, question); err != nil {
		return nil, err
	}

	return question, nil
}

func (s *Service) GetQuestion(ctx context.Context, questionID string) (*types.InterviewQuestion, error) {
	return s.repo.Question(ctx, questionID)
}

// UpdateQuestion applies a partial update. Moving the question to a category
// of another job fails with IntegrityViolation and writes nothing.
func (s *Service) UpdateQuestion(ctx context.Context, questionID string, update *types.QuestionUpdate) (*types.InterviewQuestion, error) {
	var updated *types.InterviewQuestion

	err := s.repo.InTx(ctx, func(ctx context.Context) error {
		current, err := s.repo.Question(ctx, questionID)
		if err != nil {
			return err
		}

		if update.CategoryID != nil && *update.CategoryID != current.CategoryID {
			target, err := s.repo.Category(ctx, *update.CategoryID)
			if err != nil {
				return err
			}
			if target.JobID != current.JobID {
				return apperr.IntegrityViolationf(
					"category %s belongs to job %s, question %s belongs to job %s",
					target.ID, target.JobID, current.ID, current.JobID,
				)
			}
		}

		updated, err = s.repo.UpdateQuestion(ctx, questionID, update)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *Service) DeleteQuestion(ctx context.Context, questionID string) (*types.InterviewQuestion, error) {
	return s.repo.DeleteQuestion(ctx, questionID)
}
