package interview

import (
	"context"

	"wehire/pkg/types"
)

func (s *Service) ListCategoriesByJob(ctx context.Context, jobID string) ([]*types.InterviewCategory, error) {
	return s.repo.CategoriesByJob(ctx, jobID)
}

func (s *Service) ListQuestionsByJob(ctx context.Context, jobID string) ([]*types.InterviewQuestion, error) {
	return s.repo.QuestionsByJob(ctx, jobID)
}

// ListQuestionsByCategory lists a category's questions, restricted to jobID
// when it is non-nil.
func (s *Service) ListQuestionsByCategory(ctx context.Context, categoryID string, jobID *string) ([]*types.InterviewQuestion, error) {
	return s.repo.QuestionsByCategory(ctx, categoryID, jobID)
}

// CategoryView returns the category with Questions holding only the
// questions that belong to jobID.
func (s *Service) CategoryView(ctx context.Context, jobID, categoryID string) (*types.InterviewCategory, error) {
	category, err := s.repo.Category(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	questions, err := s.ListQuestionsByCategory(ctx, categoryID, &jobID)
	if err != nil {
		return nil, err
	}

	category.Questions = questions
	return category, nil
}

// StructureForJob returns every category of the job, each holding its
// job-scoped questions.
func (s *Service) StructureForJob(ctx context.Context, jobID string) ([]*types.InterviewCategory, error) {
	if err := s.requireJob(ctx, jobID); err != nil {
		return nil, err
	}

	categories, err := s.ListCategoriesByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	for _, category := range categories {
		questions, err := s.ListQuestionsByCategory(ctx, category.ID, &jobID)
		if err != nil {
			return nil, err
		}
		category.Questions = questions
	}

	return categories, nil
}
