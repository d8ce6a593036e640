// Package interview owns the per-job interview structure: categories, their
// questions, the default template applied to new jobs and cloning between
// jobs.
package interview

import (
	"context"

	"wehire/pkg/types"

	"github.com/sirupsen/logrus"
)

// Repository is the persistence the interview service needs. *store.Store
// satisfies it.
type Repository interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error

	JobExists(ctx context.Context, jobID string) (bool, error)

	CreateCategory(ctx context.Context, category *types.InterviewCategory) error
	Category(ctx context.Context, id string) (*types.InterviewCategory, error)
	CategoriesByJob(ctx context.Context, jobID string) ([]*types.InterviewCategory, error)
	DeleteCategory(ctx context.Context, id string) (bool, error)

	CreateQuestion(ctx context.Context, question *types.InterviewQuestion) error
	Question(ctx context.Context, id string) (*types.InterviewQuestion, error)
	QuestionsByJob(ctx context.Context, jobID string) ([]*types.InterviewQuestion, error)
	QuestionsByCategory(ctx context.Context, categoryID string, jobID *string) ([]*types.InterviewQuestion, error)
	UpdateQuestion(ctx context.Context, id string, update *types.QuestionUpdate) (*types.InterviewQuestion, error)
	DeleteQuestion(ctx context.Context, id string) (*types.InterviewQuestion, error)
}

type Service struct {
	repo     Repository
	logger   logrus.FieldLogger
	template *StructureTemplate
}

func New(repo Repository, logger logrus.FieldLogger) *Service {
	return &Service{
		repo:     repo,
		logger:   logger,
		template: DefaultTemplate(),
	}
}
