package interview

import (
	"context"

	"wehire/internal/apperr"
	"wehire/pkg/types"

	"github.com/sirupsen/logrus"
)

// BuildDefaultStructure creates the default template categories and their
// questions for jobID in one transaction and returns them with Questions
// populated. It does not check whether the job already has a structure;
// calling it twice duplicates the tree.
func (s *Service) BuildDefaultStructure(ctx context.Context, jobID string) ([]*types.InterviewCategory, error) {
	created := make([]*types.InterviewCategory, 0, len(s.template.Categories))

	err := s.repo.InTx(ctx, func(ctx context.Context) error {
		if err := s.requireJob(ctx, jobID); err != nil {
			return err
		}

		for _, tmplCategory := range s.template.Categories {
			category := &types.InterviewCategory{
				Name:        tmplCategory.Name,
				Description: tmplCategory.Description,
				DefaultTime: tmplCategory.DefaultTime,
				JobID:       jobID,
			}
			if err := s.repo.CreateCategory(ctx, category); err != nil {
				return err
			}

			category.Questions = make([]*types.InterviewQuestion, 0, len(tmplCategory.Questions))
			for _, tmplQuestion := range tmplCategory.Questions {
				question := &types.InterviewQuestion{
					Text:       tmplQuestion.Text,
					Status:     types.QuestionStatusActive,
					MustAsk:    tmplQuestion.MustAsk,
					CategoryID: category.ID,
					JobID:      jobID,
				}
				if err := s.repo.CreateQuestion(ctx, question); err != nil {
					return err
				}
				category.Questions = append(category.Questions, question)
			}

			created = append(created, category)
		}

		return nil
	})
	if err != nil {
		s.logger.WithError(err).WithField("job_id", jobID).Error("failed to build default interview structure")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"job_id":     jobID,
		"categories": len(created),
	}).Info("default interview structure built")

	return created, nil
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
