package interview

import (
	"context"

	"wehire/pkg/types"

	"github.com/sirupsen/logrus"
)

// CloneStructure copies every category of sourceJobID onto targetJobID as new
// rows, and their source-job questions too when cloneQuestions is set. The
// copy is one transaction. A source job without categories yields an empty
// slice and no error; a missing source or target job yields NotFound.
func (s *Service) CloneStructure(ctx context.Context, sourceJobID, targetJobID string, cloneQuestions bool) ([]*types.InterviewCategory, error) {
	var created []*types.InterviewCategory

	err := s.repo.InTx(ctx, func(ctx context.Context) error {
		if err := s.requireJob(ctx, sourceJobID); err != nil {
			return err
		}
		if err := s.requireJob(ctx, targetJobID); err != nil {
			return err
		}

		sourceCategories, err := s.ListCategoriesByJob(ctx, sourceJobID)
		if err != nil {
			return err
		}

		created = make([]*types.InterviewCategory, 0, len(sourceCategories))
		for _, source := range sourceCategories {
			category := &types.InterviewCategory{
				Name:        source.Name,
				Description: source.Description,
				DefaultTime: source.DefaultTime,
				JobID:       targetJobID,
			}
			if err := s.repo.CreateCategory(ctx, category); err != nil {
				return err
			}

			if cloneQuestions {
				if err := s.cloneQuestions(ctx, source, category); err != nil {
					return err
				}
			}

			created = append(created, category)
		}

		return nil
	})
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"source_job_id": sourceJobID,
			"target_job_id": targetJobID,
		}).Error("failed to clone interview structure")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"source_job_id":   sourceJobID,
		"target_job_id":   targetJobID,
		"categories":      len(created),
		"clone_questions": cloneQuestions,
	}).Info("interview structure cloned")

	return created, nil
}

func (s *Service) cloneQuestions(ctx context.Context, source, target *types.InterviewCategory) error {
	sourceQuestions, err := s.ListQuestionsByCategory(ctx, source.ID, &source.JobID)
	if err != nil {
		return err
	}

	target.Questions = make([]*types.InterviewQuestion, 0, len(sourceQuestions))
	for _, sourceQuestion := range sourceQuestions {
		question := &types.InterviewQuestion{
			Text:       sourceQuestion.Text,
			Status:     sourceQuestion.Status,
			MustAsk:    sourceQuestion.MustAsk,
			CategoryID: target.ID,
			JobID:      target.JobID,
		}
		if err := s.repo.CreateQuestion(ctx, question); err != nil {
			return err
		}
		target.Questions = append(target.Questions, question)
	}

	return nil
}
