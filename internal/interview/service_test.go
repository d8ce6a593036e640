package interview

import (
	"context"
	"io"
	"testing"

	"wehire/internal/testutil"
	"wehire/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *testutil.MemStore) {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	mem := testutil.NewMemStore()
	return New(mem, logger), mem
}

func createJob(t *testing.T, mem *testutil.MemStore, title string) string {
	t.Helper()

	job := &types.Job{Title: title}
	require.NoError(t, mem.CreateJob(context.Background(), job))
	return job.ID
}

// createStructure adds one category per entry in questionCounts, each with
// that many questions.
func createStructure(t *testing.T, svc *Service, jobID string, questionCounts ...int) []*types.InterviewCategory {
	t.Helper()
	ctx := context.Background()

	categories := make([]*types.InterviewCategory, 0, len(questionCounts))
	for i, count := range questionCounts {
		category, err := svc.CreateCategory(ctx, &types.CreateCategoryInput{
			JobID:       jobID,
			Name:        []string{"Architecture", "Communication", "Leadership"}[i%3],
			Description: "custom",
			DefaultTime: 20 + i,
		})
		require.NoError(t, err)

		for j := 0; j < count; j++ {
			question, err := svc.CreateQuestion(ctx, &types.CreateQuestionInput{
				Text:       category.Name + " question",
				MustAsk:    j%2 == 0,
				CategoryID: category.ID,
			})
			require.NoError(t, err)
			category.Questions = append(category.Questions, question)
		}

		categories = append(categories, category)
	}

	return categories
}
