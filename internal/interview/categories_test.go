package interview

import (
	"context"
	"testing"

	"wehire/internal/apperr"
	"wehire/internal/testutil"
	"wehire/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategory(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()
	jobID := createJob(t, mem, "Backend Engineer")

	tests := []struct {
		name    string
		input   types.CreateCategoryInput
		checkFn func(error) bool
	}{
		{"unknown job", types.CreateCategoryInput{JobID: "missing", Name: "System Design", DefaultTime: 30}, apperr.IsNotFound},
		{"blank name", types.CreateCategoryInput{JobID: jobID, Name: " ", DefaultTime: 30}, apperr.IsValidation},
		{"zero default time", types.CreateCategoryInput{JobID: jobID, Name: "System Design"}, apperr.IsValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateCategory(ctx, &tt.input)
			require.Error(t, err)
			assert.True(t, tt.checkFn(err), err.Error())
		})
	}

	category, err := svc.CreateCategory(ctx, &types.CreateCategoryInput{
		JobID:       jobID,
		Name:        "  System Design ",
		Description: "Large scale design",
		DefaultTime: 50,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, category.ID)
	assert.Equal(t, "System Design", category.Name)

	stored, err := svc.GetCategory(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, jobID, stored.JobID)
	assert.Equal(t, 50, stored.DefaultTime)
}

func TestDeleteCategory_CascadesQuestions(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	jobID := createJob(t, mem, "Backend Engineer")
	categories := createStructure(t, svc, jobID, 4, 1)
	target := categories[0]

	categoriesBefore, questionsBefore := mem.RowCounts()

	deleted, err := svc.DeleteCategory(ctx, target.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	categoriesAfter, questionsAfter := mem.RowCounts()
	assert.Equal(t, 4+1, (categoriesBefore-categoriesAfter)+(questionsBefore-questionsAfter))
	assert.Equal(t, 1, categoriesBefore-categoriesAfter)

	questions, err := svc.ListQuestionsByCategory(ctx, target.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, questions)

	remaining, err := svc.ListQuestionsByCategory(ctx, categories[1].ID, nil)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)

	_, err = svc.GetCategory(ctx, target.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestDeleteCategory_Missing(t *testing.T) {
	svc, _ := newTestService(t)

	deleted, err := svc.DeleteCategory(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestDeleteCategory_FailureLeavesStructure(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	jobID := createJob(t, mem, "Backend Engineer")
	target := createStructure(t, svc, jobID, 3)[0]
	mem.FailOn("DeleteCategory", 1, testutil.ErrInjected)

	deleted, err := svc.DeleteCategory(ctx, target.ID)
	assert.False(t, deleted)
	assert.True(t, apperr.IsTransactionFailure(err))

	questions, err := svc.ListQuestionsByCategory(ctx, target.ID, nil)
	require.NoError(t, err)
	assert.Len(t, questions, 3)
}
