package interview

import (
	"context"
	"testing"

	"wehire/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoriesForJob_ConcreteScenario(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()
	jobID := createJob(t, mem, "Platform Engineer")

	categories, err := svc.ListCategoriesByJob(ctx, jobID)
	require.NoError(t, err)
	assert.Empty(t, categories)

	_, err = svc.BuildDefaultStructure(ctx, jobID)
	require.NoError(t, err)

	categories, err = svc.ListCategoriesByJob(ctx, jobID)
	require.NoError(t, err)
	require.Len(t, categories, 3)

	names := []string{categories[0].Name, categories[1].Name, categories[2].Name}
	times := []int{categories[0].DefaultTime, categories[1].DefaultTime, categories[2].DefaultTime}
	assert.Equal(t, []string{"Technical Skills", "Problem Solving", "Behavioral"}, names)
	assert.Equal(t, []int{45, 60, 30}, times)
}

func TestCategoryView(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	jobID := createJob(t, mem, "Backend Engineer")
	otherJobID := createJob(t, mem, "Designer")
	category := createStructure(t, svc, jobID, 2)[0]

	view, err := svc.CategoryView(ctx, jobID, category.ID)
	require.NoError(t, err)
	assert.Equal(t, category.ID, view.ID)
	assert.Len(t, view.Questions, 2)

	view, err = svc.CategoryView(ctx, otherJobID, category.ID)
	require.NoError(t, err)
	assert.NotNil(t, view.Questions)
	assert.Empty(t, view.Questions)

	_, err = svc.CategoryView(ctx, jobID, "missing")
	assert.True(t, apperr.IsNotFound(err))
}

func TestClonedCategoryViewShowsOnlyItsJob(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	sourceJobID := createJob(t, mem, "Source")
	targetJobID := createJob(t, mem, "Target")
	createStructure(t, svc, sourceJobID, 2)

	created, err := svc.CloneStructure(ctx, sourceJobID, targetJobID, true)
	require.NoError(t, err)
	require.Len(t, created, 1)

	view, err := svc.CategoryView(ctx, targetJobID, created[0].ID)
	require.NoError(t, err)
	require.Len(t, view.Questions, 2)
	for _, question := range view.Questions {
		assert.Equal(t, targetJobID, question.JobID)
	}
}

func TestStructureForJob(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()
	jobID := createJob(t, mem, "Backend Engineer")

	_, err := svc.BuildDefaultStructure(ctx, jobID)
	require.NoError(t, err)

	structure, err := svc.StructureForJob(ctx, jobID)
	require.NoError(t, err)
	require.Len(t, structure, 3)
	for _, category := range structure {
		assert.Len(t, category.Questions, 3)
	}

	_, err = svc.StructureForJob(ctx, "missing")
	assert.True(t, apperr.IsNotFound(err))
}
