package seed

import (
	"context"
	"io"
	"testing"
	"time"

	"wehire/internal/auth"
	"wehire/internal/interview"
	jobsvc "wehire/internal/jobs"
	"wehire/internal/testutil"
	"wehire/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSeeder(t *testing.T) (*Seeder, *testutil.MemStore) {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	mem := testutil.NewMemStore()
	authService := auth.New(mem, auth.NewTokens("seed-secret", time.Minute), logger)
	jobService := jobsvc.New(mem, interview.New(mem, logger), logger)

	return New(mem, authService, jobService, logger), mem
}

func TestRun_SeedsUsersJobsAndStructure(t *testing.T) {
	seeder, mem := newTestSeeder(t)
	ctx := context.Background()

	require.NoError(t, seeder.Run(ctx))

	managers, err := mem.UsersByRole(ctx, types.UserRoleHiringManager)
	require.NoError(t, err)
	assert.Len(t, managers, 2)

	hr, err := mem.UserByUsername(ctx, "hr_admin")
	require.NoError(t, err)
	assert.Equal(t, types.UserRoleHR, hr.Role)

	seeded, err := mem.Jobs(ctx, nil)
	require.NoError(t, err)
	require.Len(t, seeded, 3)
	for _, job := range seeded {
		assert.NotNil(t, job.AssignedTo, job.Title)
		assert.NotNil(t, job.EndDate, job.Title)
	}

	categories, questions := mem.RowCounts()
	assert.Equal(t, 9, categories)
	assert.Equal(t, 27, questions)
}

func TestRun_IsIdempotent(t *testing.T) {
	seeder, mem := newTestSeeder(t)
	ctx := context.Background()

	require.NoError(t, seeder.Run(ctx))
	require.NoError(t, seeder.Run(ctx))

	assert.Equal(t, 4, mem.Calls("CreateUser"))
	assert.Equal(t, 3, mem.Calls("CreateJob"))

	categories, _ := mem.RowCounts()
	assert.Equal(t, 9, categories)
}

func TestSeedJobs_WithoutManagersLeavesJobsUnassigned(t *testing.T) {
	seeder, mem := newTestSeeder(t)
	ctx := context.Background()

	require.NoError(t, seeder.SeedJobs(ctx))

	seeded, err := mem.Jobs(ctx, nil)
	require.NoError(t, err)
	require.Len(t, seeded, 3)
	for _, job := range seeded {
		assert.Nil(t, job.AssignedTo, job.Title)
	}
}
