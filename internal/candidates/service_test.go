package candidates

import (
	"context"
	"io"
	"testing"

	"wehire/internal/apperr"
	"wehire/internal/testutil"
	"wehire/internal/utils"
	"wehire/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *testutil.MemStore, string) {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	mem := testutil.NewMemStore()
	job := &types.Job{Title: "Senior Software Engineer"}
	require.NoError(t, mem.CreateJob(context.Background(), job))

	return New(mem, logger), mem, job.ID
}

func seedCandidates(t *testing.T, svc *Service, jobID string) []*types.Candidate {
	t.Helper()

	inputs := []types.CreateCandidateInput{
		{Name: "Ada Lovelace", Email: "ada@example.com", Skills: "math, go", Rating: 4.5, Status: types.CandidateStatusInterview},
		{Name: "Alan Turing", Email: "alan@example.com", Skills: "cryptography", Rating: 3},
		{Name: "Grace Hopper", Email: "grace@example.com", Skills: "cobol, compilers", Rating: 5},
	}

	created := make([]*types.Candidate, 0, len(inputs))
	for _, input := range inputs {
		input.JobID = jobID
		candidate, err := svc.CreateCandidate(context.Background(), &input)
		require.NoError(t, err)
		created = append(created, candidate)
	}
	return created
}

func TestCreateCandidate(t *testing.T) {
	svc, _, jobID := newTestService(t)
	ctx := context.Background()

	candidate, err := svc.CreateCandidate(ctx, &types.CreateCandidateInput{
		Name:  " Ada Lovelace ",
		Email: "ada@example.com",
		Notes: utils.StringPtr("  "),
		JobID: jobID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, candidate.ID)
	assert.Nil(t, candidate.Notes)
	assert.Equal(t, "Ada Lovelace", candidate.Name)
	assert.Equal(t, types.CandidateStatusScreening, candidate.Status)
	assert.False(t, candidate.AppliedDate.IsZero())

	_, err = svc.CreateCandidate(ctx, &types.CreateCandidateInput{Name: "Other", Email: "ada@example.com", JobID: jobID})
	assert.Equal(t, apperr.CodeConflict, apperr.CodeOf(err))

	_, err = svc.CreateCandidate(ctx, &types.CreateCandidateInput{Name: "Lost", Email: "lost@example.com", JobID: "missing"})
	assert.True(t, apperr.IsNotFound(err))

	_, err = svc.CreateCandidate(ctx, &types.CreateCandidateInput{Name: "Bad", Email: "bad@example.com", Rating: 7, JobID: jobID})
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.CreateCandidate(ctx, &types.CreateCandidateInput{Name: "Bad", Email: "bad@example.com", Status: 9, JobID: jobID})
	assert.True(t, apperr.IsValidation(err))
}

func TestSearchCandidates(t *testing.T) {
	svc, _, jobID := newTestService(t)
	ctx := context.Background()
	seedCandidates(t, svc, jobID)

	tests := []struct {
		name   string
		filter *types.CandidateFilter
		want   []string
	}{
		{"no filter", nil, []string{"Ada Lovelace", "Alan Turing", "Grace Hopper"}},
		{"search by skill", &types.CandidateFilter{Search: "COBOL"}, []string{"Grace Hopper"}},
		{"search by email", &types.CandidateFilter{Search: "alan@"}, []string{"Alan Turing"}},
		{"status", &types.CandidateFilter{Status: utils.IntPtr(1)}, []string{"Ada Lovelace"}},
		{"rating range", &types.CandidateFilter{MinRating: utils.Float64Ptr(4), MaxRating: utils.Float64Ptr(4.9)}, []string{"Ada Lovelace"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates, err := svc.SearchCandidates(ctx, jobID, tt.filter)
			require.NoError(t, err)

			names := make([]string, 0, len(candidates))
			for _, candidate := range candidates {
				names = append(names, candidate.Name)
			}
			assert.ElementsMatch(t, tt.want, names)
		})
	}

	_, err := svc.SearchCandidates(ctx, "missing", nil)
	assert.True(t, apperr.IsNotFound(err))

	_, err = svc.SearchCandidates(ctx, jobID, &types.CandidateFilter{Status: utils.IntPtr(4)})
	assert.True(t, apperr.IsValidation(err))
}

func TestUpdateCandidate(t *testing.T) {
	svc, _, jobID := newTestService(t)
	ctx := context.Background()
	original := seedCandidates(t, svc, jobID)[1]

	status := types.CandidateStatusHired
	updated, err := svc.UpdateCandidate(ctx, original.ID, &types.CandidateUpdate{
		Status: &status,
		Notes:  utils.StringPtr("strong offer"),
	})
	require.NoError(t, err)
	assert.Equal(t, types.CandidateStatusHired, updated.Status)
	assert.Equal(t, "strong offer", utils.PtrString(updated.Notes))
	assert.Equal(t, original.Email, updated.Email)
	assert.Equal(t, original.Rating, updated.Rating)

	_, err = svc.UpdateCandidate(ctx, original.ID, &types.CandidateUpdate{Rating: utils.Float64Ptr(-1)})
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.UpdateCandidate(ctx, "missing", &types.CandidateUpdate{Status: &status})
	assert.True(t, apperr.IsNotFound(err))
}

func TestDeleteCandidate(t *testing.T) {
	svc, mem, jobID := newTestService(t)
	ctx := context.Background()
	candidate := seedCandidates(t, svc, jobID)[0]

	deleted, err := svc.DeleteCandidate(ctx, candidate.ID)
	require.NoError(t, err)
	assert.Equal(t, candidate.ID, deleted.ID)
	assert.Equal(t, 2, mem.CandidateCount())

	_, err = svc.GetCandidate(ctx, candidate.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestBulkUpdateStatus(t *testing.T) {
	svc, _, jobID := newTestService(t)
	ctx := context.Background()
	seeded := seedCandidates(t, svc, jobID)

	updated, err := svc.BulkUpdateStatus(ctx, &types.BulkStatusUpdateInput{
		CandidateIDs: []string{seeded[0].ID, "missing", seeded[2].ID},
		NewStatus:    types.CandidateStatusRejected,
	})
	require.NoError(t, err)
	require.Len(t, updated, 2)
	for _, candidate := range updated {
		assert.Equal(t, types.CandidateStatusRejected, candidate.Status)
	}

	untouched, err := svc.GetCandidate(ctx, seeded[1].ID)
	require.NoError(t, err)
	assert.Equal(t, types.CandidateStatusScreening, untouched.Status)

	_, err = svc.BulkUpdateStatus(ctx, &types.BulkStatusUpdateInput{NewStatus: 4})
	assert.True(t, apperr.IsValidation(err))
}

func TestBulkUpdateStatus_RollsBack(t *testing.T) {
	svc, mem, jobID := newTestService(t)
	ctx := context.Background()
	seeded := seedCandidates(t, svc, jobID)

	mem.FailOn("UpdateCandidate", 2, testutil.ErrInjected)

	_, err := svc.BulkUpdateStatus(ctx, &types.BulkStatusUpdateInput{
		CandidateIDs: []string{seeded[0].ID, seeded[1].ID},
		NewStatus:    types.CandidateStatusHired,
	})
	assert.True(t, apperr.IsTransactionFailure(err))

	first, err := svc.GetCandidate(ctx, seeded[0].ID)
	require.NoError(t, err)
	assert.Equal(t, types.CandidateStatusInterview, first.Status)
}
