package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wehire/internal/apperr"
	"wehire/internal/utils"
	"wehire/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
)

const candidateTableName = "wehire.candidates"

var candidateColumns = utils.StructTagValues(types.Candidate{})

type CandidateRepository struct {
	db DBTX
}

func NewCandidateRepository(db DBTX) *CandidateRepository {
	return &CandidateRepository{db: db}
}

func (r *CandidateRepository) CreateCandidate(ctx context.Context, candidate *types.Candidate) error {
	now := time.Now()
	candidate.ID = utils.NewID()
	candidate.UpdatedAt = now
	if candidate.AppliedDate.IsZero() {
		candidate.AppliedDate = now
	}

	query, args, err := psql().
		Insert(candidateTableName).
		SetMap(utils.StructToMap(candidate)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert candidate query: %w", err)
	}

	_, err = conn(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to create candidate: %w", apperr.MapDBError(err))
	}

	return nil
}

func (r *CandidateRepository) Candidate(ctx context.Context, candidateID string) (*types.Candidate, error) {
	query, args, err := psql().
		Select(candidateColumns...).
		From(candidateTableName).
		Where(sq.Eq{"id": candidateID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate candidate query: %w", err)
	}

	var candidate types.Candidate
	err = pgxscan.Get(ctx, conn(ctx, r.db), &candidate, query, args...)
	if err != nil {
		return nil, notFoundOr(err, apperr.NotFoundf("candidate %s not found", candidateID), "failed to fetch candidate")
	}

	return &candidate, nil
}

// SearchCandidates lists a job's candidates. Search matches name, email or
// skills case-insensitively.
func (r *CandidateRepository) SearchCandidates(ctx context.Context, jobID string, filter *types.CandidateFilter) ([]*types.Candidate, error) {
	builder := psql().
		Select(candidateColumns...).
		From(candidateTableName).
		Where(sq.Eq{"job_id": jobID}).
		OrderBy("applied_date DESC", "id ASC")

	limit := uint64(DefaultJobLimit)
	if filter != nil {
		if search := strings.TrimSpace(filter.Search); search != "" {
			pattern := "%" + search + "%"
			builder = builder.Where(sq.Or{
				sq.ILike{"name": pattern},
				sq.ILike{"email": pattern},
				sq.ILike{"skills": pattern},
			})
		}
		if filter.Status != nil {
			builder = builder.Where(sq.Eq{"status": *filter.Status})
		}
		if filter.MinRating != nil {
			builder = builder.Where(sq.GtOrEq{"rating": *filter.MinRating})
		}
		if filter.MaxRating != nil {
			builder = builder.Where(sq.LtOrEq{"rating": *filter.MaxRating})
		}
		if filter.Limit > 0 {
			limit = filter.Limit
		}
		builder = builder.Offset(filter.Skip)
	}

	query, args, err := builder.Limit(limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate candidate search query: %w", err)
	}

	candidates := make([]*types.Candidate, 0)
	err = pgxscan.Select(ctx, conn(ctx, r.db), &candidates, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search candidates for job %s: %w", jobID, err)
	}

	return candidates, nil
}

func (r *CandidateRepository) UpdateCandidate(ctx context.Context, candidateID string, update *types.CandidateUpdate) (*types.Candidate, error) {
	setMap := utils.SetFieldsToMap(update)
	if len(setMap) == 0 {
		return r.Candidate(ctx, candidateID)
	}
	setMap["updated_at"] = time.Now()

	query, args, err := psql().
		Update(candidateTableName).
		SetMap(setMap).
		Where(sq.Eq{"id": candidateID}).
		Suffix("RETURNING " + strings.Join(candidateColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate update candidate query for candidate %s: %w", candidateID, err)
	}

	var candidate types.Candidate
	err = pgxscan.Get(ctx, conn(ctx, r.db), &candidate, query, args...)
	if err != nil {
		return nil, notFoundOr(err, apperr.NotFoundf("candidate %s not found", candidateID), "failed to update candidate")
	}

	return &candidate, nil
}

func (r *CandidateRepository) DeleteCandidate(ctx context.Context, candidateID string) (*types.Candidate, error) {
	query, args, err := psql().
		Delete(candidateTableName).
		Where(sq.Eq{"id": candidateID}).
		Suffix("RETURNING " + strings.Join(candidateColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate delete candidate query for candidate %s: %w", candidateID, err)
	}

	var candidate types.Candidate
	err = pgxscan.Get(ctx, conn(ctx, r.db), &candidate, query, args...)
	if err != nil {
		return nil, notFoundOr(err, apperr.NotFoundf("candidate %s not found", candidateID), "failed to delete candidate")
	}

	return &candidate, nil
}
