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

const jobTableName = "wehire.jobs"

// DefaultJobLimit caps list queries that do not set a limit.
const DefaultJobLimit = 100

var jobColumns = utils.StructTagValues(types.Job{})

type JobRepository struct {
	db DBTX
}

func NewJobRepository(db DBTX) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) CreateJob(ctx context.Context, job *types.Job) error {
	now := time.Now()
	job.ID = utils.NewID()
	job.UpdatedAt = now
	if job.DateCreated.IsZero() {
		job.DateCreated = now
	}
	if job.Status == "" {
		job.Status = types.JobStatusDraft
	}

	query, args, err := psql().
		Insert(jobTableName).
		SetMap(utils.StructToMap(job)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert job query: %w", err)
	}

	_, err = conn(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", apperr.MapDBError(err))
	}

	return nil
}

func (r *JobRepository) Job(ctx context.Context, jobID string) (*types.Job, error) {
	query, args, err := psql().
		Select(jobColumns...).
		From(jobTableName).
		Where(sq.Eq{"id": jobID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate job query: %w", err)
	}

	var job types.Job
	err = pgxscan.Get(ctx, conn(ctx, r.db), &job, query, args...)
	if err != nil {
		return nil, notFoundOr(err, apperr.NotFoundf("job %s not found", jobID), "failed to fetch job")
	}

	return &job, nil
}

func (r *JobRepository) JobExists(ctx context.Context, jobID string) (bool, error) {
	query, args, err := psql().
		Select("1").
		Prefix("SELECT EXISTS (").
		From(jobTableName).
		Where(sq.Eq{"id": jobID}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to generate job exists query: %w", err)
	}

	var exists bool
	err = conn(ctx, r.db).QueryRow(ctx, query, args...).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check job %s: %w", jobID, err)
	}

	return exists, nil
}

func (r *JobRepository) Jobs(ctx context.Context, filter *types.JobFilter) ([]*types.Job, error) {
	builder := psql().
		Select(jobColumns...).
		From(jobTableName).
		OrderBy("date_created DESC", "id ASC")

	limit := uint64(DefaultJobLimit)
	if filter != nil {
		if filter.Status != "" {
			builder = builder.Where(sq.Eq{"status": filter.Status})
		}
		if title := strings.TrimSpace(filter.Title); title != "" {
			builder = builder.Where(sq.ILike{"title": "%" + title + "%"})
		}
		if filter.Limit > 0 {
			limit = filter.Limit
		}
		builder = builder.Offset(filter.Skip)
	}

	query, args, err := builder.Limit(limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate jobs query: %w", err)
	}

	jobs := make([]*types.Job, 0)
	err = pgxscan.Select(ctx, conn(ctx, r.db), &jobs, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch jobs: %w", err)
	}

	return jobs, nil
}

func (r *JobRepository) JobsByManager(ctx context.Context, managerID string) ([]*types.Job, error) {
	query, args, err := psql().
		Select(jobColumns...).
		From(jobTableName).
		Where(sq.Eq{"assigned_to": managerID}).
		OrderBy("date_created DESC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate jobs by manager query: %w", err)
	}

	jobs := make([]*types.Job, 0)
	err = pgxscan.Select(ctx, conn(ctx, r.db), &jobs, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch jobs for manager %s: %w", managerID, err)
	}

	return jobs, nil
}

// UpdateJob applies the non-nil fields of update and returns the stored job.
func (r *JobRepository) UpdateJob(ctx context.Context, jobID string, update *types.JobUpdate) (*types.Job, error) {
	setMap := utils.SetFieldsToMap(update)
	if len(setMap) == 0 {
		return r.Job(ctx, jobID)
	}
	setMap["updated_at"] = time.Now()

	query, args, err := psql().
		Update(jobTableName).
		SetMap(setMap).
		Where(sq.Eq{"id": jobID}).
		Suffix("RETURNING " + strings.Join(jobColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate update job query for job %s: %w", jobID, err)
	}

	var job types.Job
	err = pgxscan.Get(ctx, conn(ctx, r.db), &job, query, args...)
	if err != nil {
		return nil, notFoundOr(err, apperr.NotFoundf("job %s not found", jobID), "failed to update job")
	}

	return &job, nil
}

// DeleteJob removes the job with its questions, categories and candidates,
// in that order, inside one transaction. It reports false when the job did
// not exist.
func (r *JobRepository) DeleteJob(ctx context.Context, jobID string) (bool, error) {
	var deleted bool
	err := inTx(ctx, r.db, func(ctx context.Context) error {
		for _, table := range []string{questionTableName, categoryTableName, candidateTableName} {
			query, args, err := psql().Delete(table).Where(sq.Eq{"job_id": jobID}).ToSql()
			if err != nil {
				return fmt.Errorf("failed to generate delete query for %s: %w", table, err)
			}

			if _, err := conn(ctx, r.db).Exec(ctx, query, args...); err != nil {
				return fmt.Errorf("failed to delete rows from %s for job %s: %w", table, jobID, err)
			}
		}

		query, args, err := psql().Delete(jobTableName).Where(sq.Eq{"id": jobID}).ToSql()
		if err != nil {
			return fmt.Errorf("failed to generate delete job query for job %s: %w", jobID, err)
		}

		tag, err := conn(ctx, r.db).Exec(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to delete job %s: %w", jobID, err)
		}

		deleted = tag.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return false, err
	}

	return deleted, nil
}
