package store

import (
	"context"
	"fmt"
	"time"

	"wehire/internal/apperr"
	"wehire/internal/utils"
	"wehire/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
)

const categoryTableName = "wehire.interview_categories"

var categoryColumns = utils.StructTagValues(types.InterviewCategory{})

type CategoryRepository struct {
	db DBTX
}

func NewCategoryRepository(db DBTX) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// CreateCategory assigns an ID and persists the category.
func (r *CategoryRepository) CreateCategory(ctx context.Context, category *types.InterviewCategory) error {
	category.ID = utils.NewID()
	category.CreatedAt = time.Now()

	query, args, err := psql().
		Insert(categoryTableName).
		SetMap(utils.StructToMap(category)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert category query: %w", err)
	}

	_, err = conn(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", apperr.MapDBError(err))
	}

	return nil
}

func (r *CategoryRepository) Category(ctx context.Context, id string) (*types.InterviewCategory, error) {
	query, args, err := psql().
		Select(categoryColumns...).
		From(categoryTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate category query: %w", err)
	}

	var category types.InterviewCategory
	err = pgxscan.Get(ctx, conn(ctx, r.db), &category, query, args...)
	if err != nil {
		return nil, notFoundOr(err, apperr.NotFoundf("interview category %s not found", id), "failed to fetch category")
	}

	return &category, nil
}

func (r *CategoryRepository) CategoriesByJob(ctx context.Context, jobID string) ([]*types.InterviewCategory, error) {
	query, args, err := psql().
		Select(categoryColumns...).
		From(categoryTableName).
		Where(sq.Eq{"job_id": jobID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate categories by job query: %w", err)
	}

	categories := make([]*types.InterviewCategory, 0)
	err = pgxscan.Select(ctx, conn(ctx, r.db), &categories, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories for job %s: %w", jobID, err)
	}

	return categories, nil
}

// DeleteCategory removes the category together with every question it owns.
// Both deletes share one transaction. It reports false when no such
// category exists.
func (r *CategoryRepository) DeleteCategory(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := inTx(ctx, r.db, func(ctx context.Context) error {
		questionsQuery, questionsArgs, err := psql().
			Delete(questionTableName).
			Where(sq.Eq{"category_id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to generate delete category questions query: %w", err)
		}

		if _, err := conn(ctx, r.db).Exec(ctx, questionsQuery, questionsArgs...); err != nil {
			return fmt.Errorf("failed to delete category questions: %w", err)
		}

		categoryQuery, categoryArgs, err := psql().
			Delete(categoryTableName).
			Where(sq.Eq{"id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to generate delete category query: %w", err)
		}

		tag, err := conn(ctx, r.db).Exec(ctx, categoryQuery, categoryArgs...)
		if err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}

		deleted = tag.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return false, err
	}

	return deleted, nil
}

// DeleteCategoriesByJob removes every category of a job. Callers must remove
// the job's questions first.
func (r *CategoryRepository) DeleteCategoriesByJob(ctx context.Context, jobID string) (int64, error) {
	query, args, err := psql().
		Delete(categoryTableName).
		Where(sq.Eq{"job_id": jobID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate delete categories by job query: %w", err)
	}

	tag, err := conn(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete categories for job %s: %w", jobID, apperr.MapDBError(err))
	}

	return tag.RowsAffected(), nil
}
