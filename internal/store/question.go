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

const questionTableName = "wehire.interview_questions"

var questionColumns = utils.StructTagValues(types.InterviewQuestion{})

type QuestionRepository struct {
	db DBTX
}

func NewQuestionRepository(db DBTX) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// CreateQuestion assigns an ID and persists the question. It does not check
// that the category or job exist.
func (r *QuestionRepository) CreateQuestion(ctx context.Context, question *types.InterviewQuestion) error {
	now := time.Now()
	question.ID = utils.NewID()
	question.CreatedAt = now
	question.UpdatedAt = now
	if question.Status == "" {
		question.Status = types.QuestionStatusActive
	}

	query, args, err := psql().
		Insert(questionTableName).
		SetMap(utils.StructToMap(question)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert question query: %w", err)
	}

	_, err = conn(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert question: %w", apperr.MapDBError(err))
	}

	return nil
}

func (r *QuestionRepository) Question(ctx context.Context, id string) (*types.InterviewQuestion, error) {
	query, args, err := psql().
		Select(questionColumns...).
		From(questionTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate question query: %w", err)
	}

	var question types.InterviewQuestion
	err = pgxscan.Get(ctx, conn(ctx, r.db), &question, query, args...)
	if err != nil {
		return nil, notFoundOr(err, apperr.NotFoundf("interview question %s not found", id), "failed to fetch question")
	}

	return &question, nil
}

func (r *QuestionRepository) QuestionsByJob(ctx context.Context, jobID string) ([]*types.InterviewQuestion, error) {
	return r.selectQuestions(ctx, sq.Eq{"job_id": jobID})
}

// QuestionsByCategory lists a category's questions, narrowed to one job when
// jobID is non-nil.
func (r *QuestionRepository) QuestionsByCategory(ctx context.Context, categoryID string, jobID *string) ([]*types.InterviewQuestion, error) {
	where := sq.Eq{"category_id": categoryID}
	if jobID != nil {
		where["job_id"] = *jobID
	}

	return r.selectQuestions(ctx, where)
}

func (r *QuestionRepository) selectQuestions(ctx context.Context, where sq.Eq) ([]*types.InterviewQuestion, error) {
	query, args, err := psql().
		Select(questionColumns...).
		From(questionTableName).
		Where(where).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate questions query: %w", err)
	}

	questions := make([]*types.InterviewQuestion, 0)
	err = pgxscan.Select(ctx, conn(ctx, r.db), &questions, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch questions: %w", err)
	}

	return questions, nil
}

// UpdateQuestion applies only the fields present in update. job_id is never
// touched here; callers moving a question between categories must check that
// both categories belong to the question's job.
func (r *QuestionRepository) UpdateQuestion(ctx context.Context, id string, update *types.QuestionUpdate) (*types.InterviewQuestion, error) {
	if update.IsEmpty() {
		return r.Question(ctx, id)
	}

	setMap := utils.SetFieldsToMap(update)
	setMap["updated_at"] = time.Now()

	query, args, err := psql().
		Update(questionTableName).
		SetMap(setMap).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(questionColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate update question query for question %s: %w", id, err)
	}

	var question types.InterviewQuestion
	err = pgxscan.Get(ctx, conn(ctx, r.db), &question, query, args...)
	if err != nil {
		return nil, notFoundOr(err, apperr.NotFoundf("interview question %s not found", id), "failed to update question")
	}

	return &question, nil
}

// DeleteQuestion removes a question and returns the deleted row.
func (r *QuestionRepository) DeleteQuestion(ctx context.Context, id string) (*types.InterviewQuestion, error) {
	query, args, err := psql().
		Delete(questionTableName).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(questionColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate delete question query for question %s: %w", id, err)
	}

	var question types.InterviewQuestion
	err = pgxscan.Get(ctx, conn(ctx, r.db), &question, query, args...)
	if err != nil {
		return nil, notFoundOr(err, apperr.NotFoundf("interview question %s not found", id), "failed to delete question")
	}

	return &question, nil
}

func (r *QuestionRepository) DeleteQuestionsByJob(ctx context.Context, jobID string) (int64, error) {
	query, args, err := psql().
		Delete(questionTableName).
		Where(sq.Eq{"job_id": jobID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate delete questions by job query: %w", err)
	}

	tag, err := conn(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete questions for job %s: %w", jobID, err)
	}

	return tag.RowsAffected(), nil
}
