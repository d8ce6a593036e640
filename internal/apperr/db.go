package apperr

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Constraint names declared in the schema migrations that carry meaning
// beyond a generic foreign key failure.
const (
	ConstraintQuestionCategoryJob = "interview_questions_category_job_fkey"
	ConstraintCategoryJob         = "interview_categories_job_id_fkey"
	ConstraintQuestionJob         = "interview_questions_job_id_fkey"
	ConstraintCandidateJob        = "candidates_job_id_fkey"
)

// MapDBError translates driver errors into AppErrors. Errors it does not
// recognize are returned unchanged.
//
//   - pgx.ErrNoRows -> NotFound
//   - composite question/category/job foreign key -> IntegrityViolation
//   - any other foreign key -> NotFound (the referenced parent is missing)
//   - unique violation -> Conflict
//   - check and not-null violations -> Validation
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := As(err); ok {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return &AppError{Code: CodeNotFound, Message: "resource not found", Cause: err}
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.ForeignKeyViolation:
		if pgErr.ConstraintName == ConstraintQuestionCategoryJob {
			return &AppError{
				Code:    CodeIntegrityViolation,
				Message: "question job does not match its category's job",
				Cause:   pgErr,
			}
		}
		return &AppError{
			Code:    CodeNotFound,
			Message: "referenced " + referencedEntity(pgErr.ConstraintName) + " not found",
			Cause:   pgErr,
		}
	case pgerrcode.UniqueViolation:
		return &AppError{Code: CodeConflict, Message: "this value already exists", Field: pgErr.ColumnName, Cause: pgErr}
	case pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
		return &AppError{Code: CodeValidation, Message: "invalid value", Field: pgErr.ColumnName, Cause: pgErr}
	}

	return err
}

func referencedEntity(constraint string) string {
	switch constraint {
	case ConstraintCategoryJob, ConstraintQuestionJob, ConstraintCandidateJob:
		return "job"
	default:
		return "row"
	}
}
