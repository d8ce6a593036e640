package store

import (
	"context"
	"fmt"

	"wehire/internal/apperr"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx. Begin on a pgx.Tx opens a
// savepoint, so repository methods that need atomicity nest cleanly inside
// an outer transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

type txKey struct{}

// conn returns the transaction carried by ctx, or db when there is none.
func conn(ctx context.Context, db DBTX) DBTX {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return db
}

// inTx runs fn inside a transaction (or a savepoint when ctx already carries
// one). Repositories called with the ctx handed to fn join the transaction.
// Any failure rolls back every write made through that ctx.
func inTx(ctx context.Context, db DBTX, fn func(ctx context.Context) error) error {
	tx, err := conn(ctx, db).Begin(ctx)
	if err != nil {
		return apperr.TransactionFailure("failed to begin transaction", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if _, ok := apperr.As(err); ok {
			return err
		}
		return apperr.TransactionFailure("operation failed and was rolled back", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperr.TransactionFailure("failed to commit transaction", err)
	}

	return nil
}

// Store groups the repositories behind one connection pool. Its promoted
// methods satisfy the repository interfaces declared by the domain
// services.
type Store struct {
	db DBTX

	*UserRepository
	*JobRepository
	*CategoryRepository
	*QuestionRepository
	*CandidateRepository
}

func New(db DBTX) *Store {
	return &Store{
		db:                  db,
		UserRepository:      NewUserRepository(db),
		JobRepository:       NewJobRepository(db),
		CategoryRepository:  NewCategoryRepository(db),
		QuestionRepository:  NewQuestionRepository(db),
		CandidateRepository: NewCandidateRepository(db),
	}
}

// InTx runs fn in one transaction. Every repository call made with the ctx
// passed to fn is part of it.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return inTx(ctx, s.db, fn)
}

func notFoundOr(err error, notFound *apperr.AppError, msg string) error {
	mapped := apperr.MapDBError(err)
	if apperr.IsNotFound(mapped) {
		notFound.Cause = err
		return notFound
	}
	return fmt.Errorf("%s: %w", msg, mapped)
}
