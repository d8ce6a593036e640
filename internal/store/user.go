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

const userTableName = "wehire.users"

var userColumns = utils.StructTagValues(types.User{})

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) User(ctx context.Context, userID string) (*types.User, error) {
	return r.getUser(ctx, sq.Eq{"id": userID}, apperr.NotFoundf("user %s not found", userID))
}

func (r *UserRepository) UserByUsername(ctx context.Context, username string) (*types.User, error) {
	return r.getUser(ctx, sq.Eq{"username": username}, apperr.NotFoundf("user %s not found", username))
}

func (r *UserRepository) getUser(ctx context.Context, where sq.Eq, notFound *apperr.AppError) (*types.User, error) {
	query, args, err := psql().
		Select(userColumns...).
		From(userTableName).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user query: %w", err)
	}

	var user types.User
	err = pgxscan.Get(ctx, conn(ctx, r.db), &user, query, args...)
	if err != nil {
		return nil, notFoundOr(err, notFound, "failed to fetch user")
	}

	return &user, nil
}

func (r *UserRepository) UsersByRole(ctx context.Context, role types.UserRole) ([]*types.User, error) {
	query, args, err := psql().
		Select(userColumns...).
		From(userTableName).
		Where(sq.Eq{"role": role}).
		OrderBy("username ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate users-by-role query: %w", err)
	}

	users := make([]*types.User, 0)
	err = pgxscan.Select(ctx, conn(ctx, r.db), &users, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users by role: %w", err)
	}

	return users, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user *types.User) error {
	user.ID = utils.NewID()
	user.CreatedAt = time.Now()

	query, args, err := psql().
		Insert(userTableName).
		SetMap(utils.StructToMap(user)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate create user query: %w", err)
	}

	_, err = conn(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", apperr.MapDBError(err))
	}

	return nil
}
