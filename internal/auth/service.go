// Package auth handles user signup, password login and bearer tokens.
package auth

import (
	"context"
	"strings"

	"wehire/internal/apperr"
	"wehire/pkg/types"

	"github.com/sirupsen/logrus"
)

type Repository interface {
	CreateUser(ctx context.Context, user *types.User) error
	UserByUsername(ctx context.Context, username string) (*types.User, error)
}

type Service struct {
	repo   Repository
	tokens *Tokens
	logger logrus.FieldLogger
}

func New(repo Repository, tokens *Tokens, logger logrus.FieldLogger) *Service {
	return &Service{repo: repo, tokens: tokens, logger: logger}
}

func (s *Service) Signup(ctx context.Context, input *types.SignupInput) (*types.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, apperr.ValidationField("username", "username is required")
	}
	if input.Password == "" {
		return nil, apperr.ValidationField("password", "password is required")
	}

	role := input.Role
	if role == "" {
		role = types.UserRoleOther
	}
	if !role.Valid() {
		return nil, apperr.ValidationField("role", "role must be one of HR, Hiring Manager, Employee, Other")
	}

	_, err := s.repo.UserByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, apperr.Conflict("username already registered")
	case !apperr.IsNotFound(err):
		return nil, err
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &types.User{Username: username, HashedPassword: hashed, Role: role}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("user signed up")

	return user, nil
}

func (s *Service) Login(ctx context.Context, input *types.LoginInput) (*types.Token, error) {
	invalid := apperr.Unauthorized("incorrect username or password")

	user, err := s.repo.UserByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, invalid
		}
		return nil, err
	}

	ok, err := CheckPassword(user.HashedPassword, input.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, invalid
	}

	accessToken, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	return &types.Token{
		AccessToken: accessToken,
		TokenType:   "bearer",
		UserID:      user.ID,
		Username:    user.Username,
		Role:        user.Role,
	}, nil
}

// Authenticate resolves a bearer token to the caller it was issued to.
func (s *Service) Authenticate(accessToken string) (*types.Principal, error) {
	return s.tokens.Verify(accessToken)
}
