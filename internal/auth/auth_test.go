package auth

import (
	"context"
	"io"
	"testing"
	"time"

	"wehire/internal/apperr"
	"wehire/internal/testutil"
	"wehire/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return New(testutil.NewMemStore(), NewTokens("test-secret", 30*time.Minute), logger)
}

func TestPassword(t *testing.T) {
	hashed, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hashed)

	ok, err := CheckPassword(hashed, "password123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword(hashed, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTokens_RoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret", time.Minute)
	user := &types.User{ID: "u1", Username: "hr_admin", Role: types.UserRoleHR}

	accessToken, err := tokens.Issue(user)
	require.NoError(t, err)

	principal, err := tokens.Verify(accessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", principal.UserID)
	assert.Equal(t, "hr_admin", principal.Username)
	assert.Equal(t, types.UserRoleHR, principal.Role)
}

func TestTokens_Rejects(t *testing.T) {
	user := &types.User{ID: "u1", Username: "hr_admin", Role: types.UserRoleHR}

	expired, err := NewTokens("test-secret", -time.Hour).Issue(user)
	require.NoError(t, err)

	foreign, err := NewTokens("other-secret", time.Hour).Issue(user)
	require.NoError(t, err)

	tokens := NewTokens("test-secret", time.Hour)
	for name, accessToken := range map[string]string{
		"expired":      expired,
		"wrong secret": foreign,
		"garbage":      "not-a-token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := tokens.Verify(accessToken)
			assert.Equal(t, apperr.CodeUnauthorized, apperr.CodeOf(err))
		})
	}
}

func TestSignupAndLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Signup(ctx, &types.SignupInput{Username: "hiring_manager1", Password: "password123", Role: types.UserRoleHiringManager})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "password123", user.HashedPassword)

	_, err = svc.Signup(ctx, &types.SignupInput{Username: "hiring_manager1", Password: "x"})
	assert.Equal(t, apperr.CodeConflict, apperr.CodeOf(err))

	token, err := svc.Login(ctx, &types.LoginInput{Username: "hiring_manager1", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", token.TokenType)
	assert.Equal(t, user.ID, token.UserID)
	assert.Equal(t, types.UserRoleHiringManager, token.Role)

	principal, err := svc.Authenticate(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.UserID)

	_, err = svc.Login(ctx, &types.LoginInput{Username: "hiring_manager1", Password: "wrong"})
	assert.Equal(t, apperr.CodeUnauthorized, apperr.CodeOf(err))

	_, err = svc.Login(ctx, &types.LoginInput{Username: "nobody", Password: "password123"})
	assert.Equal(t, apperr.CodeUnauthorized, apperr.CodeOf(err))
}

func TestSignup_Validation(t *testing.T) {
	svc := newTestService(t)

	tests := []types.SignupInput{
		{Username: "", Password: "password123"},
		{Username: "someone", Password: ""},
		{Username: "someone", Password: "password123", Role: "Admin"},
	}
	for _, input := range tests {
		_, err := svc.Signup(context.Background(), &input)
		assert.True(t, apperr.IsValidation(err))
	}

	user, err := svc.Signup(context.Background(), &types.SignupInput{Username: "someone", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, types.UserRoleOther, user.Role)
}
