package auth

import (
	"fmt"
	"time"

	"wehire/internal/apperr"
	"wehire/pkg/types"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

const (
	claimRole   = "role"
	claimUserID = "user_id"
)

// Tokens issues and verifies HS256 access tokens. The subject is the
// username; role and user_id travel as private claims.
type Tokens struct {
	key []byte
	ttl time.Duration
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{key: []byte(secret), ttl: ttl}
}

func (t *Tokens) Issue(user *types.User) (string, error) {
	now := time.Now()

	token, err := jwt.NewBuilder().
		Subject(user.Username).
		IssuedAt(now).
		Expiration(now.Add(t.ttl)).
		Claim(claimRole, string(user.Role)).
		Claim(claimUserID, user.ID).
		Build()
	if err != nil {
		return "", fmt.Errorf("failed to build access token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), t.key))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return string(signed), nil
}

// Verify checks the signature and expiry of an access token and returns the
// caller it identifies.
func (t *Tokens) Verify(accessToken string) (*types.Principal, error) {
	token, err := jwt.Parse(
		[]byte(accessToken),
		jwt.WithKey(jwa.HS256(), t.key),
		jwt.WithValidate(true),
	)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeUnauthorized, "could not validate credentials", err)
	}

	username, ok := token.Subject()
	if !ok || username == "" {
		return nil, apperr.Unauthorized("could not validate credentials")
	}

	var role, userID string
	if err := token.Get(claimRole, &role); err != nil {
		return nil, apperr.Wrap(apperr.CodeUnauthorized, "could not validate credentials", err)
	}
	if err := token.Get(claimUserID, &userID); err != nil {
		return nil, apperr.Wrap(apperr.CodeUnauthorized, "could not validate credentials", err)
	}

	return &types.Principal{
		UserID:   userID,
		Username: username,
		Role:     types.UserRole(role),
	}, nil
}
