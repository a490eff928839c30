package token

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dtroode/flashcards-client/internal/model"
)

// ErrEmptyToken is returned when there is no token to inspect.
var ErrEmptyToken = errors.New("empty token")

// Inspector reads access token claims without verifying the signature.
// The client never holds the signing key; the backend stays the authority on
// validity and expiry is still discovered through 401 responses.
type Inspector struct {
	parser *jwt.Parser
}

// NewInspector creates a new Inspector.
func NewInspector() *Inspector {
	return &Inspector{parser: jwt.NewParser()}
}

// Inspect extracts subject, issue and expiry times from an access token.
func (i *Inspector) Inspect(tokenString string) (model.TokenClaims, error) {
	if tokenString == "" {
		return model.TokenClaims{}, ErrEmptyToken
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := i.parser.ParseUnverified(tokenString, claims); err != nil {
		return model.TokenClaims{}, fmt.Errorf("failed to parse access token: %w", err)
	}

	out := model.TokenClaims{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
