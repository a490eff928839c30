package model

import (
	"context"
	"time"
)

// SessionRefresher obtains a new access token through the shared refresh.
type SessionRefresher interface {
	RefreshSession(ctx context.Context) (string, error)
}

// TokenPair is the credential pair issued by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type,omitempty"`
}

// TokenClaims is the client-side view of an access token's claims.
// Claims are read without signature verification.
type TokenClaims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token expiry is before now.
func (c TokenClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// SessionStatus summarises the local session.
type SessionStatus struct {
	Authenticated bool
	UserID        string
	Username      string
	Claims        *TokenClaims
}
