package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/flashcards-client/internal/logger"
	"github.com/dtroode/flashcards-client/internal/model"
	"github.com/dtroode/flashcards-client/internal/session"
)

// ErrEmptyAccessToken is returned when a refresh response carries no access token.
var ErrEmptyAccessToken = errors.New("refresh response has no access token")

// TokenService exchanges the stored refresh token for a new token pair.
// It is the refresher used by the REST client; concurrent callers are
// serialised by the client, not here.
type TokenService struct {
	api     model.AuthAPI
	session *session.Context
	logger  *logger.Logger
}

func NewTokenService(api model.AuthAPI, session *session.Context, logger *logger.Logger) *TokenService {
	return &TokenService{api: api, session: session, logger: logger}
}

// Refresh stores a new token pair and returns the new access token. Without a
// refresh token it fails without calling the backend. Any failure clears the
// session. If the session is cleared while the backend call is pending, the
// response is dropped and model.ErrSessionChanged is returned.
func (s *TokenService) Refresh(ctx context.Context) (string, error) {
	gen := s.session.Generation()

	refreshToken, err := s.session.RefreshToken(ctx)
	if err != nil {
		s.teardown(ctx, gen)
		return "", fmt.Errorf("failed to read refresh token: %w", err)
	}
	if refreshToken == "" {
		s.logger.Info("Token service: no refresh token available")
		s.teardown(ctx, gen)
		return "", model.ErrNoRefreshToken
	}

	pair, err := s.api.Refresh(ctx, refreshToken)
	if err != nil {
		s.logger.Warn("Token service: refresh rejected",
			"error", err.Error())
		if !s.teardown(ctx, gen) {
			return "", fmt.Errorf("%w: %w", model.ErrSessionChanged, err)
		}
		return "", err
	}
	if pair.AccessToken == "" {
		if !s.teardown(ctx, gen) {
			return "", model.ErrSessionChanged
		}
		return "", ErrEmptyAccessToken
	}

	// A server that does not rotate refresh tokens omits the new one;
	// SetTokens keeps the current refresh token in that case.
	stored, err := s.session.SetTokensIf(ctx, pair, gen)
	if err != nil {
		s.logger.Error("Token service: failed to store refreshed tokens",
			"error", err.Error())
		s.teardown(ctx, gen)
		return "", err
	}
	if !stored {
		s.logger.Info("Token service: session cleared during refresh, dropping tokens")
		return "", model.ErrSessionChanged
	}

	s.logger.Debug("Token service: tokens refreshed")
	return pair.AccessToken, nil
}

// teardown clears the session unless it already changed since gen. It
// reports false only when the session changed.
func (s *TokenService) teardown(ctx context.Context, gen uint64) bool {
	cleared, err := s.session.ClearIf(ctx, gen)
	if err != nil {
		s.logger.Error("Token service: failed to clear session",
			"error", err.Error())
		return true
	}
	return cleared
}
