package service

import (
	"context"
	"errors"

	"github.com/dtroode/flashcards-client/internal/logger"
	"github.com/dtroode/flashcards-client/internal/model"
	"github.com/dtroode/flashcards-client/internal/session"
	"github.com/dtroode/flashcards-client/internal/token"
	"github.com/dtroode/flashcards-client/internal/validatorx"
)

// Auth is the session controller. Its operations never return errors: they
// report success as a boolean or a nil result and keep the failure message
// available through Err.
type Auth struct {
	errorState

	api       model.AuthAPI
	session   *session.Context
	refresher model.SessionRefresher
	inspector *token.Inspector
	validator *validatorx.Validator
	logger    *logger.Logger
}

func NewAuth(
	api model.AuthAPI,
	session *session.Context,
	refresher model.SessionRefresher,
	validator *validatorx.Validator,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		api:       api,
		session:   session,
		refresher: refresher,
		inspector: token.NewInspector(),
		validator: validator,
		logger:    logger,
	}
}

// Login replaces the session with a fresh token pair and caches the user
// profile. A failed profile fetch does not fail the login.
func (a *Auth) Login(ctx context.Context, username, password string) bool {
	a.ClearError()
	a.logger.Debug("Auth service: logging in",
		"username", username)

	creds := model.Credentials{Username: username, Password: password}
	if err := a.validator.Validate(creds); err != nil {
		a.fail(err, "Login failed")
		return false
	}

	pair, err := a.api.Login(ctx, creds)
	if err != nil {
		a.logger.Info("Auth service: login failed",
			"username", username,
			"error", err.Error())
		a.fail(err, "Login failed")
		return false
	}

	// Drop whatever the previous account left behind before storing the new pair.
	if err := a.session.Clear(ctx); err != nil {
		a.logger.Error("Auth service: failed to clear previous session",
			"error", err.Error())
		a.fail(err, "Login failed")
		return false
	}
	if err := a.session.SetTokens(ctx, pair); err != nil {
		a.logger.Error("Auth service: failed to store tokens",
			"error", err.Error())
		a.fail(err, "Login failed")
		return false
	}

	a.FetchUserProfile(ctx)

	a.logger.Info("Auth service: logged in",
		"username", username)
	return true
}

// Register creates an account. It does not log in.
func (a *Auth) Register(ctx context.Context, req model.RegisterRequest) bool {
	a.ClearError()

	if err := a.validator.Validate(req); err != nil {
		a.fail(err, "Registration failed")
		return false
	}

	user, err := a.api.Register(ctx, req)
	if err != nil {
		a.logger.Info("Auth service: registration failed",
			"username", req.Username,
			"error", err.Error())
		a.fail(err, "Registration failed")
		return false
	}

	a.logger.Info("Auth service: user registered",
		"username", user.Username,
		"user_id", user.ID)
	return true
}

// FetchUserProfile loads and caches the current user. It returns nil on failure.
func (a *Auth) FetchUserProfile(ctx context.Context) *model.UserProfile {
	user, err := a.api.GetProfile(ctx)
	if err != nil {
		a.logger.Warn("Auth service: failed to fetch profile",
			"error", err.Error())
		a.fail(err, "Failed to fetch user profile")
		return nil
	}

	if err := a.session.SetUser(ctx, user); err != nil {
		a.logger.Error("Auth service: failed to cache profile",
			"error", err.Error())
		a.fail(err, "Failed to fetch user profile")
		return nil
	}
	return &user
}

// UpdateProfile changes the profile and refreshes the cached copy.
func (a *Auth) UpdateProfile(ctx context.Context, update model.ProfileUpdate) bool {
	a.ClearError()

	if err := a.validator.Validate(update); err != nil {
		a.fail(err, "Failed to update profile")
		return false
	}

	user, err := a.api.UpdateProfile(ctx, update)
	if err != nil {
		a.fail(err, "Failed to update profile")
		return false
	}

	if err := a.session.SetUser(ctx, user); err != nil {
		a.fail(err, "Failed to update profile")
		return false
	}
	return true
}

// Logout revokes the refresh token when there is one and always clears the
// local session, whatever the backend answers.
func (a *Auth) Logout(ctx context.Context) {
	refreshToken, err := a.session.RefreshToken(ctx)
	if err != nil {
		a.logger.Warn("Auth service: failed to read refresh token",
			"error", err.Error())
	}

	if refreshToken != "" {
		if err := a.api.Logout(ctx, refreshToken); err != nil {
			a.logger.Warn("Auth service: failed to revoke refresh token",
				"error", err.Error())
		}
	}

	if err := a.session.Clear(ctx); err != nil {
		a.logger.Error("Auth service: failed to clear session",
			"error", err.Error())
	}
	a.logger.Info("Auth service: logged out")
}

// RefreshAccessToken refreshes the session; on failure it also logs out.
// It returns false without logging out when ctx ends first, since the shared
// refresh keeps running and settles the session itself, and when the session
// was replaced while the refresh was pending.
func (a *Auth) RefreshAccessToken(ctx context.Context) bool {
	_, err := a.refresher.RefreshSession(ctx)
	switch {
	case err == nil:
		return true
	case ctx.Err() != nil:
		a.logger.Debug("Auth service: stopped waiting for refresh",
			"error", err.Error())
		return false
	case errors.Is(err, model.ErrSessionChanged):
		a.logger.Info("Auth service: session changed during refresh")
		return false
	}

	a.logger.Warn("Auth service: refresh failed",
		"error", err.Error())
	a.Logout(ctx)
	return false
}

// IsAuthenticated reports whether an access token is stored.
func (a *Auth) IsAuthenticated(ctx context.Context) bool {
	return a.session.IsAuthenticated(ctx)
}

// CurrentUser returns the cached profile, or nil.
func (a *Auth) CurrentUser(ctx context.Context) *model.UserProfile {
	user, err := a.session.User(ctx)
	if err != nil {
		a.logger.Warn("Auth service: failed to read cached profile",
			"error", err.Error())
		return nil
	}
	return user
}

// Status summarises the local session, including the access token claims
// when the token is a readable JWT.
func (a *Auth) Status(ctx context.Context) model.SessionStatus {
	var status model.SessionStatus

	accessToken, err := a.session.AccessToken(ctx)
	if err != nil || accessToken == "" {
		return status
	}
	status.Authenticated = true

	status.UserID, _ = a.session.UserID(ctx)
	if user := a.CurrentUser(ctx); user != nil {
		status.Username = user.Username
	}

	if claims, err := a.inspector.Inspect(accessToken); err == nil {
		status.Claims = &claims
		if status.UserID == "" {
			status.UserID = claims.Subject
		}
	}
	return status
}
