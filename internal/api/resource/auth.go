package resource

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dtroode/flashcards-client/internal/api/rest"
	"github.com/dtroode/flashcards-client/internal/model"
)

var _ model.AuthAPI = (*Auth)(nil)

// Auth implements the authentication and current-user endpoints.
type Auth struct {
	client Doer
}

// NewAuth creates a new Auth resource.
func NewAuth(client Doer) *Auth {
	return &Auth{client: client}
}

type refreshTokenBody struct {
	RefreshToken string `json:"refresh_token"`
}

// Login exchanges credentials for a token pair. The form layout follows the
// OAuth2 password flow expected by the backend.
func (a *Auth) Login(ctx context.Context, creds model.Credentials) (model.TokenPair, error) {
	req := rest.NewFormRequest(http.MethodPost, "/auth/login", url.Values{
		"username": {creds.Username},
		"password": {creds.Password},
	}).WithoutRefresh()

	pair, err := doJSON[model.TokenPair](ctx, a.client, req)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to login: %w", err)
	}
	return pair, nil
}

func (a *Auth) Register(ctx context.Context, r model.RegisterRequest) (model.UserProfile, error) {
	req, err := rest.NewJSONRequest(http.MethodPost, "/auth/register", r)
	if err != nil {
		return model.UserProfile{}, err
	}

	user, err := doJSON[model.UserProfile](ctx, a.client, req.WithoutRefresh())
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("failed to register: %w", err)
	}
	return user, nil
}

func (a *Auth) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	req, err := rest.NewJSONRequest(http.MethodPost, "/auth/refresh", refreshTokenBody{RefreshToken: refreshToken})
	if err != nil {
		return model.TokenPair{}, err
	}

	pair, err := doJSON[model.TokenPair](ctx, a.client, req.WithoutRefresh())
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to refresh token: %w", err)
	}
	return pair, nil
}

// Logout revokes the refresh token. The response body is ignored.
func (a *Auth) Logout(ctx context.Context, refreshToken string) error {
	req, err := rest.NewJSONRequest(http.MethodPost, "/auth/logout", refreshTokenBody{RefreshToken: refreshToken})
	if err != nil {
		return err
	}

	if err := doNoContent(ctx, a.client, req.WithoutRefresh()); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	return nil
}

func (a *Auth) GetProfile(ctx context.Context) (model.UserProfile, error) {
	user, err := doJSON[model.UserProfile](ctx, a.client, rest.NewRequest(http.MethodGet, "/users/me"))
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("failed to get profile: %w", err)
	}
	return user, nil
}

func (a *Auth) UpdateProfile(ctx context.Context, update model.ProfileUpdate) (model.UserProfile, error) {
	user, err := newJSON[model.UserProfile](ctx, a.client, http.MethodPut, "/users/me", update)
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}
