package model

import (
	"context"
	"time"
)

// AuthAPI is the backend surface used for authentication and profile operations.
type AuthAPI interface {
	Login(ctx context.Context, creds Credentials) (TokenPair, error)
	Register(ctx context.Context, req RegisterRequest) (UserProfile, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	GetProfile(ctx context.Context) (UserProfile, error)
	UpdateProfile(ctx context.Context, update ProfileUpdate) (UserProfile, error)
}

// UserProfile is the authenticated user as returned by /users/me.
type UserProfile struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Username  string     `json:"username"`
	FullName  string     `json:"full_name,omitempty"`
	Role      string     `json:"role,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Credentials are used once for login and never persisted.
type Credentials struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// RegisterRequest is the payload of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,username"`
	FullName string `json:"full_name,omitempty" validate:"omitempty,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// ProfileUpdate is the payload of PUT /users/me. Nil fields are left unchanged.
type ProfileUpdate struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=255"`
}
