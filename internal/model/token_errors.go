package model

import "errors"

var (
	ErrNoRefreshToken = errors.New("no refresh token")
	ErrSessionExpired = errors.New("session expired")
	ErrNotFound       = errors.New("not found")
	ErrSessionChanged = errors.New("session changed during refresh")
)
