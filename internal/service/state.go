package service

import (
	"errors"
	"sync"

	"github.com/dtroode/flashcards-client/internal/api/rest"
	"github.com/dtroode/flashcards-client/internal/validatorx"
)

// errorState holds the last user-facing error message of a service.
type errorState struct {
	mu  sync.RWMutex
	msg string
}

// Err returns the last error message, or an empty string.
func (s *errorState) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.msg
}

// ClearError resets the error message.
func (s *errorState) ClearError() {
	s.setError("")
}

func (s *errorState) setError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msg = msg
}

// fail records the backend detail of err, or fallback when there is none.
func (s *errorState) fail(err error, fallback string) {
	s.setError(errorMessage(err, fallback))
}

func errorMessage(err error, fallback string) string {
	var ve validatorx.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	return rest.ErrorDetail(err, fallback)
}
