package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/flashcards-client/internal/api/rest"
	"github.com/dtroode/flashcards-client/internal/mocks"
	"github.com/dtroode/flashcards-client/internal/model"
	"github.com/dtroode/flashcards-client/internal/repository/memory"
	"github.com/dtroode/flashcards-client/internal/session"
	"github.com/dtroode/flashcards-client/internal/testutil"
)

func newSession(t *testing.T, values map[string]string) (*session.Context, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.SetMany(context.Background(), values))
	return session.New(store), store
}

func TestTokenService_Refresh_Success(t *testing.T) {
	ctx := context.Background()
	api := &mocks.AuthAPI{}
	sess, store := newSession(t, map[string]string{
		model.KeyToken:        "A1",
		model.KeyRefreshToken: "R1",
		model.KeyUserID:       "u-1",
	})

	api.On("Refresh", ctx, "R1").Return(model.TokenPair{AccessToken: "A2", RefreshToken: "R2"}, nil).Once()

	s := NewTokenService(api, sess, testutil.MakeNoopLogger())
	access, err := s.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A2", access)

	assert.Equal(t, map[string]string{
		model.KeyToken:        "A2",
		model.KeyRefreshToken: "R2",
		model.KeyUserID:       "u-1",
	}, store.Snapshot())
	api.AssertExpectations(t)
}

func TestTokenService_Refresh_KeepsRefreshTokenWhenNotRotated(t *testing.T) {
	ctx := context.Background()
	api := &mocks.AuthAPI{}
	sess, store := newSession(t, map[string]string{
		model.KeyToken:        "A1",
		model.KeyRefreshToken: "R1",
	})

	api.On("Refresh", ctx, "R1").Return(model.TokenPair{AccessToken: "A2"}, nil).Once()

	s := NewTokenService(api, sess, testutil.MakeNoopLogger())
	_, err := s.Refresh(ctx)
	require.NoError(t, err)

	snap := store.Snapshot()
	assert.Equal(t, "A2", snap[model.KeyToken])
	assert.Equal(t, "R1", snap[model.KeyRefreshToken])
}

func TestTokenService_Refresh_NoRefreshToken(t *testing.T) {
	ctx := context.Background()
	api := &mocks.AuthAPI{}
	sess, store := newSession(t, map[string]string{model.KeyToken: "A1"})

	s := NewTokenService(api, sess, testutil.MakeNoopLogger())
	_, err := s.Refresh(ctx)
	require.ErrorIs(t, err, model.ErrNoRefreshToken)

	api.AssertNotCalled(t, "Refresh", mock.Anything, mock.Anything)
	assert.Empty(t, store.Snapshot())
}

func TestTokenService_Refresh_RejectedClearsSession(t *testing.T) {
	ctx := context.Background()
	api := &mocks.AuthAPI{}
	sess, store := newSession(t, map[string]string{
		model.KeyToken:        "A1",
		model.KeyRefreshToken: "R1",
		model.KeyUser:         `{"id":"u-1"}`,
		model.KeyUserID:       "u-1",
	})

	rejected := &rest.APIError{StatusCode: 401, Detail: "Invalid refresh token"}
	api.On("Refresh", ctx, "R1").Return(model.TokenPair{}, rejected).Once()

	s := NewTokenService(api, sess, testutil.MakeNoopLogger())
	_, err := s.Refresh(ctx)
	require.Error(t, err)

	var apiErr *rest.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 401, apiErr.StatusCode)
	assert.Empty(t, store.Snapshot())
}

func TestTokenService_Refresh_EmptyAccessToken(t *testing.T) {
	ctx := context.Background()
	api := &mocks.AuthAPI{}
	sess, store := newSession(t, map[string]string{model.KeyRefreshToken: "R1"})

	api.On("Refresh", ctx, "R1").Return(model.TokenPair{RefreshToken: "R2"}, nil).Once()

	s := NewTokenService(api, sess, testutil.MakeNoopLogger())
	_, err := s.Refresh(ctx)
	require.ErrorIs(t, err, ErrEmptyAccessToken)
	assert.Empty(t, store.Snapshot())
}

func TestTokenService_Refresh_StoreFailure(t *testing.T) {
	ctx := context.Background()
	api := &mocks.AuthAPI{}
	store := &mocks.KeyValueStore{}

	store.On("Get", ctx, model.KeyRefreshToken).Return("R1", true, nil).Once()
	store.On("SetMany", ctx, mock.Anything).Return(assert.AnError).Once()
	store.On("Clear", ctx, model.KeyToken, model.KeyRefreshToken, model.KeyUser, model.KeyUserID).Return(nil).Once()
	api.On("Refresh", ctx, "R1").Return(model.TokenPair{AccessToken: "A2", RefreshToken: "R2"}, nil).Once()

	s := NewTokenService(api, session.New(store), testutil.MakeNoopLogger())
	_, err := s.Refresh(ctx)
	require.ErrorIs(t, err, assert.AnError)
	store.AssertExpectations(t)
}

func TestTokenService_Refresh_SessionClearedWhilePending(t *testing.T) {
	ctx := context.Background()
	api := &mocks.AuthAPI{}
	sess, store := newSession(t, map[string]string{
		model.KeyToken:        "A1",
		model.KeyRefreshToken: "R1",
		model.KeyUserID:       "u-1",
	})

	// the user logs out while the refresh response is in flight
	api.On("Refresh", ctx, "R1").
		Run(func(mock.Arguments) { require.NoError(t, sess.Clear(ctx)) }).
		Return(model.TokenPair{AccessToken: "A2", RefreshToken: "R2"}, nil).Once()

	s := NewTokenService(api, sess, testutil.MakeNoopLogger())
	access, err := s.Refresh(ctx)
	require.ErrorIs(t, err, model.ErrSessionChanged)
	assert.Empty(t, access)

	assert.Empty(t, store.Snapshot())
	assert.False(t, sess.IsAuthenticated(ctx))
	api.AssertExpectations(t)
}

func TestTokenService_Refresh_RejectedAfterNewLoginKeepsNewSession(t *testing.T) {
	ctx := context.Background()
	api := &mocks.AuthAPI{}
	sess, store := newSession(t, map[string]string{
		model.KeyToken:        "A1",
		model.KeyRefreshToken: "R1",
	})

	api.On("Refresh", ctx, "R1").
		Run(func(mock.Arguments) {
			require.NoError(t, sess.Clear(ctx))
			require.NoError(t, sess.SetTokens(ctx, model.TokenPair{AccessToken: "B1", RefreshToken: "S1"}))
		}).
		Return(model.TokenPair{}, &rest.APIError{StatusCode: 401, Detail: "Invalid refresh token"}).Once()

	s := NewTokenService(api, sess, testutil.MakeNoopLogger())
	_, err := s.Refresh(ctx)
	require.ErrorIs(t, err, model.ErrSessionChanged)

	assert.Equal(t, map[string]string{
		model.KeyToken:        "B1",
		model.KeyRefreshToken: "S1",
	}, store.Snapshot())
	api.AssertExpectations(t)
}
