package rest_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/flashcards-client/internal/api/resource"
	"github.com/dtroode/flashcards-client/internal/api/rest"
	"github.com/dtroode/flashcards-client/internal/model"
	"github.com/dtroode/flashcards-client/internal/repository/memory"
	"github.com/dtroode/flashcards-client/internal/service"
	"github.com/dtroode/flashcards-client/internal/session"
	"github.com/dtroode/flashcards-client/internal/testutil"
)

const (
	routeDecks   = "GET /decks"
	routeRefresh = "POST /auth/refresh"
	routeMe      = "GET /users/me"
)

type harness struct {
	backend     *testutil.Backend
	store       *memory.Store
	session     *session.Context
	client      *rest.Client
	navigations atomic.Int32
	surfaces    chan string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		backend:  testutil.NewBackend(t),
		store:    memory.NewStore(),
		surfaces: make(chan string, 16),
	}
	log := testutil.MakeNoopLogger()
	sess := session.New(h.store)

	client, err := rest.NewClient(h.backend.URL(), sess, log,
		rest.WithHTTPClient(rest.NewHTTPClient(5*time.Second, nil, log)),
		rest.WithNavigator(func(_ context.Context, surface string) {
			h.navigations.Add(1)
			h.surfaces <- surface
		}),
	)
	require.NoError(t, err)
	client.SetRefresher(service.NewTokenService(resource.NewAuth(client), sess, log))
	h.client = client
	h.session = sess
	return h
}

func (h *harness) login(t *testing.T, username string) model.TokenPair {
	t.Helper()
	h.backend.AddUser(username, "password123")
	pair := h.backend.IssueTokens(username)
	require.NoError(t, h.store.SetMany(context.Background(), map[string]string{
		model.KeyToken:        pair.AccessToken,
		model.KeyRefreshToken: pair.RefreshToken,
		model.KeyUser:         `{"username":"` + username + `"}`,
		model.KeyUserID:       "u-1",
	}))
	return pair
}

func TestClient_AttachesBearerToken(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	pair := h.login(t, "alice")

	resp, err := h.client.Do(ctx, rest.NewRequest(http.MethodGet, "/users/me"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	reqs := h.backend.Requests(routeMe)
	require.Len(t, reqs, 1)
	assert.Equal(t, "Bearer "+pair.AccessToken, reqs[0].Authorization)
	assert.NotEmpty(t, reqs[0].RequestID)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	_, err := h.client.Do(ctx, rest.NewRequest(http.MethodGet, "/decks/public").WithoutRefresh())
	require.Error(t, err)
	assert.True(t, rest.IsStatus(err, http.StatusUnauthorized))

	reqs := h.backend.Requests("GET /decks/public")
	require.Len(t, reqs, 1)
	assert.Empty(t, reqs[0].Authorization)
}

func TestClient_PassesRequestThrough(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.login(t, "alice")

	req, err := rest.NewJSONRequest(http.MethodPost, "/decks", model.CreateDeckParams{Title: "Go"})
	require.NoError(t, err)

	resp, err := h.client.Do(ctx, req)
	require.NoError(t, err)

	var deck model.Deck
	require.NoError(t, resp.Decode(&deck))
	assert.Equal(t, "Go", deck.Title)

	reqs := h.backend.Requests("POST /decks")
	require.Len(t, reqs, 1)
	assert.Equal(t, "application/json", reqs[0].ContentType)
	assert.JSONEq(t, `{"title":"Go","is_public":false}`, reqs[0].Body)
	assert.Equal(t, "/api/v1/decks", reqs[0].Path)
}

func TestClient_RefreshesAndReplaysOnce(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.login(t, "alice")

	h.backend.ExpireAccessTokens()
	h.backend.QueueTokens(model.TokenPair{AccessToken: "A2", RefreshToken: "R2"})

	resp, err := h.client.Do(ctx, rest.NewRequest(http.MethodGet, "/decks"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, 1, h.backend.Calls(routeRefresh))
	reqs := h.backend.Requests(routeDecks)
	require.Len(t, reqs, 2)
	assert.Equal(t, "Bearer A2", reqs[1].Authorization)
	assert.Equal(t, reqs[0].RequestID, reqs[1].RequestID)

	snap := h.store.Snapshot()
	assert.Equal(t, "A2", snap[model.KeyToken])
	assert.Equal(t, "R2", snap[model.KeyRefreshToken])
	assert.Zero(t, h.navigations.Load())
}

func TestClient_ReplayCarriesSameBody(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.login(t, "alice")
	h.backend.ExpireAccessTokens()

	req, err := rest.NewJSONRequest(http.MethodPost, "/decks", model.CreateDeckParams{Title: "Replayed"})
	require.NoError(t, err)

	_, err = h.client.Do(ctx, req)
	require.NoError(t, err)

	reqs := h.backend.Requests("POST /decks")
	require.Len(t, reqs, 2)
	assert.Equal(t, reqs[0].Body, reqs[1].Body)
	assert.False(t, req.SkipRefresh)
}

func TestClient_NoRefreshTokenForcesLogout(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.login(t, "alice")
	require.NoError(t, h.store.Clear(ctx, model.KeyRefreshToken))
	h.backend.ExpireAccessTokens()

	_, err := h.client.Do(ctx, rest.NewRequest(http.MethodGet, "/decks"))
	require.ErrorIs(t, err, model.ErrSessionExpired)
	require.ErrorIs(t, err, model.ErrNoRefreshToken)

	assert.Zero(t, h.backend.Calls(routeRefresh))
	assert.Empty(t, h.store.Snapshot())
	assert.EqualValues(t, 1, h.navigations.Load())
	assert.Equal(t, rest.DefaultLoginSurface, <-h.surfaces)
}

func TestClient_RefreshFailureForcesLogout(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.login(t, "alice")
	h.backend.ExpireAccessTokens()
	h.backend.RevokeRefreshTokens()

	_, err := h.client.Do(ctx, rest.NewRequest(http.MethodGet, "/decks"))
	require.ErrorIs(t, err, model.ErrSessionExpired)

	var apiErr *rest.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Invalid refresh token", apiErr.Detail)

	assert.Equal(t, 1, h.backend.Calls(routeRefresh))
	assert.Equal(t, 1, h.backend.Calls(routeDecks))
	assert.Empty(t, h.store.Snapshot())
	assert.EqualValues(t, 1, h.navigations.Load())
}

func TestClient_LogoutDuringRefreshKeepsNewSession(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.login(t, "alice")
	h.backend.ExpireAccessTokens()
	h.backend.SetRefreshDelay(200 * time.Millisecond)

	errs := make(chan error, 1)
	go func() {
		_, err := h.client.Do(ctx, rest.NewRequest(http.MethodGet, "/decks"))
		errs <- err
	}()

	require.Eventually(t, func() bool {
		return h.backend.Calls(routeRefresh) == 1
	}, 2*time.Second, 5*time.Millisecond)

	// alice logs out and bob logs in before the refresh answers
	require.NoError(t, h.session.Clear(ctx))
	bob := h.login(t, "bob")

	select {
	case err := <-errs:
		require.ErrorIs(t, err, model.ErrSessionExpired)
		require.ErrorIs(t, err, model.ErrSessionChanged)
	case <-time.After(2 * time.Second):
		t.Fatal("request did not finish")
	}

	snapshot := h.store.Snapshot()
	assert.Equal(t, bob.AccessToken, snapshot[model.KeyToken])
	assert.Equal(t, bob.RefreshToken, snapshot[model.KeyRefreshToken])
	assert.EqualValues(t, 0, h.navigations.Load())
	assert.Equal(t, 1, h.backend.Calls(routeDecks))
}

func TestClient_UnauthorizedReplayIsReturned(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.login(t, "alice")
	h.backend.RejectAccess(true)

	_, err := h.client.Do(ctx, rest.NewRequest(http.MethodGet, "/decks"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrSessionExpired)
	assert.True(t, rest.IsStatus(err, http.StatusUnauthorized))

	assert.Equal(t, 1, h.backend.Calls(routeRefresh))
	assert.Equal(t, 2, h.backend.Calls(routeDecks))
	assert.Zero(t, h.navigations.Load())
	assert.NotEmpty(t, h.store.Snapshot()[model.KeyToken])
}

func TestClient_OtherErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.login(t, "alice")
	h.backend.Fail(routeDecks, http.StatusInternalServerError, "database unavailable")

	_, err := h.client.Do(ctx, rest.NewRequest(http.MethodGet, "/decks"))
	require.Error(t, err)

	var apiErr *rest.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "database unavailable", apiErr.Detail)
	assert.Zero(t, h.backend.Calls(routeRefresh))

	_, err = h.client.Do(ctx, rest.NewRequest(http.MethodGet, "/decks/missing"))
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestClient_SkipRefreshReturns401(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.login(t, "alice")

	auth := resource.NewAuth(h.client)
	_, err := auth.Login(ctx, model.Credentials{Username: "alice", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, "Incorrect username or password", rest.ErrorDetail(err, ""))
	assert.Zero(t, h.backend.Calls(routeRefresh))
	assert.Zero(t, h.navigations.Load())
}

func TestClient_ConcurrentUnauthorizedShareOneRefresh(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.login(t, "alice")
	h.backend.ExpireAccessTokens()
	h.backend.SetRefreshDelay(100 * time.Millisecond)

	const n = 5
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = h.client.Do(ctx, rest.NewRequest(http.MethodGet, "/decks"))
		}()
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 1, h.backend.Calls(routeRefresh))
	assert.Zero(t, h.navigations.Load())
	assert.NotEmpty(t, h.store.Snapshot()[model.KeyToken])
}

func TestClient_ConcurrentUnauthorizedShareOneLogout(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.login(t, "alice")
	h.backend.ExpireAccessTokens()
	h.backend.RevokeRefreshTokens()
	h.backend.SetRefreshDelay(100 * time.Millisecond)

	const n = 5
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = h.client.Do(ctx, rest.NewRequest(http.MethodGet, "/decks"))
		}()
	}
	wg.Wait()

	for _, err := range errs {
		assert.ErrorIs(t, err, model.ErrSessionExpired)
	}
	assert.Equal(t, 1, h.backend.Calls(routeRefresh))
	assert.EqualValues(t, 1, h.navigations.Load())
	assert.Empty(t, h.store.Snapshot())
}

func TestClient_WaiterHonoursOwnContext(t *testing.T) {
	h := newHarness(t)
	h.login(t, "alice")
	h.backend.ExpireAccessTokens()
	h.backend.SetRefreshDelay(300 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := h.client.Do(ctx, rest.NewRequest(http.MethodGet, "/decks"))
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// the detached refresh still completes and stores the new pair
	assert.Eventually(t, func() bool {
		return h.backend.Calls(routeRefresh) == 1 && h.client.Session().IsAuthenticated(context.Background())
	}, 2*time.Second, 20*time.Millisecond)

	_, err = h.client.Do(context.Background(), rest.NewRequest(http.MethodGet, "/decks"))
	require.NoError(t, err)
	assert.Equal(t, 1, h.backend.Calls(routeRefresh))
}

func TestClient_RefreshSession(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.login(t, "alice")
	h.backend.QueueTokens(model.TokenPair{AccessToken: "A3", RefreshToken: "R3"})

	token, err := h.client.RefreshSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A3", token)
	assert.Equal(t, "R3", h.store.Snapshot()[model.KeyRefreshToken])
}

func TestClient_WithoutRefresherForcesLogout(t *testing.T) {
	ctx := context.Background()
	backend := testutil.NewBackend(t)
	backend.AddUser("alice", "password123")
	pair := backend.IssueTokens("alice")
	backend.ExpireAccessTokens()

	store := memory.NewStore()
	require.NoError(t, store.SetMany(ctx, map[string]string{
		model.KeyToken:        pair.AccessToken,
		model.KeyRefreshToken: pair.RefreshToken,
	}))

	var surfaces []string
	client, err := rest.NewClient(backend.URL(), session.New(store), testutil.MakeNoopLogger(),
		rest.WithLoginSurface("/signin"))
	require.NoError(t, err)
	client.OnSessionExpired(func(_ context.Context, surface string) {
		surfaces = append(surfaces, surface)
	})

	_, err = client.Do(ctx, rest.NewRequest(http.MethodGet, "/decks"))
	require.ErrorIs(t, err, rest.ErrNoRefresher)
	assert.Equal(t, []string{"/signin"}, surfaces)
	assert.Empty(t, store.Snapshot())
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	sess := session.New(memory.NewStore())
	for _, raw := range []string{"", "localhost:8002", "://bad"} {
		_, err := rest.NewClient(raw, sess, testutil.MakeNoopLogger())
		assert.Error(t, err, raw)
	}
}
