// Package session provides a typed view of the session keys held in a token store.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dtroode/flashcards-client/internal/model"
)

// Context is the process-wide session state. It is created once and passed by
// reference to the HTTP client and the services that read or mutate tokens.
type Context struct {
	store model.KeyValueStore

	// mu orders token writes against Clear; generation counts Clear calls.
	mu         sync.Mutex
	generation uint64
}

// New creates a Context backed by store.
func New(store model.KeyValueStore) *Context {
	return &Context{store: store}
}

// Store returns the underlying key-value store.
func (c *Context) Store() model.KeyValueStore {
	return c.store
}

// AccessToken returns the stored access token or an empty string.
func (c *Context) AccessToken(ctx context.Context) (string, error) {
	return c.get(ctx, model.KeyToken)
}

// RefreshToken returns the stored refresh token or an empty string.
func (c *Context) RefreshToken(ctx context.Context) (string, error) {
	return c.get(ctx, model.KeyRefreshToken)
}

// Tokens returns both stored tokens.
func (c *Context) Tokens(ctx context.Context) (model.TokenPair, error) {
	access, err := c.AccessToken(ctx)
	if err != nil {
		return model.TokenPair{}, err
	}
	refresh, err := c.RefreshToken(ctx)
	if err != nil {
		return model.TokenPair{}, err
	}
	return model.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Generation identifies the current session. It changes every time the
// session is cleared.
func (c *Context) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// SetTokens replaces the token pair in a single write. An empty refresh token
// keeps the stored one.
func (c *Context) SetTokens(ctx context.Context, pair model.TokenPair) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setTokens(ctx, pair)
}

// SetTokensIf stores pair only if the session has not been cleared since
// generation was read. It reports whether the pair was written.
func (c *Context) SetTokensIf(ctx context.Context, pair model.TokenPair, generation uint64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != generation {
		return false, nil
	}
	if err := c.setTokens(ctx, pair); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Context) setTokens(ctx context.Context, pair model.TokenPair) error {
	values := map[string]string{model.KeyToken: pair.AccessToken}
	if pair.RefreshToken != "" {
		values[model.KeyRefreshToken] = pair.RefreshToken
	}
	if err := c.store.SetMany(ctx, values); err != nil {
		return fmt.Errorf("failed to store tokens: %w", err)
	}
	return nil
}

// User returns the cached profile, or nil when none is stored.
func (c *Context) User(ctx context.Context) (*model.UserProfile, error) {
	raw, err := c.get(ctx, model.KeyUser)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	var user model.UserProfile
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("failed to decode cached user: %w", err)
	}
	return &user, nil
}

// UserID returns the cached user id or an empty string.
func (c *Context) UserID(ctx context.Context) (string, error) {
	return c.get(ctx, model.KeyUserID)
}

// SetUser caches the profile together with its id.
func (c *Context) SetUser(ctx context.Context, user model.UserProfile) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	err = c.store.SetMany(ctx, map[string]string{
		model.KeyUser:   string(raw),
		model.KeyUserID: user.ID,
	})
	if err != nil {
		return fmt.Errorf("failed to store user: %w", err)
	}
	return nil
}

// Clear removes all session keys and starts a new generation, so token
// writes prepared against the old session are dropped.
func (c *Context) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	if err := c.store.Clear(ctx, model.SessionKeys...); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// ClearIf clears the session only if it has not been cleared since generation
// was read. It reports whether the session was cleared.
func (c *Context) ClearIf(ctx context.Context, generation uint64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != generation {
		return false, nil
	}
	c.generation++
	if err := c.store.Clear(ctx, model.SessionKeys...); err != nil {
		return false, fmt.Errorf("failed to clear session: %w", err)
	}
	return true, nil
}

// IsAuthenticated reports whether an access token is present.
func (c *Context) IsAuthenticated(ctx context.Context) bool {
	token, err := c.AccessToken(ctx)
	return err == nil && token != ""
}

func (c *Context) get(ctx context.Context, key string) (string, error) {
	v, ok, err := c.store.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok {
		return "", nil
	}
	return v, nil
}
