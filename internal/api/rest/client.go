// Package rest is the single egress point for backend calls. It attaches the
// session's access token to outgoing requests and recovers from expired
// access tokens by refreshing the session and replaying the call once.
package rest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/dtroode/flashcards-client/internal/logger"
	"github.com/dtroode/flashcards-client/internal/model"
	"github.com/dtroode/flashcards-client/internal/session"
)

// DefaultLoginSurface is where the user is sent after a forced logout.
const DefaultLoginSurface = "/login"

const (
	maxReplays = 1
	refreshKey = "refresh"
)

// ErrNoRefresher is returned when a refresh is needed but none was configured.
var ErrNoRefresher = errors.New("session refresher is not configured")

// Refresher exchanges the stored refresh token for a new token pair and
// returns the new access token. On failure it leaves the session cleared.
type Refresher interface {
	Refresh(ctx context.Context) (string, error)
}

// NavigateFunc is called once per forced logout with the login surface.
type NavigateFunc func(ctx context.Context, surface string)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLoginSurface sets the surface passed to the navigation hook.
func WithLoginSurface(surface string) Option {
	return func(c *Client) {
		if surface != "" {
			c.loginSurface = surface
		}
	}
}

// WithNavigator sets the hook invoked on forced logout.
func WithNavigator(fn NavigateFunc) Option {
	return func(c *Client) {
		c.navigate = fn
	}
}

// Client sends requests to the backend on behalf of the current session.
type Client struct {
	baseURL      string
	http         *http.Client
	session      *session.Context
	logger       *logger.Logger
	loginSurface string

	mu        sync.RWMutex
	refresher Refresher
	navigate  NavigateFunc

	refreshes singleflight.Group
}

// NewClient creates a Client for the API rooted at baseURL.
func NewClient(baseURL string, sess *session.Context, logger *logger.Logger, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host are required", baseURL)
	}

	c := &Client{
		baseURL:      baseURL,
		http:         http.DefaultClient,
		session:      sess,
		logger:       logger,
		loginSurface: DefaultLoginSurface,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// SetRefresher sets the component used to refresh the session. The refresher
// itself sends requests through the client, so it is attached after construction.
func (c *Client) SetRefresher(r Refresher) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refresher = r
}

// OnSessionExpired sets the hook invoked on forced logout.
func (c *Client) OnSessionExpired(fn NavigateFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.navigate = fn
}

// Session returns the session the client authenticates with.
func (c *Client) Session() *session.Context {
	return c.session
}

// Do sends req and returns the 2xx response. A 401 on a request that allows
// refresh is recovered by refreshing the session and replaying the request
// once. Any other non-2xx status is returned as *APIError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	return c.dispatch(ctx, req, uuid.NewString(), 0)
}

// RefreshSession refreshes the session through the shared in-flight refresh.
// A failed refresh ends the session the same way a failed replay does.
func (c *Client) RefreshSession(ctx context.Context) (string, error) {
	return c.awaitRefresh(ctx)
}

func (c *Client) dispatch(ctx context.Context, req *Request, requestID string, attempt int) (*Response, error) {
	token, err := c.session.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, req, requestID, token)
	if err != nil {
		return nil, err
	}
	if isSuccess(resp.StatusCode) {
		return resp, nil
	}

	if resp.StatusCode == http.StatusUnauthorized && !req.SkipRefresh && attempt < maxReplays {
		if err := c.recoverSession(ctx, token); err != nil {
			return nil, err
		}
		c.logger.Debug("HTTP client: replaying request",
			"method", req.Method,
			"path", req.Path,
			"request_id", requestID,
			"attempt", attempt+1)
		return c.dispatch(ctx, req, requestID, attempt+1)
	}

	return nil, newAPIError(resp)
}

// recoverSession makes a fresh access token available after a request sent
// with usedToken was rejected.
func (c *Client) recoverSession(ctx context.Context, usedToken string) error {
	current, err := c.session.AccessToken(ctx)
	if err != nil {
		return err
	}

	switch {
	case current != "" && current != usedToken:
		// Another call already refreshed the session.
		return nil
	case current == "" && usedToken != "":
		// Another call already ended the session.
		return fmt.Errorf("%w: session was cleared", model.ErrSessionExpired)
	}

	_, err = c.awaitRefresh(ctx)
	return err
}

// awaitRefresh joins the in-flight refresh or starts one. The shared refresh
// is detached from the caller's cancellation; each waiter still stops waiting
// when its own context is done.
func (c *Client) awaitRefresh(ctx context.Context) (string, error) {
	ch := c.refreshes.DoChan(refreshKey, func() (any, error) {
		return c.refresh(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (c *Client) refresh(ctx context.Context) (string, error) {
	c.mu.RLock()
	refresher := c.refresher
	c.mu.RUnlock()

	if refresher == nil {
		c.forceLogout(ctx, ErrNoRefresher)
		return "", fmt.Errorf("%w: %w", model.ErrSessionExpired, ErrNoRefresher)
	}

	token, err := refresher.Refresh(ctx)
	if errors.Is(err, model.ErrSessionChanged) {
		// The session was ended or replaced while the refresh was pending.
		c.logger.Info("HTTP client: session changed during refresh")
		return "", fmt.Errorf("%w: %w", model.ErrSessionExpired, err)
	}
	if err != nil {
		c.forceLogout(ctx, err)
		return "", fmt.Errorf("%w: %w", model.ErrSessionExpired, err)
	}

	c.logger.Info("HTTP client: session refreshed")
	return token, nil
}

func (c *Client) forceLogout(ctx context.Context, cause error) {
	c.logger.Warn("HTTP client: forcing logout", "error", cause.Error())

	if err := c.session.Clear(ctx); err != nil {
		c.logger.Error("HTTP client: failed to clear session", "error", err.Error())
	}

	c.mu.RLock()
	navigate := c.navigate
	c.mu.RUnlock()
	if navigate != nil {
		navigate(ctx, c.loginSurface)
	}
}

func (c *Client) send(ctx context.Context, req *Request, requestID, token string) (*Response, error) {
	httpReq, err := req.build(ctx, c.baseURL)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set(headerRequestID, requestID)
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       body,
	}, nil
}
