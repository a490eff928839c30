package rest

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/flashcards-client/internal/logger"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestLoggingTransport(t *testing.T) {
	tests := []struct {
		name    string
		next    roundTripFunc
		wantErr bool
		wantLog string
	}{
		{
			name: "success path",
			next: func(r *http.Request) (*http.Response, error) {
				return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody, Request: r}, nil
			},
			wantLog: "HTTP request completed",
		},
		{
			name: "error status is still a completed request",
			next: func(r *http.Request) (*http.Response, error) {
				return &http.Response{StatusCode: http.StatusUnauthorized, Body: http.NoBody, Request: r}, nil
			},
			wantLog: "status=401",
		},
		{
			name: "transport error",
			next: func(r *http.Request) (*http.Response, error) {
				return nil, errors.New("connection refused")
			},
			wantErr: true,
			wantLog: "HTTP request failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tr := NewLoggingTransport(tt.next, logger.NewWithFormat(-4, logger.FormatText, &buf))

			req := httptest.NewRequest(http.MethodGet, "http://api.test/api/v1/decks", nil)
			req.Header.Set(headerRequestID, "req-1")

			resp, err := tr.RoundTrip(req)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				require.NotNil(t, resp)
			}
			assert.Contains(t, buf.String(), tt.wantLog)
			assert.Contains(t, buf.String(), "request_id=req-1")
			assert.NotContains(t, buf.String(), "Authorization")
		})
	}
}

func TestNewHTTPClient(t *testing.T) {
	hc := NewHTTPClient(3*time.Second, nil, logger.New(0))
	assert.Equal(t, 3*time.Second, hc.Timeout)

	lt, ok := hc.Transport.(*LoggingTransport)
	require.True(t, ok)
	base, ok := lt.next.(*http.Transport)
	require.True(t, ok)
	assert.Nil(t, base.TLSClientConfig)
}
