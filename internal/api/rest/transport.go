package rest

import (
	"crypto/tls"
	"net/http"
	"time"

	"github.com/dtroode/flashcards-client/internal/logger"
)

const headerRequestID = "X-Request-ID"

// LoggingTransport is an http.RoundTripper that logs requests and results.
type LoggingTransport struct {
	next   http.RoundTripper
	logger *logger.Logger
}

// NewLoggingTransport wraps next. A nil next uses http.DefaultTransport.
func NewLoggingTransport(next http.RoundTripper, logger *logger.Logger) *LoggingTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &LoggingTransport{next: next, logger: logger}
}

// RoundTrip logs method, path, duration and status for each request.
func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	requestID := req.Header.Get(headerRequestID)

	t.logger.Debug("HTTP request started",
		"method", req.Method,
		"path", req.URL.Path,
		"request_id", requestID)

	resp, err := t.next.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		t.logger.Error("HTTP request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"request_id", requestID,
			"duration_ms", duration.Milliseconds(),
			"error", err.Error())
		return nil, err
	}

	t.logger.Info("HTTP request completed",
		"method", req.Method,
		"path", req.URL.Path,
		"request_id", requestID,
		"duration_ms", duration.Milliseconds(),
		"status", resp.StatusCode)

	return resp, nil
}

// NewHTTPClient builds the http.Client used to reach the backend.
// tlsConfig may be nil to use system defaults.
func NewHTTPClient(timeout time.Duration, tlsConfig *tls.Config, logger *logger.Logger) *http.Client {
	base := http.DefaultTransport.(*http.Transport).Clone()
	if tlsConfig != nil {
		base.TLSClientConfig = tlsConfig
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: NewLoggingTransport(base, logger),
	}
}
