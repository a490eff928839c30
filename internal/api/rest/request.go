package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

// Request describes one logical backend call. The body is held in memory so
// the call can be dispatched again after a session refresh with an identical
// payload. A Request is not modified by the client.
type Request struct {
	Method      string
	Path        string
	Query       url.Values
	Header      http.Header
	Body        []byte
	ContentType string
	// SkipRefresh disables the refresh-and-replay handling of 401 responses.
	// Set on the authentication endpoints themselves.
	SkipRefresh bool
}

// NewRequest creates a request without a body.
func NewRequest(method, path string) *Request {
	return &Request{Method: method, Path: path}
}

// NewJSONRequest creates a request with v encoded as JSON.
func NewJSONRequest(method, path string, v any) (*Request, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return &Request{Method: method, Path: path, Body: body, ContentType: contentTypeJSON}, nil
}

// NewFormRequest creates a request with form-encoded values.
func NewFormRequest(method, path string, values url.Values) *Request {
	return &Request{
		Method:      method,
		Path:        path,
		Body:        []byte(values.Encode()),
		ContentType: contentTypeForm,
	}
}

// NewMultipartRequest creates a multipart/form-data request with a single file part.
func NewMultipartRequest(method, path, field, filename string, content io.Reader) (*Request, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	return &Request{
		Method:      method,
		Path:        path,
		Body:        buf.Bytes(),
		ContentType: w.FormDataContentType(),
	}, nil
}

// WithQuery returns a copy of the request with the query parameter set.
func (r *Request) WithQuery(key, value string) *Request {
	cp := *r
	cp.Query = url.Values{}
	for k, v := range r.Query {
		cp.Query[k] = append([]string(nil), v...)
	}
	cp.Query.Set(key, value)
	return &cp
}

// WithoutRefresh returns a copy of the request with SkipRefresh set.
func (r *Request) WithoutRefresh() *Request {
	cp := *r
	cp.SkipRefresh = true
	return &cp
}

func (r *Request) build(ctx context.Context, baseURL string) (*http.Request, error) {
	target := strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(r.Path, "/")
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range r.Header {
		req.Header[k] = append([]string(nil), v...)
	}
	if r.ContentType != "" {
		req.Header.Set("Content-Type", r.ContentType)
	}
	req.Header.Set("Accept", contentTypeJSON)
	return req, nil
}
