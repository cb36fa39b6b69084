// Package gateway is the HTTP transport used by every service package.
// It owns the shared http.Client, bearer-token injection and JSON
// (de)serialization; callers only ever see Go values and typed errors.
package gateway

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
	"time"

	"github.com/google/uuid"
)

const defaultTimeout = 15 * time.Second

// TokenFunc returns the current access token, or "" when unauthenticated.
// It is called once per request so token rotation is picked up immediately.
type TokenFunc func() string

// Gateway performs HTTP requests against the job-board API.
type Gateway struct {
	baseURL string
	client  *http.Client
	token   TokenFunc
}

// Option customises a Gateway.
type Option func(*Gateway)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) { g.client.Timeout = d }
}

// WithTokenFunc installs the access-token source for the Authorization header.
func WithTokenFunc(fn TokenFunc) Option {
	return func(g *Gateway) { g.token = fn }
}

// New constructs a Gateway with a shared HTTP client.
// baseURL is the API root, e.g. "https://api.example.com/api".
func New(baseURL string, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// ─── JSON verbs ──────────────────────────────────────────────────────────────

// GetJSON performs GET path?query and decodes the response into out.
// query and out may be nil.
func (g *Gateway) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	reqURL := g.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	return g.do(req, out)
}

// PostJSON performs POST path with body serialised as JSON.
func (g *Gateway) PostJSON(ctx context.Context, path string, body, out any) error {
	return g.sendJSON(ctx, http.MethodPost, path, body, out)
}

// PutJSON performs PUT path with body serialised as JSON.
func (g *Gateway) PutJSON(ctx context.Context, path string, body, out any) error {
	return g.sendJSON(ctx, http.MethodPut, path, body, out)
}

// PatchJSON performs PATCH path with body serialised as JSON.
func (g *Gateway) PatchJSON(ctx context.Context, path string, body, out any) error {
	return g.sendJSON(ctx, http.MethodPatch, path, body, out)
}

func (g *Gateway) sendJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return g.do(req, out)
}

// ─── Multipart ───────────────────────────────────────────────────────────────

// SendMultipart performs method path with a multipart/form-data body: one
// text part per fields entry plus, when file is non-nil, a file part named
// fileField. Used by profile updates that attach a CV.
func (g *Gateway) SendMultipart(ctx context.Context, method, path string, fields map[string]string, fileField, fileName string, file io.Reader, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("write form field %q: %w", k, err)
		}
	}
	if file != nil {
		part, err := w.CreateFormFile(fileField, fileName)
		if err != nil {
			return fmt.Errorf("create form file: %w", err)
		}
		if _, err := io.Copy(part, file); err != nil {
			return fmt.Errorf("copy form file: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return g.do(req, out)
}

// ─── Request execution ───────────────────────────────────────────────────────

func (g *Gateway) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if g.token != nil {
		if tok := g.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("http %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("json unmarshal: %w", err)
	}
	return nil
}
