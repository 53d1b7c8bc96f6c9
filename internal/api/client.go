// Package api is the outbound client for the tailoring backend. It attaches
// the session's bearer token, normalises failures and converts the backend's
// loosely shaped JSON into the typed shop model.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/startailors/tailorshop/internal/session"
)

// Recorder observes completed backend calls.
type Recorder interface {
	ObserveAPICall(op string, status int, elapsed time.Duration)
}

// Client wraps HTTP calls to the backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Session
	logger     *slog.Logger
	recorder   Recorder
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds every request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d, Transport: c.httpClient.Transport}
		}
	}
}

// WithLogger sets the logger used for failed calls.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRecorder attaches call metrics.
func WithRecorder(r Recorder) Option {
	return func(c *Client) {
		c.recorder = r
	}
}

// NewClient constructs a client for baseURL (for example http://localhost:5000/api).
func NewClient(baseURL string, sess *session.Session, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		session:    sess,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session exposes the session holder the client authenticates with.
func (c *Client) Session() *session.Session {
	return c.session
}

type call struct {
	op     string
	method string
	path   string
	query  url.Values
	body   any
}

func (c *Client) get(ctx context.Context, op, path string, query url.Values, out any) error {
	return c.do(ctx, call{op: op, method: http.MethodGet, path: path, query: query}, out)
}

func (c *Client) send(ctx context.Context, op, method, path string, body, out any) error {
	return c.do(ctx, call{op: op, method: method, path: path, body: body}, out)
}

func (c *Client) do(ctx context.Context, in call, out any) error {
	start := time.Now()
	status, err := c.roundTrip(ctx, in, out)
	if c.recorder != nil {
		c.recorder.ObserveAPICall(in.op, status, time.Since(start))
	}
	if err != nil {
		c.logger.Warn("api call failed",
			slog.String("op", in.op),
			slog.String("method", in.method),
			slog.String("path", in.path),
			slog.Int("status", status),
			slog.Any("error", err))
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, in call, out any) (int, error) {
	var body io.Reader
	if in.body != nil {
		payload, err := json.Marshal(in.body)
		if err != nil {
			return 0, fmt.Errorf("encode %s body: %w", in.op, err)
		}
		body = bytes.NewReader(payload)
	}
	target := c.baseURL + in.path
	if len(in.query) > 0 {
		target += "?" + in.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, in.method, target, body)
	if err != nil {
		return 0, fmt.Errorf("build %s request: %w", in.op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID(ctx))
	token := c.session.Sync(ctx)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %s: %v", ErrTransport, in.method, in.path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusUnauthorized {
		_ = c.session.Revoke(context.WithoutCancel(ctx), token)
		return resp.StatusCode, ErrSessionExpired
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%w: read %s response: %v", ErrTransport, in.op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, &StatusError{
			Method:  in.method,
			Path:    in.path,
			Status:  resp.StatusCode,
			Message: errorMessage(raw, resp.StatusCode),
		}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: %s: %v", ErrDecode, in.op, err)
	}
	return resp.StatusCode, nil
}

func errorMessage(raw []byte, status int) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return defaultStatusMessage(status)
}

func requestID(ctx context.Context) string {
	if id := chimw.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

// IsAuthFailure reports whether err means the operator must sign in again.
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrSessionExpired)
}
