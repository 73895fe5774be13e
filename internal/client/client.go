// Package client is the authenticated HTTP layer for the form builder API.
// It attaches the persisted credential to every outbound request, decodes
// error bodies into api.Error, and reacts to authorization rejection by
// purging the credential and notifying the hosting shell.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gregjones/httpcache"
	"github.com/rs/zerolog/log"

	"github.com/leadform/leadform/internal/api"
)

// DefaultTimeout bounds every outbound call.
const DefaultTimeout = 30 * time.Second

// CredentialSource supplies the persisted credential and allows the client
// to purge it on a 401. Load returns credentials.ErrNoCredential when the
// caller is anonymous.
type CredentialSource interface {
	Load() (string, error)
	Clear() error
}

// NetworkError wraps a transport-level failure: no response was received,
// so the credential is not implicated and is never purged.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Client talks to the form builder REST API.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	creds          CredentialSource
	onUnauthorized func()
	maxTries       uint
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client entirely.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithCaching enables an in-memory HTTP cache honouring Cache-Control
// headers. Useful for GET-heavy dashboard and stats reads.
func WithCaching() Option {
	return func(c *Client) {
		c.httpClient.Transport = httpcache.NewMemoryCacheTransport()
	}
}

// WithRetry enables retrying of transport-level failures with exponential
// backoff, up to maxTries attempts. Server responses of any status are never
// retried. Off by default: callers opt in per surface.
func WithRetry(maxTries uint) Option {
	return func(c *Client) {
		c.maxTries = maxTries
	}
}

// New creates a client for the API at baseURL (e.g. "http://localhost:8000/api").
func New(baseURL string, creds CredentialSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		creds:      creds,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetUnauthorizedHandler registers the callback fired after a 401 purges the
// credential. The HTTP layer performs no navigation itself; the hosting
// shell decides what "go to login" means.
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.onUnauthorized = fn
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// do executes one API call: marshal, attach credential, send, and decode.
// Every failure path returns an error; nothing is thrown past this boundary.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	resp, data, err := c.send(ctx, method, path, query, payload)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized(method, path)
		return &api.Error{StatusCode: resp.StatusCode, Body: api.ParseErrorBody(data)}
	}

	if resp.StatusCode >= 400 {
		log.Debug().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Msg("api request rejected")
		return &api.Error{StatusCode: resp.StatusCode, Body: api.ParseErrorBody(data)}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response body: %w", err)
		}
	}

	return nil
}

// Download fetches a binary payload (e.g. the leads export spreadsheet).
func (c *Client) Download(ctx context.Context, path string) ([]byte, error) {
	resp, data, err := c.send(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized(http.MethodGet, path)
		return nil, &api.Error{StatusCode: resp.StatusCode, Body: api.ParseErrorBody(data)}
	}

	if resp.StatusCode >= 400 {
		return nil, &api.Error{StatusCode: resp.StatusCode, Body: api.ParseErrorBody(data)}
	}

	return data, nil
}

// send performs the HTTP exchange and drains the body. Transport failures
// come back as *NetworkError; with retries enabled they are re-attempted,
// while any received response is final.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload []byte) (*http.Response, []byte, error) {
	type exchange struct {
		resp *http.Response
		data []byte
	}

	attempt := func() (exchange, error) {
		req, err := c.newRequest(ctx, method, path, query, payload)
		if err != nil {
			return exchange{}, backoff.Permanent(err)
		}

		started := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			log.Error().
				Err(err).
				Str("method", method).
				Str("path", path).
				Dur("duration", time.Since(started)).
				Msg("network failure")
			return exchange{}, &NetworkError{Err: err}
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return exchange{}, &NetworkError{Err: err}
		}

		log.Debug().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Dur("duration", time.Since(started)).
			Msg("api call")

		return exchange{resp: resp, data: data}, nil
	}

	var (
		result exchange
		err    error
	)
	if c.maxTries > 1 {
		result, err = backoff.Retry(ctx, attempt,
			backoff.WithBackOff(backoff.NewExponentialBackOff()),
			backoff.WithMaxTries(c.maxTries))
	} else {
		result, err = attempt()
	}
	if err != nil {
		return nil, nil, err
	}

	return result.resp, result.data, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, payload []byte) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.creds.Load()
	if err == nil && token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	return req, nil
}

// handleUnauthorized purges the persisted credential and notifies the shell.
// This is the system's only credential-expiry mechanism: there is no silent
// refresh flow.
func (c *Client) handleUnauthorized(method, path string) {
	log.Warn().
		Str("method", method).
		Str("path", path).
		Msg("unauthorized response, purging credential")

	if err := c.creds.Clear(); err != nil {
		log.Error().Err(err).Msg("failed to clear credential")
	}

	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}
