// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package client is the typed Go client of the Profil CMS REST API. It is
// what the site's own tools (importers, smoke tests, static generators)
// use to talk to a running instance.
package client

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
	"strconv"
	"time"
)

// DefaultLanguage is the language retried when the server reports an
// unknown language code.
const DefaultLanguage = "id"

// Sentinel errors. API failures wrap one of these, so callers can test
// with errors.Is regardless of the endpoint.
var (
	ErrNotFound      = errors.New("not found")
	ErrRequestFailed = errors.New("request failed")
)

// APIError carries the decoded error envelope of a failed request.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d (%s)", e.StatusCode, e.Code)
}

// Unwrap maps the error code onto a sentinel.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound || e.Code == "not_found" {
		return ErrNotFound
	}
	return ErrRequestFailed
}

// Client talks to one Profil CMS instance.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     *slog.Logger
	lang    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpc = hc }
}

// WithLanguage sets the language requested on every call.
func WithLanguage(code string) Option {
	return func(c *Client) { c.lang = code }
}

// WithLogger sets the client's logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a client for the instance at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: trimTrailingSlash(baseURL),
		httpc:   &http.Client{Timeout: 30 * time.Second},
		log:     slog.Default(),
		lang:    DefaultLanguage,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func trimTrailingSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}

// envelope is the wire shape of every response.
type envelope struct {
	Success    bool              `json:"success"`
	Data       json.RawMessage   `json:"data"`
	Message    string            `json:"message"`
	Code       string            `json:"code"`
	Errors     map[string]string `json:"errors"`
	Pagination *Pagination       `json:"pagination"`
}

// do performs one request and decodes the envelope. A language_not_found
// failure is retried exactly once with the default language.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*envelope, error) {
	env, err := c.doOnce(ctx, method, path, query, body, contentType)

	var apiErr *APIError
	if body == nil && errors.As(err, &apiErr) && apiErr.Code == "language_not_found" && query.Get("lang") != DefaultLanguage {
		c.log.Debug("retrying with default language", "path", path, "lang", query.Get("lang"))
		retry := cloneValues(query)
		retry.Set("lang", DefaultLanguage)
		return c.doOnce(ctx, method, path, retry, body, contentType)
	}
	return env, err
}

func (c *Client) doOnce(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*envelope, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: decoding response (status %d): %v", ErrRequestFailed, resp.StatusCode, err)
	}
	if !env.Success {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       env.Code,
			Message:    env.Message,
			Fields:     env.Errors,
		}
	}
	return &env, nil
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}

func (c *Client) baseQuery() url.Values {
	q := url.Values{}
	if c.lang != "" {
		q.Set("lang", c.lang)
	}
	return q
}

// ListOptions filter a GetAll call.
type ListOptions struct {
	Page   int64
	Limit  int64
	Search string
}

func (o ListOptions) apply(q url.Values) {
	if o.Page > 0 {
		q.Set("page", strconv.FormatInt(o.Page, 10))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.FormatInt(o.Limit, 10))
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
}

// Search queries the published news.
func (c *Client) Search(ctx context.Context, query string) ([]Item, error) {
	q := c.baseQuery()
	q.Set("q", query)
	env, err := c.do(ctx, http.MethodGet, "/api/search", q, nil, "")
	if err != nil {
		return nil, err
	}
	var items []Item
	if err := json.Unmarshal(env.Data, &items); err != nil {
		return nil, fmt.Errorf("decoding items: %w", err)
	}
	return items, nil
}

// Languages returns the instance's active languages.
func (c *Client) Languages(ctx context.Context) ([]Language, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/languages", url.Values{}, nil, "")
	if err != nil {
		return nil, err
	}
	var langs []Language
	if err := json.Unmarshal(env.Data, &langs); err != nil {
		return nil, fmt.Errorf("decoding languages: %w", err)
	}
	return langs, nil
}

// SendMessage submits the public contact form.
func (c *Client) SendMessage(ctx context.Context, msg MessageInput) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding message: %w", err)
	}
	_, err = c.do(ctx, http.MethodPost, "/api/pesan", url.Values{}, bytes.NewReader(body), "application/json")
	return err
}
