// Package api implements the request pipeline every backend call flows
// through: header construction, bearer-token injection, body encoding,
// timeout-based cancellation, and HTTP-status-to-error-kind mapping.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/datahuba/kyc-client/internal/credentials"
)

const (
	apiPrefix         = "/api/v1"
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 3
)

// RequestOptions tunes a single pipeline call.
// RequireAuth is tri-state: nil attaches the stored token when one exists,
// true fails fast when none exists, false never attaches one.
type RequestOptions struct {
	RequireAuth *bool
	Headers     map[string]string
}

// Bool returns a pointer to v, for RequestOptions.RequireAuth
func Bool(v bool) *bool {
	return &v
}

// Client is the typed HTTP client for the academy API
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      credentials.Store
	timeout    time.Duration
	maxRetries int
	log        zerolog.Logger
}

// New creates a client rooted at baseURL (the versioned prefix is appended).
// The credential store supplies bearer tokens and absorbs 401 invalidations.
func New(baseURL string, creds credentials.Store) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + apiPrefix,
		httpClient: &http.Client{},
		creds:      creds,
		timeout:    defaultTimeout,
		maxRetries: defaultMaxRetries,
		log:        log.Logger,
	}
}

// SetHTTPClient sets a custom HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// SetTimeout sets the per-request timeout
func (c *Client) SetTimeout(d time.Duration) {
	c.timeout = d
}

// SetMaxRetries bounds the retry loop for idempotent requests
func (c *Client) SetMaxRetries(n int) {
	c.maxRetries = n
}

// Get performs an authenticated-by-default GET and decodes the JSON response
// into dest. Network-kind failures are retried with exponential backoff; GET
// is the only verb that retries.
func (c *Client) Get(endpoint string, dest any, opts *RequestOptions) error {
	op := func() error {
		err := c.do(http.MethodGet, endpoint, nil, dest, opts)
		if err != nil && !IsKind(err, KindNetwork) {
			return backoff.Permanent(err)
		}
		return err
	}
	bo := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.maxRetries))
	return backoff.Retry(op, bo)
}

// Post performs an authenticated-by-default POST
func (c *Client) Post(endpoint string, body, dest any, opts *RequestOptions) error {
	return c.do(http.MethodPost, endpoint, body, dest, opts)
}

// Put performs an authenticated-by-default PUT
func (c *Client) Put(endpoint string, body, dest any, opts *RequestOptions) error {
	return c.do(http.MethodPut, endpoint, body, dest, opts)
}

// Patch performs an authenticated-by-default PATCH
func (c *Client) Patch(endpoint string, body, dest any, opts *RequestOptions) error {
	return c.do(http.MethodPatch, endpoint, body, dest, opts)
}

// Delete performs an authenticated-by-default DELETE
func (c *Client) Delete(endpoint string, body, dest any, opts *RequestOptions) error {
	return c.do(http.MethodDelete, endpoint, body, dest, opts)
}

// GetPublic performs a GET without attaching credentials
func (c *Client) GetPublic(endpoint string, dest any) error {
	return c.Get(endpoint, dest, &RequestOptions{RequireAuth: Bool(false)})
}

// PostPublic performs a POST without attaching credentials
func (c *Client) PostPublic(endpoint string, body, dest any) error {
	return c.Post(endpoint, body, dest, &RequestOptions{RequireAuth: Bool(false)})
}

// buildHeaders assembles the outgoing header set: defaults, then caller
// overrides, then bearer injection per the RequireAuth tri-state. The
// request ID is a default like the content type, so a caller-supplied
// correlation ID wins.
func (c *Client) buildHeaders(opts *RequestOptions) (map[string]string, error) {
	headers := map[string]string{
		"Content-Type": "application/json",
		"X-Request-ID": ulid.Make().String(),
	}
	for k, v := range opts.Headers {
		headers[k] = v
	}

	if opts.RequireAuth == nil || *opts.RequireAuth {
		token := c.storedToken()
		if token != "" {
			headers["Authorization"] = "Bearer " + token
		} else if opts.RequireAuth != nil && *opts.RequireAuth {
			return nil, &AppError{
				Message: "authentication token required",
				Kind:    KindAuthentication,
				Status:  http.StatusUnauthorized,
			}
		}
	}

	return headers, nil
}

// storedToken returns the persisted bearer token, or "" when none is stored
// or the persisted expiry marker says it is no longer usable.
func (c *Client) storedToken() string {
	token, err := c.creds.LoadToken()
	if err != nil || token == "" {
		return ""
	}
	if expiry, err := c.creds.LoadTokenExpiry(); err == nil && time.Now().After(expiry) {
		c.log.Debug().Time("expiry", expiry).Msg("stored token expired, treating as absent")
		return ""
	}
	return token
}

// encodeBody resolves the request body and its content type. Multipart
// payloads carry their own boundary-bearing content type, which replaces
// whatever the header set held.
func encodeBody(body any, headers map[string]string) (io.Reader, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case *MultipartPayload:
		contentType, buf, err := b.seal()
		if err != nil {
			return nil, &AppError{Message: "failed to encode multipart payload", Kind: KindNetwork, Cause: err}
		}
		headers["Content-Type"] = contentType
		return buf, nil
	case url.Values:
		if headers["Content-Type"] == "application/json" {
			headers["Content-Type"] = "application/x-www-form-urlencoded"
		}
		return strings.NewReader(b.Encode()), nil
	default:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &AppError{Message: "failed to encode request body", Kind: KindNetwork, Cause: err}
		}
		return bytes.NewReader(data), nil
	}
}

// do runs one request through the full pipeline. Ordering matters: on a 401
// the stored credentials are purged before the error reaches the caller.
func (c *Client) do(method, endpoint string, body, dest any, opts *RequestOptions) error {
	if opts == nil {
		opts = &RequestOptions{}
	}

	headers, err := c.buildHeaders(opts)
	if err != nil {
		return err
	}

	reader, err := encodeBody(body, headers)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return &AppError{Message: "failed to build request", Kind: KindNetwork, Cause: err}
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return &AppError{
				Message: "request cancelled by timeout",
				Kind:    KindNetwork,
				Status:  http.StatusRequestTimeout,
			}
		}
		return &AppError{Message: "network error", Kind: KindNetwork, Cause: err}
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Str("request_id", headers["X-Request-ID"]).
		Int("status", resp.StatusCode).
		Msg("api request")

	// 204: success with no body to parse
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.classifyFailure(resp)
	}

	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &AppError{Message: "failed to decode response", Kind: KindNetwork, Cause: err}
	}
	return nil
}

// classifyFailure turns a non-success response into an AppError. A 401 also
// purges the stored credentials; that is how the pipeline signals session
// invalidation without holding a reference to the session store.
func (c *Client) classifyFailure(resp *http.Response) error {
	var errBody struct {
		Message string `json:"message"`
	}
	// Backend error bodies are best-effort JSON; an unparseable body just
	// falls through to the generic message.
	_ = json.NewDecoder(resp.Body).Decode(&errBody)

	if resp.StatusCode == http.StatusUnauthorized {
		if err := c.creds.Invalidate(); err != nil {
			c.log.Warn().Err(err).Msg("failed to clear credentials after 401")
		}
	}

	message := errBody.Message
	if message == "" {
		message = "request failed"
	}

	return &AppError{
		Message: message,
		Kind:    ClassifyStatus(resp.StatusCode),
		Status:  resp.StatusCode,
	}
}
