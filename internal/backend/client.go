// Package backend is the HTTP client for the movie API and the separate
// recommendation service.
package backend

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

	"github.com/rs/xid"

	"github.com/mmcdole/reel/internal/domain"
)

const (
	defaultTimeout = 2 * time.Minute
	userAgent      = "reel/1.0"

	// cap on how much of an error body ends up in a message
	maxErrorMessage = 200
)

// TokenSource supplies the bearer token for authenticated calls
type TokenSource interface {
	BearerToken() (string, error)
}

// Config describes where the services live
type Config struct {
	BaseURL           string
	RecommendationURL string
	// Timeout applies uniformly to every call; there is no per-call override
	Timeout time.Duration
	// ClientID identifies this installation in the X-Client-ID header
	ClientID string
}

// Client implements the domain repositories over HTTP
type Client struct {
	baseURL    string
	recURL     string
	clientID   string
	tokens     TokenSource
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new API client
func NewClient(cfg Config, tokens TokenSource, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		recURL:   strings.TrimRight(cfg.RecommendationURL, "/"),
		clientID: cfg.ClientID,
		tokens:   tokens,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// request describes one API call
type request struct {
	base   string
	method string
	path   string
	query  url.Values
	body   any
	auth   bool
}

// doRequest performs a request and returns the body of a 2xx response.
// Failures come back as *domain.APIError. There is no retry.
func (c *Client) doRequest(ctx context.Context, r request) ([]byte, error) {
	reqURL := r.base + r.path
	if len(r.query) > 0 {
		reqURL = fmt.Sprintf("%s?%s", reqURL, r.query.Encode())
	}

	var body io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := xid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if c.clientID != "" {
		req.Header.Set("X-Client-ID", c.clientID)
	}
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.auth {
		if c.tokens == nil {
			return nil, &domain.APIError{Kind: domain.KindUnauthorized, Err: domain.ErrNotLoggedIn}
		}
		token, err := c.tokens.BearerToken()
		if err != nil {
			return nil, &domain.APIError{Kind: domain.KindUnauthorized, Err: err}
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("api request", "method", r.method, "url", reqURL, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, &domain.APIError{Kind: domain.KindCanceled, Err: ctxErr}
		}
		c.logger.Error("api request failed", "url", reqURL, "request_id", requestID, "error", err)
		return nil, &domain.APIError{Kind: domain.KindNetwork, Err: domain.ErrServerOffline}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.APIError{Kind: domain.KindNetwork, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := classify(resp.StatusCode, respBody)
		c.logger.Error("api request error",
			"status", resp.StatusCode,
			"kind", apiErr.Kind.String(),
			"url", reqURL,
			"request_id", requestID,
			"body", truncate(string(respBody)),
		)
		return nil, apiErr
	}

	return respBody, nil
}

// classify maps a non-2xx response to a structured error
func classify(status int, body []byte) *domain.APIError {
	apiErr := &domain.APIError{StatusCode: status, Message: errorMessage(status, body)}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		apiErr.Kind = domain.KindUnauthorized
		apiErr.Err = domain.ErrAuthFailed
	case status == http.StatusNotFound:
		apiErr.Kind = domain.KindNotFound
		apiErr.Err = domain.ErrNotFound
	case status >= 400 && status < 500:
		apiErr.Kind = domain.KindClient
	case status >= 500:
		apiErr.Kind = domain.KindServer
	default:
		apiErr.Kind = domain.KindUnknown
	}
	return apiErr
}

// errorMessage extracts a readable message from an error body. Spring-style
// JSON bodies carry it in "message" or "error"; anything else is used as text.
func errorMessage(status int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	var text string
	if err := json.Unmarshal(body, &text); err == nil && text != "" {
		return truncate(text)
	}
	if text := strings.TrimSpace(string(body)); text != "" && !strings.HasPrefix(text, "{") && !strings.HasPrefix(text, "<") {
		return truncate(text)
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("unexpected status code: %d", status)
}

func truncate(s string) string {
	if len(s) <= maxErrorMessage {
		return s
	}
	return s[:maxErrorMessage] + "..."
}

// decode unmarshals a JSON body into dest
func decode(body []byte, dest any) error {
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// get is a shorthand for a GET against the main API
func (c *Client) get(ctx context.Context, path string, query url.Values, auth bool, dest any) error {
	body, err := c.doRequest(ctx, request{base: c.baseURL, method: http.MethodGet, path: path, query: query, auth: auth})
	if err != nil {
		return err
	}
	return decode(body, dest)
}

// IsOffline reports whether err came from an unreachable server
func IsOffline(err error) bool {
	return errors.Is(err, domain.ErrServerOffline)
}
