// internal/api/client.go

// Package api implements the REST client for the storefront backend.
// It satisfies each domain package's gateway interface and owns the
// wire-level concerns: JSON codec, bearer auth, and the `{ message }`
// error envelope.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/config"
	"github.com/your-org/storefront-client/internal/infrastructure/storage"
	"github.com/your-org/storefront-client/internal/pkg/apierr"
	"github.com/your-org/storefront-client/internal/pkg/auth"
)

// Client calls the backend REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	prefs      *storage.Prefs
	logger     *logrus.Logger
}

// NewClient creates an API client from configuration
func NewClient(cfg *config.Config, prefs *storage.Prefs, logger *logrus.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.API.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.API.RequestTimeout},
		userAgent:  cfg.API.UserAgent,
		prefs:      prefs,
		logger:     logger,
	}
}

// errorEnvelope is the backend's error response body
type errorEnvelope struct {
	Message string `json:"message"`
}

// do performs a JSON request against the backend. A stored bearer token
// is attached automatically; an obviously expired one fails fast as
// ErrUnauthorized without a round-trip.
func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if err := c.attachToken(ctx, req); err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.WithError(err).WithFields(logrus.Fields{
				"method": method,
				"path":   path,
			}).Warn("request failed")
		}
		return fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if c.logger != nil {
		c.logger.WithFields(logrus.Fields{
			"method":      method,
			"path":        path,
			"status_code": resp.StatusCode,
			"latency":     time.Since(start),
		}).Debug("request completed")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.decodeError(resp)
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// attachToken adds the Authorization header when a token is stored
func (c *Client) attachToken(ctx context.Context, req *http.Request) error {
	if c.prefs == nil {
		return nil
	}
	token, err := c.prefs.Token(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}
	if err := auth.CheckUsable(token, time.Now()); err != nil {
		return fmt.Errorf("stored token unusable: %w", apierr.ErrUnauthorized)
	}
	req.Header.Set("Authorization", auth.BearerHeader(token))
	return nil
}

// decodeError turns a non-2xx response into an *APIError, falling back
// to a generic message when the body carries no `message` field.
func (c *Client) decodeError(resp *http.Response) error {
	var envelope errorEnvelope
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	_ = json.Unmarshal(raw, &envelope)

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%s: %w", envelope.Message, apierr.ErrUnauthorized)
	}

	return &apierr.APIError{
		Status:  resp.StatusCode,
		Message: envelope.Message,
	}
}
