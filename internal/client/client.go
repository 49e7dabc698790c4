// Package client implements the platform API submitter: one HTTP call per
// submission, with a token-bucket rate limiter bounding outbound request
// rate and bounded exponential retry on 429, 5xx and transport timeouts.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"golang.org/x/time/rate"

	"github.com/leapstack-labs/leapboard/pkg/omni"
)

// Config holds client connection settings.
type Config struct {
	BaseURL     string
	APIToken    string
	Timeout     time.Duration // per-request; default 30s
	MaxRetries  uint64        // default 4
	RequestRate float64       // requests per second; default 5
	Logger      *slog.Logger
}

// Client talks to the platform's document API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxRetries uint64
	logger     *slog.Logger
}

// New builds a client from config, applying defaults for unset fields.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = 4
	}
	reqRate := cfg.RequestRate
	if reqRate <= 0 {
		reqRate = 5
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		token:      cfg.APIToken,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(reqRate), 1),
		maxRetries: maxRetries,
		logger:     logger,
	}
}

// createResponse is the id envelope both endpoints return.
type createResponse struct {
	ID string `json:"id"`
}

// SubmitCreate posts a creation payload and returns the new document id.
// An idempotency key makes retried creations safe.
func (c *Client) SubmitCreate(ctx context.Context, payload *omni.CreatePayload) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode payload: %w", err)
	}
	headers := map[string]string{"Idempotency-Key": uuid.NewString()}
	return c.post(ctx, "/api/v1/documents", body, headers)
}

// SubmitImport posts a raw export payload against a base model and returns
// the imported document id.
func (c *Client) SubmitImport(ctx context.Context, export []byte, baseModelID string) (string, error) {
	body, err := json.Marshal(map[string]any{
		"document":    json.RawMessage(export),
		"baseModelId": baseModelID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode import request: %w", err)
	}
	return c.post(ctx, "/api/v1/documents/import", body, nil)
}

// post sends one rate-limited, retried POST and parses the id envelope.
func (c *Client) post(ctx context.Context, path string, body []byte, headers map[string]string) (string, error) {
	var id string

	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			// Transport errors (timeouts included) are worth retrying.
			c.logger.Warn("request failed, retrying", "path", path, "error", err)
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return retry.RetryableError(err)
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			c.logger.Warn("retryable status", "path", path, "status", resp.StatusCode)
			return retry.RetryableError(fmt.Errorf("%s: status %d", path, resp.StatusCode))
		case resp.StatusCode >= 400:
			return fmt.Errorf("%s: status %d: %s", path, resp.StatusCode, truncate(respBody, 512))
		}

		var parsed createResponse
		if err := json.Unmarshal(respBody, &parsed); err != nil {
			return fmt.Errorf("%s: invalid response: %w", path, err)
		}
		if parsed.ID == "" {
			return fmt.Errorf("%s: response has no document id", path)
		}
		id = parsed.ID
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
