package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"gacha-tracker/core/apperr"
)

// Client defines the interface for third-party provider operations.
type Client interface {
	// FetchProfile retrieves the raw profile document for a player uid.
	// The document schema belongs to the provider and is treated as opaque.
	FetchProfile(ctx context.Context, uid int32) ([]byte, error)

	// FetchReference retrieves the featured/standard-pool reference feed
	// shared by all games.
	FetchReference(ctx context.Context) ([]byte, error)
}

type httpClient struct {
	baseURL    string
	client     *http.Client
	maxElapsed time.Duration
}

// NewClient creates a provider client from the configuration.
func NewClient(cfg Config) Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 15
	}
	return &httpClient{
		baseURL:    cfg.BaseURL,
		client:     &http.Client{Timeout: time.Duration(timeout) * time.Second},
		maxElapsed: time.Duration(cfg.RetryMaxElapsedSeconds) * time.Second,
	}
}

func (c *httpClient) FetchProfile(ctx context.Context, uid int32) ([]byte, error) {
	return c.getWithRetry(ctx, fmt.Sprintf("%s/profile/%d", c.baseURL, uid))
}

func (c *httpClient) FetchReference(ctx context.Context) ([]byte, error) {
	return c.getWithRetry(ctx, c.baseURL+"/reference")
}

// getWithRetry executes a GET with exponential backoff. Network errors and 429
// are retryable; 404 and other status codes are permanent.
func (c *httpClient) getWithRetry(ctx context.Context, url string) ([]byte, error) {
	var respBody []byte

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("%w: %v", apperr.ErrUpstreamUnavailable, err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("%w: rate limited (429)", apperr.ErrUpstreamUnavailable)
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(fmt.Errorf("%w: %s", apperr.ErrNotFound, url))
		case resp.StatusCode != http.StatusOK:
			return backoff.Permanent(fmt.Errorf("%w: unexpected status %d", apperr.ErrUpstreamUnavailable, resp.StatusCode))
		}

		respBody, err = io.ReadAll(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("%w: read body: %v", apperr.ErrUpstreamUnavailable, err))
		}
		return nil
	}

	if c.maxElapsed <= 0 {
		// Retries disabled: one attempt only.
		if err := operation(); err != nil {
			var perm *backoff.PermanentError
			if errors.As(err, &perm) {
				return nil, perm.Err
			}
			return nil, err
		}
		return respBody, nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 1 * time.Second
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = c.maxElapsed
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5 // jitter to avoid thundering herd against the provider

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, err
	}
	return respBody, nil
}
