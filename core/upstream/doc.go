// Package upstream provides the HTTP client for the third-party provider.
//
// Two documents come from the provider: the per-uid profile snapshot (opaque
// JSON, cached by feature/profile) and the featured/standard-pool reference
// feed (consumed by the stats reference sync task).
//
// # Retry behavior
//
// Fetches carry a per-request timeout and an exponential backoff retry window.
// Network errors and 429 responses are retried with jitter; 404 and other
// status codes fail permanently. A 404 maps to apperr.ErrNotFound, everything
// else to apperr.ErrUpstreamUnavailable.
package upstream
