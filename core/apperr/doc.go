// Package apperr defines the error taxonomy shared by all features.
//
// Four sentinel errors cover every failure class the services expose:
//
//   - ErrNotFound: no data for the requested key (a normal outcome)
//   - ErrConflict: write rejected to preserve an invariant
//   - ErrUpstreamUnavailable: third-party provider fetch failed
//   - ErrStoreUnavailable: database or object storage unreachable
//
// Services wrap the sentinels with fmt.Errorf and %w so handlers can classify
// with errors.Is while logs keep the full context chain.
package apperr
