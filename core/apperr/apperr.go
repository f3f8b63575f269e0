package apperr

import "errors"

// Sentinel errors shared by all features. Services wrap these with context via
// fmt.Errorf("...: %w", ...) and handlers map them to transport status codes.
var (
	// ErrNotFound means the requested ledger, stat record, or profile entry does
	// not exist. Absence of data is a normal outcome, not an infrastructure failure.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a write would violate a uniqueness or mutual-exclusion
	// invariant. With batch upserts and transactional marks in place this should
	// not surface to callers.
	ErrConflict = errors.New("conflict")

	// ErrUpstreamUnavailable means the third-party provider could not be reached
	// or returned a failure for the current request.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrStoreUnavailable means the persistence layer is unreachable. Fatal for
	// the current request; retried by the caller, never internally.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// IsNotFound reports whether err is (or wraps) ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
