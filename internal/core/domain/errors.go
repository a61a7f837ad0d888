package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig indicates a search configuration that failed
	// validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnsupportedMode indicates an unknown search mode.
	ErrUnsupportedMode = errors.New("unsupported search mode")

	// ErrMatcherFailure indicates the approximate matcher could not
	// process a query. Callers recover by returning no text matches.
	ErrMatcherFailure = errors.New("approximate matcher failure")

	// Profile Errors.

	// ErrProfileNotFound indicates no browser profile exists at the
	// configured location.
	ErrProfileNotFound = errors.New("browser profile not found")

	// ErrProfileLocked indicates the browser is holding an exclusive
	// lock on its database.
	ErrProfileLocked = errors.New("browser profile locked")

	// ErrSourceClosed indicates the profile source has been closed.
	ErrSourceClosed = errors.New("profile source closed")

	// ErrWatcherClosed indicates the profile watcher has been closed.
	ErrWatcherClosed = errors.New("watcher closed")
)
