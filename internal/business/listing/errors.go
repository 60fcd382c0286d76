package listing

import "errors"

var (
	// ErrNotConfigured means no remote store is available; callers must not
	// treat this as an allowed or successful outcome.
	ErrNotConfigured = errors.New("remote store is not configured")

	// ErrFeaturedLimit is the expected business rejection from the capacity
	// guard, not an infrastructure failure.
	ErrFeaturedLimit = errors.New("featured car limit reached")

	// ErrSessionNotFound means the form session expired or never existed.
	ErrSessionNotFound = errors.New("form session not found")
)
