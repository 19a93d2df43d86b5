package session

import "errors"

// Sentinel errors for session operations, checked with errors.Is.
var (
	// ErrNotResident is returned when an operation names an artifact that
	// is not in the session's resident set. It indicates caller misuse or
	// stale state; the caller should re-sync its view of resident artifacts.
	ErrNotResident = errors.New("artifact not resident in session")

	// ErrNoEvictable is returned when Open needs to evict but every
	// resident entry is the active one. With the default capacity of 5 and
	// a single active pointer this is unreachable; it indicates a
	// misconfigured capacity bound, not a runtime condition to recover
	// from.
	ErrNoEvictable = errors.New("no evictable artifact in session")
)
