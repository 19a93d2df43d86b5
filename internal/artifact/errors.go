package artifact

import "errors"

var (
	// ErrNotFound is returned when the requested artifact or version does
	// not exist.
	ErrNotFound = errors.New("artifact not found")

	// ErrInvalidType is returned when an artifact type is not one of the
	// closed set of Type constants.
	ErrInvalidType = errors.New("invalid artifact type")

	// ErrTypeMismatch is returned when CreateVersion is called with a type
	// that differs from the artifact's immutable type.
	ErrTypeMismatch = errors.New("artifact type is immutable")

	// ErrVersionConflict is returned when concurrent version creation
	// exhausts its retries. This indicates a storage-level problem, not a
	// normal contention outcome: contention is resolved by row locking and
	// bounded retry before this surfaces.
	ErrVersionConflict = errors.New("version number conflict")
)
