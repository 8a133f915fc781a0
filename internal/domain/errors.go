package domain

import "errors"

// Domain errors represent error conditions in the grove domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrRejectedTransition is returned when an event arrives for a state
	// that does not permit it. Non-fatal; callers ignore or log it.
	ErrRejectedTransition = errors.New("grove: transition rejected")

	// ErrUnknownEntity is returned when an operation references an id that
	// is not present in the catalog.
	ErrUnknownEntity = errors.New("grove: unknown entity")

	// ErrDuplicateEntity is returned at construction when the catalog
	// contains two entries with the same id.
	ErrDuplicateEntity = errors.New("grove: duplicate entity id")

	// ErrTimerActive is returned when a growth timer is requested for an
	// entity that already has one armed.
	ErrTimerActive = errors.New("grove: timer already active")

	// ErrAssetLoad is returned when the rendering collaborator cannot
	// resolve an asset reference. Entity state is never mutated on this
	// failure, so the operation can be retried.
	ErrAssetLoad = errors.New("grove: asset load failed")

	// ErrAlreadyRunning is returned when Start() is called on a running session.
	ErrAlreadyRunning = errors.New("grove: already running")

	// ErrNotRunning is returned when an operation requires a started session.
	ErrNotRunning = errors.New("grove: not running")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("grove: invalid configuration")
)
