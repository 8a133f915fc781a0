package grove

import "github.com/verdant-labs/grove/internal/domain"

// Sentinel errors returned by the public API; check with errors.Is.
var (
	// ErrRejectedTransition means an event arrived for a state that does
	// not permit it. Entity state is unchanged.
	ErrRejectedTransition = domain.ErrRejectedTransition

	// ErrUnknownEntity means an operation referenced an id not present in
	// the catalog.
	ErrUnknownEntity = domain.ErrUnknownEntity

	// ErrDuplicateEntity means the catalog contains two entries with the
	// same id. Fatal at construction.
	ErrDuplicateEntity = domain.ErrDuplicateEntity

	// ErrAssetLoad means the renderer could not resolve an asset
	// reference. Entity state is unchanged; retry by re-selecting.
	ErrAssetLoad = domain.ErrAssetLoad

	// ErrAlreadyRunning is returned when Start() is called twice.
	ErrAlreadyRunning = domain.ErrAlreadyRunning

	// ErrNotRunning is returned by operations on a stopped session.
	ErrNotRunning = domain.ErrNotRunning

	// ErrInvalidConfig means catalog or configuration validation failed.
	ErrInvalidConfig = domain.ErrInvalidConfig
)
