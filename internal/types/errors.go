package types

import "errors"

// Sentinel errors for the scan pipeline. Using sentinels allows callers
// to match with errors.Is for reliable error handling.
var (
	// ErrRootNotDirectory is returned when the scan root is missing or not a directory.
	ErrRootNotDirectory = errors.New("scan root is not a readable directory")

	// ErrNoOutputPath is returned when the markdown output path is empty.
	ErrNoOutputPath = errors.New("output path must not be empty")

	// ErrCriticalFound is returned by the scan command only when the caller
	// opted into fail-on-critical gating. Finding critical markers is never
	// an error by itself.
	ErrCriticalFound = errors.New("critical markers found")
)
