package catalog

import "errors"

// Sentinel error kinds surfaced by the query service. Storage failures are
// wrapped driver errors and match neither sentinel.
var (
	// ErrNotFound signals that a referenced product or entity is absent
	ErrNotFound = errors.New("not found")

	// ErrValidation signals malformed arguments. Unrecognized sort keys are
	// not validation errors; they silently fall back to the default sort.
	ErrValidation = errors.New("invalid argument")
)
