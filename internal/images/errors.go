package images

import "errors"

var (
	// ErrNotFound indicates no image has the requested id.
	ErrNotFound = errors.New("image not found")

	errNotConfigured = errors.New("images service not configured")
)
