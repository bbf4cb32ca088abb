package messages

import "errors"

var (
	// ErrNotFound indicates no message has the requested id.
	ErrNotFound = errors.New("message not found")

	errNotConfigured = errors.New("messages service not configured")
)
