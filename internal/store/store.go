package store

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gallery-backend/internal/pagination"
)

var (
	// ErrStorage marks failures raised by the persistent engine (connectivity, constraints).
	ErrStorage = errors.New("storage failure")

	// ErrInvalidInput indicates a caller passed arguments outside the store contract.
	ErrInvalidInput = errors.New("invalid input")
)

// Store is the backend-agnostic capability set over images and messages.
// Deletes report whether a row existed; an unknown id is not an error.
type Store interface {
	ListImages(ctx context.Context, page, limit int) ([]Image, error)
	CountImages(ctx context.Context) (int, error)
	AddImage(ctx context.Context, filename, data string) (Image, error)
	DeleteImage(ctx context.Context, id int64) (bool, error)

	ListMessages(ctx context.Context) ([]Message, error)
	AddMessage(ctx context.Context, text string) (Message, error)
	DeleteMessage(ctx context.Context, id int64) (bool, error)
}

// window returns the row offset of a page. inRange is false when the offset does not fit in an
// int; such a page lies past the end of any collection.
func window(page, limit int) (offset int, inRange bool, err error) {
	if page < 1 || limit < 1 {
		return 0, false, fmt.Errorf("%w: page %d limit %d", ErrInvalidInput, page, limit)
	}
	if page-1 > math.MaxInt/limit {
		return 0, false, nil
	}
	offset, _ = pagination.Window(page, limit)
	return offset, true, nil
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
