package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// SQLStore implements Store on a relational database. The engine assigns ids and owns all
// state; every operation is a single statement.
type SQLStore struct {
	DB *sqlx.DB
}

var _ Store = (*SQLStore)(nil)

// NewSQLStore wraps an open connection pool. driverName selects the bind-parameter style
// ("pgx" rebinds to $n, "sqlite" keeps ?).
func NewSQLStore(db *sql.DB, driverName string) *SQLStore {
	return &SQLStore{DB: sqlx.NewDb(db, driverName)}
}

const (
	listImagesQuery = `
SELECT id, filename, data
FROM images
ORDER BY id DESC
LIMIT ? OFFSET ?`

	countImagesQuery = `SELECT COUNT(*) FROM images`

	insertImageQuery = `
INSERT INTO images (filename, data)
VALUES (?, ?)
RETURNING id, filename, data`

	deleteImageQuery = `DELETE FROM images WHERE id = ? RETURNING id`

	listMessagesQuery = `
SELECT id, text
FROM messages
ORDER BY id`

	insertMessageQuery = `
INSERT INTO messages (text)
VALUES (?)
RETURNING id, text`

	deleteMessageQuery = `DELETE FROM messages WHERE id = ? RETURNING id`
)

// ListImages returns one page of images, newest first.
func (s *SQLStore) ListImages(ctx context.Context, page, limit int) ([]Image, error) {
	offset, inRange, err := window(page, limit)
	if err != nil {
		return nil, err
	}
	out := []Image{}
	if !inRange {
		return out, nil
	}
	if err := s.DB.SelectContext(ctx, &out, s.DB.Rebind(listImagesQuery), limit, offset); err != nil {
		return nil, storageErr("list images", err)
	}
	return out, nil
}

// CountImages returns the number of stored images.
func (s *SQLStore) CountImages(ctx context.Context) (int, error) {
	var count int64
	if err := s.DB.GetContext(ctx, &count, countImagesQuery); err != nil {
		return 0, storageErr("count images", err)
	}
	return int(count), nil
}

// AddImage inserts an image and returns the row the engine created.
func (s *SQLStore) AddImage(ctx context.Context, filename, data string) (Image, error) {
	var img Image
	if err := s.DB.GetContext(ctx, &img, s.DB.Rebind(insertImageQuery), filename, data); err != nil {
		return Image{}, storageErr("insert image", err)
	}
	return img, nil
}

// DeleteImage deletes an image and reports whether a row was removed.
func (s *SQLStore) DeleteImage(ctx context.Context, id int64) (bool, error) {
	return s.deleteReturning(ctx, deleteImageQuery, "delete image", id)
}

// ListMessages returns every message.
func (s *SQLStore) ListMessages(ctx context.Context) ([]Message, error) {
	out := []Message{}
	if err := s.DB.SelectContext(ctx, &out, listMessagesQuery); err != nil {
		return nil, storageErr("list messages", err)
	}
	return out, nil
}

// AddMessage inserts a message and returns the row the engine created.
func (s *SQLStore) AddMessage(ctx context.Context, text string) (Message, error) {
	var msg Message
	if err := s.DB.GetContext(ctx, &msg, s.DB.Rebind(insertMessageQuery), text); err != nil {
		return Message{}, storageErr("insert message", err)
	}
	return msg, nil
}

// DeleteMessage deletes a message and reports whether a row was removed.
func (s *SQLStore) DeleteMessage(ctx context.Context, id int64) (bool, error) {
	return s.deleteReturning(ctx, deleteMessageQuery, "delete message", id)
}

// deleteReturning derives the result from the presence of a returned row, so concurrent
// deletes of the same id report true exactly once.
func (s *SQLStore) deleteReturning(ctx context.Context, query, op string, id int64) (bool, error) {
	var deleted int64
	err := s.DB.GetContext(ctx, &deleted, s.DB.Rebind(query), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, storageErr(op, err)
	}
	return true, nil
}
