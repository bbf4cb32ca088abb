package store

import (
	"context"
	"sort"
	"sync"
)

// DefaultMessages seeds a fresh in-memory store so the message board is never empty in dev.
var DefaultMessages = []string{
	"Your smile makes my world brighter!",
	"Every day with you feels like a sunny day.",
	"You make ordinary moments extraordinary.",
	"Just thinking about you makes me smile.",
	"I'm so lucky to have you in my life.",
	"You light up even the darkest days.",
}

// MemoryStore is an in-memory implementation of Store.
type MemoryStore struct {
	mu        sync.RWMutex
	images    map[int64]Image
	messages  map[int64]Message
	imageID   Sequence
	messageID Sequence
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore constructs a MemoryStore holding one message per seed text.
func NewMemoryStore(seed ...string) *MemoryStore {
	s := &MemoryStore{
		images:   make(map[int64]Image),
		messages: make(map[int64]Message),
	}
	for _, text := range seed {
		id := s.messageID.Next()
		s.messages[id] = Message{ID: id, Text: text}
	}
	return s
}

// ListImages returns one page of images, newest first.
func (s *MemoryStore) ListImages(ctx context.Context, page, limit int) ([]Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	offset, inRange, err := window(page, limit)
	if err != nil {
		return nil, err
	}
	if !inRange {
		return []Image{}, nil
	}

	s.mu.RLock()
	all := make([]Image, 0, len(s.images))
	for _, img := range s.images {
		all = append(all, img)
	}
	s.mu.RUnlock()

	if offset >= len(all) {
		return []Image{}, nil
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].ID > all[j].ID
	})

	end := len(all)
	if limit < end-offset {
		end = offset + limit
	}
	return all[offset:end], nil
}

// CountImages returns the number of stored images.
func (s *MemoryStore) CountImages(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.images), nil
}

// AddImage stores an image under a fresh id.
func (s *MemoryStore) AddImage(ctx context.Context, filename, data string) (Image, error) {
	if err := ctx.Err(); err != nil {
		return Image{}, err
	}
	img := Image{ID: s.imageID.Next(), Filename: filename, Data: data}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[img.ID] = img
	return img, nil
}

// DeleteImage removes an image and reports whether it existed.
func (s *MemoryStore) DeleteImage(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.images[id]; !ok {
		return false, nil
	}
	delete(s.images, id)
	return true, nil
}

// ListMessages returns every message in id order.
func (s *MemoryStore) ListMessages(ctx context.Context) ([]Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]Message, 0, len(s.messages))
	for _, msg := range s.messages {
		out = append(out, msg)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// AddMessage stores a message under a fresh id.
func (s *MemoryStore) AddMessage(ctx context.Context, text string) (Message, error) {
	if err := ctx.Err(); err != nil {
		return Message{}, err
	}
	msg := Message{ID: s.messageID.Next(), Text: text}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[msg.ID] = msg
	return msg, nil
}

// DeleteMessage removes a message and reports whether it existed.
func (s *MemoryStore) DeleteMessage(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.messages[id]; !ok {
		return false, nil
	}
	delete(s.messages, id)
	return true, nil
}
