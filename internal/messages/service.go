package messages

import (
	"context"
	"strings"

	"gallery-backend/internal/shared/metrics"
	"gallery-backend/internal/store"
	"gallery-backend/internal/validation"
)

// CreateMessageRequest is the accepted body of POST /messages.
type CreateMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

// Service contains business logic for messages.
type Service struct {
	Store store.Store
}

// NewService constructs a Service over st.
func NewService(st store.Store) *Service {
	return &Service{Store: st}
}

// List returns every stored message.
func (s *Service) List(ctx context.Context) ([]store.Message, error) {
	if s == nil || s.Store == nil {
		return nil, errNotConfigured
	}
	return s.Store.ListMessages(ctx)
}

// Create validates and stores a message. Surrounding whitespace is not kept.
func (s *Service) Create(ctx context.Context, req CreateMessageRequest) (store.Message, error) {
	if s == nil || s.Store == nil {
		return store.Message{}, errNotConfigured
	}
	req.Text = strings.TrimSpace(req.Text)
	if err := validation.Struct(req); err != nil {
		return store.Message{}, err
	}

	msg, err := s.Store.AddMessage(ctx, req.Text)
	if err != nil {
		return store.Message{}, err
	}
	metrics.IncMessageCreated()
	return msg, nil
}

// Delete removes a message, returning ErrNotFound when the id is unknown.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if s == nil || s.Store == nil {
		return errNotConfigured
	}
	deleted, err := s.Store.DeleteMessage(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	metrics.IncMessageDeleted()
	return nil
}
