package images

import (
	"context"
	"strings"

	"gallery-backend/internal/pagination"
	"gallery-backend/internal/shared/metrics"
	"gallery-backend/internal/store"
	"gallery-backend/internal/upload"
	"gallery-backend/internal/validation"
)

// CreateImageRequest is the shape an image must have before it is stored.
type CreateImageRequest struct {
	Filename string `json:"filename" validate:"required,max=255"`
	Data     string `json:"data" validate:"required,base64"`
}

// Page is one listed window of images.
type Page struct {
	Images     []store.Image   `json:"images"`
	Pagination pagination.Meta `json:"pagination"`
}

// Service contains business logic for images.
type Service struct {
	Store store.Store
}

// NewService constructs a Service over st.
func NewService(st store.Store) *Service {
	return &Service{Store: st}
}

// Upload encodes an accepted upload and stores it.
func (s *Service) Upload(ctx context.Context, file upload.File) (store.Image, error) {
	if s == nil || s.Store == nil {
		return store.Image{}, errNotConfigured
	}
	req := CreateImageRequest{
		Filename: strings.TrimSpace(file.Filename),
		Data:     upload.Encode(file.Data),
	}
	if err := validation.Struct(req); err != nil {
		return store.Image{}, err
	}

	img, err := s.Store.AddImage(ctx, req.Filename, req.Data)
	if err != nil {
		return store.Image{}, err
	}
	metrics.IncImageUploaded()
	metrics.ObserveUploadBytes(len(file.Data))
	return img, nil
}

// List returns the requested page together with the collection totals.
func (s *Service) List(ctx context.Context, p pagination.Params) (Page, error) {
	if s == nil || s.Store == nil {
		return Page{}, errNotConfigured
	}
	total, err := s.Store.CountImages(ctx)
	if err != nil {
		return Page{}, err
	}
	items, err := s.Store.ListImages(ctx, p.Page, p.Limit)
	if err != nil {
		return Page{}, err
	}
	return Page{Images: items, Pagination: pagination.NewMeta(p, total)}, nil
}

// Delete removes an image, returning ErrNotFound when the id is unknown.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if s == nil || s.Store == nil {
		return errNotConfigured
	}
	deleted, err := s.Store.DeleteImage(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	metrics.IncImageDeleted()
	return nil
}
