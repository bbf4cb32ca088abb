package upload

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxBytes is the largest accepted image payload (5 MiB).
const MaxBytes = 5 << 20

// ErrRejected matches every *RejectedError via errors.Is.
var ErrRejected = errors.New("upload rejected")

// RejectedError reports an upload refused before it reached storage.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	return ErrRejected.Error() + ": " + e.Reason
}

func (e *RejectedError) Is(target error) bool {
	return target == ErrRejected
}

// File is an accepted upload.
type File struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Check enforces the image-family content type and the size ceiling.
func Check(contentType string, size int64) error {
	if !IsImage(contentType) {
		return &RejectedError{Reason: "only images are allowed"}
	}
	if size > MaxBytes {
		return &RejectedError{Reason: fmt.Sprintf("image exceeds %d bytes", MaxBytes)}
	}
	return nil
}

// IsImage reports whether contentType names an image/* media type.
func IsImage(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "image/")
}

// ContentType prefers the client-declared type and falls back to sniffing the bytes when the
// client sent nothing useful.
func ContentType(declared string, data []byte) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && !strings.HasPrefix(strings.ToLower(declared), "application/octet-stream") {
		return declared
	}
	return mimetype.Detect(data).String()
}

// ReadLimited reads r, refusing bodies larger than MaxBytes.
func ReadLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxBytes {
		return nil, &RejectedError{Reason: fmt.Sprintf("image exceeds %d bytes", MaxBytes)}
	}
	return data, nil
}

// Open reads a multipart file and checks it. The declared size is rejected before the body is
// read.
func Open(fh *multipart.FileHeader) (File, error) {
	if fh.Size > MaxBytes {
		return File{}, &RejectedError{Reason: fmt.Sprintf("image exceeds %d bytes", MaxBytes)}
	}
	src, err := fh.Open()
	if err != nil {
		return File{}, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	data, err := ReadLimited(src)
	if err != nil {
		return File{}, err
	}
	contentType := ContentType(fh.Header.Get("Content-Type"), data)
	if err := Check(contentType, int64(len(data))); err != nil {
		return File{}, err
	}
	return File{Filename: fh.Filename, ContentType: contentType, Data: data}, nil
}
