package images

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gallery-backend/internal/pagination"
	"gallery-backend/internal/shared/metrics"
	"gallery-backend/internal/shared/server/middleware"
	"gallery-backend/internal/shared/server/respond"
	"gallery-backend/internal/shared/telemetry"
	"gallery-backend/internal/upload"
	"gallery-backend/internal/validation"
)

const (
	formField = "image"

	// maxRequestBytes leaves room for multipart framing around a maximum-size image.
	maxRequestBytes = upload.MaxBytes + 1<<20
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches image routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/images", h.list)
	rg.POST("/images", h.upload)
	rg.DELETE("/images/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	params, err := pagination.Parse(c.Query("page"), c.Query("limit"))
	if err != nil {
		h.fail(c, err, "Failed to fetch images")
		return
	}

	page, err := h.Svc.List(c.Request.Context(), params)
	if err != nil {
		h.fail(c, err, "Failed to fetch images")
		return
	}
	respond.OK(c, page)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBytes)

	fileHeader, err := c.FormFile(formField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.fail(c, &upload.RejectedError{Reason: "request body too large"}, "Failed to upload image")
			return
		}
		h.fail(c, validation.Field(formField, "required", "No image file provided"), "Failed to upload image")
		return
	}

	file, err := upload.Open(fileHeader)
	if err != nil {
		h.fail(c, err, "Failed to upload image")
		return
	}
	telemetry.Info("image.upload.received", map[string]any{
		"request_id":   middleware.RequestIDFromContext(c),
		"filename":     file.Filename,
		"content_type": file.ContentType,
		"size_bytes":   len(file.Data),
	})

	img, err := h.Svc.Upload(c.Request.Context(), file)
	if err != nil {
		h.fail(c, err, "Failed to upload image")
		return
	}

	c.Set("imageId", img.ID)
	respond.Created(c, img)
}

func (h *Handler) delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.fail(c, validation.Field("id", "numeric", "Invalid image ID"), "Failed to delete image")
		return
	}
	c.Set("imageId", id)

	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Failed to delete image")
		return
	}
	respond.Message(c, "Image deleted successfully")
}

// fail maps service errors to responses. Storage failures are reported generically and their
// cause is logged.
func (h *Handler) fail(c *gin.Context, err error, internalMessage string) {
	var verr *validation.Error
	var rejected *upload.RejectedError
	switch {
	case errors.As(err, &verr):
		metrics.IncValidationError()
		respond.Error(c, http.StatusBadRequest, "validation_error", verr.Error(), verr.Fields)
	case errors.As(err, &rejected):
		metrics.IncImageRejected()
		respond.Error(c, http.StatusBadRequest, "upload_rejected", rejected.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Image not found", nil)
	default:
		metrics.IncStorageFailure()
		telemetry.Error("image.operation_failed", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"path":       c.Request.URL.Path,
			"error":      err,
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", internalMessage, nil)
	}
}
