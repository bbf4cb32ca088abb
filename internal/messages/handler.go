package messages

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gallery-backend/internal/shared/metrics"
	"gallery-backend/internal/shared/server/middleware"
	"gallery-backend/internal/shared/server/respond"
	"gallery-backend/internal/shared/telemetry"
	"gallery-backend/internal/validation"
)

const maxBodyBytes = 64 << 10

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches message routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/messages", h.list)
	rg.POST("/messages", h.create)
	rg.DELETE("/messages/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	msgs, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to fetch messages")
		return
	}
	respond.OK(c, msgs)
}

func (h *Handler) create(c *gin.Context) {
	var req CreateMessageRequest
	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	if err := validation.DecodeJSON(body, &req); err != nil {
		h.fail(c, err, "Failed to create message")
		return
	}

	msg, err := h.Svc.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "Failed to create message")
		return
	}
	c.Set("messageId", msg.ID)
	respond.Created(c, msg)
}

func (h *Handler) delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.fail(c, validation.Field("id", "numeric", "Invalid message ID"), "Failed to delete message")
		return
	}
	c.Set("messageId", id)

	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Failed to delete message")
		return
	}
	respond.Message(c, "Message deleted successfully")
}

func (h *Handler) fail(c *gin.Context, err error, internalMessage string) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		metrics.IncValidationError()
		respond.Error(c, http.StatusBadRequest, "validation_error", verr.Error(), verr.Fields)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Message not found", nil)
	default:
		metrics.IncStorageFailure()
		telemetry.Error("message.operation_failed", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"path":       c.Request.URL.Path,
			"error":      err,
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", internalMessage, nil)
	}
}
