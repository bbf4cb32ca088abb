package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gallery-backend/internal/images"
	"gallery-backend/internal/messages"
	"gallery-backend/internal/shared/config"
	"gallery-backend/internal/shared/metrics"
	"gallery-backend/internal/shared/server/middleware"
	"gallery-backend/internal/shared/server/respond"
)

// RouterDeps holds handlers needed by the router.
type RouterDeps struct {
	Config         config.Config
	ImageHandler   *images.Handler
	MessageHandler *messages.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.MaxMultipartMemory = 8 << 20

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true, "store": deps.Config.StoreBackend})
	})
	if deps.ImageHandler != nil {
		deps.ImageHandler.RegisterRoutes(api)
	}
	if deps.MessageHandler != nil {
		deps.MessageHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":5000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
