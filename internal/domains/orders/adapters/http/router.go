package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// RouterConfig carries the transport wiring knobs.
type RouterConfig struct {
	// ServiceName labels spans emitted by the HTTP instrumentation.
	ServiceName string
	// ReceiptDir is served publicly under /pdf.
	ReceiptDir string
	// Probe checks the persistence store for the health endpoint; nil
	// skips the check.
	Probe func(ctx context.Context) error
}

// NewRouter wires the HTTP routes exposed by the webhook process.
func NewRouter(api *WebhookAPI, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		router.Use(otelgin.Middleware(cfg.ServiceName))
	}

	router.POST("/", api.HandleWebhook)
	router.GET("/commandes", api.ListOrders)
	if cfg.ReceiptDir != "" {
		router.Static("/pdf", cfg.ReceiptDir)
	}
	router.GET("/healthz", healthHandler(cfg.Probe))

	return router
}

func healthHandler(probe func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if probe != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := probe(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
