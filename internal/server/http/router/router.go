package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/maxbelov/shopgate/internal/metrics"
	"github.com/maxbelov/shopgate/internal/server/http/handlers"
	"github.com/maxbelov/shopgate/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StoreFacade, verifier handlers.EventVerifier, m *metrics.Metrics, logger *slog.Logger, orderListLimit int) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))

	// The webhook route stays outside the compression middleware: the
	// signature is computed over the exact bytes the processor sent.
	webhookHandler := handlers.NewWebhookHandler(facade, verifier, m, logger)
	engine.POST("/api/webhooks/stripe", webhookHandler.Handle)

	checkoutHandler := handlers.NewCheckoutHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade, orderListLimit)

	api := engine.Group("/api")
	api.Use(middleware.DecompressRequest())
	api.Use(gzip.Gzip(gzip.DefaultCompression))
	api.POST("/checkout", checkoutHandler.Checkout)
	api.GET("/products", catalogHandler.List)
	api.POST("/products", catalogHandler.Create)
	api.GET("/orders", orderHandler.List)
	api.GET("/orders/:id", orderHandler.Get)
	api.PATCH("/orders/:id/status", orderHandler.UpdateStatus)

	healthHandler := handlers.NewHealthHandler(facade)
	engine.GET("/healthz", healthHandler.Ping)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return engine
}
