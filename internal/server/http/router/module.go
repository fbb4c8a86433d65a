package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/maxbelov/shopgate/internal/config"
	"github.com/maxbelov/shopgate/internal/metrics"
	"github.com/maxbelov/shopgate/internal/server/http/handlers"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Provide(newRouter)

type setupParams struct {
	fx.In

	Facade   handlers.StoreFacade
	Verifier handlers.EventVerifier
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
	Config   *config.Config
}

func newRouter(p setupParams) *gin.Engine {
	return Setup(p.Facade, p.Verifier, p.Metrics, p.Logger, p.Config.OrderListLimit)
}
