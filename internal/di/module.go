package di

import (
	"go.uber.org/fx"

	"github.com/maxbelov/shopgate/internal/adapter/stripepay"
	"github.com/maxbelov/shopgate/internal/app"
	"github.com/maxbelov/shopgate/internal/config"
	"github.com/maxbelov/shopgate/internal/logger"
	"github.com/maxbelov/shopgate/internal/metrics"
	"github.com/maxbelov/shopgate/internal/pkg/signature"
	"github.com/maxbelov/shopgate/internal/server/http/handlers"
	"github.com/maxbelov/shopgate/internal/server/http/router"
	"github.com/maxbelov/shopgate/internal/storage/postgres"
	"github.com/maxbelov/shopgate/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		signature.Module,
		postgres.Module,
		stripepay.Module,
		usecase.Module,
		fx.Provide(
			func(client stripepay.Client) usecase.PaymentGateway { return client },
			func(client stripepay.Client) app.PaymentChecker { return client },
			func(s *postgres.Storage) app.HealthChecker { return s },
			func(f *app.StoreFacade) handlers.StoreFacade { return f },
			func(v *signature.Verifier) handlers.EventVerifier { return v },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
