package stripepay

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/maxbelov/shopgate/internal/config"
)

// Module exposes the payment processor client to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) Client {
	return NewAPIClient(p.Config.StripeAPIKey, p.Logger)
}
