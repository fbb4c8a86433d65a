package metrics

import "go.uber.org/fx"

// Module provides delivery metrics to the fx graph.
var Module = fx.Provide(New)
