package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/fx"
)

// run drives the fx application lifecycle: start, wait for either a signal
// or an internal shutdown, then stop with a fresh context so teardown is not
// cut short by the cancelled one.
func run(ctx context.Context, app *fx.App) {
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "shopgate: start failed: %v\n", err)
		os.Exit(1)
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	if err := app.Stop(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "shopgate: stop failed: %v\n", err)
		os.Exit(1)
	}
}
