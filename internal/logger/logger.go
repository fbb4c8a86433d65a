package logger

import (
	"log/slog"
	"os"
)

// New creates the shared slog.Logger. Output is JSON so webhook delivery
// logs can be correlated on event_id and payment_reference fields.
func New() *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler).With(slog.String("service", "shopgate"))
}
