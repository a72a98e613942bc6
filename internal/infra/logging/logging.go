package logging

import (
	"log/slog"
	"os"
)

// Setup points slog's default logger at JSON output on stdout at the
// given level, tagged with the service name.
func Setup(service string, level slog.Level) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler).With("service", service))
}
