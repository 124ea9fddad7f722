package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger that discards everything. Suites hand it to the
// hub, sweeper and handlers so expected failure paths don't spam test output.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
