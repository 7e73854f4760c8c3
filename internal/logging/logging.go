// Package logging provides context-scoped zerolog loggers for the CLI and
// library packages. Commands attach a configured logger to their context at
// startup; everything downstream retrieves it with FromContext.
package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// WithContext returns a child context carrying the given logger.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// FromContext returns the logger attached to ctx. If no logger was attached,
// the returned logger is disabled, so callers can use it unconditionally.
func FromContext(ctx context.Context) zerolog.Logger {
	return *zerolog.Ctx(ctx)
}
