package log

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// WithTestLogEffectHandler registers a log handler whose entries are recorded
// in the returned ObservedLogs instead of being written anywhere.
func WithTestLogEffectHandler(
	ctx context.Context,
) (context.Context, func() context.Context, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	ctx, end := WithZapLogEffectHandler(ctx, 16, zap.New(core))
	return ctx, end, logs
}
