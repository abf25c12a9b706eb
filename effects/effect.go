package effects

import (
	"context"

	"github.com/on-the-ground/memo_ive_go/effects/internal/handlers"
	effectmodel "github.com/on-the-ground/memo_ive_go/effects/model"
	sharedHelper "github.com/on-the-ground/memo_ive_go/shared/helper"
	"go.uber.org/zap"
)

// ResumableResult is what a resumable handler hands back to its performer.
type ResumableResult[R any] = handlers.ResumableResult[R]

// WithResumablePartitionableEffectHandler registers a resumable effect handler for a given effect enum.
//
// This handler supports hash-based partitioning via PartitionKey(), and is suitable for effects
// where per-key ordering matters.
//
// Usage:
//
//	ctx, cancel := WithResumablePartitionableEffectHandler(ctx, config, MyEffectEnum, handleFn)
//	defer cancel()
func WithResumablePartitionableEffectHandler[P effectmodel.Partitionable, R any](
	ctx context.Context,
	config effectmodel.EffectScopeConfig,
	enum effectmodel.EffectEnum,
	handleFn func(context.Context, P) (R, error),
	teardown ...func(),
) (context.Context, func() context.Context) {
	config = effectmodel.NewEffectScopeConfig(config.BufferSize, config.NumWorkers)
	handler := handlers.NewPartitionableResumableHandler(ctx, config, handleFn, normalizeTeardown(teardown))
	return register(ctx, enum, "resumable", handler.EffectId.String(), handler, handler.Close)
}

// WithResumableEffectHandler registers a resumable effect handler served by a single worker.
func WithResumableEffectHandler[P any, R any](
	ctx context.Context,
	bufferSize int,
	enum effectmodel.EffectEnum,
	handleFn func(context.Context, P) (R, error),
	teardown ...func(),
) (context.Context, func() context.Context) {
	bufferSize = effectmodel.NewEffectScopeConfig(bufferSize, 1).BufferSize
	handler := handlers.NewResumableHandler(ctx, bufferSize, handleFn, normalizeTeardown(teardown))
	return register(ctx, enum, "resumable", handler.EffectId.String(), handler, handler.Close)
}

// PerformResumableEffect sends a payload to the resumable effect handler.
//
// The result arrives on the returned channel, which yields exactly one value.
// It fails with ErrNoEffectHandler if no handler is registered for enum.
func PerformResumableEffect[P any, R any](
	ctx context.Context,
	enum effectmodel.EffectEnum,
	payload P,
) (<-chan ResumableResult[R], error) {
	handler, err := sharedHelper.GetTypedValueOf[handlers.ResumableHandler[P, R]](
		func() (any, error) {
			return getHandler(ctx, enum)
		},
	)
	if err != nil {
		return nil, err
	}
	return handler.PerformEffect(ctx, payload), nil
}

// WithFireAndForgetEffectHandler registers a fire-and-forget effect handler for a given effect enum.
//
// Suitable for one-shot effects like logging or telemetry.
// This handler executes without returning a result.
func WithFireAndForgetEffectHandler[P any](
	ctx context.Context,
	bufferSize int,
	enum effectmodel.EffectEnum,
	handleFn func(context.Context, P),
	teardown ...func(),
) (context.Context, func() context.Context) {
	bufferSize = effectmodel.NewEffectScopeConfig(bufferSize, 1).BufferSize
	handler := handlers.NewFireAndForgetHandler(ctx, bufferSize, handleFn, normalizeTeardown(teardown))
	return register(ctx, enum, "fire/forget", handler.EffectId.String(), handler, handler.Close)
}

// FireAndForgetEffect queues payload for the handler registered for enum.
// It fails with ErrNoEffectHandler if there is none.
func FireAndForgetEffect[P any](
	ctx context.Context,
	enum effectmodel.EffectEnum,
	payload P,
) error {
	handler, err := sharedHelper.GetTypedValueOf[handlers.FireAndForgetHandler[P]](
		func() (any, error) {
			return getHandler(ctx, enum)
		},
	)
	if err != nil {
		return err
	}
	return handler.FireAndForgetEffect(ctx, payload)
}

func register(
	ctx context.Context,
	enum effectmodel.EffectEnum,
	kind string,
	effectId string,
	handler any,
	closeFn func(),
) (context.Context, func() context.Context) {
	logger := zap.L().Sugar()
	ctxWith := context.WithValue(ctx, enum, handler)
	logger.Debugf("created %s effect handler: effectId: %v, enum: %v", kind, effectId, enum)

	return ctxWith, func() context.Context {
		closeFn()
		logger.Debugf("closed %s effect handler: effectId: %v, enum: %v", kind, effectId, enum)
		return ctx
	}
}

// normalizeTeardown flattens optional teardown functions into a single callable.
//
// Accepts either 0 or 1 teardown functions. Panics if more than one is passed.
func normalizeTeardown(teardown []func()) func() {
	switch len(teardown) {
	case 1:
		return teardown[0]
	case 0:
		return func() {}
	default:
		panic("normalizeTeardown: only one or zero teardown functions allowed")
	}
}
