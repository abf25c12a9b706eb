package handlers

import (
	"context"

	"github.com/google/uuid"

	effectmodel "github.com/on-the-ground/memo_ive_go/effects/model"
)

func NewResumableHandler[P any, R any](
	ctx context.Context,
	bufferSize int,
	handleFn func(context.Context, P) (R, error),
	teardown func(),
) ResumableHandler[P, R] {
	ctx, cancelFn := context.WithCancel(ctx)
	effectId := uuid.New()
	return ResumableHandler[P, R]{
		effectScope: newEffectScope(
			effectId,
			NewSingleQueue(ctx, bufferSize, resume(handleFn), reject[P, R](effectId)),
			cancelFn,
			teardown,
		),
	}
}

func NewPartitionableResumableHandler[P effectmodel.Partitionable, R any](
	ctx context.Context,
	config effectmodel.EffectScopeConfig,
	handleFn func(context.Context, P) (R, error),
	teardown func(),
) ResumableHandler[P, R] {
	ctx, cancelFn := context.WithCancel(ctx)
	effectId := uuid.New()
	return ResumableHandler[P, R]{
		effectScope: newEffectScope(
			effectId,
			NewPartitionedQueue(ctx, config.NumWorkers, config.BufferSize, resume(handleFn), reject[P, R](effectId)),
			cancelFn,
			teardown,
		),
	}
}

// resume runs handleFn and hands its result back to the performer.
func resume[P any, R any](handleFn func(context.Context, P) (R, error)) func(context.Context, ResumableEffectMessage[P, R]) {
	return func(ctx context.Context, msg ResumableEffectMessage[P, R]) {
		msg.resolve(handleFn(ctx, msg.Payload))
	}
}

// reject answers a message the scope closed on before handling it.
func reject[P any, R any](effectId uuid.UUID) func(ResumableEffectMessage[P, R]) {
	return func(msg ResumableEffectMessage[P, R]) {
		var zero R
		msg.resolve(zero, errHandlerClosed(effectId))
	}
}

type ResumableHandler[P any, R any] struct {
	*effectScope[ResumableEffectMessage[P, R]]
}

// PerformEffect queues payload and returns the channel its single result arrives on.
// When payload cannot be queued the channel carries the reason instead.
func (rh ResumableHandler[P, R]) PerformEffect(ctx context.Context, payload P) <-chan ResumableResult[R] {
	resumeCh := make(chan ResumableResult[R], 1)

	msg := ResumableEffectMessage[P, R]{
		Payload:  payload,
		ResumeCh: resumeCh,
	}
	if err := rh.send(ctx, msg); err != nil {
		var zero R
		msg.resolve(zero, err)
	}

	return resumeCh
}

// ResumableResult represents the result of handled effects.
type ResumableResult[T any] struct {
	Value T
	Err   error
}

func ResumableResultFrom[R any](res R, err error) ResumableResult[R] {
	return ResumableResult[R]{Value: res, Err: err}
}

var _ effectmodel.Partitionable = ResumableEffectMessage[any, any]{}

type ResumableEffectMessage[P any, R any] struct {
	Payload  P
	ResumeCh chan ResumableResult[R]
}

// resolve delivers the single result. ResumeCh is buffered, so this never blocks.
func (rem ResumableEffectMessage[P, R]) resolve(value R, err error) {
	rem.ResumeCh <- ResumableResultFrom(value, err)
	close(rem.ResumeCh)
}

func (rem ResumableEffectMessage[P, R]) PartitionKey() string {
	if p, ok := any(rem.Payload).(effectmodel.Partitionable); ok {
		return p.PartitionKey()
	}
	return ""
}
