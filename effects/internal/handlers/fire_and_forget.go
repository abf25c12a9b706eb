package handlers

import (
	"context"

	"github.com/google/uuid"
)

func NewFireAndForgetHandler[P any](
	ctx context.Context,
	bufferSize int,
	handleFn func(context.Context, P),
	teardown func(),
) FireAndForgetHandler[P] {
	ctx, cancelFn := context.WithCancel(ctx)
	return FireAndForgetHandler[P]{
		effectScope: newEffectScope(
			uuid.New(),
			// nobody waits on a fire-and-forget payload, so dropping it is the answer
			NewSingleQueue(ctx, bufferSize, handleFn, nil),
			cancelFn,
			teardown,
		),
	}
}

type FireAndForgetHandler[P any] struct {
	*effectScope[P]
}

// FireAndForgetEffect queues payload without waiting for it to be handled.
func (ffh FireAndForgetHandler[P]) FireAndForgetEffect(ctx context.Context, payload P) error {
	return ffh.send(ctx, payload)
}
