package handlers

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	effectmodel "github.com/on-the-ground/memo_ive_go/effects/model"
	"go.uber.org/zap"
)

// effectScope owns the workers of one registered handler.
// Close is idempotent and safe to call from any goroutine.
type effectScope[T any] struct {
	EffectId   uuid.UUID
	dispatcher WorkerDispatcher[T]
	closeOnce  sync.Once
	closeFn    func()
}

func (es *effectScope[T]) Close() {
	es.closeOnce.Do(func() {
		es.closeFn()
		zap.L().Debug("effect scope closed", zap.Stringer("effectId", es.EffectId))
	})
}

// send delivers msg to its worker unless ctx ends or the scope closes first.
func (es *effectScope[T]) send(ctx context.Context, msg T) error {
	err := es.dispatcher.Send(ctx, msg)
	if errors.Is(err, effectmodel.ErrHandlerClosed) {
		return errHandlerClosed(es.EffectId)
	}
	return err
}

func newEffectScope[T any](
	effectId uuid.UUID,
	dispatcher WorkerDispatcher[T],
	cancelFn context.CancelFunc,
	teardown func(),
) *effectScope[T] {
	return &effectScope[T]{
		EffectId:   effectId,
		dispatcher: dispatcher,
		closeFn: func() {
			cancelFn()
			teardown()
		},
	}
}
