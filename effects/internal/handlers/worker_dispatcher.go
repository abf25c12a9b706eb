package handlers

import (
	"context"
	"sync"

	effectmodel "github.com/on-the-ground/memo_ive_go/effects/model"
)

// WorkerDispatcher routes messages to worker goroutines that live until ctx ends.
//
// Send fails with effectmodel.ErrHandlerClosed once ctx is done. Messages that
// were queued but not yet handled at that point are passed to the reject
// function the dispatcher was built with, so no sender is left without an answer.
type WorkerDispatcher[T any] interface {
	Send(ctx context.Context, msg T) error
	Done() <-chan struct{}
}

// queues is the state shared by the single and partitioned dispatchers.
// Senders hold mu for reading while they send; shutdown takes it for writing
// before draining, so nothing lands in a channel after the drain.
type queues[T any] struct {
	ctx    context.Context
	chs    []chan T
	route  func(T) int
	mu     sync.RWMutex
	closed bool
}

func (q *queues[T]) Send(ctx context.Context, msg T) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed || q.ctx.Err() != nil {
		return effectmodel.ErrHandlerClosed
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-q.ctx.Done():
		return effectmodel.ErrHandlerClosed
	case q.chs[q.route(msg)] <- msg:
		return nil
	}
}

func (q *queues[T]) Done() <-chan struct{} {
	return q.ctx.Done()
}

func (q *queues[T]) shutdown(reject func(T)) {
	<-q.ctx.Done()

	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	for _, ch := range q.chs {
		drain(ch, reject)
	}
}

func drain[T any](ch <-chan T, reject func(T)) {
	for {
		select {
		case msg := <-ch:
			reject(msg)
		default:
			return
		}
	}
}

func newQueues[T any](
	ctx context.Context,
	numWorkers, bufferSize int,
	route func(T) int,
	handleFn func(context.Context, T),
	reject func(T),
) *queues[T] {
	if reject == nil {
		reject = func(T) {}
	}
	q := &queues[T]{ctx: ctx, chs: make([]chan T, numWorkers), route: route}

	ready := sync.WaitGroup{}
	for i := range q.chs {
		ready.Add(1)
		ch := make(chan T, bufferSize)
		go func(ch chan T) {
			ready.Done()
			work(ctx, ch, handleFn, reject)
		}(ch)
		q.chs[i] = ch
	}
	ready.Wait()

	go q.shutdown(reject)
	return q
}

// NewSingleQueue serves every message with one worker, in arrival order.
func NewSingleQueue[T any](
	ctx context.Context,
	bufferSize int,
	handleFn func(context.Context, T),
	reject func(T),
) WorkerDispatcher[T] {
	return newQueues(ctx, 1, bufferSize, func(T) int { return 0 }, handleFn, reject)
}

// NewPartitionedQueue serves messages with numWorkers workers; messages with
// equal partition keys go to the same worker.
func NewPartitionedQueue[T effectmodel.Partitionable](
	ctx context.Context,
	numWorkers, bufferSize int,
	handleFn func(context.Context, T),
	reject func(T),
) WorkerDispatcher[T] {
	return newQueues(ctx, numWorkers, bufferSize, func(msg T) int {
		return getIndexByHash(msg, numWorkers)
	}, handleFn, reject)
}

func work[T any](ctx context.Context, ch <-chan T, handleFn func(context.Context, T), reject func(T)) {
	for {
		select {
		case msg := <-ch:
			if ctx.Err() != nil {
				reject(msg)
				return
			}
			handleFn(ctx, msg)
		case <-ctx.Done():
			return
		}
	}
}
