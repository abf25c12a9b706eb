package memo

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
)

// ErrGoexit is published to waiters when the elected computation called runtime.Goexit.
var ErrGoexit = errors.New("memo: computation called runtime.Goexit")

// PanicError carries a panic raised by the elected computation to the callers
// that were waiting on it.
type PanicError struct {
	Value any
	Stack []byte
}

func (p *PanicError) Error() string {
	return fmt.Sprintf("memo: computation panicked: %v\n\n%s", p.Value, p.Stack)
}

// Unwrap exposes the panic value when it is an error.
func (p *PanicError) Unwrap() error {
	err, _ := p.Value.(error)
	return err
}

// Cell is a placeholder for a value computed exactly once.
// It is resolved by a single call to Run; every Wait observes that outcome.
type Cell[O any] struct {
	done  chan struct{}
	value O
	err   error
}

func NewCell[O any]() *Cell[O] {
	return &Cell[O]{done: make(chan struct{})}
}

// Done is closed once the cell is resolved.
func (c *Cell[O]) Done() <-chan struct{} {
	return c.done
}

// Wait blocks until the cell is resolved.
func (c *Cell[O]) Wait() (O, error) {
	<-c.done
	return c.value, c.err
}

// WaitContext is Wait bounded by ctx. Giving up does not affect the computation.
func (c *Cell[O]) WaitContext(ctx context.Context) (O, error) {
	select {
	case <-c.done:
		return c.value, c.err
	case <-ctx.Done():
		var zero O
		return zero, ctx.Err()
	}
}

// Run executes fn and publishes its outcome to the cell.
//
// onFailure runs before publication whenever fn does not succeed
// (error, panic or Goexit), so callers arriving after the failure
// never observe the failed cell. A panic is re-raised after publication.
func (c *Cell[O]) Run(fn func() (O, error), onFailure func()) (value O, err error) {
	returned := false
	defer func() {
		if returned {
			return
		}
		if r := recover(); r != nil {
			c.fail(onFailure, &PanicError{Value: r, Stack: debug.Stack()})
			panic(r)
		}
		c.fail(onFailure, ErrGoexit)
	}()

	value, err = fn()
	returned = true

	if err != nil {
		c.fail(onFailure, err)
		return value, err
	}
	c.resolve(value, nil)
	return value, nil
}

func (c *Cell[O]) fail(onFailure func(), err error) {
	if onFailure != nil {
		onFailure()
	}
	var zero O
	c.resolve(zero, err)
}

func (c *Cell[O]) resolve(value O, err error) {
	c.value = value
	c.err = err
	close(c.done)
}
