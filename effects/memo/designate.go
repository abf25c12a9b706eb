package memo

import (
	"context"
	"fmt"

	"github.com/on-the-ground/memo_ive_go/intercept"
)

// Designate0 to Designate2 wrap fn so that each call is a memo effect under op.
// An empty op falls back to intercept.OperationOf(fn).
func Designate0[O any](op intercept.OperationID, fn func(context.Context) (O, error)) (func(context.Context) (O, error), error) {
	if fn == nil {
		return nil, nilFunction(op)
	}
	op = operationOf(op, fn)
	return func(ctx context.Context) (O, error) {
		return intercept.ResultAs[O](Effect(ctx, op, []any{}, func(ctx context.Context, _ []any) (any, error) {
			return fn(ctx)
		}))
	}, nil
}

func Designate1[I1, O any](op intercept.OperationID, fn func(context.Context, I1) (O, error)) (func(context.Context, I1) (O, error), error) {
	if fn == nil {
		return nil, nilFunction(op)
	}
	op = operationOf(op, fn)
	return func(ctx context.Context, i1 I1) (O, error) {
		return intercept.ResultAs[O](Effect(ctx, op, []any{i1}, func(ctx context.Context, _ []any) (any, error) {
			return fn(ctx, i1)
		}))
	}, nil
}

func Designate2[I1, I2, O any](op intercept.OperationID, fn func(context.Context, I1, I2) (O, error)) (func(context.Context, I1, I2) (O, error), error) {
	if fn == nil {
		return nil, nilFunction(op)
	}
	op = operationOf(op, fn)
	return func(ctx context.Context, i1 I1, i2 I2) (O, error) {
		return intercept.ResultAs[O](Effect(ctx, op, []any{i1, i2}, func(ctx context.Context, _ []any) (any, error) {
			return fn(ctx, i1, i2)
		}))
	}, nil
}

func operationOf(op intercept.OperationID, fn any) intercept.OperationID {
	if op != "" {
		return op
	}
	return intercept.OperationOf(fn)
}

func nilFunction(op intercept.OperationID) error {
	return fmt.Errorf("%w: nil function for %q", intercept.ErrInvalidArgument, op)
}
