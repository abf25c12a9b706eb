package intercept

import (
	"context"
	"fmt"
	"reflect"
)

// Decorate0 to Decorate3 wrap fn so every call is resolved through r under op.
// An empty op falls back to OperationOf(fn).
func Decorate0[O any](r *Registry, op OperationID, fn func(context.Context) (O, error)) (func(context.Context) (O, error), error) {
	op, err := checkDecorate(r, op, fn, fn == nil)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context) (O, error) {
		return ResultAs[O](r.Resolve(ctx, op, []any{}, func(ctx context.Context, _ []any) (any, error) {
			return fn(ctx)
		}))
	}, nil
}

func Decorate1[I1, O any](r *Registry, op OperationID, fn func(context.Context, I1) (O, error)) (func(context.Context, I1) (O, error), error) {
	op, err := checkDecorate(r, op, fn, fn == nil)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, i1 I1) (O, error) {
		return ResultAs[O](r.Resolve(ctx, op, []any{i1}, func(ctx context.Context, _ []any) (any, error) {
			return fn(ctx, i1)
		}))
	}, nil
}

func Decorate2[I1, I2, O any](r *Registry, op OperationID, fn func(context.Context, I1, I2) (O, error)) (func(context.Context, I1, I2) (O, error), error) {
	op, err := checkDecorate(r, op, fn, fn == nil)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, i1 I1, i2 I2) (O, error) {
		return ResultAs[O](r.Resolve(ctx, op, []any{i1, i2}, func(ctx context.Context, _ []any) (any, error) {
			return fn(ctx, i1, i2)
		}))
	}, nil
}

func Decorate3[I1, I2, I3, O any](r *Registry, op OperationID, fn func(context.Context, I1, I2, I3) (O, error)) (func(context.Context, I1, I2, I3) (O, error), error) {
	op, err := checkDecorate(r, op, fn, fn == nil)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, i1 I1, i2 I2, i3 I3) (O, error) {
		return ResultAs[O](r.Resolve(ctx, op, []any{i1, i2, i3}, func(ctx context.Context, _ []any) (any, error) {
			return fn(ctx, i1, i2, i3)
		}))
	}, nil
}

func checkDecorate(r *Registry, op OperationID, fn any, fnIsNil bool) (OperationID, error) {
	if r == nil {
		return "", invalidArgument("nil registry")
	}
	if fnIsNil {
		return "", invalidArgument("nil function")
	}
	if op == "" {
		op = OperationOf(fn)
	}
	return op, nil
}

// ResultAs narrows a resolved value back to O. A nil value becomes O's zero value.
func ResultAs[O any](v any, err error) (O, error) {
	var zero O
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	o, ok := v.(O)
	if !ok {
		return zero, fmt.Errorf("%w: got %T, want %v", ErrResultType, v, reflect.TypeFor[O]())
	}
	return o, nil
}
