package binding

import (
	"context"
	"errors"

	effectmodel "github.com/on-the-ground/memo_ive_go/effects/model"
	sharedHelper "github.com/on-the-ground/memo_ive_go/shared/helper"
)

// GetTyped fetches a typed value from the Binding effect using the provided key.
// Returns a zero value and error if the key is not found or the type is mismatched.
func GetTyped[T any](ctx context.Context, key string) (T, error) {
	return sharedHelper.GetTypedValueOf[T](func() (any, error) {
		return Effect(ctx, key)
	})
}

// MustGetTyped is the panic-on-failure variant of GetTyped.
func MustGetTyped[T any](ctx context.Context, key string) T {
	return sharedHelper.MustGetTypedValue[T](func() (any, error) {
		return Effect(ctx, key)
	})
}

// GetTypedOr is GetTyped with fallback returned when nothing is bound to key,
// either because the key is missing or because no binding handler is registered.
// A value of the wrong type is still an error.
func GetTypedOr[T any](ctx context.Context, key string, fallback T) (T, error) {
	v, err := GetTyped[T](ctx, key)
	if errors.Is(err, ErrKeyNotFound) || errors.Is(err, effectmodel.ErrNoEffectHandler) {
		return fallback, nil
	}
	return v, err
}
