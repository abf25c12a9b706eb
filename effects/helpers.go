package effects

import (
	"context"
	"fmt"

	effectmodel "github.com/on-the-ground/memo_ive_go/effects/model"
)

// HasHandler reports whether a handler for enum is registered in ctx.
func HasHandler(ctx context.Context, enum effectmodel.EffectEnum) bool {
	return ctx.Value(enum) != nil
}

// getHandler checks whether a handler for the given EffectEnum is registered in the context.
// Returns an error if not found.
func getHandler(ctx context.Context, enum effectmodel.EffectEnum) (any, error) {
	raw := ctx.Value(enum)
	if raw == nil {
		return nil, fmt.Errorf("%w: %v", effectmodel.ErrNoEffectHandler, enum)
	}
	return raw, nil
}
