// Package memo routes calls to designated operations through an intercept.Registry
// registered as an effect handler.
//
// The handler's workers, partitioned by operation identity, only claim registry
// entries. The computation itself runs in the performing goroutine, so a
// memoized operation may perform memo effects of its own.
package memo

import (
	"context"
	"errors"
	"fmt"

	"github.com/on-the-ground/memo_ive_go/effects"
	"github.com/on-the-ground/memo_ive_go/effects/binding"
	"github.com/on-the-ground/memo_ive_go/effects/configkeys"
	"github.com/on-the-ground/memo_ive_go/effects/log"
	effectmodel "github.com/on-the-ground/memo_ive_go/effects/model"
	"github.com/on-the-ground/memo_ive_go/intercept"
)

var errAbandoned = errors.New("memo effect abandoned before computing")

type payload struct {
	op   intercept.OperationID
	args []any
}

func (p payload) PartitionKey() string {
	return string(p.op)
}

type memoHandler struct {
	registry *intercept.Registry
}

func (h memoHandler) handle(_ context.Context, p payload) (*intercept.Claim, error) {
	return h.registry.Claim(p.op, p.args)
}

// WithEffectHandler registers registry as the memo effect handler.
// The teardown function closes the handler; the registry and its entries
// stay usable by whoever else holds it.
func WithEffectHandler(
	ctx context.Context,
	config effectmodel.EffectScopeConfig,
	registry *intercept.Registry,
) (context.Context, func() context.Context) {
	if registry == nil {
		registry = intercept.NewRegistry()
	}
	return effects.WithResumablePartitionableEffectHandler[payload, *intercept.Claim](
		ctx,
		config,
		effectmodel.EffectMemo,
		memoHandler{registry: registry}.handle,
	)
}

// Effect resolves op for args through the memo handler in ctx.
// compute runs in the calling goroutine when this call is elected to compute.
func Effect(
	ctx context.Context,
	op intercept.OperationID,
	args []any,
	compute intercept.ComputeFunc,
) (any, error) {
	if compute == nil {
		return nil, fmt.Errorf("%w: nil compute for %q", intercept.ErrInvalidArgument, op)
	}
	resultCh, err := effects.PerformResumableEffect[payload, *intercept.Claim](
		ctx,
		effectmodel.EffectMemo,
		payload{op: op, args: args},
	)
	if err != nil {
		return nil, err
	}

	var claim *intercept.Claim
	select {
	case res := <-resultCh:
		if res.Err != nil {
			return nil, res.Err
		}
		claim = res.Value
	case <-ctx.Done():
		go release(resultCh, args)
		return nil, ctx.Err()
	}

	if effects.HasHandler(ctx, effectmodel.EffectLog) {
		// a log entry lost to a closing log handler is not worth failing the call
		_ = log.LogEff(ctx, log.LogDebug, "memo effect claimed", map[string]any{
			"op":          string(op),
			"fingerprint": claim.Fingerprint(),
			"elected":     claim.Elected(),
		})
	}
	return claim.Settle(ctx, args, compute)
}

// release settles a claim its performer stopped waiting for, so that an
// elected entry does not stay unresolved.
func release(resultCh <-chan effects.ResumableResult[*intercept.Claim], args []any) {
	res := <-resultCh
	if res.Err != nil || !res.Value.Elected() {
		return
	}
	_, _ = res.Value.Settle(context.Background(), args, func(context.Context, []any) (any, error) {
		return nil, errAbandoned
	})
}

// ConfigFromBinding reads the memo handler sizing from the binding effect.
// Unbound keys fall back to the defaults of effectmodel.NewEffectScopeConfig.
func ConfigFromBinding(ctx context.Context) (effectmodel.EffectScopeConfig, error) {
	bufferSize, err := binding.GetTypedOr(ctx, configkeys.ConfigEffectMemoHandlerBufferSize, 0)
	if err != nil {
		return effectmodel.EffectScopeConfig{}, fmt.Errorf("%s: %w", configkeys.ConfigEffectMemoHandlerBufferSize, err)
	}
	numWorkers, err := binding.GetTypedOr(ctx, configkeys.ConfigEffectMemoHandlerNumWorkers, 0)
	if err != nil {
		return effectmodel.EffectScopeConfig{}, fmt.Errorf("%s: %w", configkeys.ConfigEffectMemoHandlerNumWorkers, err)
	}
	return effectmodel.NewEffectScopeConfig(bufferSize, numWorkers), nil
}
