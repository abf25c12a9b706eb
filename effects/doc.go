// Package effects is the dispatch layer memo_ive_go routes intercepted calls through.
//
// A handler is registered in a context.Context under an EffectEnum with one of
// the WithXxxEffectHandler functions and is reached from code running under that
// context through PerformResumableEffect or FireAndForgetEffect. Handlers run
// on their own worker goroutines. Partitionable handlers hash PartitionKey()
// so payloads with equal keys are handled by the same worker, in order.
//
// Built-in handlers live in subpackages:
//   - binding: key/value lookup with delegation to upper scopes (configuration)
//   - log: zap-backed structured logging
//   - memo: memoization of designated operations through an intercept.Registry
//
// Every WithXxxEffectHandler returns a teardown function. Call it when the
// scope ends and continue with the context it returns.
//
// Example:
//
//	config, err := memo.ConfigFromBinding(ctx)
//	if err != nil {
//		return err
//	}
//	ctx, end := memo.WithEffectHandler(ctx, config, intercept.NewRegistry())
//	defer end()
//
//	v, err := memo.Effect(ctx, "catalog.lookup", []any{id}, lookup)
package effects
