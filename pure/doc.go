// Package pure memoizes pure functions by their input values.
//
// Every wrapper in this package computes a result at most once per distinct
// input, even when many goroutines ask for the same input at the same time:
// the first caller computes while the others wait for its result.
// A computation that fails (returns an error or panics) is not remembered,
// so the next call with the same input computes again.
//
// The families are:
//   - MemoizeI0O1 to MemoizeI6O1: memoizers for functions of zero to six inputs.
//   - MemoizeI0O1E to MemoizeI6O1E: the same for functions that may fail.
//   - MemoizeI1O1With: a single-input memoizer with a caller-defined Comparer.
//   - MemoizeWithExpirationI1O1: entries that are recomputed once they are older than a TTL.
//   - Compose: chains two functions without caching.
//
// Cached entries live as long as the returned function is reachable.
// There is no size bound and no eviction other than expiration.
//
// WARNING: Do not memoize impure functions (e.g., those depending on time, I/O, etc).
package pure
