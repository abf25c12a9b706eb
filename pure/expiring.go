package pure

import (
	"time"

	"github.com/on-the-ground/memo_ive_go/internal/memo"
)

// MemoizeWithExpirationI1O1 caches fn per input for ttl after each computation completes.
// Once an entry is older than ttl the next call recomputes and replaces it.
// A ttl <= 0 disables caching: every call runs fn.
func MemoizeWithExpirationI1O1[I1 comparable, O any](fn func(I1) O, ttl time.Duration) (func(I1) O, error) {
	if fn == nil {
		return nil, nilArgument("fn")
	}
	table := memo.NewExpiringTable[I1, O](ttl, nil)
	return func(i1 I1) O {
		return must(table.Do(i1, func() (O, error) {
			return fn(i1), nil
		}))
	}, nil
}

func MemoizeWithExpirationI1O1E[I1 comparable, O any](fn func(I1) (O, error), ttl time.Duration) (func(I1) (O, error), error) {
	if fn == nil {
		return nil, nilArgument("fn")
	}
	table := memo.NewExpiringTable[I1, O](ttl, nil)
	return func(i1 I1) (O, error) {
		return table.Do(i1, func() (O, error) {
			return fn(i1)
		})
	}, nil
}
