package memo

import (
	"sync"
	"time"

	"github.com/rickb777/date/v2/timespan"
)

// ExpiringTable caches values for a fixed time-to-live.
//
// A stale entry is replaced, never merged. Concurrent misses on one key share
// a single in-flight computation; once an entry expires the next miss computes
// again, so a key may be computed more than once over the table's lifetime.
type ExpiringTable[K comparable, O any] struct {
	ttl      time.Duration
	now      func() time.Time
	entries  sync.Map // K -> expiringEntry[O]
	inflight sync.Map // K -> *Cell[O]
}

type expiringEntry[O any] struct {
	value O
	valid timespan.TimeSpan
}

func (e expiringEntry[O]) liveAt(t time.Time) bool {
	return t.Before(e.valid.End())
}

// NewExpiringTable creates a table whose entries live for ttl.
// A ttl <= 0 stores nothing. A nil clock means time.Now.
func NewExpiringTable[K comparable, O any](ttl time.Duration, clock func() time.Time) *ExpiringTable[K, O] {
	if clock == nil {
		clock = time.Now
	}
	return &ExpiringTable[K, O]{ttl: ttl, now: clock}
}

// Do returns the live value for key or computes and stores a fresh one.
func (t *ExpiringTable[K, O]) Do(key K, fn func() (O, error)) (O, error) {
	if t.ttl <= 0 {
		return fn()
	}
	if value, ok := t.lookup(key); ok {
		return value, nil
	}

	cell := NewCell[O]()
	actual, loaded := t.inflight.LoadOrStore(key, cell)
	if loaded {
		return actual.(*Cell[O]).Wait()
	}
	defer t.inflight.CompareAndDelete(key, cell)

	// an in-flight computation may have stored between lookup and LoadOrStore
	if value, ok := t.lookup(key); ok {
		cell.resolve(value, nil)
		return value, nil
	}

	return cell.Run(func() (O, error) {
		value, err := fn()
		if err != nil {
			return value, err
		}
		completed := t.now()
		t.entries.Store(key, expiringEntry[O]{
			value: value,
			valid: timespan.BetweenTimes(completed, completed.Add(t.ttl)),
		})
		return value, nil
	}, func() {
		t.inflight.CompareAndDelete(key, cell)
	})
}

func (t *ExpiringTable[K, O]) lookup(key K) (O, bool) {
	v, ok := t.entries.Load(key)
	if !ok {
		var zero O
		return zero, false
	}
	entry := v.(expiringEntry[O])
	if !entry.liveAt(t.now()) {
		var zero O
		return zero, false
	}
	return entry.value, true
}

// Len counts stored entries, live or stale.
func (t *ExpiringTable[K, O]) Len() int {
	n := 0
	t.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
