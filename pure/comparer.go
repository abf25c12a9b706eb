package pure

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Comparer decides which inputs share a cache entry.
// Equal(a, b) must imply Hash(a) == Hash(b).
type Comparer[T any] interface {
	Equal(a, b T) bool
	Hash(v T) uint64
}

type funcComparer[T any] struct {
	equal func(a, b T) bool
	hash  func(v T) uint64
}

func (c funcComparer[T]) Equal(a, b T) bool { return c.equal(a, b) }
func (c funcComparer[T]) Hash(v T) uint64   { return c.hash(v) }

// ComparerFunc adapts a pair of functions to a Comparer.
// It returns nil when either function is nil.
func ComparerFunc[T any](equal func(a, b T) bool, hash func(v T) uint64) Comparer[T] {
	if equal == nil || hash == nil {
		return nil
	}
	return funcComparer[T]{equal: equal, hash: hash}
}

type foldCase struct{}

func (foldCase) Equal(a, b string) bool { return strings.ToLower(a) == strings.ToLower(b) }

func (foldCase) Hash(s string) uint64 { return xxhash.Sum64String(strings.ToLower(s)) }

// FoldCase compares strings case-insensitively.
func FoldCase() Comparer[string] {
	return foldCase{}
}
