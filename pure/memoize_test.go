package pure_test

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/on-the-ground/memo_ive_go/internal/memo"
	"github.com/on-the-ground/memo_ive_go/pure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestMemoizeI0O1_IsLazy(t *testing.T) {
	count := 0
	fn, err := pure.MemoizeI0O1(func() int {
		count++
		return 42
	})
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	assert.Equal(t, 42, fn())
	assert.Equal(t, 42, fn())
	assert.Equal(t, 1, count)
}

func TestMemoizeI1O1(t *testing.T) {
	count := 0
	fn, err := pure.MemoizeI1O1(func(i int) int {
		count++
		return i * 2
	})
	require.NoError(t, err)

	assert.Equal(t, 4, fn(2))
	assert.Equal(t, 4, fn(2)) // cached
	assert.Equal(t, 1, count)
	assert.Equal(t, 6, fn(3))
	assert.Equal(t, 2, count)
}

func TestMemoizeI2O1(t *testing.T) {
	count := 0
	fn, err := pure.MemoizeI2O1(func(a, b int) int {
		count++
		return a + b
	})
	require.NoError(t, err)

	assert.Equal(t, 5, fn(2, 3))
	assert.Equal(t, 5, fn(2, 3))
	assert.Equal(t, 1, count)
	assert.Equal(t, 5, fn(3, 2)) // order matters
	assert.Equal(t, 2, count)
}

func TestMemoizeI3O1(t *testing.T) {
	count := 0
	fn, err := pure.MemoizeI3O1(func(a, b, c int) int {
		count++
		return a * b * c
	})
	require.NoError(t, err)

	assert.Equal(t, 24, fn(2, 3, 4))
	assert.Equal(t, 24, fn(2, 3, 4))
	assert.Equal(t, 1, count)
}

func TestMemoizeI4O1(t *testing.T) {
	count := 0
	fn, err := pure.MemoizeI4O1(func(a string, b int, c bool, d float64) string {
		count++
		return fmt.Sprintf("%s-%d-%t-%.1f", a, b, c, d)
	})
	require.NoError(t, err)

	assert.Equal(t, "x-1-true-2.5", fn("x", 1, true, 2.5))
	assert.Equal(t, "x-1-true-2.5", fn("x", 1, true, 2.5))
	assert.Equal(t, 1, count)
}

func TestMemoizeI5O1(t *testing.T) {
	count := 0
	fn, err := pure.MemoizeI5O1(func(a, b, c, d, e int) int {
		count++
		return a + b + c + d + e
	})
	require.NoError(t, err)

	assert.Equal(t, 15, fn(1, 2, 3, 4, 5))
	assert.Equal(t, 15, fn(1, 2, 3, 4, 5))
	assert.Equal(t, 1, count)
}

func TestMemoizeI6O1(t *testing.T) {
	count := 0
	fn, err := pure.MemoizeI6O1(func(a, b, c, d, e, f int) int {
		count++
		return a + b + c + d + e + f
	})
	require.NoError(t, err)

	assert.Equal(t, 21, fn(1, 2, 3, 4, 5, 6))
	assert.Equal(t, 21, fn(1, 2, 3, 4, 5, 6))
	assert.Equal(t, 22, fn(1, 2, 3, 4, 5, 7))
	assert.Equal(t, 2, count)
}

func TestMemoize_ExactlyOnceUnderConcurrency(t *testing.T) {
	slow := func(count *atomic.Int32, values ...int) []int {
		count.Add(1)
		time.Sleep(20 * time.Millisecond)
		return values
	}

	tests := []struct {
		name string
		wrap func(count *atomic.Int32) (func() []int, error)
	}{
		{
			name: "arity 0",
			wrap: func(count *atomic.Int32) (func() []int, error) {
				return pure.MemoizeI0O1(func() []int { return slow(count) })
			},
		},
		{
			name: "arity 1",
			wrap: func(count *atomic.Int32) (func() []int, error) {
				fn, err := pure.MemoizeI1O1(func(a int) []int { return slow(count, a) })
				return func() []int { return fn(1) }, err
			},
		},
		{
			name: "arity 3",
			wrap: func(count *atomic.Int32) (func() []int, error) {
				fn, err := pure.MemoizeI3O1(func(a, b, c int) []int { return slow(count, a, b, c) })
				return func() []int { return fn(1, 2, 3) }, err
			},
		},
		{
			name: "arity 6",
			wrap: func(count *atomic.Int32) (func() []int, error) {
				fn, err := pure.MemoizeI6O1(func(a, b, c, d, e, f int) []int { return slow(count, a, b, c, d, e, f) })
				return func() []int { return fn(1, 2, 3, 4, 5, 6) }, err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var count atomic.Int32
			call, err := tt.wrap(&count)
			require.NoError(t, err)

			const callers = 100
			results := make([][]int, callers)
			var g errgroup.Group
			for i := range callers {
				g.Go(func() error {
					results[i] = call()
					return nil
				})
			}
			require.NoError(t, g.Wait())

			assert.Equal(t, int32(1), count.Load())
			for _, r := range results[1:] {
				// the same slice header, not an equal copy
				assert.Equal(t, len(results[0]), len(r))
				if len(r) > 0 {
					assert.Same(t, &results[0][0], &r[0])
				}
			}
		})
	}
}

func TestMemoizeI1O1With_FoldCase(t *testing.T) {
	count := 0
	upper := func(s string) string {
		count++
		return strings.ToUpper(s)
	}

	fn, err := pure.MemoizeI1O1With(upper, pure.FoldCase())
	require.NoError(t, err)
	assert.Equal(t, "TEST", fn("test"))
	assert.Equal(t, "TEST", fn("TEST"))
	assert.Equal(t, 1, count)

	count = 0
	plain, err := pure.MemoizeI1O1(upper)
	require.NoError(t, err)
	plain("test")
	plain("TEST")
	assert.Equal(t, 2, count)
}

func TestMemoizeI1O1With_ComparerFunc(t *testing.T) {
	type point struct{ x, y []int }
	cmp := pure.ComparerFunc(
		func(a, b point) bool { return len(a.x) == len(b.x) && len(a.y) == len(b.y) },
		func(p point) uint64 { return uint64(len(p.x)*31 + len(p.y)) },
	)
	count := 0
	fn, err := pure.MemoizeI1O1With(func(p point) int {
		count++
		return len(p.x) + len(p.y)
	}, cmp)
	require.NoError(t, err)

	assert.Equal(t, 3, fn(point{x: []int{1}, y: []int{2, 3}}))
	assert.Equal(t, 3, fn(point{x: []int{9}, y: []int{8, 7}}))
	assert.Equal(t, 1, count)

	assert.Nil(t, pure.ComparerFunc[int](nil, nil))
}

func TestMemoize_InvalidArguments(t *testing.T) {
	_, err := pure.MemoizeI0O1[int](nil)
	assert.ErrorIs(t, err, pure.ErrInvalidArgument)
	_, err = pure.MemoizeI1O1[int, int](nil)
	assert.ErrorIs(t, err, pure.ErrInvalidArgument)
	_, err = pure.MemoizeI6O1[int, int, int, int, int, int, int](nil)
	assert.ErrorIs(t, err, pure.ErrInvalidArgument)
	_, err = pure.MemoizeI2O1E[int, int, int](nil)
	assert.ErrorIs(t, err, pure.ErrInvalidArgument)
	_, err = pure.MemoizeI1O1With(func(s string) int { return 0 }, nil)
	assert.ErrorIs(t, err, pure.ErrInvalidArgument)
	_, err = pure.MemoizeI1O1EWith[string, int](nil, pure.FoldCase())
	assert.ErrorIs(t, err, pure.ErrInvalidArgument)
	_, err = pure.MemoizeWithExpirationI1O1[int, int](nil, time.Second)
	assert.ErrorIs(t, err, pure.ErrInvalidArgument)
}

func TestMemoizeE_FailureIsRetried(t *testing.T) {
	boom := errors.New("boom")
	count := 0
	fn, err := pure.MemoizeI2O1E(func(a, b int) (int, error) {
		count++
		if count == 1 {
			return 0, boom
		}
		return a * b, nil
	})
	require.NoError(t, err)

	_, err = fn(3, 4)
	assert.ErrorIs(t, err, boom)
	v, err := fn(3, 4)
	require.NoError(t, err)
	assert.Equal(t, 12, v)
	v, err = fn(3, 4)
	require.NoError(t, err)
	assert.Equal(t, 12, v)
	assert.Equal(t, 2, count)
}

func TestMemoizeE_WaitersShareTheFailure(t *testing.T) {
	boom := errors.New("boom")
	started := make(chan struct{})
	release := make(chan struct{})
	var count atomic.Int32
	fn, err := pure.MemoizeI0O1E(func() (int, error) {
		if count.Add(1) == 1 {
			close(started)
			<-release
			return 0, boom
		}
		return 7, nil
	})
	require.NoError(t, err)

	var first error
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, first = fn()
	}()
	<-started
	close(release)
	<-done
	assert.ErrorIs(t, first, boom)

	v, err := fn()
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, int32(2), count.Load())
}

func TestMemoize_PanicIsNotCached(t *testing.T) {
	count := 0
	fn, err := pure.MemoizeI1O1(func(i int) int {
		count++
		if count == 1 {
			panic("first call panics")
		}
		return i
	})
	require.NoError(t, err)

	assert.PanicsWithValue(t, "first call panics", func() { fn(1) })
	assert.Equal(t, 1, fn(1))
	assert.Equal(t, 2, count)
}

func TestMemoizeE_WaiterReceivesPanicError(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var count atomic.Int32
	fn, err := pure.MemoizeI1O1E(func(i int) (int, error) {
		if count.Add(1) > 1 {
			return i, nil
		}
		close(started)
		<-release
		panic("kaboom")
	})
	require.NoError(t, err)

	go func() {
		defer func() { _ = recover() }()
		_, _ = fn(1)
	}()
	<-started

	waiter := make(chan error, 1)
	go func() {
		_, err := fn(1)
		waiter <- err
	}()
	// let the waiter block on the in-flight computation
	time.Sleep(20 * time.Millisecond)
	close(release)

	var pe *memo.PanicError
	require.ErrorAs(t, <-waiter, &pe)
	assert.Equal(t, "kaboom", pe.Value)
}
