package pure_test

import (
	"testing"
	"time"

	"github.com/on-the-ground/memo_ive_go/pure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoizeWithExpirationI1O1(t *testing.T) {
	count := 0
	fn, err := pure.MemoizeWithExpirationI1O1(func(i int) int {
		count++
		return i * i
	}, 50*time.Millisecond)
	require.NoError(t, err)

	assert.Equal(t, 25, fn(5))
	assert.Equal(t, 25, fn(5))
	assert.Equal(t, 1, count)

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 25, fn(5))
	assert.Equal(t, 2, count)
}

func TestMemoizeWithExpirationI1O1_NonPositiveTTL(t *testing.T) {
	count := 0
	fn, err := pure.MemoizeWithExpirationI1O1(func(i int) int {
		count++
		return i
	}, 0)
	require.NoError(t, err)

	fn(1)
	fn(1)
	fn(1)
	assert.Equal(t, 3, count)
}

func TestMemoizeWithExpirationI1O1E_ErrorNotStored(t *testing.T) {
	count := 0
	fn, err := pure.MemoizeWithExpirationI1O1E(func(s string) (int, error) {
		count++
		if count == 1 {
			return 0, assert.AnError
		}
		return len(s), nil
	}, time.Hour)
	require.NoError(t, err)

	_, err = fn("abc")
	assert.ErrorIs(t, err, assert.AnError)
	v, err := fn("abc")
	require.NoError(t, err)
	assert.Equal(t, 3, v)
	_, _ = fn("abc")
	assert.Equal(t, 2, count)
}
