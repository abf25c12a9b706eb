package pure

import "github.com/on-the-ground/memo_ive_go/internal/memo"

// MemoizeI0O1E is MemoizeI0O1 for a computation that may fail.
// A failed attempt is not cached; the next call runs fn again.
func MemoizeI0O1E[O any](fn func() (O, error)) (func() (O, error), error) {
	if fn == nil {
		return nil, nilArgument("fn")
	}
	memoized := memoize(func(struct{}) (O, error) {
		return fn()
	})
	return func() (O, error) {
		return memoized(struct{}{})
	}, nil
}

func MemoizeI1O1E[I1 comparable, O any](fn func(I1) (O, error)) (func(I1) (O, error), error) {
	if fn == nil {
		return nil, nilArgument("fn")
	}
	return memoize(fn), nil
}

func MemoizeI1O1EWith[I1 any, O any](fn func(I1) (O, error), cmp Comparer[I1]) (func(I1) (O, error), error) {
	if fn == nil {
		return nil, nilArgument("fn")
	}
	if cmp == nil {
		return nil, nilArgument("comparer")
	}
	table := memo.NewHashedTable[I1, O](cmp)
	return func(i1 I1) (O, error) {
		return table.Do(i1, func() (O, error) {
			return fn(i1)
		})
	}, nil
}

func MemoizeI2O1E[I1, I2 comparable, O any](fn func(I1, I2) (O, error)) (func(I1, I2) (O, error), error) {
	if fn == nil {
		return nil, nilArgument("fn")
	}
	memoized := memoize(func(k key2[I1, I2]) (O, error) {
		return fn(k.i1, k.i2)
	})
	return func(i1 I1, i2 I2) (O, error) {
		return memoized(key2[I1, I2]{i1, i2})
	}, nil
}

func MemoizeI3O1E[I1, I2, I3 comparable, O any](fn func(I1, I2, I3) (O, error)) (func(I1, I2, I3) (O, error), error) {
	if fn == nil {
		return nil, nilArgument("fn")
	}
	memoized := memoize(func(k key3[I1, I2, I3]) (O, error) {
		return fn(k.i1, k.i2, k.i3)
	})
	return func(i1 I1, i2 I2, i3 I3) (O, error) {
		return memoized(key3[I1, I2, I3]{i1, i2, i3})
	}, nil
}

func MemoizeI4O1E[I1, I2, I3, I4 comparable, O any](fn func(I1, I2, I3, I4) (O, error)) (func(I1, I2, I3, I4) (O, error), error) {
	if fn == nil {
		return nil, nilArgument("fn")
	}
	memoized := memoize(func(k key4[I1, I2, I3, I4]) (O, error) {
		return fn(k.i1, k.i2, k.i3, k.i4)
	})
	return func(i1 I1, i2 I2, i3 I3, i4 I4) (O, error) {
		return memoized(key4[I1, I2, I3, I4]{i1, i2, i3, i4})
	}, nil
}

func MemoizeI5O1E[I1, I2, I3, I4, I5 comparable, O any](fn func(I1, I2, I3, I4, I5) (O, error)) (func(I1, I2, I3, I4, I5) (O, error), error) {
	if fn == nil {
		return nil, nilArgument("fn")
	}
	memoized := memoize(func(k key5[I1, I2, I3, I4, I5]) (O, error) {
		return fn(k.i1, k.i2, k.i3, k.i4, k.i5)
	})
	return func(i1 I1, i2 I2, i3 I3, i4 I4, i5 I5) (O, error) {
		return memoized(key5[I1, I2, I3, I4, I5]{i1, i2, i3, i4, i5})
	}, nil
}

func MemoizeI6O1E[I1, I2, I3, I4, I5, I6 comparable, O any](fn func(I1, I2, I3, I4, I5, I6) (O, error)) (func(I1, I2, I3, I4, I5, I6) (O, error), error) {
	if fn == nil {
		return nil, nilArgument("fn")
	}
	memoized := memoize(func(k key6[I1, I2, I3, I4, I5, I6]) (O, error) {
		return fn(k.i1, k.i2, k.i3, k.i4, k.i5, k.i6)
	})
	return func(i1 I1, i2 I2, i3 I3, i4 I4, i5 I5, i6 I6) (O, error) {
		return memoized(key6[I1, I2, I3, I4, I5, I6]{i1, i2, i3, i4, i5, i6})
	}, nil
}
