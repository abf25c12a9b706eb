package pure

import "github.com/on-the-ground/memo_ive_go/internal/memo"

func memoize[K comparable, O any](fn func(K) (O, error)) func(K) (O, error) {
	table := memo.NewTable[K, O]()
	return func(k K) (O, error) {
		return table.Do(k, func() (O, error) {
			return fn(k)
		})
	}
}

// MemoizeI0O1 defers fn until the first call and returns its result on every call after that.
func MemoizeI0O1[O any](fn func() O) (func() O, error) {
	if fn == nil {
		return nil, nilArgument("fn")
	}
	memoized := memoize(func(struct{}) (O, error) {
		return fn(), nil
	})
	return func() O {
		return must(memoized(struct{}{}))
	}, nil
}

// MemoizeI1O1 caches fn per input value compared with ==.
func MemoizeI1O1[I1 comparable, O any](fn func(I1) O) (func(I1) O, error) {
	if fn == nil {
		return nil, nilArgument("fn")
	}
	memoized := memoize(func(i1 I1) (O, error) {
		return fn(i1), nil
	})
	return func(i1 I1) O {
		return must(memoized(i1))
	}, nil
}

// MemoizeI1O1With caches fn per input, treating inputs that cmp reports equal as one.
func MemoizeI1O1With[I1 any, O any](fn func(I1) O, cmp Comparer[I1]) (func(I1) O, error) {
	if fn == nil {
		return nil, nilArgument("fn")
	}
	if cmp == nil {
		return nil, nilArgument("comparer")
	}
	table := memo.NewHashedTable[I1, O](cmp)
	return func(i1 I1) O {
		return must(table.Do(i1, func() (O, error) {
			return fn(i1), nil
		}))
	}, nil
}

func MemoizeI2O1[I1, I2 comparable, O any](fn func(I1, I2) O) (func(I1, I2) O, error) {
	if fn == nil {
		return nil, nilArgument("fn")
	}
	memoized := memoize(func(k key2[I1, I2]) (O, error) {
		return fn(k.i1, k.i2), nil
	})
	return func(i1 I1, i2 I2) O {
		return must(memoized(key2[I1, I2]{i1, i2}))
	}, nil
}

func MemoizeI3O1[I1, I2, I3 comparable, O any](fn func(I1, I2, I3) O) (func(I1, I2, I3) O, error) {
	if fn == nil {
		return nil, nilArgument("fn")
	}
	memoized := memoize(func(k key3[I1, I2, I3]) (O, error) {
		return fn(k.i1, k.i2, k.i3), nil
	})
	return func(i1 I1, i2 I2, i3 I3) O {
		return must(memoized(key3[I1, I2, I3]{i1, i2, i3}))
	}, nil
}

func MemoizeI4O1[I1, I2, I3, I4 comparable, O any](fn func(I1, I2, I3, I4) O) (func(I1, I2, I3, I4) O, error) {
	if fn == nil {
		return nil, nilArgument("fn")
	}
	memoized := memoize(func(k key4[I1, I2, I3, I4]) (O, error) {
		return fn(k.i1, k.i2, k.i3, k.i4), nil
	})
	return func(i1 I1, i2 I2, i3 I3, i4 I4) O {
		return must(memoized(key4[I1, I2, I3, I4]{i1, i2, i3, i4}))
	}, nil
}

func MemoizeI5O1[I1, I2, I3, I4, I5 comparable, O any](fn func(I1, I2, I3, I4, I5) O) (func(I1, I2, I3, I4, I5) O, error) {
	if fn == nil {
		return nil, nilArgument("fn")
	}
	memoized := memoize(func(k key5[I1, I2, I3, I4, I5]) (O, error) {
		return fn(k.i1, k.i2, k.i3, k.i4, k.i5), nil
	})
	return func(i1 I1, i2 I2, i3 I3, i4 I4, i5 I5) O {
		return must(memoized(key5[I1, I2, I3, I4, I5]{i1, i2, i3, i4, i5}))
	}, nil
}

func MemoizeI6O1[I1, I2, I3, I4, I5, I6 comparable, O any](fn func(I1, I2, I3, I4, I5, I6) O) (func(I1, I2, I3, I4, I5, I6) O, error) {
	if fn == nil {
		return nil, nilArgument("fn")
	}
	memoized := memoize(func(k key6[I1, I2, I3, I4, I5, I6]) (O, error) {
		return fn(k.i1, k.i2, k.i3, k.i4, k.i5, k.i6), nil
	})
	return func(i1 I1, i2 I2, i3 I3, i4 I4, i5 I5, i6 I6) O {
		return must(memoized(key6[I1, I2, I3, I4, I5, I6]{i1, i2, i3, i4, i5, i6}))
	}, nil
}
