package pure

// Compose returns h with h(x) = second(first(x)). Nothing is cached by Compose
// itself; either side may be a memoized function.
func Compose[I, M, O any](first func(I) M, second func(M) O) (func(I) O, error) {
	if first == nil {
		return nil, nilArgument("first")
	}
	if second == nil {
		return nil, nilArgument("second")
	}
	return func(i I) O {
		return second(first(i))
	}, nil
}
