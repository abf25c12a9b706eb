package pure

// key2 to key6 hold the inputs of one call as a single comparable map key.
type key2[I1, I2 comparable] struct {
	i1 I1
	i2 I2
}

type key3[I1, I2, I3 comparable] struct {
	i1 I1
	i2 I2
	i3 I3
}

type key4[I1, I2, I3, I4 comparable] struct {
	i1 I1
	i2 I2
	i3 I3
	i4 I4
}

type key5[I1, I2, I3, I4, I5 comparable] struct {
	i1 I1
	i2 I2
	i3 I3
	i4 I4
	i5 I5
}

type key6[I1, I2, I3, I4, I5, I6 comparable] struct {
	i1 I1
	i2 I2
	i3 I3
	i4 I4
	i5 I5
	i6 I6
}
