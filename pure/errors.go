package pure

import (
	"errors"
	"fmt"
)

var ErrInvalidArgument = errors.New("pure: invalid argument")

func nilArgument(name string) error {
	return fmt.Errorf("%w: %s must not be nil", ErrInvalidArgument, name)
}

// must re-raises a failure published by the computing caller.
// Waiters of a non-failing function only ever see a panic or Goexit here.
func must[O any](value O, err error) O {
	if err != nil {
		panic(err)
	}
	return value
}
