package intercept

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("intercept: invalid argument")
	ErrFingerprint     = errors.New("intercept: cannot fingerprint arguments")
	ErrResultType      = errors.New("intercept: unexpected result type")
)

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
