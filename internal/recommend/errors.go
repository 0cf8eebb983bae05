package recommend

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when a request cannot be evaluated at all.
// It is the only error that stops the pipeline.
var ErrInvalidInput = errors.New("invalid input")

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
