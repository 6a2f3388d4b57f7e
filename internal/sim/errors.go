package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/dicesim/internal/dice"
)

var (
	// ErrInvalidThrowCount indicates a non-positive throw count.
	ErrInvalidThrowCount = errors.New("sim: throw count must be positive")

	// ErrInvalidDiceCount indicates a scenario outside {1, 2, 3}.
	ErrInvalidDiceCount = errors.New("sim: dice count must be 1, 2 or 3")

	// ErrGenerationFailed indicates the strategy failed mid-draw.
	ErrGenerationFailed = errors.New("sim: generation failed")
)

// GenerationError wraps a generation failure with the request that caused it.
type GenerationError struct {
	Dice    dice.Count
	Throws  int
	Wrapped error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%v (%d throws of %s): %v", ErrGenerationFailed, e.Throws, e.Dice, e.Wrapped)
}

func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

func (e *GenerationError) Unwrap() error {
	return e.Wrapped
}
