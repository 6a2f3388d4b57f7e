package dice

import (
	"errors"
	"fmt"
)

const (
	// Sides is the number of faces on every die.
	Sides = 6
	// Six is the face value counted by the simulation.
	Six = 6
)

var (
	ErrInvalidCount  = errors.New("dice: dice count must be 1, 2 or 3")
	ErrInvalidThrows = errors.New("dice: throw count must be positive")
)

// Count selects one of the three supported scenarios.
type Count int

const (
	One   Count = 1
	Two   Count = 2
	Three Count = 3
)

// Counts lists every scenario in ascending order.
func Counts() []Count {
	return []Count{One, Two, Three}
}

// ParseCount converts a raw dice count into a Count.
func ParseCount(n int) (Count, error) {
	c := Count(n)
	if !c.Valid() {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidCount, n)
	}
	return c, nil
}

func (c Count) Valid() bool {
	switch c {
	case One, Two, Three:
		return true
	}
	return false
}

// Index maps the scenario onto 0..2 for fixed-size per-scenario storage.
func (c Count) Index() int {
	switch c {
	case One:
		return 0
	case Two:
		return 1
	case Three:
		return 2
	}
	panic(fmt.Sprintf("dice: invalid count %d", int(c)))
}

func (c Count) String() string {
	switch c {
	case One:
		return "1 die"
	case Two:
		return "2 dice"
	case Three:
		return "3 dice"
	}
	return fmt.Sprintf("invalid(%d)", int(c))
}

// Throw is a single trial: the faces rolled and how many of them are sixes.
type Throw struct {
	Faces []int `json:"faces" yaml:"faces"`
	Sixes int   `json:"sixes" yaml:"sixes"`
}

func NewThrow(faces []int) Throw {
	return Throw{Faces: faces, Sixes: CountSixes(faces)}
}

func CountSixes(faces []int) int {
	n := 0
	for _, f := range faces {
		if f == Six {
			n++
		}
	}
	return n
}

// Strategy draws batches of throws. Implementations are not safe for
// concurrent use.
type Strategy interface {
	Name() string
	// Reseed resets the generator state. A nil seed selects system entropy.
	Reseed(seed *int64)
	Roll(throws int, count Count) ([]Throw, error)
}

func validate(throws int, count Count) error {
	if throws <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidThrows, throws)
	}
	if !count.Valid() {
		return fmt.Errorf("%w: got %d", ErrInvalidCount, int(count))
	}
	return nil
}
