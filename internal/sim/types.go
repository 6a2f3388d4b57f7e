package sim

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/dicesim/internal/common/clock"
	"github.com/san-kum/dicesim/internal/common/uuid"
	"github.com/san-kum/dicesim/internal/dice"
)

// RollBatch is the result of one Generate call.
type RollBatch struct {
	ID        string
	Dice      dice.Count
	Throws    []dice.Throw
	Seed      *int64
	Timestamp time.Time
}

func (b *RollBatch) ThrowCount() int { return len(b.Throws) }

func (b *RollBatch) PerThrowFaces() [][]int {
	out := make([][]int, len(b.Throws))
	for i, t := range b.Throws {
		out[i] = t.Faces
	}
	return out
}

func (b *RollBatch) SixesPerThrow() []int {
	out := make([]int, len(b.Throws))
	for i, t := range b.Throws {
		out[i] = t.Sixes
	}
	return out
}

// Validate checks the face and six-count invariants of every throw.
func (b *RollBatch) Validate() error {
	k := int(b.Dice)
	for i, t := range b.Throws {
		if len(t.Faces) != k {
			return fmt.Errorf("throw %d: %d faces for %s", i, len(t.Faces), b.Dice)
		}
		for _, f := range t.Faces {
			if f < 1 || f > dice.Sides {
				return fmt.Errorf("throw %d: face %d out of range", i, f)
			}
		}
		if t.Sixes != dice.CountSixes(t.Faces) {
			return fmt.Errorf("throw %d: six-count %d does not match faces", i, t.Sixes)
		}
	}
	return nil
}

// outcome is the value appended to the per-scenario collection: the face
// itself for one die, the six-count otherwise.
func outcome(c dice.Count, t dice.Throw) int {
	switch c {
	case dice.One:
		return t.Faces[0]
	case dice.Two, dice.Three:
		return t.Sixes
	}
	panic(fmt.Sprintf("sim: invalid dice count %d", int(c)))
}

// RunEntry is one line of the run log.
type RunEntry struct {
	ID        string     `json:"id" yaml:"id"`
	Timestamp time.Time  `json:"timestamp" yaml:"timestamp"`
	Dice      dice.Count `json:"dice_count" yaml:"dice_count"`
	Throws    int        `json:"throw_count" yaml:"throw_count"`
	Seed      *int64     `json:"seed" yaml:"seed"`
}

// Metric accumulates a running value over committed batches.
type Metric interface {
	Name() string
	Observe(b *RollBatch)
	Value() float64
	Reset()
}

type Observer interface {
	OnBatch(b *RollBatch)
}

// Completion is delivered exactly once per GenerateAsync call.
type Completion struct {
	Batch *RollBatch
	Err   error
}

type Config struct {
	Strategy dice.Strategy
	Clock    clock.Clock
	UUID     uuid.UUID
	Logger   *slog.Logger
}
