package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/dicesim/internal/dice"
	"github.com/san-kum/dicesim/internal/sim"
)

func batch(c dice.Count, faces ...[]int) *sim.RollBatch {
	b := &sim.RollBatch{Dice: c}
	for _, f := range faces {
		b.Throws = append(b.Throws, dice.NewThrow(f))
	}
	return b
}

func TestSixRate(t *testing.T) {
	m := NewSixRate()
	if m.Value() != 0 {
		t.Errorf("expected zero before observing, got %f", m.Value())
	}

	m.Observe(batch(dice.Two, []int{6, 1}, []int{6, 6}))
	m.Observe(batch(dice.One, []int{3}, []int{2}))

	expected := 3.0 / 6.0
	if math.Abs(m.Value()-expected) > 1e-12 {
		t.Errorf("expected six rate %f, got %f", expected, m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected zero after reset, got %f", m.Value())
	}
}

func TestMeanSixes(t *testing.T) {
	m := NewMeanSixes()
	m.Observe(batch(dice.Three, []int{6, 6, 6}, []int{1, 2, 3}, []int{6, 5, 4}, []int{6, 6, 1}))

	expected := 6.0 / 4.0
	if math.Abs(m.Value()-expected) > 1e-12 {
		t.Errorf("expected mean %f, got %f", expected, m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestDeviation(t *testing.T) {
	m := NewDeviation()
	if m.Value() != 0 {
		t.Errorf("expected zero before observing, got %f", m.Value())
	}

	m.Observe(batch(dice.One, []int{6}, []int{1}, []int{2}, []int{3}, []int{4}, []int{5}))
	if m.Value() > 1e-12 {
		t.Errorf("expected zero deviation for a perfect sample, got %f", m.Value())
	}

	m.Observe(batch(dice.One, []int{6}, []int{6}, []int{6}, []int{6}, []int{6}, []int{6}))
	// 7 sixes in 12 faces against 2 expected.
	expected := (7.0/12.0 - 1.0/6.0) / (1.0 / 6.0)
	if math.Abs(m.Value()-expected) > 1e-12 {
		t.Errorf("expected deviation %f, got %f", expected, m.Value())
	}
}

func TestDefaultNames(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Default() {
		if seen[m.Name()] {
			t.Errorf("duplicate metric name %s", m.Name())
		}
		seen[m.Name()] = true
	}
	if len(seen) != 3 {
		t.Errorf("expected 3 default metrics, got %d", len(seen))
	}
}
