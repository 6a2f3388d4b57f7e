package metrics

import (
	"math"

	"github.com/san-kum/dicesim/internal/dice"
	"github.com/san-kum/dicesim/internal/sim"
)

// Deviation is the relative deviation of the observed six rate from 1/6.
type Deviation struct {
	name string
	rate *SixRate
}

func NewDeviation() *Deviation {
	return &Deviation{
		name: "six_rate_deviation",
		rate: NewSixRate(),
	}
}

func (d *Deviation) Name() string {
	return d.name
}

func (d *Deviation) Observe(b *sim.RollBatch) {
	d.rate.Observe(b)
}

func (d *Deviation) Value() float64 {
	if d.rate.faces == 0 {
		return 0
	}
	p := 1.0 / dice.Sides
	return math.Abs(d.rate.Value()-p) / p
}

func (d *Deviation) Reset() {
	d.rate.Reset()
}

// Default returns the metrics every session registers.
func Default() []sim.Metric {
	return []sim.Metric{NewSixRate(), NewMeanSixes(), NewDeviation()}
}
