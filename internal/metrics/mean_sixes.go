package metrics

import (
	"github.com/san-kum/dicesim/internal/sim"
)

type MeanSixes struct {
	name   string
	sum    int
	throws int
}

func NewMeanSixes() *MeanSixes {
	return &MeanSixes{
		name: "mean_sixes",
	}
}

func (m *MeanSixes) Name() string {
	return m.name
}

func (m *MeanSixes) Observe(b *sim.RollBatch) {
	for _, t := range b.Throws {
		m.sum += t.Sixes
	}
	m.throws += len(b.Throws)
}

func (m *MeanSixes) Value() float64 {
	if m.throws == 0 {
		return 0
	}
	return float64(m.sum) / float64(m.throws)
}

func (m *MeanSixes) Reset() {
	m.sum = 0
	m.throws = 0
}
