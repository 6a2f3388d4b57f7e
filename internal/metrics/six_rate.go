package metrics

import (
	"github.com/san-kum/dicesim/internal/sim"
)

// SixRate is the fraction of all observed faces that show a six.
type SixRate struct {
	name  string
	faces int
	sixes int
}

func NewSixRate() *SixRate {
	return &SixRate{
		name: "six_rate",
	}
}

func (s *SixRate) Name() string {
	return s.name
}

func (s *SixRate) Observe(b *sim.RollBatch) {
	for _, t := range b.Throws {
		s.faces += len(t.Faces)
		s.sixes += t.Sixes
	}
}

func (s *SixRate) Value() float64 {
	if s.faces == 0 {
		return 0
	}
	return float64(s.sixes) / float64(s.faces)
}

func (s *SixRate) Reset() {
	s.faces = 0
	s.sixes = 0
}
