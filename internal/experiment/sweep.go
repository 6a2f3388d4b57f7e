package experiment

import (
	"context"
	"errors"
	"math"

	"github.com/san-kum/dicesim/internal/analysis"
	"github.com/san-kum/dicesim/internal/dice"
)

var ErrInvalidSweep = errors.New("experiment: sweep needs 0 < start < stop and at least 2 points")

// Sweep measures convergence of the headline probability as the sample
// grows geometrically from Start to Stop throws.
type Sweep struct {
	Dice     dice.Count
	Start    int
	Stop     int
	Points   int
	Strategy string
	Seed     *int64
}

type SweepPoint struct {
	Throws       int
	Experimental float64
	Theoretical  float64
	Relative     float64
}

// Checkpoints returns the distinct, increasing sample sizes of the sweep.
func (s *Sweep) Checkpoints() ([]int, error) {
	if s.Start <= 0 || s.Stop <= s.Start || s.Points < 2 {
		return nil, ErrInvalidSweep
	}

	ratio := math.Pow(float64(s.Stop)/float64(s.Start), 1/float64(s.Points-1))
	out := make([]int, 0, s.Points)
	for i := 0; i < s.Points; i++ {
		n := int(math.Round(float64(s.Start) * math.Pow(ratio, float64(i))))
		if i == s.Points-1 {
			n = s.Stop
		}
		if len(out) > 0 && n <= out[len(out)-1] {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

// RunSweep grows one session to each checkpoint in turn.
func RunSweep(ctx context.Context, s *Sweep, registry *Registry) ([]SweepPoint, error) {
	checkpoints, err := s.Checkpoints()
	if err != nil {
		return nil, err
	}

	exp := New(Config{Strategy: s.Strategy, Seed: s.Seed})
	if err := exp.Setup(registry, nil); err != nil {
		return nil, err
	}
	session := exp.Session()

	points := make([]SweepPoint, 0, len(checkpoints))
	for _, n := range checkpoints {
		if err := ctx.Err(); err != nil {
			return points, err
		}
		if _, err := session.Generate(n-session.Total(s.Dice), s.Dice); err != nil {
			return points, err
		}

		report, _ := analysis.Analyze(session, s.Dice)
		a := analysis.Classify(report.Headline.Experimental, report.Headline.Theoretical)
		points = append(points, SweepPoint{
			Throws:       n,
			Experimental: a.Experimental,
			Theoretical:  a.Theoretical,
			Relative:     a.Relative,
		})
	}
	return points, nil
}
