package analysis

import (
	"math"

	"github.com/san-kum/dicesim/internal/dice"
)

const (
	ExcellentThreshold = 0.05
	GoodThreshold      = 0.10

	// RareEventSamples is the sample size at which the three-sixes check
	// becomes conclusive.
	RareEventSamples = 10000
)

type Rating int

const (
	Excellent Rating = iota
	Good
	Moderate
)

func (r Rating) String() string {
	switch r {
	case Excellent:
		return "excellent"
	case Good:
		return "good"
	case Moderate:
		return "moderate"
	}
	return "unknown"
}

type Assessment struct {
	Experimental float64
	Theoretical  float64
	AbsDiff      float64
	Relative     float64
	Rating       Rating
}

// Classify rates the relative deviation of experimental from theoretical.
func Classify(experimental, theoretical float64) Assessment {
	diff := math.Abs(experimental - theoretical)
	rel := math.Inf(1)
	if theoretical != 0 {
		rel = diff / theoretical
	}

	rating := Moderate
	switch {
	case rel < ExcellentThreshold:
		rating = Excellent
	case rel < GoodThreshold:
		rating = Good
	}

	return Assessment{
		Experimental: experimental,
		Theoretical:  theoretical,
		AbsDiff:      diff,
		Relative:     rel,
		Rating:       rating,
	}
}

// ConvergenceSamples is the minimum sample size for a convergence rating.
func ConvergenceSamples(c dice.Count) int {
	switch c {
	case dice.One, dice.Two:
		return 1000
	case dice.Three:
		return RareEventSamples
	}
	return math.MaxInt
}

// RareEvent tracks the three-sixes outcome of the three-dice scenario.
type RareEvent struct {
	Observed   int
	Expected   float64
	Interval   float64
	Seen       bool
	Conclusive bool
}

func newRareEvent(observed, total int, p float64) *RareEvent {
	return &RareEvent{
		Observed:   observed,
		Expected:   p * float64(total),
		Interval:   1 / p,
		Seen:       observed > 0,
		Conclusive: total >= RareEventSamples,
	}
}
