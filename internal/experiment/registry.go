package experiment

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/dicesim/internal/dice"
	"github.com/san-kum/dicesim/internal/metrics"
	"github.com/san-kum/dicesim/internal/sim"
)

var ErrUnknownStrategy = errors.New("experiment: unknown strategy")

// StrategyFactory builds a strategy. workers is ignored by sequential ones.
type StrategyFactory func(seed *int64, workers int) dice.Strategy

type Registry struct {
	strategies map[string]StrategyFactory
}

func NewRegistry() *Registry {
	r := &Registry{strategies: make(map[string]StrategyFactory)}

	r.Register("bulk", func(seed *int64, workers int) dice.Strategy { return dice.NewBulk(seed, workers) })
	r.Register("loop", func(seed *int64, _ int) dice.Strategy { return dice.NewLoop(seed) })

	return r
}

func (r *Registry) Register(name string, fn StrategyFactory) {
	r.strategies[name] = fn
}

func (r *Registry) GetStrategy(name string, seed *int64, workers int) (dice.Strategy, error) {
	fn, ok := r.strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, name)
	}
	return fn(seed, workers), nil
}

func (r *Registry) ListStrategies() []string {
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics() []sim.Metric {
	return metrics.Default()
}
