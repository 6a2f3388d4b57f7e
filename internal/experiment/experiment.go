package experiment

import (
	"log/slog"

	"github.com/san-kum/dicesim/internal/sim"
)

type Config struct {
	Strategy string
	Workers  int
	Seed     *int64
	Logger   *slog.Logger
}

// Experiment wires a session from a registry and a Config.
type Experiment struct {
	cfg     Config
	session *sim.Session
}

func New(cfg Config) *Experiment {
	if cfg.Strategy == "" {
		cfg.Strategy = "bulk"
	}
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(registry *Registry, metrics []sim.Metric) error {
	strategy, err := registry.GetStrategy(e.cfg.Strategy, e.cfg.Seed, e.cfg.Workers)
	if err != nil {
		return err
	}

	e.session = sim.New(&sim.Config{Strategy: strategy, Logger: e.cfg.Logger})
	if e.cfg.Seed != nil {
		e.session.SetSeed(e.cfg.Seed)
	}
	for _, m := range metrics {
		e.session.AddMetric(m)
	}
	return nil
}

// Session returns the underlying session, nil before Setup.
func (e *Experiment) Session() *sim.Session {
	return e.session
}
