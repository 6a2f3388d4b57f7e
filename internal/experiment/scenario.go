package experiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/san-kum/dicesim/internal/dice"
	"github.com/san-kum/dicesim/internal/sim"
	"github.com/san-kum/dicesim/internal/storage"
	"gopkg.in/yaml.v3"
)

var ErrEmptyScenario = errors.New("experiment: scenario has no steps")

// Scenario is a scripted sequence of generations against one session.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Seed        *int64 `yaml:"seed"`
	Strategy    string `yaml:"strategy"`
	Workers     int    `yaml:"workers"`
	Export      string `yaml:"export"`
	Steps       []Step `yaml:"steps"`
}

type Step struct {
	Dice   int  `yaml:"dice"`
	Throws int  `yaml:"throws"`
	Repeat int  `yaml:"repeat"`
	Clear  bool `yaml:"clear"`
}

type StepResult struct {
	Step    int
	Dice    dice.Count
	Batches []*sim.RollBatch
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks every step before anything is generated.
func (sc *Scenario) Validate() error {
	if len(sc.Steps) == 0 {
		return ErrEmptyScenario
	}
	for i, step := range sc.Steps {
		if _, err := dice.ParseCount(step.Dice); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		if step.Throws <= 0 {
			return fmt.Errorf("step %d: %w: got %d", i+1, sim.ErrInvalidThrowCount, step.Throws)
		}
		if step.Repeat < 0 {
			return fmt.Errorf("step %d: negative repeat %d", i+1, step.Repeat)
		}
	}
	return nil
}

// RunScenario executes the steps in order on a fresh session and returns
// it with the per-step batches. The context is checked between batches.
func RunScenario(ctx context.Context, sc *Scenario, registry *Registry, logger *slog.Logger) (*sim.Session, []StepResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := sc.Validate(); err != nil {
		return nil, nil, err
	}

	exp := New(Config{Strategy: sc.Strategy, Workers: sc.Workers, Seed: sc.Seed, Logger: logger})
	if err := exp.Setup(registry, registry.DefaultMetrics()); err != nil {
		return nil, nil, err
	}
	session := exp.Session()

	results := make([]StepResult, 0, len(sc.Steps))
	for i, step := range sc.Steps {
		count, _ := dice.ParseCount(step.Dice)
		if step.Clear {
			session.Clear()
		}

		res := StepResult{Step: i + 1, Dice: count}
		for r := 0; r < max(step.Repeat, 1); r++ {
			if err := ctx.Err(); err != nil {
				return session, results, err
			}
			batch, err := session.Generate(step.Throws, count)
			if err != nil {
				return session, results, fmt.Errorf("step %d: %w", i+1, err)
			}
			res.Batches = append(res.Batches, batch)
		}
		results = append(results, res)
		logger.Info("scenario step done", "scenario", sc.Name, "step", i+1, "dice", step.Dice, "throws", step.Throws*len(res.Batches))
	}

	if sc.Export != "" {
		if err := storage.NewExporter(&storage.Config{Logger: logger}).Export(session, sc.Export); err != nil {
			return session, results, err
		}
	}
	return session, results, nil
}
