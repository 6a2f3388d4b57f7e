package sim

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/san-kum/dicesim/internal/common/clock"
	"github.com/san-kum/dicesim/internal/common/uuid"
	"github.com/san-kum/dicesim/internal/dice"
)

// Session accumulates every batch generated during one simulation session.
// It holds no lock: callers must not run Generate concurrently with another
// Generate or with any reader.
type Session struct {
	strategy dice.Strategy
	clock    clock.Clock
	ids      uuid.UUID
	logger   *slog.Logger

	seed     *int64
	outcomes [3][]int
	totals   [3]int
	history  [3][]*RollBatch
	runLog   []RunEntry

	metrics   []Metric
	observers []Observer
}

func New(cfg *Config) *Session {
	if cfg == nil {
		cfg = &Config{}
	}
	s := &Session{
		strategy: cfg.Strategy,
		clock:    cfg.Clock,
		ids:      cfg.UUID,
		logger:   cfg.Logger,
	}
	if s.strategy == nil {
		s.strategy = dice.NewBulk(nil, 0)
	}
	if s.clock == nil {
		s.clock = &clock.DefaultClock{}
	}
	if s.ids == nil {
		s.ids = uuid.New()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

func (s *Session) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Session) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// SetSeed fixes the seed for all later generation and reseeds the strategy
// immediately. A nil seed switches back to system entropy.
func (s *Session) SetSeed(seed *int64) {
	if seed != nil {
		v := *seed
		seed = &v
	}
	s.seed = seed
	s.strategy.Reseed(seed)
	s.logger.Debug("seed set", "seed", formatSeed(seed), "strategy", s.strategy.Name())
}

func (s *Session) Seed() *int64 {
	if s.seed == nil {
		return nil
	}
	v := *s.seed
	return &v
}

func (s *Session) Strategy() dice.Strategy { return s.strategy }

// Generate rolls throws trials of count dice and appends them to the
// session. On error nothing is appended.
func (s *Session) Generate(throws int, count dice.Count) (*RollBatch, error) {
	if throws <= 0 {
		err := fmt.Errorf("%w: got %d", ErrInvalidThrowCount, throws)
		s.logger.Warn("generate rejected", "throws", throws, "dice", int(count), "err", err)
		return nil, err
	}
	if !count.Valid() {
		err := fmt.Errorf("%w: got %d", ErrInvalidDiceCount, int(count))
		s.logger.Warn("generate rejected", "throws", throws, "dice", int(count), "err", err)
		return nil, err
	}

	batch, err := s.roll(throws, count)
	if err != nil {
		s.logger.Error("generate failed", "throws", throws, "dice", int(count), "err", err)
		return nil, err
	}

	s.commit(batch)
	s.logger.Debug("generate completed", "run_id", batch.ID, "throws", throws, "dice", int(count))
	return batch, nil
}

func (s *Session) roll(throws int, count dice.Count) (batch *RollBatch, err error) {
	defer func() {
		if r := recover(); r != nil {
			batch = nil
			err = &GenerationError{Dice: count, Throws: throws, Wrapped: fmt.Errorf("panic: %v", r)}
		}
	}()

	out, err := s.strategy.Roll(throws, count)
	if err != nil {
		return nil, &GenerationError{Dice: count, Throws: throws, Wrapped: err}
	}
	if len(out) != throws {
		return nil, &GenerationError{Dice: count, Throws: throws,
			Wrapped: fmt.Errorf("strategy %s returned %d throws", s.strategy.Name(), len(out))}
	}

	batch = &RollBatch{
		ID:        s.ids.NewUUID(),
		Dice:      count,
		Throws:    out,
		Seed:      s.Seed(),
		Timestamp: s.clock.Now(),
	}
	if err := batch.Validate(); err != nil {
		return nil, &GenerationError{Dice: count, Throws: throws, Wrapped: err}
	}
	return batch, nil
}

func (s *Session) commit(b *RollBatch) {
	i := b.Dice.Index()
	for _, t := range b.Throws {
		s.outcomes[i] = append(s.outcomes[i], outcome(b.Dice, t))
	}
	s.history[i] = append(s.history[i], b)
	s.totals[i] += len(b.Throws)
	s.runLog = append(s.runLog, RunEntry{
		ID:        b.ID,
		Timestamp: b.Timestamp,
		Dice:      b.Dice,
		Throws:    len(b.Throws),
		Seed:      b.Seed,
	})

	for _, m := range s.metrics {
		m.Observe(b)
	}
	for _, o := range s.observers {
		o.OnBatch(b)
	}
}

// GenerateAsync runs Generate off the caller's goroutine. The returned
// channel yields exactly one Completion and is then closed.
func (s *Session) GenerateAsync(throws int, count dice.Count) <-chan Completion {
	done := make(chan Completion, 1)
	go func() {
		defer close(done)
		b, err := s.Generate(throws, count)
		done <- Completion{Batch: b, Err: err}
	}()
	return done
}

// Clear drops all accumulated data. The seed is kept.
func (s *Session) Clear() {
	s.outcomes = [3][]int{}
	s.totals = [3]int{}
	s.history = [3][]*RollBatch{}
	s.runLog = nil
	for _, m := range s.metrics {
		m.Reset()
	}
	s.logger.Debug("session cleared")
}

// Outcomes returns faces for one die and six-counts for two or three dice.
func (s *Session) Outcomes(c dice.Count) []int {
	if !c.Valid() {
		return nil
	}
	return slices.Clone(s.outcomes[c.Index()])
}

func (s *Session) Total(c dice.Count) int {
	if !c.Valid() {
		return 0
	}
	return s.totals[c.Index()]
}

func (s *Session) History(c dice.Count) []*RollBatch {
	if !c.Valid() {
		return nil
	}
	return slices.Clone(s.history[c.Index()])
}

func (s *Session) RunLog() []RunEntry {
	return slices.Clone(s.runLog)
}

// Metrics returns the current value of every registered metric.
func (s *Session) Metrics() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func formatSeed(seed *int64) any {
	if seed == nil {
		return "entropy"
	}
	return *seed
}
