package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/san-kum/dicesim/internal/common/clock"
	"github.com/san-kum/dicesim/internal/dice"
	"github.com/san-kum/dicesim/internal/sim"
	"gopkg.in/yaml.v3"
)

// ExportWindow is the number of most recent outcomes kept per scenario.
const ExportWindow = 1000

var (
	ErrEmptyPath = errors.New("storage: empty export path")
	ErrNoData    = errors.New("storage: export file holds no data")
)

// Source is the session view an export reads from.
type Source interface {
	Outcomes(c dice.Count) []int
	Total(c dice.Count) int
	RunLog() []sim.RunEntry
	Seed() *int64
}

type ExportData struct {
	ExportedAt time.Time        `json:"exported_at" yaml:"exported_at"`
	Seed       *int64           `json:"seed" yaml:"seed"`
	Outcomes   map[string][]int `json:"outcomes" yaml:"outcomes"`
	Totals     map[string]int   `json:"totals" yaml:"totals"`
	RunLog     []sim.RunEntry   `json:"run_log" yaml:"run_log"`
}

// Key is the map key a scenario is exported under.
func Key(c dice.Count) string { return fmt.Sprintf("dice_%d", int(c)) }

type Format int

const (
	JSON Format = iota
	YAML
)

func (f Format) String() string {
	if f == YAML {
		return "yaml"
	}
	return "json"
}

// FormatFor picks YAML for .yaml/.yml paths and JSON otherwise.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	}
	return JSON
}

type Config struct {
	Clock  clock.Clock
	Logger *slog.Logger
}

type Exporter struct {
	clock  clock.Clock
	logger *slog.Logger
}

func NewExporter(cfg *Config) *Exporter {
	if cfg == nil {
		cfg = &Config{}
	}
	e := &Exporter{clock: cfg.Clock, logger: cfg.Logger}
	if e.clock == nil {
		e.clock = &clock.DefaultClock{}
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Snapshot copies the exportable part of src.
func (e *Exporter) Snapshot(src Source) *ExportData {
	data := &ExportData{
		ExportedAt: e.clock.Now(),
		Seed:       src.Seed(),
		Outcomes:   make(map[string][]int, 3),
		Totals:     make(map[string]int, 3),
		RunLog:     src.RunLog(),
	}
	for _, c := range dice.Counts() {
		out := src.Outcomes(c)
		if len(out) > ExportWindow {
			out = out[len(out)-ExportWindow:]
		}
		if out == nil {
			out = []int{}
		}
		data.Outcomes[Key(c)] = out
		data.Totals[Key(c)] = src.Total(c)
	}
	if data.RunLog == nil {
		data.RunLog = []sim.RunEntry{}
	}
	return data
}

// Export writes a snapshot of src to path. The file is replaced atomically;
// on failure no partial file is left behind.
func (e *Exporter) Export(src Source, path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	data := e.Snapshot(src)
	format := FormatFor(path)

	if err := writeAtomic(path, data, format); err != nil {
		e.logger.Error("export failed", "path", path, "err", err)
		return err
	}
	e.logger.Info("export written", "path", path, "format", format.String(), "runs", len(data.RunLog))
	return nil
}

// WriteExport writes already captured data, converting to the format path
// implies.
func WriteExport(data *ExportData, path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	return writeAtomic(path, data, FormatFor(path))
}

// Export writes src to path with the system clock and default logger.
func Export(src Source, path string) error {
	return NewExporter(nil).Export(src, path)
}

func encode(data *ExportData, format Format) ([]byte, error) {
	switch format {
	case YAML:
		return yaml.Marshal(data)
	default:
		return json.MarshalIndent(data, "", "  ")
	}
}

func writeAtomic(path string, data *ExportData, format Format) error {
	raw, err := encode(data, format)
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".dicesim-export-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// ReadExport loads an export file written by Export.
func ReadExport(path string) (*ExportData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var data ExportData
	switch FormatFor(path) {
	case YAML:
		err = yaml.Unmarshal(raw, &data)
	default:
		err = json.Unmarshal(raw, &data)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if data.Outcomes == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoData, path)
	}
	return &data, nil
}
