package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/san-kum/dicesim/internal/dice"
)

const (
	exportFile   = "export.json"
	outcomesFile = "outcomes.csv"
)

// Store archives exports as one directory per saved session under baseDir.
type Store struct {
	baseDir  string
	exporter *Exporter
}

func New(baseDir string, exporter *Exporter) *Store {
	if exporter == nil {
		exporter = NewExporter(nil)
	}
	return &Store{baseDir: baseDir, exporter: exporter}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Save writes export.json and outcomes.csv for src and returns the run id.
func (s *Store) Save(src Source) (string, error) {
	now := s.exporter.clock.Now()
	runID := fmt.Sprintf("session_%s", now.UTC().Format("20060102T150405.000000000"))
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	if err := s.exporter.Export(src, filepath.Join(runDir, exportFile)); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, outcomesFile))
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"dice", "index", "outcome"}); err != nil {
		return "", err
	}
	for _, c := range dice.Counts() {
		for i, v := range src.Outcomes(c) {
			row := []string{strconv.Itoa(int(c)), strconv.Itoa(i), strconv.Itoa(v)}
			if err := w.Write(row); err != nil {
				return "", err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

type Entry struct {
	ID   string
	Data *ExportData
}

// List returns every readable saved session, oldest first.
func (s *Store) List() ([]Entry, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, err
	}

	runs := make([]Entry, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, Entry{ID: entry.Name(), Data: data})
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Data.ExportedAt.Before(runs[j].Data.ExportedAt)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*ExportData, error) {
	return ReadExport(filepath.Join(s.baseDir, runID, exportFile))
}

// LoadOutcomes reads the full outcome collections of a saved session.
func (s *Store) LoadOutcomes(runID string) (map[dice.Count][]int, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, outcomesFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}

	out := make(map[dice.Count][]int)
	for i, record := range records {
		if i == 0 || len(record) != 3 {
			continue
		}
		n, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		c, err := dice.ParseCount(n)
		if err != nil {
			continue
		}
		v, err := strconv.Atoi(record[2])
		if err != nil {
			continue
		}
		out[c] = append(out[c], v)
	}
	return out, nil
}
