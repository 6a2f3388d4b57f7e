package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/dicesim/internal/analysis"
	"github.com/san-kum/dicesim/internal/dice"
	"github.com/san-kum/dicesim/internal/experiment"
)

func testReport() *analysis.Report {
	return &analysis.Report{
		Dice:  dice.Two,
		Total: 36,
		Buckets: []analysis.Bucket{
			{Label: "0_sixes", Count: 25, Experimental: 25.0 / 36, Theoretical: 25.0 / 36},
			{Label: "1_sixes", Count: 10, Experimental: 10.0 / 36, Theoretical: 10.0 / 36},
			{Label: "2_sixes", Count: 1, Experimental: 1.0 / 36, Theoretical: 1.0 / 36},
		},
	}
}

func TestDistributionSVG(t *testing.T) {
	svg := DistributionSVG(testReport(), 400, 200)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("expected a complete svg document")
	}
	// one background plus two bars per bucket
	if got := strings.Count(svg, "<rect"); got != 7 {
		t.Errorf("expected 7 rects, got %d", got)
	}
	for _, label := range []string{"0_sixes", "1_sixes", "2_sixes", "2 dice: 36 throws"} {
		if !strings.Contains(svg, label) {
			t.Errorf("missing %q", label)
		}
	}
}

func TestDistributionSVG_Empty(t *testing.T) {
	if DistributionSVG(nil, 100, 100) != "" {
		t.Error("expected empty output for nil report")
	}
}

func TestConvergenceSVG(t *testing.T) {
	points := []experiment.SweepPoint{
		{Throws: 100, Relative: 0.2},
		{Throws: 1000, Relative: 0.05},
		{Throws: 10000, Relative: 0.01},
	}
	svg := ConvergenceSVG(points, 300, 100)
	if strings.Count(svg, " L") != 2 {
		t.Errorf("expected 2 line segments in %s", svg)
	}
	if ConvergenceSVG(points[:1], 300, 100) != "" {
		t.Error("a single point should not draw a path")
	}
}

func TestWriteSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dist.svg")
	if err := WriteSVG(path, DistributionSVG(testReport(), 200, 100)); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("svg not written: %v", err)
	}
	if err := WriteSVG(path, ""); err == nil {
		t.Error("expected error for empty svg")
	}
}
