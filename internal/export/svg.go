package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/dicesim/internal/analysis"
	"github.com/san-kum/dicesim/internal/experiment"
)

const (
	experimentalColor = "#ff4757"
	theoreticalColor  = "#2ecc71"
)

func header(sb *strings.Builder, width, height int) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))
}

// DistributionSVG draws paired bars per bucket: experimental on the left,
// theoretical on the right, scaled to the largest probability.
func DistributionSVG(r *analysis.Report, width, height int) string {
	if r == nil || len(r.Buckets) == 0 {
		return ""
	}

	peak := 0.0
	for _, b := range r.Buckets {
		peak = max(peak, b.Experimental, b.Theoretical)
	}
	if peak == 0 {
		peak = 1
	}

	const margin = 30.0
	plotH := float64(height) - 2*margin
	slot := (float64(width) - 2*margin) / float64(len(r.Buckets))
	bar := slot * 0.35

	var sb strings.Builder
	header(&sb, width, height)
	sb.WriteString(fmt.Sprintf(`<text x="%.0f" y="18" fill="#ffffff" font-family="monospace" font-size="12">%s: %d throws</text>
`, margin, r.Dice, r.Total))

	for i, b := range r.Buckets {
		x := margin + float64(i)*slot + slot*0.15
		for j, p := range []float64{b.Experimental, b.Theoretical} {
			color := experimentalColor
			if j == 1 {
				color = theoreticalColor
			}
			h := p / peak * plotH
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, x+float64(j)*bar, float64(height)-margin-h, bar, h, color))
		}
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.0f" fill="#888888" font-family="monospace" font-size="10">%s</text>
`, x, float64(height)-margin/3, b.Label))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// ConvergenceSVG draws the relative deviation of a sweep as a path.
func ConvergenceSVG(points []experiment.SweepPoint, width, height int) string {
	if len(points) < 2 {
		return ""
	}

	peak := 0.0
	for _, p := range points {
		peak = max(peak, p.Relative)
	}
	if peak == 0 {
		peak = 1
	}
	peak *= 1.1

	var sb strings.Builder
	header(&sb, width, height)
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, experimentalColor))

	for i, p := range points {
		x := float64(i) / float64(len(points)-1) * float64(width)
		y := float64(height) - p.Relative/peak*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

func WriteSVG(path, svg string) error {
	if svg == "" {
		return fmt.Errorf("export: nothing to draw for %s", path)
	}
	return os.WriteFile(path, []byte(svg), 0644)
}
