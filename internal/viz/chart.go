package viz

import (
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/dicesim/internal/analysis"
	"github.com/san-kum/dicesim/internal/experiment"
)

type ChartOptions struct {
	Width  int
	Height int
}

func (o ChartOptions) withDefaults() ChartOptions {
	if o.Width <= 0 {
		o.Width = 60
	}
	if o.Height <= 0 {
		o.Height = 10
	}
	return o
}

// Chart plots experimental (red) against theoretical (green) bucket
// probabilities of a report.
func Chart(r *analysis.Report, opts ChartOptions) string {
	opts = opts.withDefaults()

	exp := make([]float64, len(r.Buckets))
	theo := make([]float64, len(r.Buckets))
	for i, b := range r.Buckets {
		exp[i] = b.Experimental
		theo[i] = b.Theoretical
	}

	first, last := r.Buckets[0].Label, r.Buckets[len(r.Buckets)-1].Label
	return asciigraph.PlotMany([][]float64{exp, theo},
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
		asciigraph.LowerBound(0),
		asciigraph.Precision(3),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green),
		asciigraph.Caption(r.Dice.String()+": "+first+" .. "+last+" (red experimental, green theoretical)"),
	)
}

// ConvergenceChart plots the relative deviation of a sweep in percent.
func ConvergenceChart(points []experiment.SweepPoint, opts ChartOptions) string {
	opts = opts.withDefaults()

	dev := make([]float64, len(points))
	for i, p := range points {
		dev[i] = p.Relative * 100
	}
	if len(dev) == 0 {
		dev = []float64{0}
	}

	return asciigraph.Plot(dev,
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
		asciigraph.LowerBound(0),
		asciigraph.Caption("relative deviation % by checkpoint"),
	)
}
