package analysis

import (
	"strings"

	"github.com/san-kum/dicesim/internal/dice"
	"github.com/san-kum/dicesim/internal/sim"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Source is a read-only view of accumulated session data.
type Source interface {
	Outcomes(c dice.Count) []int
	History(c dice.Count) []*sim.RollBatch
}

type Bucket struct {
	Label        string
	Value        int
	Count        int
	Experimental float64
	Theoretical  float64
}

// Headline is the probability each scenario is judged by.
type Headline struct {
	Name         string
	Label        string
	Count        int
	Experimental float64
	Theoretical  float64
}

type Report struct {
	Dice        dice.Count
	Total       int
	Buckets     []Bucket
	Stats       Stats
	Headline    Headline
	Convergence *Assessment
	RareEvent   *RareEvent
	// Faces counts every individual die face, for multi-dice scenarios.
	Faces []int
}

// Analyze builds the report for one scenario. It returns false when the
// scenario holds no outcomes.
func Analyze(src Source, c dice.Count) (*Report, bool) {
	outcomes := src.Outcomes(c)
	stats, ok := Describe(outcomes)
	if !ok {
		return nil, false
	}

	table := TheoreticalProbabilities(c)
	total := len(outcomes)
	r := &Report{Dice: c, Total: total, Stats: stats}

	counts := make(map[int]int)
	for _, v := range outcomes {
		counts[v]++
	}

	first := 0
	if c == dice.One {
		first = 1
	}
	for i, e := range table.Buckets() {
		v := first + i
		r.Buckets = append(r.Buckets, Bucket{
			Label:        e.Label,
			Value:        v,
			Count:        counts[v],
			Experimental: float64(counts[v]) / float64(total),
			Theoretical:  e.P,
		})
	}

	switch c {
	case dice.One:
		r.Headline = headline("P(six)", FaceLabel(dice.Six), counts[dice.Six], total, table)
	case dice.Two:
		r.Headline = headline("P(at least one six)", AtLeastOneSix, total-counts[0], total, table)
	case dice.Three:
		r.Headline = headline("P(three sixes)", SixesLabel(3), counts[3], total, table)
		r.RareEvent = newRareEvent(counts[3], total, r.Headline.Theoretical)
	}

	if total >= ConvergenceSamples(c) {
		a := Classify(r.Headline.Experimental, r.Headline.Theoretical)
		r.Convergence = &a
	}

	if c != dice.One {
		faces := FaceFrequencies(src.History(c))
		r.Faces = faces[:]
	}
	return r, true
}

func headline(name, label string, count, total int, t Table) Headline {
	p, _ := t.Get(label)
	return Headline{
		Name:         name,
		Label:        label,
		Count:        count,
		Experimental: float64(count) / float64(total),
		Theoretical:  p,
	}
}

// FaceFrequencies counts faces 1..6 across every die of every throw.
func FaceFrequencies(batches []*sim.RollBatch) [dice.Sides]int {
	var out [dice.Sides]int
	for _, b := range batches {
		for _, t := range b.Throws {
			for _, f := range t.Faces {
				out[f-1]++
			}
		}
	}
	return out
}

var printer = message.NewPrinter(language.English)

func (r *Report) String() string {
	var b strings.Builder
	p := printer

	title := p.Sprintf("ANALYSIS OF %s (%d throws)", strings.ToUpper(r.Dice.String()), r.Total)
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")

	section(&b, "DISTRIBUTION")
	for _, bk := range r.Buckets {
		p.Fprintf(&b, "  %-10s %9d  exp %.4f  theo %.4f\n", bk.Label, bk.Count, bk.Experimental, bk.Theoretical)
	}
	b.WriteString("\n")

	section(&b, "DESCRIPTIVE STATISTICS")
	s := r.Stats
	p.Fprintf(&b, "  mean      %.4f\n", s.Mean)
	p.Fprintf(&b, "  median    %.2f\n", s.Median)
	p.Fprintf(&b, "  mode      %d\n", s.Mode)
	p.Fprintf(&b, "  std dev   %.4f\n", s.StdDev)
	p.Fprintf(&b, "  variance  %.4f\n", s.Variance)
	p.Fprintf(&b, "  range     %d (%d to %d)\n", s.Range, s.Min, s.Max)
	p.Fprintf(&b, "  P25       %.2f\n", s.P25)
	p.Fprintf(&b, "  P75       %.2f\n\n", s.P75)

	h := r.Headline
	section(&b, h.Name)
	p.Fprintf(&b, "  experimental  %.4f (%.2f%%) from %d cases\n", h.Experimental, h.Experimental*100, h.Count)
	p.Fprintf(&b, "  theoretical   %.4f (%.2f%%)\n", h.Theoretical, h.Theoretical*100)
	p.Fprintf(&b, "  difference    %.4f\n", h.Experimental-h.Theoretical)
	if c := r.Convergence; c != nil {
		p.Fprintf(&b, "  convergence   %s (deviation %.2f%%)\n", c.Rating, c.Relative*100)
	} else {
		p.Fprintf(&b, "  convergence   needs at least %d throws\n", ConvergenceSamples(r.Dice))
	}
	b.WriteString("\n")

	if ev := r.RareEvent; ev != nil {
		section(&b, "RARE EVENT: THREE SIXES")
		p.Fprintf(&b, "  observed  %d\n", ev.Observed)
		p.Fprintf(&b, "  expected  %.1f\n", ev.Expected)
		if ev.Conclusive {
			p.Fprintf(&b, "  expected once every %.0f throws\n", ev.Interval)
			if ev.Seen {
				b.WriteString("  rare event observed\n")
			} else {
				b.WriteString("  rare event not observed yet\n")
			}
		}
		b.WriteString("\n")
	}

	all := 0
	for _, n := range r.Faces {
		all += n
	}
	if all > 0 {
		section(&b, "FACE FREQUENCIES (ALL DICE)")
		for i, n := range r.Faces {
			p.Fprintf(&b, "  face %d  %9d  %.4f\n", i+1, n, float64(n)/float64(all))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func section(b *strings.Builder, name string) {
	b.WriteString(name + "\n")
	b.WriteString(strings.Repeat("-", len(name)) + "\n")
}

// Summary concatenates the reports of every scenario holding data.
func Summary(src Source) string {
	var b strings.Builder
	for _, c := range dice.Counts() {
		if r, ok := Analyze(src, c); ok {
			b.WriteString(r.String())
		}
	}
	if b.Len() == 0 {
		return "no data\n"
	}
	return b.String()
}
