package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/dicesim/internal/analysis"
	"github.com/san-kum/dicesim/internal/dice"
	"github.com/san-kum/dicesim/internal/sim"
	"github.com/san-kum/dicesim/internal/storage"
)

var ThrowOptions = []int{100, 1000, 10000, 100000, 1000000}

type AppOptions struct {
	Dice       dice.Count
	Throws     int
	Theme      string
	ExportPath string
	Exporter   *storage.Exporter
}

type generatedMsg struct{ sim.Completion }

type tickMsg time.Time

// App is the bubbletea model of the interactive simulator.
type App struct {
	session    *sim.Session
	exporter   *storage.Exporter
	exportPath string

	theme  Theme
	styles Styles

	diceCursor  int
	throwCursor int
	running     bool
	showReport  bool
	frame       int

	report *analysis.Report
	trend  []float64
	status string
	err    error

	width, height int
}

func NewApp(session *sim.Session, opts AppOptions) App {
	if opts.Exporter == nil {
		opts.Exporter = storage.NewExporter(nil)
	}
	theme := GetTheme(opts.Theme)
	a := App{
		session:     session,
		exporter:    opts.Exporter,
		exportPath:  opts.ExportPath,
		theme:       theme,
		styles:      NewStyles(theme),
		throwCursor: 1,
		width:       80,
		height:      24,
	}
	if opts.Dice.Valid() {
		a.diceCursor = opts.Dice.Index()
	}
	for i, n := range ThrowOptions {
		if n == opts.Throws {
			a.throwCursor = i
		}
	}
	a.refresh()
	return a
}

func (a App) Init() tea.Cmd { return nil }

func (a App) selectedDice() dice.Count { return dice.Counts()[a.diceCursor] }

func (a App) selectedThrows() int { return ThrowOptions[a.throwCursor] }

func waitForCompletion(ch <-chan sim.Completion) tea.Cmd {
	return func() tea.Msg { return generatedMsg{<-ch} }
}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
	case generatedMsg:
		a.running = false
		if msg.Err != nil {
			a.err = msg.Err
			a.status = ""
		} else {
			a.err = nil
			a.status = fmt.Sprintf("generated %d throws of %s", msg.Batch.ThrowCount(), msg.Batch.Dice)
		}
		a.refresh()
	case tickMsg:
		if a.running {
			a.frame++
			return a, tick()
		}
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (App, tea.Cmd) {
	if msg.String() == "ctrl+c" || msg.String() == "q" {
		return a, tea.Quit
	}
	// the session has a single writer; ignore input until it completes
	if a.running {
		return a, nil
	}

	switch msg.String() {
	case "up", "k":
		if a.diceCursor > 0 {
			a.diceCursor--
			a.refresh()
		}
	case "down", "j":
		if a.diceCursor < len(dice.Counts())-1 {
			a.diceCursor++
			a.refresh()
		}
	case "left", "h":
		if a.throwCursor > 0 {
			a.throwCursor--
		}
	case "right", "l":
		if a.throwCursor < len(ThrowOptions)-1 {
			a.throwCursor++
		}
	case "enter", " ":
		a.running, a.err, a.status = true, nil, ""
		ch := a.session.GenerateAsync(a.selectedThrows(), a.selectedDice())
		return a, tea.Batch(waitForCompletion(ch), tick())
	case "tab":
		a.showReport = !a.showReport
	case "c":
		a.session.Clear()
		a.status, a.err = "session cleared", nil
		a.refresh()
	case "e":
		if err := a.exporter.Export(a.session, a.exportPath); err != nil {
			a.err = err
		} else {
			a.status, a.err = "exported to "+a.exportPath, nil
		}
	case "t":
		a.theme = NextTheme(a.theme.Name)
		a.styles = NewStyles(a.theme)
	}
	return a, nil
}

// refresh rebuilds the cached report. It must not run while a generation
// is in flight.
func (a *App) refresh() {
	c := a.selectedDice()
	a.report, _ = analysis.Analyze(a.session, c)

	history := a.session.History(c)
	a.trend = make([]float64, 0, len(history))
	for _, b := range history {
		sixes := 0
		for _, t := range b.Throws {
			sixes += t.Sixes
		}
		a.trend = append(a.trend, float64(sixes)/float64(b.ThrowCount()*int(c)))
	}
}

func (a App) View() string {
	s := a.styles
	var b strings.Builder

	b.WriteString("\n  " + s.Title.Render("DICESIM") + "  " + s.Subtle.Render("six-sided dice probability simulator") + "\n")
	b.WriteString("  " + s.Subtle.Render(strings.Repeat("─", 40)) + "\n\n")

	for i, c := range dice.Counts() {
		if i == a.diceCursor {
			b.WriteString("  " + s.Cursor.Render("▸") + " " + s.Selected.Render(fmt.Sprintf("%-8s", c)))
		} else {
			b.WriteString("    " + s.Subtle.Render(fmt.Sprintf("%-8s", c)))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n  " + s.Label.Render("throws ") + s.Value.Render(fmt.Sprintf("%d", a.selectedThrows())) + "\n\n")

	switch {
	case a.running:
		b.WriteString("  " + s.Warn.Render(AnimatedSpinner(a.frame)) + " generating...\n")
	case a.err != nil:
		b.WriteString("  " + s.Bad.Render("error: "+a.err.Error()) + "\n")
	case a.status != "":
		b.WriteString("  " + s.Good.Render(a.status) + "\n")
	}
	b.WriteString("\n")

	if a.report != nil && !a.running {
		if a.showReport {
			b.WriteString(a.report.String())
		} else {
			b.WriteString(a.summaryView())
		}
	} else if !a.running {
		b.WriteString("  " + s.Subtle.Render("no data for "+a.selectedDice().String()) + "\n")
	}

	b.WriteString("\n  " + a.keyHints() + "\n")
	return b.String()
}

func (a App) summaryView() string {
	s, r := a.styles, a.report
	var b strings.Builder

	width := max(a.width-20, 20)
	b.WriteString(Chart(r, ChartOptions{Width: width, Height: 8}) + "\n\n")

	for _, bk := range r.Buckets {
		b.WriteString(fmt.Sprintf("  %-10s %s %s\n", bk.Label, ProgressBar(bk.Experimental, 30), s.Value.Render(fmt.Sprintf("%.4f", bk.Experimental))))
	}
	b.WriteString("\n  " + s.Label.Render(r.Headline.Name+" ") +
		s.Value.Render(fmt.Sprintf("%.4f", r.Headline.Experimental)) +
		s.Subtle.Render(fmt.Sprintf(" vs %.4f", r.Headline.Theoretical)))
	if r.Convergence != nil {
		b.WriteString("  " + a.styles.Rating(r.Convergence.Rating))
	}
	b.WriteString("\n  " + s.Label.Render("six rate per batch ") + SparklineChart(a.trend, 30) + "\n")
	return b.String()
}

func (a App) keyHints() string {
	s := a.styles
	hints := []struct{ key, desc string }{
		{"j/k", "dice"}, {"h/l", "throws"}, {"enter", "run"}, {"tab", "report"},
		{"c", "clear"}, {"e", "export"}, {"t", "theme"}, {"q", "quit"},
	}
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = s.Key.Render(h.key) + s.Subtle.Render(" "+h.desc)
	}
	return strings.Join(parts, "  ")
}

func RunApp(session *sim.Session, opts AppOptions) error {
	_, err := tea.NewProgram(NewApp(session, opts), tea.WithAltScreen()).Run()
	return err
}
