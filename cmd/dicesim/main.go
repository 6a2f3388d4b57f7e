package main

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/dicesim/internal/analysis"
	"github.com/san-kum/dicesim/internal/config"
	"github.com/san-kum/dicesim/internal/dice"
	"github.com/san-kum/dicesim/internal/experiment"
	"github.com/san-kum/dicesim/internal/export"
	"github.com/san-kum/dicesim/internal/sim"
	"github.com/san-kum/dicesim/internal/storage"
	"github.com/san-kum/dicesim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	debug      bool

	seed       int64
	strategy   string
	workers    int
	diceCount  int
	throws     int
	exportPath string
	theme      string
	save       bool

	outPath string
	svgPath string

	sweepStart  int
	sweepPoints int

	logger *slog.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dicesim",
		Short: "six-sided dice probability simulator",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = newLogger(debug)
		},
		RunE: runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".dicesim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging")
	addSessionFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "generate throws and print the analysis",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSessionFlags(runCmd)
	runCmd.Flags().StringVar(&exportPath, "export", "", "write results to this file (.json, .yaml)")
	runCmd.Flags().BoolVar(&save, "save", false, "save the session under the data directory")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved sessions",
		RunE:  listRuns,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "analysis report of a saved session",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot experimental vs theoretical distributions",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write one svg per scenario, suffixed with the dice count")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "write a saved session as json or yaml",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (.json, .yaml)")
	_ = exportCmd.MarkFlagRequired("out")

	inspectCmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "show the contents of an export file",
		Args:  cobra.ExactArgs(1),
		RunE:  inspectExport,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark generation strategies",
		RunE:  benchStrategies,
	}

	convergeCmd := &cobra.Command{
		Use:   "converge",
		Short: "track convergence as the sample grows",
		RunE:  runConverge,
	}
	addSessionFlags(convergeCmd)
	convergeCmd.Flags().IntVar(&sweepStart, "start", 100, "first checkpoint")
	convergeCmd.Flags().IntVar(&sweepPoints, "points", 12, "number of checkpoints")
	convergeCmd.Flags().StringVar(&svgPath, "svg", "", "also write the deviation curve as svg")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDICE\tTHROWS\tSTRATEGY")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", name, p.Dice, p.Throws, p.Strategy)
			}
			return w.Flush()
		},
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal simulator",
		RunE:  runTUI,
	}
	addSessionFlags(tuiCmd)

	rootCmd.AddCommand(runCmd, listCmd, analyzeCmd, plotCmd, exportCmd, inspectCmd, benchCmd, convergeCmd, scenarioCmd, presetsCmd, tuiCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (unset uses system entropy)")
	cmd.Flags().StringVar(&strategy, "strategy", config.DefaultStrategy, "generation strategy (bulk, loop)")
	cmd.Flags().IntVar(&workers, "workers", 0, "bulk workers (0 uses GOMAXPROCS)")
	cmd.Flags().IntVar(&diceCount, "dice", config.DefaultDice, "dice per throw (1, 2 or 3)")
	cmd.Flags().IntVarP(&throws, "throws", "n", config.DefaultThrows, "number of throws")
	cmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "tui theme")
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(l)
	return l
}

// resolveConfig layers preset, config file, environment and changed flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	var base *config.Config
	if preset != "" {
		base = config.GetPreset(preset)
		if base == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	cfg, err := config.Resolve(base, configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		s := seed
		cfg.Seed = &s
	}
	if flags.Changed("strategy") {
		cfg.Strategy = strategy
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("dice") {
		cfg.Dice = diceCount
	}
	if flags.Changed("throws") {
		cfg.Throws = throws
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if f := flags.Lookup("export"); f != nil && f.Changed {
		cfg.Export = exportPath
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSession(cfg *config.Config) (*sim.Session, error) {
	registry := experiment.NewRegistry()
	exp := experiment.New(experiment.Config{
		Strategy: cfg.Strategy,
		Workers:  cfg.Workers,
		Seed:     cfg.Seed,
		Logger:   logger,
	})
	if err := exp.Setup(registry, registry.DefaultMetrics()); err != nil {
		return nil, err
	}
	return exp.Session(), nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	count, _ := cfg.DiceCount()

	session, err := newSession(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	batch, err := session.Generate(cfg.Throws, count)
	if err != nil {
		return err
	}
	fmt.Printf("generated %d throws of %s in %v (run %s)\n\n", batch.ThrowCount(), count, time.Since(start).Round(time.Millisecond), batch.ID)

	fmt.Print(analysis.Summary(session))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	values := session.Metrics()
	for _, name := range slices.Sorted(maps.Keys(values)) {
		fmt.Fprintf(w, "%s\t%.6f\n", name, values[name])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if cmd.Flags().Changed("export") {
		exporter := storage.NewExporter(&storage.Config{Logger: logger})
		if err := exporter.Export(session, cfg.Export); err != nil {
			return err
		}
		fmt.Printf("\nexported to %s\n", cfg.Export)
	}

	if save {
		st := storage.New(dataDir, storage.NewExporter(&storage.Config{Logger: logger}))
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(session)
		if err != nil {
			return err
		}
		fmt.Printf("\nsaved run: %s\n", runID)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, nil)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\t1 DIE\t2 DICE\t3 DICE\tBATCHES\tSEED")
	for _, run := range runs {
		d := run.Data
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			run.ID,
			d.ExportedAt.Format("2006-01-02 15:04:05"),
			d.Totals[storage.Key(dice.One)],
			d.Totals[storage.Key(dice.Two)],
			d.Totals[storage.Key(dice.Three)],
			len(d.RunLog),
			formatSeed(d.Seed),
		)
	}
	return w.Flush()
}

// savedSource serves a stored session to the analysis package. Detailed
// history is not stored, so face breakdowns are unavailable.
type savedSource map[dice.Count][]int

func (s savedSource) Outcomes(c dice.Count) []int           { return s[c] }
func (s savedSource) History(c dice.Count) []*sim.RollBatch { return nil }

func loadSaved(runID string) (savedSource, error) {
	outcomes, err := storage.New(dataDir, nil).LoadOutcomes(runID)
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", runID, err)
	}
	return savedSource(outcomes), nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	src, err := loadSaved(args[0])
	if err != nil {
		return err
	}
	fmt.Print(analysis.Summary(src))
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	src, err := loadSaved(args[0])
	if err != nil {
		return err
	}

	plotted := false
	for _, c := range dice.Counts() {
		r, ok := analysis.Analyze(src, c)
		if !ok {
			continue
		}
		plotted = true
		fmt.Println(viz.Chart(r, viz.ChartOptions{Width: 80, Height: 12}))
		fmt.Println()

		if svgPath != "" {
			path := strings.TrimSuffix(svgPath, ".svg") + "_" + storage.Key(c) + ".svg"
			if err := export.WriteSVG(path, export.DistributionSVG(r, 640, 320)); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n\n", path)
		}
	}
	if !plotted {
		fmt.Println("run holds no outcomes")
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	data, err := storage.New(dataDir, nil).Load(args[0])
	if err != nil {
		return err
	}
	if err := storage.WriteExport(data, outPath); err != nil {
		return err
	}
	fmt.Printf("exported %s to %s\n", args[0], outPath)
	return nil
}

func inspectExport(cmd *cobra.Command, args []string) error {
	data, err := storage.ReadExport(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("exported at %s, seed %s\n\n", data.ExportedAt.Format(time.RFC3339), formatSeed(data.Seed))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO\tTOTAL\tEXPORTED")
	for _, c := range dice.Counts() {
		k := storage.Key(c)
		fmt.Fprintf(w, "%s\t%d\t%d\n", c, data.Totals[k], len(data.Outcomes[k]))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "ID\tTIME\tDICE\tTHROWS\tSEED")
	for _, e := range data.RunLog {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", e.ID, e.Timestamp.Format("15:04:05.000"), int(e.Dice), e.Throws, formatSeed(e.Seed))
	}
	return w.Flush()
}

func benchStrategies(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()
	sizes := []int{10000, 100000, 1000000}

	fmt.Println("benchmarking strategies")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STRATEGY\tDICE\tTHROWS\tTIME\tTHROWS/SEC")

	benchSeed := int64(42)
	for _, name := range registry.ListStrategies() {
		for _, c := range dice.Counts() {
			for _, n := range sizes {
				s, err := registry.GetStrategy(name, &benchSeed, 0)
				if err != nil {
					return err
				}
				session := sim.New(&sim.Config{Strategy: s, Logger: logger})

				start := time.Now()
				if _, err := session.Generate(n, c); err != nil {
					return err
				}
				elapsed := time.Since(start)

				fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%.0f\n",
					name, int(c), n, elapsed.Round(time.Microsecond), float64(n)/elapsed.Seconds())
			}
		}
	}
	return w.Flush()
}

func runConverge(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	count, _ := cfg.DiceCount()

	sweep := &experiment.Sweep{
		Dice:     count,
		Start:    sweepStart,
		Stop:     cfg.Throws,
		Points:   sweepPoints,
		Strategy: cfg.Strategy,
		Seed:     cfg.Seed,
	}
	points, err := experiment.RunSweep(context.Background(), sweep, experiment.NewRegistry())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "THROWS\tEXPERIMENTAL\tTHEORETICAL\tDEVIATION\tRATING")
	for _, p := range points {
		fmt.Fprintf(w, "%d\t%.5f\t%.5f\t%.2f%%\t%s\n",
			p.Throws, p.Experimental, p.Theoretical, p.Relative*100,
			analysis.Classify(p.Experimental, p.Theoretical).Rating)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(viz.ConvergenceChart(points, viz.ChartOptions{Width: 80, Height: 10}))

	if svgPath != "" {
		if err := export.WriteSVG(svgPath, export.ConvergenceSVG(points, 640, 240)); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := experiment.LoadScenario(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("scenario %s: %d steps\n", sc.Name, len(sc.Steps))
	session, results, err := experiment.RunScenario(context.Background(), sc, experiment.NewRegistry(), logger)
	if err != nil {
		return err
	}

	for _, r := range results {
		n := 0
		for _, b := range r.Batches {
			n += b.ThrowCount()
		}
		fmt.Printf("  step %d: %d throws of %s\n", r.Step, n, r.Dice)
	}
	fmt.Println()
	fmt.Print(analysis.Summary(session))
	if sc.Export != "" {
		fmt.Printf("exported to %s\n", sc.Export)
	}
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	count, _ := cfg.DiceCount()

	session, err := newSession(cfg)
	if err != nil {
		return err
	}

	return viz.RunApp(session, viz.AppOptions{
		Dice:       count,
		Throws:     cfg.Throws,
		Theme:      cfg.Theme,
		ExportPath: cfg.Export,
		Exporter:   storage.NewExporter(&storage.Config{Logger: logger}),
	})
}

func formatSeed(seed *int64) string {
	if seed == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *seed)
}
