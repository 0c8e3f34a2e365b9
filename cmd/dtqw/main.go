package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/dtqw/internal/analysis"
	"github.com/san-kum/dtqw/internal/automation"
	"github.com/san-kum/dtqw/internal/config"
	"github.com/san-kum/dtqw/internal/experiment"
	"github.com/san-kum/dtqw/internal/export"
	"github.com/san-kum/dtqw/internal/logger"
	"github.com/san-kum/dtqw/internal/optim"
	"github.com/san-kum/dtqw/internal/storage"
	"github.com/san-kum/dtqw/internal/sweep"
	"github.com/san-kum/dtqw/internal/tui"
	"github.com/san-kum/dtqw/internal/viz"
	"github.com/san-kum/dtqw/internal/walk"
)

var (
	dataDir   string
	logLevel  string
	logPretty bool
	log       zerolog.Logger
	env       config.Environment

	// walk parameters
	halfWidth  int
	steps      int
	theta      float64
	xi         float64
	zeta       float64
	phi        float64
	phase      float64
	boundary   string
	strategy   string
	matrixFree bool
	tolerance  float64
	coinName   string

	configFile string
	preset     string
	timeout    time.Duration
	noSave     bool
	watch      bool
	frameRate  int

	plotHeight int
	plotWidth  int
	outFile    string

	filterBoundary string
	filterStrategy string
	limit          int

	sweepFrom       int
	sweepTo         int
	sweepStride     int
	sweepStrategies []string
	workers         int
	writePreset     string
	svgFile         string
	svgWidth        int
	svgHeight       int

	gridRanges   []string
	searchMetric string
	maximize     bool
)

func main() {
	env = config.LoadEnvironment()

	rootCmd := &cobra.Command{
		Use:   "dtqw",
		Short: "discrete-time quantum walk simulator",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log = logger.New(logger.Config{Level: logLevel, Pretty: logPretty})
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", env.DataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", env.LogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logPretty, "log-pretty", env.LogPretty, "human-readable logs")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a walk and save it",
		Args:  cobra.NoArgs,
		RunE:  runWalk,
	}
	addWalkFlags(runCmd)
	runCmd.Flags().DurationVar(&timeout, "timeout", 0, "abandon the run after this long (0 = no limit)")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the run")
	runCmd.Flags().BoolVar(&watch, "watch", false, "print the distribution while walking")
	runCmd.Flags().IntVar(&frameRate, "fps", 20, "frame rate for --watch")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}
	listCmd.Flags().StringVar(&filterBoundary, "boundary", "", "only runs with this boundary")
	listCmd.Flags().StringVar(&filterStrategy, "strategy", "", "only runs with this strategy")
	listCmd.Flags().IntVar(&limit, "limit", 0, "maximum number of runs")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the distribution of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	addPlotFlags(plotCmd)
	plotCmd.Flags().StringVar(&svgFile, "svg", "", "also write the braille plot to this svg file")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run's distribution to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "statistics and momentum spectrum of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	addPlotFlags(analyzeCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [run_id] [run_id]",
		Short: "compare the distributions of two runs",
		Args:  cobra.ExactArgs(2),
		RunE:  compareRuns,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "time operator construction and evolution over N",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addWalkFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&sweepFrom, "from", 1, "smallest N")
	sweepCmd.Flags().IntVar(&sweepTo, "to", 40, "largest N")
	sweepCmd.Flags().IntVar(&sweepStride, "stride", 1, "N increment")
	sweepCmd.Flags().StringSliceVar(&sweepStrategies, "strategies", []string{"iterative", "power"}, "strategies to time")
	sweepCmd.Flags().IntVar(&workers, "workers", env.Workers, "parallel runs (0 = GOMAXPROCS, 1 for clean timings)")
	sweepCmd.Flags().DurationVar(&timeout, "timeout", 0, "skip runs not started within this long (0 = no limit)")
	sweepCmd.Flags().StringVar(&svgFile, "svg", "", "also write total time vs N to this svg file")
	addPlotFlags(sweepCmd)

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a run's distribution as an SVG bar chart",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 300, "image height")

	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "grid search coin and initial-state angles for a metric",
		Args:  cobra.NoArgs,
		RunE:  runSearch,
	}
	addWalkFlags(searchCmd)
	searchCmd.Flags().DurationVar(&timeout, "timeout", 0, "abandon the search after this long (0 = no limit)")
	searchCmd.Flags().StringArrayVar(&gridRanges, "grid", nil, "name=lo:hi:count (theta, xi, zeta, phi, phase), repeatable")
	searchCmd.Flags().StringVar(&searchMetric, "metric", "spread", "metric to optimize")
	searchCmd.Flags().BoolVar(&maximize, "maximize", false, "maximize instead of minimize")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}
	presetsCmd.Flags().StringVar(&writePreset, "write", "", "write the preset named by --preset to this yaml file")
	presetsCmd.Flags().StringVar(&preset, "preset", "", "preset to write")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run the walks listed in a scenario yaml",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "step a walk live in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addWalkFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 20, "steps per second")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, analyzeCmd, compareCmd, sweepCmd, searchCmd, scenarioCmd, presetsCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addWalkFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	f := cmd.Flags()
	f.IntVar(&halfWidth, "n", def.N, "lattice half-width N (positions -N..N)")
	f.IntVar(&steps, "steps", def.Steps, "number of steps")
	f.Float64Var(&theta, "theta", def.Coin.Theta, "coin angle θ in radians")
	f.Float64Var(&xi, "xi", def.Coin.Xi, "coin phase ξ in radians")
	f.Float64Var(&zeta, "zeta", def.Coin.Zeta, "coin phase ζ in radians")
	f.Float64Var(&phi, "phi", def.Init.Phi, "initial coin angle φ in radians")
	f.Float64Var(&phase, "phase", def.Init.Phase, "relative phase of the |1⟩ component")
	f.StringVar(&boundary, "boundary", def.Boundary, "cyclic, reflecting or absorbing")
	f.StringVar(&strategy, "strategy", def.Strategy, "iterative or power")
	f.BoolVar(&matrixFree, "matrix-free", false, "step with the factored operator")
	f.Float64Var(&tolerance, "tolerance", def.Tolerance, "normalization tolerance")
	f.StringVar(&coinName, "coin", "", "named coin (overrides θ, ξ, ζ)")
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
}

func addPlotFlags(cmd *cobra.Command) {
	def := viz.DefaultPlotOptions()
	cmd.Flags().IntVar(&plotHeight, "height", def.Height, "plot height")
	cmd.Flags().IntVar(&plotWidth, "width", def.Width, "plot width")
}

func plotOptions(caption string) viz.PlotOptions {
	return viz.PlotOptions{Height: plotHeight, Width: plotWidth, Caption: caption}
}

// resolveConfig layers preset, config file, environment and explicit flags,
// in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	cfg.ApplyEnv()

	flags := cmd.Flags()
	if flags.Changed("n") {
		cfg.N = halfWidth
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if coinName != "" {
		c, err := experiment.NewRegistry().GetCoin(coinName)
		if err != nil {
			return nil, err
		}
		cfg.Coin = config.CoinConfig{Theta: c.Theta, Xi: c.Xi, Zeta: c.Zeta}
	}
	if flags.Changed("theta") {
		cfg.Coin.Theta = theta
	}
	if flags.Changed("xi") {
		cfg.Coin.Xi = xi
	}
	if flags.Changed("zeta") {
		cfg.Coin.Zeta = zeta
	}
	if flags.Changed("phi") {
		cfg.Init.Phi = phi
	}
	if flags.Changed("phase") {
		cfg.Init.Phase = phase
	}
	if flags.Changed("boundary") {
		cfg.Boundary = boundary
	}
	if flags.Changed("strategy") {
		cfg.Strategy = strategy
	}
	if flags.Changed("matrix-free") {
		cfg.MatrixFree = matrixFree
	}
	if flags.Changed("tolerance") {
		cfg.Tolerance = tolerance
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openStore() (*storage.Store, error) {
	st := storage.New(dataDir, log)
	if err := st.Init(); err != nil {
		return nil, err
	}
	return st, nil
}

func runWalk(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}
	ms := experiment.NewRegistry().DefaultMetrics()
	if watch {
		r := tui.NewLiveRenderer(os.Stdout, fmt.Sprintf("N=%d %s", cfg.N, cfg.Boundary), frameRate)
		r.Start()
		defer r.Stop()
		exp.Setup(ms, r)
	} else {
		exp.Setup(ms)
	}

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	log.Info().
		Int("n", cfg.N).
		Int("steps", cfg.Steps).
		Str("boundary", cfg.Boundary).
		Str("strategy", cfg.Strategy).
		Msg("running walk")

	res, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	if res.Drift != nil {
		log.Warn().Err(res.Drift).Msg("probability not conserved")
	}

	fmt.Printf("completed in %v\n", res.Elapsed)
	fmt.Println(viz.RenderSummary(fmt.Sprintf("N=%d, %d steps", cfg.N, res.Outcome.StepsTaken), res.Summary))

	fmt.Println("metrics:")
	for _, name := range experiment.NewRegistry().ListMetrics() {
		fmt.Printf("  %-20s %.6g\n", name, res.Metrics[name])
	}

	if noSave {
		return nil
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	runID, err := st.Save(res)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tN\tSTEPS\tBOUNDARY\tSTRATEGY\tTOTAL\tTIMESTAMP")

	if filterBoundary != "" || filterStrategy != "" || limit > 0 {
		entries, err := st.Find(storage.Filter{Boundary: filterBoundary, Strategy: filterStrategy, Limit: limit})
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%.6f\t%s\n",
				e.ID, e.N, e.Steps, e.Boundary, e.Strategy, e.Total, e.Timestamp.Format(time.RFC3339))
		}
		return w.Flush()
	}

	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%.6f\t%s\n",
			r.ID, r.N, r.StepsTaken, r.Boundary, r.Strategy, r.Summary.Total, r.Timestamp.Format(time.RFC3339))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	d, err := st.LoadDistribution(args[0])
	if err != nil {
		return err
	}

	caption := fmt.Sprintf("%s: P(x) after %d steps, x in [%d, %d]", meta.ID, meta.StepsTaken, -meta.N, meta.N)
	fmt.Println(viz.PlotDistribution(d, plotOptions(caption)))

	if svgFile != "" {
		svg := export.DistributionDotsSVG(d, plotWidth, plotHeight, 4, "#00ff88")
		if err := os.WriteFile(svgFile, []byte(svg), 0644); err != nil {
			return err
		}
		log.Info().Str("file", svgFile).Msg("wrote distribution plot")
	}
	return nil
}

func output() (*os.File, func(), error) {
	if outFile == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	f, done, err := output()
	if err != nil {
		return err
	}
	defer done()
	return st.ExportJSON(f, args[0])
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	f, done, err := output()
	if err != nil {
		return err
	}
	defer done()
	return st.ExportCSV(f, args[0])
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	d, err := st.LoadDistribution(args[0])
	if err != nil {
		return err
	}
	s, err := st.LoadState(args[0])
	if err != nil {
		return err
	}

	fmt.Println(viz.RenderSummary(meta.ID, analysis.Summarize(d, meta.StepsTaken)))
	if meta.Drift != "" {
		fmt.Println(viz.WarningStyle.Render(meta.Drift))
	}

	spectrum, err := analysis.MomentumSpectrum(s)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(viz.PlotSeries(spectrum, plotOptions("momentum spectrum, k = 2πj/P")))
	return nil
}

func compareRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	var dists [2]walk.Distribution
	for i, id := range args {
		meta, err := st.Load(id)
		if err != nil {
			return err
		}
		d, err := st.LoadDistribution(id)
		if err != nil {
			return err
		}
		dists[i] = d
		fmt.Println(viz.RenderSummary(id, analysis.Summarize(d, meta.StepsTaken)))
	}

	tv, err := analysis.TotalVariation(dists[0], dists[1])
	if err != nil {
		return err
	}
	fmt.Printf("total variation distance: %.6g\n", tv)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	base, err := cfg.Params()
	if err != nil {
		return err
	}
	if sweepStride <= 0 || sweepFrom < 0 || sweepTo < sweepFrom {
		return fmt.Errorf("invalid sweep range %d..%d stride %d", sweepFrom, sweepTo, sweepStride)
	}

	var ns []int
	for n := sweepFrom; n <= sweepTo; n += sweepStride {
		ns = append(ns, n)
	}

	var strategies []walk.Strategy
	for _, name := range sweepStrategies {
		s, err := walk.ParseStrategy(name)
		if err != nil {
			return err
		}
		strategies = append(strategies, s)
	}

	sc := sweep.Scaling{Base: base, Ns: ns, Strategies: strategies}
	if cmd.Flags().Changed("steps") {
		fixed := cfg.Steps
		sc.StepsFor = func(int) int { return fixed }
	}

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	points, err := sweep.New(workers, log).Scaling(ctx, sc)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "N\tSTEPS\tSTRATEGY\tBUILD\tEVOLVE\tTOTAL")
	series := make(map[string][]float64)
	for _, pt := range points {
		fmt.Fprintf(w, "%d\t%d\t%s\t%v\t%v\t%.12f\n", pt.N, pt.Steps, pt.Strategy, pt.Build, pt.Evolve, pt.Total)
		series[pt.Strategy] = append(series[pt.Strategy], (pt.Build+pt.Evolve).Seconds()*1000)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for _, s := range strategies {
		data := series[s.String()]
		if len(data) < 2 {
			continue
		}
		fmt.Println()
		fmt.Println(viz.PlotSeries(data, plotOptions(fmt.Sprintf("%s: time (ms) vs N", s))))
	}

	if svgFile != "" {
		var pts []export.Point
		for _, pt := range points {
			if pt.Strategy == strategies[0].String() {
				pts = append(pts, export.Point{X: float64(pt.N), Y: (pt.Build + pt.Evolve).Seconds() * 1000})
			}
		}
		if err := os.WriteFile(svgFile, []byte(export.SeriesToSVG(pts, 800, 400, "#00ccff")), 0644); err != nil {
			return err
		}
		log.Info().Str("file", svgFile).Str("strategy", strategies[0].String()).Msg("wrote timing plot")
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	d, err := st.LoadDistribution(args[0])
	if err != nil {
		return err
	}

	f, done, err := output()
	if err != nil {
		return err
	}
	defer done()
	_, err = fmt.Fprintln(f, export.DistributionToSVG(d, svgWidth, svgHeight, "#00ff88"))
	return err
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if len(gridRanges) == 0 {
		return fmt.Errorf("at least one --grid is required")
	}

	var (
		names  []string
		ranges [][]float64
		points = 1
	)
	for _, g := range gridRanges {
		name, vals, err := optim.ParseRange(g)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, vals)
		points *= len(vals)
	}

	gs, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	log.Info().Strs("params", names).Int("points", points).Str("metric", searchMetric).Msg("grid search")
	best, err := gs.Search(ctx, cfg, searchMetric, maximize)
	if err != nil {
		return err
	}

	fmt.Printf("best %s: %.6g (%d evaluations)\n", searchMetric, best.Value, best.Evals)
	for _, name := range names {
		fmt.Printf("  %-6s %.6f\n", name, best.Params[name])
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	results, err := automation.RunScenario(context.Background(), sc, st, log)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tN\tSTEPS\tBOUNDARY\tSTD DEV\tTOTAL\tRUN ID")
	for _, r := range results {
		out := r.Result.Outcome
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%.4f\t%.12f\t%s\n",
			r.Name, out.Params.N, out.StepsTaken, out.Params.Boundary, r.Result.Summary.StdDev, r.Result.Summary.Total, r.RunID)
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

func listPresets(cmd *cobra.Command, args []string) error {
	if writePreset != "" {
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %q (available: %v)", preset, config.ListPresets())
		}
		if err := config.Save(writePreset, cfg); err != nil {
			return err
		}
		fmt.Printf("wrote %s to %s\n", preset, writePreset)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tN\tSTEPS\tBOUNDARY\tSTRATEGY\tTHETA\tPHI\tPHASE")
	for _, name := range config.ListPresets() {
		c := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%.4f\t%.4f\t%.4f\n",
			name, c.N, c.Steps, c.Boundary, c.Strategy, c.Coin.Theta, c.Init.Phi, c.Init.Phase)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	var m tea.Model
	if preset == "" && configFile == "" && !anyChanged(cmd, "n", "steps", "theta", "xi", "zeta", "phi", "phase", "boundary", "coin") {
		m = viz.NewApp(frameRate)
	} else {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		title := preset
		if title == "" {
			title = fmt.Sprintf("N=%d %s", cfg.N, cfg.Boundary)
		}
		live, err := viz.ModelFromConfig(title, cfg)
		if err != nil {
			return err
		}
		m = live.WithFPS(frameRate)
	}

	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func anyChanged(cmd *cobra.Command, names ...string) bool {
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}
