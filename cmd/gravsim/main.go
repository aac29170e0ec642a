package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravsim/internal/analysis"
	"github.com/san-kum/gravsim/internal/automation"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/experiment"
	"github.com/san-kum/gravsim/internal/export"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/storage"
	"github.com/san-kum/gravsim/internal/viz"
)

var (
	dataDir    string
	logLevel   string
	configFile string
	preset     string
	ticks      int
	every      int
	stepScale  float64
	gravity    float64
	separation string
	metricSet  []string
	// live view
	frameRate int
	theme     string
	// export
	outFile  string
	snapshot bool
	braille  bool
	width    int
	height   int
	// analysis
	plotBody   int
	body       int
	component  string
	stepScales []float64
	perturb    float64
	// automation
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	trials     int
	offset     float64
	seed       uint64

	logger *log.Logger
	env    config.Env
)

// main registers commands and flags, opens the scenario picker when no
// subcommand is given, and exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:               "gravsim",
		Short:             "n-body gravity sandbox",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE:              runPicker,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gravsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a scenario and store the result",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	scenarioFlags(runCmd)
	runCmd.Flags().IntVar(&every, "every", 1, "record one frame every n ticks")
	runCmd.Flags().StringSliceVar(&metricSet, "metrics", nil, "metrics to collect (default all)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a scenario with live visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	scenarioFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 0, "target frame rate: 15, 30 or 60 (default from scenario)")
	liveCmd.Flags().StringVar(&theme, "theme", "void", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot body coordinates of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotBody, "body", -1, "only plot this body")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run states as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export run trajectories, or a scenario snapshot, as svg",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	scenarioFlags(exportSVGCmd)
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().BoolVar(&snapshot, "snapshot", false, "render the scenario after --ticks instead of a stored run")
	exportSVGCmd.Flags().BoolVar(&braille, "braille", false, "with --snapshot, render the braille canvas")
	exportSVGCmd.Flags().IntVar(&width, "width", 800, "svg width for trajectories")
	exportSVGCmd.Flags().IntVar(&height, "height", 600, "svg height for trajectories")

	presetsCmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "list presets, or print one as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a scenario file to edit",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	initConfigCmd.Flags().StringVar(&preset, "preset", "", "preset to start from (default binary)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure tick throughput of a scenario",
		Args:  cobra.NoArgs,
		RunE:  benchScenario,
	}
	scenarioFlags(benchCmd)

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "run a scenario at several step scales concurrently",
		Args:  cobra.NoArgs,
		RunE:  compareStepScales,
	}
	scenarioFlags(compareCmd)
	compareCmd.Flags().Float64SliceVar(&stepScales, "step-scales", []float64{0.25, 0.5, 1}, "step scales to compare")
	compareCmd.Flags().Float64Var(&perturb, "perturb", 1e-6, "initial perturbation for the divergence estimate")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "orbital period and apsides of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&body, "body", 1, "body to analyze")
	analyzeCmd.Flags().StringVar(&component, "component", "x", "series to analyze (x, y, vx, vy)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep gravity or step scale over a range",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	scenarioFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "gravity", "parameter to sweep (gravity, step_scale)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.5, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 2, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 4, "number of values")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "run randomly perturbed copies of a scenario",
		Args:  cobra.NoArgs,
		RunE:  runMonteCarlo,
	}
	scenarioFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")
	monteCarloCmd.Flags().Float64Var(&offset, "perturb", 5, "maximum position offset per axis")
	monteCarloCmd.Flags().Uint64Var(&seed, "seed", 1, "random seed")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, presetsCmd, initConfigCmd, benchCmd, compareCmd, analyzeCmd, sweepCmd, monteCarloCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func scenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset scenario ("+strings.Join(config.ListPresets(), ", ")+")")
	cmd.Flags().IntVar(&ticks, "ticks", 0, "number of ticks (default from scenario)")
	cmd.Flags().Float64Var(&stepScale, "step-scale", 0, "simulated time per tick (default from scenario)")
	cmd.Flags().Float64Var(&gravity, "gravity", 0, "attraction constant (default from scenario)")
	cmd.Flags().StringVar(&separation, "separation", "", "contact separation: first or both")
}

// setup loads .env, then builds the logger. Flags win over the environment.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	env, err = config.LoadEnv()
	if err != nil {
		return err
	}
	if env.DataDir != "" && !cmd.Flags().Changed("data") {
		dataDir = env.DataDir
	}
	if env.LogLevel != "" && !cmd.Flags().Changed("log-level") {
		logLevel = env.LogLevel
	}

	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
	return nil
}

// loadScenario resolves --config, then --preset, then the binary preset, and
// applies the environment and any explicit flag overrides.
func loadScenario(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	default:
		cfg = config.GetPreset("binary")
	}

	env.Apply(cfg)

	flags := cmd.Flags()
	if flags.Changed("ticks") {
		cfg.Ticks = ticks
	}
	if flags.Changed("step-scale") {
		cfg.StepScale = stepScale
	}
	if flags.Changed("gravity") {
		cfg.Gravity = gravity
	}
	if flags.Changed("separation") {
		cfg.Separation = separation
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("scenario loaded", "name", cfg.Name, "bodies", len(cfg.Bodies), "ticks", cfg.Ticks)
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir, logger)
	if err := st.Init(); err != nil {
		return err
	}

	ms, err := experiment.NewRegistry().Metrics(metricSet, cfg)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg, experiment.Options{Every: every}, logger)
	if err := exp.Setup(ms...); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}

	runID, err := st.Save(exp.Metadata(), result)
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	for _, m := range ms {
		fmt.Printf("  %s: %.6f\n", m.Name(), result.Metrics[m.Name()])
	}
	return nil
}

func liveModel(cfg *config.Config, fps int) (viz.Model, error) {
	target, err := viz.ParseFPS(fps)
	if err != nil {
		return viz.Model{}, err
	}
	specs, err := cfg.Specs()
	if err != nil {
		return viz.Model{}, err
	}
	m, err := viz.NewModel(cfg.Name, specs, cfg.Viewport, target, cfg.Options()...)
	if err != nil {
		return viz.Model{}, err
	}
	return m.WithTheme(theme), nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	fps := cfg.FPS
	if frameRate != 0 {
		fps = frameRate
	}

	m, err := liveModel(cfg, fps)
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func runPicker(cmd *cobra.Command, args []string) error {
	launch := func(name string) (viz.Model, error) {
		cfg := config.GetPreset(name)
		env.Apply(cfg)
		return liveModel(cfg, cfg.FPS)
	}
	_, err := tea.NewProgram(viz.NewPicker(config.ListPresets(), launch), tea.WithAltScreen()).Run()
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, logger)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tBODIES\tTICKS\tSTEP\tDRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.3g\t%.2e\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			len(run.Bodies),
			run.Ticks,
			run.StepScale,
			run.EnergyDrift,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []sim.Frame, error) {
	st := storage.New(dataDir, logger)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(frames) == 0 {
		return nil, nil, fmt.Errorf("run %s has no frames", runID)
	}
	return meta, frames, nil
}

func bodyLabel(meta *storage.RunMetadata, i int) string {
	if i < len(meta.Bodies) && meta.Bodies[i].Name != "" {
		return meta.Bodies[i].Name
	}
	return fmt.Sprintf("body%d", i)
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Name)
	fmt.Printf("frames: %d\n\n", len(frames))

	n := len(frames[0].Positions)
	bodies := make([]int, 0, n)
	switch {
	case plotBody >= n:
		return fmt.Errorf("body %d out of range (run has %d)", plotBody, n)
	case plotBody >= 0:
		bodies = append(bodies, plotBody)
	default:
		for i := range min(n, 6) {
			bodies = append(bodies, i)
		}
	}

	for _, i := range bodies {
		xs := analysis.Series(frames, i, analysis.X)
		ys := analysis.Series(frames, i, analysis.Y)
		fmt.Println(viz.Plot(bodyLabel(meta, i)+" x (yellow), y (cyan)", 80, 10, xs, ys))
		fmt.Println()
	}

	if n >= 2 {
		fmt.Println(viz.Plot("separation "+bodyLabel(meta, 0)+"-"+bodyLabel(meta, 1), 80, 8, analysis.Separation(frames, 0, 1)))
	}
	return nil
}

// output returns stdout or the --out file.
func output() (io.WriteCloser, error) {
	if outFile == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(outFile)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func exportJSON(cmd *cobra.Command, args []string) error {
	out, err := output()
	if err != nil {
		return err
	}
	defer out.Close()
	return storage.New(dataDir, logger).ExportJSON(out, args[0])
}

func exportCSV(cmd *cobra.Command, args []string) error {
	out, err := output()
	if err != nil {
		return err
	}
	defer out.Close()
	return storage.New(dataDir, logger).ExportCSV(out, args[0])
}

func exportSVG(cmd *cobra.Command, args []string) error {
	var svg string
	switch {
	case snapshot:
		s, err := snapshotSVG(cmd)
		if err != nil {
			return err
		}
		svg = s
	case len(args) == 1:
		meta, frames, err := loadRun(args[0])
		if err != nil {
			return err
		}
		colors := make([]string, len(meta.Bodies))
		for i, b := range meta.Bodies {
			colors[i] = b.Color
		}
		svg = export.TrajectoryToSVG(frames, colors, width, height)
	default:
		return fmt.Errorf("need a run id or --snapshot")
	}

	out, err := output()
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.WriteString(out, svg+"\n")
	return err
}

func snapshotSVG(cmd *cobra.Command) (string, error) {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return "", err
	}

	if braille {
		m, err := liveModel(cfg, cfg.FPS)
		if err != nil {
			return "", err
		}
		for range cfg.Ticks {
			m.World().Step()
		}
		return export.CanvasToSVG(m.Canvas(), 4), nil
	}

	w, err := cfg.NewWorld()
	if err != nil {
		return "", err
	}
	for range cfg.Ticks {
		w.Step()
	}
	return export.SnapshotToSVG(w.Snapshot(), cfg.Viewport, export.DefaultBackground), nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		cfg := config.GetPreset(args[0])
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(cfg)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBODIES\tTICKS\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", name, len(p.Bodies), p.Ticks, viz.PresetInfo[name])
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	name := preset
	if name == "" {
		name = "binary"
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	logger.Info("wrote scenario", "path", args[0], "preset", name)
	return nil
}

func benchScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	w, err := cfg.NewWorld()
	if err != nil {
		return err
	}

	start := time.Now()
	for range cfg.Ticks {
		w.Step()
	}
	elapsed := time.Since(start)

	perTick := elapsed / time.Duration(cfg.Ticks)
	fmt.Printf("scenario: %s\n", cfg.Name)
	fmt.Printf("bodies: %d\n", w.Len())
	fmt.Printf("ticks: %d\n", cfg.Ticks)
	fmt.Printf("elapsed: %v\n", elapsed)
	fmt.Printf("per tick: %v\n", perTick)
	fmt.Printf("ticks/sec: %.0f\n", float64(cfg.Ticks)/elapsed.Seconds())
	return nil
}

func compareStepScales(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	if len(stepScales) == 0 {
		return fmt.Errorf("no step scales given")
	}

	specs, err := cfg.Specs()
	if err != nil {
		return err
	}

	worlds := make([]*sim.World, len(stepScales))
	options := make([][]sim.Option, len(stepScales))
	for i, dt := range stepScales {
		variant := *cfg
		variant.StepScale = dt
		options[i] = variant.Options()
		worlds[i], err = sim.New(specs, cfg.Viewport, options[i]...)
		if err != nil {
			return fmt.Errorf("step scale %g: %w", dt, err)
		}
	}

	ens := sim.NewEnsemble(worlds...).WithMetrics(func() []sim.Metric {
		return metrics.Defaults(cfg.GravityModel(), cfg.Viewport)
	})

	ctx, cancel := signalContext()
	defer cancel()

	logger.Info("comparing", "scenario", cfg.Name, "members", ens.Len(), "ticks", cfg.Ticks)
	results, err := ens.Run(ctx, sim.RunConfig{Ticks: cfg.Ticks, Every: cfg.Ticks, ValidateState: true})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tSIM TIME\tENERGY DRIFT\tMOMENTUM DRIFT\tCONTACTS\tDIVERGENCE\tSTATUS")
	for i, res := range results {
		status := "ok"
		if len(res.Errors) > 0 {
			status = res.Errors[0].Error()
		}
		rate, err := analysis.Divergence(specs, cfg.Viewport, options[i], perturb, cfg.Ticks)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%g\t%.1f\t%.2e\t%.2e\t%d\t%.4f\t%s\n",
			stepScales[i],
			float64(res.StepsTaken)*stepScales[i],
			res.Metrics["energy_drift"],
			res.Metrics["momentum_drift"],
			res.Contacts,
			rate,
			status,
		)
	}
	return w.Flush()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if body < 0 || body >= len(frames[0].Positions) {
		return fmt.Errorf("body %d out of range (run has %d)", body, len(frames[0].Positions))
	}
	comp, ok := analysis.ParseComponent(component)
	if !ok {
		return fmt.Errorf("unknown component %q (want x, y, vx or vy)", component)
	}

	dt := 1.0
	if len(frames) > 1 {
		dt = frames[1].Time - frames[0].Time
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("body: %s\n", bodyLabel(meta, body))

	series := analysis.Series(frames, body, comp)
	period, err := analysis.DominantPeriod(series, dt)
	switch {
	case err != nil:
		fmt.Printf("period (%s): %v\n", component, err)
	default:
		fmt.Printf("period (%s): %.3f\n", component, period)
	}

	if body != 0 {
		o := analysis.Apsides(frames, 0, body)
		fmt.Printf("relative to %s:\n", bodyLabel(meta, 0))
		fmt.Printf("  periapsis: %.3f\n", o.Periapsis)
		fmt.Printf("  apoapsis: %.3f\n", o.Apoapsis)
		fmt.Printf("  eccentricity: %.4f\n", o.Eccentricity)
	}

	ps := analysis.PowerSpectrum(series)
	if len(ps) > 1 {
		limit := min(len(ps), 80)
		logPS := make([]float64, limit)
		for i := range logPS {
			logPS[i] = math.Log10(ps[i] + 1e-12)
		}
		fmt.Println()
		fmt.Println(viz.Plot("log power spectrum", 80, 8, logPS))
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	sweep := automation.ParameterSweep{Param: sweepParam, Min: sweepMin, Max: sweepMax, NumSteps: sweepSteps}
	logger.Info("sweeping", "scenario", cfg.Name, "param", sweepParam, "steps", sweepSteps)
	results, err := automation.RunSweep(ctx, cfg, sweep)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tENERGY DRIFT\tCONTACTS\tCONTAINMENT\tSTABLE\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		fmt.Fprintf(w, "%.4g\t%.2e\t%d\t%.2f\t%v\n", r.ParamValue, r.EnergyDrift, r.Contacts, r.Containment, r.Stable)
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	mc := automation.MonteCarloConfig{NumTrials: trials, Perturbation: offset, Seed: seed}
	logger.Info("monte carlo", "scenario", cfg.Name, "trials", trials, "perturb", offset)
	results, err := automation.RunMonteCarlo(ctx, cfg, mc)
	if err != nil {
		return err
	}

	contained, escaped := automation.MonteCarloStats(results)
	fmt.Printf("trials: %d\n", len(results))
	fmt.Printf("contained: %d\n", contained)
	fmt.Printf("escaped: %d\n", escaped)

	drifts := make([]float64, len(results))
	for i, r := range results {
		drifts[i] = r.EnergyDrift
	}
	fmt.Println()
	fmt.Println(viz.Plot("energy drift per trial", 60, 6, drifts))
	return nil
}
