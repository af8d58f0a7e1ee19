package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/holesim/internal/analysis"
	"github.com/san-kum/holesim/internal/automation"
	"github.com/san-kum/holesim/internal/config"
	"github.com/san-kum/holesim/internal/control"
	"github.com/san-kum/holesim/internal/dynamo"
	"github.com/san-kum/holesim/internal/engine"
	"github.com/san-kum/holesim/internal/experiment"
	"github.com/san-kum/holesim/internal/export"
	"github.com/san-kum/holesim/internal/gui"
	"github.com/san-kum/holesim/internal/logging"
	"github.com/san-kum/holesim/internal/motion"
	"github.com/san-kum/holesim/internal/optim"
	"github.com/san-kum/holesim/internal/storage"
	"github.com/san-kum/holesim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir     string
	logLevel    string
	logFile     string
	logJSON     bool
	configFile  string
	preset      string
	layout      string
	integrator  string
	gesture     string
	duration    float64
	seed        int64
	maxCaptures int
	startX      float64
	startY      float64
	params      []string
	outFile     string
	svgScale    float64
	axisName    string
	theme       string
	guiScale    float64
	sound       bool
	sweepParam  string
	sweepMin    float64
	sweepMax    float64
	sweepSteps  int
	trials      int
	workers     int
	tuneParams  []string

	log = logging.NewLogger()
)

// main registers the holesim commands. With no subcommand it opens the
// windowed game.
func main() {
	rootCmd := &cobra.Command{
		Use:               "holesim",
		Short:             "ball-in-maze motion and capture lab",
		PersistentPreRunE: setupLogging,
		RunE:              runGUI,
		SilenceUsage:      true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".holesim", "data directory")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); defaults to $"+logging.EnvLevel)
	pf.StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
	pf.BoolVar(&logJSON, "log-json", false, "emit JSON log entries")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&layout, "layout", "", "hole layout")
	pf.StringVar(&integrator, "integrator", "", "spring integrator")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless session and save it",
		Args:  cobra.NoArgs,
		RunE:  runSession,
	}
	runCmd.Flags().StringVar(&gesture, "gesture", "random", "gesture source")
	runCmd.Flags().Float64Var(&duration, "time", 10.0, "session length in seconds")
	runCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	runCmd.Flags().IntVar(&maxCaptures, "captures", 0, "stop after this many captures")
	runCmd.Flags().Float64Var(&startX, "x", 0, "starting x")
	runCmd.Flags().Float64Var(&startY, "y", 0, "starting y")
	runCmd.Flags().StringSliceVar(&params, "param", nil, "gesture parameter name=value")

	listCmd := &cobra.Command{Use: "list", Short: "list saved sessions", RunE: listRuns}

	plotCmd := &cobra.Command{
		Use:   "plot [session_id]",
		Short: "plot position and speed of a session",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [session_id]",
		Short: "settling and frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&axisName, "axis", "y", "axis to analyze (x or y)")

	phaseCmd := &cobra.Command{
		Use:   "phase [session_id]",
		Short: "ascii phase portrait of one axis",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().StringVar(&axisName, "axis", "x", "axis to plot (x or y)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [session_id]",
		Short: "write the trace of a session as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [session_id]",
		Short: "write a session with trace and events as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	svgCmd := &cobra.Command{
		Use:   "svg [session_id]",
		Short: "render the ball path of a session as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	svgCmd.Flags().Float64Var(&svgScale, "scale", 1, "pixels per surface unit")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "capture rate across a range of one physics parameter",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "default_friction", "parameter ("+strings.Join(automation.Params(), ", ")+")")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.5, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 3, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 6, "number of values")
	sweepCmd.Flags().IntVar(&trials, "trials", 50, "sessions per value")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel sessions (default: cpus)")
	sweepCmd.Flags().StringVar(&gesture, "gesture", "random", "gesture source")
	sweepCmd.Flags().Float64Var(&duration, "time", 5, "session length in seconds")
	sweepCmd.Flags().Int64Var(&seed, "seed", 1, "first seed")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search physics parameters for the best capture rate",
		Args:  cobra.NoArgs,
		RunE:  runTune,
	}
	tuneCmd.Flags().StringSliceVar(&tuneParams, "range", []string{"default_friction=0.5:2", "velocity_threshold=150:600"}, "name=min:max")
	tuneCmd.Flags().IntVar(&sweepSteps, "steps", 4, "values per parameter")
	tuneCmd.Flags().IntVar(&trials, "trials", 30, "sessions per grid point")
	tuneCmd.Flags().IntVar(&workers, "workers", 0, "parallel sessions (default: cpus)")
	tuneCmd.Flags().StringVar(&gesture, "gesture", "random", "gesture source")
	tuneCmd.Flags().Float64Var(&duration, "time", 5, "session length in seconds")
	tuneCmd.Flags().Int64Var(&seed, "seed", 1, "first seed")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run every session of a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	layoutsCmd := &cobra.Command{
		Use:   "layouts",
		Short: "list layouts, presets, gesture sources and integrators",
		RunE:  listNames,
	}

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "play in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runPlay,
	}
	playCmd.Flags().StringVar(&theme, "theme", "felt", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "play in a window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	for _, c := range []*cobra.Command{rootCmd, guiCmd} {
		c.Flags().Float64Var(&guiScale, "scale", 1.5, "window pixels per surface unit")
		c.Flags().BoolVar(&sound, "sound", true, "play chimes")
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, analyzeCmd, phaseCmd, exportCSVCmd, exportJSONCmd, svgCmd,
		sweepCmd, tuneCmd, scenarioCmd, layoutsCmd, playCmd, guiCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command, args []string) error {
	level, err := logging.ParseLevel(logLevel)
	if logLevel == "" {
		level, err = logging.ParseLevel(os.Getenv(logging.EnvLevel))
	}
	if err != nil {
		return err
	}
	opts := logging.Options{Level: level, JSON: logJSON}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		opts.Output = f
	}
	log = logging.New(opts)
	return nil
}

// engineConfig resolves preset, then config file, then flags.
func engineConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if layout != "" {
		if _, ok := config.Layouts[layout]; !ok {
			return nil, fmt.Errorf("unknown layout: %s (available: %v)", layout, config.ListLayouts())
		}
		config.WithLayout(cfg, layout)
	}
	if integrator != "" {
		cfg.Integrator = integrator
	}
	if f := cmd.Flags().Lookup("seed"); f != nil && (f.Changed || cfg.Seed == 0) {
		cfg.Seed = seed
	}
	return cfg, cfg.Validate()
}

func parseParams(raw []string) (map[string]float64, error) {
	out := make(map[string]float64, len(raw))
	for _, kv := range raw {
		name, val, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("parameter %q: want name=value", kv)
		}
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", kv, err)
		}
		out[strings.TrimSpace(name)] = v
	}
	return out, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSession(cmd *cobra.Command, args []string) error {
	cfg, err := engineConfig(cmd)
	if err != nil {
		return err
	}
	gp, err := parseParams(params)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	var start *dynamo.Vec2
	if cmd.Flags().Changed("x") || cmd.Flags().Changed("y") {
		start = &dynamo.Vec2{X: startX, Y: startY}
	}
	exp, err := experiment.NewRegistry().Build(experiment.Config{
		Name:        gesture,
		Engine:      cfg,
		Gesture:     gesture,
		Params:      gp,
		Duration:    duration,
		MaxCaptures: maxCaptures,
		Start:       start,
	})
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	ctx = logging.WithSession(ctx, "")
	exp.SetLogger(log.Session(ctx).Logger)

	fmt.Printf("running %s session on %s...\n", gesture, cfg.Layout)
	began := time.Now()
	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(began)

	id, err := st.Save(storage.SessionMetadata{
		ID:         logging.SessionID(ctx),
		Name:       gesture,
		Seed:       cfg.Seed,
		Layout:     cfg.Layout,
		Gesture:    gesture,
		Integrator: cfg.Integrator,
		FrameRate:  cfg.FrameRate,
		Surface:    cfg.Surface,
		BallSize:   cfg.Ball.Size,
		Holes:      cfg.Holes,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("session id: %s\n", id)
	fmt.Printf("frames: %d  captures: %d\n", result.Frames, result.Captures)
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.4f\n", name, result.Metrics[name])
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no sessions found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tGESTURE\tTIME\tDURATION\tLAYOUT\tCAPTURES\tINTEG")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%s\t%d\t%s\n",
			run.ID,
			run.Gesture,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Layout,
			run.Captures,
			run.Integrator,
		)
	}
	return w.Flush()
}

func loadTrace(id string) (*storage.SessionMetadata, experiment.Trace, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(id)
	if err != nil {
		return nil, nil, err
	}
	trace, err := st.LoadTrace(id)
	if err != nil {
		return nil, nil, err
	}
	if len(trace) == 0 {
		return nil, nil, fmt.Errorf("session %s has no trace", id)
	}
	return meta, trace, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, trace, err := loadTrace(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("session: %s\n", meta.ID)
	fmt.Printf("gesture: %s  layout: %s\n", meta.Gesture, meta.Layout)
	fmt.Printf("samples: %d\n\n", len(trace))

	for _, col := range []struct{ name, caption string }{
		{"x", "x position"},
		{"y", "y position"},
		{"speed", "speed"},
		{"alpha", "ball alpha"},
	} {
		graph := asciigraph.Plot(trace.Column(col.name),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(col.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func parseAxis(name string) (motion.Axis, error) {
	switch name {
	case "x":
		return motion.AxisX, nil
	case "y":
		return motion.AxisY, nil
	}
	return 0, fmt.Errorf("unknown axis %q (want x or y)", name)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, trace, err := loadTrace(args[0])
	if err != nil {
		return err
	}
	axis, err := parseAxis(axisName)
	if err != nil {
		return err
	}
	dt := 1.0 / float64(meta.FrameRate)

	fmt.Printf("analysis: %s\n\n", meta.ID)
	pos, vel := trace.Column(axisName), trace.Column("v"+axisName)

	bins := analysis.Spectrum(pos, dt)
	if len(bins) > 1 {
		power := make([]float64, 0, len(bins)/4)
		for _, b := range bins[:len(bins)/4] {
			power = append(power, b.Power)
		}
		fmt.Println(asciigraph.Plot(power,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("power spectrum (%s)", axis)),
		))
		fmt.Println()
	}

	freq, _ := analysis.DominantFrequency(pos, dt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	cfg := config.DefaultConfig()
	if k, err := cfg.Stiffness(); err == nil {
		if z, err := cfg.DampingRatio(); err == nil {
			fmt.Printf("spring frequency:   %.3f hz\n", analysis.SpringFrequency(k, z))
		}
	}
	fmt.Printf("direction reversals: %d\n", analysis.Reversals(vel))
	fmt.Printf("settle time:        %.3f s\n", analysis.SettleTime(trace, config.FlingRestVelocity))
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	meta, trace, err := loadTrace(args[0])
	if err != nil {
		return err
	}
	axis, err := parseAxis(axisName)
	if err != nil {
		return err
	}
	fmt.Printf("phase portrait: %s (%s)\n\n", meta.ID, axis)
	fmt.Print(analysis.PhasePortraitToASCII(analysis.PhasePortrait(trace, axis), 80, 24))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportCSV(os.Stdout, args[0])
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if outFile != "" {
		if err := st.ExportJSONFile(outFile, args[0]); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outFile)
		return nil
	}
	return st.ExportJSON(os.Stdout, args[0])
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, trace, err := loadTrace(args[0])
	if err != nil {
		return err
	}
	svg := export.TraceToSVG(trace, export.Scene{
		Surface:  meta.Surface,
		BallSize: meta.BallSize,
		Holes:    meta.Holes,
	}, svgScale)
	if outFile == "" {
		fmt.Print(svg)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(svg), 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func ensemble(cfg *config.Config) automation.EnsembleConfig {
	return automation.EnsembleConfig{
		Base:     cfg,
		Gesture:  gesture,
		Trials:   trials,
		Duration: duration,
		Seed:     seed,
		Workers:  workers,
	}
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := engineConfig(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	log.Info("sweep started", "param", sweepParam, "min", sweepMin, "max", sweepMax, "steps", sweepSteps, "trials", trials)
	results, err := automation.RunSweep(ctx, &automation.ParameterSweep{
		Ensemble:  ensemble(cfg),
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
	}, experiment.NewRegistry())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tCAPTURE RATE\tTIME TO CAPTURE\tBOUNCES\tREJECTIONS\n", strings.ToUpper(sweepParam))
	rates := make([]float64, 0, len(results))
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%.2f\t%.3fs\t%.2f\t%.2f\n",
			r.ParamValue, r.Stats.CaptureRate, r.Stats.MeanTimeToCapture, r.Stats.MeanBounces, r.Stats.MeanRejections)
		rates = append(rates, r.Stats.CaptureRate)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(rates) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(rates, asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption("capture rate")))
	}
	return nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := engineConfig(cmd)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(tuneParams))
	ranges := make([][]float64, 0, len(tuneParams))
	for _, rangeArg := range tuneParams {
		name, rng, ok := strings.Cut(rangeArg, "=")
		lo, hi, ok2 := strings.Cut(rng, ":")
		if !ok || !ok2 {
			return fmt.Errorf("range %q: want name=min:max", rangeArg)
		}
		lower, err := strconv.ParseFloat(lo, 64)
		if err != nil {
			return fmt.Errorf("range %q: %w", rangeArg, err)
		}
		upper, err := strconv.ParseFloat(hi, 64)
		if err != nil {
			return fmt.Errorf("range %q: %w", rangeArg, err)
		}
		names = append(names, name)
		ranges = append(ranges, optim.Linspace(lower, upper, sweepSteps))
	}

	ctx, cancel := signalContext()
	defer cancel()

	gs := optim.NewGridSearch(names, ranges)
	gs.Maximize = true
	best, all, err := gs.Search(ctx, optim.CaptureRate(cfg, ensemble(cfg), experiment.NewRegistry()))
	if err != nil {
		return err
	}

	fmt.Printf("evaluated %d points\n\nbest capture rate %.2f at:\n", len(all), best.Score)
	for _, name := range names {
		fmt.Printf("  %s = %.4f\n", name, best.Params[name])
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunScenario(ctx, sc, experiment.NewRegistry(), log.Logger)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SESSION\tFRAMES\tCAPTURES\tSAVED AS")
	for i, r := range results {
		sess := sc.Sessions[i]
		saved := "-"
		if sess.SaveAs != "" {
			cfg, err := sess.EngineConfig()
			if err != nil {
				return err
			}
			id, err := st.Save(storage.SessionMetadata{
				ID:         sess.SaveAs,
				Name:       sess.Name,
				Seed:       cfg.Seed,
				Layout:     cfg.Layout,
				Gesture:    sess.Gesture,
				Integrator: cfg.Integrator,
				FrameRate:  cfg.FrameRate,
				Surface:    cfg.Surface,
				BallSize:   cfg.Ball.Size,
				Holes:      cfg.Holes,
			}, r)
			if err != nil {
				return err
			}
			saved = id
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", r.Name, r.Frames, r.Captures, saved)
	}
	return w.Flush()
}

func listNames(cmd *cobra.Command, args []string) error {
	reg := experiment.NewRegistry()
	fmt.Printf("layouts:     %s\n", strings.Join(config.ListLayouts(), ", "))
	fmt.Printf("presets:     %s\n", strings.Join(config.ListPresets(), ", "))
	fmt.Printf("gestures:    %s\n", strings.Join(reg.ListSources(), ", "))
	fmt.Printf("integrators: %s\n", strings.Join(reg.ListIntegrators(), ", "))
	fmt.Printf("themes:      %s\n", strings.Join(viz.ThemeNames(), ", "))
	return nil
}

func newController(cmd *cobra.Command) (*engine.Controller, *config.Config, error) {
	cfg, err := engineConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	ctrl, err := engine.New(*cfg, nil, engine.WithLogger(log.With("component", "engine").Logger))
	if err != nil {
		return nil, nil, err
	}
	return ctrl, cfg, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctrl, cfg, err := newController(cmd)
	if err != nil {
		return err
	}
	ctrl.Measure(cfg.Surface)
	ctrl.Place(dynamo.Vec2{X: (cfg.Surface.X - cfg.Ball.Size.X) / 2, Y: cfg.Surface.Y - cfg.Ball.Size.Y})

	aim := control.NewAim(cfg.Physics.DefaultFriction, cfg.Physics.FlingRestVelocity)
	m := viz.NewPlay(ctrl, aim, cfg.FrameRate).WithTheme(theme)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func runGUI(cmd *cobra.Command, args []string) error {
	ctrl, cfg, err := newController(cmd)
	if err != nil {
		return err
	}
	aim := control.NewAim(cfg.Physics.DefaultFriction, cfg.Physics.FlingRestVelocity)
	app := gui.NewApp(ctrl, aim, cfg.Surface, gui.Options{
		Scale:  float32(guiScale),
		FPS:    cfg.FrameRate,
		Audio:  sound,
		Logger: log,
	})
	ctrl.Place(dynamo.Vec2{X: (cfg.Surface.X - cfg.Ball.Size.X) / 2, Y: cfg.Surface.Y - cfg.Ball.Size.Y})
	app.Run()
	return nil
}
