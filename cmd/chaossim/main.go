package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/chaossim/internal/catalog"
	"github.com/san-kum/chaossim/internal/config"
	"github.com/san-kum/chaossim/internal/integrators"
	"github.com/san-kum/chaossim/internal/session"
	"github.com/san-kum/chaossim/internal/viz"
)

var (
	dataDir     string
	configFile  string
	preset      string
	dt          float64
	duration    float64
	integrator  string
	maxSubSteps int
	initState   []float64
	frameRate   int
	trailLength int
	theme       string
	profileMode string
	verbose     bool
	plane       string
	outFile     string
	sweepParam  string
	sweepMin    float64
	sweepMax    float64
	sweepCount  int

	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
)

// main registers the chaossim commands and opens the attractor picker when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "chaossim",
		Short: "strange attractor simulator",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, args)
			if err != nil {
				return err
			}
			sess, err := newSession(cfg)
			if err != nil {
				return err
			}
			return viz.RunInteractive(sess, liveOptions(cfg))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".chaossim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	addSimFlags(rootCmd)
	addViewFlags(rootCmd)

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "run an attractor with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	addViewFlags(liveCmd)

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "integrate headless and record the trajectory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated seconds")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list attractor families",
		RunE:  listModels,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	compareCmd := &cobra.Command{
		Use:   "compare [model] [integrator1] [integrator2] ...",
		Short: "compare integrators on the same model",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	addSimFlags(compareCmd)
	compareCmd.Flags().Float64Var(&duration, "time", 10.0, "simulated seconds")

	benchCmd := &cobra.Command{
		Use:   "bench [model]",
		Short: "benchmark integration throughput",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchModel,
	}
	addSimFlags(benchCmd)
	benchCmd.Flags().Float64Var(&duration, "time", 10.0, "simulated seconds per step size")
	benchCmd.Flags().StringVar(&profileMode, "profile", "", "write a cpu or mem profile to the data directory")

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a config file with defaults",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "chaossim.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a recorded run to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&plane, "plane", "xz", "projection plane: xy, xz or yz")
	exportSVGCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default <run_id>.svg)")
	exportSVGCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run the steps of a YAML scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [model]",
		Short: "run a model across a range of one parameter",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&duration, "time", 20.0, "simulated seconds per value")
	sweepCmd.Flags().StringVar(&sweepParam, "param", "", "parameter to vary")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1, "last value")
	sweepCmd.Flags().IntVar(&sweepCount, "count", 5, "number of values")
	sweepCmd.MarkFlagRequired("param")

	rootCmd.AddCommand(liveCmd, runCmd, listCmd, plotCmd, exportJSONCmd, exportSVGCmd, modelsCmd, presetsCmd,
		compareCmd, benchCmd, scenarioCmd, sweepCmd, initConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "time step")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator ("+strings.Join(integrators.Names(), ", ")+")")
	cmd.Flags().IntVar(&maxSubSteps, "max-sub-steps", config.DefaultMaxSubSteps, "sub-step cap per frame (0 = unbounded)")
	cmd.Flags().Float64SliceVar(&initState, "init", nil, "initial state x,y,z")
}

func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	cmd.Flags().IntVar(&trailLength, "trail", config.DefaultTrailLength, "trail length in points")
	cmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
}

// resolveConfig layers defaults, the config file, a preset, the model
// argument and explicitly set flags, in that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if len(args) > 0 {
		cfg.Model = args[0]
	}
	if preset != "" {
		p := config.GetPreset(cfg.Model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Model))
		}
		p.FPS, p.TrailLength, p.Theme, p.MaxSubSteps = cfg.FPS, cfg.TrailLength, cfg.Theme, cfg.MaxSubSteps
		cfg = p
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("max-sub-steps") {
		cfg.MaxSubSteps = maxSubSteps
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("trail") {
		cfg.TrailLength = trailLength
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("init") {
		if len(initState) != 3 {
			return nil, fmt.Errorf("--init needs exactly 3 values, got %d", len(initState))
		}
		cfg.InitState = &config.InitStateConfig{X: initState[0], Y: initState[1], Z: initState[2]}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("resolved config", "model", cfg.Model, "integrator", cfg.Integrator, "dt", cfg.Dt, "max_sub_steps", cfg.MaxSubSteps)
	return cfg, nil
}

func newSession(cfg *config.Config) (*session.Session, error) {
	reg := catalog.NewRegistry()
	idx, err := reg.IndexOf(cfg.Model)
	if err != nil {
		return nil, err
	}
	sess, err := session.New(reg, idx, session.Config{
		TimeStep:    cfg.Dt,
		MaxSubSteps: cfg.MaxSubSteps,
		Integrator:  cfg.Integrator,
	})
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyParams(sess.Model()); err != nil {
		return nil, err
	}
	if cfg.InitState != nil {
		sess.SetInitialState(cfg.GetInitState(sess.InitialState()))
	}
	return sess, nil
}

func liveOptions(cfg *config.Config) viz.Options {
	opts := viz.DefaultOptions()
	opts.FPS = cfg.FPS
	opts.TrailLength = cfg.TrailLength
	opts.Theme = cfg.Theme
	return opts
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	sess, err := newSession(cfg)
	if err != nil {
		return err
	}
	return viz.RunLive(sess, liveOptions(cfg))
}

func listModels(cmd *cobra.Command, args []string) error {
	reg := catalog.NewRegistry()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tKEY\tNAME\tSEED\tPARAMS")
	for i, e := range reg.List() {
		m := e.New()
		params := make([]string, 0, len(m.ParamNames()))
		for _, name := range m.ParamNames() {
			params = append(params, fmt.Sprintf("%s=%g", name, m.GetParams()[name]))
		}
		s := e.InitialState
		fmt.Fprintf(w, "%d\t%s\t%s\t(%g, %g, %g)\t%s\n", i+1, e.Key, e.Name, s[0], s[1], s[2], strings.Join(params, " "))
	}
	return w.Flush()
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
