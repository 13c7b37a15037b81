package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/san-kum/chaossim/internal/catalog"
	"github.com/san-kum/chaossim/internal/dynamo"
	"github.com/san-kum/chaossim/internal/experiment"
	"github.com/san-kum/chaossim/internal/metrics"
	"github.com/san-kum/chaossim/internal/storage"
)

const maxPlotPoints = 400

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := experiment.New(catalog.NewRegistry(), cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("running %s for %.1fs (dt=%.4f, %s)...\n", exp.Model().Name(), cfg.Duration, cfg.Dt, cfg.Integrator)
	start := time.Now()

	result, m, err := exp.Run(ctx)
	var stepErr *dynamo.StepError
	if errors.As(err, &stepErr) {
		logger.Warn("trajectory diverged", "step", stepErr.Step, "time", stepErr.Time)
		m = metrics.Extent(result.States)
	} else if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(exp.Metadata(m), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-10s %12.6f\n", name, m[name])
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tDURATION\tDT\tINTEG\tSTEPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%s\t%d\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
			run.Steps,
		)
	}

	return w.Flush()
}

// downsample keeps at most n evenly spaced values.
func downsample(data []float64, n int) []float64 {
	if len(data) <= n {
		return data
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = data[i*len(data)/n]
	}
	return out
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Name)
	fmt.Printf("samples: %d\n\n", len(states))

	for i, col := range metrics.Columns(states) {
		graph := asciigraph.Plot(downsample(col, maxPlotPoints),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%c vs time", "xyz"[i])),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(args[0], os.Stdout)
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[:1])
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("comparing integrators for %s (dt=%.4f, duration=%.1fs)\n\n", cfg.Model, cfg.Dt, cfg.Duration)
	out, err := experiment.Compare(ctx, catalog.NewRegistry(), cfg, args[1:])
	if err != nil && out == nil {
		return err
	}
	if err != nil {
		logger.Warn("comparison incomplete", "err", err)
	}

	fmt.Printf("%-12s  %-32s  %-12s  %-8s\n", "integrator", "final state", "deviation", "steps")
	fmt.Println(strings.Repeat("-", 70))
	for _, c := range out {
		final := fmt.Sprintf("(%.4f, %.4f, %.4f)", c.Final[0], c.Final[1], c.Final[2])
		fmt.Printf("%-12s  %-32s  %12.2e  %8d\n", c.Integrator, final, c.Deviation, c.Steps)
	}
	return nil
}

func benchModel(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	switch profileMode {
	case "":
	case "cpu", "mem":
		dir := filepath.Join(dataDir, "profile")
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
		mode := profile.CPUProfile
		if profileMode == "mem" {
			mode = profile.MemProfileAllocs
		}
		defer profile.Start(mode, profile.ProfilePath(dir), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile mode: %s (want cpu or mem)", profileMode)
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("benchmarking %s with %s over %.1fs\n\n", cfg.Model, cfg.Integrator, cfg.Duration)
	results, err := experiment.Bench(ctx, catalog.NewRegistry(), cfg, []float64{0.001, 0.005, 0.01})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT\tSTEPS\tTIME\tSTEPS/SEC")
	for _, r := range results {
		fmt.Fprintf(w, "%.4fs\t%d\t%v\t%.0f\n", r.Dt, r.Steps, r.Elapsed, r.StepsPerSec)
	}
	return w.Flush()
}
