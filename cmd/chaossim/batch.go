package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/chaossim/internal/automation"
	"github.com/san-kum/chaossim/internal/catalog"
	"github.com/san-kum/chaossim/internal/export"
	"github.com/san-kum/chaossim/internal/storage"
	"github.com/san-kum/chaossim/internal/viz"
)

func exportSVG(cmd *cobra.Command, args []string) error {
	p, err := export.ParsePlane(plane)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return fmt.Errorf("failed to load run: %w", err)
	}

	opts := export.DefaultSVGOptions()
	opts.Plane = p
	opts.Colors = opts.Colors[:0]
	for _, c := range viz.GetTheme(theme).Gradient {
		opts.Colors = append(opts.Colors, string(c))
	}

	path := outFile
	if path == "" {
		path = args[0] + ".svg"
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.TrajectoryToSVG(f, states, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Printf("wrote %s (%d points, %s plane)\n", path, len(states), p)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	if sc.Name != "" {
		fmt.Printf("scenario: %s\n", sc.Name)
	}
	if sc.Description != "" {
		fmt.Printf("  %s\n", sc.Description)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	out, err := automation.RunScenario(ctx, sc, catalog.NewRegistry(), st, os.Stdout)
	for i, o := range out {
		line := fmt.Sprintf("  %d. %-14s steps=%-8d max_speed=%.3f", i+1, o.Model, o.Steps, o.Metrics["max_speed"])
		if o.RunID != "" {
			line += "  saved " + o.RunID
		}
		fmt.Println(line)
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if sweepCount < 1 {
		return fmt.Errorf("--count must be positive, got %d", sweepCount)
	}

	ctx, cancel := signalContext()
	defer cancel()

	sw := &automation.ParameterSweep{Base: cfg, Param: sweepParam, Min: sweepMin, Max: sweepMax, Count: sweepCount}
	results, err := automation.RunSweep(ctx, sw, catalog.NewRegistry(), os.Stderr)
	if err != nil && len(results) == 0 {
		return err
	}

	keys := []string{"max_speed", "x_max", "z_max"}
	if len(results) > 0 && results[0].Metrics != nil {
		keys = keys[:0]
		for k := range results[0].Metrics {
			if strings.HasSuffix(k, "_max") || k == "max_speed" || k == "stability" {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
	}

	fmt.Printf("\n%-10s", sweepParam)
	for _, k := range keys {
		fmt.Printf("  %12s", k)
	}
	fmt.Println()
	fmt.Println(strings.Repeat("-", 10+14*len(keys)))

	for _, r := range results {
		fmt.Printf("%-10.4f", r.Value)
		if r.Err != nil {
			fmt.Printf("  %v\n", r.Err)
			logger.Warn("sweep value failed", "param", sweepParam, "value", r.Value, "err", r.Err)
			continue
		}
		for _, k := range keys {
			fmt.Printf("  %12.4f", r.Metrics[k])
		}
		fmt.Println()
	}
	return err
}
