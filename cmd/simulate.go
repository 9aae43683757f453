package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/ridership/app"
	"github.com/kilianp07/ridership/core/metrics"
	"github.com/kilianp07/ridership/infra/logger"
	"github.com/kilianp07/ridership/pkg/export"
	"github.com/kilianp07/ridership/pkg/report"
)

var simulateOpts struct {
	trials    int
	seed      uint64
	workers   int
	format    string
	histogram string
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run every configured scenario once and print the summaries",
	RunE:  runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.IntVar(&simulateOpts.trials, "trials", 0, "number of simulated days (overrides simulation.trials)")
	f.Uint64Var(&simulateOpts.seed, "seed", 0, "random seed (overrides simulation.seed)")
	f.IntVar(&simulateOpts.workers, "workers", 0, "parallel workers (overrides simulation.workers)")
	f.StringVarP(&simulateOpts.format, "format", "f", "table", "output format: table, json, csv or yaml")
	f.StringVar(&simulateOpts.histogram, "histogram", "", "write an HTML histogram of the outcomes to this file")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if simulateOpts.trials > 0 {
		cfg.Simulation.Trials = simulateOpts.trials
	}
	if cmd.Flags().Changed("seed") {
		cfg.Simulation.Seed = simulateOpts.seed
	}
	if simulateOpts.workers > 0 {
		cfg.Simulation.Workers = simulateOpts.workers
	}

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()

	results, err := svc.RunOnce(ctx)
	if err != nil {
		return err
	}
	summaries := make([]metrics.RunSummary, len(results))
	for i, r := range results {
		summaries[i] = r.Summary
	}

	out := cmd.OutOrStdout()
	if simulateOpts.format == "table" {
		err = report.WriteTable(out, summaries)
	} else {
		err = export.Write(out, simulateOpts.format, summaries)
	}
	if err != nil {
		return err
	}

	if simulateOpts.histogram != "" {
		for _, r := range results {
			path := histogramPath(simulateOpts.histogram, r.Summary.Scenario, len(results))
			if err := writeHistogram(path, svc.Line().Name()+" - "+r.Summary.Scenario, r.Outcomes); err != nil {
				return err
			}
		}
	}
	return nil
}

// histogramPath suffixes the file name with the scenario when several
// scenarios are written.
func histogramPath(path, scenario string, n int) string {
	if n <= 1 {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-" + scenario + ext
}

func writeHistogram(path, title string, outcomes []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create histogram: %w", err)
	}
	if err := report.WriteHistogram(f, title, outcomes); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
