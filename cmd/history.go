package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/ridership/core/metrics"
	"github.com/kilianp07/ridership/core/runlog"
	"github.com/kilianp07/ridership/infra/store"
	"github.com/kilianp07/ridership/pkg/export"
	"github.com/kilianp07/ridership/pkg/report"
)

var historyOpts struct {
	scenario string
	since    string
	limit    int
	format   string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past runs from the run store",
	RunE:  runHistory,
}

func init() {
	f := historyCmd.Flags()
	f.StringVar(&historyOpts.scenario, "scenario", "", "only runs of this scenario")
	f.StringVar(&historyOpts.since, "since", "", "only runs after this RFC3339 time")
	f.IntVar(&historyOpts.limit, "limit", 20, "most recent runs to show, 0 for all")
	f.StringVarP(&historyOpts.format, "format", "f", "table", "output format: table, json, csv or yaml")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	q := runlog.Query{Scenario: historyOpts.scenario, Limit: historyOpts.limit}
	if historyOpts.since != "" {
		q.Start, err = time.Parse(time.RFC3339, historyOpts.since)
		if err != nil {
			return fmt.Errorf("parse --since: %w", err)
		}
	}
	st, err := store.New(cfg.Store)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	recs, err := st.Query(cmd.Context(), q)
	if err != nil {
		return err
	}
	summaries := make([]metrics.RunSummary, len(recs))
	for i, r := range recs {
		summaries[i] = r.Summary
	}
	if historyOpts.format == "table" {
		return report.WriteTable(cmd.OutOrStdout(), summaries)
	}
	return export.Write(cmd.OutOrStdout(), historyOpts.format, summaries)
}
