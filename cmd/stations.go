package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/ridership/pkg/report"
)

var stationsCmd = &cobra.Command{
	Use:   "stations",
	Short: "Print the configured line",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		line, err := cfg.Line.Build()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if _, err := fmt.Fprintf(out, "%s (%d stations)\n", line.Name(), line.Len()); err != nil {
			return err
		}
		names := make([]string, line.Len())
		means := make([]float64, line.Len())
		stddevs := make([]float64, line.Len())
		for i, s := range line.Stations() {
			names[i], means[i], stddevs[i] = s.Name, s.MeanRiders, s.StddevRiders
		}
		report.WriteStations(out, names, means, stddevs)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stationsCmd)
}
