package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/bikeshare-cli/internal/pipeline"
)

var (
	task2Format string
	task2Out    string
)

var task2Cmd = &cobra.Command{
	Use:   "task2",
	Short: "Describe trip duration and distance",
	Long: "Projects the cleaned trips, prints descriptive statistics of trip duration " +
		"and distance, and optionally writes them to a YAML or XLSX report.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := newPipeline(cmd).TripStats(cmd.Context(), pipeline.TripStatsOptions{
			Format:  task2Format,
			OutPath: task2Out,
		})
		return err
	},
}

func init() {
	task2Cmd.Flags().StringVar(&task2Format, "format", "", "output format: table, yaml or xlsx (default from config)")
	task2Cmd.Flags().StringVar(&task2Out, "out", "", "report file path (default <report.output_dir>/task2.<format>)")
	rootCmd.AddCommand(task2Cmd)
}
