package main

import (
	"github.com/spf13/cobra"
)

var task1Date string

var task1Cmd = &cobra.Command{
	Use:   "task1",
	Short: "Count valid trips, used stations and unique bikes",
	Long: "Cleans the raw trip log and prints the number of valid trips, stations used " +
		"and unique bikes. With --date, fails if any trip falls on another day.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := newPipeline(cmd).Summary(cmd.Context(), task1Date)
		return err
	},
}

func init() {
	task1Cmd.Flags().StringVar(&task1Date, "date", "", "expected trip date (YYYY-MM-DD)")
	rootCmd.AddCommand(task1Cmd)
}
