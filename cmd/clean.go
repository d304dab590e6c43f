package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean the raw trips and stations and write the cleaned CSV cache",
	RunE: func(cmd *cobra.Command, _ []string) error {
		res, err := newPipeline(cmd).Clean(cmd.Context())
		if err != nil {
			return err
		}

		zap.L().Info("cleaned data written",
			zap.String("trips", res.TripsPath),
			zap.String("stations", res.StationsPath),
			zap.Int("merged_trips", res.Merged),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
