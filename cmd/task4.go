package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var task4Cmd = &cobra.Command{
	Use:   "task4",
	Short: "Cluster stations with DBSCAN and render the clusters",
	RunE: func(cmd *cobra.Command, _ []string) error {
		res, err := newPipeline(cmd).ClusterStations(cmd.Context())
		if err != nil {
			return err
		}
		zap.L().Info("cluster chart written", zap.String("path", res.ChartPath))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(task4Cmd)
}
