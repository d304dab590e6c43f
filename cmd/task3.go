package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var task3Cmd = &cobra.Command{
	Use:   "task3",
	Short: "Render trend, spatial, box plot and density charts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		paths, err := newPipeline(cmd).Visualize(cmd.Context())
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(task3Cmd)
}
