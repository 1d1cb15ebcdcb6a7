package cmd

import (
	"fmt"
	"os"

	"github.com/naka-gawa/release-stats/internal/config"
	"github.com/naka-gawa/release-stats/internal/render"
	"github.com/naka-gawa/release-stats/internal/store"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Prints a generated statistics file as a table",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		table, err := store.ReadStats(cfg.StatsFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read statistics: %v\n", err)
			os.Exit(1)
		}
		if err := render.MetricTable(cmd.OutOrStdout(), table); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to render statistics: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().String("stats-file", config.DefaultStatsFile, "Path of the statistics CSV")
}
