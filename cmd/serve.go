package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/naka-gawa/release-stats/internal/config"
	"github.com/naka-gawa/release-stats/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the release dashboard and its statistics API",
	Long: `Serves GET /api/dashboard/release-stats, which reads the raw release data file
on every request and returns the monthly, per-repository and weekend series,
together with a small dashboard page at /.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger(cmd)

		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(cmd.OutOrStdout(), "Dashboard listening on %s (raw data: %s)\n", cfg.Addr, cfg.RawFile)
		if err := server.New(cfg.RawFile, logger).ListenAndServe(ctx, cfg.Addr); err != nil {
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", config.DefaultAddr, "Address to listen on")
	serveCmd.Flags().String("raw-file", config.DefaultRawFile, "Path of the raw release data CSV")
}
