package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/naka-gawa/release-stats/internal/config"
	"github.com/naka-gawa/release-stats/internal/gateway"
	"github.com/naka-gawa/release-stats/internal/store"
	"github.com/naka-gawa/release-stats/internal/usecase"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Fetches GitHub releases and writes the statistics and raw data CSV files",
	Long: `Fetches every release of the configured repositories, derives calendar statistics
over working-day releases, and writes the statistics file and the raw data file.
A summary of the run is printed as JSON.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		logger := newLogger(cmd)

		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := cfg.RequireToken(); err != nil {
			if errors.Is(err, config.ErrMissingToken) {
				fmt.Fprintln(os.Stderr, "Error: GITHUB_TOKEN environment variable is not set.")
			} else {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			os.Exit(1)
		}

		// Inject dependencies and run the main business logic.
		fetcher, err := gateway.NewReleaseFetcher(gateway.Options{
			Token:   cfg.Token,
			API:     cfg.API,
			BaseURL: cfg.APIURL,
		}, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}
		writer := store.NewFileReportWriter(cfg.StatsFile, cfg.RawFile, cfg.ParquetFile, logger)
		generator := usecase.NewGenerator(fetcher, usecase.NewNormalizer(cfg.Location, logger), writer, logger)

		summary, err := generator.Generate(ctx, cfg.Repos)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate release stats: %v\n", err)
			os.Exit(1)
		}

		jsonData, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to marshal summary to JSON: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringSliceP("repos", "r", config.DefaultRepos, "Repositories to analyze (owner/name)")
	generateCmd.Flags().String("api", gateway.APIRest, "GitHub API to use (rest or graphql)")
	generateCmd.Flags().String("api-url", "", "GitHub API base URL (for GitHub Enterprise)")
	generateCmd.Flags().String("stats-file", config.DefaultStatsFile, "Output path of the statistics CSV")
	generateCmd.Flags().String("raw-file", config.DefaultRawFile, "Output path of the raw release data CSV")
	generateCmd.Flags().String("parquet-file", "", "Optional output path of a Parquet export of the raw data")
	generateCmd.Flags().String("timezone", config.DefaultTimezone, "IANA time zone used to derive release dates")
}
