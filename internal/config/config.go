// Package config loads and validates the application configuration.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/naka-gawa/release-stats/internal/domain"
	"github.com/naka-gawa/release-stats/internal/gateway"
	"github.com/spf13/viper"
)

// ErrMissingToken is returned when a command needs a GitHub token and none is set.
var ErrMissingToken = errors.New("GITHUB_TOKEN environment variable is not set")

// Defaults.
const (
	DefaultStatsFile = "release_stats.csv"
	DefaultRawFile   = "data/release_raw_data.csv"
	DefaultTimezone  = "UTC"
	DefaultAddr      = ":3000"
	EnvPrefix        = "RELEASE_STATS"
)

// DefaultRepos is the list of repositories analyzed when none are configured.
var DefaultRepos = []string{
	"daangn/stackflow",
	"daangn/seed-design",
}

// Config is the validated configuration shared by all commands.
type Config struct {
	Token       string
	Repos       []string
	API         string
	APIURL      string
	StatsFile   string
	RawFile     string
	ParquetFile string
	Location    *time.Location
	Addr        string
}

// SetDefaults registers defaults and environment bindings on v.
func SetDefaults(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// The token is also read from the conventional GITHUB_TOKEN variable.
	_ = v.BindEnv("token", EnvPrefix+"_TOKEN", "GITHUB_TOKEN")

	v.SetDefault("repos", DefaultRepos)
	v.SetDefault("api", gateway.APIRest)
	v.SetDefault("api-url", "")
	v.SetDefault("stats-file", DefaultStatsFile)
	v.SetDefault("raw-file", DefaultRawFile)
	v.SetDefault("parquet-file", "")
	v.SetDefault("timezone", DefaultTimezone)
	v.SetDefault("addr", DefaultAddr)
}

// Load reads the configuration from v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Token:       strings.TrimSpace(v.GetString("token")),
		Repos:       v.GetStringSlice("repos"),
		API:         strings.ToLower(v.GetString("api")),
		APIURL:      v.GetString("api-url"),
		StatsFile:   v.GetString("stats-file"),
		RawFile:     v.GetString("raw-file"),
		ParquetFile: v.GetString("parquet-file"),
		Addr:        v.GetString("addr"),
	}

	switch cfg.API {
	case gateway.APIRest, gateway.APIGraphQL:
	default:
		return nil, fmt.Errorf("invalid api %q: expected %q or %q", cfg.API, gateway.APIRest, gateway.APIGraphQL)
	}
	if len(cfg.Repos) == 0 {
		return nil, errors.New("at least one repository is required")
	}
	for _, repo := range cfg.Repos {
		if _, _, err := domain.SplitRepo(repo); err != nil {
			return nil, err
		}
	}
	if cfg.StatsFile == "" || cfg.RawFile == "" {
		return nil, errors.New("stats-file and raw-file must not be empty")
	}

	loc, err := time.LoadLocation(v.GetString("timezone"))
	if err != nil {
		return nil, fmt.Errorf("invalid timezone: %w", err)
	}
	cfg.Location = loc
	return cfg, nil
}

// RequireToken returns ErrMissingToken when no GitHub token is configured.
func (c *Config) RequireToken() error {
	if c.Token == "" {
		return ErrMissingToken
	}
	return nil
}
