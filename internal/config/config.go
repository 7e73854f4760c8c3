// Package config loads and persists carbonfocus settings from the user's
// home directory (~/.carbonfocus). Settings act as defaults for CLI flags;
// a missing or malformed file never fails a command.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/carbonfocus/carbonfocus/internal/logging"
)

// EnvHome overrides the carbonfocus home directory when set.
const EnvHome = "CARBONFOCUS_HOME"

const (
	configFileName  = "config.yaml"
	regionsFileName = "regions.json"
	historyFileName = "history.db"
	dirPerm         = 0o755
	filePerm        = 0o600
)

// Config holds persisted user settings. Zero values mean "not set"; New
// fills in documented defaults.
type Config struct {
	// DefaultRegion is the region pack code applied when --region is omitted.
	DefaultRegion string `yaml:"default_region,omitempty"`
	// RenewableShare is the default renewable adjustment fraction [0..1].
	RenewableShare float64 `yaml:"renewable_share,omitempty"`
	// WeeklyGoalKg is the weekly emissions target used by `plan goal`.
	WeeklyGoalKg float64 `yaml:"weekly_goal_kg,omitempty"`
	// OffsetPricePerTonne is the USD price per tonne for offset estimates.
	OffsetPricePerTonne float64 `yaml:"offset_price_per_tonne,omitempty"`
	// Output is the default output format: table or json.
	Output string `yaml:"output,omitempty"`
	// LogLevel is the default zerolog level name.
	LogLevel string `yaml:"log_level,omitempty"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		OffsetPricePerTonne: 15.0,
		Output:              "table",
		LogLevel:            "info",
	}
}

// Home returns the carbonfocus home directory without creating it.
// Resolution order: CARBONFOCUS_HOME, then ~/.carbonfocus.
func Home() string {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".carbonfocus"
	}
	return filepath.Join(home, ".carbonfocus")
}

// Path returns the config file path inside Home.
func Path() string { return filepath.Join(Home(), configFileName) }

// RegionsPath returns the region pack file path inside Home.
func RegionsPath() string { return filepath.Join(Home(), regionsFileName) }

// HistoryPath returns the history database path inside Home.
func HistoryPath() string { return filepath.Join(Home(), historyFileName) }

// Load reads the config file, applies environment overrides, and returns
// the result. A missing file yields defaults; a malformed file yields
// defaults with a warning logged to ctx's logger.
func Load(ctx context.Context) *Config {
	cfg := New()
	log := logging.FromContext(ctx)

	data, err := os.ReadFile(Path())
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// First run: defaults apply.
	case err != nil:
		log.Warn().Str("component", "config").Err(err).Str("path", Path()).
			Msg("config file unreadable, using defaults")
	default:
		if uerr := yaml.Unmarshal(data, cfg); uerr != nil {
			log.Warn().Str("component", "config").Err(uerr).Str("path", Path()).
				Msg("config file malformed, using defaults")
			cfg = New()
		}
	}

	applyEnvOverrides(cfg)
	normalize(cfg)
	return cfg
}

// Save writes the config file, creating Home if needed.
func (c *Config) Save() error {
	if err := os.MkdirAll(Home(), dirPerm); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(Path(), data, filePerm); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CARBONFOCUS_REGION"); v != "" {
		cfg.DefaultRegion = v
	}
	if v := os.Getenv("CARBONFOCUS_OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv("CARBONFOCUS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("CARBONFOCUS_RENEWABLE_SHARE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RenewableShare = f
		}
	}
}

// normalize clamps values into their documented ranges so downstream code
// can trust the struct.
func normalize(cfg *Config) {
	if cfg.RenewableShare < 0 {
		cfg.RenewableShare = 0
	}
	if cfg.RenewableShare > 1 {
		cfg.RenewableShare = 1
	}
	if cfg.OffsetPricePerTonne < 0 {
		cfg.OffsetPricePerTonne = 0
	}
	if cfg.WeeklyGoalKg < 0 {
		cfg.WeeklyGoalKg = 0
	}
	if cfg.Output != "table" && cfg.Output != "json" {
		cfg.Output = "table"
	}
}
