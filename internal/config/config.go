package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"junksweep/internal/catalog"
	"junksweep/internal/reclaim"
)

type PrometheusCfg struct {
	Port int `yaml:"port" json:"port"`
}

type LoggingCfg struct {
	RotationDays int `yaml:"rotation_days" json:"rotation_days"` // Days to keep logs before rotation
}

type Config struct {
	Volume          string        `yaml:"volume" json:"volume"`
	Catalog         []string      `yaml:"catalog" json:"catalog"`                     // Path patterns; empty uses the built-in catalog
	Apply           bool          `yaml:"apply" json:"apply"`                         // false = dry run
	OlderThanDays   int           `yaml:"older_than_days" json:"older_than_days"`     // 0 disables the age filter
	PurgeRecycleBin *bool         `yaml:"purge_recycle_bin" json:"purge_recycle_bin"` // nil defaults to true
	RequireVolume   *bool         `yaml:"require_volume" json:"require_volume"`       // nil defaults to true
	Accounting      string        `yaml:"accounting" json:"accounting"`               // "coarse" or "per-file"
	ProtectedPaths  []string      `yaml:"protected_paths" json:"protected_paths"`
	LogSinkPath     string        `yaml:"log_sink_path" json:"log_sink_path"`
	HistoryDBPath   string        `yaml:"history_db_path" json:"history_db_path"`
	IntervalMinutes int           `yaml:"interval_minutes" json:"interval_minutes"`
	PaceCPUPercent  float64       `yaml:"pace_cpu_percent" json:"pace_cpu_percent"` // 0 disables pacing
	Prometheus      PrometheusCfg `yaml:"prometheus" json:"prometheus"`
	Logging         LoggingCfg    `yaml:"logging" json:"logging"`
}

const (
	AccountingCoarse  = "coarse"
	AccountingPerFile = "per-file"
)

var (
	errNoVolume      = errors.New("configuration must specify a volume")
	errNegativeAge   = errors.New("older_than_days cannot be negative")
	errBadAccounting = errors.New(`accounting must be "coarse" or "per-file"`)
)

func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := decode(f)
	if err != nil {
		return nil, err
	}
	if err := cfg.validateAndDefault(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(r io.Reader) (*Config, error) {
	cfg := &Config{}
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return cfg, nil
}

func (c *Config) validateAndDefault() error {
	if c.Volume == "" {
		return errNoVolume
	}
	if c.OlderThanDays < 0 {
		return errNegativeAge
	}

	if c.Accounting == "" {
		c.Accounting = AccountingCoarse
	}
	if c.Accounting != AccountingCoarse && c.Accounting != AccountingPerFile {
		return fmt.Errorf("%w: %q", errBadAccounting, c.Accounting)
	}

	if c.IntervalMinutes <= 0 {
		c.IntervalMinutes = 1440 // Default: one run per day
	}
	if c.Prometheus.Port == 0 {
		c.Prometheus.Port = 9090
	}
	if c.Logging.RotationDays <= 0 {
		c.Logging.RotationDays = 30
	}
	if c.HistoryDBPath == "" {
		c.HistoryDBPath = "/var/lib/junksweep/history.db"
	}

	return nil
}

// Entries returns the effective catalog: configured patterns when
// present, the built-in catalog otherwise.
func (c *Config) Entries() []catalog.Entry {
	if len(c.Catalog) > 0 {
		return catalog.FromPatterns(c.Catalog)
	}
	return catalog.Default()
}

// OlderThan converts the configured day threshold to a duration.
func (c *Config) OlderThan() time.Duration {
	return time.Duration(c.OlderThanDays) * 24 * time.Hour
}

// AccountingMode maps the configured policy name to the engine's mode.
func (c *Config) AccountingMode() reclaim.Accounting {
	if c.Accounting == AccountingPerFile {
		return reclaim.PerFileAccounting
	}
	return reclaim.CoarseAccounting
}

// PurgeBin reports whether the recycle-bin purge is enabled. Only an
// explicit false in the config disables it.
func (c *Config) PurgeBin() bool {
	return c.PurgeRecycleBin == nil || *c.PurgeRecycleBin
}

// VolumeRequired reports whether a failed volume inspection aborts the
// run (true, the default) or is advisory only.
func (c *Config) VolumeRequired() bool {
	return c.RequireVolume == nil || *c.RequireVolume
}

func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalMinutes) * time.Minute
}

func (c *Config) PrometheusAddress() string {
	return fmt.Sprintf(":%d", c.Prometheus.Port)
}
