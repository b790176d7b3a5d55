package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const referenceLayout = "2006-01-02"

// Source kinds.
const (
	SourceCSV    = "csv"
	SourceSQLite = "sqlite"
)

// Config holds all application configuration.
type Config struct {
	Data struct {
		Dir        string `yaml:"dir"`
		Source     string `yaml:"source"`
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"data"`
	// ReferenceDate is the dataset's "today"; windows and default ranges are
	// measured from it, never from the wall clock.
	ReferenceDate string `yaml:"reference_date"`
	Report        struct {
		SortBy  string `yaml:"sort_by"`
		Missing string `yaml:"missing"`
	} `yaml:"report"`
	Chart struct {
		OutputDir string `yaml:"output_dir"`
	} `yaml:"chart"`
	Schedule struct {
		WatchCron string `yaml:"watch_cron"`
	} `yaml:"schedule"`
	Log struct {
		Level      string `yaml:"level"`
		Format     string `yaml:"format"`
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
	} `yaml:"log"`
}

// Load reads .env, then config from a YAML file, then applies environment
// variable overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("STOCKS_DATA_DIR"); v != "" {
		cfg.Data.Dir = v
	}
	if v := os.Getenv("STOCKS_SOURCE"); v != "" {
		cfg.Data.Source = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Data.SQLitePath = v
	}
	if v := os.Getenv("STOCKS_REFERENCE_DATE"); v != "" {
		cfg.ReferenceDate = v
	}
	if v := os.Getenv("STOCKS_MISSING"); v != "" {
		cfg.Report.Missing = v
	}
	if v := os.Getenv("CHART_DIR"); v != "" {
		cfg.Chart.OutputDir = v
	}
	if v := os.Getenv("CRON_WATCH"); v != "" {
		cfg.Schedule.WatchCron = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v, ok := os.LookupEnv("LOG_FILE"); ok {
		cfg.Log.File = v
		if v == "" {
			cfg.Log.File = "-"
		}
	}
	if v := os.Getenv("LOG_MAX_SIZE_MB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Log.MaxSizeMB = n
		}
	}

	// Defaults
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = "data"
	}
	if cfg.Data.Source == "" {
		cfg.Data.Source = SourceCSV
	}
	if cfg.Data.SQLitePath == "" {
		cfg.Data.SQLitePath = "data/stocks.db"
	}
	if cfg.ReferenceDate == "" {
		cfg.ReferenceDate = "2024-06-06"
	}
	if cfg.Report.SortBy == "" {
		cfg.Report.SortBy = "symbol"
	}
	if cfg.Report.Missing == "" {
		cfg.Report.Missing = "zero"
	}
	if cfg.Chart.OutputDir == "" {
		cfg.Chart.OutputDir = "charts"
	}
	if cfg.Schedule.WatchCron == "" {
		cfg.Schedule.WatchCron = "0 0 18 * * 1-5"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "pretty"
	}
	if cfg.Log.File == "" {
		cfg.Log.File = "main.log"
	}
	if cfg.Log.MaxSizeMB == 0 {
		cfg.Log.MaxSizeMB = 10
	}
	if cfg.Log.MaxBackups == 0 {
		cfg.Log.MaxBackups = 3
	}

	return cfg, nil
}

// Reference parses ReferenceDate as a UTC calendar date.
func (c *Config) Reference() (time.Time, error) {
	t, err := time.Parse(referenceLayout, c.ReferenceDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("reference_date %q: want YYYY-MM-DD", c.ReferenceDate)
	}
	return t, nil
}

// LogFile returns the log file path, or "" when file logging is disabled ("-").
func (c *Config) LogFile() string {
	if c.Log.File == "-" {
		return ""
	}
	return c.Log.File
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if _, err := c.Reference(); err != nil {
		return err
	}
	switch c.Data.Source {
	case SourceCSV:
		if c.Data.Dir == "" {
			return fmt.Errorf("data.dir is required")
		}
	case SourceSQLite:
		if c.Data.SQLitePath == "" {
			return fmt.Errorf("data.sqlite_path is required")
		}
	default:
		return fmt.Errorf("data.source must be %q or %q, got %q", SourceCSV, SourceSQLite, c.Data.Source)
	}
	if c.Report.Missing != "zero" && c.Report.Missing != "absent" {
		return fmt.Errorf("report.missing must be zero or absent, got %q", c.Report.Missing)
	}
	if c.Log.Format != "pretty" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be pretty or json, got %q", c.Log.Format)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 {
		return fmt.Errorf("log rotation limits must not be negative")
	}
	return nil
}
