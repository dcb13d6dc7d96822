package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// SchemaVersion is the config schema version written by this build.
const SchemaVersion = "1.0.0"

// schemaConstraint is the range of config schema versions this build reads.
const schemaConstraint = "^1.0.0"

// Default values for every config section.
const (
	DefaultLogLevel       = "info"
	DefaultCategoryWidth  = 16
	DefaultAmountWidth    = 10
	DefaultScrollbarPad   = 1
	DefaultRowPadding     = 0
	DefaultMinHeight      = 3
	DefaultMaxHeight      = 40
	DefaultHeight         = 12
	DefaultPollInterval   = 100 * time.Millisecond
	DefaultMaxAttempts    = 60
	DefaultDeliveryBuffer = 5
	DefaultHTTPTimeout    = 5 * time.Second
	DefaultEDSMURL        = "https://www.edsm.net"
	DefaultInaraURL       = "https://inara.cz"
)

// Environment variables read by ApplyEnv.
const (
	EnvHome       = "EDFC_HOME"
	EnvJournalDir = "EDFC_JOURNAL_DIR"
	EnvCargoFile  = "EDFC_CARGO_FILE"
	EnvLogLevel   = "EDFC_LOG_LEVEL"
	EnvEDSMURL    = "EDFC_EDSM_URL"
	EnvInaraURL   = "EDFC_INARA_URL"
	EnvPollCap    = "EDFC_POLL_MAX_ATTEMPTS"
)

// ErrUnsupportedVersion is returned when a config file declares a schema
// version outside the supported range.
var ErrUnsupportedVersion = errors.New("unsupported config schema version")

// Config is the full edfc configuration.
type Config struct {
	Version string        `yaml:"version"`
	Logging LoggingConfig `yaml:"logging"`
	Journal JournalConfig `yaml:"journal"`
	Cargo   CargoConfig   `yaml:"cargo"`
	Table   TableConfig   `yaml:"table"`
	Lookup  LookupConfig  `yaml:"lookup"`
	Remote  RemoteConfig  `yaml:"remote"`
}

// LoggingConfig controls log level and the optional log file.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// JournalConfig points at the game's journal directory.
type JournalConfig struct {
	Dir string `yaml:"dir"`
}

// CargoConfig points at the carrier cargo snapshot file.
type CargoConfig struct {
	File string `yaml:"file"`
}

// TableConfig holds the cargo table geometry, in terminal cells.
type TableConfig struct {
	CategoryWidth int `yaml:"category_width"`
	AmountWidth   int `yaml:"amount_width"`
	ScrollbarPad  int `yaml:"scrollbar_pad"`
	RowPadding    int `yaml:"row_padding"`
	MinHeight     int `yaml:"min_height"`
	MaxHeight     int `yaml:"max_height"`
	Height        int `yaml:"height"`
}

// LookupConfig controls the background lookup polling.
type LookupConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
	MaxAttempts  int           `yaml:"max_attempts"`
	Buffer       int           `yaml:"buffer"`
	HTTPTimeout  time.Duration `yaml:"http_timeout"`
}

// RemoteConfig holds the base URLs of the remote lookup services.
type RemoteConfig struct {
	EDSMURL  string `yaml:"edsm_url"`
	InaraURL string `yaml:"inara_url"`
}

// New returns a Config populated with defaults and environment overrides.
func New() *Config {
	cfg := defaults()
	cfg.ApplyEnv()
	return cfg
}

func defaults() *Config {
	home, err := GetConfigDir()
	if err != nil {
		home = filepath.Join(os.TempDir(), "edfc")
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		userHome = os.TempDir()
	}

	return &Config{
		Version: SchemaVersion,
		Logging: LoggingConfig{
			Level: DefaultLogLevel,
			File:  filepath.Join(home, "logs", "edfc.log"),
		},
		Journal: JournalConfig{
			Dir: filepath.Join(userHome, "Saved Games", "Frontier Developments", "Elite Dangerous"),
		},
		Cargo: CargoConfig{
			File: filepath.Join(home, "cargo.json"),
		},
		Table: TableConfig{
			CategoryWidth: DefaultCategoryWidth,
			AmountWidth:   DefaultAmountWidth,
			ScrollbarPad:  DefaultScrollbarPad,
			RowPadding:    DefaultRowPadding,
			MinHeight:     DefaultMinHeight,
			MaxHeight:     DefaultMaxHeight,
			Height:        DefaultHeight,
		},
		Lookup: LookupConfig{
			PollInterval: DefaultPollInterval,
			MaxAttempts:  DefaultMaxAttempts,
			Buffer:       DefaultDeliveryBuffer,
			HTTPTimeout:  DefaultHTTPTimeout,
		},
		Remote: RemoteConfig{
			EDSMURL:  DefaultEDSMURL,
			InaraURL: DefaultInaraURL,
		},
	}
}

// Load returns defaults overlaid with the YAML file at path and the
// environment. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err = yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from EDFC_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvJournalDir); v != "" {
		c.Journal.Dir = v
	}
	if v := os.Getenv(EnvCargoFile); v != "" {
		c.Cargo.File = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvEDSMURL); v != "" {
		c.Remote.EDSMURL = v
	}
	if v := os.Getenv(EnvInaraURL); v != "" {
		c.Remote.InaraURL = v
	}
	if v := os.Getenv(EnvPollCap); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Lookup.MaxAttempts = n
		}
	}
}

// Validate checks the schema version and the table and lookup bounds.
func (c *Config) Validate() error {
	if c.Version != "" {
		v, err := semver.NewVersion(c.Version)
		if err != nil {
			return fmt.Errorf("%w: %q: %w", ErrUnsupportedVersion, c.Version, err)
		}
		constraint, err := semver.NewConstraint(schemaConstraint)
		if err != nil {
			return fmt.Errorf("parsing schema constraint: %w", err)
		}
		if !constraint.Check(v) {
			return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedVersion, v, schemaConstraint)
		}
	}

	t := c.Table
	if t.CategoryWidth < 0 || t.AmountWidth < 0 || t.ScrollbarPad < 0 || t.RowPadding < 0 {
		return errors.New("table widths and paddings must be >= 0")
	}
	if t.MinHeight < 1 || t.MaxHeight < t.MinHeight {
		return fmt.Errorf("table height bounds invalid: min=%d max=%d", t.MinHeight, t.MaxHeight)
	}
	if c.Lookup.PollInterval <= 0 || c.Lookup.MaxAttempts < 1 || c.Lookup.Buffer < 1 {
		return fmt.Errorf("lookup polling invalid: interval=%s attempts=%d buffer=%d",
			c.Lookup.PollInterval, c.Lookup.MaxAttempts, c.Lookup.Buffer)
	}
	return nil
}

// ClampHeight clamps h into the configured table height bounds.
func (t TableConfig) ClampHeight(h int) int {
	return min(max(h, t.MinHeight), t.MaxHeight)
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	dir, err := GetConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}
