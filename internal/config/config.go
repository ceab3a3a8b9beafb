package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// envPrefix is the prefix for environment variable overrides, e.g.
// ZOOMVAULT_ZOOM_CLIENTSECRET overrides zoom.clientsecret.
const envPrefix = "ZOOMVAULT_"

// ZoomConfig holds the provider credentials and endpoints. The credentials
// triple is immutable configuration; it is never written back out and never
// logged.
type ZoomConfig struct {
	AccountID    string `koanf:"accountid"`
	ClientID     string `koanf:"clientid"`
	ClientSecret string `koanf:"clientsecret"`

	// BaseURL and TokenURL override the provider endpoints, mainly for
	// testing. Empty means the provider defaults.
	BaseURL  string `koanf:"baseurl"`
	TokenURL string `koanf:"tokenurl"`
}

// SourcesConfig toggles which transcript sources a run queries.
type SourcesConfig struct {
	Recordings bool `koanf:"recordings"`
	Sessions   bool `koanf:"sessions"`
}

// MetricsConfig configures the serve-mode metrics listener.
type MetricsConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Addr     string `koanf:"addr"`
	Exporter string `koanf:"exporter"`
}

// Config is the full configuration of the sync engine.
type Config struct {
	Zoom ZoomConfig `koanf:"zoom"`

	// Identities is the static list of identities to query when
	// account-wide enumeration is not permitted. Empty means
	// auto-discover only.
	Identities []string `koanf:"identities"`

	// VaultDir is the root of the document store on disk.
	VaultDir string `koanf:"vaultdir"`

	// Folder is the target folder for transcript documents, relative to
	// VaultDir.
	Folder string `koanf:"folder"`

	// IntervalMinutes is the serve-mode run interval.
	IntervalMinutes int `koanf:"intervalminutes"`

	// SinceDays is the discovery lower bound for a first run.
	SinceDays int `koanf:"sincedays"`

	LogLevel string `koanf:"loglevel"`

	Sources SourcesConfig `koanf:"sources"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// Default returns the configuration defaults.
func Default() Config {
	return Config{
		Folder:          "Zoom Transcripts",
		IntervalMinutes: 30,
		SinceDays:       180,
		LogLevel:        "info",
		Sources:         SourcesConfig{Recordings: true},
		Metrics:         MetricsConfig{Enabled: true, Addr: ":9090", Exporter: "prometheus"},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// ZOOMVAULT_* environment variables, in that order of precedence.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var problems []string
	if c.Zoom.AccountID == "" {
		problems = append(problems, "zoom.accountid is required")
	}
	if c.Zoom.ClientID == "" {
		problems = append(problems, "zoom.clientid is required")
	}
	if c.Zoom.ClientSecret == "" {
		problems = append(problems, "zoom.clientsecret is required")
	}
	if c.VaultDir == "" {
		problems = append(problems, "vaultdir is required")
	}
	if c.IntervalMinutes <= 0 {
		problems = append(problems, "intervalminutes must be positive")
	}
	if !c.Sources.Recordings && !c.Sources.Sessions {
		problems = append(problems, "at least one transcript source must be enabled")
	}
	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

// Interval returns the serve-mode run interval.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalMinutes) * time.Minute
}

// Since returns the discovery lower bound relative to now.
func (c *Config) Since(now time.Time) time.Time {
	return now.AddDate(0, 0, -c.SinceDays)
}
