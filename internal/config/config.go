package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hrview/internal/features"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	DefaultURL            = "http://localhost:8080"
	DefaultListen         = ":8080"
	DefaultRenderInterval = 80
	DefaultFetchInterval  = 1000
	DefaultRequestTimeout = 5
	DefaultDotEnvPath     = ".env"
	envURL                = "HRVIEW_URL"
	envTimeZone           = "HRVIEW_TIME_ZONE"
	envListen             = "HRVIEW_LISTEN"
)

// Config is the persisted config file schema.
type Config struct {
	URL                  string          `toml:"url" yaml:"url"`
	Listen               string          `toml:"listen" yaml:"listen"`
	RenderIntervalMillis int             `toml:"render_interval_ms" yaml:"render_interval_ms"`
	FetchIntervalMillis  int             `toml:"fetch_interval_ms" yaml:"fetch_interval_ms"`
	RequestTimeoutSecs   int             `toml:"request_timeout_seconds" yaml:"request_timeout_seconds"`
	MaxEntries           int             `toml:"max_entries" yaml:"max_entries"`
	TimeZone             string          `toml:"time_zone" yaml:"time_zone"`
	Features             map[string]bool `toml:"features" yaml:"features"`
	Source               string          `toml:"-" yaml:"-"`
}

func Default() Config {
	return Config{
		URL:                  DefaultURL,
		Listen:               DefaultListen,
		RenderIntervalMillis: DefaultRenderInterval,
		FetchIntervalMillis:  DefaultFetchInterval,
		RequestTimeoutSecs:   DefaultRequestTimeout,
	}
}

func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hrview", "config.toml")
}

// LoadDotEnv loads key=value pairs from path into the process environment.
// A missing file is not an error; variables already set are not overridden.
func LoadDotEnv(path string) error {
	if path == "" {
		path = DefaultDotEnvPath
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load reads the config at path (TOML, or YAML for .yaml/.yml), then applies
// environment overrides. A missing file yields the defaults. Callers validate
// after applying their own overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, errors.New("config path is empty and $HOME is not set")
	}
	cfg.Source = path

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg), nil
		}
		return cfg, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	if err := unmarshal(path, content, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}
	return applyEnv(cfg), nil
}

func unmarshal(path string, content []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(content, cfg)
	default:
		return toml.Unmarshal(content, cfg)
	}
}

func applyEnv(cfg Config) Config {
	if env := strings.TrimSpace(os.Getenv(envURL)); env != "" {
		cfg.URL = env
	}
	if env := strings.TrimSpace(os.Getenv(envTimeZone)); env != "" {
		cfg.TimeZone = env
	}
	if env := strings.TrimSpace(os.Getenv(envListen)); env != "" {
		cfg.Listen = env
	}
	return cfg
}

// Validate rejects values the poller cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.URL) == "" {
		return errors.New("url must not be empty")
	}
	if c.RenderIntervalMillis <= 0 {
		return fmt.Errorf("render_interval_ms must be positive, got %d", c.RenderIntervalMillis)
	}
	if c.FetchIntervalMillis <= 0 {
		return fmt.Errorf("fetch_interval_ms must be positive, got %d", c.FetchIntervalMillis)
	}
	if c.RequestTimeoutSecs <= 0 {
		return fmt.Errorf("request_timeout_seconds must be positive, got %d", c.RequestTimeoutSecs)
	}
	if c.MaxEntries < 0 {
		return fmt.Errorf("max_entries must not be negative, got %d", c.MaxEntries)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	for key := range c.Features {
		if !features.IsKnown(key) {
			return fmt.Errorf("unknown feature flag: %s", key)
		}
	}
	return nil
}

func (c Config) RenderInterval() time.Duration {
	return time.Duration(c.RenderIntervalMillis) * time.Millisecond
}

func (c Config) FetchInterval() time.Duration {
	return time.Duration(c.FetchIntervalMillis) * time.Millisecond
}

func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSecs) * time.Second
}

// Location resolves TimeZone; empty means the viewer's local zone.
func (c Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.TimeZone)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("time_zone %q: %w", name, err)
	}
	return loc, nil
}

// FeatureSet returns the feature values resolved from config.
func (c Config) FeatureSet() features.Set {
	out := make(features.Set, len(c.Features))
	for k, v := range c.Features {
		out[k] = v
	}
	return out
}
