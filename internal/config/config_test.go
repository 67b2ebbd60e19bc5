package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(envURL, "")
	t.Setenv(envTimeZone, "")
	t.Setenv(envListen, "")
}

func TestDefault_Intervals(t *testing.T) {
	cfg := Default()
	if cfg.RenderInterval() != 80*time.Millisecond {
		t.Fatalf("RenderInterval() = %v, want 80ms", cfg.RenderInterval())
	}
	if cfg.FetchInterval() != time.Second {
		t.Fatalf("FetchInterval() = %v, want 1s", cfg.FetchInterval())
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoad_MissingFile_UsesDefaults(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source != path {
		t.Fatalf("cfg.Source = %q, want %q", cfg.Source, path)
	}
	if cfg.URL != DefaultURL {
		t.Fatalf("cfg.URL = %q, want %q", cfg.URL, DefaultURL)
	}
}

func TestLoad_FromTOML(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`
url = "http://mindmurmur.local:8080"
fetch_interval_ms = 2000
max_entries = 50

[features]
dedup = true
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.URL != "http://mindmurmur.local:8080" {
		t.Fatalf("cfg.URL = %q", cfg.URL)
	}
	if cfg.FetchIntervalMillis != 2000 || cfg.RenderIntervalMillis != DefaultRenderInterval {
		t.Fatalf("unexpected intervals: %+v", cfg)
	}
	if cfg.MaxEntries != 50 {
		t.Fatalf("cfg.MaxEntries = %d", cfg.MaxEntries)
	}
	if !cfg.FeatureSet().Enabled("dedup") {
		t.Fatalf("expected dedup feature to be enabled: %v", cfg.Features)
	}
}

func TestLoad_FromYAML(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("url: http://yaml.test\ntime_zone: UTC\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.URL != "http://yaml.test" || cfg.TimeZone != "UTC" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	loc, err := cfg.Location()
	if err != nil || loc != time.UTC {
		t.Fatalf("Location() = %v, %v", loc, err)
	}
}

func TestLoad_ParseError(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("url = ["), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "failed to parse config file") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(envURL, "http://env.test")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`url = "http://file.test"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.URL != "http://env.test" {
		t.Fatalf("cfg.URL = %q, want env value", cfg.URL)
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	if err := LoadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv(missing) = %v", err)
	}

	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("HRVIEW_URL=http://dotenv.test\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	// godotenv 不覆盖已存在的变量，先移除 clearEnv 设置的空值。
	os.Unsetenv(envURL)
	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv(envURL); got != "http://dotenv.test" {
		t.Fatalf("HRVIEW_URL = %q", got)
	}
}

func TestApplyKVOverrides(t *testing.T) {
	cfg := Default()
	got := ApplyKVOverrides(cfg, []string{
		"url=http://override.test",
		"fetch_interval_ms=250",
		"render_interval_ms=-1",
		"features.animations=false",
		"features.dedup=notabool",
		"garbage",
	})
	if got.URL != "http://override.test" {
		t.Fatalf("URL = %q", got.URL)
	}
	if got.FetchIntervalMillis != 250 {
		t.Fatalf("FetchIntervalMillis = %d", got.FetchIntervalMillis)
	}
	if got.RenderIntervalMillis != DefaultRenderInterval {
		t.Fatalf("negative render interval should be ignored, got %d", got.RenderIntervalMillis)
	}
	if v, ok := got.Features["animations"]; !ok || v {
		t.Fatalf("features.animations should be false: %v", got.Features)
	}
	if _, ok := got.Features["dedup"]; ok {
		t.Fatalf("unparsable feature value should be ignored: %v", got.Features)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{name: "empty url", mutate: func(c *Config) { c.URL = " " }, want: "url"},
		{name: "zero fetch", mutate: func(c *Config) { c.FetchIntervalMillis = 0 }, want: "fetch_interval_ms"},
		{name: "negative max", mutate: func(c *Config) { c.MaxEntries = -1 }, want: "max_entries"},
		{name: "bad zone", mutate: func(c *Config) { c.TimeZone = "Mars/Olympus" }, want: "time_zone"},
		{name: "unknown feature", mutate: func(c *Config) { c.Features = map[string]bool{"skills": true} }, want: "unknown feature"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tc.want)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.URL = "http://saved.test"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.URL != cfg.URL || loaded.FetchIntervalMillis != cfg.FetchIntervalMillis {
		t.Fatalf("loaded = %+v, want %+v", loaded, cfg)
	}
}
