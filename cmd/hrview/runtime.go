package main

import (
	"flag"
	"fmt"
	"strings"

	"hrview/internal/config"
	"hrview/internal/features"
	"hrview/internal/historyview"
	"hrview/internal/logger"
	"hrview/internal/provider"
)

// commonFlags 是所有访问 provider 的子命令共享的参数。
type commonFlags struct {
	cfgPath   string
	url       string
	overrides stringSlice
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.cfgPath, "config", "", "Path to config file (default ~/.hrview/config.toml)")
	fs.StringVar(&c.url, "url", "", "History provider base URL (default from config)")
	fs.Var(&c.overrides, "c", "Override config value key=value (repeatable)")
}

// load 依次叠加配置文件、环境变量、-c 覆盖与 --url，然后校验。
func (c *commonFlags) load(root rootArgs) (config.Config, error) {
	cfg, err := config.Load(c.cfgPath)
	if err != nil {
		return cfg, err
	}
	cfg = config.ApplyKVOverrides(cfg, prependOverrides(root.overrides, []string(c.overrides)))
	if u := strings.TrimSpace(c.url); u != "" {
		cfg.URL = u
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newClient(cfg config.Config) (*provider.Client, error) {
	return provider.NewClient(provider.Options{
		BaseURL: cfg.URL,
		Timeout: cfg.RequestTimeout(),
		Logger:  logger.NewFetchLogger(logger.Root()),
	})
}

func viewOptions(cfg config.Config) (historyview.Options, error) {
	loc, err := cfg.Location()
	if err != nil {
		return historyview.Options{}, err
	}
	return historyview.Options{
		Location:   loc,
		MaxEntries: cfg.MaxEntries,
		Dedup:      cfg.FeatureSet().Enabled(features.Dedup),
	}, nil
}
