package config

import (
	"strconv"
	"strings"
)

// ApplyKVOverrides applies free-form -c key=value overrides.
// Unknown keys and unparsable values are ignored.
func ApplyKVOverrides(cfg Config, overrides []string) Config {
	if len(overrides) == 0 {
		return cfg
	}
	for _, raw := range overrides {
		parts := strings.SplitN(raw, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])
		if name, ok := strings.CutPrefix(key, "features."); ok {
			if b, err := strconv.ParseBool(val); err == nil && name != "" {
				if cfg.Features == nil {
					cfg.Features = map[string]bool{}
				}
				cfg.Features[name] = b
			}
			continue
		}
		switch key {
		case "url":
			cfg.URL = val
		case "listen":
			cfg.Listen = val
		case "time_zone", "tz":
			cfg.TimeZone = val
		case "render_interval_ms", "render-interval":
			if n, err := strconv.Atoi(val); err == nil && n > 0 {
				cfg.RenderIntervalMillis = n
			}
		case "fetch_interval_ms", "fetch-interval":
			if n, err := strconv.Atoi(val); err == nil && n > 0 {
				cfg.FetchIntervalMillis = n
			}
		case "request_timeout_seconds", "timeout":
			if n, err := strconv.Atoi(val); err == nil && n > 0 {
				cfg.RequestTimeoutSecs = n
			}
		case "max_entries":
			if n, err := strconv.Atoi(val); err == nil && n >= 0 {
				cfg.MaxEntries = n
			}
		}
	}
	return cfg
}
