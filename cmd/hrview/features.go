package main

import (
	"flag"
	"fmt"
	"io"

	"hrview/internal/config"
	"hrview/internal/features"
)

func runFeatures(root rootArgs, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("features", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var cfgPath string
	var overrides stringSlice
	fs.StringVar(&cfgPath, "config", "", "Path to config file (default ~/.hrview/config.toml)")
	fs.Var(&overrides, "c", "Override config value key=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	cfg = config.ApplyKVOverrides(cfg, prependOverrides(root.overrides, []string(overrides)))
	set := cfg.FeatureSet()
	for _, spec := range features.Specs {
		_, _ = fmt.Fprintf(out, "%s\t%s\t%t\n", spec.Key, spec.Stage, set.Enabled(spec.Key))
	}
	return nil
}
