package main

import (
	"flag"
	"fmt"
	"io"

	"hrview/internal/features"
)

type rootArgs struct {
	overrides []string
}

func parseRootArgs(args []string) (rootArgs, []string, error) {
	fs := flag.NewFlagSet("hrview", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var overrides stringSlice
	var enable stringSlice
	var disable stringSlice
	fs.Var(&overrides, "c", "Override config value key=value (repeatable, applied before subcommand overrides)")
	fs.Var(&enable, "enable", "Enable a feature (repeatable). Equivalent to -c features.<name>=true")
	fs.Var(&disable, "disable", "Disable a feature (repeatable). Equivalent to -c features.<name>=false")
	if err := fs.Parse(args); err != nil {
		return rootArgs{}, nil, err
	}

	featureOverrides, err := buildFeatureOverrides(enable, disable)
	if err != nil {
		return rootArgs{}, nil, err
	}
	all := append([]string{}, overrides...)
	all = append(all, featureOverrides...)
	return rootArgs{overrides: all}, fs.Args(), nil
}

func prependOverrides(root []string, overrides []string) []string {
	merged := append([]string{}, root...)
	return append(merged, overrides...)
}

func buildFeatureOverrides(enable []string, disable []string) ([]string, error) {
	var overrides []string
	for _, key := range enable {
		if !features.IsKnown(key) {
			return nil, fmt.Errorf("unknown feature flag: %s", key)
		}
		overrides = append(overrides, fmt.Sprintf("features.%s=%t", key, true))
	}
	for _, key := range disable {
		if !features.IsKnown(key) {
			return nil, fmt.Errorf("unknown feature flag: %s", key)
		}
		overrides = append(overrides, fmt.Sprintf("features.%s=%t", key, false))
	}
	return overrides, nil
}

func printUsage(out io.Writer) {
	_, _ = fmt.Fprint(out, `Usage: hrview [-c key=value] [--enable name] [--disable name] [command] [flags]

Commands:
  (none)     watch the provider in an interactive view (--config, --url)
  once       fetch one snapshot and print both histories (--since)
  serve      run the in-memory demo provider (--listen)
  send       send state <value> | send heart-rate <bpm>
  chart      export the full history as an HTML chart (--out, --open)
  config     show | init
  features   list feature flags and their effective values
  completion print bash or zsh completions
`)
}
