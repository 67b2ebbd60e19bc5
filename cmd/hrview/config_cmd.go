package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"hrview/internal/config"

	"github.com/pelletier/go-toml/v2"
)

func runConfig(root rootArgs, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("usage: hrview config show|init [--config path]")
	}
	fs := flag.NewFlagSet("config "+args[0], flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var cfgPath string
	var force bool
	fs.StringVar(&cfgPath, "config", "", "Path to config file (default ~/.hrview/config.toml)")
	fs.BoolVar(&force, "force", false, "Overwrite an existing file (init)")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	switch args[0] {
	case "show":
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		cfg = config.ApplyKVOverrides(cfg, root.overrides)
		data, err := toml.Marshal(cfg)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "# %s\n%s", cfg.Source, data)
		return nil
	case "init":
		path := cfgPath
		if path == "" {
			path = config.DefaultPath()
		}
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		cfg := config.ApplyKVOverrides(config.Default(), root.overrides)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		if err := config.Save(path, cfg); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "wrote %s\n", path)
		return nil
	default:
		return fmt.Errorf("unknown config command %q", args[0])
	}
}
