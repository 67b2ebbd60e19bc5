package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"hrview/internal/config"
	"hrview/internal/logger"
	"hrview/internal/provider"
)

func runServe(root rootArgs, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var cfgPath string
	var listen string
	var overrides stringSlice
	var maxMessages int
	fs.StringVar(&cfgPath, "config", "", "Path to config file (default ~/.hrview/config.toml)")
	fs.StringVar(&listen, "listen", "", "Listen address (default from config, "+config.DefaultListen+")")
	fs.Var(&overrides, "c", "Override config value key=value (repeatable)")
	fs.IntVar(&maxMessages, "max-messages", provider.MaxMessages, "Entries kept per series")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	cfg = config.ApplyKVOverrides(cfg, prependOverrides(root.overrides, []string(overrides)))
	addr := strings.TrimSpace(listen)
	if addr == "" {
		addr = cfg.Listen
	}
	if addr == "" {
		addr = config.DefaultListen
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	accessLog := logger.Named("provider")
	if entry, closer, _, err := logger.SetupComponentFile("provider", logger.DefaultProviderLogPath); err != nil {
		logger.Warnf("failed to initialize provider log (%s): %v", logger.DefaultProviderLogPath, err)
	} else {
		accessLog = entry
		defer closer.Close()
	}

	store := provider.NewStore(maxMessages, time.Now)
	handler := provider.NewHandler(store, accessLog)
	logger.Infof("demo provider listening on %s", addr)
	_, _ = fmt.Fprintf(out, "serving history on %s (ctrl+c to stop)\n", addr)
	return provider.Serve(ctx, addr, handler)
}
