package main

import (
	"flag"
	"fmt"
	"io"

	"hrview/internal/logger"
	"hrview/internal/tui"
)

func runWatch(root rootArgs, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("hrview", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var common commonFlags
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unknown command %q (see `hrview help`)", fs.Arg(0))
	}

	cfg, err := common.load(root)
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	viewOpts, err := viewOptions(cfg)
	if err != nil {
		return err
	}
	logger.Infof("watching %s (render %s, fetch %s)", client.BaseURL(), cfg.RenderInterval(), cfg.FetchInterval())

	res, err := tui.Run(tui.Options{
		Fetcher:        client,
		View:           viewOpts,
		URL:            client.BaseURL(),
		RenderInterval: cfg.RenderInterval(),
		FetchInterval:  cfg.FetchInterval(),
		Features:       cfg.FeatureSet(),
		Log:            logger.Named("tui"),
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "received %d state changes and %d heart rate samples\n", len(res.State), len(res.HeartRate))
	return nil
}
