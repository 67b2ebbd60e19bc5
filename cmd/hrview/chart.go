package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"hrview/internal/chart"

	"github.com/cli/browser"
)

const defaultChartPath = "hrview-chart.html"

// openBrowser 可在测试中替换。
var openBrowser = browser.OpenFile

func runChart(root rootArgs, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("chart", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var common commonFlags
	common.register(fs)
	var outPath string
	var title string
	var open bool
	fs.StringVar(&outPath, "out", defaultChartPath, "Output HTML path")
	fs.StringVar(&title, "title", "", "Page subtitle (default MindMurmur history)")
	fs.BoolVar(&open, "open", false, "Open the chart in the default browser")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := common.load(root)
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout())
	defer cancel()
	snap, err := client.Fetch(ctx, 0)
	if err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := chart.Render(f, snap, chart.Options{Title: title, Location: loc}); err != nil {
		_ = f.Close()
		_ = os.Remove(outPath)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	abs, err := filepath.Abs(outPath)
	if err != nil {
		abs = outPath
	}
	_, _ = fmt.Fprintf(out, "wrote %s (%d state, %d heart rate)\n", abs, len(snap.State), len(snap.HeartRate))
	if open {
		return openBrowser(abs)
	}
	return nil
}
