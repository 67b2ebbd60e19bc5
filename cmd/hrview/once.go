package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"hrview/internal/historyview"
)

func runOnce(root rootArgs, args []string, out io.Writer) error {
	return runOnceAt(root, args, out, time.Now)
}

func runOnceAt(root rootArgs, args []string, out io.Writer, clock func() time.Time) error {
	fs := flag.NewFlagSet("once", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var common commonFlags
	common.register(fs)
	var since int64
	fs.Int64Var(&since, "since", 0, "Only fetch entries newer than this epoch millisecond timestamp")
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
	viewOpts, err := viewOptions(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout())
	defer cancel()
	snap, err := client.Fetch(ctx, since)
	if err != nil {
		return err
	}
	view := historyview.New(viewOpts)
	view.Apply(snap)

	blocks := map[string]string{}
	view.RenderInto(historyview.SinkFunc(func(id, text string) {
		blocks[id] = text
	}), clock())
	for i, id := range []string{historyview.StateSinkID, historyview.HeartRateSinkID} {
		if i > 0 {
			_, _ = fmt.Fprintln(out)
		}
		_, _ = fmt.Fprintf(out, "== %s ==\n", id)
		if blocks[id] != "" {
			_, _ = fmt.Fprintln(out, blocks[id])
		}
	}
	return nil
}
