package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"hrview/internal/provider"
)

func runSend(root rootArgs, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("send", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var common commonFlags
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return errors.New("usage: hrview send state <value> | hrview send heart-rate <bpm>")
	}
	kind, value := fs.Arg(0), strings.TrimSpace(fs.Arg(1))

	cfg, err := common.load(root)
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout())
	defer cancel()

	var res provider.Result
	switch kind {
	case "state":
		res, err = client.SendState(ctx, value)
	case "heart-rate", "heart_rate", "hr":
		bpm, convErr := strconv.Atoi(value)
		if convErr != nil || bpm <= 0 {
			return fmt.Errorf("heart rate %q is not a positive integer", value)
		}
		res, err = client.SendHeartRate(ctx, bpm)
	default:
		return fmt.Errorf("unknown series %q (want state or heart-rate)", kind)
	}
	if err != nil {
		if res.Message != "" {
			return fmt.Errorf("%s: %w", res.Message, err)
		}
		return err
	}
	if !res.OK {
		return errors.New(res.Message)
	}
	_, _ = fmt.Fprintln(out, res.Message)
	return nil
}
