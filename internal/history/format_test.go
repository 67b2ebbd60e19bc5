package history

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestFormatElapsed(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{d: 0, want: "00:00:00.000"},
		{d: 7 * time.Millisecond, want: "00:00:00.007"},
		{d: 61*time.Second + 250*time.Millisecond, want: "00:01:01.250"},
		{d: time.Hour + 2*time.Minute + 3*time.Second, want: "01:02:03.000"},
		{d: 30 * time.Hour, want: "30:00:00.000"},
		{d: 150 * time.Hour, want: "150:00:00.000"},
		{d: -1500 * time.Millisecond, want: "00:00:01.500"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.want, func(t *testing.T) {
			t.Parallel()
			if got := FormatElapsed(tc.d); got != tc.want {
				t.Fatalf("FormatElapsed(%v) = %q, want %q", tc.d, got, tc.want)
			}
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2025, 3, 4, 5, 6, 7, 89_000_000, time.UTC).UnixMilli()
	if got := FormatTimestamp(ts, time.UTC); got != "03/04 05:06:07.089" {
		t.Fatalf("FormatTimestamp() = %q", got)
	}

	zone := time.FixedZone("UTC+2", 2*60*60)
	if got := FormatTimestamp(ts, zone); got != "03/04 07:06:07.089" {
		t.Fatalf("FormatTimestamp(zone) = %q", got)
	}
}

func TestFormatLine(t *testing.T) {
	base := time.Date(2025, 3, 4, 23, 0, 0, 0, time.UTC)
	e := Entry{Timestamp: base.UnixMilli(), Value: "72"}

	got := FormatLine(e, base.Add(90*time.Second+5*time.Millisecond), time.UTC)
	want := "03/04 23:00:00.000 (-00:01:30.005) 72"
	if got != want {
		t.Fatalf("FormatLine() = %q, want %q", got, want)
	}

	future := FormatLine(e, base.Add(-2*time.Second), time.UTC)
	if future != "03/04 23:00:00.000 (+00:00:02.000) 72" {
		t.Fatalf("FormatLine(future) = %q", future)
	}
}

func TestFormatHistoryLineCount(t *testing.T) {
	now := time.UnixMilli(10_000)
	buf := Buffer{
		{Timestamp: 9_000, Value: "3"},
		{Timestamp: 5_000, Value: "2"},
		{Timestamp: 1_000, Value: "1"},
	}
	out := FormatHistory(buf, now, time.UTC)
	lines := strings.Split(out, "\n")
	if len(lines) != len(buf) {
		t.Fatalf("expected %d lines, got %d: %q", len(buf), len(lines), out)
	}
	if strings.HasSuffix(out, "\n") {
		t.Fatalf("unexpected trailing newline: %q", out)
	}
	if !strings.Contains(lines[0], "(-00:00:01.000) 3") {
		t.Fatalf("first line should be the newest entry, got %q", lines[0])
	}
	if !strings.HasSuffix(lines[2], "(-00:00:09.000) 1") {
		t.Fatalf("last line should be the oldest entry, got %q", lines[2])
	}
}

func TestFormatHistoryEmpty(t *testing.T) {
	if got := FormatHistory(nil, time.Now(), nil); got != "" {
		t.Fatalf("FormatHistory(nil) = %q, want empty", got)
	}
}

func TestFormatLineExtremeTimestamps(t *testing.T) {
	now := time.UnixMilli(1000)
	cases := []struct {
		name string
		ts   int64
		want string
	}{
		{name: "four centuries old", ts: 1000 - 12_614_400_000_000, want: "(-3504000:00:00.000)"},
		{name: "min int64", ts: math.MinInt64, want: "(-2562047788015:12:56.808)"},
		{name: "max int64", ts: math.MaxInt64, want: "(+2562047788015:12:54.807)"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := FormatLine(Entry{Timestamp: tc.ts, Value: "v"}, now, time.UTC)
			if !strings.Contains(got, tc.want) {
				t.Fatalf("FormatLine(%d) = %q, want elapsed %s", tc.ts, got, tc.want)
			}
		})
	}
}

func TestFormatElapsedMinDuration(t *testing.T) {
	if got := FormatElapsed(time.Duration(math.MinInt64)); strings.HasPrefix(got, "-") {
		t.Fatalf("FormatElapsed(min) = %q, want a non-negative magnitude", got)
	}
}
