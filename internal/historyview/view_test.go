package historyview

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"hrview/internal/history"
)

type fakeFetcher struct {
	snaps  []history.Snapshot
	err    error
	sinces []int64
}

func (f *fakeFetcher) Fetch(_ context.Context, since int64) (history.Snapshot, error) {
	f.sinces = append(f.sinces, since)
	if f.err != nil {
		return history.Snapshot{}, f.err
	}
	if len(f.snaps) == 0 {
		return history.Snapshot{}, nil
	}
	s := f.snaps[0]
	f.snaps = f.snaps[1:]
	return s, nil
}

type mapSink map[string]string

func (m mapSink) SetText(id, text string) { m[id] = text }

func TestEndToEndFirstFetchAndRender(t *testing.T) {
	v := New(Options{Location: time.UTC})
	f := &fakeFetcher{snaps: []history.Snapshot{{
		State: history.Buffer{{Timestamp: 1000, Value: "A"}},
	}}}

	if err := v.FetchHistory(context.Background(), f); err != nil {
		t.Fatalf("FetchHistory: %v", err)
	}
	if !reflect.DeepEqual(f.sinces, []int64{0}) {
		t.Fatalf("first fetch should use since=0, got %v", f.sinces)
	}
	if !reflect.DeepEqual(v.State(), history.Buffer{{Timestamp: 1000, Value: "A"}}) {
		t.Fatalf("State() = %v", v.State())
	}
	if len(v.HeartRate()) != 0 {
		t.Fatalf("HeartRate() = %v, want empty", v.HeartRate())
	}

	sink := mapSink{}
	v.RenderInto(sink, time.UnixMilli(1000))
	if got := sink[StateSinkID]; got != "01/01 00:00:01.000 (-00:00:00.000) A" {
		t.Fatalf("state sink = %q", got)
	}
	if got, ok := sink[HeartRateSinkID]; !ok || got != "" {
		t.Fatalf("heart rate sink = %q (set=%v), want empty text", got, ok)
	}
}

func TestSinceUsesNewestHeadAcrossBuffers(t *testing.T) {
	v := New(Options{})
	v.Apply(history.Snapshot{
		State:     history.Buffer{{Timestamp: 300, Value: "s"}, {Timestamp: 100, Value: "t"}},
		HeartRate: history.Buffer{{Timestamp: 250, Value: "70"}},
	})
	if got := v.Since(); got != 300 {
		t.Fatalf("Since() = %d, want 300", got)
	}

	f := &fakeFetcher{}
	if err := v.FetchHistory(context.Background(), f); err != nil {
		t.Fatalf("FetchHistory: %v", err)
	}
	if f.sinces[0] != 300 {
		t.Fatalf("fetch since = %d, want 300", f.sinces[0])
	}
}

func TestApplyPrependsInOrder(t *testing.T) {
	v := New(Options{})
	v.Apply(history.Snapshot{State: history.Buffer{{Timestamp: 100, Value: "x"}}})
	v.Apply(history.Snapshot{State: history.Buffer{{Timestamp: 200, Value: "b"}, {Timestamp: 150, Value: "a"}}})

	want := history.Buffer{{Timestamp: 200, Value: "b"}, {Timestamp: 150, Value: "a"}, {Timestamp: 100, Value: "x"}}
	if !reflect.DeepEqual(v.State(), want) {
		t.Fatalf("State() = %v, want %v", v.State(), want)
	}
}

func TestOverlappingFetchesDuplicateEntries(t *testing.T) {
	overlap := history.Snapshot{HeartRate: history.Buffer{{Timestamp: 200, Value: "72"}}}
	v := New(Options{})
	v.Apply(overlap)
	v.Apply(overlap)

	if got := len(v.HeartRate()); got != 2 {
		t.Fatalf("merge is not idempotent: expected 2 entries after a duplicate payload, got %d", got)
	}
}

func TestDedupOption(t *testing.T) {
	overlap := history.Snapshot{HeartRate: history.Buffer{{Timestamp: 200, Value: "72"}}}
	v := New(Options{Dedup: true})
	v.Apply(overlap)
	v.Apply(overlap)
	if got := len(v.HeartRate()); got != 1 {
		t.Fatalf("expected duplicates dropped with dedup, got %d entries", got)
	}
}

func TestMaxEntriesOption(t *testing.T) {
	v := New(Options{MaxEntries: 2})
	v.Apply(history.Snapshot{State: history.Buffer{{Timestamp: 3}, {Timestamp: 2}, {Timestamp: 1}}})
	if got := v.State(); len(got) != 2 || got[0].Timestamp != 3 {
		t.Fatalf("State() = %v", got)
	}
}

func TestFetchFailureLeavesBuffersUnchanged(t *testing.T) {
	v := New(Options{})
	v.Apply(history.Snapshot{State: history.Buffer{{Timestamp: 10, Value: "1"}}})
	boom := errors.New("connection refused")

	err := v.FetchHistory(context.Background(), &fakeFetcher{err: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("FetchHistory error = %v", err)
	}
	if len(v.State()) != 1 {
		t.Fatalf("buffers changed after failure: %v", v.State())
	}
}

func TestRenderLineCountMatchesEntries(t *testing.T) {
	v := New(Options{Location: time.UTC})
	v.Apply(history.Snapshot{HeartRate: history.Buffer{{Timestamp: 3000, Value: "71"}, {Timestamp: 2000, Value: "70"}}})
	r := v.Render(time.UnixMilli(5000))
	if n := len(strings.Split(r.HeartRate, "\n")); n != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", n, r.HeartRate)
	}
	if r.State != "" {
		t.Fatalf("state render should be empty, got %q", r.State)
	}
}
