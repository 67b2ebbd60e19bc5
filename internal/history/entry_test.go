package history

import (
	"reflect"
	"testing"
)

func TestMergePrependsWithoutReordering(t *testing.T) {
	buf := Buffer{{Timestamp: 100, Value: "x"}}
	fresh := Buffer{{Timestamp: 200, Value: "b"}, {Timestamp: 150, Value: "a"}}

	got := Merge(fresh, buf)
	want := Buffer{
		{Timestamp: 200, Value: "b"},
		{Timestamp: 150, Value: "a"},
		{Timestamp: 100, Value: "x"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Merge() = %v, want %v", got, want)
	}
	if len(buf) != 1 || buf[0].Value != "x" {
		t.Fatalf("Merge mutated the existing buffer: %v", buf)
	}
}

func TestMergeKeepsDuplicates(t *testing.T) {
	overlap := Buffer{{Timestamp: 200, Value: "b"}}
	buf := Merge(overlap, nil)
	buf = Merge(overlap, buf)

	if len(buf) != 2 {
		t.Fatalf("expected duplicate entries to be kept, got %v", buf)
	}
	if buf[0] != buf[1] {
		t.Fatalf("expected identical duplicates, got %v", buf)
	}
}

func TestMergeEmptyNew(t *testing.T) {
	buf := Buffer{{Timestamp: 1, Value: "a"}}
	if got := Merge(nil, buf); !reflect.DeepEqual(got, buf) {
		t.Fatalf("Merge(nil, buf) = %v, want %v", got, buf)
	}
}

func TestSince(t *testing.T) {
	cases := []struct {
		name      string
		state     Buffer
		heartRate Buffer
		want      int64
	}{
		{name: "both empty", want: 0},
		{
			name:      "state newer",
			state:     Buffer{{Timestamp: 300, Value: "3"}, {Timestamp: 10, Value: "1"}},
			heartRate: Buffer{{Timestamp: 250, Value: "70"}},
			want:      300,
		},
		{
			name:      "heart rate newer",
			state:     Buffer{{Timestamp: 300, Value: "3"}},
			heartRate: Buffer{{Timestamp: 400, Value: "70"}},
			want:      400,
		},
		{
			name:      "one empty",
			heartRate: Buffer{{Timestamp: 250, Value: "70"}},
			want:      250,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Since(tc.state, tc.heartRate); got != tc.want {
				t.Fatalf("Since() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestDedupKeepsFirstOccurrence(t *testing.T) {
	buf := Buffer{
		{Timestamp: 200, Value: "new"},
		{Timestamp: 150, Value: "a"},
		{Timestamp: 200, Value: "old"},
	}
	got := Dedup(buf)
	want := Buffer{{Timestamp: 200, Value: "new"}, {Timestamp: 150, Value: "a"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Dedup() = %v, want %v", got, want)
	}
}

func TestTruncate(t *testing.T) {
	buf := Buffer{{Timestamp: 3}, {Timestamp: 2}, {Timestamp: 1}}
	if got := Truncate(buf, 0); len(got) != 3 {
		t.Fatalf("Truncate(0) should not limit, got %d entries", len(got))
	}
	got := Truncate(buf, 2)
	if len(got) != 2 || got[0].Timestamp != 3 || got[1].Timestamp != 2 {
		t.Fatalf("Truncate(2) = %v", got)
	}
}
