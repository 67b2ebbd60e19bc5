package main

import (
	"reflect"
	"testing"
)

func TestParseRootArgsStopsAtSubcommand(t *testing.T) {
	orig := []string{"once", "--since", "100"}
	root, rest, err := parseRootArgs(orig)
	if err != nil {
		t.Fatalf("parseRootArgs returned error: %v", err)
	}
	if len(root.overrides) != 0 {
		t.Fatalf("expected no overrides, got %v", root.overrides)
	}
	if !reflect.DeepEqual(rest, orig) {
		t.Fatalf("expected rest to preserve args %v, got %v", orig, rest)
	}
}

func TestParseRootArgsExtractsOverrides(t *testing.T) {
	args := []string{
		"-c", "url=http://h:1",
		"--enable", "dedup",
		"-disable=animations",
		"once",
	}
	root, rest, err := parseRootArgs(args)
	if err != nil {
		t.Fatalf("parseRootArgs returned error: %v", err)
	}
	expectedOverrides := []string{
		"url=http://h:1",
		"features.dedup=true",
		"features.animations=false",
	}
	if !reflect.DeepEqual(root.overrides, expectedOverrides) {
		t.Fatalf("unexpected overrides: got %v, want %v", root.overrides, expectedOverrides)
	}
	if !reflect.DeepEqual(rest, []string{"once"}) {
		t.Fatalf("unexpected rest args: %v", rest)
	}
}

func TestParseRootArgsRejectsUnknownFeature(t *testing.T) {
	if _, _, err := parseRootArgs([]string{"--enable", "warp_drive"}); err == nil {
		t.Fatalf("expected error for unknown feature")
	}
}
