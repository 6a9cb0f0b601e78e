package main

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestSourceURL(t *testing.T) {
	got, err := sourceURL("migrations")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "file://") {
		t.Errorf("expected file:// prefix, got %q", got)
	}
	if !strings.HasSuffix(got, "/migrations") {
		t.Errorf("expected path to end in /migrations, got %q", got)
	}
	if !filepath.IsAbs(strings.TrimPrefix(got, "file://")) {
		t.Errorf("expected absolute path, got %q", got)
	}
}
