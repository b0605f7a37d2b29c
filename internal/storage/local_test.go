package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewLocalSink(t *testing.T) {
	baseDir := filepath.Join(t.TempDir(), "nested", "output")

	sink, err := NewLocalSink(baseDir)
	if err != nil {
		t.Fatalf("Failed to create LocalSink: %v", err)
	}
	defer sink.Close()

	if sink.BaseDir() != baseDir {
		t.Errorf("Expected base dir %s, got %s", baseDir, sink.BaseDir())
	}
	if _, err := os.Stat(baseDir); os.IsNotExist(err) {
		t.Error("Base directory was not created")
	}
}

func TestLocalSinkStoreAndGet(t *testing.T) {
	sink, err := NewLocalSink(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create LocalSink: %v", err)
	}
	ctx := context.Background()

	location, err := sink.StoreFile(ctx, "gallery/index.html", []byte("<html></html>"))
	if err != nil {
		t.Fatalf("StoreFile failed: %v", err)
	}
	if location != filepath.Join(sink.BaseDir(), "gallery", "index.html") {
		t.Errorf("Unexpected location %s", location)
	}

	data, err := sink.GetFile(ctx, "gallery/index.html")
	if err != nil {
		t.Fatalf("GetFile failed: %v", err)
	}
	if string(data) != "<html></html>" {
		t.Errorf("Retrieved data mismatch: got %s", data)
	}

	if _, err := sink.GetFile(ctx, "missing.html"); err == nil {
		t.Error("Expected error for a missing file")
	}
	if _, err := sink.StoreFile(ctx, "../escape.html", nil); err == nil {
		t.Error("Expected error for a name outside the base directory")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := sink.StoreFile(cancelled, "late.html", nil); err == nil {
		t.Error("Expected error for a cancelled context")
	}
}

func TestLocalSinkList(t *testing.T) {
	sink, err := NewLocalSink(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create LocalSink: %v", err)
	}
	ctx := context.Background()

	for _, name := range []string{"b/chart.png", "a/index.html", "a/chart.json", "top.svg"} {
		if _, err := sink.StoreFile(ctx, name, []byte(name)); err != nil {
			t.Fatalf("StoreFile(%s) failed: %v", name, err)
		}
	}

	all, err := sink.List(ctx, "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if diff := cmp.Diff([]string{"a/chart.json", "a/index.html", "b/chart.png", "top.svg"}, all); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}

	onlyA, err := sink.List(ctx, "a/")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if diff := cmp.Diff([]string{"a/chart.json", "a/index.html"}, onlyA); diff != "" {
		t.Errorf("Prefixed list mismatch (-want +got):\n%s", diff)
	}
}

func TestLocalSinkInterface(t *testing.T) {
	var _ Sink = &LocalSink{}
	var _ Sink = &GCSSink{}
}
