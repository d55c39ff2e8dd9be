package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchTriggersOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	other := filepath.Join(dir, "other.yaml")
	for _, p := range []string{path, other} {
		if err := os.WriteFile(p, []byte("a"), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	fw, err := New(100 * time.Millisecond)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer fw.Close()

	changed := make(chan string, 8)
	if err := fw.Watch([]string{path}, func(p string) { changed <- p }); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- fw.Run(ctx) }()

	// Unwatched files in the same directory are ignored.
	if err := os.WriteFile(other, []byte("b"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte{byte('b' + i)}, 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	select {
	case got := <-changed:
		want, _ := filepath.Abs(path)
		if got != want {
			t.Errorf("callback path: got %s, want %s", got, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no callback after writing the watched file")
	}

	// The burst of writes is debounced into one call.
	select {
	case got := <-changed:
		t.Errorf("unexpected second callback for %s", got)
	case <-time.After(400 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run: got %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	fw, err := New(time.Millisecond)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer fw.Close()

	missing := filepath.Join(t.TempDir(), "gone", "scene.yaml")
	if err := fw.Watch([]string{missing}, func(string) {}); err == nil {
		t.Error("expected an error watching a file in a missing directory")
	}
}
