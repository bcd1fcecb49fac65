package watcher

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNew_NoFiles(t *testing.T) {
	if _, err := New(nil, 0, testLogger(), func(string) {}); err == nil {
		t.Error("expected error for empty file list")
	}
}

func TestWatcher_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu.txt")
	other := filepath.Join(dir, "other.txt")
	if err := os.WriteFile(path, []byte("About"), 0o644); err != nil {
		t.Fatal(err)
	}

	var mu sync.Mutex
	var calls []string
	w, err := New([]string{path}, 100*time.Millisecond, testLogger(), func(p string) {
		mu.Lock()
		calls = append(calls, p)
		mu.Unlock()
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register.
	time.Sleep(100 * time.Millisecond)
	for i := 0; i < 3; i++ {
		os.WriteFile(path, []byte("About\n  Team"), 0o644)
		time.Sleep(10 * time.Millisecond)
	}
	os.WriteFile(other, []byte("ignored"), 0o644)

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		n := len(calls)
		mu.Unlock()
		if n > 0 {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	// Wait past another debounce window to catch duplicate dispatches.
	time.Sleep(300 * time.Millisecond)

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("run: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 1 {
		t.Fatalf("expected one debounced call, got %d: %v", len(calls), calls)
	}
	abs, _ := filepath.Abs(path)
	if calls[0] != abs {
		t.Errorf("expected call for %s, got %s", abs, calls[0])
	}
}

func TestWatcher_ReplacedRunDoesNotClearNewer(t *testing.T) {
	calls := 0
	w, err := New([]string{"menu.txt"}, time.Hour, testLogger(), func(string) { calls++ })
	if err != nil {
		t.Fatal(err)
	}
	path, _ := filepath.Abs("menu.txt")

	w.schedule(path)
	stale := w.timers[path]
	w.schedule(path)
	defer w.stopTimers()

	// The first run's timer fired just before being replaced.
	if w.fired(path, stale) {
		t.Fatal("expected the replaced run to be skipped")
	}
	current, ok := w.timers[path]
	if !ok || current == stale {
		t.Fatal("expected the newer run to stay scheduled")
	}
	if !w.fired(path, current) {
		t.Fatal("expected the current run to fire")
	}
	if _, ok := w.timers[path]; ok {
		t.Error("expected entry cleared after the current run fired")
	}
	if calls != 0 {
		t.Errorf("expected no handler calls, got %d", calls)
	}
}
