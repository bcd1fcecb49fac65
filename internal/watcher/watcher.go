// Package watcher re-runs navigation inference when source files change.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDelay is the quiet period after the last write before a file is
// handled. Editors often write a file in several steps.
const DefaultDelay = 300 * time.Millisecond

// Watcher calls a handler for each watched file once writes to it settle.
type Watcher struct {
	files  map[string]bool
	delay  time.Duration
	log    *slog.Logger
	handle func(path string)

	mu     sync.Mutex
	timers map[string]*pending
}

// pending is one scheduled handler run.
type pending struct {
	timer *time.Timer
}

// New prepares a watcher for the given files. Their parent directories are
// watched so atomic save-by-rename is picked up.
func New(files []string, delay time.Duration, log *slog.Logger, handle func(path string)) (*Watcher, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to watch")
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	w := &Watcher{
		files:  make(map[string]bool, len(files)),
		delay:  delay,
		log:    log,
		handle: handle,
		timers: make(map[string]*pending),
	}
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", f, err)
		}
		w.files[abs] = true
	}
	return w, nil
}

// Run blocks until ctx is done, dispatching debounced change events.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	dirs := make(map[string]bool)
	for f := range w.files {
		dirs[filepath.Dir(f)] = true
	}
	for d := range dirs {
		if err := fw.Add(d); err != nil {
			return fmt.Errorf("watch %s: %w", d, err)
		}
	}
	w.log.Info("watching", "files", len(w.files), "dirs", len(dirs))

	defer w.stopTimers()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || !w.files[name] {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.schedule(name)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if old, ok := w.timers[path]; ok {
		old.timer.Stop()
	}
	p := &pending{}
	p.timer = time.AfterFunc(w.delay, func() {
		if w.fired(path, p) {
			w.handle(path)
		}
	})
	w.timers[path] = p
}

// fired clears the entry for path and reports whether p is still the
// current run. A run replaced while waiting for the lock does nothing.
func (w *Watcher) fired(path string, p *pending) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timers[path] != p {
		return false
	}
	delete(w.timers, path)
	return true
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, p := range w.timers {
		p.timer.Stop()
		delete(w.timers, path)
	}
}
