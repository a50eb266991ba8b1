package index

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultSchedule is how often Watch polls the visits directory.
const DefaultSchedule = "@every 2s"

// LatestModTime returns the newest modification time among the *.json
// files in dir, or the zero time if there are none.
func LatestModTime(dir string) time.Time {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return time.Time{}
	}
	var latest time.Time
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latest) {
			latest = info.ModTime()
		}
	}
	return latest
}

// Watcher rebuilds the visit log when a per-park file changes.
type Watcher struct {
	dir    string
	output string

	mu   sync.Mutex
	last time.Time
}

// NewWatcher creates a watcher for dir writing to output.
func NewWatcher(dir, output string) *Watcher {
	return &Watcher{dir: dir, output: output}
}

// Rebuild builds the visit log now and records the current modification time.
func (w *Watcher) Rebuild() (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rebuild(LatestModTime(w.dir))
}

// Check rebuilds the visit log if any file is newer than the last build.
func (w *Watcher) Check() (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	mtime := LatestModTime(w.dir)
	if !mtime.After(w.last) {
		return false, nil
	}
	if _, err := w.rebuild(mtime); err != nil {
		return false, err
	}
	return true, nil
}

func (w *Watcher) rebuild(mtime time.Time) (int, error) {
	n, err := Build(w.dir, w.output)
	if err != nil {
		return 0, err
	}
	w.last = mtime
	slog.Info("built visit index", "visits", n, "output", w.output)
	return n, nil
}

// Watch builds the visit log once, then checks for changes on schedule until
// ctx is cancelled.
func Watch(ctx context.Context, dir, output, schedule string) error {
	w := NewWatcher(dir, output)
	if _, err := w.Rebuild(); err != nil {
		return fmt.Errorf("initial build: %w", err)
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(schedule, func() {
		if _, err := w.Check(); err != nil {
			slog.Error("rebuilding visit index", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("scheduling watch: %w", err)
	}

	slog.Info("watching visit files", "dir", filepath.Clean(dir), "schedule", schedule)
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
