package routing

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// Live holds the current routing table behind an atomic pointer so the
// table can be replaced at runtime without readers taking a lock.
//
// Individual tables stay immutable; a reload builds a fresh Table and
// swaps the pointer. Readers that loaded the old table keep resolving
// against a consistent snapshot.
type Live struct {
	table atomic.Pointer[Table]
}

// NewLive creates a Live table seeded from the given configuration string.
func NewLive(raw string) *Live {
	l := &Live{}
	l.table.Store(Build(raw))
	return l
}

// Load returns the current table snapshot.
func (l *Live) Load() *Table {
	return l.table.Load()
}

// Resolve resolves against the current table snapshot.
func (l *Live) Resolve(op, tier string) (Target, bool) {
	return l.table.Load().Resolve(op, tier)
}

// Replace builds a new table from raw and swaps it in.
func (l *Live) Replace(raw string) {
	l.table.Store(Build(raw))
}

// Watch reloads the table whenever the file at path changes.
//
// The loadRoutes callback re-reads the routing string from its source
// (typically the configuration file that path points at); returning an
// error keeps the previous table in place. Watch blocks until ctx is
// cancelled.
func (l *Live) Watch(ctx context.Context, path string, loadRoutes func() (string, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory rather than the file itself: editors and
	// configuration management tools replace files via rename, which
	// drops a watch on the file node.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %q: %w", dir, err)
	}

	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			raw, err := loadRoutes()
			if err != nil {
				slog.Error("route reload failed, keeping previous table", "path", path, "error", err)
				continue
			}
			l.Replace(raw)
			slog.Info("routing table reloaded", "path", path, "routes", l.Load().Len())
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("route watcher error", "error", err)
		}
	}
}
