package site

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the resource tree must be quiet before a
// rebuild starts.
const DefaultDebounce = 300 * time.Millisecond

// WatchOptions controls Watch.
type WatchOptions struct {
	Debounce time.Duration
	// Ignore is a directory whose changes never trigger a rebuild, typically
	// the build output when it lives inside the resource root.
	Ignore string
}

// Watch calls rebuild whenever files below root change, after the tree has
// been quiet for the debounce interval. Rebuild errors are logged and do not
// stop the watch. Watch blocks until ctx is done.
func Watch(ctx context.Context, root string, opts WatchOptions, rebuild func(context.Context) error) error {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	ignore := ""
	if opts.Ignore != "" {
		if ignore, err = filepath.Abs(opts.Ignore); err != nil {
			return fmt.Errorf("resolving %s: %w", opts.Ignore, err)
		}
	}
	skip := func(p string) bool {
		if ignore == "" {
			return false
		}
		abs, err := filepath.Abs(p)
		return err == nil && (abs == ignore || strings.HasPrefix(abs, ignore+string(filepath.Separator)))
	}

	if err := addTree(w, root, skip); err != nil {
		return err
	}
	slog.Info("watching resources", "root", root, "debounce", opts.Debounce)

	tick := max(opts.Debounce/4, 10*time.Millisecond)
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	var lastEvent time.Time
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if skip(event.Name) || event.Op == fsnotify.Chmod {
				continue
			}
			slog.Debug("resource changed", "path", event.Name, "op", event.Op.String())
			if event.Op&fsnotify.Create != 0 {
				// new directories are not watched automatically
				if err := addTree(w, event.Name, skip); err != nil {
					slog.Debug("watching new path failed", "path", event.Name, "err", err)
				}
			}
			lastEvent = time.Now()
			pending = true

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Error("watcher error", "err", err)

		case <-ticker.C:
			if !pending || time.Since(lastEvent) < opts.Debounce {
				continue
			}
			pending = false
			if err := rebuild(ctx); err != nil {
				slog.Error("rebuild failed", "err", err)
			}
		}
	}
}

// addTree watches root and every directory below it.
func addTree(w *fsnotify.Watcher, root string, skip func(string) bool) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if skip(p) {
			return filepath.SkipDir
		}
		if err := w.Add(p); err != nil {
			return fmt.Errorf("watching %s: %w", p, err)
		}
		return nil
	})
}
