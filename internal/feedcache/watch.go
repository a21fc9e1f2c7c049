package feedcache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"hubstat/internal/logging"
)

const triggerOps = fsnotify.Write | fsnotify.Create | fsnotify.Chmod

// Watch clears the cache whenever the trigger file at path is written,
// created or touched, then calls onChange when it is non-nil. The parent
// directory is watched so the file may be created after Watch starts.
// Watching stops when ctx is cancelled.
func (c *Cache) Watch(ctx context.Context, path string, onChange func()) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("refresh trigger path required")
	}
	path = filepath.Clean(path)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create refresh trigger directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	logger := c.logger.With(logging.String("trigger", path))
	logger.Info("watching refresh trigger")

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != path || !event.Op.Has(triggerOps) {
					continue
				}
				logger.Debug("refresh trigger fired", logging.String("op", event.Op.String()))
				c.Clear()
				if onChange != nil {
					onChange()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logging.WarnWithContext(logger, "refresh trigger watch error", "refresh_watch_error",
					logging.Error(err),
					logging.String(logging.FieldImpact, "manual refresh via trigger file may be delayed"),
				)
			}
		}
	}()
	return nil
}
