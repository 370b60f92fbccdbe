package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"MarkBoard/internal/logger"
)

// Watch reloads path whenever it changes and hands the result to fn. The
// parent directory is watched so that editors which replace the file on
// save are still seen. A reload that fails to parse or validate is logged
// and skipped; the running configuration stays in place. Watch blocks until
// ctx is done.
func Watch(ctx context.Context, path string, fn func(Config)) error {
	log := logger.For("config")
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch config %s: %w", abs, err)
	}
	log.Debug("watching", "path", abs)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !affects(ev, abs) {
				continue
			}
			cfg, err := Load(abs)
			if err != nil {
				log.Warn("reload skipped", "path", abs, "error", err)
				continue
			}
			log.Info("reloaded", "path", abs)
			fn(cfg)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", "error", err)
		}
	}
}

// affects reports whether ev leaves new content at path.
func affects(ev fsnotify.Event, path string) bool {
	if filepath.Clean(ev.Name) != path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}
