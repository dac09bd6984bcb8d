package routefile

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dmitrymomot/deeplink/core/logger"
)

// DefaultDebounce is the quiet period after the last file event before a reload.
const DefaultDebounce = 250 * time.Millisecond

type watchConfig struct {
	debounce time.Duration
	logger   *slog.Logger
}

// WatchOption configures Watch.
type WatchOption func(*watchConfig)

// WithDebounce sets the quiet period before a reload. Non-positive values are ignored.
func WithDebounce(d time.Duration) WatchOption {
	return func(c *watchConfig) {
		if d > 0 {
			c.debounce = d
		}
	}
}

// WithLogger sets the logger for reload diagnostics.
func WithLogger(l *slog.Logger) WatchOption {
	return func(c *watchConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Watch loads the table at path, hands it to onLoad and reloads it whenever
// the file changes, until ctx is done.
//
// The directory holding the file is watched, so editors that replace the file
// on save are handled. A table that fails to load or parse is logged and
// skipped; onLoad only ever sees valid tables. The initial load error is
// returned.
func Watch(ctx context.Context, path string, onLoad func(*Table), opts ...WatchOption) error {
	cfg := watchConfig{debounce: DefaultDebounce, logger: logger.Discard()}
	for _, opt := range opts {
		opt(&cfg)
	}
	log := cfg.logger.With(logger.Component("routefile"), logger.Source(path))

	path = filepath.Clean(path)
	src := File(path)

	table, err := Load(ctx, src)
	if err != nil {
		return err
	}
	onLoad(table)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-timerC:
			timerC = nil
			table, err := Load(ctx, src)
			if err != nil {
				log.Warn("route table reload failed", logger.Error(err))
				continue
			}
			log.Info("route table reloaded", logger.Count("routes", len(table.Routes)))
			onLoad(table)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("route table watcher error", logger.Error(err))

		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !affects(evt, path) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(cfg.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(cfg.debounce)
			}
			timerC = timer.C
		}
	}
}

func affects(evt fsnotify.Event, path string) bool {
	if filepath.Clean(evt.Name) != path {
		return false
	}
	return evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0
}
