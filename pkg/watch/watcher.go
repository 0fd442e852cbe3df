package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is used when no debounce delay is configured.
const DefaultDebounce = 500 * time.Millisecond

// ChangeFunc is called after the watched files changed. The names are the
// base names of the files that changed since the previous call.
type ChangeFunc func(ctx context.Context, changed []string)

// Watcher watches a directory for changes to a fixed set of files.
type Watcher struct {
	dir      string
	files    map[string]bool
	debounce time.Duration
	logger   zerolog.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long the files must stay quiet before the callback
// runs.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(w *Watcher) { w.logger = logger }
}

// New creates a watcher for the named files in dir.
func New(dir string, files []string, opts ...Option) *Watcher {
	w := &Watcher{
		dir:      dir,
		files:    make(map[string]bool, len(files)),
		debounce: DefaultDebounce,
		logger:   zerolog.Nop(),
	}
	for _, f := range files {
		w.files[f] = true
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.With().Str("component", "watcher").Str("dir", dir).Logger()
	return w
}

// Run blocks until ctx is cancelled, calling fn from the calling goroutine
// after each debounced burst of changes. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context, fn ChangeFunc) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Editors often replace files by rename, so the directory is watched
	// rather than the files themselves.
	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	w.logger.Info().
		Dur("debounce", w.debounce).
		Msg("Started watching data directory")

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	pending := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("Stopped watching data directory")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name := filepath.Base(event.Name)
			if !w.files[name] || !relevant(event.Op) {
				continue
			}

			w.logger.Debug().
				Str("file", name).
				Str("op", event.Op.String()).
				Msg("Dataset file changed")

			pending[name] = true
			timer.Reset(w.debounce)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for name := range pending {
				changed = append(changed, name)
			}
			pending = make(map[string]bool)
			fn(ctx, changed)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error().Err(err).Msg("Watcher error")
		}
	}
}

func relevant(op fsnotify.Op) bool {
	return op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}
