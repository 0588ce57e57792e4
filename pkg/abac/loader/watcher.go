package loader

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a policy directory for changes and triggers a reload
// callback. Rapid event bursts (editor save dances, bulk syncs) are
// debounced so the store is swapped once per quiet period.
type Watcher struct {
	fsw      *fsnotify.Watcher
	logger   *slog.Logger
	path     string
	exts     []string
	debounce time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// WatcherConfig contains watcher configuration.
type WatcherConfig struct {
	// Path is the file or directory to watch.
	Path string

	// DebounceInterval is the quiet period before a reload fires.
	// Default: 100ms.
	DebounceInterval time.Duration

	// Extensions lists watched file extensions. Default: ".yaml", ".yml".
	Extensions []string
}

// NewWatcher creates a policy file watcher.
func NewWatcher(config WatcherConfig, logger *slog.Logger) (*Watcher, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("watcher path cannot be empty")
	}
	if config.DebounceInterval <= 0 {
		config.DebounceInterval = 100 * time.Millisecond
	}
	if len(config.Extensions) == 0 {
		config.Extensions = []string{".yaml", ".yml"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsw:      fsw,
		logger:   logger.With("component", "abac.watcher"),
		path:     config.Path,
		exts:     config.Extensions,
		debounce: config.DebounceInterval,
	}, nil
}

// Watch blocks, invoking onReload after each debounced batch of policy
// file changes, until the context is cancelled. Reload failures are
// logged and watching continues; the previously published policy set
// stays in effect.
func (w *Watcher) Watch(ctx context.Context, onReload func() error) error {
	if err := w.addPath(w.path); err != nil {
		return fmt.Errorf("failed to watch path: %w", err)
	}

	w.logger.Info("policy watcher started",
		"path", w.path,
		"debounce_ms", w.debounce.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("policy watcher stopped")
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.relevant(event) {
				continue
			}

			w.logger.Debug("policy file event", "path", event.Name, "op", event.Op.String())
			w.trigger(func() {
				w.logger.Info("reloading policies", "path", event.Name)
				if err := onReload(); err != nil {
					w.logger.Error("policy reload failed", "error", err)
				}
			})

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			// Keep watching despite transient errors.
			w.logger.Error("policy watcher error", "error", err)
		}
	}
}

// Close releases the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()
	return w.fsw.Close()
}

// trigger resets the debounce timer with the latest callback.
func (w *Watcher) trigger(callback func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, callback)
}

// relevant filters out chmod noise, hidden files and foreign
// extensions.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&fsnotify.Chmod == fsnotify.Chmod {
		return false
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}

	ext := strings.ToLower(filepath.Ext(event.Name))
	for _, valid := range w.exts {
		if ext == strings.ToLower(valid) {
			return true
		}
	}
	return false
}

// addPath registers a file, or a directory tree, with fsnotify.
func (w *Watcher) addPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return w.fsw.Add(path)
	}

	return filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(filepath.Base(p), ".") && p != path {
			if fi.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if fi.IsDir() {
			if err := w.fsw.Add(p); err != nil {
				return fmt.Errorf("failed to watch directory %q: %w", p, err)
			}
		}
		return nil
	})
}
