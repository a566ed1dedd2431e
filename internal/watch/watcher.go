// Package watch triggers a callback when watched files change, debouncing
// bursts of file system events.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/refgen/internal/logfields"
)

// DefaultDebounce is the quiet period after the last event before the callback runs.
const DefaultDebounce = 500 * time.Millisecond

// Watcher monitors files and directories and runs onChange once events settle.
type Watcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]bool // absolute paths of watched files
	dirs     map[string]bool // absolute paths of watched directories
	debounce time.Duration
	onChange func(context.Context) error
	logger   *slog.Logger
}

// New creates a watcher for paths. Files are watched through their parent
// directory (more reliable across editors that replace files on save);
// directories match any entry directly inside them.
func New(paths []string, debounce time.Duration, onChange func(context.Context) error, logger *slog.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	w := &Watcher{
		watcher:  fw,
		files:    map[string]bool{},
		dirs:     map[string]bool{},
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
	}

	for _, p := range paths {
		if err := w.add(p); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", path, err)
	}

	dir := filepath.Dir(abs)
	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		w.dirs[abs] = true
		dir = abs
	} else {
		w.files[abs] = true
	}
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}
	w.logger.Info("Watching for changes", logfields.Path(abs))
	return nil
}

// relevant reports whether an event concerns a watched path.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	name := filepath.Clean(event.Name)
	if w.files[name] {
		return true
	}
	return w.dirs[filepath.Dir(name)]
}

// Run processes events until ctx is done, then closes the watcher.
// Callback errors are logged and watching continues.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			w.logger.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			switch {
			case event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0:
				w.logger.Debug("Change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			case event.Op&fsnotify.Remove != 0:
				w.logger.Warn("Watched file removed", logfields.Path(event.Name))
				continue
			default:
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("File watcher error", logfields.Error(err))

		case <-fire:
			fire = nil
			if err := w.onChange(ctx); err != nil {
				w.logger.Error("Regeneration failed", logfields.Error(err))
			}
		}
	}
}
