// Package watch reports batches of file system changes below a set of paths.
//
// Changes are debounced: a burst of writes, such as a test runner producing
// several reports, is delivered as one batch once the paths have been quiet
// for the debounce window.
package watch

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before a batch is delivered.
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches directories recursively.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	logger   *log.Logger
}

// New creates a watcher. A non-positive debounce uses DefaultDebounce and a
// nil logger discards output.
func New(debounce time.Duration, logger *log.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Watcher{fs: fsw, debounce: debounce, logger: logger}, nil
}

// Add watches path. A directory is watched with all its subdirectories; a
// file is watched through its parent directory. A missing path is watched
// through its nearest existing ancestor so that its creation is noticed.
func (w *Watcher) Add(path string) error {
	path = filepath.Clean(path)
	for {
		info, err := os.Stat(path)
		if err == nil {
			if !info.IsDir() {
				return w.fs.Add(filepath.Dir(path))
			}
			return w.addTree(path)
		}
		parent := filepath.Dir(path)
		if parent == path {
			return err
		}
		path = parent
	}
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			w.logger.Debug("skip unreadable path", "path", p, "err", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fs.Add(p); err != nil {
			w.logger.Debug("cannot watch directory", "path", p, "err", err)
		}
		return nil
	})
}

// Paths returns the watched directories, sorted.
func (w *Watcher) Paths() []string {
	list := w.fs.WatchList()
	slices.Sort(list)
	return list
}

// Run delivers changed paths to fn, sorted and without duplicates, until ctx
// is done. fn runs on the Run goroutine; changes arriving meanwhile are
// batched for the next call.
func (w *Watcher) Run(ctx context.Context, fn func(changed []string)) error {
	pending := map[string]struct{}{}
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = w.addTree(ev.Name)
				}
			}
			w.logger.Debug("file changed", "path", ev.Name, "op", ev.Op.String())
			pending[ev.Name] = struct{}{}
			fire = time.After(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "err", err)

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			clear(pending)
			slices.Sort(changed)
			fn(changed)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
