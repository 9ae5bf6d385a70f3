package infrastructure

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"prepdash/internal/features/catalogue/domain"
)

// StaticSource always serves the same catalogue.
type StaticSource struct {
	catalogue *domain.Catalogue
}

// NewStaticSource wraps c.
func NewStaticSource(c *domain.Catalogue) *StaticSource {
	return &StaticSource{catalogue: c}
}

// Current returns the wrapped catalogue.
func (s *StaticSource) Current() *domain.Catalogue {
	return s.catalogue
}

// Watcher serves the catalogue stored in a YAML file and swaps in a new
// snapshot whenever the file changes. A file that fails to parse leaves the
// previous snapshot in place.
type Watcher struct {
	path    string
	current atomic.Pointer[domain.Catalogue]
	fs      *fsnotify.Watcher
	logger  *zap.Logger
}

// NewWatcher loads path and starts watching its directory. Editors often
// replace files by rename, so the directory is watched rather than the file.
func NewWatcher(path string, logger *zap.Logger) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for %s: %w", path, err)
	}
	initial, err := LoadYAML(absPath)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(absPath), err)
	}

	w := &Watcher{
		path:   absPath,
		fs:     fsw,
		logger: logger,
	}
	w.current.Store(initial)
	return w, nil
}

// Current returns the latest valid snapshot.
func (w *Watcher) Current() *domain.Catalogue {
	return w.current.Load()
}

// Run processes file events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.reload()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("catalogue watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	c, err := LoadYAML(w.path)
	if err != nil {
		w.logger.Warn("catalogue reload failed, keeping previous snapshot",
			zap.String("path", w.path), zap.Error(err))
	} else {
		w.current.Store(c)
		w.logger.Info("catalogue reloaded",
			zap.String("path", w.path), zap.Int("tracks", len(c.AllTracks())))
	}
}
