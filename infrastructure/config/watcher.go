package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	domainconfig "github.com/felixgeelhaar/automata/domain/config"
)

// ReloadFunc receives the reloaded document, or the error that prevented
// loading it.
type ReloadFunc func(doc *domainconfig.Document, err error)

// Watcher reloads a definition file whenever it changes on disk.
type Watcher struct {
	path    string
	loader  *Loader
	watcher *fsnotify.Watcher
}

// NewWatcher starts watching path. The parent directory is watched so
// that editors replacing the file by rename are noticed.
func NewWatcher(path string, loader *Loader) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domainconfig.ErrConfigNotFound, path)
		}
		return nil, err
	}
	if loader == nil {
		loader = NewLoader()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(absPath)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to watch path: %w", err)
	}

	return &Watcher{path: absPath, loader: loader, watcher: fw}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Run calls fn after every change to the file until ctx is cancelled or
// the watcher is closed. Watch errors are reported through fn.
func (w *Watcher) Run(ctx context.Context, fn ReloadFunc) error {
	const reloadOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != w.path || !event.Op.Has(reloadOps) {
				continue
			}
			if _, err := os.Stat(w.path); err != nil {
				// Renamed away; wait for the replacement to be created.
				continue
			}
			fn(w.loader.LoadFile(w.path))
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			fn(nil, fmt.Errorf("watch %s: %w", w.path, err))
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
