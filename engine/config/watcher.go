package config

import (
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-demo/common"
	"github.com/Carmen-Shannon/oxy-demo/engine/logger"
	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file when it changes on disk.
// It never blocks: the owner calls Poll once per frame from the render thread.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	closed  bool
}

// NewWatcher starts watching the directory that contains path.
// The directory is watched rather than the file so editors that replace the file on save are still observed.
//
// Parameters:
//   - path: the config file to watch
//
// Returns:
//   - *Watcher: the watcher
//   - error: a ConfigError if the watch could not be established
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, common.WrapError(common.ErrConfig, err, "failed to resolve %s", path)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, common.WrapError(common.ErrConfig, err, "failed to create file watcher")
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, common.WrapError(common.ErrConfig, err, "failed to watch %s", filepath.Dir(abs))
	}
	return &Watcher{path: abs, watcher: fw}, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Poll drains pending file events without blocking.
// When the watched file was written or created it is reloaded.
// A reload that fails to parse or validate is logged and ignored, keeping the previous config in effect.
//
// Returns:
//   - *AppConfig: the reloaded configuration, or nil
//   - bool: true if a new configuration was loaded
func (w *Watcher) Poll() (*AppConfig, bool) {
	if w.closed {
		return nil, false
	}
	changed := false
	for {
		select {
		case e, ok := <-w.watcher.Events:
			if !ok {
				w.closed = true
				return w.reload(changed)
			}
			if filepath.Clean(e.Name) != w.path {
				continue
			}
			if e.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				changed = true
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				w.closed = true
				return w.reload(changed)
			}
			logger.Warn("config watcher error: %v", err)
		default:
			return w.reload(changed)
		}
	}
}

func (w *Watcher) reload(changed bool) (*AppConfig, bool) {
	if !changed {
		return nil, false
	}
	cfg, err := Load(w.path)
	if err != nil {
		logger.Warn("config reload failed: %v", err)
		return nil, false
	}
	if err := cfg.Validate(); err != nil {
		logger.Warn("config reload rejected: %v", err)
		return nil, false
	}
	logger.Info("config reloaded from %s", w.path)
	return &cfg, true
}

// Close stops watching. Safe to call more than once.
//
// Returns:
//   - error: the error from closing the underlying watcher, if any
func (w *Watcher) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.watcher.Close()
}
