package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/dd0wney/cluso-netanalyzer/pkg/logging"
)

// Loader holds the current configuration and hot-reloads it when the file
// changes. A file that fails to parse or validate is logged and ignored; the
// previous configuration stays in effect.
type Loader struct {
	path     string
	logger   logging.Logger
	mu       sync.RWMutex
	current  *Config
	onChange []func(*Config)
}

// NewLoader creates a Loader and performs the initial load
func NewLoader(path string, logger logging.Logger) (*Loader, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Loader{
		path:    filepath.Clean(path),
		logger:  logger.With(logging.Component("config")),
		current: cfg,
	}, nil
}

// Config returns the current configuration
func (l *Loader) Config() *Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// OnChange registers a callback invoked after every successful reload
func (l *Loader) OnChange(fn func(*Config)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = append(l.onChange, fn)
}

// Reload re-reads the file and notifies callbacks on success
func (l *Loader) Reload() (*Config, error) {
	cfg, err := Load(l.path)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.current = cfg
	callbacks := make([]func(*Config), len(l.onChange))
	copy(callbacks, l.onChange)
	l.mu.Unlock()

	for _, fn := range callbacks {
		fn(cfg)
	}
	return cfg, nil
}

// Watch reloads the configuration whenever the file is written or replaced.
// The parent directory is watched so editors that save by rename are seen.
// Call the returned stop function to clean up.
func (l *Loader) Watch() (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(l.path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("config watcher add %s: %w", l.path, err)
	}

	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != l.path {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				if _, err := l.Reload(); err != nil {
					l.logger.Warn("config reload rejected, keeping previous config",
						logging.String("path", l.path), logging.Error(err))
					continue
				}
				l.logger.Info("config reloaded", logging.String("path", l.path))
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				l.logger.Warn("config watcher error", logging.Error(err))
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			<-exited
		})
	}, nil
}
