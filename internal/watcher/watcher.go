// Package watcher signals changes to a single file once writes go quiet.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jasicon/jasreg/internal/log"
)

// Config holds watcher configuration options.
type Config struct {
	Path string
	// DebounceDur is how long the file must stay untouched before a change
	// is signalled.
	DebounceDur time.Duration
}

// DefaultConfig returns the defaults for watching path.
func DefaultConfig(path string) Config {
	return Config{Path: path, DebounceDur: 500 * time.Millisecond}
}

// Watcher follows one file. Its directory is watched so that editors which
// replace the file on save are still seen.
type Watcher struct {
	fsw    *fsnotify.Watcher
	target string
	quiet  time.Duration

	changes chan struct{}
	stop    chan struct{}
	wg      sync.WaitGroup

	stopOnce sync.Once
	stopErr  error
}

// New creates a watcher for cfg.Path. Nothing is watched until Start.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	return &Watcher{
		fsw:     fsw,
		target:  filepath.Clean(cfg.Path),
		quiet:   cfg.DebounceDur,
		changes: make(chan struct{}, 1),
		stop:    make(chan struct{}),
	}, nil
}

// Start watches the file's directory and returns the change channel. At
// most one signal is buffered; bursts collapse into it.
func (w *Watcher) Start() (<-chan struct{}, error) {
	dir := filepath.Dir(w.target)
	if err := w.fsw.Add(dir); err != nil {
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}
	w.wg.Add(1)
	go w.run()
	log.Debug(log.CatWatcher, "Watching file", "path", w.target)
	return w.changes, nil
}

// Stop ends the watch loop and closes the fsnotify watcher. It is safe to
// call more than once.
func (w *Watcher) Stop() error {
	w.stopOnce.Do(func() {
		close(w.stop)
		w.stopErr = w.fsw.Close()
		w.wg.Wait()
	})
	return w.stopErr
}

func (w *Watcher) run() {
	defer w.wg.Done()

	settle := time.NewTimer(w.quiet)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case <-w.stop:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if w.touches(ev) {
				settle.Reset(w.quiet)
			}

		case <-settle.C:
			select {
			case w.changes <- struct{}{}:
			default:
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "Watch error", err, "path", w.target)
		}
	}
}

// touches reports whether ev writes, creates or renames onto the target.
func (w *Watcher) touches(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	return filepath.Clean(ev.Name) == w.target
}
