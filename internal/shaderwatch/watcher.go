// Package shaderwatch reports edits to shader source files. Events arrive on
// fsnotify's goroutine and are queued; the render thread drains them with
// Pending, so reloads happen between frames on the thread that owns the
// graphics context.
package shaderwatch

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"mini-gl/internal/graphics"
)

// Watcher watches a set of files and queues the keys whose files changed.
type Watcher struct {
	fw *fsnotify.Watcher

	mu      sync.Mutex
	keys    map[string][]string // cleaned path -> keys
	pending map[string]bool
	order   []string

	done chan struct{}
	wg   sync.WaitGroup
}

// New starts an empty watcher.
func New() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not start file watcher: %w", err)
	}
	w := &Watcher{
		fw:      fw,
		keys:    make(map[string][]string),
		pending: make(map[string]bool),
		done:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Watch associates key with the given files. Directories are watched rather
// than the files themselves so editors that replace files on save are seen.
func (w *Watcher) Watch(key string, files ...string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, f := range files {
		path := filepath.Clean(f)
		if err := w.fw.Add(filepath.Dir(path)); err != nil {
			return fmt.Errorf("could not watch %s: %w", path, err)
		}
		w.keys[path] = append(w.keys[path], key)
	}
	return nil
}

// Pending returns the keys changed since the last call, in the order they
// were first seen.
func (w *Watcher) Pending() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := w.order
	w.order = nil
	clear(w.pending)
	return out
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	err := w.fw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				w.queue(filepath.Clean(ev.Name))
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			graphics.Logger().Warn("shader watch error", "err", err)
		}
	}
}

func (w *Watcher) queue(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, key := range w.keys[path] {
		if w.pending[key] {
			continue
		}
		w.pending[key] = true
		w.order = append(w.order, key)
		graphics.Logger().Debug("shader changed", "key", key, "file", path)
	}
}
