package main

import (
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// watcher reports writes to a fixed set of files.
type watcher struct {
	paths    map[string]bool
	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	handlers []func(path string)
	done     chan struct{}
}

// newWatcher watches the directories holding paths, so editors that save by
// renaming a temp file over the original are still noticed.
func newWatcher(paths ...string) (*watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &watcher{
		paths:   make(map[string]bool),
		watcher: fw,
		done:    make(chan struct{}),
	}
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, err
		}
		w.paths[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, err
		}
	}
	return w, nil
}

// OnChange registers a handler called with the changed file's path.
func (w *watcher) OnChange(handler func(path string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, handler)
}

func (w *watcher) Start() {
	go w.watch()
}

func (w *watcher) Stop() {
	close(w.done)
	w.watcher.Close()
}

func (w *watcher) watch() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !w.paths[abs] {
				continue
			}
			w.notify(abs)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watcher error: %v", err)
		}
	}
}

func (w *watcher) notify(path string) {
	w.mu.Lock()
	handlers := make([]func(string), len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.Unlock()

	for _, h := range handlers {
		h(path)
	}
}
