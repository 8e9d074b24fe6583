package am

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/uniprompt/errors"
	"github.com/teranos/uniprompt/logger"
)

// FileWatcher watches a file for changes and triggers callbacks with
// debouncing. The CLI uses it to re-resolve a document whenever the
// source file is written.
type FileWatcher struct {
	path          string
	watcher       *fsnotify.Watcher
	callbacks     []func()
	mu            sync.RWMutex
	debounceTimer *time.Timer
	debounce      time.Duration
	done          chan struct{}
}

// NewFileWatcher creates a watcher for path. Rapid successive writes
// (editor save patterns) collapse into one callback.
func NewFileWatcher(path string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, errors.Wrapf(err, "failed to watch %s", path)
	}
	return &FileWatcher{
		path:     path,
		watcher:  watcher,
		debounce: 500 * time.Millisecond,
		done:     make(chan struct{}),
	}, nil
}

// OnChange registers a callback for file changes.
func (w *FileWatcher) OnChange(callback func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Start begins watching in a background goroutine.
func (w *FileWatcher) Start() {
	go w.watchLoop()
}

// Stop ends watching and releases the underlying watcher.
func (w *FileWatcher) Stop() {
	close(w.done)
	_ = w.watcher.Close()
}

func (w *FileWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.scheduleReload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Logger.Warnw("file watcher error", "path", w.path, "error", err)
		case <-w.done:
			return
		}
	}
}

func (w *FileWatcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounce, func() {
		w.mu.RLock()
		callbacks := append([]func(){}, w.callbacks...)
		w.mu.RUnlock()
		for _, cb := range callbacks {
			cb()
		}
	})
}
