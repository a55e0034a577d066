package fs

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports that the directory currently on display changed. Events are
// coalesced: a burst of filesystem notifications yields a single pending signal
// that the shell picks up on its next tick.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	changes   chan struct{}
	errs      chan error
	done      chan struct{}

	mu      sync.Mutex
	current string
	closed  bool
}

// NewWatcher creates a watcher that is not yet watching anything.
func NewWatcher() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		changes:   make(chan struct{}, 1),
		errs:      make(chan error, 1),
		done:      make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Watch switches the watched directory to dir. Watching the same directory
// again is a no-op.
func (w *Watcher) Watch(dir string) error {
	dir = NormalizePath(dir)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return fmt.Errorf("watcher closed")
	}
	if w.current == dir {
		return nil
	}
	if w.current != "" {
		_ = w.fsWatcher.Remove(w.current)
		w.current = ""
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}
	w.current = dir
	return nil
}

// Changes delivers one value per batch of changes to the watched directory.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Errors delivers watcher errors; they are dropped when nobody is reading.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops watching and releases the underlying notifier.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.done)
	return w.fsWatcher.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			select {
			case w.changes <- struct{}{}:
			default:
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		case <-w.done:
			return
		}
	}
}
