// Package watcher reports settled file changes in a directory.
// Writes are debounced: a file is reported once its size and modification
// time stop changing for the settle delay.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

type pendingEvent struct {
	size    int64
	modTime time.Time
	timer   *time.Timer
}

// Watcher monitors file changes in one or more directories (not recursive).
type Watcher struct {
	logger *slog.Logger
	opts   Options
	fs     *fsnotify.Watcher

	mu      sync.Mutex
	pending map[string]*pendingEvent
	known   map[string]struct{}

	events chan Event
	errors chan error
	done   chan struct{}
	wg     sync.WaitGroup

	stopOnce sync.Once
}

// New creates a new file watcher.
func New(logger *slog.Logger, opts Options) (*Watcher, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		logger:  logger,
		opts:    opts,
		fs:      fs,
		pending: make(map[string]*pendingEvent),
		known:   make(map[string]struct{}),
		events:  make(chan Event, 100),
		errors:  make(chan error, 10),
		done:    make(chan struct{}),
	}, nil
}

// Watch adds a directory to be monitored. Files already in it count as
// known, so their first change is reported as modified.
func (w *Watcher) Watch(dir string) error {
	dir = filepath.Clean(dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	if err := w.fs.Add(dir); err != nil {
		return fmt.Errorf("failed to add watch: %w", err)
	}

	w.mu.Lock()
	for _, e := range entries {
		if !e.IsDir() {
			w.known[filepath.Join(dir, e.Name())] = struct{}{}
		}
	}
	w.mu.Unlock()

	w.logger.Debug("added watch", "path", dir)
	return nil
}

// Start processes events until ctx is canceled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.wg.Add(1)
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.done:
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			select {
			case w.errors <- err:
			default:
				w.logger.Warn("watcher error dropped", "error", err)
			}
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	path := event.Name
	if w.opts.ignores(path) {
		return
	}

	if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		w.mu.Lock()
		w.cancelPendingLocked(path)
		delete(w.known, path)
		w.mu.Unlock()
		w.emit(Event{Op: OpRemoved, Path: path})
		return
	}

	if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
		w.startSettling(path)
	}
}

// startSettling (re)arms the settle timer for path.
func (w *Watcher) startSettling(path string) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.cancelPendingLocked(path)
	w.pending[path] = &pendingEvent{
		size:    info.Size(),
		modTime: info.ModTime(),
		timer:   time.AfterFunc(w.opts.settle(), func() { w.checkSettled(path) }),
	}
}

func (w *Watcher) checkSettled(path string) {
	info, statErr := os.Stat(path)

	w.mu.Lock()
	pending, exists := w.pending[path]
	if !exists {
		w.mu.Unlock()
		return
	}

	if statErr != nil {
		delete(w.pending, path)
		delete(w.known, path)
		w.mu.Unlock()
		w.emit(Event{Op: OpRemoved, Path: path})
		return
	}

	if info.Size() != pending.size || !info.ModTime().Equal(pending.modTime) {
		pending.size = info.Size()
		pending.modTime = info.ModTime()
		pending.timer = time.AfterFunc(w.opts.settle(), func() { w.checkSettled(path) })
		w.mu.Unlock()
		return
	}

	delete(w.pending, path)
	op := OpCreated
	if _, ok := w.known[path]; ok {
		op = OpChanged
	}
	w.known[path] = struct{}{}
	w.mu.Unlock()

	w.emit(Event{Op: op, Path: path, Size: info.Size(), ModTime: info.ModTime()})
}

func (w *Watcher) cancelPendingLocked(path string) {
	if pending, ok := w.pending[path]; ok {
		pending.timer.Stop()
		delete(w.pending, path)
	}
}

func (w *Watcher) emit(event Event) {
	select {
	case w.events <- event:
	case <-w.done:
	}
}

// Events returns the channel of settled events. It is never closed;
// consumers stop with their own context.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the channel for receiving errors
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Stop stops the watcher and releases resources.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)

		w.mu.Lock()
		for _, pending := range w.pending {
			pending.timer.Stop()
		}
		clear(w.pending)
		w.mu.Unlock()

		err = w.fs.Close()
		w.wg.Wait()
	})
	return err
}
