// Package watcher provides a driven.ModuleWatcher backed by fsnotify.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/modpatch/internal/core/domain"
	"github.com/custodia-labs/modpatch/internal/core/ports/driven"
	"github.com/custodia-labs/modpatch/internal/logger"
)

// DefaultDebounce coalesces bursts of writes from editors and formatters.
const DefaultDebounce = 200 * time.Millisecond

// Ensure Watcher implements the interface.
var _ driven.ModuleWatcher = (*Watcher)(nil)

// Target is a single file whose changes are reported for a module.
type Target struct {
	Module string
	Path   string
	Kind   domain.ChangeKind
}

// Watcher reports writes to module descriptor and manifest files.
type Watcher struct {
	mu       sync.Mutex
	targets  map[string]Target
	debounce time.Duration
	fsw      *fsnotify.Watcher
	stop     chan struct{}
	done     chan struct{}
	closed   bool
}

// Option configures the watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before changes are emitted.
// Zero emits every change immediately.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// New creates a watcher for the given targets.
func New(targets []Target, opts ...Option) *Watcher {
	w := &Watcher{
		targets:  make(map[string]Target, len(targets)),
		debounce: DefaultDebounce,
	}
	for _, t := range targets {
		w.targets[filepath.Clean(t.Path)] = t
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch starts watching the parent directory of every target.
// Directories that do not exist yet are skipped with a warning.
func (w *Watcher) Watch(ctx context.Context) (<-chan domain.ModuleChange, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, errors.New("watcher closed")
	}
	if w.fsw != nil {
		return nil, errors.New("watcher already started")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: create watcher: %w", domain.ErrIO, err)
	}

	watched := 0
	for _, dir := range w.dirs() {
		if err := fsw.Add(dir); err != nil {
			logger.Warn("Cannot watch %s: %v", dir, err)
			continue
		}
		logger.Debug("Watching %s", dir)
		watched++
	}
	if watched == 0 && len(w.targets) > 0 {
		_ = fsw.Close()
		return nil, fmt.Errorf("%w: no watchable directories", domain.ErrIO)
	}

	w.fsw = fsw
	w.stop = make(chan struct{})
	w.done = make(chan struct{})
	changes := make(chan domain.ModuleChange)
	go w.run(ctx, fsw, w.stop, changes)
	return changes, nil
}

// Close stops watching and waits for the event loop to exit.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	fsw, stop, done := w.fsw, w.stop, w.done
	w.mu.Unlock()

	if fsw == nil {
		return nil
	}
	close(stop)
	err := fsw.Close()
	<-done
	return err
}

// dirs returns the sorted set of directories holding targets.
func (w *Watcher) dirs() []string {
	seen := make(map[string]bool)
	var dirs []string
	for path := range w.targets {
		dir := filepath.Dir(path)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	sort.Strings(dirs)
	return dirs
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher, stop <-chan struct{}, out chan<- domain.ModuleChange) {
	defer close(w.done)
	defer close(out)

	pending := make(map[string]domain.ModuleChange)
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case <-stop:
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			change, ok := w.handleFsEvent(event)
			if !ok {
				continue
			}
			pending[change.Path] = change
			if w.debounce == 0 {
				if !flush(ctx, stop, pending, out) {
					return
				}
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if !flush(ctx, stop, pending, out) {
				return
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// handleFsEvent maps a raw event onto a module change.
// Only creates and writes of known targets are reported.
func (w *Watcher) handleFsEvent(event fsnotify.Event) (domain.ModuleChange, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return domain.ModuleChange{}, false
	}
	target, ok := w.targets[filepath.Clean(event.Name)]
	if !ok {
		return domain.ModuleChange{}, false
	}
	logger.Debug("%s changed for module %s (%s)", target.Path, target.Module, event.Op)
	return domain.ModuleChange{
		Module: target.Module,
		Path:   target.Path,
		Kind:   target.Kind,
	}, true
}

// flush emits pending changes in path order. It returns false once the
// watcher is stopping.
func flush(ctx context.Context, stop <-chan struct{}, pending map[string]domain.ModuleChange, out chan<- domain.ModuleChange) bool {
	paths := make([]string, 0, len(pending))
	for p := range pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		select {
		case out <- pending[p]:
			delete(pending, p)
		case <-ctx.Done():
			return false
		case <-stop:
			return false
		}
	}
	return true
}
