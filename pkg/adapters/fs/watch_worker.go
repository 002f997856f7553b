package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/jot/pkg/core"
)

// DebounceInterval groups bursts of filesystem events into one change.
const DebounceInterval = 50 * time.Millisecond

// Watch emits the value of key each time its file changes.
// The channel is closed when ctx is done.
func (r *Repository) Watch(ctx context.Context, key string) (<-chan core.Change, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if _, err := r.keyPath(key); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(r.systemPath()); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", r.systemPath(), err)
	}

	w := &watchWorker{
		repo:      r,
		key:       key,
		watcher:   watcher,
		out:       make(chan core.Change),
		debouncer: newDebouncer(DebounceInterval),
	}

	r.setWatching(1)
	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		w.report(fmt.Errorf("watcher panic: %w", err))
	}))
	return w.out, nil
}

type watchWorker struct {
	repo      *Repository
	key       string
	watcher   *fsnotify.Watcher
	out       chan core.Change
	debouncer *debouncer
}

func (w *watchWorker) run(ctx context.Context) error {
	defer close(w.out)
	defer w.repo.setWatching(-1)
	defer w.debouncer.stop()
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != w.key {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.repo.logger.Debug("event received", "name", event.Name, "op", event.Op.String())
			w.debouncer.trigger(func() { w.emit(ctx) })

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.report(err)
		}
	}
}

// emit reads the current value, so a burst of events reports the final state.
func (w *watchWorker) emit(ctx context.Context) {
	value, ok, err := w.repo.Get(ctx, w.key)
	if err != nil {
		w.report(err)
		return
	}
	select {
	case w.out <- core.Change{Key: w.key, Value: value, Present: ok}:
	case <-ctx.Done():
	}
}

func (w *watchWorker) report(err error) {
	w.repo.logger.Error("watcher error", "key", w.key, "error", err)
	if w.repo.config.ErrorHandler != nil {
		w.repo.config.ErrorHandler(err)
	}
}

func (r *Repository) setWatching(delta int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watchers += delta
}

// debouncer runs only the last function triggered within its interval.
type debouncer struct {
	mu       sync.Mutex
	interval time.Duration
	timer    *time.Timer
	stopped  bool
	inFlight sync.WaitGroup
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{interval: interval}
}

func (d *debouncer) trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil && d.timer.Stop() {
		d.inFlight.Done()
	}
	d.inFlight.Add(1)
	d.timer = time.AfterFunc(d.interval, func() {
		defer d.inFlight.Done()
		fn()
	})
}

// stop cancels the pending function and waits for a running one to return.
func (d *debouncer) stop() {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil && d.timer.Stop() {
		d.inFlight.Done()
	}
	d.mu.Unlock()

	d.inFlight.Wait()
}
