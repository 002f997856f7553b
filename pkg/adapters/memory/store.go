// Package memory provides an in-process core.KeyValueStore.
// Nothing survives the process; it backs tests and throwaway vaults.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/jot/pkg/core"
)

// Store keeps values in a map and notifies watchers on every Set.
type Store struct {
	mu       sync.RWMutex
	values   map[string]string
	watchers map[string][]chan struct{}
	readOnly bool
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		values:   make(map[string]string),
		watchers: make(map[string][]chan struct{}),
	}
}

// SetReadOnly makes every following Set fail with core.ErrReadOnly.
func (s *Store) SetReadOnly(readOnly bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readOnly = readOnly
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	return v, ok, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.readOnly {
		return core.ErrReadOnly
	}

	s.values[key] = value
	for _, signal := range s.watchers[key] {
		// Pending signals coalesce; the watcher reads the latest value anyway.
		select {
		case signal <- struct{}{}:
		default:
		}
	}
	return nil
}

// Watch emits the current value of key after every Set.
// Bursts of writes may be reported once, with the latest value.
func (s *Store) Watch(ctx context.Context, key string) (<-chan core.Change, error) {
	signal := make(chan struct{}, 1)

	s.mu.Lock()
	s.watchers[key] = append(s.watchers[key], signal)
	s.mu.Unlock()

	out := make(chan core.Change)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(out)
		defer s.unwatch(key, signal)

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-signal:
				s.mu.RLock()
				v, ok := s.values[key]
				s.mu.RUnlock()

				select {
				case out <- core.Change{Key: key, Value: v, Present: ok}:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return out, nil
}

func (s *Store) unwatch(key string, signal chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.watchers[key]
	for i, c := range list {
		if c == signal {
			s.watchers[key] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(s.watchers[key]) == 0 {
		delete(s.watchers, key)
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "memory"
}

var (
	_ core.KeyValueStore = (*Store)(nil)
	_ core.Watchable     = (*Store)(nil)
)
