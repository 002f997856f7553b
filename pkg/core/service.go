package core

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
)

// echoWindow is how many of our own recent writes are remembered so their
// change notifications are not applied back onto a newer store.
const echoWindow = 16

// Config holds the configuration for a Service.
type Config struct {
	// Key is the storage key. Defaults to NotesKey.
	Key    string
	Logger *slog.Logger
	// ReadOnly rejects Create and drops saves.
	ReadOnly bool
	// SaveErrorHandler receives failures of background saves, which are
	// otherwise only logged.
	SaveErrorHandler func(error)
}

// Service owns the note store and bridges it to a KeyValueStore.
type Service struct {
	store  *Store
	kv     KeyValueStore
	codec  Codec
	config Config
	logger *slog.Logger

	seq      atomic.Uint64
	pending  sync.WaitGroup
	inFlight atomic.Int64

	writeMu sync.Mutex
	written uint64
	recent  []string
}

// NewService creates a new Service around an empty store.
func NewService(kv KeyValueStore, codec Codec, config Config) *Service {
	if config.Key == "" {
		config.Key = NotesKey
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		store:  NewStore(),
		kv:     kv,
		codec:  codec,
		config: config,
		logger: logger,
	}
}

// Store exposes the in-memory notes.
func (s *Service) Store() *Store {
	return s.store
}

// KeyValueStore returns the store the notes are persisted to.
func (s *Service) KeyValueStore() KeyValueStore {
	return s.kv
}

// Codec returns the codec used for persistence.
func (s *Service) Codec() Codec {
	return s.codec
}

// --- Loading ---

// LoadOnce reads and decodes the persisted notes.
// An absent value yields no entries.
func (s *Service) LoadOnce(ctx context.Context) ([]Entry, error) {
	value, ok, err := s.kv.Get(ctx, s.config.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", s.config.Key, err)
	}
	if !ok {
		return []Entry{}, nil
	}
	entries, err := s.codec.Decode(value)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %q: %w", s.config.Key, err)
	}
	return entries, nil
}

// Load emits the current notes, then the notes again every time the
// persisted value changes. A current value that fails to decode is an error;
// later values that fail to decode are logged and skipped.
// The channel is closed when ctx is done, or right after the first value if
// the store cannot be watched.
func (s *Service) Load(ctx context.Context) (<-chan []Entry, error) {
	return s.stream(ctx, false)
}

// Start fills the store from the persisted notes and keeps it in sync with
// later changes until ctx is done. It returns once the initial notes are in.
func (s *Service) Start(ctx context.Context) error {
	stream, err := s.stream(ctx, true)
	if err != nil {
		return err
	}

	select {
	case entries, ok := <-stream:
		if !ok {
			return nil
		}
		s.store.ReplaceAll(entries)
		s.logger.Debug("notes loaded", "count", len(entries))
	case <-ctx.Done():
		return ctx.Err()
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		for entries := range stream {
			s.store.ReplaceAll(entries)
			s.logger.Debug("notes reloaded", "count", len(entries))
		}
		return nil
	})
	return nil
}

func (s *Service) stream(ctx context.Context, skipOwn bool) (<-chan []Entry, error) {
	var changes <-chan Change
	if w, ok := s.kv.(Watchable); ok {
		// Subscribe before the first read so nothing written in between is missed.
		c, err := w.Watch(ctx, s.config.Key)
		if err != nil {
			return nil, fmt.Errorf("failed to watch %q: %w", s.config.Key, err)
		}
		changes = c
	}

	value, present, err := s.kv.Get(ctx, s.config.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", s.config.Key, err)
	}

	initial := []Entry{}
	if present {
		if initial, err = s.codec.Decode(value); err != nil {
			return nil, fmt.Errorf("failed to decode %q: %w", s.config.Key, err)
		}
	}

	out := make(chan []Entry, 1)
	out <- initial

	if changes == nil {
		close(out)
		return out, nil
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case c, ok := <-changes:
				if !ok {
					return nil
				}
				if skipOwn && c.Present && s.isOwnWrite(c.Value) {
					continue
				}
				entries, ok := s.decode(c.Value, c.Present)
				if !ok {
					continue
				}
				select {
				case out <- entries:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return out, nil
}

func (s *Service) decode(value string, present bool) ([]Entry, bool) {
	if !present {
		return []Entry{}, true
	}
	entries, err := s.codec.Decode(value)
	if err != nil {
		s.logger.Error("failed to decode notes", "key", s.config.Key, "codec", s.codec.Name(), "error", err)
		return nil, false
	}
	return entries, true
}

// --- Saving ---

// Save persists a snapshot of the store in the background.
// Failures are logged and passed to the SaveErrorHandler; nothing is returned.
func (s *Service) Save(ctx context.Context) {
	if s.config.ReadOnly {
		s.logger.Debug("save skipped", "reason", "read-only")
		return
	}

	entries := s.store.All()
	seq := s.seq.Add(1)

	s.pending.Add(1)
	s.inFlight.Add(1)
	lifecycle.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		defer s.pending.Done()
		defer s.inFlight.Add(-1)

		if err := s.write(ctx, seq, entries); err != nil {
			s.reportSaveError(err)
		}
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		s.reportSaveError(fmt.Errorf("save panic: %w", err))
	}))
}

// SaveSync persists a snapshot of the store and reports the outcome.
func (s *Service) SaveSync(ctx context.Context) error {
	if s.config.ReadOnly {
		return ErrReadOnly
	}
	return s.write(ctx, s.seq.Add(1), s.store.All())
}

// Wait blocks until every background save has finished.
func (s *Service) Wait() {
	s.pending.Wait()
}

func (s *Service) write(ctx context.Context, seq uint64, entries []Entry) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	// A newer snapshot already reached the store.
	if seq < s.written {
		return nil
	}

	encoded, err := s.codec.Encode(entries)
	if err != nil {
		return fmt.Errorf("failed to encode notes: %w", err)
	}
	if err := s.kv.Set(ctx, s.config.Key, encoded); err != nil {
		return fmt.Errorf("failed to write %q: %w", s.config.Key, err)
	}

	s.written = seq
	s.recent = append(s.recent, encoded)
	if len(s.recent) > echoWindow {
		s.recent = s.recent[len(s.recent)-echoWindow:]
	}
	s.logger.Debug("notes saved", "key", s.config.Key, "count", len(entries))
	return nil
}

func (s *Service) isOwnWrite(value string) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return slices.Contains(s.recent, value)
}

func (s *Service) reportSaveError(err error) {
	s.logger.Error("failed to save notes", "key", s.config.Key, "error", err)
	if s.config.SaveErrorHandler != nil {
		s.config.SaveErrorHandler(err)
	}
}

// --- Screens ---

// Create adds a note and schedules a save.
// An empty title falls back to the first word of the body.
func (s *Service) Create(ctx context.Context, title, body string) (Entry, error) {
	if s.config.ReadOnly {
		return Entry{}, ErrReadOnly
	}

	words := strings.Fields(body)
	if len(words) == 0 {
		return Entry{}, ErrEmptyBody
	}
	if title == "" {
		title = words[0]
	}

	if err := s.store.Put(title, body); err != nil {
		return Entry{}, err
	}

	e := Entry{Title: title, Body: body}
	if c, ok := s.codec.(Collider); ok && c.Collides(e) {
		s.logger.Warn("note contains codec delimiters and will not reload intact",
			"title", title,
			"codec", s.codec.Name(),
		)
	}

	s.Save(ctx)
	return e, nil
}

// Get returns a single note.
func (s *Service) Get(title string) (Entry, error) {
	body, ok := s.store.Get(title)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, title)
	}
	return Entry{Title: title, Body: body}, nil
}

// List returns the notes newest first.
func (s *Service) List() []Entry {
	entries := s.store.All()
	slices.Reverse(entries)
	return entries
}

// Search returns the notes whose title or body contains query, ignoring case.
func (s *Service) Search(query string) []Entry {
	q := strings.ToLower(query)

	var found []Entry
	for _, e := range s.store.All() {
		if strings.Contains(strings.ToLower(e.Title), q) || strings.Contains(strings.ToLower(e.Body), q) {
			found = append(found, e)
		}
	}
	return found
}

// Match returns the notes whose title matches a glob pattern.
func (s *Service) Match(pattern string) ([]Entry, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	var found []Entry
	for _, e := range s.store.All() {
		ok, err := doublestar.Match(pattern, e.Title)
		if err != nil {
			return nil, err
		}
		if ok {
			found = append(found, e)
		}
	}
	return found, nil
}
