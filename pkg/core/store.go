package core

import "sync"

// Store is the authoritative in-memory set of notes.
// Entries keep the order in which their title was first inserted.
type Store struct {
	mu     sync.RWMutex
	bodies map[string]string
	order  []string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		bodies: make(map[string]string),
	}
}

// Get returns the body stored under title.
func (s *Store) Get(title string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	body, ok := s.bodies[title]
	return body, ok
}

// Put inserts a note or overwrites the body of an existing one.
func (s *Store) Put(title, body string) error {
	if title == "" {
		return ErrEmptyTitle
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.put(title, body)
	return nil
}

func (s *Store) put(title, body string) {
	if _, exists := s.bodies[title]; !exists {
		s.order = append(s.order, title)
	}
	s.bodies[title] = body
}

// All returns a snapshot of every note in insertion order.
func (s *Store) All() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]Entry, 0, len(s.order))
	for _, title := range s.order {
		entries = append(entries, Entry{Title: title, Body: s.bodies[title]})
	}
	return entries
}

// ReplaceAll clears the store and fills it from entries.
// A repeated title keeps its first position and its last body.
func (s *Store) ReplaceAll(entries []Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bodies = make(map[string]string, len(entries))
	s.order = make([]string, 0, len(entries))
	for _, e := range entries {
		s.put(e.Title, e.Body)
	}
}

// Len returns the number of notes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
