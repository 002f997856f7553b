package core

import "context"

// KeyValueStore is the persistence port the notes are written to.
// Implementations hold plain string values under string keys, the way a
// preferences file on a device would.
type KeyValueStore interface {
	// Get returns the value for key. ok is false when the key was never written.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}

// Change describes a new persisted value for a key.
type Change struct {
	Key     string
	Value   string
	Present bool
}

// Watchable is implemented by stores that can report changes to a key.
type Watchable interface {
	// Watch emits a Change every time the value stored under key changes.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context, key string) (<-chan Change, error)
}

// Codec converts notes to and from the single string kept in the store.
type Codec interface {
	Name() string
	Encode(entries []Entry) (string, error)
	Decode(s string) ([]Entry, error)
}

// Collider is implemented by codecs that cannot represent every entry.
type Collider interface {
	// Collides reports whether e would not survive an Encode/Decode round trip.
	Collides(e Entry) bool
}
