package platform

import (
	"log/slog"

	"github.com/aretw0/jot/pkg/core"
)

// options holds the internal configuration for a jot vault.
type options struct {
	store     core.KeyValueStore
	codec     core.Codec
	codecName string
	adapter   string
	key       string
	systemDir string
	autoInit  bool
	mustExist bool
	readOnly  bool
	logger    *slog.Logger

	saveErrorHandler    func(error)
	watcherErrorHandler func(error)
}

// Option defines a functional option for configuring jot.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter: "fs",
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithAutoInit creates the vault directory if it does not exist.
func WithAutoInit(auto bool) Option {
	return func(o *options) {
		o.autoInit = auto
	}
}

// WithMustExist ensures the vault directory must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithReadOnly opens the vault without ever writing to it.
// Creating notes fails with core.ErrReadOnly.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithLogger sets the logger for the service and its adapter.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStore injects a custom key-value store (e.g. a mock).
// If provided, the adapter option is ignored.
func WithStore(store core.KeyValueStore) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithAdapter selects the storage adapter by name: "fs" (default) or "memory".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithCodec sets the codec instance used to persist notes.
func WithCodec(c core.Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}

// WithCodecName selects a registered codec by name ("legacy", "json", "yaml").
func WithCodecName(name string) Option {
	return func(o *options) {
		o.codecName = name
	}
}

// WithKey overrides the storage key. Defaults to "notes".
func WithKey(key string) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithSystemDir allows specifying the hidden directory name (e.g. ".jot").
func WithSystemDir(name string) Option {
	return func(o *options) {
		o.systemDir = name
	}
}

// WithSaveErrorHandler registers a callback for background save failures,
// which are otherwise only logged.
func WithSaveErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.saveErrorHandler = fn
	}
}

// WithWatcherErrorHandler registers a callback for errors raised while
// watching the persisted notes.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.watcherErrorHandler = fn
	}
}
