package jot

import (
	"context"
	"log/slog"

	"github.com/aretw0/jot/internal/platform"
	"github.com/aretw0/jot/pkg/core"
)

// --- Types ---

// Entry is a public alias for a single note.
type Entry = core.Entry

// Service is a public alias for the note service.
type Service = core.Service

// --- Configuration ---

// Option defines a functional option for configuring jot.
type Option = platform.Option

// WithAutoInit creates the vault directory if it does not exist.
func WithAutoInit(auto bool) Option {
	return platform.WithAutoInit(auto)
}

// WithMustExist ensures the vault directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithReadOnly opens the vault without ever writing to it.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStore allows injecting a custom key-value store.
func WithStore(store core.KeyValueStore) Option {
	return platform.WithStore(store)
}

// WithAdapter allows specifying the storage adapter to use by name.
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithCodec sets the codec used to persist notes.
func WithCodec(c core.Codec) Option {
	return platform.WithCodec(c)
}

// WithCodecName selects a registered codec by name.
func WithCodecName(name string) Option {
	return platform.WithCodecName(name)
}

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return platform.WithKey(key)
}

// WithSystemDir allows specifying the hidden directory name (e.g. ".jot").
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// WithSaveErrorHandler registers a callback for background save failures.
func WithSaveErrorHandler(fn func(error)) Option {
	return platform.WithSaveErrorHandler(fn)
}

// WithWatcherErrorHandler registers a callback for watcher failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New creates a Service with an empty store.
func New(path string, opts ...Option) (*core.Service, error) {
	return platform.New(path, opts...)
}

// Open creates a Service and loads the persisted notes once.
func Open(ctx context.Context, path string, opts ...Option) (*core.Service, error) {
	return platform.Open(ctx, path, opts...)
}

// Init prepares a vault explicitly.
func Init(path string, opts ...Option) (core.KeyValueStore, error) {
	return platform.Init(path, opts...)
}

// FindVaultRoot recursively looks upwards for a vault root indicator.
func FindVaultRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
