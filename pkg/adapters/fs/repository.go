// Package fs stores key-value pairs as files inside a vault directory.
//
// Layout:
//
//	<vault>/
//	  jot.yaml        optional vault config
//	  .jot/           system dir
//	    notes         one file per key, holding the raw value
package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aretw0/jot/pkg/core"
)

// DefaultSystemDir is the hidden directory that holds the values.
const DefaultSystemDir = ".jot"

// ErrInvalidKey is returned for keys that cannot be used as a file name.
var ErrInvalidKey = errors.New("invalid key")

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path      string
	AutoInit  bool
	MustExist bool
	ReadOnly  bool
	SystemDir string // e.g. ".jot"
	Logger    *slog.Logger
	// ErrorHandler receives watcher failures that are otherwise only logged.
	ErrorHandler func(error)
}

// Repository implements core.KeyValueStore and core.Watchable on the filesystem.
type Repository struct {
	Path   string
	config Config
	logger *slog.Logger

	mu       sync.RWMutex
	watchers int
}

// NewRepository creates a new filesystem-backed repository.
// No I/O happens until Initialize or the first operation.
func NewRepository(config Config) *Repository {
	if config.SystemDir == "" {
		config.SystemDir = DefaultSystemDir
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Repository{
		Path:   config.Path,
		config: config,
		logger: logger,
	}
}

// Initialize prepares the vault directory and its system dir.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.config.MustExist || r.config.ReadOnly {
		info, err := os.Stat(r.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("vault path does not exist: %s", r.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("vault path is not a directory: %s", r.Path)
		}
	} else if !r.config.AutoInit {
		if _, err := os.Stat(r.Path); os.IsNotExist(err) {
			return fmt.Errorf("vault path does not exist: %s", r.Path)
		}
	}

	if r.config.ReadOnly {
		return nil
	}

	if err := os.MkdirAll(r.systemPath(), 0755); err != nil {
		return fmt.Errorf("failed to create system directory: %w", err)
	}
	r.logger.Debug("vault ready", "path", r.Path, "system_dir", r.config.SystemDir)
	return nil
}

// Get reads the value stored under key.
func (r *Repository) Get(ctx context.Context, key string) (string, bool, error) {
	path, err := r.keyPath(key)
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set writes value under key atomically.
func (r *Repository) Set(ctx context.Context, key, value string) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := r.keyPath(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create system directory: %w", err)
	}
	if err := writeAtomic(path, value, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Keys lists the keys that currently hold a value.
func (r *Repository) Keys() ([]string, error) {
	entries, err := os.ReadDir(r.systemPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var keys []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), TempFilePrefix) {
			continue
		}
		keys = append(keys, e.Name())
	}
	return keys, nil
}

func (r *Repository) systemPath() string {
	return filepath.Join(r.Path, r.config.SystemDir)
}

func (r *Repository) keyPath(key string) (string, error) {
	if key == "" ||
		strings.ContainsAny(key, `/\`) ||
		strings.HasPrefix(key, ".") ||
		strings.HasPrefix(key, TempFilePrefix) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(r.systemPath(), key), nil
}

var (
	_ core.KeyValueStore = (*Repository)(nil)
	_ core.Watchable     = (*Repository)(nil)
)
