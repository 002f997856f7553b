package platform

import (
	"context"
	"fmt"

	"github.com/aretw0/jot/pkg/adapters/fs"
	"github.com/aretw0/jot/pkg/adapters/memory"
	"github.com/aretw0/jot/pkg/codec"
	"github.com/aretw0/jot/pkg/core"
)

// Init prepares the storage behind a vault and returns it.
// The uri is adapter-specific: a directory for "fs", ignored for "memory".
func Init(uri string, opts ...Option) (core.KeyValueStore, error) {
	o := applyOptions(opts)
	cfg, err := vaultConfig(uri, o)
	if err != nil {
		return nil, err
	}
	return initStore(uri, o, cfg)
}

// New creates a Service over the vault at uri. The store starts empty;
// call Start or LoadOnce to bring in the persisted notes.
func New(uri string, opts ...Option) (*core.Service, error) {
	o := applyOptions(opts)
	cfg, err := vaultConfig(uri, o)
	if err != nil {
		return nil, err
	}

	store, err := initStore(uri, o, cfg)
	if err != nil {
		return nil, err
	}

	c := o.codec
	if c == nil {
		name := o.codecName
		if name == "" {
			name = cfg.Codec
		}
		if c, err = codec.Lookup(name); err != nil {
			return nil, err
		}
	}

	key := o.key
	if key == "" {
		key = cfg.Key
	}

	if o.logger != nil {
		o.logger.Debug("vault opened", "uri", uri, "adapter", o.adapter, "codec", c.Name())
	}

	return core.NewService(store, c, core.Config{
		Key:              key,
		Logger:           o.logger,
		ReadOnly:         o.readOnly,
		SaveErrorHandler: o.saveErrorHandler,
	}), nil
}

// Open creates a Service and loads the persisted notes into it once.
func Open(ctx context.Context, uri string, opts ...Option) (*core.Service, error) {
	svc, err := New(uri, opts...)
	if err != nil {
		return nil, err
	}
	entries, err := svc.LoadOnce(ctx)
	if err != nil {
		return nil, err
	}
	svc.Store().ReplaceAll(entries)
	return svc, nil
}

func vaultConfig(uri string, o *options) (VaultConfig, error) {
	if o.store != nil || o.adapter != "fs" {
		return VaultConfig{}, nil
	}
	return LoadConfig(uri)
}

func initStore(uri string, o *options, cfg VaultConfig) (core.KeyValueStore, error) {
	if o.store != nil {
		return o.store, nil
	}

	switch o.adapter {
	case "fs":
		return initFS(uri, o, cfg)
	case "memory":
		store := memory.NewStore()
		store.SetReadOnly(o.readOnly)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
}

// initFS handles the initialization logic for the filesystem adapter.
func initFS(path string, o *options, cfg VaultConfig) (core.KeyValueStore, error) {
	systemDir := o.systemDir
	if systemDir == "" {
		systemDir = cfg.SystemDir
	}

	repo := fs.NewRepository(fs.Config{
		Path:         path,
		AutoInit:     o.autoInit,
		MustExist:    o.mustExist,
		ReadOnly:     o.readOnly,
		SystemDir:    systemDir,
		Logger:       o.logger,
		ErrorHandler: o.watcherErrorHandler,
	})
	if err := repo.Initialize(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}
