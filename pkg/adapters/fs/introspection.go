package fs

import (
	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path      string   `json:"path"`
	SystemDir string   `json:"system_dir"`
	ReadOnly  bool     `json:"read_only"`
	Keys      []string `json:"keys"`
	Watchers  int      `json:"watchers"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	watchers := r.watchers
	r.mu.RUnlock()

	keys, _ := r.Keys()

	return RepositoryState{
		Path:      r.Path,
		SystemDir: r.config.SystemDir,
		ReadOnly:  r.config.ReadOnly,
		Keys:      keys,
		Watchers:  watchers,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "fs"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
