// Package codec holds the formats the notes can be persisted in.
//
// Every codec turns the whole note list into one string, since the notes
// live under a single key of a key-value store.
package codec

import (
	"fmt"
	"slices"

	"github.com/aretw0/jot/pkg/core"
)

// Default is the name of the codec used when none is configured.
const Default = "legacy"

var registry = map[string]func() core.Codec{
	"legacy": func() core.Codec { return NewLegacy() },
	"json":   func() core.Codec { return NewJSON() },
	"yaml":   func() core.Codec { return NewYAML() },
}

// Lookup returns a fresh codec by name. An empty name selects Default.
func Lookup(name string) (core.Codec, error) {
	if name == "" {
		name = Default
	}
	mk, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownCodec, name)
	}
	return mk(), nil
}

// Names lists the registered codecs in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
