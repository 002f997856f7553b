package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	Key          string `json:"key"`
	Codec        string `json:"codec"`
	Notes        int    `json:"notes"`
	ReadOnly     bool   `json:"read_only"`
	PendingSaves int64  `json:"pending_saves"`
	StoreType    string `json:"store_type"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	storeType := "unknown"
	if s.kv != nil {
		storeType = "kv"
		if comp, ok := s.kv.(introspection.Component); ok {
			storeType = comp.ComponentType()
		}
	}

	return ServiceState{
		Key:          s.config.Key,
		Codec:        s.codec.Name(),
		Notes:        s.store.Len(),
		ReadOnly:     s.config.ReadOnly,
		PendingSaves: s.inFlight.Load(),
		StoreType:    storeType,
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
