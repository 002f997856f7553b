package codec

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/jot/pkg/core"
)

// JSON encodes notes as an ordered array of {"title", "body"} objects.
type JSON struct{}

// NewJSON creates the JSON codec.
func NewJSON() *JSON {
	return &JSON{}
}

func (c *JSON) Name() string { return "json" }

func (c *JSON) Encode(entries []core.Entry) (string, error) {
	if entries == nil {
		entries = []core.Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (c *JSON) Decode(s string) ([]core.Entry, error) {
	entries := []core.Entry{}
	if s == "" {
		return entries, nil
	}
	if err := json.Unmarshal([]byte(s), &entries); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return entries, nil
}
