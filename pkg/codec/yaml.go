package codec

import (
	"bytes"
	"fmt"

	"github.com/aretw0/jot/pkg/core"
	"gopkg.in/yaml.v3"
)

// YAML encodes notes as an ordered sequence of {title, body} mappings.
type YAML struct{}

// NewYAML creates the YAML codec.
func NewYAML() *YAML {
	return &YAML{}
}

func (c *YAML) Name() string { return "yaml" }

func (c *YAML) Encode(entries []core.Entry) (string, error) {
	if entries == nil {
		entries = []core.Entry{}
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(entries); err != nil {
		return "", err
	}
	if err := encoder.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (c *YAML) Decode(s string) ([]core.Entry, error) {
	var entries []core.Entry
	if err := yaml.Unmarshal([]byte(s), &entries); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	if entries == nil {
		entries = []core.Entry{}
	}
	return entries, nil
}
