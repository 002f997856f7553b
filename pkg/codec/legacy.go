package codec

import (
	"fmt"
	"strings"

	"github.com/aretw0/jot/pkg/core"
)

const (
	// PairSeparator joins encoded notes.
	PairSeparator = ";"
	// FieldSeparator joins a title to its body.
	FieldSeparator = ":"
)

// Legacy encodes notes as "title:body" pairs joined by ";".
//
// Nothing is escaped. A title or body containing ":" or ";" does not survive
// a round trip: a pair with extra ":" keeps only its first two fields, and a
// stray ";" produces a pair without a body, which fails with
// core.ErrMalformedPair. Use the json or yaml codec when that matters.
type Legacy struct{}

// NewLegacy creates the legacy codec.
func NewLegacy() *Legacy {
	return &Legacy{}
}

func (c *Legacy) Name() string { return "legacy" }

func (c *Legacy) Encode(entries []core.Entry) (string, error) {
	pairs := make([]string, 0, len(entries))
	for _, e := range entries {
		pairs = append(pairs, e.Title+FieldSeparator+e.Body)
	}
	return strings.Join(pairs, PairSeparator), nil
}

func (c *Legacy) Decode(s string) ([]core.Entry, error) {
	if s == "" {
		return []core.Entry{}, nil
	}

	pairs := strings.Split(s, PairSeparator)
	entries := make([]core.Entry, 0, len(pairs))
	for _, pair := range pairs {
		fields := strings.Split(pair, FieldSeparator)
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: %q", core.ErrMalformedPair, pair)
		}
		entries = append(entries, core.Entry{Title: fields[0], Body: fields[1]})
	}
	return entries, nil
}

// Collides reports whether e contains either separator.
func (c *Legacy) Collides(e core.Entry) bool {
	return strings.ContainsAny(e.Title, FieldSeparator+PairSeparator) ||
		strings.ContainsAny(e.Body, FieldSeparator+PairSeparator)
}

var _ core.Collider = (*Legacy)(nil)
