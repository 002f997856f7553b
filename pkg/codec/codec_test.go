package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jot/pkg/codec"
	"github.com/aretw0/jot/pkg/core"
)

func TestLookup(t *testing.T) {
	for _, name := range codec.Names() {
		c, err := codec.Lookup(name)
		require.NoError(t, err)
		assert.Equal(t, name, c.Name())
	}

	c, err := codec.Lookup("")
	require.NoError(t, err)
	assert.Equal(t, codec.Default, c.Name())

	_, err = codec.Lookup("xml")
	assert.ErrorIs(t, err, core.ErrUnknownCodec)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"json", "legacy", "yaml"}, codec.Names())
}
