package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopBuild(_ *Builder, _ Raw) (Node, error) { return &badge{}, nil }

func TestRegistry_Resolve(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Schema{Type: "Message", Build: noopBuild})
	reg.RegisterShaped("Message", HasKey("button"), Schema{Type: "ActionMessage", Build: noopBuild})
	reg.Alias("LegacyMessage", "Message")

	s, ok := reg.Resolve("Message", Raw{"text": "x"})
	require.True(t, ok)
	assert.Equal(t, "Message", s.Type)

	s, ok = reg.Resolve("Message", Raw{"button": map[string]any{}})
	require.True(t, ok)
	assert.Equal(t, "ActionMessage", s.Type)

	s, ok = reg.Resolve("LegacyMessage", Raw{})
	require.True(t, ok)
	assert.Equal(t, "Message", s.Type)

	_, ok = reg.Resolve("Unknown", Raw{})
	assert.False(t, ok)

	assert.True(t, reg.Known("LegacyMessage"))
	assert.False(t, reg.Known("Unknown"))
	assert.Equal(t, []string{"ActionMessage", "Message"}, reg.Types())
}

func TestRegistry_ShapedOnly(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterShaped("Panel", HasKey("playlistId"), Schema{Type: "Panel", Build: noopBuild})

	_, ok := reg.Resolve("Panel", Raw{"playlistId": "PL"})
	assert.True(t, ok)
	_, ok = reg.Resolve("Panel", Raw{})
	assert.False(t, ok)
}

func TestRegistry_Panics(t *testing.T) {
	t.Run("duplicate", func(t *testing.T) {
		reg := NewRegistry()
		reg.Register(Schema{Type: "A", Build: noopBuild})
		assert.Panics(t, func() { reg.Register(Schema{Type: "A", Build: noopBuild}) })
	})

	t.Run("empty tag", func(t *testing.T) {
		assert.Panics(t, func() { NewRegistry().Register(Schema{Type: " ", Build: noopBuild}) })
	})

	t.Run("missing build", func(t *testing.T) {
		assert.Panics(t, func() { NewRegistry().Register(Schema{Type: "A"}) })
	})

	t.Run("frozen", func(t *testing.T) {
		reg := NewRegistry()
		reg.Freeze()
		assert.Panics(t, func() { reg.Register(Schema{Type: "A", Build: noopBuild}) })
		assert.Panics(t, func() { reg.Alias("B", "A") })
	})
}
