package registry_test

import (
	"testing"

	game "emoguchi/models/game"
	"emoguchi/services/registry"

	"github.com/stretchr/testify/assert"
)

func TestRegistry(t *testing.T) {
	reg := registry.New()
	room := game.NewRoom("room1", game.DefaultConfig())

	t.Run("Create and get", func(t *testing.T) {
		assert.True(t, reg.Create(room))
		assert.Equal(t, room, reg.Get("room1"))
		assert.Equal(t, 1, reg.Len())
	})

	t.Run("Duplicate create fails", func(t *testing.T) {
		assert.False(t, reg.Create(game.NewRoom("room1", game.DefaultConfig())))
		// The original room is untouched.
		assert.Equal(t, room, reg.Get("room1"))
	})

	t.Run("Get unknown returns nil", func(t *testing.T) {
		assert.Nil(t, reg.Get("missing"))
	})

	t.Run("Delete", func(t *testing.T) {
		reg.Delete("room1")
		assert.Nil(t, reg.Get("room1"))
		assert.Equal(t, 0, reg.Len())
	})

	t.Run("List", func(t *testing.T) {
		reg.Create(game.NewRoom("a", game.DefaultConfig()))
		reg.Create(game.NewRoom("b", game.DefaultConfig()))
		assert.Len(t, reg.List(), 2)
	})
}
