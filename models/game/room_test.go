package game_test

import (
	"testing"

	game "emoguchi/models/game"

	"github.com/stretchr/testify/assert"
)

func newTestRoom() *game.Room {
	return game.NewRoom("test-room", game.DefaultConfig())
}

func TestAddPlayer(t *testing.T) {
	room := newTestRoom()

	t.Run("First player becomes host", func(t *testing.T) {
		alice := room.AddPlayer("p1", "alice")
		assert.True(t, alice.IsHost)
		assert.True(t, alice.IsConnected)
		assert.Equal(t, 0, alice.Score)
	})

	t.Run("Second player is not host", func(t *testing.T) {
		bob := room.AddPlayer("p2", "bob")
		assert.False(t, bob.IsHost)
	})

	t.Run("Empty id gets generated", func(t *testing.T) {
		carol := room.AddPlayer("", "carol")
		assert.NotEmpty(t, carol.ID)
	})
}

func TestRemovePlayerAndPromotion(t *testing.T) {
	room := newTestRoom()
	room.AddPlayer("p1", "alice")
	room.AddPlayer("p2", "bob")
	room.AddPlayer("p3", "carol")

	room.RemovePlayer("p1")
	assert.Nil(t, room.PlayerByID("p1"))

	next := room.PromoteNextHost()
	assert.NotNil(t, next)
	assert.Equal(t, "bob", next.Name)
	assert.True(t, next.IsHost)
}

func TestSequentialSpeakerRotation(t *testing.T) {
	room := newTestRoom()
	room.AddPlayer("p1", "alice")
	room.AddPlayer("p2", "bob")
	room.AddPlayer("p3", "carol")

	assert.Equal(t, "p1", room.CurrentSpeaker().ID)
	room.AdvanceSpeaker()
	assert.Equal(t, "p2", room.CurrentSpeaker().ID)
	room.AdvanceSpeaker()
	assert.Equal(t, "p3", room.CurrentSpeaker().ID)
	room.AdvanceSpeaker()
	// Wraps back to the first player.
	assert.Equal(t, "p1", room.CurrentSpeaker().ID)
}

func TestRandomSpeakerRotationCoversEveryone(t *testing.T) {
	config := game.DefaultConfig()
	config.SpeakerOrder = game.OrderRandom
	room := game.NewRoom("rand-room", config)
	room.AddPlayer("p1", "alice")
	room.AddPlayer("p2", "bob")
	room.AddPlayer("p3", "carol")

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		seen[room.CurrentSpeaker().ID] = true
		room.AdvanceSpeaker()
	}
	// One full cycle visits every connected player exactly once.
	assert.Len(t, seen, 3)
}

func TestDisconnectedPlayersSkippedInRotation(t *testing.T) {
	room := newTestRoom()
	room.AddPlayer("p1", "alice")
	bob := room.AddPlayer("p2", "bob")
	room.AddPlayer("p3", "carol")

	bob.IsConnected = false
	room.ResetSpeakerOrder()

	order := room.SpeakerOrderIDs()
	assert.Equal(t, []string{"p1", "p3"}, order)
}

func TestRankings(t *testing.T) {
	room := newTestRoom()
	alice := room.AddPlayer("p1", "alice")
	bob := room.AddPlayer("p2", "bob")
	carol := room.AddPlayer("p3", "carol")

	alice.Score = 2
	bob.Score = 5
	carol.Score = 2

	rankings := room.Rankings()
	assert.Equal(t, "bob", rankings[0].Name)
	assert.Equal(t, 1, rankings[0].Rank)
	// Equal scores keep join order.
	assert.Equal(t, "alice", rankings[1].Name)
	assert.Equal(t, "carol", rankings[2].Name)
}

func TestResetGame(t *testing.T) {
	room := newTestRoom()
	alice := room.AddPlayer("p1", "alice")
	room.AddPlayer("p2", "bob")
	alice.Score = 7
	room.Phase = game.PhaseClosed
	room.RoundsCompleted = 4
	room.CyclesCompleted = 2

	room.ResetGame()

	assert.Equal(t, game.PhaseWaiting, room.Phase)
	assert.Equal(t, 0, alice.Score)
	assert.Equal(t, 0, room.RoundsCompleted)
	assert.Equal(t, 0, room.CyclesCompleted)
	assert.Nil(t, room.CurrentRound)
	// Membership survives the reset.
	assert.Len(t, room.Players, 2)
}

func TestValidRoomID(t *testing.T) {
	assert.True(t, game.ValidRoomID("abc123"))
	assert.True(t, game.ValidRoomID("たのしいネコ123"))
	assert.True(t, game.ValidRoomID("元気な犬42"))
	assert.False(t, game.ValidRoomID("ab"))                     // too short
	assert.False(t, game.ValidRoomID("has spaces here"))        // whitespace
	assert.False(t, game.ValidRoomID("emoji🎉room"))             // symbols
	assert.False(t, game.ValidRoomID("aaaaaaaaaaaaaaaaaaaaabc")) // too long
}

func TestGenerateRoomID(t *testing.T) {
	for i := 0; i < 50; i++ {
		id := game.GenerateRoomID()
		assert.True(t, game.ValidRoomID(id), "generated id %q should validate", id)
	}
}
