package game_test

import (
	"testing"

	game "emoguchi/models/game"

	"github.com/stretchr/testify/assert"
)

func TestEmotionCatalogSizes(t *testing.T) {
	assert.Len(t, game.BasicEmotions, 8)
	assert.Len(t, game.AdvancedEmotions, 24)
}

func TestEmotionsForMode(t *testing.T) {
	t.Run("4choice uses the reduced pool", func(t *testing.T) {
		pool := game.EmotionsForMode(game.ModeBasic, game.Vote4Choice)
		assert.Len(t, pool, 4)
		ids := make(map[string]bool)
		for _, e := range pool {
			ids[e.ID] = true
		}
		assert.True(t, ids["joy"] && ids["anger"] && ids["sadness"] && ids["surprise"])
	})

	t.Run("8choice uses all basic emotions", func(t *testing.T) {
		assert.Len(t, game.EmotionsForMode(game.ModeBasic, game.Vote8Choice), 8)
	})

	t.Run("Wheel uses the full catalog", func(t *testing.T) {
		assert.Len(t, game.EmotionsForMode(game.ModeWheel, game.VoteWheel), 32)
	})
}

func TestFindEmotion(t *testing.T) {
	joy, ok := game.FindEmotion("joy")
	assert.True(t, ok)
	assert.Equal(t, "喜び", joy.NameJa)

	awe, ok := game.FindEmotion("awe")
	assert.True(t, ok)
	assert.Equal(t, "Awe", awe.NameEn)

	_, ok = game.FindEmotion("nonsense")
	assert.False(t, ok)
}

func TestVotingChoices(t *testing.T) {
	t.Run("4choice has four options containing the answer", func(t *testing.T) {
		choices := game.VotingChoices(game.ModeBasic, game.Vote4Choice, "joy")
		assert.Len(t, choices, 4)
		found := false
		for _, c := range choices {
			if c.ID == "joy" {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("8choice has eight distinct options", func(t *testing.T) {
		choices := game.VotingChoices(game.ModeBasic, game.Vote8Choice, "fear")
		assert.Len(t, choices, 8)
		ids := make(map[string]bool)
		for _, c := range choices {
			ids[c.ID] = true
		}
		assert.Len(t, ids, 8)
		assert.True(t, ids["fear"])
	})

	t.Run("Wheel has no choice list", func(t *testing.T) {
		assert.Nil(t, game.VotingChoices(game.ModeWheel, game.VoteWheel, "joy"))
	})

	t.Run("Unknown answer yields nothing", func(t *testing.T) {
		assert.Nil(t, game.VotingChoices(game.ModeBasic, game.Vote4Choice, "nonsense"))
	})
}

func TestRandomEmotionStaysInPool(t *testing.T) {
	for i := 0; i < 50; i++ {
		e := game.RandomEmotion(game.ModeBasic, game.Vote4Choice)
		assert.Contains(t, []string{"joy", "anger", "sadness", "surprise"}, e.ID)
	}
}
