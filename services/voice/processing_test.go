package voice_test

import (
	"testing"

	"emoguchi/services/voice"

	"github.com/stretchr/testify/assert"
)

func TestConfigForEmotion(t *testing.T) {
	t.Run("Joy reverses toward sadness", func(t *testing.T) {
		cfg := voice.ConfigForEmotion("joy")
		assert.Equal(t, voice.PatternEmotionReverse, cfg.Pattern)
		assert.Negative(t, cfg.Pitch)
		assert.Less(t, cfg.Tempo, 1.0)
	})

	t.Run("Sadness reverses toward joy", func(t *testing.T) {
		cfg := voice.ConfigForEmotion("sadness")
		assert.Positive(t, cfg.Pitch)
		assert.Greater(t, cfg.Tempo, 1.0)
	})

	t.Run("Unmapped emotion uses fast_high", func(t *testing.T) {
		cfg := voice.ConfigForEmotion("optimism")
		assert.Equal(t, voice.PatternFastHigh, cfg.Pattern)
	})
}

func TestSelectProcessingPattern(t *testing.T) {
	patterns := make(map[voice.ProcessingPattern]bool)
	for i := 0; i < 200; i++ {
		cfg := voice.SelectProcessingPattern("anger")
		patterns[cfg.Pattern] = true

		// Parameter ranges hold for every selection.
		assert.GreaterOrEqual(t, cfg.Pitch, -12.0)
		assert.LessOrEqual(t, cfg.Pitch, 12.0)
		assert.GreaterOrEqual(t, cfg.Tempo, 0.5)
		assert.LessOrEqual(t, cfg.Tempo, 2.0)
	}
	// 200 draws land on every pattern in practice.
	assert.Len(t, patterns, 5)
}
