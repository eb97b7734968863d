package voice

import "math/rand"

// ProcessingPattern names one of the hard-mode distortion presets. The DSP
// itself happens outside the core; the relay only selects parameters and
// attaches them to the listener broadcast.
type ProcessingPattern string

const (
	PatternFastHigh       ProcessingPattern = "fast_high"
	PatternSlowLow        ProcessingPattern = "slow_low"
	PatternPitchUp        ProcessingPattern = "pitch_up"
	PatternTempoUp        ProcessingPattern = "tempo_up"
	PatternEmotionReverse ProcessingPattern = "emotion_reverse"
)

// ProcessingConfig carries the pitch shift (semitones, -12..+12) and tempo
// multiplier (0.5..2.0) for one round's distortion.
type ProcessingConfig struct {
	Pattern ProcessingPattern `json:"pattern"`
	Pitch   float64           `json:"pitch"`
	Tempo   float64           `json:"tempo"`
}

var basePatterns = map[ProcessingPattern]ProcessingConfig{
	PatternFastHigh: {Pattern: PatternFastHigh, Pitch: 6.0, Tempo: 2.0},
	PatternSlowLow:  {Pattern: PatternSlowLow, Pitch: -3.0, Tempo: 0.8},
	PatternPitchUp:  {Pattern: PatternPitchUp, Pitch: 3.0, Tempo: 1.0},
	PatternTempoUp:  {Pattern: PatternTempoUp, Pitch: 0.0, Tempo: 1.5},
}

// reversalParams maps each basic emotion to parameters evoking its Plutchik
// opposite (joy -> sadness, anger -> fear, ...).
var reversalParams = map[string]ProcessingConfig{
	"joy":          {Pattern: PatternEmotionReverse, Pitch: -3.0, Tempo: 0.8},
	"anger":        {Pattern: PatternEmotionReverse, Pitch: -2.0, Tempo: 0.85},
	"trust":        {Pattern: PatternEmotionReverse, Pitch: -1.5, Tempo: 0.9},
	"anticipation": {Pattern: PatternEmotionReverse, Pitch: 2.0, Tempo: 1.4},
	"fear":         {Pattern: PatternEmotionReverse, Pitch: 2.0, Tempo: 1.6},
	"sadness":      {Pattern: PatternEmotionReverse, Pitch: 3.0, Tempo: 1.4},
	"disgust":      {Pattern: PatternEmotionReverse, Pitch: 2.0, Tempo: 1.2},
	"surprise":     {Pattern: PatternEmotionReverse, Pitch: -1.0, Tempo: 0.9},
}

// ConfigForEmotion returns the reversal parameters for an emotion, falling
// back to fast_high for emotions without a mapped opposite.
func ConfigForEmotion(emotionID string) ProcessingConfig {
	if cfg, ok := reversalParams[emotionID]; ok {
		return cfg
	}
	return basePatterns[PatternFastHigh]
}

// SelectProcessingPattern picks one of the five patterns with equal
// probability for a hard-mode round.
func SelectProcessingPattern(emotionID string) ProcessingConfig {
	choices := []ProcessingPattern{
		PatternFastHigh, PatternSlowLow, PatternPitchUp, PatternTempoUp, PatternEmotionReverse,
	}
	choice := choices[rand.Intn(len(choices))]
	if choice == PatternEmotionReverse {
		return ConfigForEmotion(emotionID)
	}
	return basePatterns[choice]
}
