package game

import "math/rand"

// EmotionInfo describes one entry of the Plutchik catalog. Display names are
// Japanese-first because the scripted lines are Japanese.
type EmotionInfo struct {
	ID     string `json:"id"`
	NameJa string `json:"name_ja"`
	NameEn string `json:"name_en"`
}

// The 8 basic Plutchik emotions.
var BasicEmotions = []EmotionInfo{
	{ID: "joy", NameJa: "喜び", NameEn: "Joy"},
	{ID: "anticipation", NameJa: "期待", NameEn: "Anticipation"},
	{ID: "anger", NameJa: "怒り", NameEn: "Anger"},
	{ID: "disgust", NameJa: "嫌悪", NameEn: "Disgust"},
	{ID: "sadness", NameJa: "悲しみ", NameEn: "Sadness"},
	{ID: "surprise", NameJa: "驚き", NameEn: "Surprise"},
	{ID: "fear", NameJa: "恐れ", NameEn: "Fear"},
	{ID: "trust", NameJa: "信頼", NameEn: "Trust"},
}

// The 24 advanced dyads (combinations of two basic emotions).
var AdvancedEmotions = []EmotionInfo{
	{ID: "optimism", NameJa: "楽観", NameEn: "Optimism"},
	{ID: "love", NameJa: "愛", NameEn: "Love"},
	{ID: "pride", NameJa: "プライド", NameEn: "Pride"},
	{ID: "aggressiveness", NameJa: "攻撃性", NameEn: "Aggressiveness"},
	{ID: "contempt", NameJa: "軽蔑", NameEn: "Contempt"},
	{ID: "remorse", NameJa: "後悔", NameEn: "Remorse"},
	{ID: "disappointment", NameJa: "失望", NameEn: "Disappointment"},
	{ID: "awe", NameJa: "畏敬", NameEn: "Awe"},
	{ID: "delight", NameJa: "喜悦", NameEn: "Delight"},
	{ID: "submission", NameJa: "服従", NameEn: "Submission"},
	{ID: "guilt", NameJa: "罪悪感", NameEn: "Guilt"},
	{ID: "hope", NameJa: "希望", NameEn: "Hope"},
	{ID: "anxiety", NameJa: "不安", NameEn: "Anxiety"},
	{ID: "cynicism", NameJa: "皮肉", NameEn: "Cynicism"},
	{ID: "pessimism", NameJa: "悲観", NameEn: "Pessimism"},
	{ID: "envy", NameJa: "嫉妬", NameEn: "Envy"},
	{ID: "outrage", NameJa: "憤慨", NameEn: "Outrage"},
	{ID: "unbelief", NameJa: "不信", NameEn: "Unbelief"},
	{ID: "shame", NameJa: "恥", NameEn: "Shame"},
	{ID: "despair", NameJa: "絶望", NameEn: "Despair"},
	{ID: "sentimentality", NameJa: "感傷", NameEn: "Sentimentality"},
	{ID: "curiosity", NameJa: "好奇心", NameEn: "Curiosity"},
	{ID: "dominance", NameJa: "支配", NameEn: "Dominance"},
	{ID: "morbidness", NameJa: "病的", NameEn: "Morbidness"},
}

// fourChoiceIDs is the reduced pool used by 4choice voting.
var fourChoiceIDs = map[string]bool{
	"joy": true, "anger": true, "sadness": true, "surprise": true,
}

// EmotionsForMode returns the emotion pool for a mode/voteType combination.
// 4choice restricts to the four core emotions, 8choice uses all basic ones,
// wheel uses the full basic+advanced catalog.
func EmotionsForMode(mode GameMode, voteType VoteType) []EmotionInfo {
	switch {
	case mode == ModeWheel || voteType == VoteWheel:
		pool := make([]EmotionInfo, 0, len(BasicEmotions)+len(AdvancedEmotions))
		pool = append(pool, BasicEmotions...)
		pool = append(pool, AdvancedEmotions...)
		return pool
	case voteType == Vote8Choice:
		return BasicEmotions
	default:
		pool := make([]EmotionInfo, 0, 4)
		for _, e := range BasicEmotions {
			if fourChoiceIDs[e.ID] {
				pool = append(pool, e)
			}
		}
		return pool
	}
}

// FindEmotion looks an emotion up across the whole catalog.
func FindEmotion(id string) (EmotionInfo, bool) {
	for _, e := range BasicEmotions {
		if e.ID == id {
			return e, true
		}
	}
	for _, e := range AdvancedEmotions {
		if e.ID == id {
			return e, true
		}
	}
	return EmotionInfo{}, false
}

// EmotionDisplayName returns the Japanese display name, falling back to the
// raw id for unknown emotions.
func EmotionDisplayName(id string) string {
	if e, ok := FindEmotion(id); ok {
		return e.NameJa
	}
	return id
}

// RandomEmotion picks a target emotion uniformly from the mode's pool.
func RandomEmotion(mode GameMode, voteType VoteType) EmotionInfo {
	pool := EmotionsForMode(mode, voteType)
	return pool[rand.Intn(len(pool))]
}

// VotingChoices builds the shuffled option list for a round: the correct
// emotion plus random distractors from the same pool. Wheel voting has no
// choice list, the client renders the full wheel instead.
func VotingChoices(mode GameMode, voteType VoteType, correctID string) []EmotionInfo {
	if mode == ModeWheel || voteType == VoteWheel {
		return nil
	}

	count := 4
	if voteType == Vote8Choice {
		count = 8
	}

	pool := EmotionsForMode(mode, voteType)
	correct, ok := FindEmotion(correctID)
	if !ok {
		return nil
	}

	others := make([]EmotionInfo, 0, len(pool))
	for _, e := range pool {
		if e.ID != correctID {
			others = append(others, e)
		}
	}
	rand.Shuffle(len(others), func(i, j int) { others[i], others[j] = others[j], others[i] })

	if len(others) > count-1 {
		others = others[:count-1]
	}
	choices := append([]EmotionInfo{correct}, others...)
	rand.Shuffle(len(choices), func(i, j int) { choices[i], choices[j] = choices[j], choices[i] })
	return choices
}
