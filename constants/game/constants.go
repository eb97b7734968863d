package game

import "time"

// Player limits
const (
	MinPlayersToStart = 2
	MaxPlayersPerRoom = 16
)

// Round pacing
const (
	DefaultVoteTimeoutSeconds = 30
	DefaultMaxRounds          = 1 // cycles, not individual rounds
)

// Phrase supplier bounds
const (
	PhraseSupplierTimeout = 3 * time.Second
	DefaultPrefetchBatch  = 5
	MaxPrefetchBatch      = 20
	PhraseCacheTTL        = 30 * time.Minute
)

// Audio relay bounds. MaxAudioBytes is also enforced at the engine.io buffer
// level in the socket server options.
const (
	MaxAudioBytes = 10 * 1024 * 1024
)

// Room id constraints for user-supplied passphrases.
const (
	RoomIDMinLen = 3
	RoomIDMaxLen = 20
)

// FallbackPhrases keeps round pacing when the phrase supplier times out or
// is not configured. Same list the original game shipped with.
var FallbackPhrases = []string{
	"はぁ…",
	"うそでしょ…",
	"なんで…",
	"まじか",
	"やばい！",
	"えっ！？",
	"なんでよ！",
	"あーあ…",
	"なるほどね",
	"ふーん",
}
