package game

import (
	"fmt"
	"math/rand"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"

	constants "emoguchi/constants/game"
)

type GameMode string

const (
	ModeBasic    GameMode = "basic"
	ModeAdvanced GameMode = "advanced"
	ModeWheel    GameMode = "wheel"
)

type VoteType string

const (
	Vote4Choice VoteType = "4choice"
	Vote8Choice VoteType = "8choice"
	VoteWheel   VoteType = "wheel"
)

type SpeakerOrder string

const (
	OrderSequential SpeakerOrder = "sequential"
	OrderRandom     SpeakerOrder = "random"
)

type GamePhase string

const (
	PhaseWaiting GamePhase = "waiting"
	PhaseInRound GamePhase = "in_round"
	PhaseResult  GamePhase = "result"
	PhaseClosed  GamePhase = "closed"
)

// RoomConfig is mutable only by the host and only while the room is waiting.
type RoomConfig struct {
	Mode               GameMode     `json:"mode"`
	VoteType           VoteType     `json:"voteType"`
	SpeakerOrder       SpeakerOrder `json:"speakerOrder"`
	VoteTimeoutSeconds int          `json:"voteTimeoutSeconds"`
	MaxRounds          int          `json:"maxRounds"` // cycles through all players
	HardMode           bool         `json:"hardMode"`
}

// DefaultConfig mirrors the defaults of the original game.
func DefaultConfig() RoomConfig {
	return RoomConfig{
		Mode:               ModeBasic,
		VoteType:           Vote4Choice,
		SpeakerOrder:       OrderSequential,
		VoteTimeoutSeconds: constants.DefaultVoteTimeoutSeconds,
		MaxRounds:          constants.DefaultMaxRounds,
	}
}

// Player identity is a durable client-generated token, so a reconnecting
// client resumes its score.
type Player struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Score       int       `json:"score"`
	IsHost      bool      `json:"isHost"`
	IsConnected bool      `json:"isConnected"`
	JoinedAt    time.Time `json:"joinedAt"`
}

// Round exists only while the room phase is in_round.
type Round struct {
	ID              string            `json:"roundId"`
	Phrase          string            `json:"phrase"`
	EmotionID       string            `json:"emotionId"`
	SpeakerID       string            `json:"speakerId"`
	VotingChoices   []EmotionInfo     `json:"votingChoices"`
	Votes           map[string]string `json:"votes"` // player id -> emotion id
	EligibleVoters  []string          `json:"eligibleVoters"`
	AudioDelivered  bool              `json:"audioDelivered"`
	VotingStartedAt *time.Time        `json:"votingStartedAt"`
	StartedAt       time.Time         `json:"startedAt"`

	// voteTimer is the cancellable handle for the vote timeout. Both the
	// timer path and the all-votes path funnel into one guarded completion.
	voteTimer *time.Timer
}

// SetVoteTimer stores the timeout handle for later cancellation.
func (r *Round) SetVoteTimer(t *time.Timer) {
	r.voteTimer = t
}

// StopVoteTimer cancels the pending timeout, if any. Safe to call twice.
func (r *Round) StopVoteTimer() {
	if r.voteTimer != nil {
		r.voteTimer.Stop()
		r.voteTimer = nil
	}
}

// EligibleVoter reports whether the given player was snapshotted as a voter
// at round start.
func (r *Round) EligibleVoter(playerID string) bool {
	for _, id := range r.EligibleVoters {
		if id == playerID {
			return true
		}
	}
	return false
}

// Room is one game session. All mutating access goes through its mutex; the
// registry hands out the aggregate, callers serialize on Lock/Unlock.
type Room struct {
	mu sync.Mutex

	ID        string    `json:"roomId"`
	HostToken string    `json:"-"`
	Config    RoomConfig `json:"config"`
	Phase     GamePhase `json:"phase"`

	// players keyed by id; playerOrder preserves insertion order, which
	// defines the default speaker rotation and ranking tie-break.
	Players     map[string]*Player `json:"players"`
	playerOrder []string

	CurrentRound    *Round `json:"currentRound,omitempty"`
	RoundsCompleted int    `json:"roundsCompleted"`
	CyclesCompleted int    `json:"cyclesCompleted"`

	speakerIndex int
	speakerCache []string

	// SessionID links the aggregate to its durable mirror row, zero when the
	// database is not configured.
	SessionID uint `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
}

func NewRoom(id string, config RoomConfig) *Room {
	return &Room{
		ID:        id,
		Config:    config,
		Phase:     PhaseWaiting,
		Players:   make(map[string]*Player),
		CreatedAt: time.Now().UTC(),
	}
}

func (room *Room) Lock()   { room.mu.Lock() }
func (room *Room) Unlock() { room.mu.Unlock() }

// AddPlayer inserts a new player, first joiner becomes host. Caller holds the
// room lock.
func (room *Room) AddPlayer(id, name string) *Player {
	if id == "" {
		id = uuid.NewString()
	}
	player := &Player{
		ID:          id,
		Name:        name,
		IsHost:      len(room.Players) == 0,
		IsConnected: true,
		JoinedAt:    time.Now().UTC(),
	}
	room.Players[id] = player
	room.playerOrder = append(room.playerOrder, id)
	return player
}

// PlayerByID returns nil for unknown ids.
func (room *Room) PlayerByID(id string) *Player {
	return room.Players[id]
}

// PlayerByName supports reconnection of legacy clients that only persisted
// their name.
func (room *Room) PlayerByName(name string) *Player {
	for _, id := range room.playerOrder {
		if p := room.Players[id]; p != nil && p.Name == name {
			return p
		}
	}
	return nil
}

// RemovePlayer drops the entry and its rotation slot. Caller holds the room
// lock.
func (room *Room) RemovePlayer(id string) {
	delete(room.Players, id)
	for i, pid := range room.playerOrder {
		if pid == id {
			room.playerOrder = append(room.playerOrder[:i], room.playerOrder[i+1:]...)
			break
		}
	}
	room.ResetSpeakerOrder()
}

// PromoteNextHost hands host privilege to the earliest remaining joiner,
// returning nil when the room is empty.
func (room *Room) PromoteNextHost() *Player {
	for _, id := range room.playerOrder {
		if p := room.Players[id]; p != nil {
			p.IsHost = true
			return p
		}
	}
	return nil
}

// OrderedPlayers returns players in insertion order.
func (room *Room) OrderedPlayers() []*Player {
	out := make([]*Player, 0, len(room.playerOrder))
	for _, id := range room.playerOrder {
		if p := room.Players[id]; p != nil {
			out = append(out, p)
		}
	}
	return out
}

// ScoreTable maps player names to their current scores.
func (room *Room) ScoreTable() map[string]int {
	scores := make(map[string]int, len(room.Players))
	for _, p := range room.OrderedPlayers() {
		scores[p.Name] = p.Score
	}
	return scores
}

// ConnectedCount counts players currently marked connected.
func (room *Room) ConnectedCount() int {
	n := 0
	for _, p := range room.Players {
		if p.IsConnected {
			n++
		}
	}
	return n
}

// SpeakerOrderIDs returns the rotation for the current cycle: connected
// players in insertion order, shuffled once per cycle under the random
// policy. The cache is invalidated when the connected set changes.
func (room *Room) SpeakerOrderIDs() []string {
	connected := make([]string, 0, len(room.playerOrder))
	for _, id := range room.playerOrder {
		if p := room.Players[id]; p != nil && p.IsConnected {
			connected = append(connected, id)
		}
	}

	if room.speakerCache != nil && sameIDSet(room.speakerCache, connected) {
		return room.speakerCache
	}

	if room.Config.SpeakerOrder == OrderRandom {
		rand.Shuffle(len(connected), func(i, j int) {
			connected[i], connected[j] = connected[j], connected[i]
		})
	}
	room.speakerCache = connected
	return connected
}

// ResetSpeakerOrder drops the cached rotation so the next cycle reshuffles
// under the random policy.
func (room *Room) ResetSpeakerOrder() {
	room.speakerCache = nil
}

// CurrentSpeaker returns the player designated for the next/current round.
func (room *Room) CurrentSpeaker() *Player {
	order := room.SpeakerOrderIDs()
	if len(order) == 0 {
		return nil
	}
	return room.Players[order[room.speakerIndex%len(order)]]
}

// AdvanceSpeaker moves the rotation forward one slot, resetting the order
// cache when a full cycle wrapped.
func (room *Room) AdvanceSpeaker() {
	order := room.SpeakerOrderIDs()
	if len(order) == 0 {
		room.speakerIndex = 0
		return
	}
	next := (room.speakerIndex + 1) % len(order)
	if next == 0 && room.speakerIndex != 0 {
		room.ResetSpeakerOrder()
	}
	room.speakerIndex = next
}

// SpeakerIndex is exposed for the debug surface.
func (room *Room) SpeakerIndex() int { return room.speakerIndex }

// ResetGame starts a fresh game session: scores and counters cleared, players
// and config kept. Host-issued restart is the only path here.
func (room *Room) ResetGame() {
	for _, p := range room.Players {
		p.Score = 0
	}
	if room.CurrentRound != nil {
		room.CurrentRound.StopVoteTimer()
	}
	room.CurrentRound = nil
	room.RoundsCompleted = 0
	room.CyclesCompleted = 0
	room.speakerIndex = 0
	room.ResetSpeakerOrder()
	room.Phase = PhaseWaiting
}

// RankedPlayer is one entry of the final standings.
type RankedPlayer struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Rankings sorts players by score descending, ties broken by insertion order
// (stable, so earlier joiners rank first).
func (room *Room) Rankings() []RankedPlayer {
	players := room.OrderedPlayers()
	ranked := make([]RankedPlayer, 0, len(players))
	for _, p := range players {
		ranked = append(ranked, RankedPlayer{Name: p.Name, Score: p.Score})
	}
	// insertion sort keeps equal scores in join order
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j].Score > ranked[j-1].Score; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

func sameIDSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]bool, len(a))
	for _, id := range a {
		seen[id] = true
	}
	for _, id := range b {
		if !seen[id] {
			return false
		}
	}
	return true
}

// Friendly room id generation: adjective + name + number, the original
// game's Japanese word combinations.
var roomIDAdjectives = []string{
	"赤い", "青い", "緑の", "黄色い", "白い", "黒い", "大きな", "小さな",
	"明るい", "暗い", "速い", "遅い", "新しい", "古い", "強い", "弱い",
}

var roomIDNouns = []string{
	"わたる", "けいいち", "ひろひこ", "つかさ", "たかまさ", "こうせい", "けいた", "いっせい",
	"けんたろう", "れん", "ともかず", "こうき", "あつや", "こうた", "しゅうへい", "ゆうじ",
}

func GenerateRoomID() string {
	return fmt.Sprintf("%s%s%d",
		roomIDAdjectives[rand.Intn(len(roomIDAdjectives))],
		roomIDNouns[rand.Intn(len(roomIDNouns))],
		100+rand.Intn(900))
}

// roomIDPattern allows alphanumerics plus hiragana, katakana and kanji.
var roomIDPattern = regexp.MustCompile(`^[a-zA-Z0-9\x{3041}-\x{3096}\x{30a1}-\x{30fc}\x{4e00}-\x{9faf}]+$`)

// ValidRoomID validates a user supplied passphrase.
func ValidRoomID(id string) bool {
	runes := []rune(id)
	if len(runes) < constants.RoomIDMinLen || len(runes) > constants.RoomIDMaxLen {
		return false
	}
	return roomIDPattern.MatchString(id)
}
