package game

import (
	"log"
	"strings"

	constants "emoguchi/constants/game"
	game_models "emoguchi/models/game"
	"emoguchi/services/phrases"
	"emoguchi/services/redis"
	"emoguchi/services/registry"
	"emoguchi/services/sync"
	"emoguchi/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Broadcaster is the outbound half of the session gateway: the state machine
// pushes events through it without knowing about sockets. The socket server
// implements it; tests use a recording fake.
type Broadcaster interface {
	ToRoom(roomID string, event string, payload interface{})
	ToRoomExcept(roomID string, exceptPlayerID string, event string, payload interface{})
	ToPlayer(playerID string, event string, payload interface{})
}

// Service owns every room mutation: REST controllers and socket handlers both
// delegate here, so all state transitions live in one place. Per-room
// serialization is the room's own mutex; the registry lock only guards the
// room map.
type Service struct {
	Registry    *registry.Registry
	Supplier    phrases.Supplier
	Sync        *sync.SyncManager
	RedisClient *redis.RedisClient
	Broadcast   Broadcaster

	hostTokenSecret []byte
}

func NewService(reg *registry.Registry, supplier phrases.Supplier,
	syncManager *sync.SyncManager, redisClient *redis.RedisClient,
	broadcaster Broadcaster, hostTokenSecret string) *Service {
	return &Service{
		Registry:        reg,
		Supplier:        supplier,
		Sync:            syncManager,
		RedisClient:     redisClient,
		Broadcast:       broadcaster,
		hostTokenSecret: []byte(hostTokenSecret),
	}
}

// CreateRoom registers a new room. A custom id ("passphrase") is validated;
// when it already names a live room, that room is returned instead of an
// error so a second device can recover the host token.
func (s *Service) CreateRoom(config game_models.RoomConfig, customID string) (*game_models.Room, bool, error) {
	customID = strings.TrimSpace(customID)
	if customID != "" {
		if !game_models.ValidRoomID(customID) {
			return nil, false, utils.BadParams("room id must be 3-20 characters: alphanumerics, hiragana, katakana or kanji")
		}
		if existing := s.Registry.Get(customID); existing != nil {
			return existing, true, nil
		}
	}

	id := customID
	if id == "" {
		id = game_models.GenerateRoomID()
		for s.Registry.Get(id) != nil {
			id = game_models.GenerateRoomID()
		}
	}

	room := game_models.NewRoom(id, config)
	token, err := s.mintHostToken(id)
	if err != nil {
		return nil, false, utils.Internal("could not mint host token")
	}
	room.HostToken = token

	if !s.Registry.Create(room) {
		// Lost a race against a concurrent create with the same passphrase.
		if existing := s.Registry.Get(id); existing != nil {
			return existing, true, nil
		}
		return nil, false, utils.Conflict("room already exists")
	}

	if sessionID, err := s.Sync.RecordSessionStart(room); err == nil {
		room.Lock()
		room.SessionID = sessionID
		room.Unlock()
	} else {
		log.Printf("[ROOM-CREATE] Durable session record failed for room %s: %v", id, err)
	}

	room.Lock()
	s.Sync.MirrorRoom(room)
	room.Unlock()

	log.Printf("[ROOM-CREATE] Room %s created (mode=%s voteType=%s)", id, config.Mode, config.VoteType)
	return room, false, nil
}

// GetRoom fetches, returning a tagged not-found error for unknown ids.
func (s *Service) GetRoom(roomID string) (*game_models.Room, error) {
	room := s.Registry.Get(roomID)
	if room == nil {
		return nil, utils.NotFound("Room not found")
	}
	return room, nil
}

// DeleteRoom destroys the room and its mirrored state. Any pending vote timer
// is stopped so it cannot fire against a dead aggregate.
func (s *Service) DeleteRoom(roomID string) error {
	room := s.Registry.Get(roomID)
	if room == nil {
		return utils.NotFound("Room not found")
	}

	room.Lock()
	if room.CurrentRound != nil {
		room.CurrentRound.StopVoteTimer()
	}
	sessionID := room.SessionID
	finalScores := room.ScoreTable()
	room.Unlock()

	s.Broadcast.ToRoom(roomID, "room_closed", gin.H{"roomId": roomID})
	s.Registry.Delete(roomID)
	s.Sync.FinishSession(sessionID, finalScores)
	s.Sync.CleanupRoomData(roomID)
	log.Printf("[ROOM-DELETE] Room %s destroyed", roomID)
	return nil
}

// UpdateConfig replaces the room configuration. Host-gated by the caller;
// only legal while the room is waiting with no result pending.
func (s *Service) UpdateConfig(roomID string, config game_models.RoomConfig) (*game_models.Room, error) {
	room := s.Registry.Get(roomID)
	if room == nil {
		return nil, utils.NotFound("Room not found")
	}

	room.Lock()
	if room.Phase != game_models.PhaseWaiting {
		room.Unlock()
		return nil, utils.Conflict("Can only change settings while waiting")
	}
	if config.VoteTimeoutSeconds <= 0 {
		config.VoteTimeoutSeconds = room.Config.VoteTimeoutSeconds
	}
	if config.MaxRounds <= 0 {
		config.MaxRounds = room.Config.MaxRounds
	}
	room.Config = config
	room.ResetSpeakerOrder()
	s.Sync.MirrorRoom(room)
	payload := roomStatePayload(room)
	room.Unlock()

	s.Broadcast.ToRoom(roomID, "room_state", payload)
	log.Printf("[CONFIG] Room %s config updated (mode=%s voteType=%s maxRounds=%d)",
		roomID, config.Mode, config.VoteType, config.MaxRounds)
	return room, nil
}

// PrefetchPhrases generates a batch ahead of time and parks it in the Redis
// cache so upcoming rounds skip the supplier round-trip.
func (s *Service) PrefetchPhrases(roomID string, batchSize int) ([]string, error) {
	room := s.Registry.Get(roomID)
	if room == nil {
		return nil, utils.NotFound("Room not found")
	}

	batch := phrases.FetchBatch(s.Supplier, batchSize)
	if s.RedisClient != nil {
		if err := s.RedisClient.PushPhrases(roomID, batch, constants.PhraseCacheTTL); err != nil {
			log.Printf("[PREFETCH] Error caching phrases for room %s: %v", roomID, err)
		}
	}
	log.Printf("[PREFETCH] Cached %d phrases for room %s", len(batch), roomID)
	return batch, nil
}

// VerifyHostToken checks a bearer token against the room's stored secret. The
// token is a signed JWT carrying the room id; both the signature and the
// stored-token equality must hold.
func (s *Service) VerifyHostToken(roomID, token string) error {
	room := s.Registry.Get(roomID)
	if room == nil {
		return utils.NotFound("Room not found")
	}
	if token == "" {
		return utils.Unauthorized("Missing host token")
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.hostTokenSecret, nil
	})
	if err != nil || !parsed.Valid {
		return utils.Forbidden("Invalid host token")
	}

	room.Lock()
	match := room.HostToken == token
	room.Unlock()
	if !match {
		return utils.Forbidden("Invalid host token")
	}
	return nil
}

// mintHostToken signs the per-room host credential. Created once at room
// creation, never rotated.
func (s *Service) mintHostToken(roomID string) (string, error) {
	claims := jwt.MapClaims{
		"room_id": roomID,
		"role":    "host",
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.hostTokenSecret)
}
