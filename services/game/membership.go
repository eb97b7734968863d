package game

import (
	"log"

	constants "emoguchi/constants/game"
	game_models "emoguchi/models/game"
	"emoguchi/utils"

	"github.com/gin-gonic/gin"
)

// JoinResult is what the gateway needs to answer a join_room message.
type JoinResult struct {
	Room        *game_models.Room
	Player      *game_models.Player
	Reconnected bool
	RoomState   gin.H
}

// JoinRoom is idempotent on the durable player id: a known id (or, for older
// clients, a known name) is reconnected with its score intact, anything else
// becomes a new player. The first player to join is the host.
func (s *Service) JoinRoom(roomID, playerID, playerName string) (*JoinResult, error) {
	if playerName == "" {
		return nil, utils.BadParams("Missing roomId or playerName")
	}
	room := s.Registry.Get(roomID)
	if room == nil {
		return nil, utils.NotFound("Room not found")
	}

	room.Lock()
	defer room.Unlock()

	player := room.PlayerByID(playerID)
	if player == nil {
		player = room.PlayerByName(playerName)
	}

	reconnected := player != nil
	if reconnected {
		player.IsConnected = true
		player.Name = playerName
		log.Printf("[JOIN] Player %s (%s) reconnected to room %s", player.Name, player.ID, roomID)
	} else {
		if len(room.Players) >= constants.MaxPlayersPerRoom {
			return nil, utils.Conflict("Room is full")
		}
		player = room.AddPlayer(playerID, playerName)
		room.ResetSpeakerOrder()
		log.Printf("[JOIN] Player %s (%s) joined room %s", player.Name, player.ID, roomID)
	}

	s.Sync.MirrorRoom(room)

	return &JoinResult{
		Room:        room,
		Player:      player,
		Reconnected: reconnected,
		RoomState:   roomStatePayload(room),
	}, nil
}

// LeaveRoom handles an explicit exit. While waiting the player entry is
// removed outright (promoting a new host if needed); mid-game the entry is
// kept disconnected so the score survives a later rejoin and the speaker
// rotation stays valid.
func (s *Service) LeaveRoom(roomID, playerID string) (*game_models.Player, error) {
	room := s.Registry.Get(roomID)
	if room == nil {
		return nil, utils.NotFound("Room not found")
	}

	room.Lock()
	defer room.Unlock()

	player := room.PlayerByID(playerID)
	if player == nil {
		return nil, utils.NotFound("Player not in room")
	}

	if room.Phase == game_models.PhaseWaiting {
		room.RemovePlayer(playerID)
		if player.IsHost {
			if next := room.PromoteNextHost(); next != nil {
				log.Printf("[LEAVE] Host left room %s, promoted %s", roomID, next.Name)
			}
		}
	} else {
		player.IsConnected = false
	}
	room.ResetSpeakerOrder()
	s.Sync.MirrorRoom(room)

	log.Printf("[LEAVE] Player %s left room %s", player.Name, roomID)
	return player, nil
}

// HandleDisconnect marks the player disconnected. Not an error: no scores
// change and the entry stays for reconnection. When the disconnecting player
// is the current speaker and audio was never delivered, the vote timer is
// started so the round cannot hang forever.
func (s *Service) HandleDisconnect(roomID, playerID string) (*game_models.Player, error) {
	room := s.Registry.Get(roomID)
	if room == nil {
		return nil, utils.NotFound("Room not found")
	}

	room.Lock()
	defer room.Unlock()

	player := room.PlayerByID(playerID)
	if player == nil {
		return nil, utils.NotFound("Player not in room")
	}
	player.IsConnected = false

	if round := room.CurrentRound; round != nil &&
		round.SpeakerID == playerID && !round.AudioDelivered && round.VotingStartedAt == nil {
		log.Printf("[DISCONNECT] Speaker %s left before audio in room %s, arming vote timer", player.Name, roomID)
		s.startVoteTimerLocked(room)
	}

	s.Sync.MirrorRoom(room)
	log.Printf("[DISCONNECT] Player %s disconnected from room %s", player.Name, roomID)
	return player, nil
}

// RestartGame resets scores, counters and phase while keeping membership and
// config. Host only; the closed phase is its main entry point but a host may
// also restart a waiting or finished-result room.
func (s *Service) RestartGame(roomID, playerID string) (gin.H, error) {
	room := s.Registry.Get(roomID)
	if room == nil {
		return nil, utils.NotFound("Room not found")
	}

	room.Lock()
	defer room.Unlock()

	player := room.PlayerByID(playerID)
	if player == nil {
		return nil, utils.NotFound("Player not in room")
	}
	if !player.IsHost {
		return nil, utils.Forbidden("Only host can restart the game")
	}
	if room.Phase == game_models.PhaseInRound {
		return nil, utils.Conflict("Cannot restart while a round is active")
	}

	s.Sync.FinishSession(room.SessionID, room.ScoreTable())
	room.ResetGame()
	if sessionID, err := s.Sync.RecordSessionStart(room); err == nil {
		room.SessionID = sessionID
	}
	s.Sync.MirrorRoom(room)

	log.Printf("[RESTART] Game restarted in room %s", roomID)
	return roomStatePayload(room), nil
}
