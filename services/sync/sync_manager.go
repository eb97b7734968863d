package sync

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	game_models "emoguchi/models/game"
	pg_models "emoguchi/models/postgres"
	redis_models "emoguchi/models/redis"
	"emoguchi/services/redis"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SyncManager mirrors the in-memory room state to Redis (live snapshot) and
// PostgreSQL (session history and per-round scores). The registry stays
// authoritative: every method here is best-effort and must never block or
// fail a game transition, so callers ignore returned errors beyond logging.
type SyncManager struct {
	redisClient *redis.RedisClient
	db          *gorm.DB
}

// NewSyncManager creates a new instance of the synchronization manager.
// Either dependency may be nil (tests run fully in memory).
func NewSyncManager(redisClient *redis.RedisClient, db *gorm.DB) *SyncManager {
	return &SyncManager{
		redisClient: redisClient,
		db:          db,
	}
}

// MirrorRoom writes the room's live snapshot to Redis. Caller holds the room
// lock.
func (sm *SyncManager) MirrorRoom(room *game_models.Room) {
	if sm == nil || sm.redisClient == nil {
		return
	}

	snapshot := &redis_models.RoomSnapshot{
		RoomID:          room.ID,
		Phase:           string(room.Phase),
		PlayerCount:     len(room.Players),
		ConnectedCount:  room.ConnectedCount(),
		Scores:          room.ScoreTable(),
		RoundsCompleted: room.RoundsCompleted,
		CyclesCompleted: room.CyclesCompleted,
		UpdatedAt:       time.Now().UTC(),
	}
	if room.CurrentRound != nil {
		snapshot.CurrentRoundID = room.CurrentRound.ID
		if speaker := room.PlayerByID(room.CurrentRound.SpeakerID); speaker != nil {
			snapshot.CurrentSpeaker = speaker.Name
		}
	}

	if err := sm.redisClient.SaveRoomSnapshot(snapshot); err != nil {
		log.Printf("[SYNC-ERROR] Error mirroring room %s to Redis: %v", room.ID, err)
	}
}

// RecordSessionStart inserts the durable row for a new game session and
// returns its id for later score writes.
func (sm *SyncManager) RecordSessionStart(room *game_models.Room) (uint, error) {
	if sm == nil || sm.db == nil {
		return 0, nil
	}

	session := pg_models.GameSession{
		RoomID:       room.ID,
		Mode:         string(room.Config.Mode),
		VoteType:     string(room.Config.VoteType),
		SpeakerOrder: string(room.Config.SpeakerOrder),
		MaxRounds:    room.Config.MaxRounds,
		HardMode:     room.Config.HardMode,
		Status:       "active",
	}
	if err := sm.db.Create(&session).Error; err != nil {
		return 0, fmt.Errorf("error recording session start: %v", err)
	}
	return session.ID, nil
}

// RecordRoundScores persists one completed round: a listener row per vote and
// one speaker row.
func (sm *SyncManager) RecordRoundScores(sessionID uint, round *game_models.Round, correctVotes int) {
	if sm == nil || sm.db == nil || sessionID == 0 {
		return
	}

	rows := make([]pg_models.RoundScore, 0, len(round.Votes)+1)
	for playerID, votedEmotion := range round.Votes {
		points := 0
		if votedEmotion == round.EmotionID {
			points = 1
		}
		rows = append(rows, pg_models.RoundScore{
			SessionID: sessionID,
			RoundID:   round.ID,
			PlayerID:  playerID,
			Points:    points,
			ScoreType: "listener",
			EmotionID: votedEmotion,
		})
	}
	rows = append(rows, pg_models.RoundScore{
		SessionID: sessionID,
		RoundID:   round.ID,
		PlayerID:  round.SpeakerID,
		Points:    correctVotes,
		ScoreType: "speaker",
		EmotionID: round.EmotionID,
	})

	if err := sm.db.Create(&rows).Error; err != nil {
		log.Printf("[SYNC-ERROR] Error recording scores for round %s: %v", round.ID, err)
	}
}

// UpdateSessionProgress refreshes the counters on the session row.
func (sm *SyncManager) UpdateSessionProgress(sessionID uint, roundsCompleted, cyclesCompleted int) {
	if sm == nil || sm.db == nil || sessionID == 0 {
		return
	}
	err := sm.db.Model(&pg_models.GameSession{}).
		Where("id = ?", sessionID).
		Updates(map[string]interface{}{
			"rounds_completed": roundsCompleted,
			"cycles_completed": cyclesCompleted,
		}).Error
	if err != nil {
		log.Printf("[SYNC-ERROR] Error updating session %d progress: %v", sessionID, err)
	}
}

// FinishSession marks the durable session row finished and freezes the final
// score table into its jsonb column.
func (sm *SyncManager) FinishSession(sessionID uint, finalScores map[string]int) {
	if sm == nil || sm.db == nil || sessionID == 0 {
		return
	}
	now := time.Now().UTC()
	err := sm.db.Model(&pg_models.GameSession{}).
		Where("id = ?", sessionID).
		Updates(map[string]interface{}{
			"status":       "finished",
			"finished_at":  &now,
			"final_scores": finalScoresJSON(finalScores),
		}).Error
	if err != nil {
		log.Printf("[SYNC-ERROR] Error finishing session %d: %v", sessionID, err)
	}
}

// finalScoresJSON encodes the score table for the jsonb column. A nil or
// empty table still yields a valid document.
func finalScoresJSON(scores map[string]int) datatypes.JSON {
	if scores == nil {
		scores = map[string]int{}
	}
	raw, err := json.Marshal(scores)
	if err != nil {
		return datatypes.JSON([]byte("{}"))
	}
	return datatypes.JSON(raw)
}

// CleanupRoomData removes the Redis mirror after a room is destroyed.
func (sm *SyncManager) CleanupRoomData(roomID string) {
	if sm == nil || sm.redisClient == nil {
		return
	}
	if err := sm.redisClient.DeleteRoomSnapshot(roomID); err != nil {
		log.Printf("[SYNC-ERROR] Error cleaning Redis data for room %s: %v", roomID, err)
	}
}
