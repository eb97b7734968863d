package postgres

import (
	"time"

	"gorm.io/datatypes"
)

/*
 * 'GameSession' is the durable mirror of an in-memory room. The registry is
 * the source of truth; these rows exist for history and post-hoc inspection,
 * so writes are best-effort and never block the state machine.
 */
type GameSession struct {
	ID              uint           `gorm:"primaryKey"`
	RoomID          string         `gorm:"size:50;not null;index:idx_game_sessions_room"`
	Mode            string         `gorm:"size:20;default:basic"`
	VoteType        string         `gorm:"size:20;default:4choice"`
	SpeakerOrder    string         `gorm:"size:20;default:sequential"`
	MaxRounds       int            `gorm:"default:1"`
	HardMode        bool           `gorm:"default:false"`
	Status          string         `gorm:"size:20;default:active;index:idx_game_sessions_status"` // active | finished
	RoundsCompleted int            `gorm:"default:0"`
	CyclesCompleted int            `gorm:"default:0"`
	FinalScores     datatypes.JSON `gorm:"type:jsonb;default:'{}'"` // player name -> score at finish
	CreatedAt       time.Time      `gorm:"default:CURRENT_TIMESTAMP"`
	FinishedAt      *time.Time

	RoundScores []*RoundScore `gorm:"foreignKey:SessionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
