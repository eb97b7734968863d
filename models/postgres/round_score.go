package postgres

import "time"

// RoundScore records one player's points for one completed round. ScoreType
// distinguishes the speaker's delta from a listener's.
type RoundScore struct {
	ID        uint      `gorm:"primaryKey"`
	SessionID uint      `gorm:"not null;index:idx_round_scores_session"`
	RoundID   string    `gorm:"size:40;not null;index:idx_round_scores_round"`
	PlayerID  string    `gorm:"size:40;not null"`
	Points    int       `gorm:"default:0"`
	ScoreType string    `gorm:"size:10;not null"` // speaker | listener
	EmotionID string    `gorm:"size:30"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}
