package redis

import "time"

// RoomSnapshot is the subset of room state mirrored to Redis on every phase
// transition. It lets operators inspect live rooms and survives process
// restarts for display purposes; the in-memory registry remains authoritative.
type RoomSnapshot struct {
	RoomID          string         `json:"room_id"`
	Phase           string         `json:"phase"`
	PlayerCount     int            `json:"player_count"`
	ConnectedCount  int            `json:"connected_count"`
	Scores          map[string]int `json:"scores"` // player name -> score
	CurrentRoundID  string         `json:"current_round_id,omitempty"`
	CurrentSpeaker  string         `json:"current_speaker,omitempty"`
	RoundsCompleted int            `json:"rounds_completed"`
	CyclesCompleted int            `json:"cycles_completed"`
	UpdatedAt       time.Time      `json:"updated_at"`
}
