package game

import (
	"log"

	constants "emoguchi/constants/game"
	game_models "emoguchi/models/game"
	"emoguchi/services/voice"
	"emoguchi/utils"
)

// AudioResult tells the gateway how to fan the clip out: the voter list to
// deliver to and the hard-mode processing parameters, nil when hard mode is
// off or the round uses no processing.
type AudioResult struct {
	RoundID    string
	Voters     []string
	Processing *voice.ProcessingConfig
}

// AcceptAudio validates and registers the speaker's performance. The clip is
// relayed in memory only, the server never persists it. Delivery opens the
// voting window and arms the vote timer.
func (s *Service) AcceptAudio(roomID, playerID string, audio []byte) (*AudioResult, error) {
	if len(audio) == 0 {
		return nil, utils.BadParams("Empty audio payload")
	}
	if len(audio) > constants.MaxAudioBytes {
		return nil, utils.BadParams("Audio payload too large")
	}

	room := s.Registry.Get(roomID)
	if room == nil {
		return nil, utils.NotFound("Room not found")
	}

	room.Lock()
	defer room.Unlock()

	round := room.CurrentRound
	if round == nil || room.Phase != game_models.PhaseInRound {
		return nil, utils.Conflict("No active round to send audio for")
	}
	if round.SpeakerID != playerID {
		return nil, utils.Forbidden("Only the speaker can send audio")
	}
	if round.AudioDelivered {
		return nil, utils.Conflict("Audio already delivered for this round")
	}

	round.AudioDelivered = true
	s.startVoteTimerLocked(room)

	result := &AudioResult{
		RoundID: round.ID,
		Voters:  append([]string(nil), round.EligibleVoters...),
	}
	if room.Config.HardMode {
		cfg := voice.SelectProcessingPattern(round.EmotionID)
		result.Processing = &cfg
	}

	log.Printf("[AUDIO] Speaker delivered %d bytes in room %s, voting open for %d players",
		len(audio), roomID, len(result.Voters))
	return result, nil
}
