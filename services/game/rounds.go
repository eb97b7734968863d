package game

import (
	"log"
	"time"

	constants "emoguchi/constants/game"
	game_models "emoguchi/models/game"
	"emoguchi/services/phrases"
	"emoguchi/utils"

	"github.com/google/uuid"
)

// StartRound drives the waiting|result -> in_round transition. Host only.
// The phrase comes from the Redis prefetch cache when available, otherwise
// from the supplier under the hard timeout with the static fallback.
func (s *Service) StartRound(roomID, playerID string) error {
	room := s.Registry.Get(roomID)
	if room == nil {
		return utils.NotFound("Room not found")
	}

	room.Lock()
	defer room.Unlock()

	player := room.PlayerByID(playerID)
	if player == nil {
		return utils.Unauthorized("Not authenticated")
	}
	if !player.IsHost {
		return utils.Forbidden("Only host can start rounds")
	}
	switch room.Phase {
	case game_models.PhaseWaiting, game_models.PhaseResult:
		// legal entry points
	default:
		return utils.Conflict("Room is not ready for a new round (current: " + string(room.Phase) + ")")
	}
	if room.Phase == game_models.PhaseResult && room.CyclesCompleted >= room.Config.MaxRounds {
		return utils.Conflict("Game is complete, restart to play again")
	}
	if len(room.Players) < constants.MinPlayersToStart {
		return utils.BadParams("Need at least 2 players to start the game")
	}

	speaker := room.CurrentSpeaker()
	if speaker == nil {
		return utils.BadParams("No players available")
	}

	phrase := s.nextPhrase(roomID)
	emotion := game_models.RandomEmotion(room.Config.Mode, room.Config.VoteType)

	// Connected non-speaker players at round start are the voter snapshot;
	// later joiners cannot vote this round.
	eligible := make([]string, 0, len(room.Players))
	for _, p := range room.OrderedPlayers() {
		if p.IsConnected && p.ID != speaker.ID {
			eligible = append(eligible, p.ID)
		}
	}

	room.CurrentRound = &game_models.Round{
		ID:             uuid.NewString(),
		Phrase:         phrase,
		EmotionID:      emotion.ID,
		SpeakerID:      speaker.ID,
		VotingChoices:  game_models.VotingChoices(room.Config.Mode, room.Config.VoteType, emotion.ID),
		Votes:          make(map[string]string),
		EligibleVoters: eligible,
		StartedAt:      time.Now().UTC(),
	}
	room.Phase = game_models.PhaseInRound
	s.Sync.MirrorRoom(room)

	s.Broadcast.ToRoom(roomID, "room_state", roomStatePayload(room))
	s.Broadcast.ToRoom(roomID, "round_start", roundStartPayload(room, speaker.Name))
	s.Broadcast.ToPlayer(speaker.ID, "speaker_emotion", speakerEmotionPayload(room.CurrentRound))

	log.Printf("[ROUND] Round %s started in room %s: speaker=%s emotion=%s voters=%d",
		room.CurrentRound.ID, roomID, speaker.Name, emotion.ID, len(eligible))
	return nil
}

// nextPhrase pops the prefetch cache before going to the supplier.
func (s *Service) nextPhrase(roomID string) string {
	if s.RedisClient != nil {
		if phrase, ok, err := s.RedisClient.PopPhrase(roomID); err == nil && ok {
			return phrase
		}
	}
	return phrases.FetchWithTimeout(s.Supplier)
}

// SubmitVote records a listener's vote for the active round. Duplicate votes
// are rejected rather than overwritten. When every connected eligible voter
// has voted the round completes early and the timer is cancelled.
func (s *Service) SubmitVote(roomID, playerID, roundID, emotionID string) error {
	if roundID == "" || emotionID == "" {
		return utils.BadParams("Missing roundId or emotionId")
	}
	room := s.Registry.Get(roomID)
	if room == nil {
		return utils.NotFound("Room not found")
	}

	room.Lock()
	defer room.Unlock()

	round := room.CurrentRound
	if round == nil || room.Phase != game_models.PhaseInRound {
		return utils.Conflict("Voting closed: no active round")
	}
	if round.ID != roundID {
		return utils.BadParams("Invalid round ID")
	}
	if round.SpeakerID == playerID {
		return utils.BadParams("Speaker cannot vote")
	}
	player := room.PlayerByID(playerID)
	if player == nil {
		return utils.Unauthorized("Not authenticated")
	}
	if !round.EligibleVoter(playerID) {
		return utils.Forbidden("You joined after the round started and cannot vote")
	}
	if round.VotingStartedAt == nil {
		return utils.Conflict("Voting closed: audio not delivered yet")
	}
	if _, voted := round.Votes[playerID]; voted {
		return utils.Conflict("Vote already submitted for this round")
	}

	round.Votes[playerID] = emotionID
	log.Printf("[VOTE] Player %s voted %s in room %s (%d votes)",
		player.Name, emotionID, roomID, len(round.Votes))

	if s.allEligibleVotedLocked(room) {
		round.StopVoteTimer()
		s.completeRoundLocked(room)
	}
	return nil
}

// allEligibleVotedLocked checks the early-completion condition: every
// eligible voter still connected has a recorded vote.
func (s *Service) allEligibleVotedLocked(room *game_models.Room) bool {
	round := room.CurrentRound
	connected := 0
	for _, voterID := range round.EligibleVoters {
		if p := room.PlayerByID(voterID); p != nil && p.IsConnected {
			connected++
		}
	}
	return connected > 0 && len(round.Votes) >= connected
}

// startVoteTimerLocked arms the cancellable vote timeout. Caller holds the
// room lock; the callback re-acquires it and is guarded by round id, so a
// timer racing an early completion is a no-op.
func (s *Service) startVoteTimerLocked(room *game_models.Room) {
	round := room.CurrentRound
	if round == nil || round.VotingStartedAt != nil {
		return
	}
	now := time.Now().UTC()
	round.VotingStartedAt = &now

	roomID := room.ID
	roundID := round.ID
	timeout := time.Duration(room.Config.VoteTimeoutSeconds) * time.Second
	round.SetVoteTimer(time.AfterFunc(timeout, func() {
		s.voteTimeoutExpired(roomID, roundID)
	}))
	log.Printf("[VOTE-TIMER] Vote timer armed for round %s in room %s (%s)", roundID, roomID, timeout)
}

// voteTimeoutExpired is the timer path into round completion.
func (s *Service) voteTimeoutExpired(roomID, roundID string) {
	room := s.Registry.Get(roomID)
	if room == nil {
		return
	}

	room.Lock()
	defer room.Unlock()

	round := room.CurrentRound
	if round == nil || round.ID != roundID || room.Phase != game_models.PhaseInRound {
		// Round already completed or replaced, timer loses the race.
		return
	}
	log.Printf("[VOTE-TIMER] Vote timeout expired for round %s in room %s, forcing completion", roundID, roomID)
	s.completeRoundLocked(room)
}

// completeRoundLocked performs the in_round -> result transition: scoring,
// counters, speaker advance, broadcasts, and the result -> closed step when
// the cycle budget is spent. Caller holds the room lock; the phase check in
// both entry paths guarantees this runs once per round.
func (s *Service) completeRoundLocked(room *game_models.Room) {
	round := room.CurrentRound
	if round == nil {
		return
	}
	round.StopVoteTimer()

	speaker := room.PlayerByID(round.SpeakerID)
	correctVotes := 0
	for playerID, votedEmotion := range round.Votes {
		if votedEmotion != round.EmotionID {
			continue
		}
		if p := room.PlayerByID(playerID); p != nil {
			p.Score++
			correctVotes++
		}
	}
	speakerName := ""
	if speaker != nil {
		speaker.Score += correctVotes
		speakerName = speaker.Name
	}

	room.RoundsCompleted++
	rotation := len(room.SpeakerOrderIDs())
	if rotation > 0 && room.RoundsCompleted%rotation == 0 {
		room.CyclesCompleted++
	}
	isGameComplete := room.CyclesCompleted >= room.Config.MaxRounds

	room.CurrentRound = nil
	room.Phase = game_models.PhaseResult
	room.AdvanceSpeaker()

	s.Sync.RecordRoundScores(room.SessionID, round, correctVotes)
	s.Sync.UpdateSessionProgress(room.SessionID, room.RoundsCompleted, room.CyclesCompleted)

	s.Broadcast.ToRoom(room.ID, "round_result", roundResultPayload(room, round, speakerName, isGameComplete))

	if isGameComplete {
		room.Phase = game_models.PhaseClosed
		s.Sync.FinishSession(room.SessionID, room.ScoreTable())
		s.Broadcast.ToRoom(room.ID, "game_complete", gameCompletePayload(room))
		log.Printf("[ROUND] Game complete in room %s after %d rounds (%d cycles)",
			room.ID, room.RoundsCompleted, room.CyclesCompleted)
	} else {
		s.Broadcast.ToRoom(room.ID, "room_state", roomStatePayload(room))
		log.Printf("[ROUND] Round %s completed in room %s: correct=%s correctVotes=%d",
			round.ID, room.ID, round.EmotionID, correctVotes)
	}

	s.Sync.MirrorRoom(room)
}

// ForceCompleteRound resolves the active round immediately, debug only.
func (s *Service) ForceCompleteRound(roomID string) error {
	room := s.Registry.Get(roomID)
	if room == nil {
		return utils.NotFound("Room not found")
	}

	room.Lock()
	defer room.Unlock()

	if room.CurrentRound == nil || room.Phase != game_models.PhaseInRound {
		return utils.Conflict("No active round to complete")
	}
	s.completeRoundLocked(room)
	return nil
}

// ResetRoomPhase forces the room back to waiting, debug only.
func (s *Service) ResetRoomPhase(roomID string) error {
	room := s.Registry.Get(roomID)
	if room == nil {
		return utils.NotFound("Room not found")
	}

	room.Lock()
	defer room.Unlock()

	if room.CurrentRound != nil {
		room.CurrentRound.StopVoteTimer()
		room.CurrentRound = nil
	}
	room.Phase = game_models.PhaseWaiting
	s.Sync.MirrorRoom(room)
	return nil
}
