package game

import (
	game_models "emoguchi/models/game"

	"github.com/gin-gonic/gin"
)

// Payload builders for the events the gateway broadcasts. Field names are the
// wire contract the browser client depends on; callers hold the room lock.

func roomStatePayload(room *game_models.Room) gin.H {
	players := make([]gin.H, 0, len(room.Players))
	for _, p := range room.OrderedPlayers() {
		players = append(players, gin.H{"name": p.Name, "score": p.Score})
	}

	var currentSpeaker interface{}
	if room.Phase == game_models.PhaseInRound && room.CurrentRound != nil {
		if speaker := room.PlayerByID(room.CurrentRound.SpeakerID); speaker != nil {
			currentSpeaker = speaker.Name
		}
	}

	return gin.H{
		"roomId":         room.ID,
		"players":        players,
		"phase":          room.Phase,
		"config":         room.Config,
		"currentSpeaker": currentSpeaker,
	}
}

func roundStartPayload(room *game_models.Room, speakerName string) gin.H {
	round := room.CurrentRound
	choices := make([]gin.H, 0, len(round.VotingChoices))
	for _, c := range round.VotingChoices {
		choices = append(choices, gin.H{"id": c.ID, "name": c.NameJa})
	}
	return gin.H{
		"roundId":       round.ID,
		"phrase":        round.Phrase,
		"speakerName":   speakerName,
		"votingChoices": choices,
	}
}

func speakerEmotionPayload(round *game_models.Round) gin.H {
	return gin.H{
		"emotion":   game_models.EmotionDisplayName(round.EmotionID),
		"emotionId": round.EmotionID,
		"speakerId": round.SpeakerID,
	}
}

func roundResultPayload(room *game_models.Room, round *game_models.Round,
	speakerName string, isGameComplete bool) gin.H {

	scores := make(map[string]int, len(room.Players))
	for _, p := range room.OrderedPlayers() {
		scores[p.Name] = p.Score
	}

	votes := make(map[string]string, len(round.Votes))
	for playerID, emotionID := range round.Votes {
		if p := room.PlayerByID(playerID); p != nil {
			votes[p.Name] = emotionID
		}
	}

	return gin.H{
		"round_id":         round.ID,
		"correct_emotion":  game_models.EmotionDisplayName(round.EmotionID),
		"correctEmotionId": round.EmotionID,
		"speaker_name":     speakerName,
		"scores":           scores,
		"votes":            votes,
		"isGameComplete":   isGameComplete,
		"completedRounds":  room.RoundsCompleted,
		"maxRounds":        room.Config.MaxRounds,
		"completedCycles":  room.CyclesCompleted,
	}
}

func gameCompletePayload(room *game_models.Room) gin.H {
	return gin.H{
		"rankings":    room.Rankings(),
		"totalRounds": room.RoundsCompleted,
		"totalCycles": room.CyclesCompleted,
	}
}
