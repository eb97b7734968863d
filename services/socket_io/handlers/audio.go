package handlers

import (
	"encoding/base64"
	"log"

	"emoguchi/services/game"
	socketio_types "emoguchi/services/socket_io/types"
	"emoguchi/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleAudioSend relays the speaker's clip to the round's voters. The clip
// never touches storage: it is validated, fanned out to the eligible voters
// and dropped. In hard mode the payload carries the processing parameters the
// clients apply on playback.
func HandleAudioSend(service *game.Service, client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		session, exists := sio.SessionFor(client.Id())
		if !exists {
			emitError(client, utils.Unauthorized("Join a room first"))
			return
		}
		payload := eventPayload(args)
		audio := payloadBytes(payload, "audio")

		result, err := service.AcceptAudio(session.RoomID, session.PlayerID, audio)
		if err != nil {
			emitError(client, err)
			return
		}

		out := gin.H{
			"roundId": result.RoundID,
			"audio":   base64.StdEncoding.EncodeToString(audio),
		}
		if result.Processing != nil {
			out["processing"] = gin.H{
				"pattern": result.Processing.Pattern,
				"pitch":   result.Processing.Pitch,
				"tempo":   result.Processing.Tempo,
			}
		}

		delivered := 0
		for _, voterID := range result.Voters {
			if voter, ok := sio.GetConnection(voterID); ok {
				voter.Emit("audio_received", out)
				delivered++
			}
		}
		log.Printf("[AUDIO] Relayed round %s audio to %d/%d voters in room %s",
			result.RoundID, delivered, len(result.Voters), session.RoomID)
	}
}
