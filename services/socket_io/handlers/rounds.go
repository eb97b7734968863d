package handlers

import (
	"emoguchi/services/game"
	socketio_types "emoguchi/services/socket_io/types"
	"emoguchi/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleStartRound asks the state machine to open a round. All success
// traffic (round_start, speaker_emotion, room_state) is broadcast by the
// service itself, so the handler only reports failures.
func HandleStartRound(service *game.Service, client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		session, exists := sio.SessionFor(client.Id())
		if !exists {
			emitError(client, utils.Unauthorized("Join a room first"))
			return
		}
		if err := service.StartRound(session.RoomID, session.PlayerID); err != nil {
			emitError(client, err)
		}
	}
}

// HandleSubmitVote records a listener vote and acknowledges it privately.
// Round completion, when this was the last pending vote, is broadcast by the
// state machine.
func HandleSubmitVote(service *game.Service, client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		session, exists := sio.SessionFor(client.Id())
		if !exists {
			emitError(client, utils.Unauthorized("Join a room first"))
			return
		}
		payload := eventPayload(args)
		roundID := payloadString(payload, "roundId")
		emotionID := payloadString(payload, "emotionId")

		if err := service.SubmitVote(session.RoomID, session.PlayerID, roundID, emotionID); err != nil {
			emitError(client, err)
			return
		}
		client.Emit("vote_confirmed", gin.H{
			"roundId":   roundID,
			"emotionId": emotionID,
		})
	}
}

// HandleRestartGame resets a finished or waiting game on the host's request.
func HandleRestartGame(service *game.Service, client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		session, exists := sio.SessionFor(client.Id())
		if !exists {
			emitError(client, utils.Unauthorized("Join a room first"))
			return
		}
		state, err := service.RestartGame(session.RoomID, session.PlayerID)
		if err != nil {
			emitError(client, err)
			return
		}
		sio.ToRoom(session.RoomID, "room_state", state)
	}
}
