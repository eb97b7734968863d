package handlers

import (
	"log"

	"emoguchi/services/game"
	socketio_types "emoguchi/services/socket_io/types"
	"emoguchi/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleLeaveRoom is the voluntary exit. While the room is waiting the seat
// is freed; mid-game the player is only flagged disconnected so a rejoin
// keeps the score.
func HandleLeaveRoom(service *game.Service, client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		session, exists := sio.SessionFor(client.Id())
		if !exists {
			emitError(client, utils.Unauthorized("Join a room first"))
			return
		}
		player, err := service.LeaveRoom(session.RoomID, session.PlayerID)
		if err != nil {
			emitError(client, err)
			return
		}

		client.Leave(socket.Room(session.RoomID))
		sio.RemoveConnection(session.PlayerID, client)
		sio.ClearSession(client.Id())

		sio.ToRoom(session.RoomID, "player_disconnected", gin.H{
			"playerId":   player.ID,
			"playerName": player.Name,
			"reason":     "left",
		})
	}
}

// HandleDisconnecting runs when the transport drops, for any reason. The
// player entry survives for reconnection; if the current speaker vanishes
// before delivering audio the service arms the vote timer so the round still
// resolves.
func HandleDisconnecting(service *game.Service, client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		session, exists := sio.SessionFor(client.Id())
		if !exists {
			return
		}
		sio.RemoveConnection(session.PlayerID, client)
		sio.ClearSession(client.Id())

		player, err := service.HandleDisconnect(session.RoomID, session.PlayerID)
		if err != nil {
			log.Printf("[DISCONNECT] Cleanup failed for socket %s: %v", client.Id(), err)
			return
		}

		sio.ToRoom(session.RoomID, "player_disconnected", gin.H{
			"playerId":   player.ID,
			"playerName": player.Name,
			"reason":     "disconnected",
		})
	}
}
