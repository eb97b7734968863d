package handlers

import (
	"log"

	"emoguchi/services/game"
	socketio_types "emoguchi/services/socket_io/types"
	"emoguchi/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleJoinRoom puts the socket into the room, binds its session and tells
// everyone else. The playerId is the durable identity: sending the same one
// after a reconnect recovers the old seat and score.
func HandleJoinRoom(service *game.Service, client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload := eventPayload(args)
		roomID := payloadString(payload, "roomId")
		playerName := payloadString(payload, "playerName")
		playerID := payloadString(payload, "playerId")

		if roomID == "" || playerName == "" {
			emitError(client, utils.BadParams("Missing roomId or playerName"))
			return
		}
		if playerID == "" {
			playerID = uuid.NewString()
		}

		result, err := service.JoinRoom(roomID, playerID, playerName)
		if err != nil {
			emitError(client, err)
			return
		}

		// If the player had a previous socket, detach it so broadcasts only
		// reach the live one.
		if old, exists := sio.GetConnection(result.Player.ID); exists && old != client {
			old.Leave(socket.Room(roomID))
			sio.ClearSession(old.Id())
		}

		sio.AddConnection(result.Player.ID, client)
		sio.BindSession(client.Id(), result.Player.ID, roomID)
		client.Join(socket.Room(roomID))

		client.Emit("room_state", result.RoomState)

		event := "player_joined"
		if result.Reconnected {
			event = "player_reconnected"
		}
		sio.ToRoomExcept(roomID, result.Player.ID, event, gin.H{
			"playerId":   result.Player.ID,
			"playerName": result.Player.Name,
			"isHost":     result.Player.IsHost,
		})

		log.Printf("[SOCKET] %s: %s (%s) in room %s", event, result.Player.Name, result.Player.ID, roomID)
	}
}
