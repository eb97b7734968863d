package controllers

import (
	"net/http"

	"emoguchi/services/game"
	"emoguchi/utils"

	"github.com/gin-gonic/gin"
)

// Debug endpoints expose internal room state for development and load tests.
// They are mounted behind the X-Debug-Token middleware and disabled entirely
// when no token is configured.

// @Summary Lists all rooms
// @Description Returns a summary of every live room. Debug only.
// @Tags debug
// @Produce json
// @Param X-Debug-Token header string true "Debug token"
// @Success 200 {object} object{rooms=[]object{}}
// @Router /api/v1/debug/rooms [get]
func DebugListRooms(service *game.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		rooms := service.Registry.List()
		summaries := make([]gin.H, 0, len(rooms))
		for _, room := range rooms {
			room.Lock()
			summaries = append(summaries, gin.H{
				"roomId":          room.ID,
				"phase":           room.Phase,
				"players":         len(room.Players),
				"connected":       room.ConnectedCount(),
				"roundsCompleted": room.RoundsCompleted,
				"cyclesCompleted": room.CyclesCompleted,
			})
			room.Unlock()
		}
		c.JSON(http.StatusOK, gin.H{"rooms": summaries})
	}
}

// @Summary Dumps a room's internal state
// @Description Returns the full room state including the active round and its answer. Debug only.
// @Tags debug
// @Produce json
// @Param room_id path string true "Room ID"
// @Param X-Debug-Token header string true "Debug token"
// @Success 200 {object} object{}
// @Failure 404 {object} utils.AppError
// @Router /api/v1/debug/rooms/{room_id} [get]
func DebugGetRoom(service *game.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		room, err := service.GetRoom(c.Param("room_id"))
		if err != nil {
			utils.AbortWithAppError(c, err)
			return
		}

		room.Lock()
		defer room.Unlock()

		c.JSON(http.StatusOK, gin.H{
			"roomId":          room.ID,
			"phase":           room.Phase,
			"config":          room.Config,
			"players":         room.OrderedPlayers(),
			"currentRound":    room.CurrentRound,
			"speakerIndex":    room.SpeakerIndex(),
			"roundsCompleted": room.RoundsCompleted,
			"cyclesCompleted": room.CyclesCompleted,
		})
	}
}

// @Summary Lists mirrored room snapshots
// @Description Reads the Redis-side mirror of every room, for comparing against the in-memory registry. Debug only.
// @Tags debug
// @Produce json
// @Param X-Debug-Token header string true "Debug token"
// @Success 200 {object} object{snapshots=[]object{}}
// @Router /api/v1/debug/snapshots [get]
func DebugListSnapshots(service *game.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if service.RedisClient == nil {
			utils.AbortWithAppError(c, utils.Conflict("Redis mirror is not configured"))
			return
		}
		snapshots, err := service.RedisClient.ListRoomSnapshots()
		if err != nil {
			utils.AbortWithAppError(c, utils.Internal("Could not read snapshots"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"snapshots": snapshots})
	}
}

// @Summary Reads one mirrored room snapshot
// @Description Returns the Redis-side mirror of a single room. Debug only.
// @Tags debug
// @Produce json
// @Param room_id path string true "Room ID"
// @Param X-Debug-Token header string true "Debug token"
// @Success 200 {object} object{}
// @Failure 404 {object} utils.AppError
// @Router /api/v1/debug/rooms/{room_id}/snapshot [get]
func DebugGetSnapshot(service *game.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if service.RedisClient == nil {
			utils.AbortWithAppError(c, utils.Conflict("Redis mirror is not configured"))
			return
		}
		snapshot, err := service.RedisClient.GetRoomSnapshot(c.Param("room_id"))
		if err != nil {
			utils.AbortWithAppError(c, utils.NotFound("No snapshot for that room"))
			return
		}
		c.JSON(http.StatusOK, snapshot)
	}
}

// @Summary Forces the active round to complete
// @Description Resolves the current round immediately instead of waiting for votes or the timeout. Debug only.
// @Tags debug
// @Produce json
// @Param room_id path string true "Room ID"
// @Param X-Debug-Token header string true "Debug token"
// @Success 200 {object} object{message=string}
// @Failure 409 {object} utils.AppError
// @Router /api/v1/debug/rooms/{room_id}/complete_round [post]
func DebugCompleteRound(service *game.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := service.ForceCompleteRound(c.Param("room_id")); err != nil {
			utils.AbortWithAppError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Round completed"})
	}
}

// @Summary Resets a room to waiting
// @Description Drops any active round and forces the phase back to waiting. Debug only.
// @Tags debug
// @Produce json
// @Param room_id path string true "Room ID"
// @Param X-Debug-Token header string true "Debug token"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} utils.AppError
// @Router /api/v1/debug/rooms/{room_id}/reset [post]
func DebugResetRoom(service *game.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := service.ResetRoomPhase(c.Param("room_id")); err != nil {
			utils.AbortWithAppError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Room reset"})
	}
}
