package controllers

import (
	"log"
	"net/http"

	game_models "emoguchi/models/game"
	"emoguchi/services/game"
	"emoguchi/utils"

	"github.com/gin-gonic/gin"
)

// CreateRoomRequest carries the optional custom id ("passphrase") and the
// config overrides. Omitted config fields take the defaults.
type CreateRoomRequest struct {
	RoomID             string `json:"roomId"`
	Mode               string `json:"mode"`
	VoteType           string `json:"voteType"`
	SpeakerOrder       string `json:"speakerOrder"`
	MaxRounds          int    `json:"maxRounds"`
	VoteTimeoutSeconds int    `json:"voteTimeoutSeconds"`
	HardMode           bool   `json:"hardMode"`
}

func (req *CreateRoomRequest) toConfig() game_models.RoomConfig {
	config := game_models.DefaultConfig()
	if req.Mode != "" {
		config.Mode = game_models.GameMode(req.Mode)
	}
	if req.VoteType != "" {
		config.VoteType = game_models.VoteType(req.VoteType)
	}
	if req.SpeakerOrder != "" {
		config.SpeakerOrder = game_models.SpeakerOrder(req.SpeakerOrder)
	}
	if req.MaxRounds > 0 {
		config.MaxRounds = req.MaxRounds
	}
	if req.VoteTimeoutSeconds > 0 {
		config.VoteTimeoutSeconds = req.VoteTimeoutSeconds
	}
	config.HardMode = req.HardMode
	return config
}

// @Summary Creates a new room
// @Description Creates a room with the given config. Posting an existing roomId returns that room with its host token so a second host device can recover it.
// @Tags rooms
// @Accept json
// @Produce json
// @Param body body CreateRoomRequest true "Room configuration"
// @Success 201 {object} object{roomId=string,hostToken=string,existing=bool}
// @Failure 400 {object} utils.AppError
// @Router /api/v1/rooms [post]
func CreateRoom(service *game.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.AbortWithAppError(c, utils.BadParams("Invalid request body"))
			return
		}

		room, existing, err := service.CreateRoom(req.toConfig(), req.RoomID)
		if err != nil {
			utils.AbortWithAppError(c, err)
			return
		}

		room.Lock()
		hostToken := room.HostToken
		room.Unlock()

		status := http.StatusCreated
		if existing {
			status = http.StatusOK
		}
		log.Printf("[API] Room %s ready (existing=%v)", room.ID, existing)
		c.Header("X-Host-Token", hostToken)
		c.JSON(status, gin.H{
			"roomId":    room.ID,
			"hostToken": hostToken,
			"existing":  existing,
		})
	}
}

// @Summary Gives info of a room
// @Description Returns the public state of a room: phase, players, scores and config. Host token and round answer are never included.
// @Tags rooms
// @Produce json
// @Param room_id path string true "Room ID"
// @Success 200 {object} object{}
// @Failure 404 {object} utils.AppError
// @Router /api/v1/rooms/{room_id} [get]
func GetRoom(service *game.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		room, err := service.GetRoom(c.Param("room_id"))
		if err != nil {
			utils.AbortWithAppError(c, err)
			return
		}

		room.Lock()
		defer room.Unlock()

		players := make([]gin.H, 0, len(room.Players))
		for _, p := range room.OrderedPlayers() {
			players = append(players, gin.H{
				"playerId":    p.ID,
				"playerName":  p.Name,
				"score":       p.Score,
				"isHost":      p.IsHost,
				"isConnected": p.IsConnected,
			})
		}
		c.JSON(http.StatusOK, gin.H{
			"roomId":          room.ID,
			"phase":           room.Phase,
			"config":          room.Config,
			"players":         players,
			"roundsCompleted": room.RoundsCompleted,
			"cyclesCompleted": room.CyclesCompleted,
			"createdAt":       room.CreatedAt,
		})
	}
}

// @Summary Deletes a room
// @Description Closes the room, notifies connected players and drops all its state.
// @Tags rooms
// @Produce json
// @Param room_id path string true "Room ID"
// @Param X-Host-Token header string true "Host token"
// @Success 200 {object} object{ok=bool}
// @Failure 401 {object} utils.AppError
// @Failure 404 {object} utils.AppError
// @Router /api/v1/rooms/{room_id} [delete]
func DeleteRoom(service *game.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID := c.Param("room_id")
		if err := service.DeleteRoom(roomID); err != nil {
			utils.AbortWithAppError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// @Summary Updates room config
// @Description Changes the room configuration. Only allowed while the room is waiting.
// @Tags rooms
// @Accept json
// @Produce json
// @Param room_id path string true "Room ID"
// @Param X-Host-Token header string true "Host token"
// @Param body body CreateRoomRequest true "New configuration"
// @Success 200 {object} object{}
// @Failure 409 {object} utils.AppError
// @Router /api/v1/rooms/{room_id}/config [put]
func UpdateRoomConfig(service *game.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.AbortWithAppError(c, utils.BadParams("Invalid request body"))
			return
		}

		room, err := service.UpdateConfig(c.Param("room_id"), req.toConfig())
		if err != nil {
			utils.AbortWithAppError(c, err)
			return
		}

		room.Lock()
		config := room.Config
		room.Unlock()
		c.JSON(http.StatusOK, gin.H{"roomId": room.ID, "config": config})
	}
}

// PrefetchRequest asks for a batch of phrases to be cached ahead of rounds.
type PrefetchRequest struct {
	BatchSize int `json:"batchSize"`
}

// @Summary Prefetches round phrases
// @Description Generates a batch of phrases and caches them in Redis so round starts do not wait on the supplier.
// @Tags rooms
// @Accept json
// @Produce json
// @Param room_id path string true "Room ID"
// @Param X-Host-Token header string true "Host token"
// @Param body body PrefetchRequest false "Batch size"
// @Success 200 {object} object{phrases=[]string}
// @Failure 404 {object} utils.AppError
// @Router /api/v1/rooms/{room_id}/prefetch [post]
func PrefetchPhrases(service *game.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PrefetchRequest
		// An empty body means the default batch size.
		_ = c.ShouldBindJSON(&req)

		batch, err := service.PrefetchPhrases(c.Param("room_id"), req.BatchSize)
		if err != nil {
			utils.AbortWithAppError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"phrases": batch})
	}
}

// @Summary Lists the emotion catalog
// @Description Returns the emotions available for the given mode and vote type, defaulting to the full basic set.
// @Tags emotions
// @Produce json
// @Param mode query string false "Game mode (basic, advanced, wheel)"
// @Param voteType query string false "Vote type (4choice, 8choice, wheel)"
// @Success 200 {object} object{emotions=[]game_models.EmotionInfo}
// @Router /api/v1/emotions [get]
func ListEmotions() gin.HandlerFunc {
	return func(c *gin.Context) {
		mode := game_models.GameMode(c.DefaultQuery("mode", string(game_models.ModeBasic)))
		voteType := game_models.VoteType(c.DefaultQuery("voteType", string(game_models.Vote8Choice)))
		c.JSON(http.StatusOK, gin.H{
			"emotions": game_models.EmotionsForMode(mode, voteType),
		})
	}
}

// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
