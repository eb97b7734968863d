package middleware

import (
	"crypto/subtle"
	"os"

	"emoguchi/services/game"
	"emoguchi/utils"

	"github.com/gin-gonic/gin"
)

// HostTokenRequired guards the host-only room endpoints. The token minted at
// room creation must come back in the X-Host-Token header and match the room
// in the path.
func HostTokenRequired(service *game.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("X-Host-Token")
		if token == "" {
			utils.AbortWithAppError(c, utils.Unauthorized("Missing X-Host-Token header"))
			return
		}
		if err := service.VerifyHostToken(c.Param("room_id"), token); err != nil {
			utils.AbortWithAppError(c, err)
			return
		}
		c.Next()
	}
}

// DebugTokenRequired protects the debug surface. With no DEBUG_API_TOKEN in
// the environment every request is rejected, so the endpoints are dead in
// production unless explicitly enabled.
func DebugTokenRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := os.Getenv("DEBUG_API_TOKEN")
		if expected == "" {
			utils.AbortWithAppError(c, utils.Forbidden("Debug API is disabled"))
			return
		}
		provided := c.GetHeader("X-Debug-Token")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			utils.AbortWithAppError(c, utils.Unauthorized("Invalid debug token"))
			return
		}
		c.Next()
	}
}
