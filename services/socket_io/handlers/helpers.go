package handlers

import (
	"encoding/base64"
	"log"

	"emoguchi/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// eventPayload extracts the object argument of a socket.io event. Clients
// always send a single JSON object; anything else yields an empty map so the
// handlers fall through to their own validation.
func eventPayload(args []interface{}) map[string]interface{} {
	if len(args) == 0 {
		return map[string]interface{}{}
	}
	if payload, ok := args[0].(map[string]interface{}); ok {
		return payload
	}
	return map[string]interface{}{}
}

func payloadString(payload map[string]interface{}, key string) string {
	if value, ok := payload[key].(string); ok {
		return value
	}
	return ""
}

// payloadBytes reads a binary field. socket.io delivers binary attachments
// as raw bytes, but clients on the polling transport send base64 strings.
func payloadBytes(payload map[string]interface{}, key string) []byte {
	switch value := payload[key].(type) {
	case []byte:
		return value
	case string:
		if decoded, err := base64.StdEncoding.DecodeString(value); err == nil {
			return decoded
		}
	}
	return nil
}

// emitError reports a failure back to the sender in the shared error shape.
func emitError(client *socket.Socket, err error) {
	appErr := utils.AsAppError(err)
	log.Printf("[SOCKET-ERROR] %s: %s", appErr.Code, appErr.Message)
	client.Emit("error", gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}
