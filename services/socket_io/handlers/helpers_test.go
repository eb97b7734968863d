package handlers

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventPayload(t *testing.T) {
	t.Run("Object argument", func(t *testing.T) {
		payload := eventPayload([]interface{}{map[string]interface{}{"roomId": "r1"}})
		assert.Equal(t, "r1", payload["roomId"])
	})

	t.Run("No arguments", func(t *testing.T) {
		assert.Empty(t, eventPayload(nil))
	})

	t.Run("Non-object argument", func(t *testing.T) {
		assert.Empty(t, eventPayload([]interface{}{"just a string"}))
	})
}

func TestPayloadString(t *testing.T) {
	payload := map[string]interface{}{"name": "alice", "count": 3.0}
	assert.Equal(t, "alice", payloadString(payload, "name"))
	assert.Equal(t, "", payloadString(payload, "count"))
	assert.Equal(t, "", payloadString(payload, "missing"))
}

func TestPayloadBytes(t *testing.T) {
	clip := []byte{0x1a, 0x45, 0xdf, 0xa3}

	t.Run("Raw bytes pass through", func(t *testing.T) {
		payload := map[string]interface{}{"audio": clip}
		assert.Equal(t, clip, payloadBytes(payload, "audio"))
	})

	t.Run("Base64 string is decoded", func(t *testing.T) {
		payload := map[string]interface{}{"audio": base64.StdEncoding.EncodeToString(clip)}
		assert.Equal(t, clip, payloadBytes(payload, "audio"))
	})

	t.Run("Garbage yields nil", func(t *testing.T) {
		payload := map[string]interface{}{"audio": "!!not-base64!!"}
		assert.Nil(t, payloadBytes(payload, "audio"))
	})
}
