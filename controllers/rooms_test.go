package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"emoguchi/routes"
	"emoguchi/services/game"
	"emoguchi/services/phrases"
	"emoguchi/services/registry"
	sync_services "emoguchi/services/sync"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopBroadcaster struct{}

func (noopBroadcaster) ToRoom(string, string, interface{})               {}
func (noopBroadcaster) ToRoomExcept(string, string, string, interface{}) {}
func (noopBroadcaster) ToPlayer(string, string, interface{})             {}

func newTestRouter() (*gin.Engine, *game.Service) {
	gin.SetMode(gin.TestMode)
	service := game.NewService(
		registry.New(),
		&phrases.StaticSupplier{},
		sync_services.NewSyncManager(nil, nil),
		nil,
		noopBroadcaster{},
		"test-secret",
	)
	router := gin.New()
	routes.SetupRoutes(router, service)
	return router, service
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}, headers map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func TestPingEndpoint(t *testing.T) {
	router, _ := newTestRouter()
	w, body := doJSON(t, router, http.MethodGet, "/ping", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", body["message"])
}

func TestCreateRoomEndpoint(t *testing.T) {
	router, _ := newTestRouter()

	t.Run("Creates with defaults", func(t *testing.T) {
		w, body := doJSON(t, router, http.MethodPost, "/api/v1/rooms", gin.H{}, nil)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NotEmpty(t, body["roomId"])
		assert.NotEmpty(t, body["hostToken"])
		assert.Equal(t, body["hostToken"], w.Header().Get("X-Host-Token"))
		assert.Equal(t, false, body["existing"])
	})

	t.Run("Custom passphrase round-trips", func(t *testing.T) {
		w, body := doJSON(t, router, http.MethodPost, "/api/v1/rooms",
			gin.H{"roomId": "myroom123", "mode": "advanced", "voteType": "8choice"}, nil)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "myroom123", body["roomId"])

		// Same passphrase again returns the live room.
		w, body = doJSON(t, router, http.MethodPost, "/api/v1/rooms", gin.H{"roomId": "myroom123"}, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, body["existing"])
	})

	t.Run("Invalid passphrase is EMO-400", func(t *testing.T) {
		w, body := doJSON(t, router, http.MethodPost, "/api/v1/rooms", gin.H{"roomId": "x"}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "EMO-400", body["code"])
	})
}

func TestGetRoomEndpoint(t *testing.T) {
	router, _ := newTestRouter()
	_, created := doJSON(t, router, http.MethodPost, "/api/v1/rooms", gin.H{"roomId": "inforoom"}, nil)
	require.NotEmpty(t, created["roomId"])

	t.Run("Returns public state without the host token", func(t *testing.T) {
		w, body := doJSON(t, router, http.MethodGet, "/api/v1/rooms/inforoom", nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "inforoom", body["roomId"])
		assert.Equal(t, "waiting", body["phase"])
		assert.NotContains(t, body, "hostToken")
	})

	t.Run("Unknown room is EMO-404", func(t *testing.T) {
		w, body := doJSON(t, router, http.MethodGet, "/api/v1/rooms/nosuchroom", nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "EMO-404", body["code"])
	})
}

func TestHostGatedEndpoints(t *testing.T) {
	router, _ := newTestRouter()
	_, created := doJSON(t, router, http.MethodPost, "/api/v1/rooms", gin.H{"roomId": "hostroom"}, nil)
	token := created["hostToken"].(string)

	t.Run("Missing token is EMO-401", func(t *testing.T) {
		w, body := doJSON(t, router, http.MethodDelete, "/api/v1/rooms/hostroom", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "EMO-401", body["code"])
	})

	t.Run("Wrong token is EMO-403", func(t *testing.T) {
		w, body := doJSON(t, router, http.MethodDelete, "/api/v1/rooms/hostroom", nil,
			map[string]string{"X-Host-Token": "forged"})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "EMO-403", body["code"])
	})

	t.Run("Config update with the real token", func(t *testing.T) {
		w, body := doJSON(t, router, http.MethodPut, "/api/v1/rooms/hostroom/config",
			gin.H{"mode": "advanced", "voteType": "8choice", "maxRounds": 2},
			map[string]string{"X-Host-Token": token})
		assert.Equal(t, http.StatusOK, w.Code)
		config := body["config"].(map[string]interface{})
		assert.Equal(t, "advanced", config["mode"])
	})

	t.Run("Phrase prefetch", func(t *testing.T) {
		w, body := doJSON(t, router, http.MethodPost, "/api/v1/rooms/hostroom/prefetch",
			gin.H{"batchSize": 3}, map[string]string{"X-Host-Token": token})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, body["phrases"], 3)
	})

	t.Run("Delete with the real token", func(t *testing.T) {
		w, _ := doJSON(t, router, http.MethodDelete, "/api/v1/rooms/hostroom", nil,
			map[string]string{"X-Host-Token": token})
		assert.Equal(t, http.StatusOK, w.Code)

		w, _ = doJSON(t, router, http.MethodGet, "/api/v1/rooms/hostroom", nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEmotionsEndpoint(t *testing.T) {
	router, _ := newTestRouter()

	w, body := doJSON(t, router, http.MethodGet, "/api/v1/emotions?voteType=4choice", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["emotions"], 4)

	w, body = doJSON(t, router, http.MethodGet, "/api/v1/emotions?mode=wheel", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["emotions"], 32)
}

func TestDebugEndpoints(t *testing.T) {
	router, _ := newTestRouter()

	t.Run("Disabled without DEBUG_API_TOKEN", func(t *testing.T) {
		w, body := doJSON(t, router, http.MethodGet, "/api/v1/debug/rooms", nil,
			map[string]string{"X-Debug-Token": "anything"})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "EMO-403", body["code"])
	})

	t.Run("Gated by the configured token", func(t *testing.T) {
		t.Setenv("DEBUG_API_TOKEN", "sekrit")

		w, _ := doJSON(t, router, http.MethodGet, "/api/v1/debug/rooms", nil,
			map[string]string{"X-Debug-Token": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w, body := doJSON(t, router, http.MethodGet, "/api/v1/debug/rooms", nil,
			map[string]string{"X-Debug-Token": "sekrit"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, body, "rooms")
	})
}
