package socketio_types

import (
	"sync"

	"github.com/zishang520/socket.io/v2/socket"
)

// Session is the per-socket binding established by a successful join_room.
// Later events resolve the acting player from it instead of trusting
// client-supplied ids.
type Session struct {
	PlayerID string
	RoomID   string
}

// SocketServer wraps the socket.io server with the connection bookkeeping the
// game needs: a durable player id -> socket map for targeted emits and a
// socket id -> session map for resolving who sent an event.
type SocketServer struct {
	Sio_server *socket.Server
	// Map to track playerID -> socket connections
	PlayerConnections map[string]*socket.Socket
	// Map to track socket id -> joined session
	Sessions map[socket.SocketId]*Session
	mutex    sync.RWMutex
}

func (s *SocketServer) AddConnection(playerID string, client *socket.Socket) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.PlayerConnections[playerID] = client
}

// RemoveConnection drops the player mapping only if it still points at the
// given socket, so a fast reconnect is not clobbered by the old socket's
// teardown.
func (s *SocketServer) RemoveConnection(playerID string, client *socket.Socket) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if current, exists := s.PlayerConnections[playerID]; exists && current == client {
		delete(s.PlayerConnections, playerID)
	}
}

func (s *SocketServer) GetConnection(playerID string) (*socket.Socket, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	client, exists := s.PlayerConnections[playerID]
	return client, exists
}

func (s *SocketServer) BindSession(sid socket.SocketId, playerID, roomID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.Sessions[sid] = &Session{PlayerID: playerID, RoomID: roomID}
}

func (s *SocketServer) SessionFor(sid socket.SocketId) (*Session, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	session, exists := s.Sessions[sid]
	return session, exists
}

func (s *SocketServer) ClearSession(sid socket.SocketId) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.Sessions, sid)
}

// ToRoom, ToRoomExcept and ToPlayer make SocketServer the game service's
// broadcaster.

func (s *SocketServer) ToRoom(roomID string, event string, payload interface{}) {
	s.Sio_server.To(socket.Room(roomID)).Emit(event, payload)
}

func (s *SocketServer) ToRoomExcept(roomID string, exceptPlayerID string, event string, payload interface{}) {
	if client, exists := s.GetConnection(exceptPlayerID); exists {
		// Every socket is implicitly in a room named after its own id.
		s.Sio_server.To(socket.Room(roomID)).Except(socket.Room(string(client.Id()))).Emit(event, payload)
		return
	}
	s.Sio_server.To(socket.Room(roomID)).Emit(event, payload)
}

func (s *SocketServer) ToPlayer(playerID string, event string, payload interface{}) {
	if client, exists := s.GetConnection(playerID); exists {
		client.Emit(event, payload)
	}
}
