package registry

import (
	"sync"

	game_models "emoguchi/models/game"
)

// Registry is the memory-resident source of truth mapping room ids to Room
// aggregates. Its lock only protects the map itself; each Room carries its
// own mutex, so unrelated rooms never serialize behind registry contention.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*game_models.Room
}

func New() *Registry {
	return &Registry{
		rooms: make(map[string]*game_models.Room),
	}
}

// Create registers a room. Returns false if the id is already taken.
func (r *Registry) Create(room *game_models.Room) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.rooms[room.ID]; exists {
		return false
	}
	r.rooms[room.ID] = room
	return true
}

// Get returns the room or nil.
func (r *Registry) Get(roomID string) *game_models.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rooms[roomID]
}

// Delete removes the room, reporting whether it existed.
func (r *Registry) Delete(roomID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.rooms[roomID]; !exists {
		return false
	}
	delete(r.rooms, roomID)
	return true
}

// List returns every registered room. The slice is a copy; the rooms are the
// live aggregates, callers must lock them before reading mutable state.
func (r *Registry) List() []*game_models.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*game_models.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		out = append(out, room)
	}
	return out
}

// Len reports the number of registered rooms.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}
