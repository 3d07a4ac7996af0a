package runtime

import (
	"chat-room/contract"
	"chat-room/domain"
	"slices"
	"sync"

	"github.com/samber/lo"
)

// roomPresence holds what is live in one room.
// users keeps insertion order so presence lists are deterministic.
type roomPresence struct {
	mu       sync.RWMutex
	users    []string
	attached map[domain.SessionID]*contract.Attachment
}

func newRoomPresence() *roomPresence {
	return &roomPresence{attached: make(map[domain.SessionID]*contract.Attachment)}
}

// Registry is the in-memory presence of every room.
// mu only guards the maps, each room is locked on its own so rooms never wait on each other.
type Registry struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]contract.EventSink
	rooms    map[domain.RoomID]*roomPresence
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[domain.SessionID]contract.EventSink),
		rooms:    make(map[domain.RoomID]*roomPresence),
	}
}

// Connect registers the delivery queue of a session.
func (r *Registry) Connect(sessionID domain.SessionID, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sessionID] = sink
}

// Disconnect forgets the delivery queue of a session.
// Its room attachment stays until the room worker processes the leave.
func (r *Registry) Disconnect(sessionID domain.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
}

func (r *Registry) SinkFor(sessionID domain.SessionID) contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[sessionID]
}

func (r *Registry) AddUser(roomID domain.RoomID, username string) {
	room := r.getOrCreate(roomID)
	room.mu.Lock()
	defer room.mu.Unlock()
	if !lo.Contains(room.users, username) {
		room.users = append(room.users, username)
	}
}

func (r *Registry) RemoveUser(roomID domain.RoomID, username string) {
	room := r.get(roomID)
	if room == nil {
		return
	}
	room.mu.Lock()
	room.users = slices.DeleteFunc(room.users, func(u string) bool { return u == username })
	empty := len(room.users) == 0 && len(room.attached) == 0
	room.mu.Unlock()
	if empty {
		r.prune(roomID, room)
	}
}

// ListUsers returns a copy of the room's presence, in the order users arrived.
func (r *Registry) ListUsers(roomID domain.RoomID) []string {
	room := r.get(roomID)
	if room == nil {
		return []string{}
	}
	room.mu.RLock()
	defer room.mu.RUnlock()
	return slices.Clone(room.users)
}

func (r *Registry) HasUsername(roomID domain.RoomID, username string) bool {
	room := r.get(roomID)
	if room == nil {
		return false
	}
	room.mu.RLock()
	defer room.mu.RUnlock()
	return lo.Contains(room.users, username)
}

func (r *Registry) Attach(roomID domain.RoomID, sessionID domain.SessionID, username string) {
	room := r.getOrCreate(roomID)
	room.mu.Lock()
	defer room.mu.Unlock()
	if _, ok := room.attached[sessionID]; ok {
		return
	}
	room.attached[sessionID] = &contract.Attachment{Username: username}
}

// Detach unbinds a session from its room and returns what it was bound to.
func (r *Registry) Detach(roomID domain.RoomID, sessionID domain.SessionID) (contract.Attachment, bool) {
	room := r.get(roomID)
	if room == nil {
		return contract.Attachment{}, false
	}
	room.mu.Lock()
	attachment, ok := room.attached[sessionID]
	if ok {
		delete(room.attached, sessionID)
	}
	empty := len(room.users) == 0 && len(room.attached) == 0
	room.mu.Unlock()
	if empty {
		r.prune(roomID, room)
	}
	if !ok {
		return contract.Attachment{}, false
	}
	return *attachment, true
}

func (r *Registry) Attachment(roomID domain.RoomID, sessionID domain.SessionID) (contract.Attachment, bool) {
	room := r.get(roomID)
	if room == nil {
		return contract.Attachment{}, false
	}
	room.mu.RLock()
	defer room.mu.RUnlock()
	attachment, ok := room.attached[sessionID]
	if !ok {
		return contract.Attachment{}, false
	}
	return *attachment, true
}

// IsAttached reports whether at least one session of the room carries username.
func (r *Registry) IsAttached(roomID domain.RoomID, username string) bool {
	room := r.get(roomID)
	if room == nil {
		return false
	}
	room.mu.RLock()
	defer room.mu.RUnlock()
	for _, attachment := range room.attached {
		if attachment.Username == username {
			return true
		}
	}
	return false
}

func (r *Registry) SetTyping(roomID domain.RoomID, sessionID domain.SessionID, typing bool) {
	room := r.get(roomID)
	if room == nil {
		return
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	if attachment, ok := room.attached[sessionID]; ok {
		attachment.Typing = typing
	}
}

// SinksForRoom resolves the delivery queues of every session attached to the room, except one.
// Pass an empty session id to reach everybody. Sessions already disconnected are skipped.
func (r *Registry) SinksForRoom(roomID domain.RoomID, except domain.SessionID) []contract.EventSink {
	room := r.get(roomID)
	if room == nil {
		return nil
	}
	room.mu.RLock()
	sessionIDs := make([]domain.SessionID, 0, len(room.attached))
	for sessionID := range room.attached {
		if sessionID != except {
			sessionIDs = append(sessionIDs, sessionID)
		}
	}
	room.mu.RUnlock()

	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.FilterMap(sessionIDs, func(sessionID domain.SessionID, _ int) (contract.EventSink, bool) {
		sink, ok := r.sessions[sessionID]
		return sink, ok
	})
}

func (r *Registry) get(roomID domain.RoomID) *roomPresence {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rooms[roomID]
}

func (r *Registry) getOrCreate(roomID domain.RoomID) *roomPresence {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[roomID]
	if !ok {
		room = newRoomPresence()
		r.rooms[roomID] = room
	}
	return room
}

// prune drops an empty room so the map does not grow with every room ever visited.
// The room is checked again under both locks, someone may have joined in between.
func (r *Registry) prune(roomID domain.RoomID, room *roomPresence) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rooms[roomID] != room {
		return
	}
	room.mu.RLock()
	defer room.mu.RUnlock()
	if len(room.users) == 0 && len(room.attached) == 0 {
		delete(r.rooms, roomID)
	}
}
