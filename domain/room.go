package domain

import (
	"time"

	"github.com/samber/lo"
)

type RoomID string

// Room is the durable record kept by admission.
// Members lists every username that has ever been admitted, online or not.
// Who is online right now is tracked by the presence registry, never here.
type Room struct {
	ID           RoomID
	PasswordHash string
	Members      []string
	CreatedAt    time.Time
}

func NewRoom(id RoomID, createdAt time.Time) *Room {
	return &Room{
		ID:        id,
		CreatedAt: createdAt,
	}
}

func (r *Room) HasMember(username string) bool {
	return lo.Contains(r.Members, username)
}

// AddMember records username in the durable member list. Adding an existing member is a no-op.
func (r *Room) AddMember(username string) {
	if r.HasMember(username) {
		return
	}
	r.Members = append(r.Members, username)
}
