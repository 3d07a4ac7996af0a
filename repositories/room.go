//go:generate go run go.uber.org/mock/mockgen -source=room.go -destination=../mocks/mock_room_repository.go -package=mocks
package repositories

import (
	"chat-room/domain"
	"chat-room/errors"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const maxConflictRetries = 3

// RoomMutation edits a room inside its transaction, exists is false for a brand new room.
// Returning an error aborts the write.
type RoomMutation func(room *domain.Room, exists bool) error

type IRoomRepository interface {
	GetRoom(roomID domain.RoomID) (domain.Room, error)
	Upsert(roomID domain.RoomID, mutate RoomMutation) (domain.Room, error)
}

type RoomRepository struct {
	db        *badger.DB
	log       *slog.Logger
	retention time.Duration
	now       func() time.Time
}

func NewRoomRepository(db *badger.DB, log *slog.Logger, retention time.Duration) *RoomRepository {
	return &RoomRepository{db: db, log: log, retention: retention, now: time.Now}
}

type diskRoom struct {
	ID           string   `cbor:"1,keyasint"`
	PasswordHash string   `cbor:"2,keyasint"`
	Members      []string `cbor:"3,keyasint,omitempty"`
	CreatedAt    int64    `cbor:"4,keyasint"`
}

func (r *RoomRepository) GetRoom(roomID domain.RoomID) (domain.Room, error) {
	var room domain.Room
	err := r.db.View(func(txn *badger.Txn) error {
		found, exists, err := getRoom(txn, roomID)
		if err != nil {
			return err
		}
		if !exists {
			return errors.ErrRoomNotFound
		}
		room = found
		return nil
	})
	return room, err
}

// Upsert reads, mutates and writes a room in one transaction.
// Two admissions racing on the same room conflict in badger, the loser is replayed.
// The expiry of a room is counted from its creation, updates never extend it.
func (r *RoomRepository) Upsert(roomID domain.RoomID, mutate RoomMutation) (domain.Room, error) {
	var room domain.Room
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		err = r.db.Update(func(txn *badger.Txn) error {
			found, exists, err := getRoom(txn, roomID)
			if err != nil {
				return err
			}
			if !exists {
				found = *domain.NewRoom(roomID, r.now().UTC())
			}
			if err := mutate(&found, exists); err != nil {
				return err
			}
			bytes, err := marshal(fromRoom(found))
			if err != nil {
				return err
			}
			entry := badger.NewEntry(roomKey(roomID), bytes)
			if r.retention > 0 {
				ttl := r.retention - r.now().Sub(found.CreatedAt)
				if ttl < time.Second {
					ttl = time.Second
				}
				entry = entry.WithTTL(ttl)
			}
			room = found
			return txn.SetEntry(entry)
		})
		if !stderrors.Is(err, badger.ErrConflict) {
			break
		}
		r.log.Debug("Room update conflicted, retrying", "room", roomID, "attempt", attempt+1)
	}
	if err != nil {
		return domain.Room{}, err
	}
	return room, nil
}

func getRoom(txn *badger.Txn, roomID domain.RoomID) (domain.Room, bool, error) {
	item, err := txn.Get(roomKey(roomID))
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return domain.Room{}, false, nil
	}
	if err != nil {
		return domain.Room{}, false, err
	}
	var disk diskRoom
	err = item.Value(func(value []byte) error {
		return unmarshal(value, &disk)
	})
	if err != nil {
		return domain.Room{}, false, err
	}
	return toRoom(disk), true, nil
}

func fromRoom(room domain.Room) diskRoom {
	return diskRoom{
		ID:           string(room.ID),
		PasswordHash: room.PasswordHash,
		Members:      room.Members,
		CreatedAt:    room.CreatedAt.UnixNano(),
	}
}

func toRoom(disk diskRoom) domain.Room {
	return domain.Room{
		ID:           domain.RoomID(disk.ID),
		PasswordHash: disk.PasswordHash,
		Members:      disk.Members,
		CreatedAt:    time.Unix(0, disk.CreatedAt).UTC(),
	}
}
