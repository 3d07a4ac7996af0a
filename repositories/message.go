//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"chat-room/domain"
	"chat-room/errors"
	stderrors "errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const sequenceBandwidth = 100

type IMessageRepository interface {
	Append(roomID domain.RoomID, author, content string, replyTo *uuid.UUID) (domain.Message, error)
	History(roomID domain.RoomID) ([]domain.Message, error)
	Get(roomID domain.RoomID, id uuid.UUID) (domain.Message, error)
	Delete(roomID domain.RoomID, id uuid.UUID, requester string) error
}

type MessageRepository struct {
	db            *badger.DB
	log           *slog.Logger
	limitMessages *int
	retention     time.Duration
	now           func() time.Time

	mu        sync.Mutex
	sequences map[domain.RoomID]*badger.Sequence
	lastAt    map[domain.RoomID]time.Time
}

// NewMessageRepository stores messages in badger.
// A nil limitMessages returns the whole history, a zero retention keeps messages forever.
func NewMessageRepository(db *badger.DB, log *slog.Logger, limitMessages *int, retention time.Duration) *MessageRepository {
	return &MessageRepository{
		db:            db,
		log:           log,
		limitMessages: limitMessages,
		retention:     retention,
		now:           time.Now,
		sequences:     make(map[domain.RoomID]*badger.Sequence),
		lastAt:        make(map[domain.RoomID]time.Time),
	}
}

type diskMessage struct {
	ID      string `cbor:"1,keyasint"`
	Room    string `cbor:"2,keyasint"`
	Seq     uint64 `cbor:"3,keyasint"`
	Author  string `cbor:"4,keyasint"`
	Content string `cbor:"5,keyasint"`
	At      int64  `cbor:"6,keyasint"`
	ReplyTo string `cbor:"7,keyasint,omitempty"`
}

// Append persists a new message at the tail of its room.
// The key is formatted as "msg:{room}:{seq padded to 20}" so a prefix scan returns
// the room in sequence order, the uuid index gives access by id.
func (m *MessageRepository) Append(roomID domain.RoomID, author, content string, replyTo *uuid.UUID) (domain.Message, error) {
	seq, at, err := m.next(roomID)
	if err != nil {
		return domain.Message{}, fmt.Errorf("unable to reserve a sequence for room %s: %w", roomID, err)
	}
	message := domain.Message{
		ID:        uuid.New(),
		Room:      roomID,
		Seq:       seq,
		Author:    author,
		Content:   content,
		CreatedAt: at,
		ReplyTo:   replyTo,
	}
	bytes, err := marshal(fromMessage(message))
	if err != nil {
		return domain.Message{}, err
	}
	key := messageKey(roomID, seq)
	err = m.db.Update(func(txn *badger.Txn) error {
		if err := txn.SetEntry(m.entry(key, bytes)); err != nil {
			return err
		}
		return txn.SetEntry(m.entry(indexKey(roomID, message.ID), key))
	})
	if err != nil {
		return domain.Message{}, err
	}
	return message, nil
}

// History returns the room's messages oldest first.
// With a limit, only the most recent ones are kept: the scan runs backwards and stops early.
func (m *MessageRepository) History(roomID domain.RoomID) ([]domain.Message, error) {
	var messages []domain.Message
	err := m.db.View(func(txn *badger.Txn) error {
		prefix := messageRoomPrefix(roomID)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		options.Prefix = prefix
		it := txn.NewIterator(options)
		defer it.Close()

		// Reverse iteration must start past the last key of the room
		seekKey := append(slices.Clone(prefix), 0xFF)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			if m.limitMessages != nil && len(messages) == *m.limitMessages {
				m.log.Debug(fmt.Sprintf("Maximum of %d message reached", *m.limitMessages))
				break
			}
			err := it.Item().Value(func(value []byte) error {
				message, err := DecodeMessage(value)
				if err != nil {
					return err
				}
				messages = append(messages, message)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Reverse(messages)
	return messages, nil
}

func (m *MessageRepository) Get(roomID domain.RoomID, id uuid.UUID) (domain.Message, error) {
	var message domain.Message
	err := m.db.View(func(txn *badger.Txn) error {
		var err error
		message, _, err = lookup(txn, roomID, id)
		return err
	})
	return message, err
}

// Delete removes a message and its index entry, only its author may do so.
func (m *MessageRepository) Delete(roomID domain.RoomID, id uuid.UUID, requester string) error {
	return m.db.Update(func(txn *badger.Txn) error {
		message, key, err := lookup(txn, roomID, id)
		if err != nil {
			return err
		}
		if message.Author != requester {
			return errors.ErrForbidden
		}
		if err := txn.Delete(key); err != nil {
			return err
		}
		return txn.Delete(indexKey(roomID, id))
	})
}

// Close hands back the unused part of every leased sequence.
func (m *MessageRepository) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for roomID, sequence := range m.sequences {
		if err := sequence.Release(); err != nil {
			m.log.Warn("Unable to release sequence", "room", roomID, "error", err)
		}
	}
	clear(m.sequences)
}

// next reserves the following sequence of a room and its timestamp.
// Timestamps never go backwards inside a room, even if the wall clock does.
func (m *MessageRepository) next(roomID domain.RoomID) (uint64, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sequence, ok := m.sequences[roomID]
	if !ok {
		var err error
		sequence, err = m.db.GetSequence(sequenceKey(roomID), sequenceBandwidth)
		if err != nil {
			return 0, time.Time{}, err
		}
		m.sequences[roomID] = sequence
	}
	seq, err := sequence.Next()
	if err != nil {
		return 0, time.Time{}, err
	}
	at := m.now().UTC()
	if last, ok := m.lastAt[roomID]; ok && at.Before(last) {
		at = last
	}
	m.lastAt[roomID] = at
	return seq, at, nil
}

func (m *MessageRepository) entry(key, value []byte) *badger.Entry {
	e := badger.NewEntry(key, value)
	if m.retention > 0 {
		e = e.WithTTL(m.retention)
	}
	return e
}

func lookup(txn *badger.Txn, roomID domain.RoomID, id uuid.UUID) (domain.Message, []byte, error) {
	item, err := txn.Get(indexKey(roomID, id))
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return domain.Message{}, nil, errors.ErrMessageNotFound
	}
	if err != nil {
		return domain.Message{}, nil, err
	}
	key, err := item.ValueCopy(nil)
	if err != nil {
		return domain.Message{}, nil, err
	}
	item, err = txn.Get(key)
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return domain.Message{}, nil, errors.ErrMessageNotFound
	}
	if err != nil {
		return domain.Message{}, nil, err
	}
	var message domain.Message
	err = item.Value(func(value []byte) error {
		message, err = DecodeMessage(value)
		return err
	})
	return message, key, err
}

// DecodeMessage turns a stored record back into a message.
func DecodeMessage(value []byte) (domain.Message, error) {
	var disk diskMessage
	if err := unmarshal(value, &disk); err != nil {
		return domain.Message{}, err
	}
	return toMessage(disk)
}

func fromMessage(message domain.Message) diskMessage {
	return diskMessage{
		ID:      message.ID.String(),
		Room:    string(message.Room),
		Seq:     message.Seq,
		Author:  message.Author,
		Content: message.Content,
		At:      message.CreatedAt.UnixNano(),
		ReplyTo: lo.TernaryF(message.ReplyTo == nil,
			func() string { return "" },
			func() string { return message.ReplyTo.String() }),
	}
}

func toMessage(disk diskMessage) (domain.Message, error) {
	parsedID, err := uuid.Parse(disk.ID)
	if err != nil {
		return domain.Message{}, err
	}
	var replyTo *uuid.UUID
	if disk.ReplyTo != "" {
		parsed, err := uuid.Parse(disk.ReplyTo)
		if err != nil {
			return domain.Message{}, err
		}
		replyTo = lo.ToPtr(parsed)
	}
	return domain.Message{
		ID:        parsedID,
		Room:      domain.RoomID(disk.Room),
		Seq:       disk.Seq,
		Author:    disk.Author,
		Content:   disk.Content,
		CreatedAt: time.Unix(0, disk.At).UTC(),
		ReplyTo:   replyTo,
	}, nil
}
