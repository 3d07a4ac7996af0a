package repositories

import (
	"chat-room/domain"
	"encoding/binary"
	"fmt"
	"strings"
	"time"
)

// Record is a readable view of one stored key, used by the inspection tools.
type Record struct {
	Key    string
	Kind   string
	Room   domain.RoomID
	At     time.Time
	Detail string
}

const (
	KindRoom     = "ROOM"
	KindMessage  = "MESSAGE"
	KindIndex    = "INDEX"
	KindSequence = "SEQUENCE"
	KindRaw      = "RAW"
)

// Describe decodes a key/value pair of the store. Unknown or corrupt entries come back as RAW.
func Describe(key string, value []byte) Record {
	record := Record{Key: key, Kind: KindRaw, Detail: fmt.Sprintf("Size: %d bytes", len(value))}

	prefix, rest, ok := strings.Cut(key, ":")
	if !ok {
		return record
	}
	segment, _, _ := strings.Cut(rest, ":")
	roomID, err := DecodeRoom(segment)
	if err != nil {
		return record
	}

	switch prefix + ":" {
	case roomPrefix:
		var disk diskRoom
		if err := unmarshal(value, &disk); err != nil {
			return record
		}
		room := toRoom(disk)
		record.Kind, record.Room, record.At = KindRoom, room.ID, room.CreatedAt
		record.Detail = fmt.Sprintf("%d member(s): %s", len(room.Members), strings.Join(room.Members, ", "))
	case messagePrefix:
		message, err := DecodeMessage(value)
		if err != nil {
			return record
		}
		record.Kind, record.Room, record.At = KindMessage, message.Room, message.CreatedAt
		record.Detail = fmt.Sprintf("#%d %s: %s", message.Seq, message.Author, message.Content)
		if message.ReplyTo != nil {
			record.Detail += fmt.Sprintf(" (reply to %s)", message.ReplyTo)
		}
	case indexPrefix:
		record.Kind, record.Room = KindIndex, roomID
		record.Detail = "-> " + string(value)
	case sequencePrefix:
		record.Kind, record.Room = KindSequence, roomID
		if len(value) == 8 {
			record.Detail = fmt.Sprintf("leased up to %d", binary.BigEndian.Uint64(value))
		}
	}
	return record
}
