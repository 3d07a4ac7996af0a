package repositories

import (
	"chat-room/domain"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
)

// Room ids are free text, they are base64url encoded so a ':' inside an id
// can never shift the boundaries of a key.
//
//	room:{room}                    room record
//	seq:{room}                     badger sequence of the room
//	msg:{room}:{seq padded to 20}  message record
//	msgid:{room}:{uuid}            primary key of a message
const (
	roomPrefix     = "room:"
	sequencePrefix = "seq:"
	messagePrefix  = "msg:"
	indexPrefix    = "msgid:"
)

func encodeRoom(roomID domain.RoomID) string {
	return base64.RawURLEncoding.EncodeToString([]byte(roomID))
}

// DecodeRoom reverses the room segment of a key.
func DecodeRoom(segment string) (domain.RoomID, error) {
	raw, err := base64.RawURLEncoding.DecodeString(segment)
	if err != nil {
		return "", err
	}
	return domain.RoomID(raw), nil
}

func roomKey(roomID domain.RoomID) []byte {
	return []byte(roomPrefix + encodeRoom(roomID))
}

func sequenceKey(roomID domain.RoomID) []byte {
	return []byte(sequencePrefix + encodeRoom(roomID))
}

func messageRoomPrefix(roomID domain.RoomID) []byte {
	return []byte(messagePrefix + encodeRoom(roomID) + ":")
}

func messageKey(roomID domain.RoomID, seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%s:%020d", messagePrefix, encodeRoom(roomID), seq))
}

func indexKey(roomID domain.RoomID, id uuid.UUID) []byte {
	return []byte(fmt.Sprintf("%s%s:%s", indexPrefix, encodeRoom(roomID), id))
}

// MessagePrefix is the prefix shared by every message record.
func MessagePrefix() []byte {
	return []byte(messagePrefix)
}
