package repositories

import (
	"chat-room/domain"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestDescribe_Every_Stored_Kind(t *testing.T) {
	req := require.New(t)
	db := openDB(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	// Given a room with one message
	rooms := NewRoomRepository(db, log, time.Hour)
	_, err := rooms.Upsert("general", func(room *domain.Room, exists bool) error {
		room.AddMember("alice")
		return nil
	})
	req.NoError(err)
	messages := NewMessageRepository(db, log, nil, time.Hour)
	defer messages.Close()
	message, err := messages.Append("general", "alice", "hello", nil)
	req.NoError(err)

	// When every key is described
	kinds := map[string]Record{}
	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			record := Describe(string(item.Key()), value)
			kinds[record.Kind] = record
		}
		return nil
	})
	req.NoError(err)

	// Then rooms, messages and indexes are readable
	req.Equal(domain.RoomID("general"), kinds[KindRoom].Room)
	req.Contains(kinds[KindRoom].Detail, "alice")
	req.Equal(domain.RoomID("general"), kinds[KindMessage].Room)
	req.Equal(fmt.Sprintf("#%d alice: hello", message.Seq), kinds[KindMessage].Detail)
	req.True(strings.HasPrefix(kinds[KindIndex].Detail, "-> msg:"))
	req.Equal(message.CreatedAt, kinds[KindMessage].At)
}

func TestDescribe_Unknown_Key_Is_Raw(t *testing.T) {
	req := require.New(t)

	record := Describe("garbage", []byte{1, 2, 3})

	req.Equal(KindRaw, record.Kind)
	req.Equal("Size: 3 bytes", record.Detail)
}
