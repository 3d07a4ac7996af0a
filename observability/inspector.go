package observability

import (
	"chat-room/repositories"
	"fmt"

	"github.com/mama165/sdk-go/database"
)

// InspectMapper renders stored rooms and messages in the badger debug inspector.
func InspectMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)
	record := repositories.Describe(key, val)
	if record.Kind == repositories.KindRaw {
		return row
	}
	row.Type = record.Kind
	row.Detail = fmt.Sprintf("[%s] %s", record.Room, record.Detail)
	return row
}
