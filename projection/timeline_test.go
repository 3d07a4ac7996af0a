package projection

import (
	"chat-room/infrastructure/http/protocol"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func view(id uuid.UUID, author, content string) protocol.MessageView {
	return protocol.MessageView{ID: id.String(), Author: author, Content: content}
}

func TestTimeline_Appends_Posted_Messages_Once(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline("bob")
	first, second := uuid.New(), uuid.New()

	timeline.Apply(protocol.History{Messages: []protocol.MessageView{view(first, "alice", "hello")}})
	timeline.Apply(protocol.Posted{Message: view(second, "clara", "hi")})
	timeline.Apply(protocol.Posted{Message: view(second, "clara", "hi")})

	req.Len(timeline.Messages, 2)
	req.Equal("alice", timeline.Messages[0].Author)
	req.Equal("clara", timeline.Messages[1].Author)
}

func TestTimeline_Delete_Degrades_Replies(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline("bob")
	original := uuid.New()
	reply := view(uuid.New(), "bob", "yes")
	reply.ReplyTo = &protocol.ReplyView{ID: original.String(), Author: "alice", Content: "lunch?"}

	// Given a message and a reply to it
	timeline.Apply(protocol.History{Messages: []protocol.MessageView{view(original, "alice", "lunch?"), reply}})

	// When the original is deleted
	timeline.Apply(protocol.Deleted{MessageID: original})

	// Then only the reply is left, without its snapshot
	req.Len(timeline.Messages, 1)
	req.Equal("yes", timeline.Messages[0].Content)
	req.Nil(timeline.Messages[0].ReplyTo)
	req.Nil(timeline.Find(original.String()))
}

func TestTimeline_Tracks_Typing_And_Presence(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline("bob")

	timeline.Apply(protocol.Presence{Users: []string{"alice", "bob", "carol"}})
	timeline.Apply(protocol.TypingChanged{Username: "alice"})
	timeline.Apply(protocol.TypingChanged{Username: "alice"})
	timeline.Apply(protocol.TypingChanged{Username: "carol"})
	timeline.Apply(protocol.TypingChanged{Username: "bob"})
	req.Equal([]string{"alice", "carol"}, timeline.Typing)

	timeline.Apply(protocol.TypingChanged{Username: "alice", Stopped: true})
	req.Equal([]string{"carol"}, timeline.Typing)

	// When Carol leaves while typing
	timeline.Apply(protocol.Presence{Users: []string{"alice", "bob"}})

	// Then she no longer shows as typing
	req.Empty(timeline.Typing)
	req.Equal([]string{"alice", "bob"}, timeline.Users)
}

func TestTimeline_Keeps_Last_Failure(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline("bob")

	timeline.Apply(protocol.Failure{Code: "forbidden", Message: "only the author can delete this message"})

	req.NotNil(timeline.LastError)
	req.Equal("forbidden", timeline.LastError.Code)
}
