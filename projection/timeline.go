// Package projection builds a local view of a room from observed server events.
// Handles ordering, deduplication and reply degradation.
// Does not emit events or interact with UI directly.
package projection

import (
	"chat-room/infrastructure/http/protocol"
	"slices"

	"github.com/samber/lo"
)

// Timeline holds what one participant currently sees of a room.
type Timeline struct {
	Owner     string
	Messages  []protocol.MessageView
	Users     []string
	Typing    []string
	LastError *protocol.Failure
}

func NewTimeline(owner string) *Timeline {
	return &Timeline{Owner: owner}
}

func (t *Timeline) Apply(e protocol.ServerEvent) {
	switch evt := e.(type) {
	case protocol.History:
		t.Messages = lo.UniqBy(evt.Messages, func(m protocol.MessageView) string { return m.ID })
	case protocol.Presence:
		t.Users = slices.Clone(evt.Users)
		t.Typing = lo.Filter(t.Typing, func(u string, _ int) bool { return lo.Contains(t.Users, u) })
	case protocol.Posted:
		if t.Find(evt.Message.ID) == nil {
			t.Messages = append(t.Messages, evt.Message)
		}
	case protocol.Deleted:
		t.delete(evt.MessageID.String())
	case protocol.TypingChanged:
		t.typing(evt.Username, evt.Stopped)
	case protocol.Failure:
		t.LastError = &evt
	}
}

func (t *Timeline) Find(id string) *protocol.MessageView {
	i := slices.IndexFunc(t.Messages, func(m protocol.MessageView) bool { return m.ID == id })
	if i < 0 {
		return nil
	}
	return &t.Messages[i]
}

// delete drops the message and the reply snapshots pointing at it,
// as a fresh history would render them.
func (t *Timeline) delete(id string) {
	t.Messages = lo.Reject(t.Messages, func(m protocol.MessageView, _ int) bool { return m.ID == id })
	for i := range t.Messages {
		if reply := t.Messages[i].ReplyTo; reply != nil && reply.ID == id {
			t.Messages[i].ReplyTo = nil
		}
	}
}

func (t *Timeline) typing(username string, stopped bool) {
	if username == t.Owner {
		return
	}
	if stopped {
		t.Typing = lo.Without(t.Typing, username)
		return
	}
	if !lo.Contains(t.Typing, username) {
		t.Typing = append(t.Typing, username)
	}
}
