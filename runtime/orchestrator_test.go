package runtime

import (
	"chat-room/contract"
	"chat-room/domain"
	"chat-room/domain/event"
	"chat-room/errors"
	"chat-room/moderation"
	"chat-room/observability"
	"chat-room/repositories"
	"chat-room/runtime/workers"
	"chat-room/sink"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

const eventTimeout = time.Second

type harness struct {
	t            *testing.T
	orchestrator *Orchestrator
	registry     *Registry
	messages     *repositories.MessageRepository
	monitoring   *observability.MonitoringManager
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWithCensor(t, nil)
}

func newHarnessWithCensor(t *testing.T, censor contract.Censor) *harness {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)

	registry := NewRegistry()
	messages := repositories.NewMessageRepository(db, log, nil, 0)
	monitoring := observability.NewMonitoringManager(log)
	orchestrator := NewOrchestrator(log, workers.NewSupervisor(log), registry, messages,
		NewReplyResolver(messages, log), censor, monitoring, 16)
	require.NoError(t, orchestrator.Start(context.Background()))

	t.Cleanup(func() {
		orchestrator.Stop()
		messages.Close()
		_ = db.Close()
	})
	return &harness{t: t, orchestrator: orchestrator, registry: registry, messages: messages, monitoring: monitoring}
}

type client struct {
	t       *testing.T
	session *Session
	sink    *sink.SessionSink
}

func (h *harness) connect() *client {
	s := sink.NewSessionSink(slog.Default(), 64, nil)
	return &client{t: h.t, session: h.orchestrator.OpenSession(s), sink: s}
}

// join connects a client and consumes its history and presence events.
func (h *harness) join(room domain.RoomID, username string) (*client, event.HistoryDelivered) {
	c := h.connect()
	require.NoError(h.t, c.session.Join(context.Background(), room, username))
	history := next[event.HistoryDelivered](c)
	next[event.PresenceChanged](c)
	return c, history
}

func next[T event.DomainEvent](c *client) T {
	c.t.Helper()
	select {
	case e := <-c.sink.Events():
		typed, ok := e.(T)
		require.Truef(c.t, ok, "expected %T, got %T (%+v)", *new(T), e, e)
		return typed
	case <-time.After(eventTimeout):
		require.FailNowf(c.t, "no event", "expected %T", *new(T))
		return *new(T)
	}
}

func (c *client) nothing() {
	c.t.Helper()
	select {
	case e := <-c.sink.Events():
		require.Failf(c.t, "unexpected event", "%T %+v", e, e)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestJoin_Delivers_History_Before_Presence(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)

	// Given Alice already posted in the room
	alice, history := h.join("general", "alice")
	req.Empty(history.Messages)
	req.NoError(alice.session.Send(context.Background(), "hi", nil))
	next[event.MessagePosted](alice)

	// When Bob joins
	bob := h.connect()
	req.NoError(bob.session.Join(context.Background(), "general", "bob"))

	// Then Bob first gets the history, then the presence
	bobHistory := next[event.HistoryDelivered](bob)
	req.Len(bobHistory.Messages, 1)
	req.Equal("hi", bobHistory.Messages[0].Content)
	req.Equal([]string{"alice", "bob"}, next[event.PresenceChanged](bob).Users)
	req.Equal(StateJoined, bob.session.State())

	// And Alice only learns about the new presence
	req.Equal([]string{"alice", "bob"}, next[event.PresenceChanged](alice).Users)
	alice.nothing()
}

func TestJoin_Twice_Same_Binding_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	alice, _ := h.join("general", "alice")

	req.NoError(alice.session.Join(context.Background(), "general", "alice"))

	next[event.HistoryDelivered](alice)
	req.Equal([]string{"alice"}, next[event.PresenceChanged](alice).Users)
	req.Equal([]string{"alice"}, h.orchestrator.Presence("general"))
}

func TestJoin_Another_Binding_Is_Rejected(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	alice, _ := h.join("general", "alice")

	req.ErrorIs(alice.session.Join(context.Background(), "random", "alice"), errors.ErrAlreadyJoined)
	req.ErrorIs(alice.session.Join(context.Background(), "general", "bob"), errors.ErrAlreadyJoined)
	req.Equal(domain.RoomID("general"), alice.session.Room())
	req.Equal("alice", alice.session.Username())
}

func TestSend_Before_Join_Is_Refused(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	c := h.connect()

	req.ErrorIs(c.session.Send(context.Background(), "hello?", nil), errors.ErrNotJoined)
	req.ErrorIs(c.session.Typing(context.Background(), false), errors.ErrNotJoined)
	req.ErrorIs(c.session.Delete(context.Background(), uuid.New()), errors.ErrNotJoined)
}

func TestSend_Broadcasts_In_Append_Order(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	alice, _ := h.join("general", "alice")
	bob, _ := h.join("general", "bob")
	next[event.PresenceChanged](alice)

	contents := []string{"one", "two", "three", "four", "five"}
	for _, content := range contents {
		req.NoError(alice.session.Send(context.Background(), content, nil))
	}

	var previous uint64
	for i, content := range contents {
		forAlice := next[event.MessagePosted](alice)
		forBob := next[event.MessagePosted](bob)
		req.Equal(content, forBob.Message.Content)
		req.Equal(forAlice.Message.ID, forBob.Message.ID)
		req.Equal("alice", forBob.Message.Author)
		if i > 0 {
			req.Greater(forBob.Message.Seq, previous)
		}
		previous = forBob.Message.Seq
	}

	history, err := h.orchestrator.History(context.Background(), "general")
	req.NoError(err)
	req.Equal(contents, lo.Map(history, func(m domain.HydratedMessage, _ int) string { return m.Content }))
}

func TestSend_From_Concurrent_Sessions_Is_Seen_In_One_Order(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)

	// Given three users in the same room
	alice, _ := h.join("general", "alice")
	bob, _ := h.join("general", "bob")
	carol, _ := h.join("general", "carol")
	next[event.PresenceChanged](alice)
	next[event.PresenceChanged](alice)
	next[event.PresenceChanged](bob)
	clients := []*client{alice, bob, carol}

	// When they all post at the same time
	const perSender = 10
	var wg sync.WaitGroup
	errs := make(chan error, len(clients)*perSender)
	for _, c := range clients {
		wg.Add(1)
		go func(c *client) {
			defer wg.Done()
			for i := 0; i < perSender; i++ {
				errs <- c.session.Send(context.Background(), fmt.Sprintf("%s-%d", c.session.Username(), i), nil)
			}
		}(c)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		req.NoError(err)
	}

	// Then every session sees the same sequence of messages
	received := make([][]uuid.UUID, len(clients))
	for i, c := range clients {
		for j := 0; j < len(clients)*perSender; j++ {
			received[i] = append(received[i], next[event.MessagePosted](c).Message.ID)
		}
		c.nothing()
	}
	req.Equal(received[0], received[1])
	req.Equal(received[0], received[2])

	// And that sequence is the append order of the log
	history, err := h.orchestrator.History(context.Background(), "general")
	req.NoError(err)
	req.Equal(received[0], lo.Map(history, func(m domain.HydratedMessage, _ int) uuid.UUID { return m.ID }))

	// And each sender's own messages keep the order they were sent in
	for _, c := range clients {
		own := lo.Filter(history, func(m domain.HydratedMessage, _ int) bool { return m.Author == c.session.Username() })
		req.Equal(
			lo.Times(perSender, func(i int) string { return fmt.Sprintf("%s-%d", c.session.Username(), i) }),
			lo.Map(own, func(m domain.HydratedMessage, _ int) string { return m.Content }),
		)
	}
}

func TestReply_Is_Resolved_Then_Degrades_After_Delete(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	alice, _ := h.join("general", "alice")
	bob, _ := h.join("general", "bob")
	next[event.PresenceChanged](alice)

	req.NoError(alice.session.Send(context.Background(), "hi", nil))
	target := next[event.MessagePosted](bob).Message
	next[event.MessagePosted](alice)

	// When Bob replies to Alice
	req.NoError(bob.session.Send(context.Background(), "hello alice", lo.ToPtr(target.ID)))

	// Then the reply carries a snapshot of the target
	reply := next[event.MessagePosted](alice).Message
	next[event.MessagePosted](bob)
	req.NotNil(reply.Reply)
	req.Equal(domain.ReplySnapshot{ID: target.ID, Author: "alice", Content: "hi"}, *reply.Reply)

	// When Alice deletes the target
	req.NoError(alice.session.Delete(context.Background(), target.ID))
	req.Equal(target.ID, next[event.MessageDeleted](bob).MessageID)
	req.Equal(target.ID, next[event.MessageDeleted](alice).MessageID)

	// Then the reply is kept but no longer resolves
	history, err := h.orchestrator.History(context.Background(), "general")
	req.NoError(err)
	req.Len(history, 1)
	req.Equal(reply.ID, history[0].ID)
	req.NotNil(history[0].ReplyTo)
	req.Nil(history[0].Reply)
}

func TestReply_To_Unknown_Message_Drops_The_Link(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	alice, _ := h.join("general", "alice")

	req.NoError(alice.session.Send(context.Background(), "orphan", lo.ToPtr(uuid.New())))

	posted := next[event.MessagePosted](alice).Message
	req.Equal("orphan", posted.Content)
	req.Nil(posted.ReplyTo)
	req.Nil(posted.Reply)
}

func TestReply_To_Message_Of_Another_Room_Drops_The_Link(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	alice, _ := h.join("general", "alice")
	bob, _ := h.join("random", "bob")

	req.NoError(alice.session.Send(context.Background(), "in general", nil))
	target := next[event.MessagePosted](alice).Message

	req.NoError(bob.session.Send(context.Background(), "in random", lo.ToPtr(target.ID)))
	req.Nil(next[event.MessagePosted](bob).Message.ReplyTo)
}

func TestDelete_By_Someone_Else_Is_Reported_To_Requester_Only(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	alice, _ := h.join("general", "alice")
	bob, _ := h.join("general", "bob")
	next[event.PresenceChanged](alice)

	req.NoError(alice.session.Send(context.Background(), "mine", nil))
	message := next[event.MessagePosted](alice).Message
	next[event.MessagePosted](bob)

	// When Bob tries to delete Alice's message
	req.NoError(bob.session.Delete(context.Background(), message.ID))

	// Then only Bob is told, and the message is still there
	rejected := next[event.CommandRejected](bob)
	req.ErrorIs(rejected.Reason, errors.ErrForbidden)
	alice.nothing()
	history, err := h.orchestrator.History(context.Background(), "general")
	req.NoError(err)
	req.Len(history, 1)

	// And deleting an unknown message is reported as not found
	req.NoError(alice.session.Delete(context.Background(), uuid.New()))
	req.ErrorIs(next[event.CommandRejected](alice).Reason, errors.ErrMessageNotFound)
	bob.nothing()
}

func TestTyping_Excludes_The_Typist(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	alice, _ := h.join("general", "alice")
	bob, _ := h.join("general", "bob")
	next[event.PresenceChanged](alice)

	req.NoError(alice.session.Typing(context.Background(), false))
	req.Equal("alice", next[event.UserTyping](bob).Username)
	alice.nothing()

	req.NoError(alice.session.Typing(context.Background(), true))
	req.Equal("alice", next[event.UserStoppedTyping](bob).Username)
	alice.nothing()

	// Typing is never stored
	history, err := h.orchestrator.History(context.Background(), "general")
	req.NoError(err)
	req.Empty(history)
}

func TestClose_Stops_Typing_Then_Broadcasts_Presence_Once(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	alice, _ := h.join("general", "alice")
	bob, _ := h.join("general", "bob")
	next[event.PresenceChanged](alice)
	carol, _ := h.join("random", "carol")

	req.NoError(alice.session.Typing(context.Background(), false))
	next[event.UserTyping](bob)

	// When Alice's connection closes while she is typing
	alice.session.Close()

	// Then Bob sees the typing stop, then a single presence update
	req.Equal("alice", next[event.UserStoppedTyping](bob).Username)
	req.Equal([]string{"bob"}, next[event.PresenceChanged](bob).Users)
	bob.nothing()

	// And another room hears nothing
	carol.nothing()
	req.Equal([]string{"bob"}, h.orchestrator.Presence("general"))
	req.Equal(StateClosed, alice.session.State())
}

func TestClose_Keeps_Username_While_Another_Session_Carries_It(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	phone, _ := h.join("general", "alice")
	laptop, _ := h.join("general", "alice")
	req.Equal([]string{"alice"}, next[event.PresenceChanged](phone).Users)

	phone.session.Close()
	req.Equal([]string{"alice"}, next[event.PresenceChanged](laptop).Users)

	laptop.session.Close()
	req.Eventually(func() bool {
		return len(h.orchestrator.Presence("general")) == 0
	}, eventTimeout, 5*time.Millisecond)
}

func TestIntents_After_Close_Are_Dropped(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	alice, _ := h.join("general", "alice")
	bob, _ := h.join("general", "bob")
	next[event.PresenceChanged](alice)

	alice.session.Close()
	alice.session.Close()
	next[event.PresenceChanged](bob)

	req.NoError(alice.session.Send(context.Background(), "ghost", nil))
	req.NoError(alice.session.Typing(context.Background(), false))
	req.NoError(alice.session.Join(context.Background(), "general", "alice"))
	bob.nothing()

	history, err := h.orchestrator.History(context.Background(), "general")
	req.NoError(err)
	req.Empty(history)
}

func TestClose_Before_Join_Is_Processed_Leaves_No_Presence(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	watcher, _ := h.join("general", "watcher")

	for i := 0; i < 20; i++ {
		c := h.connect()
		req.NoError(c.session.Join(context.Background(), "general", "ghost"))
		c.session.Close()
	}

	req.Eventually(func() bool {
		return lo.ElementsMatch(h.orchestrator.Presence("general"), []string{"watcher"})
	}, eventTimeout, 5*time.Millisecond)
	req.False(h.registry.IsAttached("general", "ghost"))
	_ = watcher
}

func TestAlice_Bob_Carol_Scenario(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	ctx := context.Background()

	alice, _ := h.join("general", "Alice")
	bob, _ := h.join("general", "Bob")
	next[event.PresenceChanged](alice)

	// Alice says hi, Bob replies
	req.NoError(alice.session.Send(ctx, "Hi!", nil))
	hi := next[event.MessagePosted](bob).Message
	next[event.MessagePosted](alice)
	req.NoError(bob.session.Send(ctx, "Hello Alice", lo.ToPtr(hi.ID)))
	next[event.MessagePosted](alice)
	next[event.MessagePosted](bob)

	// Carol joins and receives both messages with the reply resolved
	carol, history := h.join("general", "Carol")
	req.Len(history.Messages, 2)
	req.Equal("Hi!", history.Messages[0].Content)
	req.Equal("Hello Alice", history.Messages[1].Content)
	req.Equal(&domain.ReplySnapshot{ID: hi.ID, Author: "Alice", Content: "Hi!"}, history.Messages[1].Reply)
	req.Equal([]string{"Alice", "Bob", "Carol"}, next[event.PresenceChanged](alice).Users)
	next[event.PresenceChanged](bob)

	// Alice deletes her message, everybody is told
	req.NoError(alice.session.Delete(ctx, hi.ID))
	for _, c := range []*client{alice, bob, carol} {
		req.Equal(hi.ID, next[event.MessageDeleted](c).MessageID)
	}

	// Bob leaves
	bob.session.Close()
	req.Equal([]string{"Alice", "Carol"}, next[event.PresenceChanged](alice).Users)
	req.Equal([]string{"Alice", "Carol"}, next[event.PresenceChanged](carol).Users)

	history2, err := h.orchestrator.History(ctx, "general")
	req.NoError(err)
	req.Len(history2, 1)
	req.Nil(history2[0].Reply)

	stats := h.monitoring.GetLatest()
	req.Equal(uint64(2), stats.MessagesPosted)
	req.Equal(uint64(1), stats.MessagesDeleted)
}

func TestDispatch_After_Stop(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	c := h.connect()

	h.orchestrator.Stop()

	req.ErrorIs(c.session.Join(context.Background(), "general", "alice"), errors.ErrEngineStopped)
	req.Equal(StateDisconnected, c.session.State())
}

func TestRooms_Are_Started_On_First_Use(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	req.Zero(h.orchestrator.Rooms())

	h.join("general", "alice")
	h.join("general", "bob")
	h.join("random", "carol")

	req.Equal(2, h.orchestrator.Rooms())
	req.Equal(uint64(2), h.monitoring.GetLatest().Rooms)
}

func TestRoom_Is_Retired_When_Empty_Then_Restarted(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	ctx := context.Background()

	// Given Alice posted in a room, then everybody left
	alice, _ := h.join("general", "alice")
	req.NoError(alice.session.Send(ctx, "still here?", nil))
	next[event.MessagePosted](alice)
	h.join("random", "bob")
	alice.session.Close()

	// Then only the room with somebody in it keeps a worker
	req.Eventually(func() bool { return h.orchestrator.Rooms() == 1 }, eventTimeout, 5*time.Millisecond)
	req.Equal(int64(1), h.monitoring.GetLatest().ActiveRooms)

	// When Carol comes back to the empty room
	carol, history := h.join("general", "carol")

	// Then a new worker serves it with the stored history
	req.Len(history.Messages, 1)
	req.Equal("still here?", history.Messages[0].Content)
	req.Equal(2, h.orchestrator.Rooms())
	req.NoError(carol.session.Send(ctx, "hello", nil))
	req.Equal("hello", next[event.MessagePosted](carol).Message.Content)
	req.Equal(uint64(3), h.monitoring.GetLatest().Rooms)
}

func TestCensored_Message_Stays_Censored_In_Replies(t *testing.T) {
	req := require.New(t)
	moderator, err := moderation.NewModerator([]string{"spam"}, '*', logs.GetLoggerFromLevel(slog.LevelDebug))
	req.NoError(err)
	h := newHarnessWithCensor(t, moderator)
	ctx := context.Background()

	alice, _ := h.join("general", "alice")
	bob, _ := h.join("general", "bob")
	next[event.PresenceChanged](alice)

	// Given Alice posts a message with a censored word
	req.NoError(alice.session.Send(ctx, "free spam for all", nil))
	posted := next[event.MessagePosted](bob).Message
	next[event.MessagePosted](alice)
	req.Equal("free **** for all", posted.Content)

	// When Bob replies to it with another one
	req.NoError(bob.session.Send(ctx, "no spam here please", lo.ToPtr(posted.ID)))

	// Then the reply and its snapshot are both censored
	reply := next[event.MessagePosted](alice).Message
	req.Equal("no **** here please", reply.Content)
	req.Equal(&domain.ReplySnapshot{ID: posted.ID, Author: "alice", Content: "free **** for all"}, reply.Reply)

	// And the stored history holds only the censored text
	history, err := h.orchestrator.History(ctx, "general")
	req.NoError(err)
	req.Equal([]string{"free **** for all", "no **** here please"},
		lo.Map(history, func(m domain.HydratedMessage, _ int) string { return m.Content }))
}
