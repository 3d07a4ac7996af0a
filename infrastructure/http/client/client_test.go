package client

import (
	"chat-room/errors"
	"chat-room/infrastructure/http/protocol"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestAdmit_Returns_Grant(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in protocol.AdmitRequest
		_ = json.NewDecoder(r.Body).Decode(&in)
		_ = json.NewEncoder(w).Encode(protocol.AdmitResponse{
			RoomID: in.RoomID, Username: in.Username, Token: "token", Created: true,
		})
	}))
	defer srv.Close()

	c := New(logs.GetLoggerFromLevel(slog.LevelDebug), srv.URL, 0)
	grant, err := c.Admit(context.Background(), "general", "secret", "alice")

	req.NoError(err)
	req.Equal("general", grant.RoomID)
	req.Equal("alice", grant.Username)
	req.Equal("token", grant.Token)
	req.True(grant.Created)
}

func TestAdmit_Maps_Refusals(t *testing.T) {
	cases := map[int]error{
		http.StatusBadRequest:          errors.ErrInvalidRequest,
		http.StatusUnauthorized:        errors.ErrWrongPassword,
		http.StatusConflict:            errors.ErrUsernameTaken,
		http.StatusInternalServerError: errors.ErrUnavailable,
	}
	for status, expected := range cases {
		t.Run(http.StatusText(status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
				_ = json.NewEncoder(w).Encode(protocol.ErrorResponse{Error: "refused"})
			}))
			defer srv.Close()

			c := New(logs.GetLoggerFromLevel(slog.LevelDebug), srv.URL, 0)
			_, err := c.Admit(context.Background(), "general", "secret", "alice")

			require.ErrorIs(t, err, expected)
		})
	}
}

// fakeRoom records the frames a client sends and greets it with a presence event.
func fakeRoom(t *testing.T, frames chan<- protocol.ClientMessage) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("token") != "token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.CloseNow()

		ctx := r.Context()
		presence, _ := protocol.Encode(protocol.TypePresence, protocol.PresencePayload{Users: []string{"alice"}})
		if err := conn.Write(ctx, websocket.MessageText, presence); err != nil {
			return
		}
		for {
			_, data, err := conn.Read(ctx)
			if err != nil {
				return
			}
			msg, err := protocol.Decode(data)
			if err != nil {
				t.Errorf("client sent an invalid frame: %v", err)
				return
			}
			frames <- msg
		}
	}))
}

func nextFrame(t *testing.T, frames <-chan protocol.ClientMessage) protocol.ClientMessage {
	t.Helper()
	select {
	case f := <-frames:
		return f
	case <-time.After(2 * time.Second):
		require.FailNow(t, "no frame received")
		return nil
	}
}

func TestConnect_Joins_And_Expires_Typing(t *testing.T) {
	req := require.New(t)
	frames := make(chan protocol.ClientMessage, 16)
	srv := fakeRoom(t, frames)
	defer srv.Close()

	c := New(logs.GetLoggerFromLevel(slog.LevelDebug), srv.URL, 50*time.Millisecond)
	conn, err := c.Connect(context.Background(), protocol.AdmitResponse{RoomID: "general", Username: "alice", Token: "token"})
	req.NoError(err)
	defer conn.Close()

	// Then the grant's binding is joined
	req.Equal(protocol.Join{RoomID: "general", Username: "alice"}, nextFrame(t, frames))

	// And server events are delivered
	select {
	case e := <-conn.Events():
		req.Equal(protocol.Presence{Users: []string{"alice"}}, e)
	case <-time.After(2 * time.Second):
		req.FailNow("no event received")
	}

	// When Alice types once
	req.NoError(conn.Typing(context.Background()))

	// Then a typing is sent, followed by a stop-typing once the timer expires
	req.Equal(protocol.Typing{RoomID: "general"}, nextFrame(t, frames))
	req.Equal(protocol.Typing{RoomID: "general", Stopped: true}, nextFrame(t, frames))
}

func TestTyping_Rearms_Timer(t *testing.T) {
	req := require.New(t)
	frames := make(chan protocol.ClientMessage, 16)
	srv := fakeRoom(t, frames)
	defer srv.Close()

	c := New(logs.GetLoggerFromLevel(slog.LevelDebug), srv.URL, 200*time.Millisecond)
	conn, err := c.Connect(context.Background(), protocol.AdmitResponse{RoomID: "general", Username: "alice", Token: "token"})
	req.NoError(err)
	defer conn.Close()
	nextFrame(t, frames)

	// When Alice keeps typing
	req.NoError(conn.Typing(context.Background()))
	req.NoError(conn.Typing(context.Background()))

	// Then only one stop-typing follows
	req.Equal(protocol.Typing{RoomID: "general"}, nextFrame(t, frames))
	req.Equal(protocol.Typing{RoomID: "general"}, nextFrame(t, frames))
	req.Equal(protocol.Typing{RoomID: "general", Stopped: true}, nextFrame(t, frames))
	select {
	case f := <-frames:
		req.Failf("unexpected frame", "%+v", f)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestTyping_Stale_Timer_Keeps_The_New_One(t *testing.T) {
	req := require.New(t)
	frames := make(chan protocol.ClientMessage, 16)
	srv := fakeRoom(t, frames)
	defer srv.Close()

	c := New(logs.GetLoggerFromLevel(slog.LevelDebug), srv.URL, 200*time.Millisecond)
	conn, err := c.Connect(context.Background(), protocol.AdmitResponse{RoomID: "general", Username: "alice", Token: "token"})
	req.NoError(err)
	defer conn.Close()
	nextFrame(t, frames)

	// Given a first keystroke whose timer is about to fire
	req.NoError(conn.Typing(context.Background()))
	conn.mu.Lock()
	stale := conn.typingArmed
	conn.mu.Unlock()

	// And a second keystroke arriving just before it runs
	req.NoError(conn.Typing(context.Background()))
	req.Equal(protocol.Typing{RoomID: "general"}, nextFrame(t, frames))
	req.Equal(protocol.Typing{RoomID: "general"}, nextFrame(t, frames))

	// When the stale timer callback runs anyway
	conn.stopTyping(stale)

	// Then nothing is sent and the new timer is still held
	conn.mu.Lock()
	req.NotNil(conn.typingTimer)
	conn.mu.Unlock()
	select {
	case f := <-frames:
		req.Failf("unexpected frame", "%+v", f)
	case <-time.After(50 * time.Millisecond):
	}

	// And the new timer still ends the typing
	req.Equal(protocol.Typing{RoomID: "general", Stopped: true}, nextFrame(t, frames))
}
