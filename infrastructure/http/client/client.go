// Package client is the Go side of the chat protocol: admission over HTTP, then one websocket per room.
package client

import (
	"bytes"
	"chat-room/domain"
	"chat-room/errors"
	"chat-room/infrastructure/http/protocol"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
)

const DefaultTypingTimeout = 1500 * time.Millisecond

type Client struct {
	log           *slog.Logger
	baseURL       string
	httpClient    *http.Client
	typingTimeout time.Duration
}

// New targets a server such as "http://localhost:8080".
// A zero typingTimeout falls back to DefaultTypingTimeout.
func New(log *slog.Logger, baseURL string, typingTimeout time.Duration) *Client {
	if typingTimeout <= 0 {
		typingTimeout = DefaultTypingTimeout
	}
	return &Client{
		log:           log,
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		typingTimeout: typingTimeout,
	}
}

// Admit asks for a grant. Refusals come back as the matching sentinel errors.
func (c *Client) Admit(ctx context.Context, roomID domain.RoomID, password, username string) (protocol.AdmitResponse, error) {
	body, err := json.Marshal(protocol.AdmitRequest{RoomID: string(roomID), Password: password, Username: username})
	if err != nil {
		return protocol.AdmitResponse{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rooms/join", bytes.NewReader(body))
	if err != nil {
		return protocol.AdmitResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return protocol.AdmitResponse{}, fmt.Errorf("%w: %v", errors.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var failure protocol.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&failure)
		return protocol.AdmitResponse{}, fmt.Errorf("%w: %s", fromStatus(resp.StatusCode), failure.Error)
	}

	var grant protocol.AdmitResponse
	if err := json.NewDecoder(resp.Body).Decode(&grant); err != nil {
		return protocol.AdmitResponse{}, fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}
	return grant, nil
}

func fromStatus(status int) error {
	switch status {
	case http.StatusBadRequest:
		return errors.ErrInvalidRequest
	case http.StatusUnauthorized:
		return errors.ErrWrongPassword
	case http.StatusConflict:
		return errors.ErrUsernameTaken
	default:
		return errors.ErrUnavailable
	}
}

// Connect opens the websocket with the grant and joins its room.
// Server events are delivered on Conn.Events until the connection ends.
func (c *Client) Connect(ctx context.Context, grant protocol.AdmitResponse) (*Conn, error) {
	wsURL, err := c.websocketURL(grant.Token)
	if err != nil {
		return nil, err
	}
	ws, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrUnavailable, err)
	}

	conn := &Conn{
		log:           c.log.With("room", grant.RoomID, "username", grant.Username),
		ws:            ws,
		room:          domain.RoomID(grant.RoomID),
		username:      grant.Username,
		typingTimeout: c.typingTimeout,
		events:        make(chan protocol.ServerEvent, 64),
		done:          make(chan struct{}),
		closing:       make(chan struct{}),
	}
	go conn.readLoop()

	frame, err := protocol.EncodeJoin(conn.room, conn.username)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := conn.write(ctx, frame); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}

func (c *Client) websocketURL(token string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = "/ws"
	u.RawQuery = url.Values{"token": {token}}.Encode()
	return u.String(), nil
}

// Conn is a joined room connection.
type Conn struct {
	log           *slog.Logger
	ws            *websocket.Conn
	room          domain.RoomID
	username      string
	typingTimeout time.Duration

	// mu orders typing frames with the timer that follows them.
	mu          sync.Mutex
	typingTimer *time.Timer
	typingArmed uint64

	events    chan protocol.ServerEvent
	done      chan struct{}
	closing   chan struct{}
	closeOnce sync.Once
	finished  sync.Once
	err       error
}

func (c *Conn) Room() domain.RoomID {
	return c.room
}

func (c *Conn) Username() string {
	return c.username
}

// Events is closed when the connection ends, Err tells why.
func (c *Conn) Events() <-chan protocol.ServerEvent {
	return c.events
}

// Done is closed when the connection ends.
func (c *Conn) Done() <-chan struct{} {
	return c.done
}

func (c *Conn) Err() error {
	<-c.done
	return c.err
}

func (c *Conn) Send(ctx context.Context, content string, replyTo *uuid.UUID) error {
	frame, err := protocol.EncodeSend(c.room, content, replyTo)
	if err != nil {
		return err
	}
	return c.write(ctx, frame)
}

func (c *Conn) Delete(ctx context.Context, messageID uuid.UUID) error {
	frame, err := protocol.EncodeDelete(c.room, messageID)
	if err != nil {
		return err
	}
	return c.write(ctx, frame)
}

// Typing announces a keystroke and (re)arms the local timer.
// When it fires without another keystroke, a stop-typing is sent.
func (c *Conn) Typing(ctx context.Context) error {
	frame, err := protocol.EncodeTyping(c.room, false)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.write(ctx, frame); err != nil {
		return err
	}
	if c.typingTimer != nil {
		c.typingTimer.Stop()
	}
	c.typingArmed++
	armed := c.typingArmed
	c.typingTimer = time.AfterFunc(c.typingTimeout, func() { c.stopTyping(armed) })
	return nil
}

// stopTyping is a no-op when a later keystroke re-armed the timer.
func (c *Conn) stopTyping(armed uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if armed != c.typingArmed || c.typingTimer == nil {
		return
	}
	c.typingTimer = nil

	select {
	case <-c.done:
		return
	default:
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	frame, err := protocol.EncodeTyping(c.room, true)
	if err == nil {
		err = c.write(ctx, frame)
	}
	if err != nil {
		c.log.Debug("Unable to send stop-typing", "error", err)
	}
}

func (c *Conn) Close() error {
	c.closeOnce.Do(func() { close(c.closing) })
	c.mu.Lock()
	if c.typingTimer != nil {
		c.typingTimer.Stop()
		c.typingTimer = nil
	}
	c.mu.Unlock()
	return c.ws.Close(websocket.StatusNormalClosure, "")
}

func (c *Conn) write(ctx context.Context, frame []byte) error {
	return c.ws.Write(ctx, websocket.MessageText, frame)
}

func (c *Conn) readLoop() {
	defer c.finish()
	for {
		var env protocol.Envelope
		if err := wsjson.Read(context.Background(), c.ws, &env); err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure {
				c.err = err
			}
			return
		}
		e, err := protocol.ParseServer(env)
		if err != nil {
			c.log.Warn("Ignoring server frame", "type", env.Type, "error", err)
			continue
		}
		select {
		case c.events <- e:
		case <-c.closing:
			return
		}
	}
}

func (c *Conn) finish() {
	c.finished.Do(func() {
		close(c.events)
		close(c.done)
	})
}
