package server

import (
	"chat-room/auth"
	"chat-room/domain"
	"chat-room/errors"
	"chat-room/infrastructure/http/protocol"
	"chat-room/runtime"
	"chat-room/services"
	"chat-room/sink"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
)

const readLimit = 64 * 1024

// ChatServer upgrades admitted requests to websockets and bridges them to sessions.
type ChatServer struct {
	log                  *slog.Logger
	chatService          services.IChatService
	connectionBufferSize int
	writeTimeout         time.Duration
	originPatterns       []string
}

func NewChatServer(
	log *slog.Logger,
	chatService services.IChatService,
	connectionBufferSize int,
	writeTimeout time.Duration,
	originPatterns []string,
) *ChatServer {
	return &ChatServer{
		log:                  log,
		chatService:          chatService,
		connectionBufferSize: connectionBufferSize,
		writeTimeout:         writeTimeout,
		originPatterns:       originPatterns,
	}
}

// Connect serves one websocket for its whole life.
// The request must carry a grant, the join frame must match it.
func (s *ChatServer) Connect(w http.ResponseWriter, r *http.Request) {
	grant, ok := auth.GrantFromContext(r.Context())
	if !ok {
		http.Error(w, errors.ErrInvalidToken.Error(), http.StatusUnauthorized)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.originPatterns,
	})
	if err != nil {
		s.log.Error("WebSocket upgrade failed", "error", err)
		return
	}
	conn.SetReadLimit(readLimit)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	var overflowed atomic.Bool
	queue := sink.NewSessionSink(s.log, s.connectionBufferSize, func() {
		overflowed.Store(true)
		cancel()
	})
	session := s.chatService.OpenSession(queue)
	log := s.log.With("session_id", session.ID(), "room", grant.Room, "username", grant.Username)
	log.Info("Client connected")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer cancel()
		s.writeLoop(ctx, conn, queue, log)
	}()

	s.readLoop(ctx, conn, session, grant, log)
	cancel()
	wg.Wait()

	session.Close()
	queue.Close()

	if overflowed.Load() {
		log.Warn("Client disconnected, delivery queue overflowed")
		_ = conn.Close(websocket.StatusPolicyViolation, errors.ErrSlowConsumer.Error())
		return
	}
	log.Info("Client disconnected")
	_ = conn.Close(websocket.StatusNormalClosure, "")
}

func (s *ChatServer) readLoop(ctx context.Context, conn *websocket.Conn, session *runtime.Session, grant *auth.GrantClaims, log *slog.Logger) {
	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			if status := websocket.CloseStatus(err); status != -1 {
				log.Debug("Connection closed by client", "status", status)
			} else if ctx.Err() == nil {
				log.Debug("Read failed", "error", err)
			}
			return
		}
		if typ != websocket.MessageText {
			s.reportFailure(ctx, conn, errors.ErrInvalidPayload, log)
			continue
		}

		msg, err := protocol.Decode(data)
		if err != nil {
			// A bad frame is reported, the connection stays open
			s.reportFailure(ctx, conn, err, log)
			continue
		}
		if err := s.apply(ctx, session, grant, msg); err != nil {
			s.reportFailure(ctx, conn, err, log)
		}
	}
}

func (s *ChatServer) apply(ctx context.Context, session *runtime.Session, grant *auth.GrantClaims, msg protocol.ClientMessage) error {
	switch m := msg.(type) {
	case protocol.Join:
		if m.RoomID != grant.RoomID() || m.Username != grant.Username {
			return errors.ErrGrantMismatch
		}
		return session.Join(ctx, m.RoomID, m.Username)
	case protocol.Send:
		if err := checkRoom(session, m.RoomID); err != nil {
			return err
		}
		return session.Send(ctx, m.Content, m.ReplyTo)
	case protocol.Delete:
		if err := checkRoom(session, m.RoomID); err != nil {
			return err
		}
		return session.Delete(ctx, m.MessageID)
	case protocol.Typing:
		if err := checkRoom(session, m.RoomID); err != nil {
			return err
		}
		return session.Typing(ctx, m.Stopped)
	default:
		return errors.ErrInvalidPayload
	}
}

// checkRoom refuses intents naming a room other than the bound one.
func checkRoom(session *runtime.Session, roomID domain.RoomID) error {
	if roomID == "" || session.State() != runtime.StateJoined {
		return nil
	}
	if roomID != session.Room() {
		return errors.ErrNotJoined
	}
	return nil
}

func (s *ChatServer) writeLoop(ctx context.Context, conn *websocket.Conn, queue *sink.SessionSink, log *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-queue.Done():
			return
		case e := <-queue.Events():
			frame, err := protocol.FromDomainEvent(e)
			if err != nil {
				log.Error("Unable to encode event", "event", fmt.Sprintf("%T", e), "error", err)
				continue
			}
			if err := s.write(ctx, conn, frame); err != nil {
				if ctx.Err() == nil {
					log.Warn("Write failed, closing connection", "error", err)
				}
				return
			}
		}
	}
}

func (s *ChatServer) reportFailure(ctx context.Context, conn *websocket.Conn, err error, log *slog.Logger) {
	if ctx.Err() != nil || stderrors.Is(err, context.Canceled) {
		return
	}
	log.Debug("Intent refused", "code", errors.Code(err), "error", err)
	frame, encErr := protocol.EncodeError(err)
	if encErr != nil {
		log.Error("Unable to encode error", "error", encErr)
		return
	}
	if wErr := s.write(ctx, conn, frame); wErr != nil {
		log.Debug("Unable to report failure", "error", wErr)
	}
}

func (s *ChatServer) write(ctx context.Context, conn *websocket.Conn, frame []byte) error {
	writeCtx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()
	return conn.Write(writeCtx, websocket.MessageText, frame)
}
