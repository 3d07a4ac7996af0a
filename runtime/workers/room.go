package workers

import (
	"chat-room/contract"
	"chat-room/domain"
	"chat-room/domain/event"
	"chat-room/errors"
	"chat-room/repositories"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// RoomWorker is the only goroutine allowed to change a room.
// Appends, deletes and presence changes happen here one command at a time,
// so every session of the room sees the broadcasts in the same order.
// The command channel belongs to the orchestrator and survives a restart.
type RoomWorker struct {
	room     domain.RoomID
	commands <-chan domain.Command
	registry contract.IPresence
	messages repositories.IMessageRepository
	resolver contract.IReplyResolver
	censor   contract.Censor
	monitor  contract.IMonitor
	retire   func() bool
	log      *slog.Logger
}

func NewRoomWorker(room domain.RoomID, commands <-chan domain.Command,
	registry contract.IPresence, messages repositories.IMessageRepository,
	resolver contract.IReplyResolver, censor contract.Censor, monitor contract.IMonitor,
	log *slog.Logger) *RoomWorker {
	return &RoomWorker{
		room:     room,
		commands: commands,
		registry: registry,
		messages: messages,
		resolver: resolver,
		censor:   censor,
		monitor:  monitor,
		log:      log.With("room", room),
	}
}

// WithRetire lets the worker return once its room is empty and retire agrees.
func (w *RoomWorker) WithRetire(retire func() bool) *RoomWorker {
	w.retire = retire
	return w
}

func (w *RoomWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping room worker")
			return ctx.Err()
		case cmd, ok := <-w.commands:
			if !ok {
				return nil
			}
			w.handle(ctx, cmd)
			if w.idle() && w.retire() {
				return nil
			}
		}
	}
}

// idle is true when nobody is present and nothing is queued.
func (w *RoomWorker) idle() bool {
	return w.retire != nil && len(w.commands) == 0 && len(w.registry.ListUsers(w.room)) == 0
}

func (w *RoomWorker) handle(ctx context.Context, cmd domain.Command) {
	switch c := cmd.(type) {
	case domain.JoinCommand:
		w.join(ctx, c)
	case domain.SendMessageCommand:
		w.send(ctx, c)
	case domain.DeleteMessageCommand:
		w.delete(ctx, c)
	case domain.TypingCommand:
		w.typing(ctx, c)
	case domain.LeaveCommand:
		w.leave(ctx, c)
	default:
		w.log.Warn(fmt.Sprintf("Unknown command %T", cmd))
	}
}

// join replays the history to the newcomer before anybody learns about it.
func (w *RoomWorker) join(ctx context.Context, cmd domain.JoinCommand) {
	sink := w.registry.SinkFor(cmd.Session)
	if sink == nil {
		w.log.Debug("Dropping join of a closed session", "session", cmd.Session)
		return
	}
	if attachment, ok := w.registry.Attachment(w.room, cmd.Session); ok && attachment.Username != cmd.Username {
		w.reject(ctx, cmd.Session, errors.ErrAlreadyJoined)
		return
	}
	history, err := w.messages.History(w.room)
	if err != nil {
		w.log.Error("Unable to read history", "session", cmd.Session, "error", err)
		w.reject(ctx, cmd.Session, err)
		return
	}
	messages := make([]domain.HydratedMessage, 0, len(history))
	for _, message := range history {
		messages = append(messages, w.resolver.Hydrate(message))
	}
	w.deliver(ctx, sink, event.HistoryDelivered{Room: w.room, Messages: messages})

	w.registry.Attach(w.room, cmd.Session, cmd.Username)
	w.registry.AddUser(w.room, cmd.Username)
	w.broadcastPresence(ctx)
}

func (w *RoomWorker) send(ctx context.Context, cmd domain.SendMessageCommand) {
	attachment, ok := w.attachment(ctx, cmd.Session)
	if !ok {
		return
	}
	replyTo, err := w.checkReply(cmd.ReplyTo)
	if err != nil {
		w.log.Error("Unable to check reply target", "session", cmd.Session, "error", err)
		w.reject(ctx, cmd.Session, err)
		return
	}
	content := cmd.Content
	if w.censor != nil {
		content = w.censor.Censor(content)
	}
	message, err := w.messages.Append(w.room, attachment.Username, content, replyTo)
	if err != nil {
		w.log.Error("Unable to append message", "session", cmd.Session, "error", err)
		w.reject(ctx, cmd.Session, err)
		return
	}
	w.monitor.MessagePosted()
	w.broadcast(ctx, "", event.MessagePosted{Room: w.room, Message: w.resolver.Hydrate(message)})
}

// checkReply drops a reference to a message that is not in this room.
func (w *RoomWorker) checkReply(replyTo *uuid.UUID) (*uuid.UUID, error) {
	if replyTo == nil {
		return nil, nil
	}
	_, err := w.messages.Get(w.room, *replyTo)
	switch {
	case err == nil:
		return replyTo, nil
	case stderrors.Is(err, errors.ErrMessageNotFound):
		w.log.Debug("Reply target not found, sending without reply", "reply_to", *replyTo)
		return nil, nil
	default:
		return nil, err
	}
}

func (w *RoomWorker) delete(ctx context.Context, cmd domain.DeleteMessageCommand) {
	attachment, ok := w.attachment(ctx, cmd.Session)
	if !ok {
		return
	}
	err := w.messages.Delete(w.room, cmd.MessageID, attachment.Username)
	if err != nil {
		if !stderrors.Is(err, errors.ErrForbidden) && !stderrors.Is(err, errors.ErrMessageNotFound) {
			w.log.Error("Unable to delete message", "message_id", cmd.MessageID, "error", err)
		}
		w.reject(ctx, cmd.Session, err)
		return
	}
	w.monitor.MessageDeleted()
	w.broadcast(ctx, "", event.MessageDeleted{Room: w.room, MessageID: cmd.MessageID})
}

// typing is relayed to everybody but the typist, it is never stored.
func (w *RoomWorker) typing(ctx context.Context, cmd domain.TypingCommand) {
	attachment, ok := w.attachment(ctx, cmd.Session)
	if !ok {
		return
	}
	w.registry.SetTyping(w.room, cmd.Session, !cmd.Stopped)
	if cmd.Stopped {
		w.broadcast(ctx, cmd.Session, event.UserStoppedTyping{Room: w.room, Username: attachment.Username})
		return
	}
	w.broadcast(ctx, cmd.Session, event.UserTyping{Room: w.room, Username: attachment.Username})
}

// leave tells the others the session stopped typing if it was, then sends one presence update.
// The username stays present while another session still carries it.
func (w *RoomWorker) leave(ctx context.Context, cmd domain.LeaveCommand) {
	attachment, ok := w.registry.Detach(w.room, cmd.Session)
	if !ok {
		return
	}
	if attachment.Typing {
		w.broadcast(ctx, cmd.Session, event.UserStoppedTyping{Room: w.room, Username: attachment.Username})
	}
	if !w.registry.IsAttached(w.room, attachment.Username) {
		w.registry.RemoveUser(w.room, attachment.Username)
	}
	w.broadcastPresence(ctx)
}

func (w *RoomWorker) attachment(ctx context.Context, sessionID domain.SessionID) (contract.Attachment, bool) {
	attachment, ok := w.registry.Attachment(w.room, sessionID)
	if !ok {
		w.reject(ctx, sessionID, errors.ErrNotJoined)
	}
	return attachment, ok
}

func (w *RoomWorker) broadcastPresence(ctx context.Context) {
	w.broadcast(ctx, "", event.PresenceChanged{Room: w.room, Users: w.registry.ListUsers(w.room)})
}

func (w *RoomWorker) broadcast(ctx context.Context, except domain.SessionID, e event.DomainEvent) {
	for _, sink := range w.registry.SinksForRoom(w.room, except) {
		w.deliver(ctx, sink, e)
	}
}

// reject answers the requester only.
func (w *RoomWorker) reject(ctx context.Context, sessionID domain.SessionID, reason error) {
	w.monitor.CommandRejected()
	sink := w.registry.SinkFor(sessionID)
	if sink == nil {
		return
	}
	w.deliver(ctx, sink, event.CommandRejected{Room: w.room, Reason: reason})
}

func (w *RoomWorker) deliver(ctx context.Context, sink contract.EventSink, e event.DomainEvent) {
	if err := sink.Consume(ctx, e); err != nil {
		w.monitor.DeliveryDropped()
		w.log.Debug("Event not delivered", "event", fmt.Sprintf("%T", e), "error", err)
	}
}
