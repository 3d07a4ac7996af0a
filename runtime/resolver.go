package runtime

import (
	"chat-room/domain"
	"chat-room/errors"
	"chat-room/repositories"
	stderrors "errors"
	"log/slog"

	"github.com/google/uuid"
)

// ReplyResolver reads reply targets straight from the message log on every call.
// Nothing is cached: a deleted target resolves to nil from then on.
type ReplyResolver struct {
	messages repositories.IMessageRepository
	log      *slog.Logger
}

func NewReplyResolver(messages repositories.IMessageRepository, log *slog.Logger) *ReplyResolver {
	return &ReplyResolver{messages: messages, log: log}
}

// Resolve returns nil when there is nothing to reply to, or when the target is gone.
func (r *ReplyResolver) Resolve(roomID domain.RoomID, replyTo *uuid.UUID) *domain.ReplySnapshot {
	if replyTo == nil {
		return nil
	}
	target, err := r.messages.Get(roomID, *replyTo)
	if err != nil {
		if !stderrors.Is(err, errors.ErrMessageNotFound) {
			r.log.Warn("Unable to resolve reply", "room", roomID, "reply_to", *replyTo, "error", err)
		}
		return nil
	}
	return &domain.ReplySnapshot{
		ID:      target.ID,
		Author:  target.Author,
		Content: target.Content,
	}
}

func (r *ReplyResolver) Hydrate(message domain.Message) domain.HydratedMessage {
	if !message.IsReply() {
		return domain.HydratedMessage{Message: message}
	}
	return domain.HydratedMessage{
		Message: message,
		Reply:   r.Resolve(message.Room, message.ReplyTo),
	}
}
