package services

import (
	"chat-room/contract"
	"chat-room/domain"
	"chat-room/runtime"
	"context"
)

type IChatService interface {
	OpenSession(sink contract.EventSink) *runtime.Session
	Presence(roomID domain.RoomID) []string
	History(ctx context.Context, roomID domain.RoomID) ([]domain.HydratedMessage, error)
}

type ChatService struct {
	orchestrator *runtime.Orchestrator
}

func NewChatService(o *runtime.Orchestrator) *ChatService {
	return &ChatService{orchestrator: o}
}

func (s *ChatService) OpenSession(sink contract.EventSink) *runtime.Session {
	return s.orchestrator.OpenSession(sink)
}

func (s *ChatService) Presence(roomID domain.RoomID) []string {
	return s.orchestrator.Presence(roomID)
}

func (s *ChatService) History(ctx context.Context, roomID domain.RoomID) ([]domain.HydratedMessage, error) {
	return s.orchestrator.History(ctx, roomID)
}
