package e2e

import (
	"chat-room/auth"
	"chat-room/infrastructure/http/server"
	"chat-room/observability"
	"chat-room/repositories"
	"chat-room/runtime"
	"chat-room/runtime/workers"
	"chat-room/services"
	"context"
	"log/slog"
	"net/http/httptest"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// stack is a complete server running in the test process.
type stack struct {
	db           *badger.DB
	messages     *repositories.MessageRepository
	orchestrator *runtime.Orchestrator
	http         *httptest.Server
}

func startStack(log *slog.Logger, dir string) (*stack, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLoggingLevel(badger.ERROR))
	if err != nil {
		return nil, err
	}

	messages := repositories.NewMessageRepository(db, log, nil, time.Hour)
	rooms := repositories.NewRoomRepository(db, log, time.Hour)
	monitoring := observability.NewMonitoringManager(log)
	registry := runtime.NewRegistry()
	sup := workers.NewSupervisor(log).WithRestartDelay(10 * time.Millisecond)
	orchestrator := runtime.NewOrchestrator(log, sup, registry, messages,
		runtime.NewReplyResolver(messages, log), nil, monitoring, 64)
	if err := orchestrator.Start(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	issuer := auth.NewTokenIssuer("e2e-secret-long-enough", time.Hour)
	chatService := services.NewChatService(orchestrator)
	router := server.NewRouter(log, server.Handlers{
		Chat:       server.NewChatServer(log, chatService, 64, time.Second, []string{"*"}),
		Admission:  server.NewAdmissionServer(log, services.NewAdmissionService(rooms, registry, issuer, log)),
		Rooms:      server.NewRoomServer(log, chatService),
		Monitoring: server.NewMonitoringServer(monitoring),
	}, issuer, []string{"*"})

	return &stack{db: db, messages: messages, orchestrator: orchestrator, http: httptest.NewServer(router)}, nil
}

func (s *stack) URL() string {
	return s.http.URL
}

func (s *stack) Close() {
	s.http.Close()
	s.orchestrator.Stop()
	s.messages.Close()
	_ = s.db.Close()
}
