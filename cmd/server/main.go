package main

import (
	"chat-room/auth"
	"chat-room/contract"
	"chat-room/infrastructure/http/server"
	"chat-room/moderation"
	"chat-room/observability"
	"chat-room/repositories"
	"chat-room/runtime"
	"chat-room/runtime/workers"
	"chat-room/services"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/database"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires every component and owns the shutdown sequence,
// so deferred cleanups run before the process exits.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	environ, err := env.EnvironToEnvSet(os.Environ())
	if err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	config, err := loadConfig(environ)
	if err != nil {
		return exitConfig, err
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	censor, err := buildCensor(config, logger)
	if err != nil {
		return exitConfig, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Database (BadgerDB)
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	if config.DebugPort != 0 {
		endpoint := "/inspect"
		logger.Info("Debug Badger inspector available", "url", fmt.Sprintf("http://localhost:%d%s", config.DebugPort, endpoint))
		database.StartDebugServer(db, config.DebugPort, endpoint, observability.InspectMapper)
	}

	// 3. Storage, supervision & orchestration
	messageRepository := repositories.NewMessageRepository(db, logger, config.LimitMessages, config.Retention)
	defer messageRepository.Close()
	roomRepository := repositories.NewRoomRepository(db, logger, config.Retention)

	monitoring := observability.NewMonitoringManager(logger)
	registry := runtime.NewRegistry()
	sup := workers.NewSupervisor(logger).WithRestartDelay(config.RestartInterval)
	sup.Add(
		workers.NewBadgerGCWorker(logger, db, config.GCInterval),
		workers.NewTelemetryWorker(logger, config.MetricInterval, monitoring),
	)

	orchestrator := runtime.NewOrchestrator(
		logger, sup, registry, messageRepository,
		runtime.NewReplyResolver(messageRepository, logger),
		censor, monitoring, config.RoomBufferSize,
	)
	if err := orchestrator.Start(ctx); err != nil {
		return exitRuntime, fmt.Errorf("orchestrator failed to start: %w", err)
	}

	// 4. HTTP & WebSocket
	issuer := auth.NewTokenIssuer(config.AuthSecret, config.AuthTokenDuration)
	chatService := services.NewChatService(orchestrator)
	admissionService := services.NewAdmissionService(roomRepository, registry, issuer, logger)
	router := server.NewRouter(logger, server.Handlers{
		Chat:       server.NewChatServer(logger, chatService, config.ConnectionBufferSize, config.WriteTimeout, config.Origins()),
		Admission:  server.NewAdmissionServer(logger, admissionService),
		Rooms:      server.NewRoomServer(logger, chatService),
		Monitoring: server.NewMonitoringServer(monitoring),
	}, issuer, config.Origins())

	srv := &http.Server{
		Addr:              config.Address(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", "address", config.Address(), "at", time.Now().UTC())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 5. Wait for Stop or Error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errChan:
		orchestrator.Stop()
		return exitRuntime, err
	}

	// 6. Graceful shutdown: stop accepting, then drain the rooms
	logger.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP shutdown incomplete", "error", err)
	}
	orchestrator.Stop()
	logger.Info("Program stopped cleanly")

	return exitOK, nil
}

// buildCensor returns a nil interface when moderation is disabled.
func buildCensor(config Config, logger *slog.Logger) (contract.Censor, error) {
	if config.ModerationWordsDir == "" {
		return nil, nil
	}
	char, err := config.CharacterRune()
	if err != nil {
		return nil, err
	}
	data, err := moderation.NewCensoredLoader(os.DirFS(config.ModerationWordsDir)).LoadAll(".")
	if err != nil {
		return nil, fmt.Errorf("unable to load censored words: %w", err)
	}
	moderator, err := moderation.NewModerator(data.Words, char, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("Moderation enabled", "languages", data.Languages, "words", len(data.Words))
	return moderator, nil
}

func buildBadgerOpts(config Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)

	if logger.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG)
	} else {
		options = options.WithLoggingLevel(badger.WARNING)
	}
	return options
}
