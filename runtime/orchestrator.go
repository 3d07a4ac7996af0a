// Package runtime wires sessions to the room workers.
// It routes intents and serves read-only views without containing room rules itself.
package runtime

import (
	"chat-room/contract"
	"chat-room/domain"
	"chat-room/errors"
	"chat-room/repositories"
	"chat-room/runtime/workers"
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// roomQueue is the command channel of a running room worker.
// inflight counts the dispatches blocked on a full channel.
type roomQueue struct {
	commands chan domain.Command
	inflight int
}

type Orchestrator struct {
	mu             sync.Mutex
	log            *slog.Logger
	supervisor     contract.ISupervisor
	registry       contract.IPresence
	messages       repositories.IMessageRepository
	resolver       contract.IReplyResolver
	censor         contract.Censor
	monitor        contract.IMonitor
	roomBufferSize int
	rooms          map[domain.RoomID]*roomQueue

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func NewOrchestrator(log *slog.Logger, supervisor contract.ISupervisor,
	registry contract.IPresence, messages repositories.IMessageRepository,
	resolver contract.IReplyResolver, censor contract.Censor, monitor contract.IMonitor,
	roomBufferSize int) *Orchestrator {
	return &Orchestrator{
		log:            log,
		supervisor:     supervisor,
		registry:       registry,
		messages:       messages,
		resolver:       resolver,
		censor:         censor,
		monitor:        monitor,
		roomBufferSize: roomBufferSize,
		rooms:          make(map[domain.RoomID]*roomQueue),
	}
}

// Add registers background workers, they start with the orchestrator.
func (o *Orchestrator) Add(worker ...contract.Worker) {
	o.supervisor.Add(worker...)
}

// Start launches the supervisor and returns immediately.
// Room workers are started lazily, on the first command addressed to their room.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.ctx != nil {
		return fmt.Errorf("orchestrator already started")
	}
	o.ctx, o.cancel = context.WithCancel(ctx)
	o.done = make(chan struct{})

	o.log.Info("Starting orchestrator and all supervised workers")
	go func() {
		defer close(o.done)
		o.supervisor.Run(o.ctx)
	}()
	return nil
}

// Stop cancels every room worker and waits for them to return.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	cancel, done := o.cancel, o.done
	o.mu.Unlock()
	if cancel == nil {
		return
	}
	o.log.Info("Requesting orchestrator shutdown")
	cancel()
	o.supervisor.Stop()
	<-done
	o.log.Debug("Orchestrator stopped")
}

// OpenSession registers a new connection, the session starts disconnected from any room.
func (o *Orchestrator) OpenSession(sink contract.EventSink) *Session {
	sessionID := domain.SessionID(uuid.NewString())
	o.registry.Connect(sessionID, sink)
	o.monitor.SessionOpened()
	o.log.Debug("Session opened", "session", sessionID)
	return newSession(sessionID, o)
}

// Presence returns a copy of the usernames online in a room.
func (o *Orchestrator) Presence(roomID domain.RoomID) []string {
	return o.registry.ListUsers(roomID)
}

// History reads a room's messages with their reply snapshots, without going through the room worker.
func (o *Orchestrator) History(ctx context.Context, roomID domain.RoomID) ([]domain.HydratedMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	messages, err := o.messages.History(roomID)
	if err != nil {
		return nil, err
	}
	return lo.Map(messages, func(message domain.Message, _ int) domain.HydratedMessage {
		return o.resolver.Hydrate(message)
	}), nil
}

// Rooms counts the rooms that have a running worker.
func (o *Orchestrator) Rooms() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.rooms)
}

// dispatch hands a command to its room worker.
// It waits for room in the worker's queue, unless the caller or the engine gives up first.
func (o *Orchestrator) dispatch(ctx context.Context, cmd domain.Command) error {
	queue, engineCtx, err := o.enqueue(cmd)
	if err != nil || queue == nil {
		return err
	}
	defer o.release(queue)
	select {
	case queue.commands <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-engineCtx.Done():
		return errors.ErrEngineStopped
	}
}

// closeSession forgets the sink right away and queues the leave of a bound session.
func (o *Orchestrator) closeSession(sessionID domain.SessionID, roomID domain.RoomID, bound bool) {
	o.registry.Disconnect(sessionID)
	o.monitor.SessionClosed()
	o.log.Debug("Session closed", "session", sessionID)
	if !bound {
		return
	}
	engineCtx := o.engineContext()
	if engineCtx == nil {
		return
	}
	leave := domain.LeaveCommand{Target: domain.Target{Room: roomID, Session: sessionID}}
	if err := o.dispatch(engineCtx, leave); err != nil {
		o.log.Debug("Leave not dispatched", "session", sessionID, "room", roomID, "error", err)
	}
}

func (o *Orchestrator) engineContext() context.Context {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.ctx
}

// enqueue queues cmd on its room, starting the worker when there is none.
// When the queue is full it returns the queue held for a blocking send, to be released afterwards;
// a held queue cannot be retired.
func (o *Orchestrator) enqueue(cmd domain.Command) (*roomQueue, context.Context, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.ctx == nil || o.ctx.Err() != nil {
		return nil, nil, errors.ErrEngineStopped
	}
	roomID := cmd.RoomID()
	queue, ok := o.rooms[roomID]
	if !ok {
		queue = &roomQueue{commands: make(chan domain.Command, o.roomBufferSize)}
		o.rooms[roomID] = queue
		worker := workers.NewRoomWorker(roomID, queue.commands, o.registry, o.messages,
			o.resolver, o.censor, o.monitor, o.log).
			WithRetire(func() bool { return o.retire(roomID, queue) })
		o.supervisor.Start(o.ctx, worker)
		o.monitor.RoomStarted()
		o.log.Debug("Room worker started", "room", roomID)
	}
	select {
	case queue.commands <- cmd:
		return nil, o.ctx, nil
	default:
	}
	queue.inflight++
	return queue, o.ctx, nil
}

func (o *Orchestrator) release(queue *roomQueue) {
	o.mu.Lock()
	defer o.mu.Unlock()
	queue.inflight--
}

// retire forgets an idle room so its worker can return.
// It refuses while a command is queued or a sender waits on a full queue,
// the worker then tries again after its next command. The next dispatch starts a new worker.
func (o *Orchestrator) retire(roomID domain.RoomID, queue *roomQueue) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.rooms[roomID] != queue || queue.inflight > 0 || len(queue.commands) > 0 {
		return false
	}
	delete(o.rooms, roomID)
	o.monitor.RoomRetired()
	o.log.Debug("Room worker retired", "room", roomID)
	return true
}
