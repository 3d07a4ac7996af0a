package observability

import (
	"log/slog"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/process"
)

// MonitoringStats is the snapshot served on the debug endpoint
type MonitoringStats struct {
	// --- CHAT METRICS ---
	ActiveSessions   int64  `json:"active_sessions"`
	SessionsOpened   uint64 `json:"sessions_opened"`
	Rooms            uint64 `json:"rooms"`
	ActiveRooms      int64  `json:"active_rooms"`
	MessagesPosted   uint64 `json:"messages_posted"`
	MessagesDeleted  uint64 `json:"messages_deleted"`
	CommandsRejected uint64 `json:"commands_rejected"`
	DeliveriesLost   uint64 `json:"deliveries_lost"`

	// --- SYSTEM METRICS ---
	AllocMemMb    uint64    `json:"alloc_mem_mb"`
	NumGC         uint32    `json:"num_gc"`
	NumGoroutines int       `json:"num_goroutines"`
	CPUPercent    float64   `json:"cpu_percent"`
	RAMPercent    float32   `json:"ram_percent"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// MonitoringManager counts what happens in the engine.
// Counters are atomic, the system part of the snapshot is refreshed by Refresh.
// A nil manager ignores every call.
type MonitoringManager struct {
	log         *slog.Logger
	mu          sync.RWMutex
	latestStats MonitoringStats
	process     *process.Process

	activeSessions   atomic.Int64
	sessionsOpened   atomic.Uint64
	rooms            atomic.Uint64
	activeRooms      atomic.Int64
	messagesPosted   atomic.Uint64
	messagesDeleted  atomic.Uint64
	commandsRejected atomic.Uint64
	deliveriesLost   atomic.Uint64
}

func NewMonitoringManager(log *slog.Logger) *MonitoringManager {
	mm := &MonitoringManager{log: log}
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Debug("Process metrics unavailable", "error", err)
	} else {
		mm.process = p
	}
	return mm
}

func (mm *MonitoringManager) SessionOpened() {
	if mm == nil {
		return
	}
	mm.sessionsOpened.Add(1)
	mm.activeSessions.Add(1)
}

func (mm *MonitoringManager) SessionClosed() {
	if mm == nil {
		return
	}
	mm.activeSessions.Add(-1)
}

func (mm *MonitoringManager) RoomStarted() {
	if mm == nil {
		return
	}
	mm.rooms.Add(1)
	mm.activeRooms.Add(1)
}

func (mm *MonitoringManager) RoomRetired() {
	if mm == nil {
		return
	}
	mm.activeRooms.Add(-1)
}

func (mm *MonitoringManager) MessagePosted() {
	if mm == nil {
		return
	}
	mm.messagesPosted.Add(1)
}

func (mm *MonitoringManager) MessageDeleted() {
	if mm == nil {
		return
	}
	mm.messagesDeleted.Add(1)
}

func (mm *MonitoringManager) CommandRejected() {
	if mm == nil {
		return
	}
	mm.commandsRejected.Add(1)
}

func (mm *MonitoringManager) DeliveryDropped() {
	if mm == nil {
		return
	}
	mm.deliveriesLost.Add(1)
}

// Refresh recomputes the snapshot: counters, Go runtime and process usage.
func (mm *MonitoringManager) Refresh() MonitoringStats {
	if mm == nil {
		return MonitoringStats{}
	}
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	stats := mm.counters()
	stats.AllocMemMb = m.Alloc / 1024 / 1024
	stats.NumGC = m.NumGC
	stats.NumGoroutines = runtime.NumGoroutine()
	stats.UpdatedAt = time.Now().UTC()

	if mm.process != nil {
		if cpu, err := mm.process.CPUPercent(); err == nil {
			stats.CPUPercent = cpu
		} else {
			mm.log.Debug("Error while finding process cpu usage", "error", err)
		}
		if ram, err := mm.process.MemoryPercent(); err == nil {
			stats.RAMPercent = ram
		} else {
			mm.log.Debug("Error while finding process ram usage", "error", err)
		}
	}

	mm.mu.Lock()
	mm.latestStats = stats
	mm.mu.Unlock()
	return stats
}

// GetLatest returns the live counters on top of the last refreshed system metrics.
func (mm *MonitoringManager) GetLatest() MonitoringStats {
	if mm == nil {
		return MonitoringStats{}
	}
	mm.mu.RLock()
	stats := mm.latestStats
	mm.mu.RUnlock()

	counters := mm.counters()
	stats.ActiveSessions = counters.ActiveSessions
	stats.SessionsOpened = counters.SessionsOpened
	stats.Rooms = counters.Rooms
	stats.ActiveRooms = counters.ActiveRooms
	stats.MessagesPosted = counters.MessagesPosted
	stats.MessagesDeleted = counters.MessagesDeleted
	stats.CommandsRejected = counters.CommandsRejected
	stats.DeliveriesLost = counters.DeliveriesLost
	return stats
}

func (mm *MonitoringManager) counters() MonitoringStats {
	return MonitoringStats{
		ActiveSessions:   mm.activeSessions.Load(),
		SessionsOpened:   mm.sessionsOpened.Load(),
		Rooms:            mm.rooms.Load(),
		ActiveRooms:      mm.activeRooms.Load(),
		MessagesPosted:   mm.messagesPosted.Load(),
		MessagesDeleted:  mm.messagesDeleted.Load(),
		CommandsRejected: mm.commandsRejected.Load(),
		DeliveriesLost:   mm.deliveriesLost.Load(),
	}
}
