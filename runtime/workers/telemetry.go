package workers

import (
	"chat-room/observability"
	"context"
	"log/slog"
	"time"
)

// StatsRefresher recomputes the monitoring snapshot.
type StatsRefresher interface {
	Refresh() observability.MonitoringStats
}

// TelemetryWorker refreshes the monitoring snapshot and logs it on every tick.
type TelemetryWorker struct {
	log            *slog.Logger
	metricInterval time.Duration
	monitoring     StatsRefresher
}

func NewTelemetryWorker(log *slog.Logger, metricInterval time.Duration, monitoring StatsRefresher) *TelemetryWorker {
	return &TelemetryWorker{
		log:            log,
		metricInterval: metricInterval,
		monitoring:     monitoring,
	}
}

func (w *TelemetryWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping telemetry")
			return ctx.Err()
		case <-ticker.C:
			stats := w.monitoring.Refresh()
			w.log.Info("Telemetry",
				"sessions", stats.ActiveSessions,
				"rooms", stats.Rooms,
				"messages_posted", stats.MessagesPosted,
				"messages_deleted", stats.MessagesDeleted,
				"rejected", stats.CommandsRejected,
				"lost", stats.DeliveriesLost,
				"mem_mb", stats.AllocMemMb,
				"cpu", stats.CPUPercent,
				"goroutines", stats.NumGoroutines,
			)
		}
	}
}
