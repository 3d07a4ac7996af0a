package server

import (
	"chat-room/observability"
	"net/http"
)

type StatsProvider interface {
	GetLatest() observability.MonitoringStats
}

type MonitoringServer struct {
	stats StatsProvider
}

func NewMonitoringServer(stats StatsProvider) *MonitoringServer {
	return &MonitoringServer{stats: stats}
}

func (s *MonitoringServer) Stats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.stats.GetLatest())
}
