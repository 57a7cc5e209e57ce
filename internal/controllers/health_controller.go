package controllers

import (
	"fmt"
	"net/http"
	"time"
	"warboard/internal/events"
	"warboard/internal/session"
)

type HealthController struct {
	sessions  session.ManagerInterface
	hub       events.HubInterface
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Sessions      int     `json:"sessions"`
	Subscribers   int     `json:"subscribers"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Sessions:      hc.sessions.Count(),
		Subscribers:   hc.hub.Subscribers(),
	})
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(sessions session.ManagerInterface, hub events.HubInterface) *HealthController {
	return &HealthController{
		sessions:  sessions,
		hub:       hub,
		startTime: time.Now(),
	}
}
