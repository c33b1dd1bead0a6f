// Package health provides health check endpoint handler.
package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	tournament "github.com/festy23/tournament_platform/internal/tournament/model"
)

// StatsSource reports registry counters.
type StatsSource interface {
	Stats() tournament.Stats
}

// UserCounter reports the number of registered users.
type UserCounter interface {
	Count() int
}

// EventHub reports the state of the realtime broadcaster.
type EventHub interface {
	Running() bool
	ClientCount() int
}

// Handler handles health check requests.
type Handler struct {
	registry StatsSource
	users    UserCounter
	hub      EventHub
	started  time.Time
	now      func() time.Time
	logger   *zap.SugaredLogger
}

// New creates a new health handler instance.
func New(registry StatsSource, users UserCounter, hub EventHub, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		registry: registry,
		users:    users,
		hub:      hub,
		started:  time.Now(),
		now:      time.Now,
		logger:   logger,
	}
}

// Response represents health check response.
type Response struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Uptime      string    `json:"uptime,omitempty"`
	Tournaments int       `json:"tournaments"`
	Matches     int       `json:"matches"`
	Users       int       `json:"users"`
	Connections int       `json:"connections"`
}

// Check handles GET /health request.
func (h *Handler) Check(c *gin.Context) {
	now := h.now()

	if !h.hub.Running() {
		h.logger.Warnw("health check failed", "reason", "event hub stopped")
		c.JSON(http.StatusServiceUnavailable, Response{
			Status:    "unhealthy",
			Timestamp: now,
		})
		return
	}

	stats := h.registry.Stats()
	c.JSON(http.StatusOK, Response{
		Status:      "ok",
		Timestamp:   now,
		Uptime:      now.Sub(h.started).Truncate(time.Second).String(),
		Tournaments: stats.Tournaments,
		Matches:     stats.Matches,
		Users:       h.users.Count(),
		Connections: h.hub.ClientCount(),
	})
}
