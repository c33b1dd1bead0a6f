package ws

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Handler upgrades HTTP requests to websocket subscriptions.
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewHandler creates a websocket handler bound to hub.
func NewHandler(hub *Hub) *Handler {
	h := &Handler{hub: hub}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	if h.hub.cfg.AllowsAnyOrigin() {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	for _, allowed := range h.hub.cfg.AllowedOrigins {
		if allowed == origin || allowed == u.Host {
			return true
		}
	}
	return false
}

// Serve handles GET /ws request. The optional tournament_id query parameter
// limits the stream to one tournament.
func (h *Handler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.hub.logger.Debugw("websocket upgrade failed", "error", err)
		return
	}

	client := NewClient(h.hub, conn, c.Query("tournament_id"))
	if !h.hub.Register(client) {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		_ = conn.Close()
		return
	}

	go client.writePump()
	client.readPump()
}

// RegisterRoutes registers the websocket endpoint.
func RegisterRoutes(r gin.IRouter, hub *Hub) {
	r.GET("/ws", NewHandler(hub).Serve)
}
