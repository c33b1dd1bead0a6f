// Package ws broadcasts registry events to websocket subscribers.
//
// Subscribers are grouped by tournament id; a subscriber with an empty id
// receives every event. All subscriber bookkeeping happens on the goroutine
// running Hub.Run, so events for one tournament reach each subscriber in the
// order they were published. Delivery is best-effort: a subscriber whose
// buffer is full is disconnected.
package ws

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/festy23/tournament_platform/internal/config"
	"github.com/festy23/tournament_platform/internal/notify"
)

const broadcastBuffer = 256

type message struct {
	tournamentID string
	data         []byte
}

// Hub fans registry events out to websocket clients. It implements notify.Hook.
type Hub struct {
	clients map[string]map[*Client]struct{}

	broadcast  chan message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	connected atomic.Int64
	dropped   atomic.Int64

	cfg    config.HubConfig
	logger *zap.SugaredLogger
}

// NewHub creates a hub. Call Run to start delivering events.
func NewHub(cfg config.HubConfig, logger *zap.SugaredLogger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		broadcast:  make(chan message, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		cfg:        cfg,
		logger:     logger,
	}
}

// Run processes registrations and broadcasts until ctx is done,
// then disconnects every client.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for _, group := range h.clients {
				for c := range group {
					h.remove(c)
				}
			}
			h.logger.Infow("websocket hub stopped")
			return nil

		case c := <-h.register:
			group := h.clients[c.tournamentID]
			if group == nil {
				group = make(map[*Client]struct{})
				h.clients[c.tournamentID] = group
			}
			group[c] = struct{}{}
			h.connected.Add(1)
			h.logger.Debugw("websocket client registered", "tournament_id", c.tournamentID, "clients", len(group))

		case c := <-h.unregister:
			h.remove(c)

		case msg := <-h.broadcast:
			h.deliver(h.clients[msg.tournamentID], msg.data)
			if msg.tournamentID != "" {
				h.deliver(h.clients[""], msg.data)
			}
		}
	}
}

func (h *Hub) deliver(group map[*Client]struct{}, data []byte) {
	for c := range group {
		select {
		case c.send <- data:
		default:
			h.logger.Warnw("dropping slow websocket client", "tournament_id", c.tournamentID)
			h.dropped.Add(1)
			h.remove(c)
		}
	}
}

func (h *Hub) remove(c *Client) {
	group, ok := h.clients[c.tournamentID]
	if !ok {
		return
	}
	if _, ok := group[c]; !ok {
		return
	}
	delete(group, c)
	close(c.send)
	h.connected.Add(-1)
	if len(group) == 0 {
		delete(h.clients, c.tournamentID)
	}
}

// Notify queues an event for broadcast. It never blocks: when the queue is
// full or the hub has stopped the event is dropped.
func (h *Hub) Notify(event notify.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Errorw("failed to encode event", "kind", string(event.Kind), "error", err)
		return
	}

	select {
	case h.broadcast <- message{tournamentID: event.TournamentID, data: data}:
	case <-h.done:
	default:
		h.dropped.Add(1)
		h.logger.Warnw("broadcast queue full, event dropped", "kind", string(event.Kind), "tournament_id", event.TournamentID)
	}
}

// Register adds a client. It reports false if the hub has stopped.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a client and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Running reports whether the event loop is still serving clients.
func (h *Hub) Running() bool {
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	return int(h.connected.Load())
}

// Dropped returns the number of events or clients dropped for being too slow.
func (h *Hub) Dropped() int {
	return int(h.dropped.Load())
}

var _ notify.Hook = (*Hub)(nil)
