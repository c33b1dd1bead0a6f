package ws

import (
	"time"

	"github.com/gorilla/websocket"
)

const maxMessageSize = 512

// Client is one websocket subscriber.
type Client struct {
	hub          *Hub
	conn         *websocket.Conn
	tournamentID string
	send         chan []byte
}

// NewClient creates a client subscribed to tournamentID, or to every
// tournament when tournamentID is empty.
func NewClient(hub *Hub, conn *websocket.Conn, tournamentID string) *Client {
	return &Client{
		hub:          hub,
		conn:         conn,
		tournamentID: tournamentID,
		send:         make(chan []byte, hub.cfg.SendBuffer),
	}
}

// readPump discards inbound messages and keeps the read deadline fresh on pongs.
// It returns when the connection fails or the peer closes it.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	pongWait := c.hub.cfg.PingInterval + c.hub.cfg.WriteTimeout
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debugw("websocket read failed", "tournament_id", c.tournamentID, "error", err)
			}
			return
		}
	}
}

// writePump is the only writer on the connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(c.hub.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.hub.cfg.WriteTimeout))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.hub.cfg.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
