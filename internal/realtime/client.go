package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
	sendBuffer     = 64
)

// Client is one live WebSocket connection. Outbound frames go through a
// buffered send channel drained by WritePump; a full or closed channel means
// the client is slow or gone and the frame is dropped.
type Client struct {
	registry *Registry
	conn     *websocket.Conn
	send     chan []byte
	log      zerolog.Logger

	mu     sync.Mutex
	closed bool
}

// NewClient wraps an upgraded connection. The caller is expected to Register
// it and start both pumps.
func NewClient(registry *Registry, conn *websocket.Conn, log zerolog.Logger) *Client {
	return &Client{
		registry: registry,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		log:      log,
	}
}

// trySend enqueues a frame without blocking. It reports false when the
// client is closed or its buffer is full — the caller treats that as a dead
// connection.
func (c *Client) trySend(msg []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// close shuts the send channel exactly once. Idempotent.
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// ReadPump consumes inbound frames until the connection drops. A "ping"
// message gets a "pong" reply to this connection only; everything else is
// ignored. On exit the client is unregistered.
func (c *Client) ReadPump() {
	defer func() {
		c.registry.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug().Err(err).Msg("websocket read error")
			}
			return
		}

		var msg inboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.Type == "ping" {
			if pong, err := json.Marshal(pongMessage()); err == nil {
				c.trySend(pong)
			}
		}
	}
}

// WritePump drains the send channel onto the wire and keeps the transport
// alive with periodic protocol-level pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
