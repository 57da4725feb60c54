package web

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/tomz197/survival/internal/input"
)

const (
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait / 2
	maxMessageSize = 1 << 10
	sendQueueSize  = 8
)

// KeyMessage is a key event from the page.
type KeyMessage struct {
	Type string `json:"type"` // "down" or "up"
	Key  string `json:"key"`
}

// Conn wraps a websocket with a send queue and feeds key events into a tracker.
type Conn struct {
	ws      *websocket.Conn
	tracker *input.Tracker
	log     *zap.SugaredLogger
	done    chan struct{} // Closed when the read pump exits

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

// NewConn creates a connection. Start the pumps with go WritePump and go
// ReadPump.
func NewConn(ws *websocket.Conn, tracker *input.Tracker, log *zap.SugaredLogger) *Conn {
	return &Conn{
		ws:      ws,
		tracker: tracker,
		log:     log,
		done:    make(chan struct{}),
		send:    make(chan []byte, sendQueueSize),
	}
}

// Enqueue queues a message without blocking. When the queue is full the
// message is dropped; the next frame supersedes it.
func (c *Conn) Enqueue(b []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- b:
	default:
	}
}

// Poll reports whether the page is still connected.
func (c *Conn) Poll(time.Time) bool {
	select {
	case <-c.done:
		return false
	default:
		return true
	}
}

// Close ends the write pump and closes the socket.
func (c *Conn) Close() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
	c.mu.Unlock()
	_ = c.ws.Close()
}

// WritePump writes queued messages and keepalive pings until the queue is
// closed or a write fails.
func (c *Conn) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.log.Debugw("write failed", "err", err)
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ReadPump applies key events to the tracker until the socket fails.
func (c *Conn) ReadPump() {
	defer close(c.done)
	defer c.tracker.Reset()

	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debugw("read failed", "err", err)
			}
			return
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))

		var msg KeyMessage
		if err := json.Unmarshal(payload, &msg); err != nil || msg.Key == "" {
			continue
		}
		switch strings.ToLower(msg.Type) {
		case "down":
			c.tracker.Press(msg.Key)
		case "up":
			c.tracker.Release(msg.Key)
		}
	}
}
