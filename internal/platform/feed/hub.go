// Package feed streams run events to websocket clients and serves the
// run history over HTTP. Sound and haptics clients subscribe here instead
// of being called from the simulation.
package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/space-drop/internal/games/spacedrop"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Envelopes buffered between publishers and the hub loop.
	broadcastBuffer = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Envelope is the JSON frame sent to clients.
type Envelope struct {
	RunID string          `json:"run_id"`
	Type  string          `json:"type"`
	Tick  int             `json:"tick"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Client is one websocket subscriber. An empty runID receives every stream.
type Client struct {
	hub   *Hub
	conn  *websocket.Conn
	send  chan []byte
	runID string
}

// Hub maintains the set of active clients and fans envelopes out to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *Envelope
	register   chan *Client
	unregister chan *Client
	done       chan struct{} // Closed when Run returns

	count   atomic.Int32
	dropped atomic.Int64
	logger  *log.Logger
}

// NewHub creates a new hub. Call Run to start it.
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *Envelope, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run starts the hub's event loop and blocks until ctx is cancelled.
// All clients are disconnected on return.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.unregisterClient(client)
			}
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case env := <-h.broadcast:
			h.broadcastEnvelope(env)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// Dropped returns how many envelopes were discarded because the hub was busy.
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}

// ServeWS upgrades the request and subscribes the connection to runID.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, runID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		hub:   h,
		conn:  conn,
		send:  make(chan []byte, 256),
		runID: runID,
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// Publish queues an envelope without blocking. When the hub is saturated the
// envelope is dropped; the simulation must never wait on subscribers.
func (h *Hub) Publish(env *Envelope) {
	select {
	case h.broadcast <- env:
	default:
		h.dropped.Add(1)
	}
}

// Listener returns a run listener that publishes every event under runID.
func (h *Hub) Listener(runID string) spacedrop.Listener {
	return func(ev spacedrop.Event) {
		env, err := NewEnvelope(runID, ev)
		if err != nil {
			h.logger.Error("cannot encode event", "type", ev.EventName(), "error", err)
			return
		}
		h.Publish(env)
	}
}

// NewEnvelope wraps a run event for the wire.
func NewEnvelope(runID string, ev spacedrop.Event) (*Envelope, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	return &Envelope{RunID: runID, Type: ev.EventName(), Tick: eventTick(ev), Data: data}, nil
}

func eventTick(ev spacedrop.Event) int {
	switch e := ev.(type) {
	case spacedrop.PassEvent:
		return e.Tick
	case spacedrop.NearMissEvent:
		return e.Tick
	case spacedrop.AchievementEvent:
		return e.Tick
	case spacedrop.GameOverEvent:
		return e.Tick
	default:
		return 0
	}
}

func (h *Hub) registerClient(client *Client) {
	h.clients[client] = true
	h.count.Store(int32(len(h.clients)))
	h.logger.Debug("client registered", "run", client.runID, "clients", len(h.clients))
}

func (h *Hub) unregisterClient(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
	h.count.Store(int32(len(h.clients)))
	h.logger.Debug("client unregistered", "run", client.runID, "clients", len(h.clients))
}

func (h *Hub) broadcastEnvelope(env *Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		h.logger.Error("cannot marshal envelope", "error", err)
		return
	}

	for client := range h.clients {
		if client.runID != "" && client.runID != env.RunID {
			continue
		}
		select {
		case client.send <- data:
		default:
			// Slow client; drop it rather than stall everyone else.
			h.unregisterClient(client)
		}
	}
}

// readPump drains the connection so control frames are processed and
// reports the client to the hub when the peer goes away.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket read error", "error", err)
			}
			return
		}
	}
}

// writePump sends queued envelopes, one per websocket message, and pings the peer.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
