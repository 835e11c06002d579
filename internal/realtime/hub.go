package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024

	// sendBuffer bounds the per-client queue; a client that falls this far
	// behind starts losing events and re-syncs on its next fetch.
	sendBuffer = 32
)

// Event is the refresh hint broadcast to a tenant's connected clients after
// each successful booking mutation. Delivery is best-effort with no ordering
// guarantee; clients re-fetch on receipt.
type Event struct {
	Type      string    `json:"type"`
	RoomID    int64     `json:"room_id"`
	BookingID int64     `json:"booking_id"`
	At        time.Time `json:"at"`
}

// client is a single websocket subscriber. All writes on conn happen from
// the client's writePump goroutine; everyone else talks to it through send.
type client struct {
	tenantID int64
	id       string
	conn     *websocket.Conn
	send     chan []byte
}

// Hub fans booking events out to websocket subscribers, grouped per tenant.
// A client only ever joins its own tenant's channel. Broadcasting never
// blocks the caller.
type Hub struct {
	mu     sync.RWMutex
	conns  map[int64]map[string]*client // tenantID -> clientID -> client
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		conns:  make(map[int64]map[string]*client),
		logger: logger,
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.conns[c.tenantID] == nil {
		h.conns[c.tenantID] = make(map[string]*client)
	}
	h.conns[c.tenantID][c.id] = c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, ok := h.conns[c.tenantID][c.id]; ok && existing == c {
		delete(h.conns[c.tenantID], c.id)
		if len(h.conns[c.tenantID]) == 0 {
			delete(h.conns, c.tenantID)
		}
		close(c.send)
	}
}

// BookingEvent satisfies the booking service's Notifier. Fire-and-forget:
// the booking core never waits on delivery.
func (h *Hub) BookingEvent(tenantID, roomID, bookingID int64, eventType string) {
	h.Broadcast(tenantID, Event{
		Type:      eventType,
		RoomID:    roomID,
		BookingID: bookingID,
		At:        time.Now().UTC(),
	})
}

// Broadcast queues ev for every subscriber of the tenant. Slow clients are
// skipped, never waited on.
func (h *Hub) Broadcast(tenantID int64, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, c := range h.conns[tenantID] {
		select {
		case c.send <- data:
		default:
			// Client too slow, skip it.
			h.logger.Debug("websocket client lagging, event dropped",
				zap.Int64("tenant_id", tenantID),
				zap.String("client_id", id),
			)
		}
	}
}

// ServeWS registers the connection on its tenant's channel and runs the
// read and write loops. Blocks until the peer disconnects.
func (h *Hub) ServeWS(conn *websocket.Conn, tenantID int64, clientID string) {
	c := &client{
		tenantID: tenantID,
		id:       clientID,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
	}

	h.register(c)

	go h.writePump(c)
	h.readPump(c)
}

// readPump drains frames until the peer goes away. The channel is
// broadcast-only; inbound payloads are discarded.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump is the only goroutine allowed to write on c.conn.
func (h *Hub) writePump(c *client) {
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

func (h *Hub) SubscriberCount(tenantID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[tenantID])
}

// Close disconnects every subscriber. Used on shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := make([]*client, 0)
	for _, byID := range h.conns {
		for _, c := range byID {
			clients = append(clients, c)
		}
	}
	h.mu.Unlock()

	for _, c := range clients {
		h.unregister(c)
		_ = c.conn.Close()
	}
}
