package service

import (
	"sync"

	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type client struct {
	conn Conn
	mu   sync.Mutex // one writer at a time per connection
}

func (c *client) send(msg ws.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(msg)
}

// Hub holds the live connections watching one game.
type Hub struct {
	clients map[string]*client
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*client),
	}
}

// Register adds conn and returns the id used to unregister it.
func (h *Hub) Register(conn Conn) string {
	id := uuid.NewString()
	h.mu.Lock()
	h.clients[id] = &client{conn: conn}
	h.mu.Unlock()
	return id
}

func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, id)
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Send writes to a single connection.
func (h *Hub) Send(id string, msg ws.Message) error {
	h.mu.RLock()
	c, ok := h.clients[id]
	h.mu.RUnlock()
	if !ok {
		return ErrConnectionNotFound
	}
	return c.send(msg)
}

// Broadcast writes msg to every connection. Connections that fail are closed
// and dropped.
func (h *Hub) Broadcast(msg ws.Message) {
	// Get a snapshot of connections under the lock
	h.mu.RLock()
	active := make(map[string]*client, len(h.clients))
	for id, c := range h.clients {
		active[id] = c
	}
	h.mu.RUnlock()

	for id, c := range active {
		if err := c.send(msg); err != nil {
			log.Warnw("dropping connection", "conn", id, "error", err)
			_ = c.conn.Close()
			h.Unregister(id)
		}
	}
}
