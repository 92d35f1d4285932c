package notifier

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const defaultWriteWait = 10 * time.Second

// Hub tracks every connected notification viewer. Writes to a connection
// are serialized through a per-connection mutex; gorilla/websocket allows
// only one concurrent writer per connection. Broadcast is fire-and-forget
// per connection; a failed or timed-out write evicts the connection.
type Hub struct {
	mu        sync.RWMutex
	conns     map[*websocket.Conn]*sync.Mutex
	writeWait time.Duration
}

func NewHub() *Hub {
	return &Hub{
		conns:     make(map[*websocket.Conn]*sync.Mutex),
		writeWait: defaultWriteWait,
	}
}

func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = &sync.Mutex{}
	total := len(h.conns)
	h.mu.Unlock()

	log.Printf("[FEED] [INFO] viewer connected (total=%d)", total)
}

func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.conns[conn]
	delete(h.conns, conn)
	total := len(h.conns)
	h.mu.Unlock()

	_ = conn.Close()
	if ok {
		log.Printf("[FEED] [INFO] viewer disconnected (total=%d)", total)
	}
}

// Broadcast writes the payload to every connection. A viewer that errors or
// stalls past the write deadline is dropped so it cannot wedge the hub.
func (h *Hub) Broadcast(payload interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for conn, writeMu := range h.conns {
		if err := h.write(conn, writeMu, payload); err != nil {
			log.Printf("[FEED] [ERROR] broadcast write failed: %v", err)
			go h.Remove(conn)
		}
	}
}

func (h *Hub) write(conn *websocket.Conn, writeMu *sync.Mutex, payload interface{}) error {
	writeMu.Lock()
	defer writeMu.Unlock()

	_ = conn.SetWriteDeadline(time.Now().Add(h.writeWait))
	return conn.WriteJSON(payload)
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}
