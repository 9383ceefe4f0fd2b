// Package tracking streams live bus positions to WebSocket subscribers.
package tracking

import (
	"log"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"bussp-service/internal/routes"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// safeConn wraps a websocket.Conn with a write mutex.
// gorilla/websocket allows one concurrent writer; this enforces that.
type safeConn struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func (c *safeConn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(v)
}

func (c *safeConn) readMessage() (int, []byte, error) {
	return c.ws.ReadMessage()
}

func (c *safeConn) close() { c.ws.Close() }

// Hub manages WebSocket connections per bus line.
type Hub struct {
	mu    sync.RWMutex
	conns map[string][]*safeConn
}

// NewHub creates a tracking hub.
func NewHub() *Hub {
	return &Hub{conns: make(map[string][]*safeConn)}
}

// Routes returns a chi.Router for the /ws mount point.
func (h *Hub) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/lines/{line}", h.HandleWS)
	return r
}

// HandleWS upgrades the connection and subscribes it to a bus line.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	line := chi.URLParam(r, "line")
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade error: %v", err)
		return
	}

	conn := &safeConn{ws: ws}

	h.mu.Lock()
	h.conns[line] = append(h.conns[line], conn)
	h.mu.Unlock()

	log.Printf("[ws] client subscribed to line %s", line)

	// Block until the client disconnects
	for {
		if _, _, err := conn.readMessage(); err != nil {
			break
		}
	}

	h.removeConn(line, conn)
	conn.close()
	log.Printf("[ws] client left line %s", line)
}

// Lines returns the bus lines that currently have subscribers.
func (h *Hub) Lines() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	lines := make([]string, 0, len(h.conns))
	for line := range h.conns {
		lines = append(lines, line)
	}
	return lines
}

// Broadcast pushes a position snapshot to all subscribers of a line.
func (h *Hub) Broadcast(line string, positions []routes.Position) {
	h.mu.RLock()
	conns := h.conns[line]
	h.mu.RUnlock()

	msg := map[string]any{
		"line":  line,
		"buses": positions,
	}

	for _, c := range conns {
		if err := c.writeJSON(msg); err != nil {
			log.Printf("[ws] write error: %v", err)
		}
	}
}

func (h *Hub) removeConn(line string, conn *safeConn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.conns[line]
	for i, c := range conns {
		if c == conn {
			h.conns[line] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(h.conns[line]) == 0 {
		delete(h.conns, line)
	}
}
