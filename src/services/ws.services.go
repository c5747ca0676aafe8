package services

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Event is the frame pushed to every connected dashboard client when the
// catalog changes.
type Event struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

var eventHub = &hub{clients: make(map[*websocket.Conn]struct{})}

func (h *hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

func (h *hub) broadcast(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
			delete(h.clients, conn)
			conn.Close()
			continue
		}
		if err := conn.WriteJSON(event); err != nil {
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

// PublishEvent fans the event out to all connected clients. Safe to call
// with no listeners.
func PublishEvent(eventType string, payload interface{}) {
	eventHub.broadcast(Event{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	})
}

// WebSocketHandler upgrades the connection and parks it in the hub. Reads
// are drained only to detect the close.
func WebSocketHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[ws] Upgrade failed: %v", err)
		return
	}

	eventHub.add(conn)
	go func() {
		defer eventHub.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
