package http

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"thyrocast/logger"
	"thyrocast/session"
)

// EventType tags messages pushed to the analytics page.
type EventType string

const (
	PredictionEvent EventType = "prediction"
	HeartbeatEvent  EventType = "heartbeat"
)

// Event is one websocket message.
type Event struct {
	Type      EventType       `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans completed predictions out to connected analytics pages.
type Hub struct {
	clients    map[*wsClient]bool
	broadcast  chan []byte
	register   chan *wsClient
	unregister chan *wsClient
	mu         sync.RWMutex
	upgrader   websocket.Upgrader
	done       chan struct{}
}

var hub *Hub

func SetHub(h *Hub) {
	hub = h
}

func RegisterWebSocketRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/ws/history", func(w http.ResponseWriter, r *http.Request) {
		if hub == nil {
			http.Error(w, `{"error":"realtime feed not initialized"}`, http.StatusServiceUnavailable)
			return
		}
		hub.ServeWS(w, r)
	})
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*wsClient]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
		upgrader: websocket.Upgrader{
			// The server binds to loopback; every origin on this host is ours.
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		done: make(chan struct{}),
	}
}

// Run owns the client set. Call it in a goroutine; Stop ends it.
func (h *Hub) Run() {
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.removeClient(client)

		case payload := <-h.broadcast:
			h.mu.RLock()
			clients := make([]*wsClient, 0, len(h.clients))
			for client := range h.clients {
				clients = append(clients, client)
			}
			h.mu.RUnlock()
			for _, client := range clients {
				select {
				case client.send <- payload:
				default:
					h.removeClient(client)
				}
			}

		case <-heartbeat.C:
			if payload, err := json.Marshal(Event{Type: HeartbeatEvent, Timestamp: time.Now()}); err == nil {
				select {
				case h.broadcast <- payload:
				default:
				}
			}

		case <-h.done:
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				client.conn.Close()
			}
			h.clients = make(map[*wsClient]bool)
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

func (h *Hub) removeClient(client *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		client.conn.Close()
	}
}

// BroadcastEntry pushes a completed prediction to every connected page.
func (h *Hub) BroadcastEntry(entry session.Entry) {
	data, err := json.Marshal(entry)
	if err != nil {
		logger.Errorf("marshal history entry: %v", err)
		return
	}
	payload, err := json.Marshal(Event{Type: PredictionEvent, Timestamp: time.Now(), Data: data})
	if err != nil {
		logger.Errorf("marshal ws event: %v", err)
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		logger.Warnf("ws broadcast buffer full, dropping event")
	}
}

func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Errorf("websocket upgrade: %v", err)
		return
	}

	client := &wsClient{conn: conn, send: make(chan []byte, 16)}
	h.register <- client

	go client.writeLoop()
	go client.readLoop(h)
}

func (c *wsClient) writeLoop() {
	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

// readLoop discards client messages; the feed is one-way. It exists to
// detect the close handshake.
func (c *wsClient) readLoop(h *Hub) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			select {
			case h.unregister <- c:
			case <-h.done:
			}
			return
		}
	}
}

func broadcastEntry(entry session.Entry) {
	if hub != nil {
		hub.BroadcastEntry(entry)
	}
}
