// Package websocket pushes run progress to connected browsers. The hub
// is broadcast-only: clients subscribe and receive step transitions,
// they never drive the pipeline over the socket.
package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"fftcli/internal/infrastructure"
	"fftcli/pkg/contracts/events"
)

// Hub maintains the set of active clients and broadcasts messages to
// the clients.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	mu      sync.RWMutex
	logger  *slog.Logger
	quit    chan struct{}
	running bool

	totalConnections int64
	messagesSent     int64
}

// NewHub creates a new Hub instance with dependency injection
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	logger = logger.With(slog.String("component", "websocket.hub"))

	return &Hub{
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     logger,
		quit:       make(chan struct{}),
	}
}

// Start starts the hub's run loop in its own goroutine.
func (h *Hub) Start() {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		return
	}
	h.running = true
	h.mu.Unlock()

	go h.run()
}

func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.totalConnections++
			h.mu.Unlock()
			h.logger.Debug("client registered", slog.Int("clients", h.ClientCount()))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
					h.messagesSent++
				default:
					// Slow consumer; drop the connection rather than
					// blocking the run.
					delete(h.clients, client)
					close(client.send)
				}
			}
			h.mu.Unlock()

		case <-h.quit:
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.running = false
			h.mu.Unlock()
			return
		}
	}
}

// Stop shuts the hub down and disconnects every client.
func (h *Hub) Stop() {
	h.mu.RLock()
	running := h.running
	h.mu.RUnlock()
	if running {
		close(h.quit)
	}
}

// BroadcastUpdate sends a structured update to all connected clients.
// Satisfies the run manager's hub interface.
func (h *Hub) BroadcastUpdate(eventType, step, status string, metadata interface{}) {
	message := events.RunUpdate{
		Type:      eventType,
		Step:      step,
		Status:    status,
		Timestamp: time.Now().UTC(),
		Metadata:  metadata,
	}

	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("failed to marshal broadcast", slog.String("error", err.Error()))
		return
	}

	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn("broadcast channel full, dropping message",
			slog.String("type", eventType))
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Metrics returns hub counters for the health endpoint.
func (h *Hub) Metrics() map[string]interface{} {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return map[string]interface{}{
		"active_connections": len(h.clients),
		"total_connections":  h.totalConnections,
		"messages_sent":      h.messagesSent,
	}
}
