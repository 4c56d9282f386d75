package websocket

import (
	"sync"

	"github.com/OldStager01/attrition-advisor/internal/logger"
	"github.com/OldStager01/attrition-advisor/internal/metrics"
	"github.com/OldStager01/attrition-advisor/pkg/config"
)

const defaultBroadcastBuffer = 64

// Hub fans session events out to every open form page.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once
	mu         sync.RWMutex
	settings   Settings
}

func NewHub(cfg *config.WebSocketConfig) *Hub {
	settings := NewSettings(cfg)

	broadcastBuffer := defaultBroadcastBuffer
	if cfg != nil && cfg.BroadcastBuffer > 0 {
		broadcastBuffer = cfg.BroadcastBuffer
	}

	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		settings:   settings,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for client := range h.clients {
				h.dropLocked(client)
			}
			h.mu.Unlock()
			metrics.WebSocketClients.Set(0)
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.clientsChanged("connected")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				h.dropLocked(client)
			}
			h.mu.Unlock()
			h.clientsChanged("disconnected")

		case message := <-h.broadcast:
			h.deliver(message)
		}
	}
}

// deliver drops clients whose send buffer is full.
func (h *Hub) deliver(message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			h.dropLocked(client)
			logger.Warn("WebSocket client too slow, disconnecting")
		}
	}
}

// dropLocked removes a client and closes its send channel. h.mu must be held
// for writing.
func (h *Hub) dropLocked(client *Client) {
	delete(h.clients, client)
	client.closed = true
	close(client.send)
}

func (h *Hub) clientsChanged(action string) {
	count := h.ClientCount()
	metrics.WebSocketClients.Set(float64(count))
	logger.Infof("WebSocket client %s (total: %d)", action, count)
}

func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		logger.Warn("Broadcast channel full, dropping message")
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
	})
}
