package dashboard

import (
	"context"
	"log/slog"
	"sync"

	"fx_hedge/internal/infra"

	"github.com/google/uuid"
)

const sendBuffer = 64

// Client is one connected dashboard page.
type Client struct {
	ID   string
	hub  *Hub
	send chan Message
}

// Hub fans rendered messages out to every connected page.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]struct{}
	broadcast  chan Message
	unregister chan *Client
	metrics    *infra.Metrics
	closed     bool
}

// NewHub creates a hub. metrics may be nil.
func NewHub(metrics *infra.Metrics) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan Message, 256),
		unregister: make(chan *Client),
		metrics:    metrics,
	}
}

// NewClient allocates a client bound to this hub.
func (h *Hub) NewClient() *Client {
	return &Client{
		ID:   uuid.NewString(),
		hub:  h,
		send: make(chan Message, sendBuffer),
	}
}

// Run processes broadcasts and removals until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case c := <-h.unregister:
			h.remove(c)
		case msg := <-h.broadcast:
			var slow []*Client
			h.mu.RLock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					slow = append(slow, c)
				}
			}
			h.mu.RUnlock()
			for _, c := range slow {
				slog.Warn("Dropping slow dashboard client", slog.String("client", c.ID))
				h.remove(c)
			}
		}
	}
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	if ok && h.metrics != nil {
		h.metrics.DecrementConnections()
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	h.closed = true
	n := len(h.clients)
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	if h.metrics != nil {
		for i := 0; i < n; i++ {
			h.metrics.DecrementConnections()
		}
	}
}

// Register adds a client; it receives every broadcast queued after Register returns.
// It reports false once the hub has shut down.
func (h *Hub) Register(c *Client) bool {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return false
	}
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	if h.metrics != nil {
		h.metrics.IncrementConnections()
	}
	slog.Debug("Dashboard client connected", slog.String("client", c.ID))
	return true
}

// Unregister removes a client and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	default:
		// hub loop busy or gone; remove directly
		h.remove(c)
	}
}

// Send queues msg for a single registered client. It reports false when the
// client is gone or its queue is full.
func (h *Hub) Send(c *Client, msg Message) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[c]; !ok {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// Broadcast queues msg for every client, dropping it when the queue is full.
func (h *Hub) Broadcast(msg Message) {
	select {
	case h.broadcast <- msg:
	default:
		slog.Warn("Dashboard broadcast queue full, dropping message", slog.String("type", msg.Type))
	}
}

// ClientCount returns the number of connected pages.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
