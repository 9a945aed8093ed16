package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/SscSPs/drycleaner_app/internal/core/domain"
	portssvc "github.com/SscSPs/drycleaner_app/internal/core/ports/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const broadcastBuffer = 256

var (
	connectedClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "drycleaner_realtime_clients",
		Help: "Connected dashboard websockets",
	})

	messagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "drycleaner_realtime_messages_total",
		Help: "Store events fanned out to dashboards by result",
	}, []string{"result"})
)

// Hub maintains the set of active dashboard connections and broadcasts store
// events to them.
type Hub struct {
	logger *slog.Logger

	// Registered clients
	clients map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}

	// Guards clients for readers outside the run loop
	mu sync.RWMutex
}

var _ portssvc.EventPublisher = (*Hub)(nil)

// NewHub creates a new Hub instance
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		logger:     logger,
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, broadcastBuffer),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's main loop. It returns when ctx ends, closing every
// connected client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			connectedClients.Set(0)
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			count := len(h.clients)
			h.mu.Unlock()
			connectedClients.Set(float64(count))
			h.logger.Info("Dashboard connected", slog.String("client_id", client.ID), slog.Int("clients", count))

		case client := <-h.unregister:
			h.remove(client)

		case message := <-h.broadcast:
			h.mu.RLock()
			var slow []*Client
			for client := range h.clients {
				select {
				case client.send <- message:
					messagesTotal.WithLabelValues("sent").Inc()
				default:
					slow = append(slow, client)
				}
			}
			h.mu.RUnlock()
			for _, client := range slow {
				messagesTotal.WithLabelValues("dropped_client").Inc()
				h.logger.Warn("Dropping slow dashboard", slog.String("client_id", client.ID))
				h.remove(client)
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
		close(client.send)
	}
	count := len(h.clients)
	h.mu.Unlock()
	if ok {
		connectedClients.Set(float64(count))
		h.logger.Info("Dashboard disconnected", slog.String("client_id", client.ID), slog.Int("clients", count))
	}
}

// Publish queues event for every connected client. It never blocks; events
// are dropped when the broadcast buffer is full.
func (h *Hub) Publish(event domain.StoreEvent) {
	msg, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Failed to marshal store event", slog.String("type", string(event.Type)), slog.String("error", err.Error()))
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		messagesTotal.WithLabelValues("dropped_event").Inc()
		h.logger.Warn("Broadcast buffer full, dropping store event", slog.String("type", string(event.Type)))
	}
}

// ClientCount returns the number of connected dashboards.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
