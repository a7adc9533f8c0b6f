// Package ws serves live order tracking over WebSocket. Every committed
// simulation step is pushed to the sockets watching that order.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"tracking/internal/adapters/out/events"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/ports"

	"github.com/coder/websocket"
	"golang.org/x/sync/errgroup"
)

const (
	writeTimeout = 5 * time.Second
	pingInterval = 30 * time.Second
)

// Hub keeps one room of subscribers per order and implements
// ports.OrderEventPublisher. It is safe for concurrent use.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[kernel.UUID]map[*client]struct{}
	closed bool
	logger *slog.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		rooms:  make(map[kernel.UUID]map[*client]struct{}),
		logger: logger.With("component", "TrackingHub"),
	}
}

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(ctx context.Context, b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return c.conn.Write(ctx, websocket.MessageText, b)
}

// Serve registers conn as a subscriber of orderID, writes initial if given,
// and blocks until the peer disconnects, ctx ends or the hub closes.
// Incoming messages are discarded.
func (h *Hub) Serve(ctx context.Context, orderID kernel.UUID, conn *websocket.Conn, initial *events.Message) error {
	c := &client{conn: conn}
	if !h.add(orderID, c) {
		return conn.Close(websocket.StatusGoingAway, "server shutting down")
	}
	defer h.remove(orderID, c)

	if initial != nil {
		b, err := json.Marshal(initial)
		if err != nil {
			return err
		}
		if err = c.send(ctx, b); err != nil {
			return err
		}
	}

	ctx = conn.CloseRead(ctx)

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return nil
			}
		}
	}
}

// Publish pushes the event to every subscriber of its order. A subscriber
// that cannot be written to is dropped; that is not a publishing error.
func (h *Hub) Publish(ctx context.Context, event ports.OrderEvent) error {
	subscribers := h.subscribers(event.OrderID)
	if len(subscribers) == 0 {
		return nil
	}

	b, err := json.Marshal(events.NewMessage(event))
	if err != nil {
		return err
	}

	// Subscribers are written concurrently so one slow socket does not use up
	// the deadline of the others.
	var g errgroup.Group
	for _, c := range subscribers {
		g.Go(func() error {
			if sendErr := c.send(ctx, b); sendErr != nil {
				h.logger.DebugContext(ctx, "dropping tracking subscriber",
					"order_id", event.OrderID.String(), "error", sendErr)
				h.remove(event.OrderID, c)
				_ = c.conn.Close(websocket.StatusPolicyViolation, "write failed")
			}
			return nil
		})
	}

	return g.Wait()
}

// Subscribers returns how many sockets watch orderID.
func (h *Hub) Subscribers(orderID kernel.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[orderID])
}

// Close disconnects every subscriber and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	rooms := h.rooms
	h.rooms = make(map[kernel.UUID]map[*client]struct{})
	h.mu.Unlock()

	for _, room := range rooms {
		for c := range room {
			_ = c.conn.Close(websocket.StatusGoingAway, "server shutting down")
		}
	}
}

func (h *Hub) add(orderID kernel.UUID, c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}

	room, ok := h.rooms[orderID]
	if !ok {
		room = make(map[*client]struct{})
		h.rooms[orderID] = room
	}
	room[c] = struct{}{}
	return true
}

func (h *Hub) remove(orderID kernel.UUID, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room := h.rooms[orderID]
	delete(room, c)
	if len(room) == 0 {
		delete(h.rooms, orderID)
	}
}

func (h *Hub) subscribers(orderID kernel.UUID) []*client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	room := h.rooms[orderID]
	out := make([]*client, 0, len(room))
	for c := range room {
		out = append(out, c)
	}
	return out
}
