// Package events holds the wire format of order updates and the publisher that
// fans them out to every configured sink.
package events

import (
	"time"

	"tracking/internal/core/ports"
)

// Message is the JSON body sent to tracking sockets and the message broker.
// Courier fields are omitted until the order is picked up.
type Message struct {
	OrderID       string    `json:"order_id"`
	CustomerID    string    `json:"customer_id"`
	Status        string    `json:"status"`
	Progress      float64   `json:"progress"`
	CourierLat    *float64  `json:"courier_lat,omitempty"`
	CourierLng    *float64  `json:"courier_lng,omitempty"`
	CourierID     *string   `json:"courier_id,omitempty"`
	StatusChanged bool      `json:"status_changed"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NewMessage converts a domain event to its wire format.
func NewMessage(event ports.OrderEvent) Message {
	m := Message{
		OrderID:       event.OrderID.String(),
		CustomerID:    event.CustomerID.String(),
		Status:        event.Status.String(),
		Progress:      event.Progress,
		StatusChanged: event.StatusChanged,
		OccurredAt:    event.OccurredAt,
	}

	if pos := event.CourierPosition; pos != nil {
		lat, lng := pos.Lat(), pos.Lng()
		m.CourierLat, m.CourierLng = &lat, &lng
	}

	if id := event.CourierID; id != nil {
		s := id.String()
		m.CourierID = &s
	}

	return m
}
