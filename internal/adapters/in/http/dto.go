package http

import (
	"time"

	"tracking/internal/core/application/usecases/queries"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// AdvanceOrderRequest is the caller's snapshot of the order it wants to move.
// Progress is only compared while the order is picked up.
type AdvanceOrderRequest struct {
	Status      string    `json:"status"`
	Origin      *Location `json:"origin"`
	Destination *Location `json:"destination"`
	Progress    float64   `json:"progress"`
}

type AdvanceOrderResponse struct {
	Status        string   `json:"status"`
	CourierLat    *float64 `json:"courier_lat,omitempty"`
	CourierLng    *float64 `json:"courier_lng,omitempty"`
	Progress      float64  `json:"progress"`
	StatusChanged bool     `json:"status_changed"`
}

type NewOrder struct {
	CustomerID  string    `json:"customer_id"`
	VendorID    string    `json:"vendor_id"`
	Destination *Location `json:"destination"`
}

type NewCourier struct {
	Name string `json:"name"`
}

type NewVendor struct {
	Name     string    `json:"name"`
	Location *Location `json:"location"`
}

type Created struct {
	ID string `json:"id"`
}

type Order struct {
	ID              string    `json:"id"`
	CustomerID      string    `json:"customer_id"`
	VendorID        string    `json:"vendor_id"`
	Status          string    `json:"status"`
	Progress        float64   `json:"progress"`
	Origin          Location  `json:"origin"`
	Destination     Location  `json:"destination"`
	CourierPosition *Location `json:"courier_position,omitempty"`
	CourierID       *string   `json:"courier_id,omitempty"`
}

type Courier struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Available     bool    `json:"available"`
	ActiveOrderID *string `json:"active_order_id,omitempty"`
}

type Notification struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func orderFromReadModel(m queries.OrderReadModel) Order {
	o := Order{
		ID:          m.ID.String(),
		CustomerID:  m.CustomerID.String(),
		VendorID:    m.VendorID.String(),
		Status:      m.Status.String(),
		Progress:    m.Progress,
		Origin:      Location{Lat: m.Origin.Lat(), Lng: m.Origin.Lng()},
		Destination: Location{Lat: m.Destination.Lat(), Lng: m.Destination.Lng()},
	}
	if m.CourierPosition != nil {
		o.CourierPosition = &Location{Lat: m.CourierPosition.Lat(), Lng: m.CourierPosition.Lng()}
	}
	if m.CourierID != nil {
		id := m.CourierID.String()
		o.CourierID = &id
	}
	return o
}

func courierFromResponse(c queries.GetAllCouriersQueryResponse) Courier {
	out := Courier{
		ID:        c.ID.String(),
		Name:      c.Name,
		Available: c.Available,
	}
	if c.ActiveOrderID != nil {
		id := c.ActiveOrderID.String()
		out.ActiveOrderID = &id
	}
	return out
}

func notificationFromResponse(n queries.GetUserNotificationsQueryResponse) Notification {
	return Notification{
		ID:        n.ID.String(),
		OrderID:   n.OrderID.String(),
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}
