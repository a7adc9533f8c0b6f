// Package orderrepo maps the order aggregate to the orders table.
//
// The order's origin is not stored on the row: it is the location of the
// vendor the order belongs to and is read through a join on every load.
package orderrepo

import (
	"fmt"
	"time"

	"tracking/internal/adapters/out/postgres/vendorrepo"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting orders.
// Courier coordinates are NULL until the order is picked up.
type OrderDTO struct {
	ID         uuid.UUID             `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID             `gorm:"type:uuid;not null;index"`
	VendorID   uuid.UUID             `gorm:"type:uuid;not null;index"`
	Vendor     *vendorrepo.VendorDTO `gorm:"foreignKey:VendorID;references:ID"`
	Delivery   LocationDTO           `gorm:"embedded;embeddedPrefix:delivery_"`
	Status     int                   `gorm:"type:smallint;not null;index"`
	Progress   float64               `gorm:"type:double precision;not null"`
	CourierLat *float64              `gorm:"type:double precision"`
	CourierLng *float64              `gorm:"type:double precision"`
	CourierID  *uuid.UUID            `gorm:"type:uuid;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// LocationDTO represents the embedded delivery coordinates.
type LocationDTO struct {
	Lat float64 `gorm:"type:double precision;not null"`
	Lng float64 `gorm:"type:double precision;not null"`
}

func fromDomain(o *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:         o.ID().Bytes(),
		CustomerID: o.CustomerID().Bytes(),
		VendorID:   o.VendorID().Bytes(),
		Delivery: LocationDTO{
			Lat: o.Destination().Lat(),
			Lng: o.Destination().Lng(),
		},
		Status:   int(o.Status()),
		Progress: o.Progress(),
	}

	dto.CourierLat, dto.CourierLng = courierCoordinates(o)

	if id := o.Courier(); id != nil {
		raw := id.Bytes()
		dto.CourierID = &raw
	}

	return dto
}

func courierCoordinates(o *order.Order) (*float64, *float64) {
	pos := o.CourierPosition()
	if pos == nil {
		return nil, nil
	}
	lat, lng := pos.Lat(), pos.Lng()
	return &lat, &lng
}

// toDomain rebuilds the aggregate. dto.Vendor must be loaded.
func toDomain(dto OrderDTO) (*order.Order, error) {
	if dto.Vendor == nil {
		return nil, fmt.Errorf("order %s loaded without its vendor", dto.ID)
	}

	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	vendorID, err := kernel.UUIDFromBytes(dto.VendorID[:])
	if err != nil {
		return nil, err
	}

	origin, err := kernel.NewLocation(dto.Vendor.Lat, dto.Vendor.Lng)
	if err != nil {
		return nil, err
	}

	destination, err := kernel.NewLocation(dto.Delivery.Lat, dto.Delivery.Lng)
	if err != nil {
		return nil, err
	}

	var position *kernel.Location
	if dto.CourierLat != nil && dto.CourierLng != nil {
		pos, posErr := kernel.NewLocation(*dto.CourierLat, *dto.CourierLng)
		if posErr != nil {
			return nil, posErr
		}
		position = &pos
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	return order.RestoreOrder(
		id,
		customerID,
		vendorID,
		origin,
		destination,
		order.Status(dto.Status),
		dto.Progress,
		position,
		courierID,
	)
}
