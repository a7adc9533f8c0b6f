package queries

import (
	"database/sql"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderReadModel is the flat view of an order shared by the order queries.
// CourierPosition is nil before pickup; CourierID is nil while unassigned.
type OrderReadModel struct {
	ID              kernel.UUID
	CustomerID      kernel.UUID
	VendorID        kernel.UUID
	Status          order.Status
	Progress        float64
	Origin          kernel.Location
	Destination     kernel.Location
	CourierPosition *kernel.Location
	CourierID       *kernel.UUID
}

// orderColumns must match the Scan order in scanOrder.
const orderColumns = `
	o.id,
	o.customer_id,
	o.vendor_id,
	o.status,
	o.progress,
	v.lat,
	v.lng,
	o.delivery_lat,
	o.delivery_lng,
	o.courier_lat,
	o.courier_lng,
	o.courier_id
`

const ordersWithVendor = `FROM orders o JOIN vendors v ON v.id = o.vendor_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(rows rowScanner) (OrderReadModel, error) {
	var (
		m                        OrderReadModel
		id, customerID, vendorID uuid.UUID
		status                   int
		originLat, originLng     float64
		destinationLat, destLng  float64
		courierLat, courierLng   sql.NullFloat64
		courierID                uuid.NullUUID
	)

	if err := rows.Scan(
		&id,
		&customerID,
		&vendorID,
		&status,
		&m.Progress,
		&originLat,
		&originLng,
		&destinationLat,
		&destLng,
		&courierLat,
		&courierLng,
		&courierID,
	); err != nil {
		return OrderReadModel{}, err
	}

	var err error
	if m.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderReadModel{}, err
	}
	if m.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return OrderReadModel{}, err
	}
	if m.VendorID, err = kernel.UUIDFromBytes(vendorID[:]); err != nil {
		return OrderReadModel{}, err
	}

	m.Status = order.Status(status)
	if err = m.Status.Validate(); err != nil {
		return OrderReadModel{}, err
	}

	if m.Origin, err = kernel.NewLocation(originLat, originLng); err != nil {
		return OrderReadModel{}, err
	}
	if m.Destination, err = kernel.NewLocation(destinationLat, destLng); err != nil {
		return OrderReadModel{}, err
	}

	if courierLat.Valid && courierLng.Valid {
		pos, posErr := kernel.NewLocation(courierLat.Float64, courierLng.Float64)
		if posErr != nil {
			return OrderReadModel{}, posErr
		}
		m.CourierPosition = &pos
	}

	if courierID.Valid {
		cID, idErr := kernel.UUIDFromBytes(courierID.UUID[:])
		if idErr != nil {
			return OrderReadModel{}, idErr
		}
		m.CourierID = &cID
	}

	return m, nil
}
