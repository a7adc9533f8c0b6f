package queries

import (
	"context"
	"time"

	"tracking/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUserNotificationsQueryHandler reads the notifications table.
type GetUserNotificationsQueryHandler struct {
	db *gorm.DB
}

// NewGetUserNotificationsQueryHandler creates a handler for notification listing queries.
func NewGetUserNotificationsQueryHandler(db *gorm.DB) GetUserNotificationsQueryHandler {
	return GetUserNotificationsQueryHandler{db: db}
}

// Handle returns the user's notifications, newest first.
func (h GetUserNotificationsQueryHandler) Handle(
	ctx context.Context,
	query GetUserNotificationsQuery,
) ([]GetUserNotificationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			type,
			title,
			message,
			read,
			created_at
		FROM notifications
		WHERE user_id = ? AND (NOT ? OR read = false)
		ORDER BY created_at DESC, id
		LIMIT ?
	`, query.UserID().Bytes(), query.UnreadOnly(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]GetUserNotificationsQueryResponse, 0)
	for rows.Next() {
		var n GetUserNotificationsQueryResponse
		var id, orderID uuid.UUID
		var createdAt time.Time

		if err = rows.Scan(&id, &orderID, &n.Type, &n.Title, &n.Message, &n.Read, &createdAt); err != nil {
			return nil, err
		}

		if n.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if n.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		n.CreatedAt = createdAt.UTC()

		notifications = append(notifications, n)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}
