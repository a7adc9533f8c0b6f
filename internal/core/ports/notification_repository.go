package ports

import (
	"context"

	"tracking/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for user notifications.
type NotificationRepository interface {
	// Add persists a new unread notification.
	Add(ctx context.Context, n *notification.Notification) error
}
