// Package notificationrepo persists the user notifications written on every
// order status change.
package notificationrepo

import (
	"time"

	"tracking/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO is the row layout of the notifications table.
// Rows are created unread; marking them read belongs to the notification service.
type NotificationDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Type      string    `gorm:"type:varchar(32);not null"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Message   string    `gorm:"type:text;not null"`
	Read      bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName overrides GORM's default "notification_dtos".
func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(n *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID().Bytes(),
		UserID:    n.UserID().Bytes(),
		OrderID:   n.OrderID().Bytes(),
		Type:      n.Type(),
		Title:     n.Title(),
		Message:   n.Message(),
		Read:      false,
		CreatedAt: n.CreatedAt().UTC(),
	}
}
