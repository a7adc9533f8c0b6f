package queries

import (
	"errors"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

// DefaultNotificationsLimit caps GetUserNotificationsQuery when no limit is given.
const DefaultNotificationsLimit = 50

var (
	ErrGetUserNotificationsQueryIsNotConstructed = errors.New(
		"GetUserNotificationsQuery must be created via NewGetUserNotificationsQuery constructor",
	)
)

// GetUserNotificationsQuery lists a user's notifications, newest first.
type GetUserNotificationsQuery struct {
	userID     kernel.UUID
	unreadOnly bool
	limit      int
	guard      guard.ConstructorGuard
}

// NewGetUserNotificationsQuery creates the query. A limit of 0 means
// DefaultNotificationsLimit.
func NewGetUserNotificationsQuery(userID kernel.UUID, unreadOnly bool, limit int) (GetUserNotificationsQuery, error) {
	query := GetUserNotificationsQuery{
		userID:     userID,
		unreadOnly: unreadOnly,
		limit:      limit,
		guard:      guard.NewConstructorGuard(),
	}

	if limit == 0 {
		query.limit = DefaultNotificationsLimit
	}

	if err := errors.Join(
		validateUserID(userID),
		validateLimit(query.limit),
	); err != nil {
		return GetUserNotificationsQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUserNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetUserNotificationsQueryIsNotConstructed)
}

func (q GetUserNotificationsQuery) UserID() kernel.UUID { return q.userID }
func (q GetUserNotificationsQuery) UnreadOnly() bool    { return q.unreadOnly }
func (q GetUserNotificationsQuery) Limit() int          { return q.limit }

func validateUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("user ID", err)
	}
	return nil
}

func validateLimit(limit int) error {
	if limit < 1 || limit > 500 {
		return errs.NewValueIsOutOfRangeError("limit", limit, 1, 500)
	}
	return nil
}

// GetUserNotificationsQueryResponse is one notification row.
type GetUserNotificationsQueryResponse struct {
	ID        kernel.UUID
	OrderID   kernel.UUID
	Type      string
	Title     string
	Message   string
	Read      bool
	CreatedAt time.Time
}
