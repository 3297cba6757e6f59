package notification

import (
	"context"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type ListFilter struct {
	UnreadOnly bool
	Limit      int
}

type Repository interface {
	Create(
		ctx context.Context,
		n *models.Notification,
	) error

	List(
		ctx context.Context,
		userID uint,
		filter ListFilter,
	) ([]models.Notification, error)

	// ListAfter returns the user's notifications with id > afterID, oldest first.
	ListAfter(
		ctx context.Context,
		userID uint,
		afterID uint,
	) ([]models.Notification, error)

	LatestID(
		ctx context.Context,
		userID uint,
	) (uint, error)

	UnreadCount(
		ctx context.Context,
		userID uint,
	) (int64, error)

	MarkRead(
		ctx context.Context,
		userID uint,
		id uint,
	) error

	MarkAllRead(
		ctx context.Context,
		userID uint,
	) (int64, error)

	// AdminIDs lists every ADMIN user; they are copied on shop-wide events.
	AdminIDs(
		ctx context.Context,
	) ([]uint, error)
}

// PollCursor stores the last notification id each user's bell has seen.
type PollCursor interface {
	// Get reports ok=false when the user has never polled.
	Get(ctx context.Context, userID uint) (id uint, ok bool, err error)
	Set(ctx context.Context, userID uint, id uint) error
}
