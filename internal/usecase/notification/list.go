package notification

import (
	"context"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/notification"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type ListResult struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unread_count"`
}

type ListNotifications struct {
	repo domain.Repository
}

func NewListNotifications(repo domain.Repository) *ListNotifications {
	return &ListNotifications{repo: repo}
}

func (uc *ListNotifications) Execute(
	ctx context.Context,
	userID uint,
	filter domain.ListFilter,
) (*ListResult, error) {

	items, err := uc.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	unread, err := uc.repo.UnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	if items == nil {
		items = []models.Notification{}
	}

	return &ListResult{Notifications: items, UnreadCount: unread}, nil
}
