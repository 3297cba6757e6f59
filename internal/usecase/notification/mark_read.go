package notification

import (
	"context"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/notification"
)

type MarkRead struct {
	repo domain.Repository
}

func NewMarkRead(repo domain.Repository) *MarkRead {
	return &MarkRead{repo: repo}
}

// Execute only touches notifications owned by userID.
func (uc *MarkRead) Execute(ctx context.Context, userID, id uint) error {
	return uc.repo.MarkRead(ctx, userID, id)
}

type MarkAllRead struct {
	repo domain.Repository
}

func NewMarkAllRead(repo domain.Repository) *MarkAllRead {
	return &MarkAllRead{repo: repo}
}

func (uc *MarkAllRead) Execute(ctx context.Context, userID uint) (int64, error) {
	return uc.repo.MarkAllRead(ctx, userID)
}
