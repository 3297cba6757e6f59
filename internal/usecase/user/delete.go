package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	"github.com/BruksfildServices01/barbershop-manager/internal/domain/actor"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/user"
	"github.com/BruksfildServices01/barbershop-manager/internal/logger"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

// CancellationNote is written on appointments cancelled by an account removal.
const CancellationNote = "Cancelled automatically: client account was deleted"

type DeleteUser struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   timezone.Clock
}

func NewDeleteUser(repo domain.Repository, audit *audit.Dispatcher, now timezone.Clock) *DeleteUser {
	return &DeleteUser{repo: repo, audit: audit, now: now}
}

func (uc *DeleteUser) Execute(
	ctx context.Context,
	a actor.Actor,
	id uint,
) error {

	target, err := uc.repo.GetUser(ctx, id)
	if err != nil {
		return err
	}

	if err := domain.CanDelete(a, target); err != nil {
		return err
	}

	if err := uc.repo.DeleteCascade(ctx, id, CancellationNote, uc.now()); err != nil {
		return err
	}

	logger.Log.Info("user deleted",
		zap.Uint("user_id", id),
		zap.Uint("by", a.UserID),
	)

	uc.audit.Dispatch(audit.Event{
		UserID:   &a.UserID,
		Action:   "user_deleted",
		Entity:   "user",
		EntityID: &id,
		Metadata: map[string]any{"email": target.Email, "role": target.Role},
	})

	return nil
}
