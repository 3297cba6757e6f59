package user

import (
	"context"

	"github.com/BruksfildServices01/barbershop-manager/internal/domain/actor"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/user"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type GetUser struct {
	repo domain.Repository
}

func NewGetUser(repo domain.Repository) *GetUser {
	return &GetUser{repo: repo}
}

func (uc *GetUser) Execute(
	ctx context.Context,
	a actor.Actor,
	id uint,
) (*models.User, error) {

	if !a.IsAdmin() && a.UserID != id {
		return nil, httperr.ErrBusiness("forbidden")
	}
	return uc.repo.GetUser(ctx, id)
}
