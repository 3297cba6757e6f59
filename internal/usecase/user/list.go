package user

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/barbershop-manager/internal/domain/actor"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/user"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type ListUsers struct {
	repo domain.Repository
}

func NewListUsers(repo domain.Repository) *ListUsers {
	return &ListUsers{repo: repo}
}

func (uc *ListUsers) Execute(
	ctx context.Context,
	a actor.Actor,
	filter domain.ListFilter,
) ([]models.User, int64, error) {

	if !a.IsAdmin() {
		return nil, 0, httperr.ErrBusiness("forbidden")
	}

	if filter.Role != "" {
		filter.Role = strings.ToUpper(strings.TrimSpace(filter.Role))
		if !domain.ValidRole(filter.Role) {
			return nil, 0, httperr.ErrBusiness("invalid_role")
		}
	}

	return uc.repo.ListUsers(ctx, filter)
}
