package invoice

import (
	"context"

	"github.com/BruksfildServices01/barbershop-manager/internal/domain/actor"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/invoice"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type GetInvoice struct {
	repo domain.Repository
}

func NewGetInvoice(repo domain.Repository) *GetInvoice {
	return &GetInvoice{repo: repo}
}

func (uc *GetInvoice) Execute(ctx context.Context, a actor.Actor, id uint) (*models.Invoice, error) {
	inv, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(a, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

type ListInvoices struct {
	repo domain.Repository
}

func NewListInvoices(repo domain.Repository) *ListInvoices {
	return &ListInvoices{repo: repo}
}

// Execute pins clients to their own invoices whatever the filter says.
func (uc *ListInvoices) Execute(
	ctx context.Context,
	a actor.Actor,
	filter domain.ListFilter,
) ([]models.Invoice, int64, error) {

	switch {
	case a.IsAdmin():
	case a.IsClient():
		filter.RecipientID = &a.UserID
	default:
		return nil, 0, httperr.ErrBusiness("forbidden")
	}

	return uc.repo.List(ctx, filter)
}
