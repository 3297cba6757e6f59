package invoice

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	"github.com/BruksfildServices01/barbershop-manager/internal/domain/actor"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/invoice"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

type MarkPaid struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   timezone.Clock
}

func NewMarkPaid(repo domain.Repository, audit *audit.Dispatcher, now timezone.Clock) *MarkPaid {
	return &MarkPaid{repo: repo, audit: audit, now: now}
}

func (uc *MarkPaid) Execute(
	ctx context.Context,
	a actor.Actor,
	id uint,
	method string,
) (*models.Invoice, error) {

	if !a.IsAdmin() {
		return nil, httperr.ErrBusiness("forbidden")
	}

	inv, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.IsPaid {
		return nil, httperr.ErrBusiness("invoice_already_paid")
	}

	now := uc.now()
	inv.IsPaid = true
	inv.PaidAt = &now
	if m := strings.TrimSpace(method); m != "" {
		inv.PaymentMethod = m
	} else if inv.PaymentMethod == "" {
		inv.PaymentMethod = "cash"
	}

	if err := uc.repo.Update(ctx, inv); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &a.UserID,
		Action:   "invoice_paid",
		Entity:   "invoice",
		EntityID: &inv.ID,
		Metadata: map[string]any{"method": inv.PaymentMethod},
	})

	return inv, nil
}
