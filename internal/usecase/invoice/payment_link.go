package invoice

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	"github.com/BruksfildServices01/barbershop-manager/internal/domain/actor"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/invoice"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/infra/payment"
	"github.com/BruksfildServices01/barbershop-manager/internal/logger"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type CreatePaymentLink struct {
	repo     domain.Repository
	provider payment.LinkProvider
	audit    *audit.Dispatcher
}

func NewCreatePaymentLink(
	repo domain.Repository,
	provider payment.LinkProvider,
	audit *audit.Dispatcher,
) *CreatePaymentLink {
	return &CreatePaymentLink{
		repo:     repo,
		provider: provider,
		audit:    audit,
	}
}

// Execute reuses an existing link rather than opening a second checkout.
func (uc *CreatePaymentLink) Execute(
	ctx context.Context,
	a actor.Actor,
	id uint,
) (*models.Invoice, error) {

	inv, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(a, inv); err != nil {
		return nil, err
	}
	if inv.IsPaid {
		return nil, httperr.ErrBusiness("invoice_already_paid")
	}
	if inv.PaymentLink != "" {
		return inv, nil
	}

	link, err := uc.provider.CreateLink(ctx, inv)
	if errors.Is(err, payment.ErrNotConfigured) {
		return nil, httperr.ErrBusinessMsg("payments_not_configured", "Online payments are not configured.")
	}
	if err != nil {
		logger.Log.Error("create payment link", zap.String("number", inv.Number), zap.Error(err))
		return nil, httperr.ErrBusinessMsg("payment_provider_error", "The payment provider did not respond.")
	}

	inv.PaymentLink = link
	if err := uc.repo.Update(ctx, inv); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &a.UserID,
		Action:   "invoice_payment_link",
		Entity:   "invoice",
		EntityID: &inv.ID,
	})

	return inv, nil
}
