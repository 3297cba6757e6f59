package invoice

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/invoice"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/logger"
	"github.com/BruksfildServices01/barbershop-manager/internal/metrics"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

const (
	appointmentIndex = "idx_invoices_appointment_id"
	numberIndex      = "idx_invoices_number"
)

// GenerateForAppointment bills a completed appointment exactly once.
type GenerateForAppointment struct {
	repo  domain.Repository
	seq   domain.Sequencer
	audit *audit.Dispatcher
	now   timezone.Clock
	loc   *time.Location
}

// NewGenerateForAppointment accepts a nil seq; numbers then come from
// the database under an advisory lock.
func NewGenerateForAppointment(
	repo domain.Repository,
	seq domain.Sequencer,
	audit *audit.Dispatcher,
	now timezone.Clock,
	loc *time.Location,
) *GenerateForAppointment {
	return &GenerateForAppointment{
		repo:  repo,
		seq:   seq,
		audit: audit,
		now:   now,
		loc:   loc,
	}
}

func (uc *GenerateForAppointment) Execute(
	ctx context.Context,
	ap *models.Appointment,
) (*models.Invoice, error) {

	existing, err := uc.repo.FindByAppointment(ctx, ap.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	settings, err := uc.repo.EnsureSettings(ctx)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	inv := build(ap, settings, now)
	year := now.In(uc.loc).Year()

	if err := uc.create(ctx, inv, year); err != nil {
		// a concurrent completion got there first
		if httperr.IsUniqueViolationOn(err, appointmentIndex) {
			return uc.repo.FindByAppointment(ctx, ap.ID)
		}
		return nil, err
	}

	metrics.RecordInvoiceCreated("appointment_completed")
	logger.Log.Info("invoice created",
		zap.String("number", inv.Number),
		zap.Uint("appointment_id", ap.ID),
		zap.Float64("amount", inv.Amount),
	)

	uc.audit.Dispatch(audit.Event{
		Action:   "invoice_created",
		Entity:   "invoice",
		EntityID: &inv.ID,
		Metadata: map[string]any{"number": inv.Number, "appointment_id": ap.ID},
	})

	return inv, nil
}

func (uc *GenerateForAppointment) create(ctx context.Context, inv *models.Invoice, year int) error {
	if uc.seq == nil {
		return uc.repo.CreateNumbered(ctx, inv, year)
	}

	number, err := uc.seq.Reserve(ctx, year)
	if err != nil {
		logger.Log.Warn("invoice sequencer unavailable, numbering in database", zap.Error(err))
		return uc.repo.CreateNumbered(ctx, inv, year)
	}

	inv.Number = number
	err = uc.repo.Create(ctx, inv)
	if httperr.IsUniqueViolationOn(err, numberIndex) {
		logger.Log.Warn("reserved invoice number already taken, renumbering", zap.String("number", number))
		inv.ID = 0
		return uc.repo.CreateNumbered(ctx, inv, year)
	}
	return err
}

// build snapshots price and recipient as they are right now; the invoice
// does not follow later edits.
func build(ap *models.Appointment, settings *models.ShopSettings, now time.Time) *models.Invoice {
	apID := ap.ID
	clientID := ap.ClientID
	price := ap.Service.Price

	description := ap.Service.Name
	if description == "" {
		description = fmt.Sprintf("Appointment #%d", ap.ID)
	}

	currency := settings.Currency
	if currency == "" {
		currency = models.DefaultShopSettings().Currency
	}

	return &models.Invoice{
		AppointmentID:  &apID,
		RecipientID:    &clientID,
		RecipientName:  ap.Client.Name,
		RecipientEmail: ap.Client.Email,
		RecipientPhone: ap.Client.Phone,
		Amount:         price,
		Currency:       currency,
		IsPaid:         true,
		PaidAt:         &now,
		PaymentMethod:  ap.PaymentMethod,
		IssuedAt:       now,
		Notes: fmt.Sprintf("Appointment on %s at %s with %s",
			ap.Date.Format("2006-01-02"), ap.Time, ap.Barber.Name),
		Items: []models.InvoiceItem{{
			Description: description,
			Quantity:    1,
			UnitPrice:   price,
			Total:       price,
		}},
	}
}
