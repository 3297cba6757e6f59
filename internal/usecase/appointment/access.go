package appointment

import (
	"context"

	"github.com/BruksfildServices01/barbershop-manager/internal/domain/actor"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

// CancellationNotifier is told after an appointment is cancelled.
type CancellationNotifier interface {
	AppointmentCancelled(ctx context.Context, ap *models.Appointment, by actor.Actor)
}

// Invoicer bills a completed appointment; it returns the existing invoice
// when there already is one.
type Invoicer interface {
	Execute(ctx context.Context, ap *models.Appointment) (*models.Invoice, error)
}

// authorize enforces role scoping: admins see everything, barbers their
// own chair, clients their own bookings.
func authorize(
	ctx context.Context,
	repo domain.Repository,
	a actor.Actor,
	ap *models.Appointment,
) error {

	switch {
	case a.IsAdmin():
		return nil
	case a.IsBarber():
		barber, err := repo.GetBarberByUserID(ctx, a.UserID)
		if err != nil {
			if httperr.IsBusiness(err, "barber_not_found") {
				return httperr.ErrBusiness("forbidden")
			}
			return err
		}
		if barber.ID != ap.BarberID {
			return httperr.ErrBusiness("forbidden")
		}
		return nil
	case a.IsClient():
		if ap.ClientID != a.UserID {
			return httperr.ErrBusiness("forbidden")
		}
		return nil
	}
	return httperr.ErrBusiness("forbidden")
}

func windowMessage(a actor.Actor) string {
	if a.IsBarber() {
		return "Appointments less than 24 hours away can only be cancelled by an admin."
	}
	return "Appointments can only be cancelled at least 24 hours in advance. Please contact the shop."
}

func defaultReason(a actor.Actor) string {
	return "Cancelled by " + a.Label()
}
