package appointment

import (
	"context"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	"github.com/BruksfildServices01/barbershop-manager/internal/domain/actor"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type DeleteAppointment struct {
	repo   domain.Repository
	update *UpdateAppointment
	audit  *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	update *UpdateAppointment,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:   repo,
		update: update,
		audit:  audit,
	}
}

// Execute hard-deletes when permanent is set (admins only, no window);
// otherwise it soft-cancels through the update path and returns the
// cancelled appointment.
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	a actor.Actor,
	id uint,
	permanent bool,
	reason string,
) (*models.Appointment, error) {

	if !permanent {
		status := string(domain.StatusCancelled)
		in := UpdateInput{Status: &status}
		if reason != "" {
			in.CancellationReason = &reason
		}
		return uc.update.Execute(ctx, a, id, in)
	}

	if !a.IsAdmin() {
		return nil, httperr.ErrBusinessMsg("forbidden", "Only admins can permanently delete appointments.")
	}

	if _, err := uc.repo.GetAppointment(ctx, id); err != nil {
		return nil, err
	}

	if err := uc.repo.DeleteAppointment(ctx, id); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &a.UserID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &id,
	})

	return nil, nil
}
