package appointment

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	"github.com/BruksfildServices01/barbershop-manager/internal/domain/actor"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/logger"
	"github.com/BruksfildServices01/barbershop-manager/internal/metrics"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

// UpdateInput carries the fields of a PUT or PATCH; nil means unchanged.
type UpdateInput struct {
	Status             *string
	CancellationReason *string
	Date               *time.Time
	Time               *string
	Notes              *string
	PaymentMethod      *string
}

func (in UpdateInput) editsDetails() bool {
	return in.Date != nil || in.Time != nil || in.Notes != nil || in.PaymentMethod != nil
}

type UpdateAppointment struct {
	repo     domain.Repository
	notifier CancellationNotifier
	invoicer Invoicer
	audit    *audit.Dispatcher
	now      timezone.Clock
	loc      *time.Location
}

func NewUpdateAppointment(
	repo domain.Repository,
	notifier CancellationNotifier,
	invoicer Invoicer,
	audit *audit.Dispatcher,
	now timezone.Clock,
	loc *time.Location,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:     repo,
		notifier: notifier,
		invoicer: invoicer,
		audit:    audit,
		now:      now,
		loc:      loc,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	a actor.Actor,
	id uint,
	in UpdateInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authorize(ctx, uc.repo, a, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Validate the request for this role
	// --------------------------------------------------

	var target domain.Status
	if in.Status != nil {
		target, err = domain.ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
	}

	if a.IsClient() {
		if in.editsDetails() || (in.Status != nil && target != domain.StatusCancelled) {
			return nil, httperr.ErrBusinessMsg("forbidden", "Clients can only cancel their appointments.")
		}
	}

	current := domain.Status(ap.Status)

	if in.editsDetails() && !current.IsOpen() {
		return nil, httperr.ErrBusinessMsg("invalid_state", "Only pending or confirmed appointments can be edited.")
	}

	if in.Time != nil {
		if _, _, err := domain.ParseClock(*in.Time); err != nil {
			return nil, httperr.ErrBusiness("invalid_appointment_time")
		}
	}

	if in.Status != nil {
		if err := domain.CanTransition(current, target); err != nil {
			return nil, httperr.ErrBusinessMsg(
				"invalid_state",
				"Cannot change status from "+string(current)+" to "+string(target)+".",
			)
		}
	}

	now := uc.now()
	cancelling := in.Status != nil && target == domain.StatusCancelled && current != domain.StatusCancelled
	completing := in.Status != nil && target == domain.StatusCompleted

	// The window is measured against the slot as booked, before any edit.
	if cancelling {
		if err := domain.CancellationAllowed(ap, now, uc.loc, a.IsAdmin()); err != nil {
			be, _ := httperr.AsBusiness(err)
			metrics.RecordCancellationRejected(be.Code)
			logger.Log.Info("cancellation rejected",
				zap.Uint("appointment_id", ap.ID),
				zap.String("role", a.Role),
				zap.String("reason", be.Code),
				zap.String("date", ap.Date.Format("2006-01-02")),
				zap.String("time", ap.Time),
			)
			if be.Code == "cancellation_window" {
				return nil, httperr.ErrBusinessMsg(be.Code, windowMessage(a))
			}
			return nil, httperr.ErrBusinessMsg(be.Code, "The appointment time could not be read; please contact the shop.")
		}
	}

	// --------------------------------------------------
	// Apply
	// --------------------------------------------------

	if in.Date != nil {
		ap.Date = *in.Date
	}
	if in.Time != nil {
		ap.Time = strings.TrimSpace(*in.Time)
	}
	if in.Notes != nil {
		ap.Notes = *in.Notes
	}
	if in.PaymentMethod != nil {
		ap.PaymentMethod = *in.PaymentMethod
	}

	switch {
	case cancelling:
		reason := defaultReason(a)
		if in.CancellationReason != nil && strings.TrimSpace(*in.CancellationReason) != "" {
			reason = strings.TrimSpace(*in.CancellationReason)
		}
		if err := domain.ApplyCancel(ap, reason, now); err != nil {
			return nil, err
		}
	case completing:
		if err := domain.ApplyComplete(ap, now); err != nil {
			return nil, err
		}
	case in.Status != nil && target == domain.StatusConfirmed:
		if err := domain.ApplyConfirm(ap); err != nil {
			return nil, err
		}
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Side effects (best effort)
	// --------------------------------------------------

	action := "appointment_updated"

	if cancelling {
		action = "appointment_cancelled"
		if uc.notifier != nil {
			uc.notifier.AppointmentCancelled(ctx, ap, a)
		}
	}

	if completing {
		action = "appointment_completed"
		if uc.invoicer != nil {
			if _, err := uc.invoicer.Execute(ctx, ap); err != nil {
				logger.Log.Error("invoice generation failed",
					zap.Uint("appointment_id", ap.ID),
					zap.Error(err),
				)
			}
		}
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &a.UserID,
		Action:   action,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"status": ap.Status},
	})

	return ap, nil
}
