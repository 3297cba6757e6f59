package appointment

import (
	"time"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func ApplyConfirm(ap *models.Appointment) error {
	if err := CanTransition(Status(ap.Status), StatusConfirmed); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	return nil
}

// ApplyCancel does not check the cancellation window; callers run
// CancellationAllowed first.
func ApplyCancel(ap *models.Appointment, reason string, now time.Time) error {
	if err := CanTransition(Status(ap.Status), StatusCancelled); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	ap.CancellationReason = reason
	return nil
}

// ApplyComplete stamps CompletedAt only on the first completion.
func ApplyComplete(ap *models.Appointment, now time.Time) error {
	if err := CanTransition(Status(ap.Status), StatusCompleted); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	if ap.CompletedAt == nil {
		ap.CompletedAt = &now
	}
	return nil
}
