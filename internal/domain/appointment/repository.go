package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type ListFilter struct {
	ClientID *uint
	BarberID *uint
	Status   *Status
	From     *time.Time
	To       *time.Time
}

type Repository interface {
	// -------- Appointment (read) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Appointment, error)

	// -------- Appointment (state change) --------
	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error

	// -------- Barber --------
	GetBarberByUserID(
		ctx context.Context,
		userID uint,
	) (*models.Barber, error)

	// -------- Reminders --------
	ListDueForReminder(
		ctx context.Context,
		day time.Time,
	) ([]models.Appointment, error)

	MarkReminderSent(
		ctx context.Context,
		id uint,
		at time.Time,
	) error
}
