package invoice

import (
	"context"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type ListFilter struct {
	RecipientID *uint
	IsPaid      *bool
	Year        int
	Page        int
	Limit       int
}

type Repository interface {
	// -------- Invoice --------
	FindByAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Invoice, error)

	Get(
		ctx context.Context,
		id uint,
	) (*models.Invoice, error)

	List(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Invoice, int64, error)

	Update(
		ctx context.Context,
		inv *models.Invoice,
	) error

	// Create inserts inv with the number already set.
	Create(
		ctx context.Context,
		inv *models.Invoice,
	) error

	// CreateNumbered assigns the next number of year and inserts inv while
	// holding a per-year lock, so concurrent callers never read the same max.
	CreateNumbered(
		ctx context.Context,
		inv *models.Invoice,
		year int,
	) error

	HighestNumber(
		ctx context.Context,
		year int,
	) (string, error)

	// -------- Settings --------
	EnsureSettings(
		ctx context.Context,
	) (*models.ShopSettings, error)

	UpdateSettings(
		ctx context.Context,
		s *models.ShopSettings,
	) error
}

// Sequencer reserves invoice numbers outside the database.
type Sequencer interface {
	Reserve(ctx context.Context, year int) (string, error)
}
