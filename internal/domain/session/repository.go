package session

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type Repository interface {
	Create(
		ctx context.Context,
		s *models.Session,
	) error

	// FindActive returns the session for tokenID unless it is missing or expired.
	FindActive(
		ctx context.Context,
		tokenID string,
		now time.Time,
	) (*models.Session, error)

	Delete(
		ctx context.Context,
		tokenID string,
	) error

	DeleteExpired(
		ctx context.Context,
		now time.Time,
	) (int64, error)
}
