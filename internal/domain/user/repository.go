package user

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type ListFilter struct {
	Role  string
	Query string
	Page  int
	Limit int
}

type Repository interface {
	GetUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// FindByEmail returns nil, nil when no user has email.
	FindByEmail(
		ctx context.Context,
		email string,
	) (*models.User, error)

	ListUsers(
		ctx context.Context,
		filter ListFilter,
	) ([]models.User, int64, error)

	CreateUser(
		ctx context.Context,
		u *models.User,
	) error

	UpdateUser(
		ctx context.Context,
		u *models.User,
	) error

	// DeleteCascade removes the user and every dependent row atomically.
	// Open appointments are first cancelled with note.
	DeleteCascade(
		ctx context.Context,
		userID uint,
		note string,
		now time.Time,
	) error
}
