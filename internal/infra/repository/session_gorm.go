package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/session"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type SessionGormRepository struct {
	db *gorm.DB
}

func NewSessionGormRepository(db *gorm.DB) *SessionGormRepository {
	return &SessionGormRepository{db: db}
}

func (r *SessionGormRepository) Create(
	ctx context.Context,
	s *models.Session,
) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SessionGormRepository) FindActive(
	ctx context.Context,
	tokenID string,
	now time.Time,
) (*models.Session, error) {

	var s models.Session
	if err := r.db.WithContext(ctx).
		Where("token_id = ? AND expires_at > ?", tokenID, now).
		First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("session_not_found")
		}
		return nil, err
	}
	return &s, nil
}

func (r *SessionGormRepository) Delete(
	ctx context.Context,
	tokenID string,
) error {
	return r.db.WithContext(ctx).
		Where("token_id = ?", tokenID).
		Delete(&models.Session{}).Error
}

func (r *SessionGormRepository) DeleteExpired(
	ctx context.Context,
	now time.Time,
) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&models.Session{})
	return res.RowsAffected, res.Error
}

// Compile-time check
var _ domain.Repository = (*SessionGormRepository)(nil)
