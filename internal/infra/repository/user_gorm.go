package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	apdomain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/user"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Preload("Barber").
		First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("user_not_found")
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) FindByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {

	var u models.User
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) ListUsers(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.User, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.User{})

	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}
	if s := strings.TrimSpace(filter.Query); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit, offset := paginate(filter.Page, filter.Limit)

	var users []models.User
	if err := q.
		Preload("Barber").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserGormRepository) CreateUser(
	ctx context.Context,
	u *models.User,
) error {
	return r.db.WithContext(ctx).Omit("Barber").Create(u).Error
}

func (r *UserGormRepository) UpdateUser(
	ctx context.Context,
	u *models.User,
) error {
	return r.db.WithContext(ctx).Omit("Barber").Save(u).Error
}

// ===============================
// Cascade
// ===============================

type cascadeStep struct {
	name string
	run  func(tx *gorm.DB) error
}

// DeleteCascade runs the ordered cleanup in one transaction. Any failing
// step rolls back everything before it.
func (r *UserGormRepository) DeleteCascade(
	ctx context.Context,
	userID uint,
	note string,
	now time.Time,
) error {

	steps := []cascadeStep{
		{"cancel open appointments", func(tx *gorm.DB) error {
			return tx.Model(&models.Appointment{}).
				Where("client_id = ? AND status IN ?", userID, []string{
					string(apdomain.StatusPending),
					string(apdomain.StatusConfirmed),
				}).
				Updates(map[string]any{
					"status":              string(apdomain.StatusCancelled),
					"cancellation_reason": note,
					"cancelled_at":        now,
				}).Error
		}},
		{"accounts", deleteWhere(&models.Account{}, "user_id = ?", userID)},
		{"sessions", deleteWhere(&models.Session{}, "user_id = ?", userID)},
		{"appointments", func(tx *gorm.DB) error {
			sub := tx.Model(&models.Appointment{}).Select("id").Where("client_id = ?", userID)
			if err := tx.Model(&models.Invoice{}).
				Where("appointment_id IN (?)", sub).
				Update("appointment_id", nil).Error; err != nil {
				return err
			}
			if err := tx.Where("appointment_id IN (?)", sub).Delete(&models.Review{}).Error; err != nil {
				return err
			}
			return tx.Where("client_id = ?", userID).Delete(&models.Appointment{}).Error
		}},
		{"reviews", deleteWhere(&models.Review{}, "user_id = ?", userID)},
		{"posts", func(tx *gorm.DB) error {
			sub := tx.Model(&models.Post{}).Select("id").Where("author_id = ?", userID)
			if err := tx.Where("post_id IN (?)", sub).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			return tx.Where("author_id = ?", userID).Delete(&models.Post{}).Error
		}},
		{"comments", deleteWhere(&models.Comment{}, "author_id = ?", userID)},
		{"messages", deleteWhere(&models.Message{}, "sender_id = ? OR receiver_id = ?", userID, userID)},
		{"notifications", deleteWhere(&models.Notification{}, "user_id = ?", userID)},
		{"push subscriptions", deleteWhere(&models.PushSubscription{}, "user_id = ?", userID)},
		{"invoices", func(tx *gorm.DB) error {
			sub := tx.Model(&models.Invoice{}).Select("id").Where("recipient_id = ?", userID)
			if err := tx.Where("invoice_id IN (?)", sub).Delete(&models.InvoiceItem{}).Error; err != nil {
				return err
			}
			return tx.Where("recipient_id = ?", userID).Delete(&models.Invoice{}).Error
		}},
		{"user", func(tx *gorm.DB) error {
			res := tx.Delete(&models.User{}, userID)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return httperr.ErrBusiness("user_not_found")
			}
			return nil
		}},
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, s := range steps {
			if err := s.run(tx); err != nil {
				return fmt.Errorf("delete user %d: %s: %w", userID, s.name, err)
			}
		}
		return nil
	})
}

func deleteWhere(model any, query string, args ...any) func(tx *gorm.DB) error {
	return func(tx *gorm.DB) error {
		return tx.Where(query, args...).Delete(model).Error
	}
}

// Compile-time check
var _ domain.Repository = (*UserGormRepository)(nil)
