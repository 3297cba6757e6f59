package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/notification"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

const notificationListCap = 50

type NotificationGormRepository struct {
	db *gorm.DB
}

func NewNotificationGormRepository(db *gorm.DB) *NotificationGormRepository {
	return &NotificationGormRepository{db: db}
}

func (r *NotificationGormRepository) Create(
	ctx context.Context,
	n *models.Notification,
) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NotificationGormRepository) List(
	ctx context.Context,
	userID uint,
	filter domain.ListFilter,
) ([]models.Notification, error) {

	limit := filter.Limit
	if limit <= 0 || limit > notificationListCap {
		limit = notificationListCap
	}

	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.UnreadOnly {
		q = q.Where("read = ?", false)
	}

	var items []models.Notification
	if err := q.
		Order("id DESC").
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *NotificationGormRepository) ListAfter(
	ctx context.Context,
	userID uint,
	afterID uint,
) ([]models.Notification, error) {

	var items []models.Notification
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id > ?", userID, afterID).
		Order("id ASC").
		Limit(notificationListCap).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *NotificationGormRepository) LatestID(
	ctx context.Context,
	userID uint,
) (uint, error) {

	var id uint
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Select("COALESCE(MAX(id), 0)").
		Scan(&id).Error
	return id, err
}

func (r *NotificationGormRepository) UnreadCount(
	ctx context.Context,
	userID uint,
) (int64, error) {

	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&n).Error
	return n, err
}

func (r *NotificationGormRepository) MarkRead(
	ctx context.Context,
	userID uint,
	id uint,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("notification_not_found")
	}
	return nil
}

func (r *NotificationGormRepository) MarkAllRead(
	ctx context.Context,
	userID uint,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)
	return res.RowsAffected, res.Error
}

func (r *NotificationGormRepository) AdminIDs(
	ctx context.Context,
) ([]uint, error) {

	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Pluck("id", &ids).Error
	return ids, err
}

// Compile-time check
var _ domain.Repository = (*NotificationGormRepository)(nil)
