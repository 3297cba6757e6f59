package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/invoice"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

const defaultPageSize = 20

type InvoiceGormRepository struct {
	db *gorm.DB
}

func NewInvoiceGormRepository(db *gorm.DB) *InvoiceGormRepository {
	return &InvoiceGormRepository{db: db}
}

// --------------------------------------------------
// Invoice
// --------------------------------------------------

// FindByAppointment returns nil, nil when the appointment has no invoice.
func (r *InvoiceGormRepository) FindByAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Invoice, error) {

	var inv models.Invoice
	err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceGormRepository) Get(
	ctx context.Context,
	id uint,
) (*models.Invoice, error) {

	var inv models.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&inv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("invoice_not_found")
		}
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceGormRepository) List(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Invoice, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.Invoice{})

	if filter.RecipientID != nil {
		q = q.Where("recipient_id = ?", *filter.RecipientID)
	}
	if filter.IsPaid != nil {
		q = q.Where("is_paid = ?", *filter.IsPaid)
	}
	if filter.Year > 0 {
		q = q.Where("number LIKE ?", domain.YearPrefix(filter.Year)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit, offset := paginate(filter.Page, filter.Limit)

	var invoices []models.Invoice
	if err := q.
		Order("issued_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&invoices).Error; err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

func (r *InvoiceGormRepository) Update(
	ctx context.Context,
	inv *models.Invoice,
) error {
	return r.db.WithContext(ctx).
		Omit("Items", "Appointment").
		Save(inv).Error
}

func (r *InvoiceGormRepository) Create(
	ctx context.Context,
	inv *models.Invoice,
) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

// CreateNumbered serialises numbering per year with a transaction-scoped
// advisory lock; the lock is released on commit or rollback.
func (r *InvoiceGormRepository) CreateNumbered(
	ctx context.Context,
	inv *models.Invoice,
	year int,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", advisoryKey(year)).Error; err != nil {
			return fmt.Errorf("lock invoice numbering: %w", err)
		}

		highest, err := highestNumber(tx, year)
		if err != nil {
			return err
		}

		inv.Number = domain.NextNumber(year, highest)
		return tx.Create(inv).Error
	})
}

func (r *InvoiceGormRepository) HighestNumber(
	ctx context.Context,
	year int,
) (string, error) {
	return highestNumber(r.db.WithContext(ctx), year)
}

// highestNumber orders by length first so INV-2025-10000 beats INV-2025-9999.
func highestNumber(db *gorm.DB, year int) (string, error) {
	var numbers []string
	if err := db.Model(&models.Invoice{}).
		Where("number LIKE ?", domain.YearPrefix(year)+"%").
		Order("length(number) DESC").
		Order("number DESC").
		Limit(1).
		Pluck("number", &numbers).Error; err != nil {
		return "", err
	}
	if len(numbers) == 0 {
		return "", nil
	}
	return numbers[0], nil
}

func advisoryKey(year int) int64 {
	// 0x494e56 is "INV"
	return int64(0x494e56)<<32 | int64(year)
}

// --------------------------------------------------
// Settings
// --------------------------------------------------

func (r *InvoiceGormRepository) EnsureSettings(
	ctx context.Context,
) (*models.ShopSettings, error) {

	var s models.ShopSettings
	err := r.db.WithContext(ctx).Order("id ASC").First(&s).Error
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	s = models.DefaultShopSettings()
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *InvoiceGormRepository) UpdateSettings(
	ctx context.Context,
	s *models.ShopSettings,
) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func paginate(page, limit int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = defaultPageSize
	}
	if page < 1 {
		page = 1
	}
	return limit, (page - 1) * limit
}

// Compile-time check
var _ domain.Repository = (*InvoiceGormRepository)(nil)
