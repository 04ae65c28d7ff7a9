package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/perfectlysalon/admin-api/internal/domain/appointment"
	"github.com/perfectlysalon/admin-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsByStatus(
	ctx context.Context,
	status domain.Status,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsByDate(
	ctx context.Context,
	date string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("date = ?", date).
		Order("created_at DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) CountActiveAtSlot(
	ctx context.Context,
	date string,
	timeLabel string,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"date = ? AND time = ? AND status IN ?",
			date,
			timeLabel,
			[]string{string(domain.StatusPending), string(domain.StatusConfirmed)},
		).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// --------------------------------------------------
// Product usage
// --------------------------------------------------

func (r *AppointmentGormRepository) ListProductUsage(
	ctx context.Context,
	appointmentID uint,
) ([]models.ProductUsage, error) {

	var rows []models.ProductUsage
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Where("appointment_id = ?", appointmentID).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ReplaceProductUsage swaps the full usage set in one transaction.
// Delete-then-insert is deliberate: the set is tiny and a partial diff
// is not worth the bookkeeping.
func (r *AppointmentGormRepository) ReplaceProductUsage(
	ctx context.Context,
	appointmentID uint,
	rows []models.ProductUsage,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("appointment_id = ?", appointmentID).
			Delete(&models.ProductUsage{}).Error; err != nil {
			return err
		}

		if len(rows) == 0 {
			return nil
		}

		for i := range rows {
			rows[i].ID = 0
			rows[i].AppointmentID = appointmentID
		}
		return tx.Create(&rows).Error
	})
}

func (r *AppointmentGormRepository) DeductInventory(
	ctx context.Context,
	productID uint,
	qty int,
) (bool, error) {

	clamped := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.InventoryItem
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&item, productID).Error; err != nil {
			return err
		}

		remaining := item.Quantity - qty
		if remaining < 0 {
			remaining = 0
			clamped = true
		}

		return tx.Model(&models.InventoryItem{}).
			Where("id = ?", productID).
			Update("quantity", remaining).Error
	})

	return clamped, err
}

// --------------------------------------------------
// Catalog / accounts
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) GetAddon(
	ctx context.Context,
	id uint,
) (*models.ServiceAddon, error) {

	var addon models.ServiceAddon
	if err := r.db.WithContext(ctx).First(&addon, id).Error; err != nil {
		return nil, err
	}
	return &addon, nil
}

func (r *AppointmentGormRepository) GetAccount(
	ctx context.Context,
	id uint,
) (*models.Account, error) {

	var acc models.Account
	if err := r.db.WithContext(ctx).First(&acc, id).Error; err != nil {
		return nil, err
	}
	return &acc, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
