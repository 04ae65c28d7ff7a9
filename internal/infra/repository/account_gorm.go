package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/perfectlysalon/admin-api/internal/models"
	"github.com/perfectlysalon/admin-api/internal/usecase/account"
)

type AccountGormRepository struct {
	db *gorm.DB
}

func NewAccountGormRepository(db *gorm.DB) *AccountGormRepository {
	return &AccountGormRepository{db: db}
}

func (r *AccountGormRepository) GetByID(
	ctx context.Context,
	id uint,
) (*models.Account, error) {

	var acc models.Account
	if err := r.db.WithContext(ctx).First(&acc, id).Error; err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *AccountGormRepository) GetByEmail(
	ctx context.Context,
	email string,
) (*models.Account, error) {

	var acc models.Account
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&acc).Error; err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *AccountGormRepository) GetByUsername(
	ctx context.Context,
	username string,
) (*models.Account, error) {

	var acc models.Account
	if err := r.db.WithContext(ctx).
		Where("LOWER(username) = ?", strings.ToLower(username)).
		First(&acc).Error; err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *AccountGormRepository) EmailExists(
	ctx context.Context,
	email string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AccountGormRepository) UsernameExists(
	ctx context.Context,
	username string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("LOWER(username) = ?", strings.ToLower(username)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AccountGormRepository) Create(
	ctx context.Context,
	acc *models.Account,
) error {
	return r.db.WithContext(ctx).Create(acc).Error
}

func (r *AccountGormRepository) SetBlocked(
	ctx context.Context,
	id uint,
	blocked bool,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", id).
		Update("is_blocked", blocked).Error
}

func (r *AccountGormRepository) List(
	ctx context.Context,
	search string,
) ([]models.Account, error) {

	q := r.db.WithContext(ctx).Model(&models.Account{})

	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(username) LIKE ?",
			like, like, like,
		)
	}

	var accounts []models.Account
	if err := q.Order("created_at DESC").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// Compile-time check
var _ account.Repository = (*AccountGormRepository)(nil)
