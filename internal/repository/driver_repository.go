package repository

import (
	"context"

	"gorm.io/gorm"

	"parkhub/internal/model"
)

// DriverRepository defines driver persistence operations.
type DriverRepository interface {
	Create(ctx context.Context, driver *model.Driver) error
	Update(ctx context.Context, driver *model.Driver) error
	FindByID(ctx context.Context, id uint) (*model.Driver, error)
	FindByEmail(ctx context.Context, email string) (*model.Driver, error)
	Count(ctx context.Context) (int64, error)
}

type driverRepository struct {
	db *gorm.DB
}

// NewDriverRepository creates a new driver repository.
func NewDriverRepository(db *gorm.DB) DriverRepository {
	return &driverRepository{db: db}
}

// Create creates a new driver.
func (r *driverRepository) Create(ctx context.Context, driver *model.Driver) error {
	return r.db.WithContext(ctx).Create(driver).Error
}

// Update updates an existing driver.
func (r *driverRepository) Update(ctx context.Context, driver *model.Driver) error {
	return r.db.WithContext(ctx).Save(driver).Error
}

// FindByID finds a driver by ID.
func (r *driverRepository) FindByID(ctx context.Context, id uint) (*model.Driver, error) {
	var driver model.Driver
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&driver).Error; err != nil {
		return nil, err
	}
	return &driver, nil
}

// FindByEmail finds a driver by email.
func (r *driverRepository) FindByEmail(ctx context.Context, email string) (*model.Driver, error) {
	var driver model.Driver
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&driver).Error; err != nil {
		return nil, err
	}
	return &driver, nil
}

// Count returns the number of registered drivers.
func (r *driverRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Driver{}).Count(&count).Error
	return count, err
}
