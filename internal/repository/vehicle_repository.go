package repository

import (
	"context"

	"gorm.io/gorm"

	"parkhub/internal/model"
)

// VehicleRepository defines vehicle persistence operations.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *model.Vehicle) error
	FindByPlate(ctx context.Context, plate string) (*model.Vehicle, error)
	ListByDriver(ctx context.Context, driverID uint) ([]model.Vehicle, error)
	DeleteOwned(ctx context.Context, id, driverID uint) (bool, error)
}

type vehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository creates a new vehicle repository.
func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

func (r *vehicleRepository) FindByPlate(ctx context.Context, plate string) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := r.db.WithContext(ctx).Where("plate_number = ?", plate).First(&vehicle).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) ListByDriver(ctx context.Context, driverID uint) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	if err := r.db.WithContext(ctx).Where("driver_id = ?", driverID).Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

// DeleteOwned deletes a vehicle scoped to its owning driver and reports
// whether a row was removed.
func (r *vehicleRepository) DeleteOwned(ctx context.Context, id, driverID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND driver_id = ?", id, driverID).
		Delete(&model.Vehicle{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
