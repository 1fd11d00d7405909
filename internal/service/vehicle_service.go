package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "parkhub/internal/errors"
	"parkhub/internal/model"
	"parkhub/internal/repository"
)

// VehicleService handles driver vehicle management.
type VehicleService interface {
	RegisterVehicle(ctx context.Context, driverID uint, plate, vehicleModel, color string) (*model.Vehicle, error)
	ListVehicles(ctx context.Context, driverID uint) ([]model.Vehicle, error)
	RemoveVehicle(ctx context.Context, driverID, vehicleID uint) error
}

type vehicleService struct {
	repo repository.VehicleRepository
}

// NewVehicleService creates a new vehicle service.
func NewVehicleService(repo repository.VehicleRepository) VehicleService {
	return &vehicleService{repo: repo}
}

// RegisterVehicle adds a vehicle to the driver's profile.
func (s *vehicleService) RegisterVehicle(ctx context.Context, driverID uint, plate, vehicleModel, color string) (*model.Vehicle, error) {
	existing, err := s.repo.FindByPlate(ctx, plate)
	if err == nil && existing != nil {
		return nil, apperrors.ErrPlateTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check plate: %w", err)
	}

	vehicle := &model.Vehicle{
		DriverID:    driverID,
		PlateNumber: plate,
		Model:       vehicleModel,
		Color:       color,
	}
	if err := s.repo.Create(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("create vehicle: %w", err)
	}
	return vehicle, nil
}

// ListVehicles lists the driver's vehicles.
func (s *vehicleService) ListVehicles(ctx context.Context, driverID uint) ([]model.Vehicle, error) {
	return s.repo.ListByDriver(ctx, driverID)
}

// RemoveVehicle deletes an owned vehicle. Absent and not-owned look the
// same to the caller.
func (s *vehicleService) RemoveVehicle(ctx context.Context, driverID, vehicleID uint) error {
	deleted, err := s.repo.DeleteOwned(ctx, vehicleID, driverID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrVehicleNotFound
	}
	return nil
}
