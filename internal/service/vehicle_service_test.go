package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "parkhub/internal/errors"
	"parkhub/internal/model"
)

// MockVehicleRepository is a mock implementation of VehicleRepository.
type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) FindByPlate(ctx context.Context, plate string) (*model.Vehicle, error) {
	args := m.Called(ctx, plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) ListByDriver(ctx context.Context, driverID uint) ([]model.Vehicle, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) DeleteOwned(ctx context.Context, id, driverID uint) (bool, error) {
	args := m.Called(ctx, id, driverID)
	return args.Bool(0), args.Error(1)
}

func TestVehicleService_RegisterVehicle(t *testing.T) {
	t.Run("successful registration", func(t *testing.T) {
		mockRepo := new(MockVehicleRepository)
		mockRepo.On("FindByPlate", mock.Anything, "KDA 123A").Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Vehicle")).Return(nil)

		svc := NewVehicleService(mockRepo)
		vehicle, err := svc.RegisterVehicle(context.Background(), 1, "KDA 123A", "Corolla", "silver")

		assert.NoError(t, err)
		assert.Equal(t, uint(1), vehicle.DriverID)
		assert.Equal(t, "KDA 123A", vehicle.PlateNumber)
		mockRepo.AssertExpectations(t)
	})

	t.Run("duplicate plate is rejected", func(t *testing.T) {
		mockRepo := new(MockVehicleRepository)
		mockRepo.On("FindByPlate", mock.Anything, "KDA 123A").Return(&model.Vehicle{PlateNumber: "KDA 123A"}, nil)

		svc := NewVehicleService(mockRepo)
		_, err := svc.RegisterVehicle(context.Background(), 1, "KDA 123A", "Corolla", "silver")

		assert.ErrorIs(t, err, apperrors.ErrPlateTaken)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestVehicleService_RemoveVehicle(t *testing.T) {
	t.Run("not owned looks like not found", func(t *testing.T) {
		mockRepo := new(MockVehicleRepository)
		mockRepo.On("DeleteOwned", mock.Anything, uint(5), uint(2)).Return(false, nil)

		svc := NewVehicleService(mockRepo)
		err := svc.RemoveVehicle(context.Background(), 2, 5)

		assert.ErrorIs(t, err, apperrors.ErrVehicleNotFound)
	})

	t.Run("owned vehicle is removed", func(t *testing.T) {
		mockRepo := new(MockVehicleRepository)
		mockRepo.On("DeleteOwned", mock.Anything, uint(5), uint(1)).Return(true, nil)

		svc := NewVehicleService(mockRepo)
		err := svc.RemoveVehicle(context.Background(), 1, 5)

		assert.NoError(t, err)
	})
}
