package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "parkhub/internal/errors"
	"parkhub/internal/model"
	"parkhub/internal/repository"
)

func TestSpaceService_GetSpace(t *testing.T) {
	t.Run("missing space maps to domain error", func(t *testing.T) {
		mockRepo := new(MockSpaceRepository)
		mockRepo.On("FindByID", mock.Anything, uint(42)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewSpaceService(mockRepo, nil)
		_, err := svc.GetSpace(context.Background(), 42)

		assert.ErrorIs(t, err, apperrors.ErrSpaceNotFound)
	})

	t.Run("found space is returned", func(t *testing.T) {
		mockRepo := new(MockSpaceRepository)
		mockRepo.On("FindByID", mock.Anything, uint(7)).Return(&model.ParkingSpace{
			ID:             7,
			Name:           "Central Plaza Garage",
			TotalSpots:     10,
			AvailableSpots: 4,
		}, nil)

		svc := NewSpaceService(mockRepo, nil)
		space, err := svc.GetSpace(context.Background(), 7)

		assert.NoError(t, err)
		assert.Equal(t, "Central Plaza Garage", space.Name)
		assert.Equal(t, 4, space.AvailableSpots)
	})
}

func TestSpaceService_SearchSpaces(t *testing.T) {
	lat, lng := -1.28, 36.81
	mockRepo := new(MockSpaceRepository)
	params := repository.SpaceSearch{
		Latitude:  &lat,
		Longitude: &lng,
		Radius:    0.05,
		Search:    "plaza",
		Filter:    repository.FilterAvailable,
	}
	mockRepo.On("Search", mock.Anything, params).Return([]model.ParkingSpace{{ID: 7}}, nil)

	svc := NewSpaceService(mockRepo, nil)
	spaces, err := svc.SearchSpaces(context.Background(), params)

	assert.NoError(t, err)
	assert.Len(t, spaces, 1)
	mockRepo.AssertExpectations(t)
}

func TestSpaceService_CreateSpace(t *testing.T) {
	mockRepo := new(MockSpaceRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.ParkingSpace")).Return(nil)

	svc := NewSpaceService(mockRepo, nil)
	space := &model.ParkingSpace{
		Name:       "Riverside Open Lot",
		TotalSpots: 45,
	}
	err := svc.CreateSpace(context.Background(), space)

	assert.NoError(t, err)
	assert.Equal(t, 45, space.AvailableSpots, "new spaces start at full capacity")
}

func TestSpaceService_UpdateSpace(t *testing.T) {
	existing := func() *model.ParkingSpace {
		return &model.ParkingSpace{
			ID:             7,
			Name:           "Central Plaza Garage",
			Address:        "12 Moi Avenue",
			TotalSpots:     10,
			AvailableSpots: 4, // 6 spots currently claimed
			PricePerHour:   decimal.NewFromInt(150),
		}
	}

	tests := []struct {
		name          string
		update        SpaceUpdate
		wantTotal     int
		wantAvailable int
	}{
		{
			name:          "name-only update leaves counters alone",
			update:        SpaceUpdate{Name: strPtr("Plaza Garage")},
			wantTotal:     10,
			wantAvailable: 4,
		},
		{
			name:          "growing capacity frees the new spots",
			update:        SpaceUpdate{TotalSpots: intPtr(14)},
			wantTotal:     14,
			wantAvailable: 8,
		},
		{
			name:          "shrinking capacity keeps claimed spots, floors at zero",
			update:        SpaceUpdate{TotalSpots: intPtr(3)},
			wantTotal:     3,
			wantAvailable: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockSpaceRepository)
			mockRepo.On("FindByID", mock.Anything, uint(7)).Return(existing(), nil)
			mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.ParkingSpace")).Return(nil)

			svc := NewSpaceService(mockRepo, nil)
			space, err := svc.UpdateSpace(context.Background(), 7, tt.update)

			assert.NoError(t, err)
			assert.Equal(t, tt.wantTotal, space.TotalSpots)
			assert.Equal(t, tt.wantAvailable, space.AvailableSpots)
			mockRepo.AssertExpectations(t)
		})
	}

	t.Run("missing space maps to domain error", func(t *testing.T) {
		mockRepo := new(MockSpaceRepository)
		mockRepo.On("FindByID", mock.Anything, uint(42)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewSpaceService(mockRepo, nil)
		_, err := svc.UpdateSpace(context.Background(), 42, SpaceUpdate{Name: strPtr("x")})

		assert.ErrorIs(t, err, apperrors.ErrSpaceNotFound)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
