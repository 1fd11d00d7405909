package repository

import (
	"context"

	"gorm.io/gorm"

	"parkhub/internal/model"
)

// AvailabilityFilter narrows a space search by remaining capacity.
type AvailabilityFilter string

const (
	FilterAll       AvailabilityFilter = "all"
	FilterAvailable AvailabilityFilter = "available"
	FilterFull      AvailabilityFilter = "full"
)

// SpaceSearch holds the optional filters for a parking space search.
// Latitude/Longitude are a bounding box center, not a great-circle
// origin; Radius is applied to each axis independently.
type SpaceSearch struct {
	Latitude  *float64
	Longitude *float64
	Radius    float64
	Search    string
	Filter    AvailabilityFilter
}

// SpaceRepository defines parking space persistence operations.
// AvailableSpots is never written through this interface; the counter
// moves only inside the booking repository's claim/release transactions.
type SpaceRepository interface {
	Create(ctx context.Context, space *model.ParkingSpace) error
	Update(ctx context.Context, space *model.ParkingSpace) error
	FindByID(ctx context.Context, id uint) (*model.ParkingSpace, error)
	Search(ctx context.Context, params SpaceSearch) ([]model.ParkingSpace, error)
	ListAll(ctx context.Context) ([]model.ParkingSpace, error)
	Count(ctx context.Context) (int64, error)
}

type spaceRepository struct {
	db *gorm.DB
}

// NewSpaceRepository creates a new parking space repository.
func NewSpaceRepository(db *gorm.DB) SpaceRepository {
	return &spaceRepository{db: db}
}

// Create creates a new parking space.
func (r *spaceRepository) Create(ctx context.Context, space *model.ParkingSpace) error {
	return r.db.WithContext(ctx).Create(space).Error
}

// Update updates an existing parking space.
func (r *spaceRepository) Update(ctx context.Context, space *model.ParkingSpace) error {
	return r.db.WithContext(ctx).Save(space).Error
}

// FindByID finds a parking space by ID.
func (r *spaceRepository) FindByID(ctx context.Context, id uint) (*model.ParkingSpace, error) {
	var space model.ParkingSpace
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&space).Error; err != nil {
		return nil, err
	}
	return &space, nil
}

// Search lists parking spaces matching the given filters.
func (r *spaceRepository) Search(ctx context.Context, params SpaceSearch) ([]model.ParkingSpace, error) {
	query := r.db.WithContext(ctx).Model(&model.ParkingSpace{})

	if params.Latitude != nil && params.Longitude != nil {
		query = query.
			Where("latitude BETWEEN ? AND ?", *params.Latitude-params.Radius, *params.Latitude+params.Radius).
			Where("longitude BETWEEN ? AND ?", *params.Longitude-params.Radius, *params.Longitude+params.Radius)
	}

	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("name LIKE ? OR address LIKE ?", like, like)
	}

	switch params.Filter {
	case FilterAvailable:
		query = query.Where("available_spots > 0")
	case FilterFull:
		query = query.Where("available_spots = 0")
	}

	var spaces []model.ParkingSpace
	if err := query.Find(&spaces).Error; err != nil {
		return nil, err
	}
	return spaces, nil
}

// ListAll lists every parking space.
func (r *spaceRepository) ListAll(ctx context.Context) ([]model.ParkingSpace, error) {
	var spaces []model.ParkingSpace
	if err := r.db.WithContext(ctx).Find(&spaces).Error; err != nil {
		return nil, err
	}
	return spaces, nil
}

// Count returns the number of parking spaces.
func (r *spaceRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ParkingSpace{}).Count(&count).Error
	return count, err
}
