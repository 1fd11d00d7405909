package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"parkhub/internal/cache"
	"parkhub/internal/errors"
	"parkhub/internal/model"
	"parkhub/internal/repository"
)

const spaceCacheTTL = 5 * time.Minute

func spaceCacheKey(id uint) string {
	return fmt.Sprintf("space:%d", id)
}

// SpaceUpdate is the allow-list of admin-mutable parking space fields.
// AvailableSpots is deliberately absent: the counter only moves through
// claim/release, or indirectly when TotalSpots changes.
type SpaceUpdate struct {
	Name         *string
	Address      *string
	TotalSpots   *int
	PricePerHour *decimal.Decimal
	Features     *string
}

// SpaceService handles parking space reads and admin management.
type SpaceService interface {
	GetSpace(ctx context.Context, id uint) (*model.ParkingSpace, error)
	SearchSpaces(ctx context.Context, params repository.SpaceSearch) ([]model.ParkingSpace, error)
	ListSpaces(ctx context.Context) ([]model.ParkingSpace, error)
	CreateSpace(ctx context.Context, space *model.ParkingSpace) error
	UpdateSpace(ctx context.Context, id uint, update SpaceUpdate) (*model.ParkingSpace, error)
}

type spaceService struct {
	repo  repository.SpaceRepository
	cache *cache.Client
}

// NewSpaceService creates a new parking space service.
func NewSpaceService(repo repository.SpaceRepository, cache *cache.Client) SpaceService {
	return &spaceService{
		repo:  repo,
		cache: cache,
	}
}

// GetSpace retrieves a parking space by ID with caching. Cached entries
// are invalidated whenever the space's counter or fields change.
func (s *spaceService) GetSpace(ctx context.Context, id uint) (*model.ParkingSpace, error) {
	if data, _ := s.cache.Get(ctx, spaceCacheKey(id)); data != nil {
		var cached model.ParkingSpace
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	space, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrSpaceNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(space); err == nil {
		_ = s.cache.Set(ctx, spaceCacheKey(id), payload, spaceCacheTTL)
	}

	return space, nil
}

// SearchSpaces lists spaces matching the bounding box, text, and
// availability filters. Pure read, snapshot semantics.
func (s *spaceService) SearchSpaces(ctx context.Context, params repository.SpaceSearch) ([]model.ParkingSpace, error) {
	return s.repo.Search(ctx, params)
}

// ListSpaces lists every parking space.
func (s *spaceService) ListSpaces(ctx context.Context) ([]model.ParkingSpace, error) {
	return s.repo.ListAll(ctx)
}

// CreateSpace creates a parking space with a full complement of spots.
func (s *spaceService) CreateSpace(ctx context.Context, space *model.ParkingSpace) error {
	if space.TotalSpots < 0 {
		return errors.ErrInvalidCapacity
	}
	space.AvailableSpots = space.TotalSpots
	return s.repo.Create(ctx, space)
}

// UpdateSpace applies an allow-listed partial update. Changing
// TotalSpots shifts AvailableSpots by the same delta so that active
// bookings keep their claimed spots, clamped to [0, TotalSpots].
func (s *spaceService) UpdateSpace(ctx context.Context, id uint, update SpaceUpdate) (*model.ParkingSpace, error) {
	space, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrSpaceNotFound
		}
		return nil, err
	}

	if update.Name != nil {
		space.Name = *update.Name
	}
	if update.Address != nil {
		space.Address = *update.Address
	}
	if update.PricePerHour != nil {
		space.PricePerHour = *update.PricePerHour
	}
	if update.Features != nil {
		space.Features = *update.Features
	}
	if update.TotalSpots != nil {
		delta := *update.TotalSpots - space.TotalSpots
		space.TotalSpots = *update.TotalSpots
		space.AvailableSpots += delta
		if space.AvailableSpots < 0 {
			space.AvailableSpots = 0
		}
		if space.AvailableSpots > space.TotalSpots {
			space.AvailableSpots = space.TotalSpots
		}
	}

	if err := s.repo.Update(ctx, space); err != nil {
		return nil, fmt.Errorf("update space: %w", err)
	}

	_ = s.cache.Delete(ctx, spaceCacheKey(id))
	return space, nil
}
