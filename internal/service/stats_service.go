package service

import (
	"context"
	"fmt"

	"parkhub/internal/model"
	"parkhub/internal/repository"
)

// AdminStats aggregates platform-wide counts for the admin dashboard.
// RevenueToday is a placeholder until payment processing lands.
type AdminStats struct {
	TotalDrivers      int64   `json:"total_drivers"`
	ActiveBookings    int64   `json:"active_bookings"`
	TotalParkingSpots int64   `json:"total_parking_spots"`
	RevenueToday      float64 `json:"revenue_today"`
}

// StatsService computes aggregate statistics for administrators.
type StatsService interface {
	GetAdminStats(ctx context.Context) (*AdminStats, error)
}

type statsService struct {
	driverRepo  repository.DriverRepository
	bookingRepo repository.BookingRepository
	spaceRepo   repository.SpaceRepository
}

// NewStatsService creates a new stats service.
func NewStatsService(
	driverRepo repository.DriverRepository,
	bookingRepo repository.BookingRepository,
	spaceRepo repository.SpaceRepository,
) StatsService {
	return &statsService{
		driverRepo:  driverRepo,
		bookingRepo: bookingRepo,
		spaceRepo:   spaceRepo,
	}
}

// GetAdminStats returns platform-wide aggregates.
func (s *statsService) GetAdminStats(ctx context.Context) (*AdminStats, error) {
	drivers, err := s.driverRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count drivers: %w", err)
	}
	active, err := s.bookingRepo.CountByStatus(ctx, model.BookingStatusActive)
	if err != nil {
		return nil, fmt.Errorf("count active bookings: %w", err)
	}
	spaces, err := s.spaceRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count spaces: %w", err)
	}
	return &AdminStats{
		TotalDrivers:      drivers,
		ActiveBookings:    active,
		TotalParkingSpots: spaces,
		RevenueToday:      0,
	}, nil
}
