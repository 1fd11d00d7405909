package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"parkhub/internal/cache"
	"parkhub/internal/errors"
	"parkhub/internal/model"
	"parkhub/internal/repository"
)

const recentBookingsLimit = 5

// BookingService validates and orchestrates booking state transitions.
// It is the only caller of the claim/release paths; nothing else moves
// AvailableSpots.
type BookingService interface {
	CreateBooking(ctx context.Context, driverID, spaceID uint, start, end time.Time, paymentMethod string) (*model.Booking, error)
	BookSpot(ctx context.Context, driverID, spaceID uint, start time.Time, durationHours float64, paymentMethod string) (*model.Booking, error)
	UpdateBooking(ctx context.Context, driverID uint, bookingID uuid.UUID, start, end *time.Time) (*model.Booking, error)
	CancelBooking(ctx context.Context, driverID uint, bookingID uuid.UUID) error
	ExtendBooking(ctx context.Context, driverID uint, bookingID uuid.UUID, additionalHours float64) (*model.Booking, decimal.Decimal, error)
	ListBookings(ctx context.Context, driverID uint, statusFilter, search string) ([]model.Booking, error)
	GetDashboardStats(ctx context.Context, driverID uint) (*DashboardStats, error)
	RecentBookings(ctx context.Context, driverID uint) ([]model.Booking, error)
}

// DashboardStats summarizes a driver's booking activity. The savings
// figures are flat estimates, not derived from payment data.
type DashboardStats struct {
	TotalBookings int64   `json:"total_bookings"`
	MoneySaved    float64 `json:"money_saved"`
	HoursSaved    float64 `json:"hours_saved"`
	FavoriteSpots int     `json:"favorite_spots"`
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	spaceRepo   repository.SpaceRepository
	cache       *cache.Client
}

// NewBookingService creates a new booking service.
func NewBookingService(
	bookingRepo repository.BookingRepository,
	spaceRepo repository.SpaceRepository,
	cache *cache.Client,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		spaceRepo:   spaceRepo,
		cache:       cache,
	}
}

// CreateBooking claims a spot for the given time window. The window is
// authoritative: duration_hours is derived from end - start, and new
// bookings start active since no confirmation step exists.
func (s *bookingService) CreateBooking(ctx context.Context, driverID, spaceID uint, start, end time.Time, paymentMethod string) (*model.Booking, error) {
	if !start.Before(end) {
		return nil, errors.ErrInvalidTimeRange
	}

	booking := &model.Booking{
		DriverID:       driverID,
		ParkingSpaceID: spaceID,
		StartTime:      start,
		EndTime:        end,
		DurationHours:  end.Sub(start).Hours(),
		Status:         model.BookingStatusActive,
		PaymentMethod:  paymentMethod,
	}

	if err := s.bookingRepo.CreateWithClaim(ctx, booking); err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, spaceCacheKey(spaceID))
	return booking, nil
}

// BookSpot claims a spot given a start time and a duration, deriving
// the end of the window.
func (s *bookingService) BookSpot(ctx context.Context, driverID, spaceID uint, start time.Time, durationHours float64, paymentMethod string) (*model.Booking, error) {
	if durationHours <= 0 {
		return nil, errors.ErrInvalidDuration
	}
	end := start.Add(time.Duration(durationHours * float64(time.Hour)))
	return s.CreateBooking(ctx, driverID, spaceID, start, end, paymentMethod)
}

// UpdateBooking applies a partial update of the booking's time window.
// Only start_time and end_time are mutable; the duration is re-derived
// from the merged window.
func (s *bookingService) UpdateBooking(ctx context.Context, driverID uint, bookingID uuid.UUID, start, end *time.Time) (*model.Booking, error) {
	booking, err := s.bookingRepo.FindOwned(ctx, bookingID, driverID)
	if err != nil {
		return nil, err
	}

	if start != nil {
		booking.StartTime = *start
	}
	if end != nil {
		booking.EndTime = *end
	}
	if !booking.StartTime.Before(booking.EndTime) {
		return nil, errors.ErrInvalidTimeRange
	}
	booking.DurationHours = booking.EndTime.Sub(booking.StartTime).Hours()

	if err := s.bookingRepo.UpdateWindow(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// CancelBooking releases the booked spot. Cancelling twice returns
// ErrAlreadyReleased and does not move the counter again.
func (s *bookingService) CancelBooking(ctx context.Context, driverID uint, bookingID uuid.UUID) error {
	booking, err := s.bookingRepo.CancelWithRelease(ctx, bookingID, driverID)
	if err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, spaceCacheKey(booking.ParkingSpaceID))
	return nil
}

// ExtendBooking pushes the end of an active booking's window. The spot
// is already claimed, so the availability counter is untouched. Returns
// the updated booking and the incremental cost at the space's rate.
func (s *bookingService) ExtendBooking(ctx context.Context, driverID uint, bookingID uuid.UUID, additionalHours float64) (*model.Booking, decimal.Decimal, error) {
	if additionalHours <= 0 {
		return nil, decimal.Zero, errors.ErrInvalidDuration
	}

	booking, err := s.bookingRepo.FindOwned(ctx, bookingID, driverID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if !booking.Status.Releasable() {
		return nil, decimal.Zero, errors.ErrAlreadyReleased
	}

	space, err := s.spaceRepo.FindByID(ctx, booking.ParkingSpaceID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, decimal.Zero, errors.ErrSpaceNotFound
		}
		return nil, decimal.Zero, fmt.Errorf("load space: %w", err)
	}

	booking.EndTime = booking.EndTime.Add(time.Duration(additionalHours * float64(time.Hour)))
	booking.DurationHours += additionalHours

	// The conditional write re-checks the status so a cancel landing
	// after the read above cannot be overwritten.
	if err := s.bookingRepo.UpdateWindow(ctx, booking); err != nil {
		return nil, decimal.Zero, err
	}

	cost := space.PricePerHour.Mul(decimal.NewFromFloat(additionalHours))
	return booking, cost, nil
}

// ListBookings lists the driver's bookings. statusFilter "all" or ""
// disables status filtering; search matches the space's name/address.
func (s *bookingService) ListBookings(ctx context.Context, driverID uint, statusFilter, search string) ([]model.Booking, error) {
	var status model.BookingStatus
	if statusFilter != "" && statusFilter != "all" {
		status = model.BookingStatus(statusFilter)
	}
	return s.bookingRepo.ListByDriver(ctx, driverID, status, search)
}

// GetDashboardStats returns the driver's booking summary.
func (s *bookingService) GetDashboardStats(ctx context.Context, driverID uint) (*DashboardStats, error) {
	count, err := s.bookingRepo.CountByDriver(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}
	return &DashboardStats{
		TotalBookings: count,
		MoneySaved:    float64(count) * 20,
		HoursSaved:    float64(count) * 2,
		FavoriteSpots: 1,
	}, nil
}

// RecentBookings returns the driver's newest bookings.
func (s *bookingService) RecentBookings(ctx context.Context, driverID uint) ([]model.Booking, error) {
	return s.bookingRepo.RecentByDriver(ctx, driverID, recentBookingsLimit)
}
