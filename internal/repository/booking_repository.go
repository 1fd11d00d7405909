package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "parkhub/internal/errors"
	"parkhub/internal/model"
)

// BookingRepository defines booking persistence operations, including
// the two transactional paths that keep ParkingSpace.AvailableSpots in
// lockstep with the set of pending/active bookings. Claiming and
// releasing a spot are expressed as conditional updates checked by
// rows-affected, so two racing claims can never both win the last spot.
type BookingRepository interface {
	// CreateWithClaim atomically decrements the space's available
	// counter and inserts the booking. Returns ErrSpotUnavailable when
	// the counter is already zero and ErrSpaceNotFound when the space
	// does not exist; in both cases nothing is written.
	CreateWithClaim(ctx context.Context, booking *model.Booking) error
	// CancelWithRelease atomically moves an owned booking to cancelled
	// and increments the space's available counter. Idempotent per
	// booking: a second release returns ErrAlreadyReleased without
	// touching the counter.
	CancelWithRelease(ctx context.Context, bookingID uuid.UUID, driverID uint) (*model.Booking, error)
	FindOwned(ctx context.Context, bookingID uuid.UUID, driverID uint) (*model.Booking, error)
	// UpdateWindow writes the booking's time window, but only while the
	// booking still holds its spot. A cancel committing between the
	// caller's read and this write makes the conditional update touch
	// zero rows and the booking stays cancelled.
	UpdateWindow(ctx context.Context, booking *model.Booking) error
	ListByDriver(ctx context.Context, driverID uint, status model.BookingStatus, search string) ([]model.Booking, error)
	RecentByDriver(ctx context.Context, driverID uint, limit int) ([]model.Booking, error)
	CountByDriver(ctx context.Context, driverID uint) (int64, error)
	CountByStatus(ctx context.Context, status model.BookingStatus) (int64, error)
}

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository.
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// CreateWithClaim claims one spot and inserts the booking in a single
// transaction.
func (r *bookingRepository) CreateWithClaim(ctx context.Context, booking *model.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&model.ParkingSpace{}).
			Where("id = ?", booking.ParkingSpaceID).
			Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return apperrors.ErrSpaceNotFound
		}

		// The availability check and the decrement are one statement;
		// losing the race means zero rows touched and a rollback.
		res := tx.Model(&model.ParkingSpace{}).
			Where("id = ? AND available_spots > 0", booking.ParkingSpaceID).
			UpdateColumn("available_spots", gorm.Expr("available_spots - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrSpotUnavailable
		}

		return tx.Create(booking).Error
	})
}

// CancelWithRelease cancels an owned booking and returns its spot.
func (r *bookingRepository) CancelWithRelease(ctx context.Context, bookingID uuid.UUID, driverID uint) (*model.Booking, error) {
	var booking model.Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND driver_id = ?", bookingID, driverID).
			First(&booking).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrBookingNotFound
			}
			return err
		}

		// Conditional status flip gates the counter increment: only the
		// transition out of a spot-holding status releases the spot.
		res := tx.Model(&model.Booking{}).
			Where("id = ? AND status IN ?", bookingID,
				[]model.BookingStatus{model.BookingStatusPending, model.BookingStatusActive}).
			Update("status", model.BookingStatusCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrAlreadyReleased
		}

		inc := tx.Model(&model.ParkingSpace{}).
			Where("id = ? AND available_spots < total_spots", booking.ParkingSpaceID).
			UpdateColumn("available_spots", gorm.Expr("available_spots + 1"))
		if inc.Error != nil {
			return inc.Error
		}
		if inc.RowsAffected == 0 {
			return fmt.Errorf("availability counter out of sync for space %d", booking.ParkingSpaceID)
		}

		booking.Status = model.BookingStatusCancelled
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindOwned finds a booking by ID scoped to its owning driver.
func (r *bookingRepository) FindOwned(ctx context.Context, bookingID uuid.UUID, driverID uint) (*model.Booking, error) {
	var booking model.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ? AND driver_id = ?", bookingID, driverID).
		First(&booking).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// UpdateWindow writes only the window columns, gated on the booking
// still being in a spot-holding status. Save is deliberately avoided
// here: a full-row write would resurrect a concurrently cancelled
// booking's status.
func (r *bookingRepository) UpdateWindow(ctx context.Context, booking *model.Booking) error {
	res := r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("id = ? AND status IN ?", booking.ID,
			[]model.BookingStatus{model.BookingStatusPending, model.BookingStatusActive}).
		Updates(map[string]interface{}{
			"start_time":     booking.StartTime,
			"end_time":       booking.EndTime,
			"duration_hours": booking.DurationHours,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrAlreadyReleased
	}
	return nil
}

// ListByDriver lists a driver's bookings, optionally filtered by status
// and by a substring match on the associated space's name or address.
func (r *bookingRepository) ListByDriver(ctx context.Context, driverID uint, status model.BookingStatus, search string) ([]model.Booking, error) {
	query := r.db.WithContext(ctx).Model(&model.Booking{}).
		Preload("ParkingSpace").
		Where("bookings.driver_id = ?", driverID)

	if status != "" {
		query = query.Where("bookings.status = ?", status)
	}
	if search != "" {
		like := "%" + search + "%"
		query = query.
			Joins("JOIN parking_spaces ON parking_spaces.id = bookings.parking_space_id").
			Where("parking_spaces.name LIKE ? OR parking_spaces.address LIKE ?", like, like)
	}

	var bookings []model.Booking
	if err := query.Order("bookings.created_at DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// RecentByDriver lists a driver's newest bookings.
func (r *bookingRepository) RecentByDriver(ctx context.Context, driverID uint, limit int) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := r.db.WithContext(ctx).
		Preload("ParkingSpace").
		Where("driver_id = ?", driverID).
		Order("created_at DESC").
		Limit(limit).
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// CountByDriver returns the number of bookings a driver has made.
func (r *bookingRepository) CountByDriver(ctx context.Context, driverID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("driver_id = ?", driverID).Count(&count).Error
	return count, err
}

// CountByStatus returns the number of bookings in the given status.
func (r *bookingRepository) CountByStatus(ctx context.Context, status model.BookingStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("status = ?", status).Count(&count).Error
	return count, err
}
