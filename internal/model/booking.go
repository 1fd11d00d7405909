package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingStatus represents the status of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Releasable reports whether a booking in this status still holds a
// spot. Only releasable bookings count against AvailableSpots.
func (s BookingStatus) Releasable() bool {
	return s == BookingStatusPending || s == BookingStatusActive
}

// Booking represents a reservation of one spot at a parking space by a
// driver for a bounded time window.
type Booking struct {
	ID             uuid.UUID     `json:"id" gorm:"type:char(36);primaryKey"`
	DriverID       uint          `json:"driver_id" gorm:"not null;index"`
	ParkingSpaceID uint          `json:"parking_space_id" gorm:"not null;index"`
	StartTime      time.Time     `json:"start_time" gorm:"not null"`
	EndTime        time.Time     `json:"end_time" gorm:"not null"`
	DurationHours  float64       `json:"duration_hours" gorm:"not null"`
	Status         BookingStatus `json:"status" gorm:"type:varchar(20);not null;default:'active';index"`
	PaymentMethod  string        `json:"payment_method,omitempty" gorm:"size:50"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`

	// Relations
	Driver       Driver       `json:"-" gorm:"foreignKey:DriverID"`
	ParkingSpace ParkingSpace `json:"parking_space,omitempty" gorm:"foreignKey:ParkingSpaceID"`
}

// BeforeCreate sets UUID before creating the record.
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
