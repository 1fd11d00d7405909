package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ParkingSpace represents a physical parking location with a finite
// capacity. AvailableSpots is mutated only through the claim/release
// paths of the booking repository so that it always equals TotalSpots
// minus the number of pending/active bookings against the space.
type ParkingSpace struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	Name           string          `json:"name" gorm:"size:255;not null;index"`
	Address        string          `json:"address" gorm:"size:512;not null"`
	Latitude       float64         `json:"latitude" gorm:"index"`
	Longitude      float64         `json:"longitude" gorm:"index"`
	TotalSpots     int             `json:"total_spots" gorm:"not null"`
	AvailableSpots int             `json:"available_spots" gorm:"not null"`
	PricePerHour   decimal.Decimal `json:"price_per_hour" gorm:"type:decimal(10,2);not null"`
	Features       string          `json:"features,omitempty" gorm:"size:512"`
	Rating         float64         `json:"rating" gorm:"default:0"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	// Relations
	Bookings []Booking `json:"-" gorm:"foreignKey:ParkingSpaceID"`
}
