package model

import "time"

// Vehicle represents a vehicle registered by a driver. Vehicles are
// profile data only; bookings do not reference them.
type Vehicle struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	DriverID    uint      `json:"driver_id" gorm:"not null;index"`
	PlateNumber string    `json:"plate_number" gorm:"uniqueIndex;size:32;not null"`
	Model       string    `json:"model,omitempty" gorm:"size:255"`
	Color       string    `json:"color,omitempty" gorm:"size:64"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
