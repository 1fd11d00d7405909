package model

import "time"

// DriverRole enumerates the roles a driver account can hold.
type DriverRole string

const (
	RoleUser  DriverRole = "user"
	RoleAdmin DriverRole = "admin"
)

// Driver represents a registered driver account.
type Driver struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	FullName     string     `json:"full_name" gorm:"size:255;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Phone        string     `json:"phone,omitempty" gorm:"size:32"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         DriverRole `json:"role" gorm:"size:50;default:'user';index"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relations
	Bookings []Booking `json:"bookings,omitempty" gorm:"foreignKey:DriverID"`
	Vehicles []Vehicle `json:"vehicles,omitempty" gorm:"foreignKey:DriverID"`
}

// IsAdmin reports whether the driver holds the admin role.
func (d *Driver) IsAdmin() bool {
	return d.Role == RoleAdmin
}
