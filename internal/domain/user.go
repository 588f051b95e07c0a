package domain

import "time"

type UserRole string

const (
	RoleAdmin      UserRole = "Admin"
	RoleDispatcher UserRole = "Dispatcher"
	RoleDriver     UserRole = "Driver"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleDispatcher, RoleDriver:
		return true
	}
	return false
}

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"size:200;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:200;not null"`
	Role         UserRole  `json:"role" gorm:"size:20;not null;default:Dispatcher"`
	// No column default on purpose: gorm skips zero values for defaulted
	// columns on insert, which would silently flip IsActive=false to true.
	IsActive     bool      `json:"isActive" gorm:"not null"`
	CreatedAt    time.Time `json:"createdAt"`
}
