package models

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleOperator UserRole = "operator"
	RoleCook     UserRole = "cook"
)

func ValidRole(r UserRole) bool {
	switch r {
	case RoleAdmin, RoleOperator, RoleCook:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"size:100;not null"`
	Email        string    `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	Role         UserRole  `gorm:"size:20;not null"`
	Active       bool      `gorm:"not null;default:true"`
	LastAccessAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
