package models

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:100;not null"`
	Email     string    `gorm:"size:100"`
	Phone     string    `gorm:"size:30"`
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}
