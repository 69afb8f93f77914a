package models

import (
	"time"

	"github.com/google/uuid"
)

// Rating is a customer review with five scored categories (0-5 each).
type Rating struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"size:100"`
	Contact        string    `gorm:"size:100"`
	Comment        string    `gorm:"size:500"`
	Service        int       `gorm:"not null"`
	ProductQuality int       `gorm:"not null"`
	ProductPricing int       `gorm:"not null"`
	Ambience       int       `gorm:"not null"`
	PrepTime       int       `gorm:"not null"`
	CreatedAt      time.Time `gorm:"index"`
}
