package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the sellable catalog entry. Removal is a soft delete (Active
// tombstone) so historical orders and reports stay accurate.
type Product struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name          string          `gorm:"size:100;not null"`
	Category      string          `gorm:"size:50;index"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	StockQuantity int             `gorm:"not null"`
	MinStock      int             `gorm:"not null"`
	Unit          string          `gorm:"size:20;not null"` // kg, un, box etc.
	Active        bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
