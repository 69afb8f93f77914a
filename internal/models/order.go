package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

// Kitchen workflow statuses.
const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
)

// Tab workflow statuses. Pending is shared between both vocabularies.
const (
	StatusOnAccount OrderStatus = "on_account"
	StatusPaid      OrderStatus = "paid"
)

type Order struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SequenceNumber int             `gorm:"not null"`
	Total          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status         OrderStatus     `gorm:"size:20;index;not null"`
	CustomerName   string          `gorm:"size:100"`
	CreatedBy      string          `gorm:"size:100;not null"`
	CreatedAt      time.Time       `gorm:"index"`
	CompletedAt    *time.Time
	UpdatedAt      time.Time

	Items []OrderItem `gorm:"foreignKey:OrderID"`
}

// OrderItem snapshots the product name and unit price at order time. Later
// product edits never change an existing order's items or total.
type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"size:100;not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantity    int             `gorm:"not null"`
	Note        string          `gorm:"size:255"`
}
