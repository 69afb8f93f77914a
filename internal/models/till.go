package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SessionStatus string

const (
	SessionOpen   SessionStatus = "open"
	SessionClosed SessionStatus = "closed"
)

// TillSession is one bounded period of an open cash drawer, reconciled at
// close. At most one session is open at any time; sessions are never deleted.
type TillSession struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OpenedAt       time.Time       `gorm:"index;not null"`
	ClosedAt       *time.Time
	OpeningFloat   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ClosingCounted *decimal.Decimal `gorm:"type:decimal(12,2)"`
	// Cached totals, always recomputed from the full movement log after each
	// append. Readers that need exact figures should replay the movements.
	TotalIn    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalOut   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalSales decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status     SessionStatus   `gorm:"size:20;index;not null"`
	OpenedBy   string          `gorm:"size:100;not null"`
	ClosedBy   *string         `gorm:"size:100"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type MovementDirection string

const (
	DirectionIn  MovementDirection = "in"
	DirectionOut MovementDirection = "out"
)

type MovementCategory string

const (
	CategorySale       MovementCategory = "sale"
	CategorySupply     MovementCategory = "supply"
	CategoryWithdrawal MovementCategory = "withdrawal"
	CategoryExpense    MovementCategory = "expense"
	CategoryOther      MovementCategory = "other"
)

func ValidDirection(d MovementDirection) bool {
	return d == DirectionIn || d == DirectionOut
}

func ValidCategory(c MovementCategory) bool {
	switch c {
	case CategorySale, CategorySupply, CategoryWithdrawal, CategoryExpense, CategoryOther:
		return true
	}
	return false
}

// CashMovement is a single cash-in or cash-out event, owned by exactly one
// session. Immutable once created.
type CashMovement struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey"`
	SessionID   uuid.UUID         `gorm:"type:uuid;index;not null"`
	Direction   MovementDirection `gorm:"size:10;not null"`
	Category    MovementCategory  `gorm:"size:20;not null"`
	Amount      decimal.Decimal   `gorm:"type:decimal(12,2);not null"`
	Description string            `gorm:"size:255;not null"`
	CreatedBy   string            `gorm:"size:100;not null"`
	CreatedAt   time.Time         `gorm:"index"`
}
