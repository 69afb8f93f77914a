package orders

import (
	"errors"
	"log"
	"strings"
	"time"

	"cafeteria-backend/internal/apperr"
	"cafeteria-backend/internal/auth"
	"cafeteria-backend/internal/database"
	"cafeteria-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Finalize persists the cart as an order with status pending. Product names
// and unit prices are snapshotted into the items at this moment; later
// catalog edits never change the order or its total.
func Finalize(w Workflow, cart Cart, customerName string, actor auth.Actor) (*models.Order, error) {
	if cart.Empty() {
		return nil, apperr.Validation("order must have at least one item")
	}
	for _, line := range cart {
		if line.Quantity < 1 {
			return nil, apperr.Validation("item quantity must be at least 1")
		}
	}

	now := time.Now()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var todayCount int64
	if err := database.DB.Model(&models.Order{}).
		Where("created_at >= ?", startOfToday).
		Count(&todayCount).Error; err != nil {
		return nil, apperr.Store("order sequence could not be determined", err)
	}

	order := models.Order{
		ID:             uuid.New(),
		SequenceNumber: int(todayCount) + 1,
		Total:          cart.Total(),
		Status:         models.StatusPending,
		CustomerName:   strings.TrimSpace(customerName),
		CreatedBy:      actor.Email,
		CreatedAt:      now,
	}
	for _, line := range cart {
		order.Items = append(order.Items, models.OrderItem{
			ID:          uuid.New(),
			OrderID:     order.ID,
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			UnitPrice:   line.Product.UnitPrice,
			Quantity:    line.Quantity,
			Note:        line.Note,
		})
	}

	if err := database.DB.Create(&order).Error; err != nil {
		return nil, apperr.Store("order could not be saved", err)
	}

	// Stock decrements are fired per line item with no transaction around the
	// order; a failed decrement leaves the order persisted and the stock
	// figure stale. Known limitation, surfaced in the log only.
	for _, line := range cart {
		err := database.DB.Model(&models.Product{}).
			Where("id = ?", line.Product.ID).
			Update("stock_quantity", gorm.Expr("GREATEST(stock_quantity - ?, 0)", line.Quantity)).Error
		if err != nil {
			log.Printf("stock decrement failed for product %s: %v", line.Product.ID, err)
		}
	}

	return &order, nil
}

// Transition moves an order along one declared state-machine edge, gated by
// the actor's role. CompletedAt is stamped when the terminal status is
// reached.
func Transition(w Workflow, orderID uuid.UUID, target models.OrderStatus, actor auth.Actor) (*models.Order, error) {
	var order models.Order
	if err := database.DB.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, apperr.Store("order could not be loaded", err)
	}

	if err := w.CheckTransition(order.Status, target, actor.Role); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"status": target}
	var completedAt *time.Time
	if w.Terminal(target) {
		now := time.Now()
		completedAt = &now
		updates["completed_at"] = now
	}

	if err := database.DB.Model(&order).Updates(updates).Error; err != nil {
		return nil, apperr.Store("order status could not be updated", err)
	}

	order.Status = target
	if completedAt != nil {
		order.CompletedAt = completedAt
	}
	return &order, nil
}

// Recent loads every order from the start of yesterday onward; the listing
// policies in listing.go narrow and sort the result in memory.
func Recent(now time.Time) ([]models.Order, error) {
	startOfYesterday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)

	var all []models.Order
	err := database.DB.Preload("Items").
		Where("created_at >= ?", startOfYesterday).
		Find(&all).Error
	if err != nil {
		return nil, apperr.Store("orders could not be listed", err)
	}
	return all, nil
}

// ByPeriod lists orders created inside [from, to).
func ByPeriod(from, to time.Time) ([]models.Order, error) {
	var all []models.Order
	err := database.DB.Preload("Items").
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at asc").
		Find(&all).Error
	if err != nil {
		return nil, apperr.Store("orders could not be listed", err)
	}
	return all, nil
}
