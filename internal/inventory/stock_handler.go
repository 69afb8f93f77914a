package inventory

import (
	"fmt"
	"log"

	"cafeteria-backend/internal/audit"
	"cafeteria-backend/internal/auth"
	"cafeteria-backend/internal/database"
	"cafeteria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdjustStockRequest struct {
	// Delta is applied relative to the current level; Absolute replaces it.
	// Exactly one must be set.
	Delta    *int `json:"delta"`
	Absolute *int `json:"absolute"`
}

// POST /api/products/:id/stock
// Relative adjustments use a single conditional UPDATE floored at zero, so
// concurrent sales cannot drive the counter negative.
func AdjustStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ActorFromCtx(c)
		if err != nil {
			return err
		}

		productID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "product id is invalid")
		}

		var body AdjustStockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if (body.Delta == nil) == (body.Absolute == nil) {
			return fiber.NewError(fiber.StatusBadRequest, "Exactly one of delta or absolute is required")
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ?", productID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}
		before := product.StockQuantity

		if body.Absolute != nil {
			if *body.Absolute < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Absolute stock cannot be negative")
			}
			err = database.DB.Model(&product).
				Update("stock_quantity", *body.Absolute).Error
		} else {
			err = database.DB.Model(&product).
				Update("stock_quantity", gorm.Expr("GREATEST(stock_quantity + ?, 0)", *body.Delta)).Error
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stock could not be updated")
		}

		if err := database.DB.First(&product, "id = ?", productID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Product could not be reloaded")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      actor.ID,
			UserName:    actor.Name,
			EntityType:  "product",
			EntityID:    product.ID.String(),
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Stock adjusted: %s %d -> %d", product.Name, before, product.StockQuantity),
			Before:      fiber.Map{"stock_quantity": before},
			After:       fiber.Map{"stock_quantity": product.StockQuantity},
		}); logErr != nil {
			log.Printf("audit log failed: %v", logErr)
		}

		return c.JSON(toProductResponse(product))
	}
}

// GET /api/products/low-stock lists active products at or below their minimum.
func LowStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var products []models.Product
		err := database.DB.
			Where("active = true AND stock_quantity <= min_stock").
			Order("name asc").
			Find(&products).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Products could not be listed")
		}

		resp := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			resp = append(resp, toProductResponse(p))
		}
		return c.JSON(resp)
	}
}
