package inventory

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"cafeteria-backend/internal/audit"
	"cafeteria-backend/internal/auth"
	"cafeteria-backend/internal/database"
	"cafeteria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	StockQuantity int             `json:"stock_quantity"`
	MinStock      int             `json:"min_stock"`
	Unit          string          `json:"unit"`
}

type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Category      *string          `json:"category"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	StockQuantity *int             `json:"stock_quantity"`
	MinStock      *int             `json:"min_stock"`
	Unit          *string          `json:"unit"`
	Active        *bool            `json:"active"`
}

type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	StockQuantity int             `json:"stock_quantity"`
	MinStock      int             `json:"min_stock"`
	Unit          string          `json:"unit"`
	Active        bool            `json:"active"`
	CreatedAt     string          `json:"created_at"`
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Category:      p.Category,
		UnitPrice:     p.UnitPrice,
		StockQuantity: p.StockQuantity,
		MinStock:      p.MinStock,
		Unit:          p.Unit,
		Active:        p.Active,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
}

// POST /api/products
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ActorFromCtx(c)
		if err != nil {
			return err
		}

		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Product name is required")
		}
		if body.UnitPrice.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "Unit price cannot be negative")
		}
		if body.Unit == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Unit is required")
		}

		product := models.Product{
			ID:            uuid.New(),
			Name:          body.Name,
			Category:      body.Category,
			UnitPrice:     body.UnitPrice,
			StockQuantity: body.StockQuantity,
			MinStock:      body.MinStock,
			Unit:          body.Unit,
			Active:        true,
		}

		if err := database.DB.Create(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Product could not be created")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      actor.ID,
			UserName:    actor.Name,
			EntityType:  "product",
			EntityID:    product.ID.String(),
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Product created: %s", product.Name),
			After:       toProductResponse(product),
		}); logErr != nil {
			log.Printf("audit log failed: %v", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(toProductResponse(product))
	}
}

// GET /api/products lists active products sorted by name. ?all=true includes
// soft-deleted entries (admin screens).
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Product{})
		if c.Query("all") != "true" {
			dbq = dbq.Where("active = true")
		}

		var products []models.Product
		if err := dbq.Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Products could not be listed")
		}

		sort.Slice(products, func(i, j int) bool {
			return strings.ToLower(products[i].Name) < strings.ToLower(products[j].Name)
		})

		resp := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			resp = append(resp, toProductResponse(p))
		}
		return c.JSON(resp)
	}
}

// PUT /api/products/:id
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ActorFromCtx(c)
		if err != nil {
			return err
		}

		productID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "product id is invalid")
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ?", productID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}
		before := toProductResponse(product)

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		updates := map[string]interface{}{}
		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Product name cannot be empty")
			}
			updates["name"] = name
		}
		if body.Category != nil {
			updates["category"] = *body.Category
		}
		if body.UnitPrice != nil {
			if body.UnitPrice.IsNegative() {
				return fiber.NewError(fiber.StatusBadRequest, "Unit price cannot be negative")
			}
			updates["unit_price"] = *body.UnitPrice
		}
		if body.StockQuantity != nil {
			updates["stock_quantity"] = *body.StockQuantity
		}
		if body.MinStock != nil {
			updates["min_stock"] = *body.MinStock
		}
		if body.Unit != nil {
			updates["unit"] = *body.Unit
		}
		if body.Active != nil {
			updates["active"] = *body.Active
		}
		if len(updates) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Nothing to update")
		}

		if err := database.DB.Model(&product).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Product could not be updated")
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
			Description: fmt.Sprintf("Product updated: %s", product.Name),
			Before:      before,
			After:       toProductResponse(product),
		}); logErr != nil {
			log.Printf("audit log failed: %v", logErr)
		}

		return c.JSON(toProductResponse(product))
	}
}

// DELETE /api/products/:id is a soft delete: the row stays as a tombstone so
// old orders and reports keep resolving.
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ActorFromCtx(c)
		if err != nil {
			return err
		}

		productID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "product id is invalid")
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ?", productID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}
		before := toProductResponse(product)

		if err := database.DB.Model(&product).Update("active", false).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Product could not be deactivated")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      actor.ID,
			UserName:    actor.Name,
			EntityType:  "product",
			EntityID:    product.ID.String(),
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Product deactivated: %s", product.Name),
			Before:      before,
		}); logErr != nil {
			log.Printf("audit log failed: %v", logErr)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
