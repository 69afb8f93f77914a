package customers

import (
	"fmt"
	"log"
	"strings"
	"time"

	"cafeteria-backend/internal/audit"
	"cafeteria-backend/internal/auth"
	"cafeteria-backend/internal/database"
	"cafeteria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type CustomerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Active    bool      `json:"active"`
	CreatedAt string    `json:"created_at"`
}

func toCustomerResponse(cu models.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        cu.ID,
		Name:      cu.Name,
		Email:     cu.Email,
		Phone:     cu.Phone,
		Active:    cu.Active,
		CreatedAt: cu.CreatedAt.Format(time.RFC3339),
	}
}

// POST /api/customers
func CreateCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ActorFromCtx(c)
		if err != nil {
			return err
		}

		var body CreateCustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Customer name is required")
		}

		customer := models.Customer{
			ID:     uuid.New(),
			Name:   body.Name,
			Email:  strings.TrimSpace(strings.ToLower(body.Email)),
			Phone:  strings.TrimSpace(body.Phone),
			Active: true,
		}

		if err := database.DB.Create(&customer).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Customer could not be created")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      actor.ID,
			UserName:    actor.Name,
			EntityType:  "customer",
			EntityID:    customer.ID.String(),
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Customer created: %s", customer.Name),
			After:       toCustomerResponse(customer),
		}); logErr != nil {
			log.Printf("audit log failed: %v", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(toCustomerResponse(customer))
	}
}

// GET /api/customers?from=2026-08-01&to=2026-08-31, newest first; the period
// filter is optional.
func ListCustomersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Customer{})

		if fromStr := c.Query("from"); fromStr != "" {
			from, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from date is invalid")
			}
			dbq = dbq.Where("created_at >= ?", from)
		}
		if toStr := c.Query("to"); toStr != "" {
			to, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to date is invalid")
			}
			dbq = dbq.Where("created_at < ?", to.AddDate(0, 0, 1))
		}

		var customers []models.Customer
		if err := dbq.Order("created_at desc").Find(&customers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Customers could not be listed")
		}

		resp := make([]CustomerResponse, 0, len(customers))
		for _, cu := range customers {
			resp = append(resp, toCustomerResponse(cu))
		}
		return c.JSON(resp)
	}
}

// PUT /api/customers/:id/active soft activates/deactivates, never a hard
// delete.
func SetCustomerActiveHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ActorFromCtx(c)
		if err != nil {
			return err
		}

		customerID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "customer id is invalid")
		}

		var body struct {
			Active bool `json:"active"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		var customer models.Customer
		if err := database.DB.First(&customer, "id = ?", customerID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Customer not found")
		}

		if err := database.DB.Model(&customer).Update("active", body.Active).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Customer could not be updated")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      actor.ID,
			UserName:    actor.Name,
			EntityType:  "customer",
			EntityID:    customer.ID.String(),
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Customer %s active=%v", customer.Name, body.Active),
		}); logErr != nil {
			log.Printf("audit log failed: %v", logErr)
		}

		customer.Active = body.Active
		return c.JSON(toCustomerResponse(customer))
	}
}
