package orders

import (
	"fmt"
	"log"
	"time"

	"cafeteria-backend/internal/audit"
	"cafeteria-backend/internal/auth"
	"cafeteria-backend/internal/database"
	"cafeteria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateOrderItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Note      string    `json:"note"`
}

type CreateOrderRequest struct {
	Customer string            `json:"customer"`
	Items    []CreateOrderItem `json:"items"`
}

type UpdateStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

type OrderItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Note        string          `json:"note,omitempty"`
}

type OrderResponse struct {
	ID             uuid.UUID           `json:"id"`
	SequenceNumber int                 `json:"sequence_number"`
	Items          []OrderItemResponse `json:"items"`
	Total          decimal.Decimal     `json:"total"`
	Status         models.OrderStatus  `json:"status"`
	Customer       string              `json:"customer,omitempty"`
	CreatedBy      string              `json:"created_by"`
	CreatedAt      string              `json:"created_at"`
	CompletedAt    *string             `json:"completed_at,omitempty"`
}

func toOrderResponse(o models.Order) OrderResponse {
	resp := OrderResponse{
		ID:             o.ID,
		SequenceNumber: o.SequenceNumber,
		Total:          o.Total,
		Status:         o.Status,
		Customer:       o.CustomerName,
		CreatedBy:      o.CreatedBy,
		CreatedAt:      o.CreatedAt.Format(time.RFC3339),
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Note:        item.Note,
		})
	}
	if o.CompletedAt != nil {
		completedAt := o.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &completedAt
	}
	return resp
}

// cartFromRequest resolves the requested products against the active catalog
// and folds the lines into a cart, merging duplicate product entries.
func cartFromRequest(items []CreateOrderItem) (Cart, error) {
	var cart Cart
	for _, reqItem := range items {
		if reqItem.Quantity < 1 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Item quantity must be at least 1")
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ? AND active = true", reqItem.ProductID).Error; err != nil {
			return nil, fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Product %s not found", reqItem.ProductID))
		}

		for i := 0; i < reqItem.Quantity; i++ {
			cart = cart.Add(product)
		}
		if reqItem.Note != "" {
			for i := range cart {
				if cart[i].Product.ID == product.ID {
					cart[i].Note = reqItem.Note
				}
			}
		}
	}
	return cart, nil
}

// POST /api/orders
func CreateOrderHandler(w Workflow) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ActorFromCtx(c)
		if err != nil {
			return err
		}

		var body CreateOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		cart, err := cartFromRequest(body.Items)
		if err != nil {
			return err
		}

		order, err := Finalize(w, cart, body.Customer, actor)
		if err != nil {
			return err
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      actor.ID,
			UserName:    actor.Name,
			EntityType:  "order",
			EntityID:    order.ID.String(),
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Order #%d created, total %s", order.SequenceNumber, order.Total.StringFixed(2)),
			After:       toOrderResponse(*order),
		}); logErr != nil {
			log.Printf("audit log failed: %v", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(toOrderResponse(*order))
	}
}

// GET /api/orders returns the default counter view, or the kitchen queue for cooks.
// With from/to query params it becomes a plain period listing.
func ListOrdersHandler(w Workflow) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ActorFromCtx(c)
		if err != nil {
			return err
		}

		fromStr := c.Query("from")
		toStr := c.Query("to")
		if fromStr != "" || toStr != "" {
			if fromStr == "" || toStr == "" {
				return fiber.NewError(fiber.StatusBadRequest, "from and to must be given together (YYYY-MM-DD)")
			}
			from, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from date is invalid")
			}
			to, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to date is invalid")
			}

			all, err := ByPeriod(from, to.AddDate(0, 0, 1))
			if err != nil {
				return err
			}
			return c.JSON(toOrderResponses(all))
		}

		all, err := Recent(time.Now())
		if err != nil {
			return err
		}

		var view []models.Order
		if actor.Role == models.RoleCook && w == WorkflowKitchen {
			view = KitchenQueue(all, w, time.Now())
		} else {
			view = DefaultView(all, w, time.Now())
		}

		return c.JSON(toOrderResponses(view))
	}
}

func toOrderResponses(all []models.Order) []OrderResponse {
	resp := make([]OrderResponse, 0, len(all))
	for _, o := range all {
		resp = append(resp, toOrderResponse(o))
	}
	return resp
}

// PUT /api/orders/:id/status
func UpdateStatusHandler(w Workflow) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ActorFromCtx(c)
		if err != nil {
			return err
		}

		orderID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "order id is invalid")
		}

		var body UpdateStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		order, err := Transition(w, orderID, body.Status, actor)
		if err != nil {
			return err
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      actor.ID,
			UserName:    actor.Name,
			EntityType:  "order",
			EntityID:    order.ID.String(),
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Order #%d moved to %s", order.SequenceNumber, order.Status),
			After:       toOrderResponse(*order),
		}); logErr != nil {
			log.Printf("audit log failed: %v", logErr)
		}

		return c.JSON(toOrderResponse(*order))
	}
}
