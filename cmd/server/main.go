package main

import (
	"errors"
	"log"
	"strings"

	"cafeteria-backend/internal/admin"
	"cafeteria-backend/internal/apperr"
	"cafeteria-backend/internal/audit"
	"cafeteria-backend/internal/auth"
	"cafeteria-backend/internal/config"
	"cafeteria-backend/internal/customers"
	"cafeteria-backend/internal/database"
	"cafeteria-backend/internal/inventory"
	"cafeteria-backend/internal/models"
	"cafeteria-backend/internal/orders"
	"cafeteria-backend/internal/ratings"
	"cafeteria-backend/internal/reports"
	"cafeteria-backend/internal/till"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	workflow, err := orders.ParseWorkflow(cfg.OrderWorkflow)
	if err != nil {
		log.Fatal(err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var domainErr *apperr.Error
			if errors.As(err, &domainErr) {
				return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{
					"error": domainErr.Message,
					"kind":  domainErr.Kind,
				})
			}
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))
	api.Post("/ratings", ratings.CreateRatingHandler())

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Admin-only routes
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	// User directory
	adminRoutes.Post("/users", admin.CreateUserHandler())
	adminRoutes.Get("/users", admin.ListUsersHandler())
	adminRoutes.Put("/users/:id", admin.UpdateUserHandler())
	adminRoutes.Delete("/users/:id", admin.DeactivateUserHandler())

	// Catalog management
	protected.Post("/products", auth.RequireRole(models.RoleAdmin), inventory.CreateProductHandler())
	protected.Put("/products/:id", auth.RequireRole(models.RoleAdmin), inventory.UpdateProductHandler())
	protected.Delete("/products/:id", auth.RequireRole(models.RoleAdmin), inventory.DeleteProductHandler())
	protected.Post("/products/:id/stock", auth.RequireRole(models.RoleAdmin, models.RoleOperator), inventory.AdjustStockHandler())

	// Catalog reads
	protected.Get("/products", inventory.ListProductsHandler())
	protected.Get("/products/low-stock", inventory.LowStockHandler())

	// Till sessions
	protected.Post("/till/open", till.OpenTillHandler())
	protected.Get("/till/current", till.CurrentSessionHandler())
	protected.Post("/till/movements", till.RecordMovementHandler())
	protected.Post("/till/close", till.CloseTillHandler())
	protected.Get("/till/sessions", till.ListSessionsHandler())
	protected.Get("/till/sessions/:id/movements", till.SessionMovementsHandler())

	// Orders
	protected.Post("/orders", orders.CreateOrderHandler(workflow))
	protected.Get("/orders", orders.ListOrdersHandler(workflow))
	protected.Put("/orders/:id/status", orders.UpdateStatusHandler(workflow))

	// Customers
	protected.Post("/customers", customers.CreateCustomerHandler())
	protected.Get("/customers", customers.ListCustomersHandler())
	protected.Put("/customers/:id/active", customers.SetCustomerActiveHandler())

	// Ratings (staff views)
	protected.Get("/ratings", ratings.ListRatingsHandler())
	protected.Get("/ratings/stats", ratings.RatingStatsHandler())

	// Reports
	protected.Get("/reports/financial", auth.RequireRole(models.RoleAdmin, models.RoleOperator), reports.FinancialReportHandler())
	protected.Get("/reports/financial/export", auth.RequireRole(models.RoleAdmin), reports.FinancialExportHandler())
	protected.Get("/reports/admin", auth.RequireRole(models.RoleAdmin), reports.AdminReportHandler())

	// Audit logs
	protected.Get("/audit-logs", auth.RequireRole(models.RoleAdmin), audit.ListAuditLogsHandler())

	log.Println("Server running on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
