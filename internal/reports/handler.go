package reports

import (
	"fmt"
	"time"

	"cafeteria-backend/internal/database"
	"cafeteria-backend/internal/models"
	"cafeteria-backend/internal/orders"
	"cafeteria-backend/internal/ratings"
	"cafeteria-backend/internal/till"

	"github.com/gofiber/fiber/v2"
)

func parsePeriod(c *fiber.Ctx) (time.Time, time.Time, error) {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "from and to dates are required (YYYY-MM-DD)")
	}

	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "from date is invalid")
	}
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "to date is invalid")
	}
	return from, to, nil
}

func financialReportForRequest(c *fiber.Ctx) (*FinancialReport, error) {
	from, to, err := parsePeriod(c)
	if err != nil {
		return nil, err
	}
	end := to.AddDate(0, 0, 1)

	periodOrders, err := orders.ByPeriod(from, end)
	if err != nil {
		return nil, err
	}
	periodOrders = FilterOrders(periodOrders, c.Query("customer"), models.OrderStatus(c.Query("status")))

	// Movements hang off sessions, so collect every session opened in the
	// period and flatten their ledgers.
	sessions, err := till.SessionsByPeriod(from, end)
	if err != nil {
		return nil, err
	}
	var movements []models.CashMovement
	for _, s := range sessions {
		sessionMovements, err := till.MovementsOf(s.ID)
		if err != nil {
			return nil, err
		}
		movements = append(movements, sessionMovements...)
	}

	report := BuildFinancial(periodOrders, movements, from, to)
	return &report, nil
}

// GET /api/reports/financial?from=2026-08-01&to=2026-08-31&customer=&status=
func FinancialReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		report, err := financialReportForRequest(c)
		if err != nil {
			return err
		}
		return c.JSON(report)
	}
}

// GET /api/reports/financial/export serves the same report as an XLSX download.
func FinancialExportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		report, err := financialReportForRequest(c)
		if err != nil {
			return err
		}

		buf, err := ExportFinancialXLSX(*report)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Report could not be exported")
		}

		filename := fmt.Sprintf("financial-report_%s_%s.xlsx", report.From, report.To)
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
		return c.Send(buf.Bytes())
	}
}

// GET /api/reports/admin?from=2026-08-01&to=2026-08-31
func AdminReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, to, err := parsePeriod(c)
		if err != nil {
			return err
		}
		end := to.AddDate(0, 0, 1)

		var users []models.User
		if err := database.DB.Order("name asc").Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Users could not be listed")
		}

		periodOrders, err := orders.ByPeriod(from, end)
		if err != nil {
			return err
		}

		var periodRatings []models.Rating
		if err := database.DB.
			Where("created_at >= ? AND created_at < ?", from, end).
			Find(&periodRatings).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ratings could not be listed")
		}

		report := BuildAdmin(users, periodOrders, ratings.Compute(periodRatings), from, to)
		return c.JSON(report)
	}
}
