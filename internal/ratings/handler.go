package ratings

import (
	"time"

	"cafeteria-backend/internal/database"
	"cafeteria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateRatingRequest struct {
	Name           string `json:"name"`
	Contact        string `json:"contact"`
	Comment        string `json:"comment"`
	Service        int    `json:"service"`
	ProductQuality int    `json:"product_quality"`
	ProductPricing int    `json:"product_pricing"`
	Ambience       int    `json:"ambience"`
	PrepTime       int    `json:"prep_time"`
}

type RatingResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Contact        string    `json:"contact,omitempty"`
	Comment        string    `json:"comment,omitempty"`
	Service        int       `json:"service"`
	ProductQuality int       `json:"product_quality"`
	ProductPricing int       `json:"product_pricing"`
	Ambience       int       `json:"ambience"`
	PrepTime       int       `json:"prep_time"`
	CreatedAt      string    `json:"created_at"`
}

func toRatingResponse(r models.Rating) RatingResponse {
	return RatingResponse{
		ID:             r.ID,
		Name:           r.Name,
		Contact:        r.Contact,
		Comment:        r.Comment,
		Service:        r.Service,
		ProductQuality: r.ProductQuality,
		ProductPricing: r.ProductPricing,
		Ambience:       r.Ambience,
		PrepTime:       r.PrepTime,
		CreatedAt:      r.CreatedAt.Format(time.RFC3339),
	}
}

func validScore(n int) bool { return n >= 0 && n <= 5 }

// POST /api/ratings is public, customers submit without logging in.
func CreateRatingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateRatingRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		for _, score := range []int{body.Service, body.ProductQuality, body.ProductPricing, body.Ambience, body.PrepTime} {
			if !validScore(score) {
				return fiber.NewError(fiber.StatusBadRequest, "Scores must be between 0 and 5")
			}
		}

		rating := models.Rating{
			ID:             uuid.New(),
			Name:           body.Name,
			Contact:        body.Contact,
			Comment:        body.Comment,
			Service:        body.Service,
			ProductQuality: body.ProductQuality,
			ProductPricing: body.ProductPricing,
			Ambience:       body.Ambience,
			PrepTime:       body.PrepTime,
			CreatedAt:      time.Now(),
		}

		if err := database.DB.Create(&rating).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rating could not be saved")
		}

		return c.Status(fiber.StatusCreated).JSON(toRatingResponse(rating))
	}
}

func ratingsInPeriod(c *fiber.Ctx) ([]models.Rating, error) {
	dbq := database.DB.Model(&models.Rating{})

	if fromStr := c.Query("from"); fromStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "from date is invalid")
		}
		dbq = dbq.Where("created_at >= ?", from)
	}
	if toStr := c.Query("to"); toStr != "" {
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "to date is invalid")
		}
		dbq = dbq.Where("created_at < ?", to.AddDate(0, 0, 1))
	}

	var ratings []models.Rating
	if err := dbq.Order("created_at desc").Find(&ratings).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Ratings could not be listed")
	}
	return ratings, nil
}

// GET /api/ratings?from=...&to=...
func ListRatingsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ratings, err := ratingsInPeriod(c)
		if err != nil {
			return err
		}

		resp := make([]RatingResponse, 0, len(ratings))
		for _, r := range ratings {
			resp = append(resp, toRatingResponse(r))
		}
		return c.JSON(resp)
	}
}

// GET /api/ratings/stats?from=...&to=...
func RatingStatsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ratings, err := ratingsInPeriod(c)
		if err != nil {
			return err
		}
		return c.JSON(Compute(ratings))
	}
}
