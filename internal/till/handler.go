package till

import (
	"fmt"
	"log"
	"time"

	"cafeteria-backend/internal/audit"
	"cafeteria-backend/internal/auth"
	"cafeteria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OpenTillRequest struct {
	OpeningFloat decimal.Decimal `json:"opening_float"`
}

type RecordMovementRequest struct {
	SessionID   *uuid.UUID               `json:"session_id"` // defaults to the current open session
	Direction   models.MovementDirection `json:"direction"`
	Category    models.MovementCategory  `json:"category"`
	Amount      decimal.Decimal          `json:"amount"`
	Description string                   `json:"description"`
}

type CloseTillRequest struct {
	SessionID     *uuid.UUID      `json:"session_id"`
	CountedAmount decimal.Decimal `json:"counted_amount"`
}

type SessionResponse struct {
	ID             uuid.UUID        `json:"id"`
	OpenedAt       string           `json:"opened_at"`
	ClosedAt       *string          `json:"closed_at,omitempty"`
	OpeningFloat   decimal.Decimal  `json:"opening_float"`
	ClosingCounted *decimal.Decimal `json:"closing_counted,omitempty"`
	TotalIn        decimal.Decimal  `json:"total_in"`
	TotalOut       decimal.Decimal  `json:"total_out"`
	TotalSales     decimal.Decimal  `json:"total_sales"`
	Status         string           `json:"status"`
	OpenedBy       string           `json:"opened_by"`
	ClosedBy       *string          `json:"closed_by,omitempty"`
}

type MovementResponse struct {
	ID          uuid.UUID       `json:"id"`
	SessionID   uuid.UUID       `json:"session_id"`
	Direction   string          `json:"direction"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   string          `json:"created_at"`
}

func toSessionResponse(s models.TillSession) SessionResponse {
	resp := SessionResponse{
		ID:             s.ID,
		OpenedAt:       s.OpenedAt.Format(time.RFC3339),
		OpeningFloat:   s.OpeningFloat,
		ClosingCounted: s.ClosingCounted,
		TotalIn:        s.TotalIn,
		TotalOut:       s.TotalOut,
		TotalSales:     s.TotalSales,
		Status:         string(s.Status),
		OpenedBy:       s.OpenedBy,
		ClosedBy:       s.ClosedBy,
	}
	if s.ClosedAt != nil {
		closedAt := s.ClosedAt.Format(time.RFC3339)
		resp.ClosedAt = &closedAt
	}
	return resp
}

func toMovementResponse(m models.CashMovement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		SessionID:   m.SessionID,
		Direction:   string(m.Direction),
		Category:    string(m.Category),
		Amount:      m.Amount,
		Description: m.Description,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
	}
}

// resolveSessionID picks the explicit session id or falls back to the
// currently open session.
func resolveSessionID(explicit *uuid.UUID) (uuid.UUID, error) {
	if explicit != nil {
		return *explicit, nil
	}
	session, err := CurrentSession()
	if err != nil {
		return uuid.Nil, err
	}
	if session == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusNotFound, "No open till session")
	}
	return session.ID, nil
}

// POST /api/till/open
func OpenTillHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ActorFromCtx(c)
		if err != nil {
			return err
		}

		var body OpenTillRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		session, err := Open(body.OpeningFloat, actor)
		if err != nil {
			return err
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      actor.ID,
			UserName:    actor.Name,
			EntityType:  "till_session",
			EntityID:    session.ID.String(),
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Till opened with float %s", session.OpeningFloat.StringFixed(2)),
			After:       toSessionResponse(*session),
		}); logErr != nil {
			log.Printf("audit log failed: %v", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(toSessionResponse(*session))
	}
}

// GET /api/till/current
func CurrentSessionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := CurrentSession()
		if err != nil {
			return err
		}
		if session == nil {
			return c.JSON(fiber.Map{"session": nil})
		}

		movements, err := MovementsOf(session.ID)
		if err != nil {
			return err
		}

		movResp := make([]MovementResponse, 0, len(movements))
		for _, m := range movements {
			movResp = append(movResp, toMovementResponse(m))
		}

		return c.JSON(fiber.Map{
			"session":   toSessionResponse(*session),
			"movements": movResp,
			"balance":   Balance(session.OpeningFloat, movements),
		})
	}
}

// POST /api/till/movements
func RecordMovementHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ActorFromCtx(c)
		if err != nil {
			return err
		}

		var body RecordMovementRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		sessionID, err := resolveSessionID(body.SessionID)
		if err != nil {
			return err
		}

		movement, err := RecordMovement(sessionID, body.Direction, body.Category, body.Amount, body.Description, actor)
		if err != nil {
			return err
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      actor.ID,
			UserName:    actor.Name,
			EntityType:  "cash_movement",
			EntityID:    movement.ID.String(),
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Movement recorded: %s/%s %s", movement.Direction, movement.Category, movement.Amount.StringFixed(2)),
			After:       toMovementResponse(*movement),
		}); logErr != nil {
			log.Printf("audit log failed: %v", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(toMovementResponse(*movement))
	}
}

// POST /api/till/close
func CloseTillHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ActorFromCtx(c)
		if err != nil {
			return err
		}

		var body CloseTillRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		sessionID, err := resolveSessionID(body.SessionID)
		if err != nil {
			return err
		}

		result, err := Close(sessionID, body.CountedAmount, actor)
		if err != nil {
			return err
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      actor.ID,
			UserName:    actor.Name,
			EntityType:  "till_session",
			EntityID:    result.Session.ID.String(),
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Till closed: counted %s, variance %s", body.CountedAmount.StringFixed(2), result.Variance.StringFixed(2)),
			After:       toSessionResponse(result.Session),
		}); logErr != nil {
			log.Printf("audit log failed: %v", logErr)
		}

		return c.JSON(fiber.Map{
			"session":          toSessionResponse(result.Session),
			"balance":          result.Balance,
			"variance":         result.Variance,
			"within_tolerance": WithinTolerance(result.Variance),
		})
	}
}

// GET /api/till/sessions?from=2026-08-01&to=2026-08-31
func ListSessionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		fromStr := c.Query("from")
		toStr := c.Query("to")
		if fromStr == "" || toStr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "from and to dates are required (YYYY-MM-DD)")
		}

		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "from date is invalid")
		}
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "to date is invalid")
		}

		sessions, err := SessionsByPeriod(from, to.AddDate(0, 0, 1))
		if err != nil {
			return err
		}

		resp := make([]SessionResponse, 0, len(sessions))
		for _, s := range sessions {
			resp = append(resp, toSessionResponse(s))
		}

		return c.JSON(resp)
	}
}

// GET /api/till/sessions/:id/movements
func SessionMovementsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "session id is invalid")
		}

		movements, err := MovementsOf(sessionID)
		if err != nil {
			return err
		}

		resp := make([]MovementResponse, 0, len(movements))
		for _, m := range movements {
			resp = append(resp, toMovementResponse(m))
		}

		return c.JSON(resp)
	}
}
