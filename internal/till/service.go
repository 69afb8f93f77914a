// Package till owns the cash-drawer session lifecycle: open, movement
// accrual, running balance and close with variance detection.
package till

import (
	"errors"
	"strings"
	"time"

	"cafeteria-backend/internal/apperr"
	"cafeteria-backend/internal/auth"
	"cafeteria-backend/internal/database"
	"cafeteria-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Totals replays the full movement log of a session. Session rows cache these
// figures, but the log is the source of truth: if a cached update was missed
// after an append, recomputing here still gives consistent numbers.
func Totals(movements []models.CashMovement) (in, out, sales decimal.Decimal) {
	in, out, sales = decimal.Zero, decimal.Zero, decimal.Zero
	for _, m := range movements {
		switch m.Direction {
		case models.DirectionIn:
			in = in.Add(m.Amount)
		case models.DirectionOut:
			out = out.Add(m.Amount)
		}
		if m.Category == models.CategorySale {
			sales = sales.Add(m.Amount)
		}
	}
	return in, out, sales
}

// Balance is the opening float plus total in minus total out.
func Balance(openingFloat decimal.Decimal, movements []models.CashMovement) decimal.Decimal {
	in, out, _ := Totals(movements)
	return openingFloat.Add(in).Sub(out)
}

// Variance is the counted cash minus the ledger balance. A non-zero variance
// is a reportable condition, never an error.
func Variance(counted, balance decimal.Decimal) decimal.Decimal {
	return counted.Sub(balance)
}

// VarianceTolerance absorbs currency rounding when callers decide whether a
// close needs follow-up.
var VarianceTolerance = decimal.NewFromFloat(0.01)

// WithinTolerance reports whether a variance is small enough to ignore.
func WithinTolerance(variance decimal.Decimal) bool {
	return variance.Abs().Cmp(VarianceTolerance) <= 0
}

func validateMovement(direction models.MovementDirection, category models.MovementCategory, amount decimal.Decimal, description string) error {
	if !models.ValidDirection(direction) {
		return apperr.Validation("direction must be 'in' or 'out'")
	}
	if !models.ValidCategory(category) {
		return apperr.Validation("category must be one of sale|supply|withdrawal|expense|other")
	}
	if amount.Cmp(decimal.Zero) <= 0 {
		return apperr.Validation("amount must be greater than zero")
	}
	if strings.TrimSpace(description) == "" {
		return apperr.Validation("description is required")
	}
	return nil
}

// CurrentSession returns the open session, or nil when the till is closed.
func CurrentSession() (*models.TillSession, error) {
	var session models.TillSession
	err := database.DB.
		Where("status = ?", models.SessionOpen).
		Order("opened_at desc").
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Store("open session could not be queried", err)
	}
	return &session, nil
}

// Open starts a new session. Fails when another session is still open; the
// check runs inside a transaction and the partial unique index on
// status='open' backstops concurrent openers.
func Open(openingFloat decimal.Decimal, actor auth.Actor) (*models.TillSession, error) {
	if openingFloat.Cmp(decimal.Zero) < 0 {
		return nil, apperr.Validation("opening float cannot be negative")
	}

	session := models.TillSession{
		ID:           uuid.New(),
		OpenedAt:     time.Now(),
		OpeningFloat: openingFloat,
		TotalIn:      decimal.Zero,
		TotalOut:     decimal.Zero,
		TotalSales:   decimal.Zero,
		Status:       models.SessionOpen,
		OpenedBy:     actor.Email,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.TillSession{}).
			Where("status = ?", models.SessionOpen).
			Count(&count).Error; err != nil {
			return apperr.Store("open session could not be queried", err)
		}
		if count > 0 {
			return apperr.Conflict("a till session is already open")
		}
		if err := tx.Create(&session).Error; err != nil {
			return apperr.Store("till session could not be created", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &session, nil
}

// RecordMovement appends an immutable movement to an open session, then
// recomputes the session's cached totals from the full movement log.
func RecordMovement(sessionID uuid.UUID, direction models.MovementDirection, category models.MovementCategory, amount decimal.Decimal, description string, actor auth.Actor) (*models.CashMovement, error) {
	if err := validateMovement(direction, category, amount, description); err != nil {
		return nil, err
	}

	var session models.TillSession
	if err := database.DB.First(&session, "id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("till session not found")
		}
		return nil, apperr.Store("till session could not be loaded", err)
	}
	if session.Status != models.SessionOpen {
		return nil, apperr.Conflict("till session is already closed")
	}

	movement := models.CashMovement{
		ID:          uuid.New(),
		SessionID:   session.ID,
		Direction:   direction,
		Category:    category,
		Amount:      amount,
		Description: description,
		CreatedBy:   actor.Email,
		CreatedAt:   time.Now(),
	}

	if err := database.DB.Create(&movement).Error; err != nil {
		return nil, apperr.Store("movement could not be saved", err)
	}

	// Totals update after the append is best effort: the movement is already
	// durable and Balance rederives from the log at read time.
	if err := refreshTotals(session.ID); err != nil {
		return &movement, err
	}

	return &movement, nil
}

func refreshTotals(sessionID uuid.UUID) error {
	movements, err := MovementsOf(sessionID)
	if err != nil {
		return err
	}

	in, out, sales := Totals(movements)
	err = database.DB.Model(&models.TillSession{}).
		Where("id = ?", sessionID).
		Updates(map[string]interface{}{
			"total_in":    in,
			"total_out":   out,
			"total_sales": sales,
		}).Error
	if err != nil {
		return apperr.Store("session totals could not be updated", err)
	}
	return nil
}

// CloseResult reports the outcome of closing a session.
type CloseResult struct {
	Session  models.TillSession
	Balance  decimal.Decimal
	Variance decimal.Decimal
}

// Close reconciles and closes an open session. The variance between counted
// and computed cash is recorded and returned regardless of its size.
func Close(sessionID uuid.UUID, counted decimal.Decimal, actor auth.Actor) (*CloseResult, error) {
	var session models.TillSession
	if err := database.DB.First(&session, "id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("till session not found")
		}
		return nil, apperr.Store("till session could not be loaded", err)
	}
	if session.Status != models.SessionOpen {
		return nil, apperr.Conflict("till session is already closed")
	}

	movements, err := MovementsOf(session.ID)
	if err != nil {
		return nil, err
	}

	balance := Balance(session.OpeningFloat, movements)
	variance := Variance(counted, balance)

	now := time.Now()
	closedBy := actor.Email
	in, out, sales := Totals(movements)

	updates := map[string]interface{}{
		"status":          models.SessionClosed,
		"closed_at":       now,
		"closing_counted": counted,
		"closed_by":       closedBy,
		"total_in":        in,
		"total_out":       out,
		"total_sales":     sales,
	}
	if err := database.DB.Model(&session).Updates(updates).Error; err != nil {
		return nil, apperr.Store("till session could not be closed", err)
	}

	session.Status = models.SessionClosed
	session.ClosedAt = &now
	session.ClosingCounted = &counted
	session.ClosedBy = &closedBy
	session.TotalIn = in
	session.TotalOut = out
	session.TotalSales = sales

	return &CloseResult{Session: session, Balance: balance, Variance: variance}, nil
}

// MovementsOf lists a session's movements, newest first.
func MovementsOf(sessionID uuid.UUID) ([]models.CashMovement, error) {
	var movements []models.CashMovement
	err := database.DB.
		Where("session_id = ?", sessionID).
		Order("created_at desc").
		Find(&movements).Error
	if err != nil {
		return nil, apperr.Store("movements could not be listed", err)
	}
	return movements, nil
}

// SessionsByPeriod lists sessions whose opening falls inside [from, to).
func SessionsByPeriod(from, to time.Time) ([]models.TillSession, error) {
	var sessions []models.TillSession
	err := database.DB.
		Where("opened_at >= ? AND opened_at < ?", from, to).
		Order("opened_at asc").
		Find(&sessions).Error
	if err != nil {
		return nil, apperr.Store("sessions could not be listed", err)
	}
	return sessions, nil
}
