package reports

import (
	"time"

	"cafeteria-backend/internal/models"

	"github.com/shopspring/decimal"
)

type FinancialSummary struct {
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalIn       decimal.Decimal `json:"total_in"`
	TotalOut      decimal.Decimal `json:"total_out"`
	Net           decimal.Decimal `json:"net"`
	AverageTicket decimal.Decimal `json:"average_ticket"`
	OrderCount    int             `json:"order_count"`
}

type MovementLine struct {
	Date        string          `json:"date"`
	Direction   string          `json:"direction"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

type SaleLine struct {
	Date        string          `json:"date"`
	OrderNumber int             `json:"order_number"`
	Total       decimal.Decimal `json:"total"`
	ItemCount   int             `json:"item_count"`
	Customer    string          `json:"customer,omitempty"`
	Status      string          `json:"status"`
}

type FinancialReport struct {
	From      string           `json:"from"`
	To        string           `json:"to"`
	Summary   FinancialSummary `json:"summary"`
	Movements []MovementLine   `json:"movements"`
	Sales     []SaleLine       `json:"sales"`
}

// FilterOrders narrows a report to one customer and/or one status. Empty
// filter values match everything.
func FilterOrders(orders []models.Order, customer string, status models.OrderStatus) []models.Order {
	if customer == "" && status == "" {
		return orders
	}
	var out []models.Order
	for _, o := range orders {
		if customer != "" && o.CustomerName != customer {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, o)
	}
	return out
}

// BuildFinancial sums the period's orders and till movements into one report.
// Total sales come from order totals; in/out come from the cash ledger, so
// the two views reconcile against each other at month end.
func BuildFinancial(orders []models.Order, movements []models.CashMovement, from, to time.Time) FinancialReport {
	report := FinancialReport{
		From: from.Format("2006-01-02"),
		To:   to.Format("2006-01-02"),
	}

	totalSales := decimal.Zero
	for _, o := range orders {
		totalSales = totalSales.Add(o.Total)
		report.Sales = append(report.Sales, SaleLine{
			Date:        o.CreatedAt.Format(time.RFC3339),
			OrderNumber: o.SequenceNumber,
			Total:       o.Total,
			ItemCount:   len(o.Items),
			Customer:    o.CustomerName,
			Status:      string(o.Status),
		})
	}

	totalIn, totalOut := decimal.Zero, decimal.Zero
	for _, m := range movements {
		switch m.Direction {
		case models.DirectionIn:
			totalIn = totalIn.Add(m.Amount)
		case models.DirectionOut:
			totalOut = totalOut.Add(m.Amount)
		}
		report.Movements = append(report.Movements, MovementLine{
			Date:        m.CreatedAt.Format(time.RFC3339),
			Direction:   string(m.Direction),
			Category:    string(m.Category),
			Description: m.Description,
			Amount:      m.Amount,
		})
	}

	averageTicket := decimal.Zero
	if len(orders) > 0 {
		averageTicket = totalSales.Div(decimal.NewFromInt(int64(len(orders)))).Round(2)
	}

	report.Summary = FinancialSummary{
		TotalSales:    totalSales,
		TotalIn:       totalIn,
		TotalOut:      totalOut,
		Net:           totalIn.Sub(totalOut),
		AverageTicket: averageTicket,
		OrderCount:    len(orders),
	}
	return report
}
