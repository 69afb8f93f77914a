package reports

import (
	"testing"
	"time"

	"cafeteria-backend/internal/models"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestBuildFinancialSums(t *testing.T) {
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	orders := []models.Order{
		{SequenceNumber: 1, Total: dec("30.00"), Status: models.StatusPaid, CreatedAt: from},
		{SequenceNumber: 2, Total: dec("20.00"), Status: models.StatusPending, CreatedAt: from.Add(time.Hour)},
	}
	movements := []models.CashMovement{
		{Direction: models.DirectionIn, Category: models.CategorySale, Amount: dec("50.00"), CreatedAt: from},
		{Direction: models.DirectionIn, Category: models.CategorySupply, Amount: dec("100.00"), CreatedAt: from},
		{Direction: models.DirectionOut, Category: models.CategoryExpense, Amount: dec("40.00"), CreatedAt: from},
	}

	report := BuildFinancial(orders, movements, from, to)

	if !report.Summary.TotalSales.Equal(dec("50.00")) {
		t.Errorf("total sales = %s, want 50.00", report.Summary.TotalSales)
	}
	if !report.Summary.TotalIn.Equal(dec("150.00")) {
		t.Errorf("total in = %s, want 150.00", report.Summary.TotalIn)
	}
	if !report.Summary.TotalOut.Equal(dec("40.00")) {
		t.Errorf("total out = %s, want 40.00", report.Summary.TotalOut)
	}
	if !report.Summary.Net.Equal(dec("110.00")) {
		t.Errorf("net = %s, want 110.00", report.Summary.Net)
	}
	if !report.Summary.AverageTicket.Equal(dec("25.00")) {
		t.Errorf("average ticket = %s, want 25.00", report.Summary.AverageTicket)
	}
	if report.Summary.OrderCount != 2 {
		t.Errorf("order count = %d, want 2", report.Summary.OrderCount)
	}
	if len(report.Movements) != 3 || len(report.Sales) != 2 {
		t.Errorf("report lines = %d movements / %d sales, want 3/2", len(report.Movements), len(report.Sales))
	}
}

func TestBuildFinancialEmptyPeriod(t *testing.T) {
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	report := BuildFinancial(nil, nil, from, from)

	if !report.Summary.AverageTicket.IsZero() {
		t.Errorf("average ticket over zero orders = %s, want 0", report.Summary.AverageTicket)
	}
	if report.Summary.OrderCount != 0 {
		t.Errorf("order count = %d, want 0", report.Summary.OrderCount)
	}
}

func TestFilterOrders(t *testing.T) {
	orders := []models.Order{
		{CustomerName: "Ana", Status: models.StatusPaid},
		{CustomerName: "Ana", Status: models.StatusPending},
		{CustomerName: "Rui", Status: models.StatusPaid},
	}

	if got := FilterOrders(orders, "", ""); len(got) != 3 {
		t.Errorf("no filter kept %d, want 3", len(got))
	}
	if got := FilterOrders(orders, "Ana", ""); len(got) != 2 {
		t.Errorf("customer filter kept %d, want 2", len(got))
	}
	if got := FilterOrders(orders, "", models.StatusPaid); len(got) != 2 {
		t.Errorf("status filter kept %d, want 2", len(got))
	}
	if got := FilterOrders(orders, "Ana", models.StatusPaid); len(got) != 1 {
		t.Errorf("combined filter kept %d, want 1", len(got))
	}
}
