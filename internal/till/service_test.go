package till

import (
	"testing"

	"cafeteria-backend/internal/apperr"
	"cafeteria-backend/internal/models"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func mov(direction models.MovementDirection, category models.MovementCategory, amount string) models.CashMovement {
	return models.CashMovement{
		Direction: direction,
		Category:  category,
		Amount:    dec(amount),
	}
}

func TestTotalsReplaysFullLog(t *testing.T) {
	movements := []models.CashMovement{
		mov(models.DirectionIn, models.CategorySale, "50.00"),
		mov(models.DirectionIn, models.CategorySupply, "10.00"),
		mov(models.DirectionOut, models.CategoryExpense, "20.00"),
		mov(models.DirectionOut, models.CategoryWithdrawal, "5.50"),
	}

	in, out, sales := Totals(movements)

	if !in.Equal(dec("60.00")) {
		t.Errorf("total in = %s, want 60.00", in)
	}
	if !out.Equal(dec("25.50")) {
		t.Errorf("total out = %s, want 25.50", out)
	}
	if !sales.Equal(dec("50.00")) {
		t.Errorf("total sales = %s, want 50.00", sales)
	}
}

func TestBalanceFormula(t *testing.T) {
	// open with float 100.00, one in/sale of 50.00, one out/expense of 20.00
	movements := []models.CashMovement{
		mov(models.DirectionIn, models.CategorySale, "50.00"),
		mov(models.DirectionOut, models.CategoryExpense, "20.00"),
	}

	balance := Balance(dec("100.00"), movements)
	if !balance.Equal(dec("130.00")) {
		t.Fatalf("balance = %s, want 130.00", balance)
	}
}

func TestBalanceEmptySessionIsOpeningFloat(t *testing.T) {
	balance := Balance(dec("75.00"), nil)
	if !balance.Equal(dec("75.00")) {
		t.Fatalf("balance = %s, want 75.00", balance)
	}
}

func TestVarianceExactCount(t *testing.T) {
	movements := []models.CashMovement{
		mov(models.DirectionIn, models.CategorySale, "50.00"),
		mov(models.DirectionOut, models.CategoryExpense, "20.00"),
	}
	balance := Balance(dec("100.00"), movements)

	variance := Variance(dec("130.00"), balance)
	if !variance.IsZero() {
		t.Errorf("variance = %s, want 0", variance)
	}
	if !WithinTolerance(variance) {
		t.Error("zero variance should be within tolerance")
	}
}

func TestVarianceShortCountIsReportedNotBlocking(t *testing.T) {
	movements := []models.CashMovement{
		mov(models.DirectionIn, models.CategorySale, "50.00"),
		mov(models.DirectionOut, models.CategoryExpense, "20.00"),
	}
	balance := Balance(dec("100.00"), movements)

	variance := Variance(dec("125.00"), balance)
	if !variance.Equal(dec("-5.00")) {
		t.Errorf("variance = %s, want -5.00", variance)
	}
	if WithinTolerance(variance) {
		t.Error("-5.00 variance should not be within tolerance")
	}
}

func TestWithinToleranceBoundary(t *testing.T) {
	cases := []struct {
		variance string
		want     bool
	}{
		{"0.00", true},
		{"0.01", true},
		{"-0.01", true},
		{"0.02", false},
		{"-1.00", false},
	}
	for _, tc := range cases {
		if got := WithinTolerance(dec(tc.variance)); got != tc.want {
			t.Errorf("WithinTolerance(%s) = %v, want %v", tc.variance, got, tc.want)
		}
	}
}

func TestValidateMovementRejectsBadInput(t *testing.T) {
	cases := []struct {
		name        string
		direction   models.MovementDirection
		category    models.MovementCategory
		amount      string
		description string
	}{
		{"zero amount", models.DirectionIn, models.CategorySale, "0.00", "coffee"},
		{"negative amount", models.DirectionIn, models.CategorySale, "-10.00", "coffee"},
		{"empty description", models.DirectionIn, models.CategorySale, "10.00", ""},
		{"blank description", models.DirectionIn, models.CategorySale, "10.00", "   "},
		{"bad direction", "sideways", models.CategorySale, "10.00", "coffee"},
		{"bad category", models.DirectionIn, "tips", "10.00", "coffee"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateMovement(tc.direction, tc.category, dec(tc.amount), tc.description)
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !apperr.IsKind(err, apperr.KindValidation) {
				t.Fatalf("got %v, want a validation error", err)
			}
		})
	}
}

func TestValidateMovementAcceptsAllCategories(t *testing.T) {
	categories := []models.MovementCategory{
		models.CategorySale,
		models.CategorySupply,
		models.CategoryWithdrawal,
		models.CategoryExpense,
		models.CategoryOther,
	}
	for _, cat := range categories {
		if err := validateMovement(models.DirectionOut, cat, dec("1.00"), "x"); err != nil {
			t.Errorf("category %s rejected: %v", cat, err)
		}
	}
}
