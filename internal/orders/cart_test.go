package orders

import (
	"testing"

	"cafeteria-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func product(name, price string) models.Product {
	d, err := decimal.NewFromString(price)
	if err != nil {
		panic(err)
	}
	return models.Product{
		ID:        uuid.New(),
		Name:      name,
		UnitPrice: d,
		Active:    true,
	}
}

func TestAddIncrementsExistingLine(t *testing.T) {
	espresso := product("Espresso", "10.00")
	cheesecake := product("Cheesecake", "5.00")

	var cart Cart
	cart = cart.Add(espresso)
	cart = cart.Add(espresso)
	cart = cart.Add(cheesecake)

	if len(cart) != 2 {
		t.Fatalf("cart has %d lines, want 2", len(cart))
	}
	if cart[0].Product.ID != espresso.ID || cart[0].Quantity != 2 {
		t.Errorf("line 0 = %s qty %d, want Espresso qty 2", cart[0].Product.Name, cart[0].Quantity)
	}
	if cart[1].Product.ID != cheesecake.ID || cart[1].Quantity != 1 {
		t.Errorf("line 1 = %s qty %d, want Cheesecake qty 1", cart[1].Product.Name, cart[1].Quantity)
	}
}

func TestCartTotalSnapshotScenario(t *testing.T) {
	// product A (10.00) twice and product B (5.00) once → total 25.00
	a := product("A", "10.00")
	b := product("B", "5.00")

	var cart Cart
	cart = cart.Add(a)
	cart = cart.Add(a)
	cart = cart.Add(b)

	want := decimal.RequireFromString("25.00")
	if got := cart.Total(); !got.Equal(want) {
		t.Fatalf("total = %s, want 25.00", got)
	}
}

func TestRemoveDropsWholeLine(t *testing.T) {
	a := product("A", "10.00")
	b := product("B", "5.00")

	var cart Cart
	cart = cart.Add(a)
	cart = cart.Add(a)
	cart = cart.Add(b)

	cart = cart.Remove(a.ID)

	if len(cart) != 1 {
		t.Fatalf("cart has %d lines after remove, want 1", len(cart))
	}
	if cart[0].Product.ID != b.ID {
		t.Errorf("remaining line is %s, want B", cart[0].Product.Name)
	}
}

func TestRemoveUnknownProductIsNoop(t *testing.T) {
	a := product("A", "10.00")

	var cart Cart
	cart = cart.Add(a)
	cart = cart.Remove(uuid.New())

	if len(cart) != 1 {
		t.Fatalf("cart has %d lines, want 1", len(cart))
	}
}

func TestEmptyCart(t *testing.T) {
	var cart Cart
	if !cart.Empty() {
		t.Error("new cart should be empty")
	}
	if !cart.Total().IsZero() {
		t.Errorf("empty cart total = %s, want 0", cart.Total())
	}

	cart = cart.Add(product("A", "1.00"))
	if cart.Empty() {
		t.Error("cart with one line should not be empty")
	}
}
