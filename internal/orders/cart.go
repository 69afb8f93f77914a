package orders

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cafeteria-backend/internal/models"
)

// CartLine is one product-and-quantity entry of an in-memory cart. The
// product struct rides along so finalize can snapshot name and price.
type CartLine struct {
	Product  models.Product
	Quantity int
	Note     string
}

// Cart is a pure in-memory order draft. Nothing here touches persistence.
type Cart []CartLine

// Add increments the quantity when the product is already in the cart,
// otherwise appends a new line with quantity 1.
func (c Cart) Add(product models.Product) Cart {
	for i := range c {
		if c[i].Product.ID == product.ID {
			c[i].Quantity++
			return c
		}
	}
	return append(c, CartLine{Product: product, Quantity: 1})
}

// Remove drops the whole line for the product, not a single unit.
func (c Cart) Remove(productID uuid.UUID) Cart {
	out := c[:0]
	for _, line := range c {
		if line.Product.ID != productID {
			out = append(out, line)
		}
	}
	return out
}

// Total sums quantity × current unit price across all lines.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c {
		total = total.Add(line.Product.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

func (c Cart) Empty() bool { return len(c) == 0 }
