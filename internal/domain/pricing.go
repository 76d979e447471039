package domain

import "github.com/shopspring/decimal"

// Business constants. They are deliberately not configurable at runtime.
var (
	TaxRate               = decimal.RequireFromString("0.05")
	FreeDeliveryThreshold = decimal.NewFromInt(500)
	FlatDeliveryCharge    = decimal.NewFromInt(50)
)

// Totals is the priced breakdown of a cart.
type Totals struct {
	Subtotal       decimal.Decimal
	Tax            decimal.Decimal
	DeliveryCharge decimal.Decimal
	Total          decimal.Decimal
}

// CalculateTotals prices the given lines. Line prices must already be the
// snapshot taken from the menu.
func CalculateTotals(items []OrderItem) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}

	// Tax is stored at cent precision, rounded half-to-even.
	tax := subtotal.Mul(TaxRate).RoundBank(2)

	delivery := FlatDeliveryCharge
	if subtotal.GreaterThan(FreeDeliveryThreshold) {
		delivery = decimal.Zero
	}

	return Totals{
		Subtotal:       subtotal,
		Tax:            tax,
		DeliveryCharge: delivery,
		Total:          subtotal.Add(tax).Add(delivery),
	}
}
