package pricing

import (
	"github.com/shopspring/decimal"
)

// Line is one order line at its snapshot unit price.
type Line struct {
	UnitPrice float64
	Quantity  int
}

// Quote is the money breakdown of an order, each field rounded to 2 decimal
// places.
type Quote struct {
	Subtotal    float64
	DeliveryFee float64
	Tax         float64
	Total       float64
}

// Compute builds an order quote from its lines plus the configured flat
// delivery fee and tax rate. All arithmetic is done in decimal so that
// float noise never reaches the stored totals.
func Compute(lines []Line, deliveryFee, taxRate float64) Quote {
	subtotal := decimal.Zero
	for _, l := range lines {
		price := decimal.NewFromFloat(l.UnitPrice)
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	subtotal = subtotal.Round(2)

	fee := decimal.NewFromFloat(deliveryFee).Round(2)
	tax := subtotal.Mul(decimal.NewFromFloat(taxRate)).Round(2)
	total := subtotal.Add(fee).Add(tax).Round(2)

	return Quote{
		Subtotal:    subtotal.InexactFloat64(),
		DeliveryFee: fee.InexactFloat64(),
		Tax:         tax.InexactFloat64(),
		Total:       total.InexactFloat64(),
	}
}

// LineSubtotal is the rounded unit price × quantity for a single line.
func LineSubtotal(unitPrice float64, quantity int) float64 {
	return decimal.NewFromFloat(unitPrice).
		Mul(decimal.NewFromInt(int64(quantity))).
		Round(2).
		InexactFloat64()
}
