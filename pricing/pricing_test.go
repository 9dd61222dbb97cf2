package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	// Two items at 5.00 x2 and 3.00 x1: subtotal 13.00, fee 2.99,
	// 8% tax 1.04, total 16.03.
	quote := Compute([]Line{
		{UnitPrice: 5.00, Quantity: 2},
		{UnitPrice: 3.00, Quantity: 1},
	}, 2.99, 0.08)

	assert.Equal(t, 13.00, quote.Subtotal)
	assert.Equal(t, 2.99, quote.DeliveryFee)
	assert.Equal(t, 1.04, quote.Tax)
	assert.Equal(t, 16.03, quote.Total)
}

func TestCompute_RoundsToTwoDecimals(t *testing.T) {
	quote := Compute([]Line{
		{UnitPrice: 9.99, Quantity: 3}, // 29.97
	}, 2.99, 0.08)

	assert.Equal(t, 29.97, quote.Subtotal)
	assert.Equal(t, 2.40, quote.Tax) // 2.3976 rounds up
	assert.Equal(t, 35.36, quote.Total)
}

func TestCompute_EmptyLines(t *testing.T) {
	quote := Compute(nil, 2.99, 0.08)
	assert.Equal(t, 0.0, quote.Subtotal)
	assert.Equal(t, 0.0, quote.Tax)
	assert.Equal(t, 2.99, quote.Total)
}

func TestLineSubtotal(t *testing.T) {
	assert.Equal(t, 10.00, LineSubtotal(5.00, 2))
	assert.Equal(t, 0.30, LineSubtotal(0.10, 3)) // no float drift
}
