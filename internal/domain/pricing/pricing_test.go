// internal/domain/pricing/pricing_test.go
package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/your-org/storefront-client/internal/domain/cart"
)

func items(lines ...cart.LineItem) []cart.LineItem {
	return lines
}

func line(productID string, price int64, qty int) cart.LineItem {
	return cart.LineItem{ID: "srv-" + productID, ProductID: productID, Price: price, Quantity: qty}
}

func TestCompute_Subtotal(t *testing.T) {
	calc := NewCalculator(5000)

	b := calc.Compute(items(line("p1", 1000, 2), line("p2", 250, 1)), nil, nil, 0, 0)

	assert.Equal(t, int64(2250), b.Subtotal)
	assert.Equal(t, int64(0), b.Discount)
	assert.Equal(t, int64(2250), b.Total)
}

func TestCompute_PercentPromo(t *testing.T) {
	calc := NewCalculator(5000)
	promo := &PromoResult{Valid: true, Type: PromoTypePercent, Value: 10}

	b := calc.Compute(items(line("p1", 1000, 2)), promo, nil, 0, 0)

	assert.Equal(t, int64(2000), b.Subtotal)
	assert.Equal(t, int64(200), b.Discount)
	assert.Equal(t, int64(1800), b.Total)
}

func TestCompute_FlatPromoClampedToSubtotal(t *testing.T) {
	calc := NewCalculator(5000)
	promo := &PromoResult{Valid: true, Type: PromoTypeFlat, Value: 9999}

	b := calc.Compute(items(line("p1", 500, 1)), promo, nil, 0, 0)

	assert.Equal(t, int64(500), b.Discount)
	assert.Equal(t, int64(0), b.Total)
}

func TestCompute_InvalidPromoIgnored(t *testing.T) {
	calc := NewCalculator(5000)

	for _, promo := range []*PromoResult{
		nil,
		{Valid: false, Type: PromoTypePercent, Value: 50},
		{Valid: true, Type: "mystery", Value: 50},
		{Valid: true, Type: PromoTypeFlat, Value: -100},
	} {
		b := calc.Compute(items(line("p1", 1000, 1)), promo, nil, 0, 0)
		assert.Equal(t, int64(0), b.Discount)
	}
}

func TestCompute_FreeShippingThreshold(t *testing.T) {
	calc := NewCalculator(5000)
	express := &ShippingMethod{ID: "express", Name: "Express Shipping", Fee: 350}

	t.Run("above threshold", func(t *testing.T) {
		b := calc.Compute(items(line("p1", 3000, 2)), nil, express, 0, 0)
		assert.Equal(t, int64(6000), b.Subtotal)
		assert.Equal(t, int64(0), b.ShippingCost)
	})

	t.Run("at threshold", func(t *testing.T) {
		b := calc.Compute(items(line("p1", 5000, 1)), nil, express, 0, 0)
		assert.Equal(t, int64(0), b.ShippingCost)
	})

	t.Run("below threshold", func(t *testing.T) {
		b := calc.Compute(items(line("p1", 1000, 1)), nil, express, 0, 0)
		assert.Equal(t, int64(350), b.ShippingCost)
		assert.Equal(t, int64(1350), b.Total)
	})

	t.Run("method grants free shipping", func(t *testing.T) {
		free := &ShippingMethod{ID: "promo-free", Fee: 350, Free: true}
		b := calc.Compute(items(line("p1", 1000, 1)), nil, free, 0, 0)
		assert.Equal(t, int64(0), b.ShippingCost)
	})
}

func TestCompute_TotalNeverNegative(t *testing.T) {
	calc := NewCalculator(5000)

	cases := []struct {
		name  string
		promo *PromoResult
		tax   int64
		tip   int64
	}{
		{"flat promo exceeds subtotal", &PromoResult{Valid: true, Type: PromoTypeFlat, Value: 100000}, 0, 0},
		{"full percent discount", &PromoResult{Valid: true, Type: PromoTypePercent, Value: 100}, 0, 0},
		{"negative tax and tip ignored", nil, -50, -50},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := calc.Compute(items(line("p1", 700, 3)), tc.promo, nil, tc.tax, tc.tip)
			assert.GreaterOrEqual(t, b.Total, int64(0))
			assert.GreaterOrEqual(t, b.Subtotal-b.Discount, int64(0))
		})
	}
}

func TestCompute_TipIncluded(t *testing.T) {
	calc := NewCalculator(5000)

	b := calc.Compute(items(line("svc1", 2000, 1)), nil, nil, 0, 300)

	assert.Equal(t, int64(300), b.Tip)
	assert.Equal(t, int64(2300), b.Total)
}

func TestComputeWithTaxRate(t *testing.T) {
	calc := NewCalculator(5000)
	promo := &PromoResult{Valid: true, Type: PromoTypePercent, Value: 10}

	b := calc.ComputeWithTaxRate(items(line("p1", 1000, 2)), promo, nil, 18, 0)

	// 18% of the discounted subtotal (1800)
	assert.Equal(t, int64(324), b.Tax)
	assert.Equal(t, int64(2124), b.Total)
}

func TestComputeWithTaxRate_RoundsToNearestMinorUnit(t *testing.T) {
	calc := NewCalculator(5000)

	// 8.5% of 999 is 84.915; rounds up, never truncates to 84.
	b := calc.ComputeWithTaxRate(items(line("p1", 999, 1)), nil, nil, 8.5, 0)
	assert.Equal(t, int64(85), b.Tax)
	assert.Equal(t, int64(1084), b.Total)

	// 7.5% of 1010 is 75.75; rounds up.
	b = calc.ComputeWithTaxRate(items(line("p1", 1010, 1)), nil, nil, 7.5, 0)
	assert.Equal(t, int64(76), b.Tax)

	// 7.5% of 1000 is exactly 75.
	b = calc.ComputeWithTaxRate(items(line("p1", 1000, 1)), nil, nil, 7.5, 0)
	assert.Equal(t, int64(75), b.Tax)
}

func TestNewCalculator_DefaultThreshold(t *testing.T) {
	calc := NewCalculator(0)
	assert.Equal(t, DefaultFreeShippingThreshold, calc.FreeShippingThreshold())
}
