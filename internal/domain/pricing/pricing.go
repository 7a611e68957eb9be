// internal/domain/pricing/pricing.go

// Package pricing computes the cart's derived totals. Everything here
// is pure: no side effects, no network calls, all math in int64 minor
// units. Display rounding lives in pkg/money.
package pricing

import (
	"math"

	"github.com/your-org/storefront-client/internal/domain/cart"
)

// DefaultFreeShippingThreshold is the subtotal, in minor units, at
// which shipping becomes free regardless of the selected method's fee.
const DefaultFreeShippingThreshold int64 = 5000

// Promo discount types as returned by promo validation
const (
	PromoTypePercent = "percent"
	PromoTypeFlat    = "flat"
)

// PromoResult is the outcome of server-side promo code validation
type PromoResult struct {
	Code    string `json:"code"`
	Valid   bool   `json:"valid"`
	Type    string `json:"type,omitempty"`  // percent or flat
	Value   int64  `json:"value,omitempty"` // percentage points or minor units
	Message string `json:"message,omitempty"`
}

// ShippingMethod represents a selectable shipping option
type ShippingMethod struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Fee           int64  `json:"fee"` // flat fee in minor units
	EstimatedDays string `json:"estimated_days,omitempty"`
	Free          bool   `json:"free,omitempty"` // method grants free shipping outright
}

// Breakdown is the derived pricing summary. Total is never negative:
// total = max(subtotal - discount, 0) + shipping + tax + tip.
type Breakdown struct {
	Subtotal     int64 `json:"subtotal"`
	Discount     int64 `json:"discount"`
	ShippingCost int64 `json:"shipping_cost"`
	Tax          int64 `json:"tax"`
	Tip          int64 `json:"tip"`
	Total        int64 `json:"total"`
}

// Calculator computes breakdowns under a configured free-shipping rule
type Calculator struct {
	freeShippingThreshold int64
}

// NewCalculator creates a calculator with the given free-shipping
// threshold in minor units; a non-positive threshold falls back to the
// default.
func NewCalculator(freeShippingThreshold int64) *Calculator {
	if freeShippingThreshold <= 0 {
		freeShippingThreshold = DefaultFreeShippingThreshold
	}
	return &Calculator{freeShippingThreshold: freeShippingThreshold}
}

// FreeShippingThreshold returns the configured threshold
func (c *Calculator) FreeShippingThreshold() int64 {
	return c.freeShippingThreshold
}

// Compute derives the full breakdown from the line items and checkout
// selections. Any of promo/method may be nil; tax and tip are plain
// minor-unit inputs (tip applies to the services flow only).
func (c *Calculator) Compute(items []cart.LineItem, promo *PromoResult, method *ShippingMethod, tax, tip int64) Breakdown {
	var subtotal int64
	for _, item := range items {
		subtotal += item.Price * int64(item.Quantity)
	}

	discount := resolveDiscount(subtotal, promo)
	shipping := c.resolveShipping(subtotal, method)

	discounted := subtotal - discount
	if discounted < 0 {
		discounted = 0
	}
	if tax < 0 {
		tax = 0
	}
	if tip < 0 {
		tip = 0
	}

	return Breakdown{
		Subtotal:     subtotal,
		Discount:     discount,
		ShippingCost: shipping,
		Tax:          tax,
		Tip:          tip,
		Total:        discounted + shipping + tax + tip,
	}
}

// ComputeWithTaxRate derives the breakdown with tax computed from a
// percentage rate applied to the discounted subtotal, matching how the
// backend taxes orders. The tax amount is rounded half-up to the
// nearest minor unit.
func (c *Calculator) ComputeWithTaxRate(items []cart.LineItem, promo *PromoResult, method *ShippingMethod, taxRate float64, tip int64) Breakdown {
	b := c.Compute(items, promo, method, 0, tip)
	if taxRate <= 0 {
		return b
	}
	taxable := b.Subtotal - b.Discount
	if taxable < 0 {
		taxable = 0
	}
	tax := int64(math.Round(float64(taxable) * taxRate / 100))
	b.Tax = tax
	b.Total += tax
	return b
}

// resolveDiscount turns a validated promo into a discount amount,
// clamped so subtotal - discount never goes negative.
func resolveDiscount(subtotal int64, promo *PromoResult) int64 {
	if promo == nil || !promo.Valid {
		return 0
	}

	var discount int64
	switch promo.Type {
	case PromoTypePercent:
		discount = subtotal * promo.Value / 100
	case PromoTypeFlat:
		discount = promo.Value
	default:
		return 0
	}

	if discount < 0 {
		return 0
	}
	if discount > subtotal {
		return subtotal
	}
	return discount
}

// resolveShipping applies the free-shipping rule before the method fee
func (c *Calculator) resolveShipping(subtotal int64, method *ShippingMethod) int64 {
	if method == nil {
		return 0
	}
	if subtotal >= c.freeShippingThreshold || method.Free {
		return 0
	}
	if method.Fee < 0 {
		return 0
	}
	return method.Fee
}
