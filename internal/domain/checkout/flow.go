// internal/domain/checkout/flow.go

// Package checkout drives the linear checkout flow as an explicit state
// machine with guarded transitions. The navigation layer renders the
// current step; it is never the source of truth for flow validity.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/domain/address"
	"github.com/your-org/storefront-client/internal/domain/cart"
	"github.com/your-org/storefront-client/internal/domain/pricing"
	"github.com/your-org/storefront-client/internal/notify"
	"github.com/your-org/storefront-client/internal/pkg/apierr"
)

// Step identifies a checkout flow state
type Step string

const (
	StepCartReview       Step = "cart_review"
	StepAddressSelection Step = "address_selection"
	StepShippingMethod   Step = "shipping_method"
	StepPaymentMethod    Step = "payment_method"
	StepOrderConfirm     Step = "order_confirm"
	StepSuccess          Step = "success"
)

// Guard errors returned by Advance when a prerequisite is missing
var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrNoAddress        = errors.New("select a delivery address to continue")
	ErrNoShippingMethod = errors.New("select a shipping method to continue")
	ErrNoPaymentMethod  = errors.New("select a payment method to continue")
	ErrFlowComplete     = errors.New("checkout flow already completed")
)

// PaymentMethod represents a selectable payment option
type PaymentMethod struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Available   bool   `json:"available"`
}

// OrderRequest is the order submission payload
type OrderRequest struct {
	Items     []cart.LineItem   `json:"items"`
	Pricing   pricing.Breakdown `json:"pricing"`
	Shipping  OrderShipping     `json:"shipping"`
	Billing   OrderBilling      `json:"billing"`
	Discounts []string          `json:"discounts,omitempty"`
	Notes     string            `json:"notes,omitempty"`
}

// OrderShipping pairs the delivery address with the selected method
type OrderShipping struct {
	Address  address.Address        `json:"address"`
	MethodID string                 `json:"method_id"`
	Method   pricing.ShippingMethod `json:"method"`
}

// OrderBilling records how the order is paid
type OrderBilling struct {
	Address         address.Address `json:"address"`
	PaymentMethodID string          `json:"payment_method_id"`
}

// Order is the server's confirmation of a created order
type Order struct {
	OrderNumber string    `json:"order_number"`
	Status      string    `json:"status"`
	Total       int64     `json:"total"`
	CreatedAt   time.Time `json:"created_at"`
}

// OrderGateway submits orders to the backend
type OrderGateway interface {
	SubmitOrder(ctx context.Context, req OrderRequest) (*Order, error)
}

// PromoValidator validates promo codes server-side
type PromoValidator interface {
	ValidatePromo(ctx context.Context, code string) (*pricing.PromoResult, error)
}

// Flow sequences CartReview -> AddressSelection -> ShippingMethod ->
// PaymentMethod -> OrderConfirm -> Success. Cancel from any non-terminal
// step returns to CartReview with selections kept and no side effects.
// The cart is cleared only after the order is confirmed.
type Flow struct {
	mu   sync.Mutex
	step Step

	selectedAddress *address.Address
	shippingMethod  *pricing.ShippingMethod
	paymentMethod   *PaymentMethod
	promo           *pricing.PromoResult
	tip             int64
	notes           string
	confirmedOrder  *Order

	store    *cart.Store
	calc     *pricing.Calculator
	taxRate  float64
	orders   OrderGateway
	promos   PromoValidator
	notifier notify.Notifier
	logger   *logrus.Logger
}

// NewFlow creates a checkout flow over the given cart store
func NewFlow(store *cart.Store, calc *pricing.Calculator, taxRate float64, orders OrderGateway, promos PromoValidator, notifier notify.Notifier, logger *logrus.Logger) *Flow {
	return &Flow{
		step:     StepCartReview,
		store:    store,
		calc:     calc,
		taxRate:  taxRate,
		orders:   orders,
		promos:   promos,
		notifier: notifier,
		logger:   logger,
	}
}

// Step returns the current flow step
func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Order returns the confirmed order after the flow reached Success
func (f *Flow) Order() *Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.confirmedOrder
}

// SelectAddress records the delivery address; it must be a persisted
// address (server-assigned ID).
func (f *Flow) SelectAddress(addr address.Address) error {
	if addr.ID == "" {
		return fmt.Errorf("address must be saved before it can be selected")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selectedAddress = &addr
	return nil
}

// SelectShipping records the shipping method
func (f *Flow) SelectShipping(method pricing.ShippingMethod) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shippingMethod = &method
}

// SelectPayment records the payment method
func (f *Flow) SelectPayment(method PaymentMethod) error {
	if !method.Available {
		return fmt.Errorf("payment method %s is not available", method.ID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paymentMethod = &method
	return nil
}

// SetTip records a tip amount in minor units (services flow only)
func (f *Flow) SetTip(tip int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if tip < 0 {
		tip = 0
	}
	f.tip = tip
}

// SetNotes records free-form order notes
func (f *Flow) SetNotes(notes string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notes = notes
}

// ApplyPromo validates the code server-side and applies it when valid.
// An invalid code is surfaced through the returned result, not an error.
func (f *Flow) ApplyPromo(ctx context.Context, code string) (*pricing.PromoResult, error) {
	if code == "" {
		return nil, fmt.Errorf("promo code is required")
	}
	result, err := f.promos.ValidatePromo(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to validate promo code: %w", err)
	}
	if result.Valid {
		f.mu.Lock()
		f.promo = result
		f.mu.Unlock()
	}
	return result, nil
}

// RemovePromo drops the applied promo code
func (f *Flow) RemovePromo() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.promo = nil
}

// Summary recomputes the pricing breakdown from the live cart snapshot
// and the current selections, so every screen shows the same totals.
func (f *Flow) Summary() pricing.Breakdown {
	f.mu.Lock()
	promo := f.promo
	method := f.shippingMethod
	tip := f.tip
	f.mu.Unlock()

	items := f.store.Snapshot().Items
	return f.calc.ComputeWithTaxRate(items, promo, method, f.taxRate, tip)
}

// Advance attempts the forward transition out of the current step.
// A failed guard blocks the transition and returns the reason; it never
// panics and has no side effects besides order submission out of
// OrderConfirm.
func (f *Flow) Advance(ctx context.Context) error {
	f.mu.Lock()
	step := f.step
	f.mu.Unlock()

	switch step {
	case StepCartReview:
		if f.store.Snapshot().IsEmpty() {
			return ErrEmptyCart
		}
		f.transition(StepAddressSelection)
	case StepAddressSelection:
		if f.selected() == nil {
			return ErrNoAddress
		}
		f.transition(StepShippingMethod)
	case StepShippingMethod:
		f.mu.Lock()
		ok := f.shippingMethod != nil
		f.mu.Unlock()
		if !ok {
			return ErrNoShippingMethod
		}
		f.transition(StepPaymentMethod)
	case StepPaymentMethod:
		f.mu.Lock()
		ok := f.paymentMethod != nil
		f.mu.Unlock()
		if !ok {
			return ErrNoPaymentMethod
		}
		f.transition(StepOrderConfirm)
	case StepOrderConfirm:
		return f.submitOrder(ctx)
	case StepSuccess:
		return ErrFlowComplete
	default:
		return fmt.Errorf("unknown checkout step %q", step)
	}
	return nil
}

// Cancel returns the flow to CartReview. Selections are kept so the
// user can resume; nothing is submitted or cleared.
func (f *Flow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepSuccess {
		f.step = StepCartReview
	}
}

// submitOrder sends the order. On failure the flow stays in
// OrderConfirm, the error is surfaced, and the cart is left intact.
func (f *Flow) submitOrder(ctx context.Context) error {
	snapshot := f.store.Snapshot()
	if snapshot.IsEmpty() {
		return ErrEmptyCart
	}

	f.mu.Lock()
	addr := f.selectedAddress
	shipping := f.shippingMethod
	payment := f.paymentMethod
	promo := f.promo
	notes := f.notes
	f.mu.Unlock()

	if addr == nil {
		return ErrNoAddress
	}
	if shipping == nil {
		return ErrNoShippingMethod
	}
	if payment == nil {
		return ErrNoPaymentMethod
	}

	req := OrderRequest{
		Items:   snapshot.Items,
		Pricing: f.Summary(),
		Shipping: OrderShipping{
			Address:  *addr,
			MethodID: shipping.ID,
			Method:   *shipping,
		},
		Billing: OrderBilling{
			Address:         *addr,
			PaymentMethodID: payment.ID,
		},
		Notes: notes,
	}
	if promo != nil && promo.Valid {
		req.Discounts = []string{promo.Code}
	}

	order, err := f.orders.SubmitOrder(ctx, req)
	if err != nil {
		msg := apierr.Message(err)
		if f.notifier != nil {
			f.notifier.Notify(notify.Notification{
				Kind:    notify.KindError,
				Title:   "Order Failed",
				Message: msg,
			})
		}
		if f.logger != nil {
			f.logger.WithError(err).Warn("order submission failed")
		}
		return fmt.Errorf("order submission failed: %w", err)
	}

	f.mu.Lock()
	f.confirmedOrder = order
	f.step = StepSuccess
	f.mu.Unlock()

	// Cart is cleared only once the order is confirmed.
	f.store.ClearCart(ctx)

	if f.notifier != nil {
		f.notifier.Notify(notify.Notification{
			Kind:    notify.KindSuccess,
			Title:   "Order Placed",
			Message: fmt.Sprintf("Order %s confirmed", order.OrderNumber),
		})
	}
	if f.logger != nil {
		f.logger.WithField("order_number", order.OrderNumber).Info("order confirmed")
	}
	return nil
}

func (f *Flow) selected() *address.Address {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.selectedAddress
}

func (f *Flow) transition(next Step) {
	f.mu.Lock()
	f.step = next
	f.mu.Unlock()
	if f.logger != nil {
		f.logger.WithField("step", next).Debug("checkout step advanced")
	}
}

// DefaultShippingMethods returns the storefront's standard options
func DefaultShippingMethods() []pricing.ShippingMethod {
	return []pricing.ShippingMethod{
		{ID: "standard", Name: "Standard Shipping", Fee: 150, EstimatedDays: "5-7 business days"},
		{ID: "express", Name: "Express Shipping", Fee: 350, EstimatedDays: "2-3 business days"},
	}
}

// DefaultPaymentMethods returns the storefront's standard options
func DefaultPaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		{ID: "card", Name: "Credit / Debit Card", Available: true},
		{ID: "cod", Name: "Cash on Delivery", Description: "Pay when your order arrives", Available: true},
		{ID: "wallet", Name: "Digital Wallet", Available: true},
	}
}
