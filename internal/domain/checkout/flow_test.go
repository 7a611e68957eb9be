// internal/domain/checkout/flow_test.go
package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-client/internal/domain/address"
	"github.com/your-org/storefront-client/internal/domain/cart"
	"github.com/your-org/storefront-client/internal/domain/pricing"
	"github.com/your-org/storefront-client/internal/notify"
	"github.com/your-org/storefront-client/internal/pkg/apierr"
)

// stubCartGateway satisfies cart.Gateway for flows seeded locally
type stubCartGateway struct{}

func (stubCartGateway) FetchCart(ctx context.Context) ([]cart.LineItem, error) { return nil, nil }
func (stubCartGateway) AddItem(ctx context.Context, productID string, quantity int) ([]cart.LineItem, error) {
	return nil, nil
}
func (stubCartGateway) UpdateItem(ctx context.Context, lineID string, quantity int) ([]cart.LineItem, error) {
	return nil, nil
}
func (stubCartGateway) RemoveItem(ctx context.Context, lineID string) ([]cart.LineItem, error) {
	return nil, nil
}

type fakeOrders struct {
	fail error
	last *OrderRequest
}

func (f *fakeOrders) SubmitOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	f.last = &req
	if f.fail != nil {
		return nil, f.fail
	}
	return &Order{
		OrderNumber: "ORD-2024-001",
		Status:      "pending",
		Total:       req.Pricing.Total,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

type fakePromos struct {
	results map[string]*pricing.PromoResult
	fail    error
}

func (f *fakePromos) ValidatePromo(ctx context.Context, code string) (*pricing.PromoResult, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	if r, ok := f.results[code]; ok {
		return r, nil
	}
	return &pricing.PromoResult{Code: code, Valid: false, Message: "promo code not found"}, nil
}

type flowHarness struct {
	flow   *Flow
	store  *cart.Store
	orders *fakeOrders
	promos *fakePromos
	rec    *notify.Recorder
}

func newHarness(t *testing.T) *flowHarness {
	t.Helper()
	rec := notify.NewRecorder()
	store := cart.NewStore(stubCartGateway{}, nil, rec, nil)
	orders := &fakeOrders{}
	promos := &fakePromos{results: map[string]*pricing.PromoResult{
		"SAVE10": {Code: "SAVE10", Valid: true, Type: pricing.PromoTypePercent, Value: 10},
	}}
	calc := pricing.NewCalculator(0)
	return &flowHarness{
		flow:   NewFlow(store, calc, 0, orders, promos, rec, nil),
		store:  store,
		orders: orders,
		promos: promos,
		rec:    rec,
	}
}

func (h *flowHarness) seedCart(price int64, qty int) {
	h.store.AddItemLocal(cart.LineItem{ProductID: "p1", Name: "Monstera", Price: price, Quantity: qty})
}

func (h *flowHarness) toOrderConfirm(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, h.flow.SelectAddress(address.Address{ID: "addr-1", Name: "Ada", City: "Karachi"}))
	h.flow.SelectShipping(DefaultShippingMethods()[0])
	require.NoError(t, h.flow.SelectPayment(DefaultPaymentMethods()[0]))
	require.NoError(t, h.flow.Advance(ctx)) // cart review
	require.NoError(t, h.flow.Advance(ctx)) // address
	require.NoError(t, h.flow.Advance(ctx)) // shipping
	require.NoError(t, h.flow.Advance(ctx)) // payment
	require.Equal(t, StepOrderConfirm, h.flow.Step())
}

func TestAdvance_GuardsEachStep(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	assert.Equal(t, StepCartReview, h.flow.Step())
	assert.ErrorIs(t, h.flow.Advance(ctx), ErrEmptyCart)

	h.seedCart(1000, 2)
	require.NoError(t, h.flow.Advance(ctx))
	assert.Equal(t, StepAddressSelection, h.flow.Step())

	assert.ErrorIs(t, h.flow.Advance(ctx), ErrNoAddress)
	assert.Error(t, h.flow.SelectAddress(address.Address{Name: "unsaved"}), "unsaved address rejected")
	require.NoError(t, h.flow.SelectAddress(address.Address{ID: "addr-1", Name: "Ada"}))
	require.NoError(t, h.flow.Advance(ctx))
	assert.Equal(t, StepShippingMethod, h.flow.Step())

	assert.ErrorIs(t, h.flow.Advance(ctx), ErrNoShippingMethod)
	h.flow.SelectShipping(DefaultShippingMethods()[0])
	require.NoError(t, h.flow.Advance(ctx))
	assert.Equal(t, StepPaymentMethod, h.flow.Step())

	assert.ErrorIs(t, h.flow.Advance(ctx), ErrNoPaymentMethod)
	assert.Error(t, h.flow.SelectPayment(PaymentMethod{ID: "iou", Available: false}))
	require.NoError(t, h.flow.SelectPayment(DefaultPaymentMethods()[0]))
	require.NoError(t, h.flow.Advance(ctx))
	assert.Equal(t, StepOrderConfirm, h.flow.Step())
}

func TestCancel_ReturnsToCartReviewKeepingSelections(t *testing.T) {
	h := newHarness(t)
	h.seedCart(1000, 1)
	h.toOrderConfirm(t)

	h.flow.Cancel()
	assert.Equal(t, StepCartReview, h.flow.Step())
	assert.Nil(t, h.orders.last, "cancel submits nothing")
	assert.False(t, h.store.Snapshot().IsEmpty(), "cancel clears nothing")

	// Selections survive: the flow walks straight back to confirmation.
	ctx := context.Background()
	require.NoError(t, h.flow.Advance(ctx))
	require.NoError(t, h.flow.Advance(ctx))
	require.NoError(t, h.flow.Advance(ctx))
	require.NoError(t, h.flow.Advance(ctx))
	assert.Equal(t, StepOrderConfirm, h.flow.Step())
}

func TestAdvance_SubmitFailureStaysInOrderConfirm(t *testing.T) {
	h := newHarness(t)
	h.seedCart(1000, 1)
	h.toOrderConfirm(t)
	h.orders.fail = &apierr.APIError{Status: 402, Message: "Payment declined"}

	err := h.flow.Advance(context.Background())
	require.Error(t, err)

	assert.Equal(t, StepOrderConfirm, h.flow.Step(), "flow stays put for retry")
	assert.Nil(t, h.flow.Order())
	assert.False(t, h.store.Snapshot().IsEmpty(), "cart intact after failed submission")

	events := h.rec.Events()
	require.Len(t, events, 1)
	assert.Equal(t, notify.KindError, events[0].Kind)
	assert.Equal(t, "Order Failed", events[0].Title)
	assert.Equal(t, "Payment declined", events[0].Message)
}

func TestAdvance_SubmitSuccessClearsCart(t *testing.T) {
	h := newHarness(t)
	h.seedCart(1000, 2)
	h.toOrderConfirm(t)

	_, err := h.flow.ApplyPromo(context.Background(), "SAVE10")
	require.NoError(t, err)
	h.flow.SetNotes("leave at the door")

	require.NoError(t, h.flow.Advance(context.Background()))

	assert.Equal(t, StepSuccess, h.flow.Step())
	order := h.flow.Order()
	require.NotNil(t, order)
	assert.Equal(t, "ORD-2024-001", order.OrderNumber)
	assert.True(t, h.store.Snapshot().IsEmpty(), "cart cleared only after confirmation")

	req := h.orders.last
	require.NotNil(t, req)
	require.Len(t, req.Items, 1)
	assert.Equal(t, []string{"SAVE10"}, req.Discounts)
	assert.Equal(t, "leave at the door", req.Notes)
	assert.Equal(t, "addr-1", req.Shipping.Address.ID)
	assert.Equal(t, "standard", req.Shipping.MethodID)
	assert.Equal(t, "card", req.Billing.PaymentMethodID)
	// 2000 subtotal, 10% off, standard shipping below the free threshold.
	assert.Equal(t, int64(1800+150), req.Pricing.Total)

	assert.ErrorIs(t, h.flow.Advance(context.Background()), ErrFlowComplete)

	events := h.rec.Events()
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, notify.KindSuccess, last.Kind)
	assert.Equal(t, "Order Placed", last.Title)
}

func TestApplyPromo(t *testing.T) {
	h := newHarness(t)
	h.seedCart(1000, 2)

	result, err := h.flow.ApplyPromo(context.Background(), "SAVE10")
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, int64(200), h.flow.Summary().Discount)

	// An unknown code comes back invalid, not as an error, and does not
	// displace the applied promo.
	result, err = h.flow.ApplyPromo(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "promo code not found", result.Message)
	assert.Equal(t, int64(200), h.flow.Summary().Discount)

	h.flow.RemovePromo()
	assert.Equal(t, int64(0), h.flow.Summary().Discount)

	_, err = h.flow.ApplyPromo(context.Background(), "")
	assert.Error(t, err)

	h.promos.fail = &apierr.APIError{Status: 503, Message: "try later"}
	_, err = h.flow.ApplyPromo(context.Background(), "SAVE10")
	assert.Error(t, err)
}

func TestSummary_TracksLiveCartAndSelections(t *testing.T) {
	h := newHarness(t)
	h.seedCart(1000, 2)

	base := h.flow.Summary()
	assert.Equal(t, int64(2000), base.Subtotal)
	assert.Equal(t, int64(0), base.ShippingCost, "no method selected yet")

	h.flow.SelectShipping(DefaultShippingMethods()[1]) // express, 350
	h.flow.SetTip(500)

	got := h.flow.Summary()
	assert.Equal(t, int64(350), got.ShippingCost)
	assert.Equal(t, int64(500), got.Tip)
	assert.Equal(t, int64(2000+350+500), got.Total)

	// Crossing the free-shipping threshold zeroes the fee.
	h.store.AddItemLocal(cart.LineItem{ProductID: "p2", Name: "Fiddle Fig", Price: 4000, Quantity: 1})
	got = h.flow.Summary()
	assert.Equal(t, int64(6000), got.Subtotal)
	assert.Equal(t, int64(0), got.ShippingCost)
}

func TestSetTip_FloorsNegative(t *testing.T) {
	h := newHarness(t)
	h.seedCart(1000, 1)
	h.flow.SetTip(-100)
	assert.Equal(t, int64(0), h.flow.Summary().Tip)
}
