// internal/api/order.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/your-org/storefront-client/internal/domain/checkout"
	"github.com/your-org/storefront-client/internal/domain/order"
	"github.com/your-org/storefront-client/internal/domain/pricing"
)

// orderEnvelope is the backend's order response shape
type orderEnvelope struct {
	Order checkout.Order `json:"order"`
}

// promoValidateRequest is the promo validation payload
type promoValidateRequest struct {
	Code string `json:"code"`
}

// orderListEnvelope is the backend's order-history response shape
type orderListEnvelope struct {
	Orders []order.Order `json:"orders"`
}

// orderHistoryEnvelope is the backend's single past-order response shape
type orderHistoryEnvelope struct {
	Order order.Order `json:"order"`
}

// cancelOrderRequest is the order cancellation payload
type cancelOrderRequest struct {
	Reason string `json:"reason"`
}

// SubmitOrder creates an order from the checkout payload
func (c *Client) SubmitOrder(ctx context.Context, req checkout.OrderRequest) (*checkout.Order, error) {
	var envelope orderEnvelope
	if err := c.do(ctx, http.MethodPost, "/orders", req, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Order, nil
}

// ListOrders retrieves the user's order history
func (c *Client) ListOrders(ctx context.Context) ([]order.Order, error) {
	var envelope orderListEnvelope
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Orders, nil
}

// GetOrder retrieves a single past order
func (c *Client) GetOrder(ctx context.Context, orderNumber string) (*order.Order, error) {
	var envelope orderHistoryEnvelope
	path := fmt.Sprintf("/orders/%s", url.PathEscape(orderNumber))
	if err := c.do(ctx, http.MethodGet, path, nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Order, nil
}

// CancelOrder cancels a past order with a reason
func (c *Client) CancelOrder(ctx context.Context, orderNumber, reason string) (*order.Order, error) {
	var envelope orderHistoryEnvelope
	path := fmt.Sprintf("/orders/%s/cancel", url.PathEscape(orderNumber))
	if err := c.do(ctx, http.MethodPost, path, cancelOrderRequest{Reason: reason}, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Order, nil
}

// ValidatePromo validates a promo code server-side
func (c *Client) ValidatePromo(ctx context.Context, code string) (*pricing.PromoResult, error) {
	var result pricing.PromoResult
	if err := c.do(ctx, http.MethodPost, "/promos/validate", promoValidateRequest{Code: code}, &result); err != nil {
		return nil, err
	}
	result.Code = code
	return &result, nil
}
