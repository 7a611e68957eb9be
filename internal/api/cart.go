// internal/api/cart.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/your-org/storefront-client/internal/domain/cart"
)

// cartEnvelope is the backend's cart response shape
type cartEnvelope struct {
	Items []cart.LineItem `json:"items"`
}

// addCartItemRequest is the add-to-cart payload
type addCartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// updateCartItemRequest is the quantity update payload
type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// FetchCart retrieves the current server cart
func (c *Client) FetchCart(ctx context.Context) ([]cart.LineItem, error) {
	var envelope cartEnvelope
	if err := c.do(ctx, http.MethodGet, "/cart", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Items, nil
}

// AddItem adds a product to the server cart
func (c *Client) AddItem(ctx context.Context, productID string, quantity int) ([]cart.LineItem, error) {
	var envelope cartEnvelope
	req := addCartItemRequest{ProductID: productID, Quantity: quantity}
	if err := c.do(ctx, http.MethodPost, "/cart/items", req, &envelope); err != nil {
		return nil, err
	}
	return envelope.Items, nil
}

// UpdateItem changes a cart line's quantity
func (c *Client) UpdateItem(ctx context.Context, lineID string, quantity int) ([]cart.LineItem, error) {
	var envelope cartEnvelope
	path := fmt.Sprintf("/cart/items/%s", url.PathEscape(lineID))
	if err := c.do(ctx, http.MethodPut, path, updateCartItemRequest{Quantity: quantity}, &envelope); err != nil {
		return nil, err
	}
	return envelope.Items, nil
}

// RemoveItem deletes a cart line
func (c *Client) RemoveItem(ctx context.Context, lineID string) ([]cart.LineItem, error) {
	var envelope cartEnvelope
	path := fmt.Sprintf("/cart/items/%s", url.PathEscape(lineID))
	if err := c.do(ctx, http.MethodDelete, path, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Items, nil
}
