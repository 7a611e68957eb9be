// internal/api/wishlist.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/your-org/storefront-client/internal/domain/wishlist"
)

// wishlistEnvelope is the backend's wishlist response shape
type wishlistEnvelope struct {
	Items []wishlist.Item `json:"items"`
}

// addWishlistRequest is the add-to-wishlist payload
type addWishlistRequest struct {
	ProductID string `json:"product_id"`
}

// ListWishlist retrieves the user's wishlist
func (c *Client) ListWishlist(ctx context.Context) ([]wishlist.Item, error) {
	var envelope wishlistEnvelope
	if err := c.do(ctx, http.MethodGet, "/wishlist", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Items, nil
}

// AddToWishlist adds a product to the wishlist
func (c *Client) AddToWishlist(ctx context.Context, productID string) ([]wishlist.Item, error) {
	var envelope wishlistEnvelope
	if err := c.do(ctx, http.MethodPost, "/wishlist/items", addWishlistRequest{ProductID: productID}, &envelope); err != nil {
		return nil, err
	}
	return envelope.Items, nil
}

// RemoveFromWishlist removes a product from the wishlist
func (c *Client) RemoveFromWishlist(ctx context.Context, productID string) ([]wishlist.Item, error) {
	var envelope wishlistEnvelope
	path := fmt.Sprintf("/wishlist/items/%s", url.PathEscape(productID))
	if err := c.do(ctx, http.MethodDelete, path, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Items, nil
}
