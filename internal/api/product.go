// internal/api/product.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/your-org/storefront-client/internal/domain/product"
)

// productListEnvelope is the backend's product-list response shape
type productListEnvelope struct {
	Products []product.Product `json:"products"`
}

// productEnvelope is the backend's single-product response shape
type productEnvelope struct {
	Product product.Product `json:"product"`
}

// ListProducts retrieves a page of catalog products
func (c *Client) ListProducts(ctx context.Context, query product.ListQuery) ([]product.Product, error) {
	params := url.Values{}
	if query.Search != "" {
		params.Set("search", query.Search)
	}
	if query.Category != "" {
		params.Set("category", query.Category)
	}
	if query.Page > 0 {
		params.Set("page", strconv.Itoa(query.Page))
	}
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}

	path := "/products"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var envelope productListEnvelope
	if err := c.do(ctx, http.MethodGet, path, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Products, nil
}

// GetProduct retrieves a single catalog product
func (c *Client) GetProduct(ctx context.Context, id string) (*product.Product, error) {
	var envelope productEnvelope
	path := fmt.Sprintf("/products/%s", url.PathEscape(id))
	if err := c.do(ctx, http.MethodGet, path, nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Product, nil
}
