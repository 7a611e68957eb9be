// internal/domain/product/catalog.go
package product

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/domain/cart"
)

// Catalog is the client's read-only view of the product catalog. Every
// product that passes through it is cached by ID so add-to-cart can
// capture a display snapshot without another round-trip.
type Catalog struct {
	mu   sync.Mutex
	byID map[string]Product

	gateway Gateway
	logger  *logrus.Logger
}

// NewCatalog creates a catalog backed by the remote gateway
func NewCatalog(gateway Gateway, logger *logrus.Logger) *Catalog {
	return &Catalog{
		byID:    make(map[string]Product),
		gateway: gateway,
		logger:  logger,
	}
}

// List fetches a page of products matching the query
func (c *Catalog) List(ctx context.Context, query ListQuery) ([]Product, error) {
	products, err := c.gateway.ListProducts(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	c.mu.Lock()
	for _, p := range products {
		c.byID[p.ID] = p
	}
	c.mu.Unlock()

	return products, nil
}

// Get returns a product by ID, from cache when seen before
func (c *Catalog) Get(ctx context.Context, id string) (*Product, error) {
	c.mu.Lock()
	cached, ok := c.byID[id]
	c.mu.Unlock()
	if ok {
		return &cached, nil
	}

	p, err := c.gateway.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}

	c.mu.Lock()
	c.byID[p.ID] = *p
	c.mu.Unlock()

	return p, nil
}

// DisplayFor returns the cached display snapshot for a product, or
// false when the product has not been seen yet.
func (c *Catalog) DisplayFor(productID string) (cart.Display, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.byID[productID]
	if !ok {
		return cart.Display{}, false
	}
	return p.Display(), true
}
