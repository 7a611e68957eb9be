// internal/domain/product/entity.go
package product

import (
	"context"

	"github.com/your-org/storefront-client/internal/domain/cart"
)

// Product is the catalog entry as the backend presents it to the client
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`
	Price       int64   `json:"price"` // In minor units
	Category    string  `json:"category,omitempty"`
	InStock     bool    `json:"in_stock"`
	Rating      float64 `json:"rating,omitempty"`
}

// Display returns the catalog snapshot the cart captures for an
// optimistic add.
func (p Product) Display() cart.Display {
	return cart.Display{
		Name:        p.Name,
		Description: p.Description,
		Image:       p.Image,
		Price:       p.Price,
	}
}

// ListQuery narrows a catalog listing
type ListQuery struct {
	Search   string
	Category string
	Page     int
	Limit    int
}

// Gateway is the remote catalog API consumed by the client
type Gateway interface {
	ListProducts(ctx context.Context, query ListQuery) ([]Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
}
