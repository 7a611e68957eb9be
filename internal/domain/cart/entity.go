// internal/domain/cart/entity.go
package cart

import (
	"context"
	"strings"
	"time"
)

// LineItem represents one product entry in the cart. Display fields are
// a snapshot captured when the item was added, not live catalog data.
type LineItem struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"price"` // Unit price at time of adding, minor units
}

// IsPending reports whether the line still carries a temporary,
// client-assigned identifier awaiting server reconciliation.
func (l LineItem) IsPending() bool {
	return strings.HasPrefix(l.ID, tempIDPrefix)
}

// LineTotal returns price times quantity in minor units
func (l LineItem) LineTotal() int64 {
	return l.Price * int64(l.Quantity)
}

// Display holds the catalog snapshot captured for an optimistic add
type Display struct {
	Name        string
	Description string
	Image       string
	Price       int64
}

// State is the observable cart state shared across screens
type State struct {
	Items      []LineItem `json:"items"`
	IsLoading  bool       `json:"is_loading"`
	Error      string     `json:"error,omitempty"`
	LastSynced *time.Time `json:"last_synced,omitempty"`
}

// ItemCount returns the number of distinct lines
func (s State) ItemCount() int {
	return len(s.Items)
}

// TotalQuantity returns the sum of all line quantities
func (s State) TotalQuantity() int {
	total := 0
	for _, item := range s.Items {
		total += item.Quantity
	}
	return total
}

// Subtotal returns the sum of line totals in minor units
func (s State) Subtotal() int64 {
	var subtotal int64
	for _, item := range s.Items {
		subtotal += item.LineTotal()
	}
	return subtotal
}

// IsEmpty reports whether the cart holds no lines
func (s State) IsEmpty() bool {
	return len(s.Items) == 0
}

// Gateway is the remote cart API consumed by the store. Every call
// returns the server-authoritative line list after the mutation.
type Gateway interface {
	FetchCart(ctx context.Context) ([]LineItem, error)
	AddItem(ctx context.Context, productID string, quantity int) ([]LineItem, error)
	UpdateItem(ctx context.Context, lineID string, quantity int) ([]LineItem, error)
	RemoveItem(ctx context.Context, lineID string) ([]LineItem, error)
}
