// internal/domain/order/entity.go
package order

import (
	"context"
	"time"
)

// Status represents an order's lifecycle state as reported by the backend
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
	StatusRefunded   Status = "refunded"
)

// Item is one line of a past order
type Item struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"` // Unit price at time of purchase, minor units
}

// Order is a past order as shown in the order history
type Order struct {
	OrderNumber    string    `json:"order_number"`
	Status         Status    `json:"status"`
	Items          []Item    `json:"items"`
	Subtotal       int64     `json:"subtotal"`
	Discount       int64     `json:"discount"`
	ShippingCost   int64     `json:"shipping_cost"`
	Tax            int64     `json:"tax"`
	Total          int64     `json:"total"`
	Currency       string    `json:"currency"`
	TrackingNumber string    `json:"tracking_number,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// CanBeCancelled reports whether the order is still early enough in its
// lifecycle for the customer to cancel it.
func (o *Order) CanBeCancelled() bool {
	return o.Status == StatusPending || o.Status == StatusConfirmed
}

// IsDelivered reports whether the order reached the customer
func (o *Order) IsDelivered() bool {
	return o.Status == StatusDelivered
}

// Gateway is the remote order-history API consumed by the client
type Gateway interface {
	ListOrders(ctx context.Context) ([]Order, error)
	GetOrder(ctx context.Context, orderNumber string) (*Order, error)
	CancelOrder(ctx context.Context, orderNumber, reason string) (*Order, error)
}
