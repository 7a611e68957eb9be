// internal/domain/order/history.go
package order

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/notify"
	"github.com/your-org/storefront-client/internal/pkg/apierr"
)

// ErrNotConfirmed is returned when a cancel is attempted without
// explicit confirmation from the user.
var ErrNotConfirmed = fmt.Errorf("cancellation requires confirmation")

// History exposes the customer's past orders and the cancel action
type History struct {
	gateway  Gateway
	notifier notify.Notifier
	logger   *logrus.Logger
}

// NewHistory creates an order history backed by the remote gateway
func NewHistory(gateway Gateway, notifier notify.Notifier, logger *logrus.Logger) *History {
	return &History{
		gateway:  gateway,
		notifier: notifier,
		logger:   logger,
	}
}

// List fetches the customer's orders, newest first per the backend
func (h *History) List(ctx context.Context) ([]Order, error) {
	orders, err := h.gateway.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// Get fetches one order by its number
func (h *History) Get(ctx context.Context, orderNumber string) (*Order, error) {
	o, err := h.gateway.GetOrder(ctx, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get order %s: %w", orderNumber, err)
	}
	return o, nil
}

// Cancel cancels an order. The caller must pass confirmed=true after
// the user explicitly confirmed; an order past confirmation is refused
// locally before any server call.
func (h *History) Cancel(ctx context.Context, orderNumber, reason string, confirmed bool) (*Order, error) {
	if !confirmed {
		return nil, ErrNotConfirmed
	}

	current, err := h.Get(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if !current.CanBeCancelled() {
		return nil, fmt.Errorf("order %s cannot be cancelled in status %s", orderNumber, current.Status)
	}

	cancelled, err := h.gateway.CancelOrder(ctx, orderNumber, reason)
	if err != nil {
		if h.notifier != nil {
			h.notifier.Notify(notify.Notification{
				Kind:    notify.KindError,
				Title:   "Failed to Cancel Order",
				Message: apierr.Message(err),
			})
		}
		if h.logger != nil {
			h.logger.WithError(err).WithField("order_number", orderNumber).Warn("order cancellation failed")
		}
		return nil, fmt.Errorf("failed to cancel order %s: %w", orderNumber, err)
	}

	if h.notifier != nil {
		h.notifier.Notify(notify.Notification{
			Kind:    notify.KindSuccess,
			Title:   "Order Cancelled",
			Message: fmt.Sprintf("Order %s has been cancelled", orderNumber),
		})
	}
	return cancelled, nil
}
