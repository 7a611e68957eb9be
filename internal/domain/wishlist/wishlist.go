// internal/domain/wishlist/wishlist.go

// Package wishlist maintains the client's view of the saved-for-later
// list. The server owns the list; the manager mirrors its responses.
package wishlist

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/notify"
	"github.com/your-org/storefront-client/internal/pkg/apierr"
)

// Item represents a wishlist entry
type Item struct {
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Image     string    `json:"image,omitempty"`
	Price     int64     `json:"price"`
	AddedAt   time.Time `json:"added_at"`
}

// Gateway is the remote wishlist API consumed by the manager. Mutations
// return the full server list.
type Gateway interface {
	ListWishlist(ctx context.Context) ([]Item, error)
	AddToWishlist(ctx context.Context, productID string) ([]Item, error)
	RemoveFromWishlist(ctx context.Context, productID string) ([]Item, error)
}

// Manager keeps a cached copy of the wishlist for instant membership
// checks (the heart icon on product cards).
type Manager struct {
	mu    sync.Mutex
	items []Item

	gateway  Gateway
	notifier notify.Notifier
	logger   *logrus.Logger
}

// NewManager creates a wishlist manager backed by the remote gateway
func NewManager(gateway Gateway, notifier notify.Notifier, logger *logrus.Logger) *Manager {
	return &Manager{
		gateway:  gateway,
		notifier: notifier,
		logger:   logger,
	}
}

// List refreshes and returns the wishlist
func (m *Manager) List(ctx context.Context) ([]Item, error) {
	items, err := m.gateway.ListWishlist(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}
	m.mu.Lock()
	m.items = items
	m.mu.Unlock()
	return m.Cached(), nil
}

// Cached returns a copy of the last-fetched wishlist
func (m *Manager) Cached() []Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Item, len(m.items))
	copy(out, m.items)
	return out
}

// Contains reports whether the product is in the cached wishlist
func (m *Manager) Contains(productID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// Toggle adds the product when absent and removes it when present.
// Returns true when the product ends up in the wishlist.
func (m *Manager) Toggle(ctx context.Context, productID string) (bool, error) {
	if m.Contains(productID) {
		if err := m.remove(ctx, productID); err != nil {
			return true, err
		}
		return false, nil
	}
	if err := m.add(ctx, productID); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Manager) add(ctx context.Context, productID string) error {
	items, err := m.gateway.AddToWishlist(ctx, productID)
	if err != nil {
		m.notifyError("Failed to Add to Wishlist", err)
		return fmt.Errorf("failed to add product %s to wishlist: %w", productID, err)
	}
	m.mu.Lock()
	m.items = items
	m.mu.Unlock()
	return nil
}

func (m *Manager) remove(ctx context.Context, productID string) error {
	items, err := m.gateway.RemoveFromWishlist(ctx, productID)
	if err != nil {
		m.notifyError("Failed to Remove from Wishlist", err)
		return fmt.Errorf("failed to remove product %s from wishlist: %w", productID, err)
	}
	m.mu.Lock()
	m.items = items
	m.mu.Unlock()
	return nil
}

func (m *Manager) notifyError(title string, err error) {
	if m.notifier == nil {
		return
	}
	m.notifier.Notify(notify.Notification{
		Kind:    notify.KindError,
		Title:   title,
		Message: apierr.Message(err),
	})
	if m.logger != nil {
		m.logger.WithError(err).Warn(title)
	}
}
