// internal/domain/address/manager.go
package address

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/notify"
	"github.com/your-org/storefront-client/internal/pkg/apierr"
)

// ErrNotConfirmed is returned when a destructive action is attempted
// without explicit confirmation from the user.
var ErrNotConfirmed = fmt.Errorf("destructive action requires confirmation")

// ErrInvalidForm is returned when a form fails local validation
var ErrInvalidForm = fmt.Errorf("address form is invalid")

// Manager maintains the client's view of the address book. The server
// is the arbiter of the single-default invariant; after every mutation
// the cached list is replaced with what the server returned.
type Manager struct {
	mu        sync.Mutex
	addresses []Address

	gateway  Gateway
	notifier notify.Notifier
	logger   *logrus.Logger
}

// NewManager creates an address manager backed by the remote gateway
func NewManager(gateway Gateway, notifier notify.Notifier, logger *logrus.Logger) *Manager {
	return &Manager{
		gateway:  gateway,
		notifier: notifier,
		logger:   logger,
	}
}

// List refreshes and returns the address book
func (m *Manager) List(ctx context.Context) ([]Address, error) {
	addresses, err := m.gateway.ListAddresses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	m.mu.Lock()
	m.addresses = addresses
	m.mu.Unlock()
	return m.Cached(), nil
}

// Cached returns a copy of the last-fetched address list
func (m *Manager) Cached() []Address {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Address, len(m.addresses))
	copy(out, m.addresses)
	return out
}

// Get fetches a single address
func (m *Manager) Get(ctx context.Context, id string) (*Address, error) {
	addr, err := m.gateway.GetAddress(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get address %s: %w", id, err)
	}
	return addr, nil
}

// Default returns the cached default address, if any
func (m *Manager) Default() *Address {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, addr := range m.addresses {
		if addr.IsDefault {
			a := addr
			return &a
		}
	}
	return nil
}

// Create validates the form and persists a new address. Validation
// failures are returned as ErrInvalidForm with the field map; nothing
// is sent to the server until the form is locally clean.
func (m *Manager) Create(ctx context.Context, form Form) (*Address, ValidationResult, error) {
	if result := form.Validate(); !result.OK {
		return nil, result, ErrInvalidForm
	}

	addr, err := m.gateway.CreateAddress(ctx, form)
	if err != nil {
		m.notifyError("Failed to Save Address", err)
		return nil, ValidationResult{OK: true}, fmt.Errorf("failed to create address: %w", err)
	}

	m.mu.Lock()
	if addr.IsDefault {
		for i := range m.addresses {
			m.addresses[i].IsDefault = false
		}
	}
	m.addresses = append(m.addresses, *addr)
	m.mu.Unlock()

	m.notifySuccess("Address Saved", "Your address has been added")
	return addr, ValidationResult{OK: true}, nil
}

// Update validates the form and updates an existing address
func (m *Manager) Update(ctx context.Context, id string, form Form) (*Address, ValidationResult, error) {
	if result := form.Validate(); !result.OK {
		return nil, result, ErrInvalidForm
	}

	addr, err := m.gateway.UpdateAddress(ctx, id, form)
	if err != nil {
		m.notifyError("Failed to Update Address", err)
		return nil, ValidationResult{OK: true}, fmt.Errorf("failed to update address %s: %w", id, err)
	}

	m.mu.Lock()
	for i := range m.addresses {
		if addr.IsDefault && m.addresses[i].ID != addr.ID {
			m.addresses[i].IsDefault = false
		}
		if m.addresses[i].ID == addr.ID {
			m.addresses[i] = *addr
		}
	}
	m.mu.Unlock()

	return addr, ValidationResult{OK: true}, nil
}

// Delete removes an address. The caller must pass confirmed=true after
// the user explicitly confirmed the destructive action.
func (m *Manager) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}

	if err := m.gateway.DeleteAddress(ctx, id); err != nil {
		m.notifyError("Failed to Delete Address", err)
		return fmt.Errorf("failed to delete address %s: %w", id, err)
	}

	m.mu.Lock()
	for i := range m.addresses {
		if m.addresses[i].ID == id {
			m.addresses = append(m.addresses[:i], m.addresses[i+1:]...)
			break
		}
	}
	m.mu.Unlock()

	m.notifySuccess("Address Deleted", "The address has been removed")
	return nil
}

// SetDefault flags an address as default. The server clears the
// previous default; the cached list is replaced with its response so
// exactly one default survives locally.
func (m *Manager) SetDefault(ctx context.Context, id string) ([]Address, error) {
	addresses, err := m.gateway.SetDefaultAddress(ctx, id)
	if err != nil {
		m.notifyError("Failed to Set Default", err)
		return nil, fmt.Errorf("failed to set default address %s: %w", id, err)
	}

	m.mu.Lock()
	m.addresses = addresses
	m.mu.Unlock()
	return m.Cached(), nil
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

func (m *Manager) notifySuccess(title, message string) {
	if m.notifier == nil {
		return
	}
	m.notifier.Notify(notify.Notification{
		Kind:    notify.KindSuccess,
		Title:   title,
		Message: message,
	})
}
