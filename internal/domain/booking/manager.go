// internal/domain/booking/manager.go
package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/notify"
	"github.com/your-org/storefront-client/internal/pkg/apierr"
)

// ErrNotConfirmed is returned when a cancel is attempted without
// explicit confirmation from the user.
var ErrNotConfirmed = fmt.Errorf("cancellation requires confirmation")

// Manager exposes the booking lifecycle actions available to the client
type Manager struct {
	gateway  Gateway
	notifier notify.Notifier
	logger   *logrus.Logger
}

// NewManager creates a booking manager backed by the remote gateway
func NewManager(gateway Gateway, notifier notify.Notifier, logger *logrus.Logger) *Manager {
	return &Manager{
		gateway:  gateway,
		notifier: notifier,
		logger:   logger,
	}
}

// List fetches the user's bookings
func (m *Manager) List(ctx context.Context) ([]Booking, error) {
	bookings, err := m.gateway.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// Get fetches one booking by its number
func (m *Manager) Get(ctx context.Context, bookingNumber string) (*Booking, error) {
	b, err := m.gateway.GetBooking(ctx, bookingNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking %s: %w", bookingNumber, err)
	}
	return b, nil
}

// Cancel cancels a booking. The caller must pass confirmed=true after
// the user explicitly confirmed; a booking in a terminal or in-progress
// state is refused locally before any server call.
func (m *Manager) Cancel(ctx context.Context, bookingNumber, reason string, confirmed bool) (*Booking, error) {
	if !confirmed {
		return nil, ErrNotConfirmed
	}

	current, err := m.Get(ctx, bookingNumber)
	if err != nil {
		return nil, err
	}
	if !current.CanBeCancelled() {
		return nil, fmt.Errorf("booking %s cannot be cancelled in status %s", bookingNumber, current.Status)
	}

	cancelled, err := m.gateway.CancelBooking(ctx, bookingNumber, reason)
	if err != nil {
		m.notifyError("Failed to Cancel Booking", err)
		return nil, fmt.Errorf("failed to cancel booking %s: %w", bookingNumber, err)
	}

	if m.notifier != nil {
		m.notifier.Notify(notify.Notification{
			Kind:    notify.KindSuccess,
			Title:   "Booking Cancelled",
			Message: fmt.Sprintf("Booking %s has been cancelled", bookingNumber),
		})
	}
	return cancelled, nil
}

// Reschedule moves a booking to a new time
func (m *Manager) Reschedule(ctx context.Context, bookingNumber string, scheduledTime time.Time) (*Booking, error) {
	current, err := m.Get(ctx, bookingNumber)
	if err != nil {
		return nil, err
	}
	if !current.CanBeRescheduled() {
		return nil, fmt.Errorf("booking %s cannot be rescheduled in status %s", bookingNumber, current.Status)
	}

	updated, err := m.gateway.RescheduleBooking(ctx, bookingNumber, scheduledTime)
	if err != nil {
		m.notifyError("Failed to Reschedule", err)
		return nil, fmt.Errorf("failed to reschedule booking %s: %w", bookingNumber, err)
	}
	return updated, nil
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
