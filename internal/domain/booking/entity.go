// internal/domain/booking/entity.go
package booking

import (
	"context"
	"time"
)

// Status represents the booking status
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusRejected   Status = "rejected"
)

// Cancellation records how a booking was cancelled
type Cancellation struct {
	Reason      string    `json:"reason"`
	CancelledBy string    `json:"cancelled_by"`
	CancelledAt time.Time `json:"cancelled_at"`
}

// Booking represents a scheduled service booking
type Booking struct {
	BookingNumber string        `json:"booking_number"`
	Status        Status        `json:"status"`
	ScheduledTime time.Time     `json:"scheduled_time"`
	Duration      time.Duration `json:"duration"`
	Service       string        `json:"service"`
	Provider      string        `json:"provider"`
	Price         int64         `json:"price"`
	Cancellation  *Cancellation `json:"cancellation,omitempty"`
}

// IsTerminal reports whether the booking reached a terminal state
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted ||
		b.Status == StatusCancelled ||
		b.Status == StatusRejected
}

// CanBeCancelled checks if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeRescheduled checks if the booking can be moved to another time
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// Gateway is the remote booking API consumed by the manager
type Gateway interface {
	ListBookings(ctx context.Context) ([]Booking, error)
	GetBooking(ctx context.Context, bookingNumber string) (*Booking, error)
	CancelBooking(ctx context.Context, bookingNumber, reason string) (*Booking, error)
	RescheduleBooking(ctx context.Context, bookingNumber string, scheduledTime time.Time) (*Booking, error)
}
