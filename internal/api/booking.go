// internal/api/booking.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/your-org/storefront-client/internal/domain/booking"
)

// bookingListEnvelope is the backend's booking-list response shape
type bookingListEnvelope struct {
	Bookings []booking.Booking `json:"bookings"`
}

// bookingEnvelope is the backend's single-booking response shape
type bookingEnvelope struct {
	Booking booking.Booking `json:"booking"`
}

// cancelBookingRequest is the cancellation payload
type cancelBookingRequest struct {
	Reason string `json:"reason"`
}

// rescheduleBookingRequest is the reschedule payload
type rescheduleBookingRequest struct {
	ScheduledTime time.Time `json:"scheduled_time"`
}

// ListBookings retrieves the user's bookings
func (c *Client) ListBookings(ctx context.Context) ([]booking.Booking, error) {
	var envelope bookingListEnvelope
	if err := c.do(ctx, http.MethodGet, "/bookings", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Bookings, nil
}

// GetBooking retrieves a single booking
func (c *Client) GetBooking(ctx context.Context, bookingNumber string) (*booking.Booking, error) {
	var envelope bookingEnvelope
	path := fmt.Sprintf("/bookings/%s", url.PathEscape(bookingNumber))
	if err := c.do(ctx, http.MethodGet, path, nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Booking, nil
}

// CancelBooking cancels a booking with a reason
func (c *Client) CancelBooking(ctx context.Context, bookingNumber, reason string) (*booking.Booking, error) {
	var envelope bookingEnvelope
	path := fmt.Sprintf("/bookings/%s/cancel", url.PathEscape(bookingNumber))
	if err := c.do(ctx, http.MethodPost, path, cancelBookingRequest{Reason: reason}, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Booking, nil
}

// RescheduleBooking moves a booking to a new time
func (c *Client) RescheduleBooking(ctx context.Context, bookingNumber string, scheduledTime time.Time) (*booking.Booking, error) {
	var envelope bookingEnvelope
	path := fmt.Sprintf("/bookings/%s/reschedule", url.PathEscape(bookingNumber))
	req := rescheduleBookingRequest{ScheduledTime: scheduledTime}
	if err := c.do(ctx, http.MethodPost, path, req, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Booking, nil
}
