// internal/api/analytics.go
package api

import (
	"context"
	"net/http"

	"github.com/your-org/storefront-client/internal/domain/analytics"
)

// eventsRequest is the analytics batch payload
type eventsRequest struct {
	Events []analytics.Event `json:"events"`
}

// SendEvents ships a batch of usage events to the backend
func (c *Client) SendEvents(ctx context.Context, events []analytics.Event) error {
	return c.do(ctx, http.MethodPost, "/analytics/events", eventsRequest{Events: events}, nil)
}
