// internal/devserver/server_test.go
package devserver

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-client/internal/api"
	"github.com/your-org/storefront-client/internal/config"
	"github.com/your-org/storefront-client/internal/domain/address"
	"github.com/your-org/storefront-client/internal/domain/booking"
	"github.com/your-org/storefront-client/internal/domain/checkout"
	"github.com/your-org/storefront-client/internal/domain/product"
)

// newTestClient runs the dev backend on an httptest listener and
// returns the real API client pointed at it.
func newTestClient(t *testing.T) *api.Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	cfg := &config.Config{
		App:     config.AppConfig{Version: "test"},
		Pricing: config.PricingConfig{Currency: "USD"},
	}
	server := NewServer(cfg, logger)
	srv := httptest.NewServer(server.Handler())
	t.Cleanup(srv.Close)

	clientCfg := &config.Config{API: config.APIConfig{
		BaseURL:        srv.URL + "/api/v1",
		RequestTimeout: 5 * time.Second,
		UserAgent:      "storefront-client/test",
	}}
	return api.NewClient(clientCfg, nil, nil)
}

func TestDevServer_RootIndexInDevelopmentOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	dev := NewServer(&config.Config{
		App:     config.AppConfig{Version: "test", Environment: "development"},
		Pricing: config.PricingConfig{Currency: "USD"},
	}, logger)
	devSrv := httptest.NewServer(dev.Handler())
	t.Cleanup(devSrv.Close)

	resp, err := devSrv.Client().Get(devSrv.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)

	quiet := NewServer(&config.Config{
		App:     config.AppConfig{Version: "test", Environment: "staging"},
		Pricing: config.PricingConfig{Currency: "USD"},
	}, logger)
	quietSrv := httptest.NewServer(quiet.Handler())
	t.Cleanup(quietSrv.Close)

	resp, err = quietSrv.Client().Get(quietSrv.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 404, resp.StatusCode)
}

func TestDevServer_CatalogAndCart(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	products, err := client.ListProducts(ctx, product.ListQuery{Category: "plants"})
	require.NoError(t, err)
	require.NotEmpty(t, products)
	for _, p := range products {
		assert.Equal(t, "plants", p.Category)
	}

	items, err := client.AddItem(ctx, products[0].ID, 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, products[0].Price, items[0].Price)
	assert.Equal(t, 2, items[0].Quantity)

	items, err = client.UpdateItem(ctx, items[0].ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, items[0].Quantity)

	items, err = client.RemoveItem(ctx, items[0].ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDevServer_OutOfStockRejected(t *testing.T) {
	client := newTestClient(t)

	_, err := client.AddItem(context.Background(), "p-mister", 1)
	require.Error(t, err)
}

func TestDevServer_AddressLifecycle(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	form := address.Form{
		Name:        "Ada Lovelace",
		Phone:       "+923001234567",
		Email:       "ada@example.com",
		FullAddress: "221B Baker Street, Flat 2",
		City:        "Karachi",
		Province:    "Sindh",
		Country:     "Pakistan",
		PostalCode:  "74200",
		Label:       address.LabelHome,
	}

	created, err := client.CreateAddress(ctx, form)
	require.NoError(t, err)
	assert.True(t, created.IsDefault, "first address becomes default")

	form.Name = "Grace Hopper"
	form.Label = address.LabelWork
	second, err := client.CreateAddress(ctx, form)
	require.NoError(t, err)
	assert.False(t, second.IsDefault)

	addresses, err := client.SetDefaultAddress(ctx, second.ID)
	require.NoError(t, err)
	defaults := 0
	for _, a := range addresses {
		if a.IsDefault {
			defaults++
			assert.Equal(t, second.ID, a.ID)
		}
	}
	assert.Equal(t, 1, defaults)

	require.NoError(t, client.DeleteAddress(ctx, second.ID))
	addresses, err = client.ListAddresses(ctx)
	require.NoError(t, err)
	require.Len(t, addresses, 1)
	assert.True(t, addresses[0].IsDefault, "remaining address inherits default")
}

func TestDevServer_OrderFlow(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	items, err := client.AddItem(ctx, "p-monstera", 1)
	require.NoError(t, err)

	confirmed, err := client.SubmitOrder(ctx, checkout.OrderRequest{Items: items})
	require.NoError(t, err)
	assert.NotEmpty(t, confirmed.OrderNumber)

	// The server consumed the cart as part of order creation.
	items, err = client.FetchCart(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	orders, err := client.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, confirmed.OrderNumber, orders[0].OrderNumber)

	cancelled, err := client.CancelOrder(ctx, confirmed.OrderNumber, "ordered by mistake")
	require.NoError(t, err)
	assert.False(t, cancelled.CanBeCancelled())

	_, err = client.CancelOrder(ctx, confirmed.OrderNumber, "again")
	require.Error(t, err, "already-cancelled order refuses a second cancel")
}

func TestDevServer_PromoValidation(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	result, err := client.ValidatePromo(ctx, "SAVE10")
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, int64(10), result.Value)

	result, err = client.ValidatePromo(ctx, "BOGUS")
	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestDevServer_WishlistToggleShape(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	items, err := client.AddToWishlist(ctx, "p-snake")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p-snake", items[0].ProductID)

	// Adding the same product twice is idempotent.
	items, err = client.AddToWishlist(ctx, "p-snake")
	require.NoError(t, err)
	require.Len(t, items, 1)

	items, err = client.RemoveFromWishlist(ctx, "p-snake")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDevServer_BookingLifecycle(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	bookings, err := client.ListBookings(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, bookings)

	newTime := time.Now().Add(96 * time.Hour).UTC().Truncate(time.Second)
	moved, err := client.RescheduleBooking(ctx, "BK-1001", newTime)
	require.NoError(t, err)
	assert.True(t, moved.ScheduledTime.Equal(newTime))

	cancelled, err := client.CancelBooking(ctx, "BK-1001", "change of plans")
	require.NoError(t, err)
	assert.Equal(t, booking.StatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.Cancellation)
	assert.Equal(t, "change of plans", cancelled.Cancellation.Reason)

	_, err = client.CancelBooking(ctx, "BK-1002", "too late")
	require.Error(t, err, "completed booking cannot be cancelled")
}
