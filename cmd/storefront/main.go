// cmd/storefront/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/your-org/storefront-client/internal/api"
	"github.com/your-org/storefront-client/internal/config"
	"github.com/your-org/storefront-client/internal/domain/address"
	"github.com/your-org/storefront-client/internal/domain/analytics"
	"github.com/your-org/storefront-client/internal/domain/booking"
	"github.com/your-org/storefront-client/internal/domain/cart"
	"github.com/your-org/storefront-client/internal/domain/checkout"
	"github.com/your-org/storefront-client/internal/domain/order"
	"github.com/your-org/storefront-client/internal/domain/pricing"
	"github.com/your-org/storefront-client/internal/domain/product"
	"github.com/your-org/storefront-client/internal/domain/wishlist"
	"github.com/your-org/storefront-client/internal/infrastructure/storage"
	"github.com/your-org/storefront-client/internal/notify"
	"github.com/your-org/storefront-client/internal/pkg/logging"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg)
	logger.Infof("Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	// Connect the key-value store; fall back to in-process memory when
	// Redis is disabled or unreachable.
	var kv storage.KeyValue
	var redisStore *storage.RedisStore
	if cfg.Redis.Enabled {
		redisStore, err = storage.NewRedisStore(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisStore.Close()

		if err := redisStore.Health(); err != nil {
			log.Fatalf("Redis health check failed: %v", err)
		}
		logger.Info("Redis connection established")
		kv = redisStore
	} else {
		logger.Warn("Redis disabled, using in-memory storage")
		kv = storage.NewMemoryStore()
	}

	prefs := storage.NewPrefs(kv, cfg.Storage)
	notifier := notify.NewLogNotifier(logger)
	client := api.NewClient(cfg, prefs, logger)

	// Wire the cart store and checkout flow
	store := cart.NewStore(client, prefs, notifier, logger)
	calc := pricing.NewCalculator(cfg.Pricing.FreeShippingThreshold)
	flow := checkout.NewFlow(store, calc, cfg.Pricing.TaxRate, client, client, notifier, logger)

	// Supporting managers shared across screens
	catalog := product.NewCatalog(client, logger)
	addresses := address.NewManager(client, notifier, logger)
	bookings := booking.NewManager(client, notifier, logger)
	orders := order.NewHistory(client, notifier, logger)
	saved := wishlist.NewManager(client, notifier, logger)
	tracker := analytics.NewTracker(client, logger)
	defer tracker.Close()

	store.Subscribe(func(state cart.State) {
		logger.WithField("items", state.ItemCount()).Debug("cart state changed")
		tracker.Track("cart_changed", map[string]any{
			"item_count": state.ItemCount(),
			"subtotal":   state.Subtotal(),
		})
	})

	// Initial sync; stale snapshot keeps the cart usable on failure.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.RequestTimeout)
	if err := store.LoadCart(ctx); err != nil {
		logger.WithError(err).Warn("initial cart sync failed")
	}

	// Warm the caches the screens read synchronously.
	if products, err := catalog.List(ctx, product.ListQuery{Limit: 50}); err == nil {
		logger.WithField("count", len(products)).Debug("catalog warmed")
	}
	if list, err := addresses.List(ctx); err == nil {
		logger.WithField("count", len(list)).Debug("address book warmed")
	}
	if items, err := saved.List(ctx); err == nil {
		logger.WithField("count", len(items)).Debug("wishlist warmed")
	}
	if list, err := orders.List(ctx); err == nil {
		logger.WithField("count", len(list)).Debug("order history warmed")
	}
	if list, err := bookings.List(ctx); err == nil {
		logger.WithField("count", len(list)).Debug("bookings warmed")
	}
	cancel()
	tracker.Track("app_started", map[string]any{"version": cfg.App.Version})

	logger.WithField("step", flow.Step()).Info("storefront client ready")

	// Wait for interrupt signal to shut down gracefully
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gracefully...")
	logger.Info("Shutdown completed")
}
