// internal/devserver/server.go

// Package devserver is a self-contained fake of the storefront backend
// for local development and demos. It serves the same REST contract the
// client consumes, backed by in-memory state and a seeded catalog.
package devserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/config"
)

// Server is the dev backend HTTP server
type Server struct {
	cfg        *config.Config
	logger     *logrus.Logger
	state      *memoryState
	currency   string
	gin        *gin.Engine
	httpServer *http.Server
}

// NewServer creates a dev backend server instance
func NewServer(cfg *config.Config, logger *logrus.Logger) *Server {
	return &Server{
		cfg:      cfg,
		logger:   logger,
		state:    newMemoryState(),
		currency: cfg.Pricing.Currency,
	}
}

// Handler builds and returns the HTTP handler
func (s *Server) Handler() http.Handler {
	if s.gin == nil {
		s.gin = gin.New()
		s.gin.Use(gin.Recovery())
		s.gin.Use(requestLogger(s.logger))
		s.gin.Use(corsAllowAll())
		s.setupRoutes()
	}
	return s.gin
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	if s.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	s.httpServer = &http.Server{
		Addr:         ":" + s.cfg.Server.Port,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	s.logger.WithField("port", s.cfg.Server.Port).Info("dev backend starting")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start dev backend: %w", err)
	}
	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("dev backend shutting down")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown dev backend: %w", err)
	}
	return nil
}

func (s *Server) setupRoutes() {
	s.gin.GET("/health", s.healthCheck)

	// Root index endpoint in development only
	if s.cfg.IsDevelopment() {
		s.gin.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"message":     "Storefront dev backend",
				"version":     s.cfg.App.Version,
				"environment": s.cfg.App.Environment,
				"api":         "/api/v1",
			})
		})
	}

	v1 := s.gin.Group("/api/v1")
	{
		v1.GET("/products", s.listProducts)
		v1.GET("/products/:id", s.getProduct)

		v1.GET("/cart", s.getCart)
		v1.POST("/cart/items", s.addCartItem)
		v1.PUT("/cart/items/:id", s.updateCartItem)
		v1.DELETE("/cart/items/:id", s.removeCartItem)

		v1.GET("/addresses", s.listAddresses)
		v1.POST("/addresses", s.createAddress)
		v1.GET("/addresses/:id", s.getAddress)
		v1.PUT("/addresses/:id", s.updateAddress)
		v1.DELETE("/addresses/:id", s.deleteAddress)
		v1.PATCH("/addresses/:id/default", s.setDefaultAddress)

		v1.POST("/orders", s.createOrder)
		v1.GET("/orders", s.listOrders)
		v1.GET("/orders/:number", s.getOrder)
		v1.POST("/orders/:number/cancel", s.cancelOrder)

		v1.POST("/promos/validate", s.validatePromo)

		v1.GET("/wishlist", s.getWishlist)
		v1.POST("/wishlist/items", s.addWishlistItem)
		v1.DELETE("/wishlist/items/:id", s.removeWishlistItem)

		v1.GET("/bookings", s.listBookings)
		v1.GET("/bookings/:number", s.getBooking)
		v1.POST("/bookings/:number/cancel", s.cancelBooking)
		v1.POST("/bookings/:number/reschedule", s.rescheduleBooking)

		v1.POST("/analytics/events", s.acceptEvents)
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"version":     s.cfg.App.Version,
		"environment": s.cfg.App.Environment,
	})
}

// requestLogger logs each request with structured fields
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.WithFields(logrus.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
			"latency":     time.Since(start),
			"client_ip":   c.ClientIP(),
		})

		switch {
		case c.Writer.Status() >= 500:
			entry.Error("request completed with server error")
		case c.Writer.Status() >= 400:
			entry.Warn("request completed with client error")
		default:
			entry.Info("request completed")
		}
	}
}

// corsAllowAll permits any origin; this server only ever runs locally
func corsAllowAll() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, Accept")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
