// cmd/devserver/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/your-org/storefront-client/internal/config"
	"github.com/your-org/storefront-client/internal/devserver"
	"github.com/your-org/storefront-client/internal/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg)
	server := devserver.NewServer(cfg, logger)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Dev backend failed: %v", err)
		}
	}()

	// Wait for interrupt signal to shut down gracefully
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		logger.WithError(err).Error("shutdown failed")
	}
}
