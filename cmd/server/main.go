package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clipcast/clipcast/internal/api"
	"github.com/clipcast/clipcast/pkg/clipcast/config"
)

func main() {
	cfg, err := config.Load(config.WithEnv())
	if err != nil {
		log.Fatalf("Failed to load server configuration: %v", err)
	}

	services, err := cfg.BuildServices(context.Background())
	if err != nil {
		log.Fatalf("Failed to build services: %v", err)
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: api.NewRouter(services.Assets, services.Auth),
	}

	go func() {
		log.Printf("ClipCast server starting on port %s (env: %s)", cfg.Port, cfg.Environment)
		log.Printf("Storage: %s, URL mode: %s", cfg.StorageURL, cfg.URLMode)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
