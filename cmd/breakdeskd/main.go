package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"breakdesk-backend/config"
	"breakdesk-backend/internal/api"
	"breakdesk-backend/internal/booking"
	"breakdesk-backend/internal/clock"
	"breakdesk-backend/internal/db"
	"breakdesk-backend/internal/store"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "breakdesk-backend ", log.LstdFlags)

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	// All date and booked-at computations run in one fixed civil timezone.
	loc, err := clock.Load(cfg.Booking.Timezone)
	if err != nil {
		logger.Fatalf("failed to load timezone %q: %v", cfg.Booking.Timezone, err)
	}
	clk := clock.NewSystem(loc)

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	// Create the store layer instance
	appStore := store.NewGormStore(gormDB, store.Defaults{
		LunchLimit: cfg.Booking.DefaultLunchLimit,
		TeaLimit:   cfg.Booking.DefaultTeaLimit,
	})
	logger.Println("data store initialized")

	// Booking lifecycle service
	svc := booking.NewService(&cfg.Booking, appStore, clk)

	// Initialize router
	router := api.NewRouter(cfg, appStore, svc)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	// Create a deadline to wait for.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
