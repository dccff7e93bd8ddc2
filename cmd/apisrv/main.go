package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ravi-codingcity/FreightPro-B/pkg/config"
	"github.com/ravi-codingcity/FreightPro-B/pkg/db"
	"github.com/ravi-codingcity/FreightPro-B/pkg/log"
	"github.com/ravi-codingcity/FreightPro-B/pkg/webserver"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := log.Init(&cfg.Logging); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger := log.GetLogger()

	logger.WithField("driver", cfg.Database.Driver).Info("Starting FreightPro destinations API")

	// Open the destination store; SQL drivers are migrated on open
	connectCtx, connectCancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := db.Open(connectCtx, &cfg.Database, logger)
	connectCancel()
	if err != nil {
		logger.WithError(err).Fatal("Failed to open destination store")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.WithError(err).Error("Failed to close destination store")
		}
	}()
	logger.LogSystem("database", "connect", true, map[string]interface{}{"driver": store.Driver()})

	if cfg.Database.SeedOnStart {
		seedCtx, seedCancel := context.WithTimeout(context.Background(), time.Minute)
		result, err := db.SeedDestinations(seedCtx, store, db.SampleDestinations)
		seedCancel()
		if err != nil {
			logger.WithError(err).Fatal("Failed to seed destinations")
		}
		logger.LogSystem("database", "seed", true, map[string]interface{}{
			"created": len(result.Created),
			"skipped": len(result.Skipped),
		})
	}

	// Initialize web server
	server, err := webserver.New(cfg, store, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize web server")
	}

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	logger.WithField("address", cfg.Server.GetServerAddr()).Info("Server started successfully")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.GracefulStop)*time.Second)
	defer shutdownCancel()

	if err := server.Stop(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	} else {
		logger.Info("Web server exited gracefully")
	}

	logger.Info("Application exited gracefully")
}
