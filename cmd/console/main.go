package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/medicore/hms-console/internal/console"
	"github.com/medicore/hms-console/internal/gateway"
	"github.com/medicore/hms-console/internal/records"
	"github.com/medicore/hms-console/internal/session"
	"github.com/medicore/hms-console/pkg/config"
	"github.com/medicore/hms-console/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)

	// Session store, restored from the state file so a restart does
	// not force a re-login
	stateFile := session.NewStateFile(cfg.Session.StateFile)
	store := session.NewStore(stateFile, logger)
	if err := store.Restore(); err != nil {
		logger.WithError(err).Warn("Failed to restore session state")
	}

	// API client and the flows built on it
	apiClient := gateway.New(&cfg.API, store, logger)
	auth := session.NewManager(store, apiClient, logger)
	loaders := records.NewRegistry(apiClient, logger)

	consoleServer := console.NewServer(cfg, store, auth, loaders, apiClient, logger)

	// Start the server in a goroutine
	go func() {
		if err := consoleServer.Start(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("Failed to start console server")
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down console server...")

	if err := consoleServer.Stop(); err != nil {
		logger.WithError(err).Error("Failed to shutdown server gracefully")
		os.Exit(1)
	}

	logger.Info("Console server stopped")
}
