package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/catalog"
	"github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/domain"
	"github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/events"
	"github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/repository"
	"github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/service"
	httpTransport "github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/transport/http"
	websocketTransport "github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/transport/websocket"
	"github.com/nicholasjackson/env"
	"github.com/spf13/cast"
)

// Environment variables
var (
	bindAddress = env.String("BIND_ADDRESS", false,
		":9090", "Bind address for the server")
	logLevel = env.String("LOG_LEVEL", false,
		"debug", "Log output level for the server [debug, info, trace]")
	storeBackend = env.String("STORE_BACKEND", false,
		"memory", "Where saved products go [memory, bolt, file]")
	storePath = env.String("STORE_PATH", false,
		"./data/configurator.db", "Bolt database file, or the directory for the file backend")
	storeKey = env.String("STORE_KEY", false,
		service.DefaultSnapshotKey, "Key the saved product is stored under")
	storeQuota = env.String("STORE_QUOTA", false,
		"5242880", "Maximum size in bytes of a saved product for the file backend")
	allowedOrigins = env.String("ALLOWED_ORIGINS", false,
		"http://localhost:3000", "Comma separated origins allowed to call the API")
	loadExample = env.String("LOAD_EXAMPLE", false,
		"false", "Start the editor with the example product")
)

func main() {
	env.Parse()

	// Initialize the logger
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "product-configurator",
		Level: hclog.LevelFromString(*logLevel),
	})

	// Create a standard logger for the HTTP server
	standardLogger := logger.StandardLogger(&hclog.StandardLoggerOptions{InferLevels: true})

	repo, err := openRepository(*storeBackend, *storePath, *storeQuota)
	if err != nil {
		logger.Error("Unable to open the product store", "backend", *storeBackend, "path", *storePath, "error", err)
		os.Exit(1)
	}
	logger.Info("Opened product store", "backend", *storeBackend, "key", *storeKey)

	// Shared between the editor and the WebSocket preview
	eventBus := events.NewEventBus[any]()

	editor := service.NewEditorService(
		repo,
		eventBus,
		logger.Named("editor-service"),
		catalog.UUIDGenerator{},
		*storeKey,
	)

	if cast.ToBool(*loadExample) {
		if _, err := editor.LoadExample(context.Background()); err != nil {
			logger.Error("Unable to load the example product", "error", err)
			os.Exit(1)
		}
	}

	validator := domain.NewValidation()

	origins := splitOrigins(*allowedOrigins)
	corsConfig := httpTransport.DefaultCORSConfig()
	corsConfig.AllowedOrigins = origins

	eh := httpTransport.NewEditorHandler(editor, logger.Named("http-handler"))

	wh := websocketTransport.NewHandler(
		logger.Named("websocket-handler"),
		eventBus,
		origins,
	)

	router := httpTransport.NewRouter(eh, validator, logger, wh, corsConfig)

	// Create the HTTP Server
	server := &http.Server{
		Addr:         *bindAddress,
		Handler:      router,
		ErrorLog:     standardLogger,
		IdleTimeout:  120 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// Start the server in a new goroutine
	go func() {
		logger.Info("Starting server", "bind_address", *bindAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Error starting server", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("Shutting down server", "signal", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error shutting down server", "error", err)
	}

	if err := repo.Close(); err != nil {
		logger.Error("Error closing product store", "error", err)
	}
}

func openRepository(backend, path, quota string) (repository.SnapshotRepository, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", "memory":
		return repository.NewMemoryRepository(), nil
	case "bolt":
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
		db, err := repository.OpenBolt(path)
		if err != nil {
			return nil, err
		}
		return db, nil
	case "file":
		maxSize, err := cast.ToIntE(quota)
		if err != nil {
			return nil, fmt.Errorf("invalid STORE_QUOTA %q: %w", quota, err)
		}
		dir := path
		if filepath.Ext(dir) != "" {
			dir = filepath.Dir(dir)
		}
		local, err := repository.NewLocalRepository(dir, maxSize)
		if err != nil {
			return nil, err
		}
		return local, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
