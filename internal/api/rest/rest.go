package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"brain/internal/dlock"
	"brain/internal/graph"
)

const (
	nilArgErr         = "nil %v not allowed"
	emptyArgErr       = "empty %v not allowed"
	nonPositiveArgErr = "non-positive %v not allowed"
)

// @title Brain memory graph API
// @version 1.0
// @description Memory graph shared by several server processes. Every read and write
// @description runs under a single dataset lease stored in the shared database.
// @description
// @description Endpoints:
// @description - GET /graph: Read every entity and relation
// @description - POST /entities: Create entities
// @description - POST /relations: Create relations
// @description - GET /lock: Inspect the dataset lease
// @description - DELETE /lock: Force clear the dataset lease
// @description - GET /health: Check service health

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// RestApi defines methods to handle rest server
type RestApi interface {
	StartServer()
	GracefulStopServer()
}

type apiDetails struct {
	logger          *slog.Logger
	server          *http.Server
	service         graph.Service
	lease           dlock.Admin
	serverPort      string
	shutdownTimeout time.Duration
}

// NewApi creates new api instance, otherwise returns error.
// shutdownTimeout bounds how long a signalled shutdown waits for in-flight requests.
func NewApi(logger *slog.Logger, port string, shutdownTimeout time.Duration, service graph.Service, lease dlock.Admin) (RestApi, error) {
	if logger == nil {
		return nil, fmt.Errorf(nilArgErr, "logger")
	}

	if port == "" {
		return nil, fmt.Errorf(emptyArgErr, "port")
	}

	if shutdownTimeout <= 0 {
		return nil, fmt.Errorf(nonPositiveArgErr, "shutdown timeout")
	}

	if service == nil {
		return nil, fmt.Errorf(nilArgErr, "graph service")
	}

	if lease == nil {
		return nil, fmt.Errorf(nilArgErr, "lease admin")
	}

	api := &apiDetails{
		logger:          logger,
		service:         service,
		lease:           lease,
		serverPort:      port,
		shutdownTimeout: shutdownTimeout,
	}

	serverAddr := port
	if !strings.Contains(serverAddr, ":") {
		serverAddr = ":" + serverAddr
	}
	api.server = &http.Server{
		Addr:              serverAddr,
		Handler:           api.setupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return api, nil
}

// StartServer starts the rest server
// it listens for a kill signal to stop the server gracefully
func (api *apiDetails) StartServer() {
	serverErrChan := make(chan error, 1)

	go func() {
		api.logger.Info("Starting server",
			"address", api.server.Addr,
		)
		if err := api.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("server listen error: %w", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrChan:
		api.logger.Error("Server startup failed", "error", err)
	case sig := <-stop:
		api.logger.Info("Shutdown signal received",
			"signal", sig,
		)

		ctx, cancel := context.WithTimeout(context.Background(), api.shutdownTimeout)
		defer cancel()

		if err := api.server.Shutdown(ctx); err != nil {
			api.logger.Error("Server shutdown failed", "error", err)
		}

		api.logger.Info("Server stopped")
	}
}

// GracefulStopServer stops the rest server gracefully
func (api *apiDetails) GracefulStopServer() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := api.server.Shutdown(ctx); err != nil {
		api.logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
	}
	api.logger.Info("Server exiting")
}
