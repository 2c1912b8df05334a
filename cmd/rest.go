package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"brain/internal/api/rest"
	"brain/internal/graph"
	"brain/internal/pubsub"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

// restCmd represents the rest command
var restCmd = &cobra.Command{
	Use:   "rest",
	Short: "Start the REST API server",
	Long: `This command initializes and starts the REST API server.
Every graph route runs under the shared dataset lease, so any number of
these servers may point at the same database.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Create logger instance first for early logging
		logger := newLogger(slog.LevelDebug)

		logger.Info("Starting brain memory graph",
			"version", "1.0",
			"command", "rest",
		)

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		app, err := loadApp(ctx)
		if err != nil {
			logger.Error("Failed to initialise storage",
				"error", err,
				"error_type", fmt.Sprintf("%T", err),
			)
			os.Exit(1)
		}
		defer app.Close()

		// From here on log at the configured level
		logger = app.logger
		gin.SetMode(app.config.GinMode)

		logger.Info("Configuration loaded",
			"store_backend", app.config.StoreBackend,
			"server_port", app.config.ServerPort,
			"lock_resource_id", app.config.Lock.ResourceID,
			"lock_timeout", app.config.Lock.Timeout,
			"lock_max_attempts", app.config.Lock.MaxAttempts,
			"lock_retry_delay", app.config.Lock.RetryDelay,
			"kafka_brokers", app.config.KafkaBrokers,
		)

		// Create the dataset lease
		manager, err := app.leaseManager(app.config.Lock.ResourceID)
		if err != nil {
			logger.Error("Failed to create lease manager",
				"error", err,
				"resource_id", app.config.Lock.ResourceID,
			)
			os.Exit(1)
		}

		// Create publisher
		publisher, err := newPublisher(ctx, logger, app.config.KafkaBrokers)
		if err != nil {
			logger.Error("Failed to create publisher",
				"error", err,
				"kafka_brokers", app.config.KafkaBrokers,
			)
			os.Exit(1)
		}
		defer func() {
			if err := publisher.Close(context.Background()); err != nil {
				logger.Warn("Failed to close publisher", "error", err)
			}
		}()

		// Create graph service
		service := graph.NewGraphService(logger, app.repo, manager, publisher)

		// Create a new rest api instance
		api, err := rest.NewApi(logger, app.config.ServerPort, app.config.Lock.ShutdownGrace(), service, manager)
		if err != nil {
			logger.Error("Failed to create new rest api",
				"error", err,
				"server_port", app.config.ServerPort,
			)
			os.Exit(1)
		}

		// Start the rest server
		api.StartServer()
	},
}

// newPublisher publishes graph changes to kafka when brokers are configured,
// otherwise to an in-process channel whose events are logged.
func newPublisher(ctx context.Context, logger *slog.Logger, brokers []string) (pubsub.Publisher, error) {
	if len(brokers) > 0 {
		publisher, err := pubsub.NewKafkaWatermillPublisher(logger, brokers)
		if err != nil {
			return nil, err
		}
		return publisher, nil
	}

	publisher, channel := pubsub.NewGoChannelWatermillPublisher(logger)
	if err := pubsub.LogGraphChanges(ctx, logger, channel); err != nil {
		_ = publisher.Close(ctx)
		return nil, err
	}
	logger.Info("No kafka brokers configured; graph changes are only logged")
	return publisher, nil
}

func init() {
	rootCmd.AddCommand(restCmd)
}
