// main.go
package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"travel-booking/cmd"
	"travel-booking/internal/wire"
	"travel-booking/pkg/cache"
	"travel-booking/pkg/chapa"
	"travel-booking/pkg/database"
	"travel-booking/pkg/events"
	"travel-booking/pkg/utils"

	"github.com/newrelic/go-agent/v3/newrelic"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.Name, config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// New Relic is optional
	var nrApp *newrelic.Application
	if config.NewRelic.Enabled && config.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(config.NewRelic.AppName),
			newrelic.ConfigLicense(config.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
		)
		if err != nil {
			logger.Warn("Failed to initialize New Relic", zap.Error(err))
			nrApp = nil
		} else {
			defer nrApp.Shutdown(5 * time.Second)
			logger.Info("New Relic enabled", zap.String("app_name", config.NewRelic.AppName))
		}
	}

	// Connect to database
	dbCtx, cancelDB := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := database.InitDB(dbCtx, config.Database, logger)
	cancelDB()
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if config.Database.AutoMigrate {
		migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := database.Migrate(migrateCtx, db)
		cancel()
		if err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
		logger.Info("Database schema is up to date")
	}

	deps := wire.Deps{DB: db}

	// Outbound gateway calls show up as external segments when New Relic is on
	var transport http.RoundTripper = http.DefaultTransport
	if nrApp != nil {
		transport = newrelic.NewRoundTripper(transport)
	}
	deps.Gateway = chapa.NewClient(config.Gateway, transport, logger)

	// Redis backs Idempotency-Key replay, without it the header is ignored
	if config.Redis.Addr != "" {
		redisCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisClient, err := cache.NewRedisClient(redisCtx, config.Redis, nrApp)
		cancel()
		if err != nil {
			logger.Warn("Redis unavailable, idempotency disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			deps.Idempotency = cache.NewIdempotencyStore(redisClient)
			logger.Info("Redis connected", zap.String("addr", config.Redis.Addr))
		}
	}

	// Kafka receives payment status events, without brokers they are dropped
	if len(config.Kafka.Brokers) > 0 {
		publisher := events.NewKafkaPublisher(config.Kafka.Brokers, config.Kafka.PaymentTopic, logger)
		defer publisher.Close()
		deps.Publisher = publisher
		logger.Info("Kafka publisher enabled",
			zap.Strings("brokers", config.Kafka.Brokers),
			zap.String("topic", config.Kafka.PaymentTopic),
		)
	} else {
		deps.Publisher = events.NopPublisher{}
	}

	// Wire all dependencies
	app := wire.Wiring(deps, config, logger)

	// Start server
	if err := cmd.APIServer(app.Router, config.App, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return
	}

	logger.Info("Server exited")
}
