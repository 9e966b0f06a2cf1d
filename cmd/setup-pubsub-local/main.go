package main

import (
	"context"
	"flag"
	"time"

	"lecturer/internal/config"
	"lecturer/internal/logger"
	"lecturer/internal/pubsub"

	gpubsub "cloud.google.com/go/pubsub"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"
)

func main() {
	reset := flag.Bool("reset", false, "Delete all topics and subscriptions before creating them")
	flag.Parse()

	// Load environment variables early for local development
	envErr := godotenv.Load()
	logger := logger.New()
	if envErr != nil {
		logger.Warn().Msg("No .env file found, relying on system environment variables.")
	}
	logger.Info().Msg("Starting Pub/Sub setup for the local environment.")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Msgf("Failed to load config: %v", err)
	}
	if cfg.GCPProjectID == "" {
		logger.Fatal().Msg("GCP_PROJECT_ID is not set in the environment.")
	}
	if cfg.PubSubEmulatorHost == "" {
		logger.Fatal().Msg("PUBSUB_EMULATOR_HOST must be set for local environment.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := gpubsub.NewClient(ctx, cfg.GCPProjectID,
		option.WithEndpoint(cfg.PubSubEmulatorHost),
		option.WithoutAuthentication(),
	)
	if err != nil {
		logger.Fatal().Msgf("Failed to create Pub/Sub client: %v", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error().Msgf("Failed to close pubsub client: %v", err)
		}
	}()

	if *reset {
		if err := pubsub.ResetEmulator(ctx, client, logger); err != nil {
			logger.Fatal().Err(err).Msg("Failed to reset emulator")
		}
	}
	if err := pubsub.EnsureEventTopic(ctx, client, logger, cfg.MaterialUploadedTopic); err != nil {
		logger.Fatal().Err(err).Msg("Failed to set up topics")
	}

	logger.Info().Str("topic", cfg.MaterialUploadedTopic).Msg("Pub/Sub setup for local environment complete.")
}
