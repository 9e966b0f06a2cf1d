package main

import (
	"flag"

	"lecturer/internal/config"
	"lecturer/internal/database"
	"lecturer/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	// Parse direction flag
	direction := flag.String("direction", "up", "Migration direction: up|down")
	flag.Parse()

	envErr := godotenv.Load()
	logger := logger.New()
	if envErr != nil {
		logger.Warn().Msg("Warning: no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Msgf("Error loading config: %v", err)
	}

	dir := database.Direction(*direction)
	switch dir {
	case database.Up, database.Down:
	default:
		logger.Fatal().Msgf("Invalid direction: %s", *direction)
	}

	if err := database.Migrate(cfg.DBConnectionString, dir); err != nil {
		logger.Fatal().Err(err).Msg("Migration failed")
	}
	logger.Info().Str("direction", string(dir)).Msg("Migrations applied")
}
