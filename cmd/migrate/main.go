package main

import (
	"fmt"
	"os"

	"github.com/Rrens/skill-swap/internal/config"
	"github.com/Rrens/skill-swap/internal/logger"
	"github.com/Rrens/skill-swap/internal/repository"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logFile, err := logger.Setup(cfg.Logging, cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	log.Info().Str("driver", cfg.Storage.Driver).Msg("Applying migrations")

	if err := repository.Migrate(cfg); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}

	log.Info().Msg("Migrations applied")
}
