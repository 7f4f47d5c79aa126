package main

import (
	"github.com/pageza/chefcito/backend/config"
	"github.com/pageza/chefcito/backend/internal/database"
	"github.com/pageza/chefcito/backend/internal/logging"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := database.Open(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := database.RunMigrations(db); err != nil {
		logging.Fatal().Err(err).Msg("failed to run migrations")
	}
	logging.Info().Str("driver", cfg.DBDriver).Msg("all migrations applied")
}
