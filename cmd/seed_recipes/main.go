package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/pageza/chefcito/backend/config"
	"github.com/pageza/chefcito/backend/internal/database"
	"github.com/pageza/chefcito/backend/internal/logging"
	"github.com/pageza/chefcito/backend/internal/service"
	"github.com/pageza/chefcito/backend/internal/types"
)

func main() {
	file := flag.String("file", "clean_recipes.jsonl", "JSONL file of cleaned recipe records")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	f, err := os.Open(*file)
	if err != nil {
		logging.Fatal().Err(err).Str("file", *file).Msg("failed to open recipe file")
	}
	defer f.Close()

	records, err := types.ReadRecipeRecords(f)
	if err != nil {
		logging.Fatal().Err(err).Str("file", *file).Msg("failed to read recipe file")
	}

	db, err := database.Open(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.RunMigrations(db); err != nil {
		logging.Fatal().Err(err).Msg("failed to run migrations")
	}

	result, err := service.NewCorpusService(db).Import(ctx, records)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to import recipes")
	}

	logging.Info().
		Str("file", *file).
		Int("read", len(records)).
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Msg("seeding complete")
}
