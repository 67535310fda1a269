package main

import (
	"context"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"gocirc/adapters/api"
	"gocirc/adapters/memory"
	"gocirc/adapters/postgres"
	"gocirc/adapters/rng"
	"gocirc/internal"
	"gocirc/internal/analysis"
	"gocirc/internal/config"
	"gocirc/ports"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()

	params := cfg.Engine.Params()
	if params.Seed == 0 {
		params.Seed = time.Now().UnixNano()
		logger.Info("no CIRC_SEED configured, derived seed %d", params.Seed)
	}

	engine := analysis.New(rng.New(params.Seed), logger)

	var reports ports.ReportRepository
	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		repo := postgres.NewReportRepository(db)
		if err := repo.EnsureSchema(context.Background()); err != nil {
			log.Fatalf("database schema: %v", err)
		}
		reports = repo
		logger.Info("report persistence enabled")
	} else {
		reports = memory.NewReportRepository()
		logger.Info("no DATABASE_URL configured, reports held in memory")
	}

	server := api.NewServer(engine, reports, params, logger)
	if err := server.Start(cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
