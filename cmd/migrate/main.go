// Command migrate aplica las migraciones SQL embebidas sobre la base configurada.
package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/jhoicas/erp-kardex/internal/infrastructure/postgres"
	"github.com/jhoicas/erp-kardex/migrations"
	"github.com/jhoicas/erp-kardex/pkg/config"
	"github.com/jhoicas/erp-kardex/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: cfg.App.Name})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	list, err := postgres.LoadMigrations(migrations.FS)
	if err != nil {
		log.Fatal().Err(err).Msg("leer migraciones")
	}
	applied, err := postgres.Migrate(ctx, pool, list, log.Component("migrate"))
	if err != nil {
		log.Error().Err(err).Int("applied", applied).Msg("migraciones fallidas")
		pool.Close()
		os.Exit(1)
	}
	log.Info().Int("applied", applied).Int("total", len(list)).Msg("migraciones al día")
}
