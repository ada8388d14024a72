package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"beadvault/internal/config"
	"beadvault/internal/db"
	"beadvault/internal/gate"
	api "beadvault/internal/http"
	"beadvault/internal/http/handlers"
	rl "beadvault/internal/http/rate_limiter"
	"beadvault/internal/importer"
	"beadvault/internal/metrics"
	"beadvault/internal/repo"
	"beadvault/internal/store"
)

// @title Bead Vault API
// @version 1.0
// @description Inventory and audit ledger for the bead vault.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("could not load config")
	}

	logger := newLogger(cfg.Logging)

	database, err := db.Connect(cfg.Database.URL)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not connect to database")
	}
	defer database.Close()

	if err := db.EnsureSchema(database); err != nil {
		logger.Fatal().Err(err).Msg("could not prepare schema")
	}

	var strikes *gate.StrikeStore
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Fatal().Err(err).Msg("could not connect to redis")
		}
		defer rdb.Close()
		strikes = gate.NewStrikeStore(rdb, cfg.Gate.MaxStrikes, cfg.Gate.BanFor)
	}

	gatekeeper := gate.New(gate.Options{
		PassphraseHash: cfg.Gate.PassphraseHash,
		TokenSecret:    cfg.Gate.TokenSecret,
		TokenTTL:       cfg.Gate.TokenTTL,
	}, strikes, logger.With().Str("component", "gate").Logger())

	itemRepo := repo.NewPostgresItemRepository(database)
	ledgerRepo := repo.NewPostgresLedgerRepository(database)
	vault := store.New(itemRepo, ledgerRepo, logger.With().Str("component", "store").Logger())

	refs, err := importer.LoadReference(cfg.Import.ReferencePath)
	if err != nil {
		logger.Warn().Err(err).Msg("reference palette not loaded; imports will be no-ops")
	}
	refImporter := importer.New(itemRepo, refs, logger.With().Str("component", "importer").Logger())

	handlers.SetStore(vault)
	handlers.SetStatsRepo(repo.NewPostgresStatsRepository(database))
	handlers.SetGate(gatekeeper)
	handlers.SetImporter(refImporter)
	api.SetGate(gatekeeper)

	metrics.Register()
	go rl.StartVisitorCleanupLoop()

	r := api.NewRouter()
	logger.Info().Str("addr", cfg.Server.Addr).Msg("server listening")
	if err := http.ListenAndServe(cfg.Server.Addr, r); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	output := io.Writer(os.Stdout)
	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	return zerolog.New(output).Level(level).With().Timestamp().Str("app", "beadvault").Logger()
}
