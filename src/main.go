package main

import (
	"context"
	"net/http"
	"time"

	"horizon-server/src/api"
	"horizon-server/src/bank"
	"horizon-server/src/config"
	"horizon-server/src/db"
	dbsql "horizon-server/src/db/sql"
	"horizon-server/src/logger"
	"horizon-server/src/middleware"
	"horizon-server/src/plaid"
	"horizon-server/src/txview"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	ctx := context.Background()

	// Connect to database
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("DB connection failed")
	}
	defer pool.Close()
	store := dbsql.NewStore(pool)

	cache, err := db.NewCache(time.Hour)
	if err != nil {
		log.Fatal().Err(err).Msg("Cache initialization failed")
	}
	defer cache.Close()

	// Plaid
	plaidClient, err := plaid.NewPlaidClient(cfg.PlaidClientID, cfg.PlaidSecret, cfg.PlaidEnv)
	if err != nil {
		log.Fatal().Err(err).Msg("Plaid client initialization failed")
	}
	provider, err := plaid.NewProvider(plaidClient, cache, cfg.CountryCode, cfg.PlaidWebhookURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Plaid provider initialization failed")
	}

	formatter, err := txview.NewFormatter(cfg.Locale, cfg.CountryCode, cfg.Location)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid locale configuration")
	}
	view := txview.NewView(formatter)
	view.PageSize = cfg.PageSize
	view.PendingThreshold = cfg.PendingThreshold

	// Router
	router := api.NewRouter(api.Deps{
		Users:          store,
		Banks:          store,
		Link:           provider,
		Accounts:       bank.NewService(store, provider),
		Webhooks:       plaid.NewWebhookVerifier(provider.WebhookKeyFetcher(), cache),
		View:           view,
		Auth:           middleware.NewAuth(cfg.JWTSecret),
		Logger:         log,
		AllowedOrigins: cfg.AllowedOrigins,
		IsDemo:         cfg.IsDemo,
	})

	log.Info().Str("port", cfg.Port).Str("plaid_env", cfg.PlaidEnv).Bool("demo", cfg.IsDemo).Msg("API server running")
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
