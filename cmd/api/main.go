package main

import (
	"github.com/rs/zerolog/log"

	"github.com/devtrackhq/event-tracker/internal/config"
	"github.com/devtrackhq/event-tracker/internal/httpserver"
	"github.com/devtrackhq/event-tracker/internal/logger"
	"github.com/devtrackhq/event-tracker/internal/store"
)

const listenAddr = ":8080"

// main boots the service: config → DB pool → HTTP server. Startup failures
// (bad connection string, unreachable or unnamed database) are fatal before
// the listener binds; request failures never terminate the process.
func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	db, err := store.NewPostgresStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	router := httpserver.NewRouter(db)

	log.Info().Str("addr", listenAddr).Msg("server started")
	if err := router.Run(listenAddr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
